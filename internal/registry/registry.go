// Package registry holds the static fiat and crypto tables the converter offers.
package registry

import (
	"strings"

	"coin-converter/internal/domain"
)

// IsFiat reports whether symbol is in the fiat table.
func IsFiat(symbol string) bool {
	_, ok := fiatData[strings.ToUpper(symbol)]
	return ok
}

// IsCrypto reports whether symbol is in the crypto table.
func IsCrypto(symbol string) bool {
	_, ok := cryptoData[strings.ToUpper(symbol)]
	return ok
}

func IsKnown(symbol string) bool {
	return IsFiat(symbol) || IsCrypto(symbol)
}

// LogoFor resolves the logo URL of symbol. Unknown symbols get the default root
// asset's logo.
func LogoFor(symbol string) string {
	symbol = strings.ToUpper(symbol)
	if f, ok := fiatData[symbol]; ok {
		return f.Logo
	}
	if c, ok := cryptoData[symbol]; ok {
		return CryptoLogoBaseURL + c.Logo
	}
	return CryptoLogoBaseURL + cryptoData[domain.DefaultRootSymbol].Logo
}

// NameFor returns the display name, or the symbol itself when unknown.
func NameFor(symbol string) string {
	symbol = strings.ToUpper(symbol)
	if f, ok := fiatData[symbol]; ok {
		return f.Name
	}
	if c, ok := cryptoData[symbol]; ok {
		return c.Name
	}
	return symbol
}

// Lookup returns the asset for symbol and whether it is known.
func Lookup(symbol string) (domain.Asset, bool) {
	symbol = strings.ToUpper(symbol)
	if !IsKnown(symbol) {
		return domain.Asset{Symbol: symbol, Name: symbol, Logo: LogoFor(symbol)}, false
	}
	return domain.Asset{Symbol: symbol, Name: NameFor(symbol), Logo: LogoFor(symbol)}, true
}

// Fiat lists the fiat table in display order.
func Fiat() []domain.Asset {
	return collect(fiatOrder)
}

// Crypto lists the crypto table in display order.
func Crypto() []domain.Asset {
	return collect(cryptoOrder)
}

// Search matches prefix case-insensitively against symbols, fiat first and crypto
// appended, without deduplication across tables. A limit <= 0 means no cap. An empty
// prefix matches nothing.
func Search(prefix string, limit int) []domain.Asset {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	var results []domain.Asset
	for _, table := range [][]string{fiatOrder, cryptoOrder} {
		for _, symbol := range table {
			if !strings.HasPrefix(symbol, prefix) {
				continue
			}
			results = append(results, domain.Asset{Symbol: symbol, Name: NameFor(symbol), Logo: LogoFor(symbol)})
			if limit > 0 && len(results) >= limit {
				return results
			}
		}
	}
	return results
}

func collect(symbols []string) []domain.Asset {
	assets := make([]domain.Asset, 0, len(symbols))
	for _, s := range symbols {
		assets = append(assets, domain.Asset{Symbol: s, Name: NameFor(s), Logo: LogoFor(s)})
	}
	return assets
}
