package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultRootSymbol   = "BTC"
	DefaultTargetSymbol = "USD"
	DefaultAmount       = "1"

	// StatusSuccess is the status the converter endpoint reports for a settled lookup.
	StatusSuccess = "Success"
)

// PopularChoices are offered as one-click selections on every surface.
var PopularChoices = []string{"BTC", "ETH", "LTC", "SATOSHI", "GBP", "USD", "EUR", "JPY", "BRL"}

type Asset struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Logo   string `json:"logo,omitempty"`
}

// Coin is a row of the remote crypto catalog.
type Coin struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
}

// ConversionInputs is what was last requested. Amount is always the "from" amount.
type ConversionInputs struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// NewConversionInputs normalises raw query values, falling back to BTC -> USD for 1.
func NewConversionInputs(from, to, amount string) ConversionInputs {
	from = strings.ToUpper(strings.TrimSpace(from))
	if from == "" {
		from = DefaultRootSymbol
	}
	to = strings.ToUpper(strings.TrimSpace(to))
	if to == "" {
		to = DefaultTargetSymbol
	}
	amount = strings.TrimSpace(amount)
	if amount == "" {
		amount = DefaultAmount
	}
	return ConversionInputs{From: from, To: to, Amount: amount}
}

// Inverse swaps the sides and requests the given amount of the target asset.
func (in ConversionInputs) Inverse(amount string) ConversionInputs {
	return ConversionInputs{From: in.To, To: in.From, Amount: amount}
}

type CurrencyRef struct {
	Currency string `json:"currency"`
}

type Chart struct {
	Text  string `json:"text"`
	Image string `json:"image"`
	Link  string `json:"link"`
}

// ConversionQuote mirrors the converter endpoint response.
type ConversionQuote struct {
	Status                string      `json:"status"`
	From                  CurrencyRef `json:"from"`
	To                    CurrencyRef `json:"to"`
	Amount                Number      `json:"amount"`
	Conversion            string      `json:"conversion"`
	ConversionUnformatted Number      `json:"conversion_unformatted"`
	Unit                  Number      `json:"unit"`
	Chart                 Chart       `json:"chart"`
	FromCoinLink          string      `json:"from_coin_link"`
	ToCoinLink            string      `json:"to_coin_link"`
}

// Supported reports whether the pair could be converted. A zero output marks an
// unsupported or invalid pair.
func (q *ConversionQuote) Supported() bool {
	return q != nil && q.ConversionUnformatted != 0
}

// HasChart reports whether a chart image and link can be shown.
func (q *ConversionQuote) HasChart() bool {
	return q.Supported() && q.Chart.Link != "" && q.Chart.Image != ""
}

// Number is a float that decodes from either a JSON number or a numeric string.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("parse number %q: %w", s, err)
		}
		*n = Number(f)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("parse number %s: %w", data, err)
	}
	*n = Number(f)
	return nil
}

// String renders the shortest plain decimal form, never an exponent.
func (n Number) String() string {
	return decimal.NewFromFloat(float64(n)).String()
}

// PageMeta is what the page head and address bar mirror for a set of inputs.
type PageMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FaviconURL  string `json:"favicon_url"`
	ShareURL    string `json:"share_url"`
}

// InvertQuote builds the quote shown after an edit of the "to" amount. inverse is the
// answer for to -> from; its amounts swap roles while labels, chart and coin links
// stay as they were on prior.
func InvertQuote(prior, inverse *ConversionQuote) *ConversionQuote {
	return &ConversionQuote{
		Status:                inverse.Status,
		From:                  prior.From,
		To:                    prior.To,
		Amount:                inverse.ConversionUnformatted,
		Conversion:            inverse.Amount.String(),
		ConversionUnformatted: inverse.Amount,
		Unit:                  inverse.Amount,
		Chart:                 prior.Chart,
		FromCoinLink:          prior.FromCoinLink,
		ToCoinLink:            prior.ToCoinLink,
	}
}
