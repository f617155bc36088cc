package converter

import (
	"net/url"
	"strings"

	"coin-converter/internal/domain"

	"github.com/google/uuid"
)

// Title is the page title for a pair.
func Title(from, to string) string {
	return from + " to " + to + " | Cryptocurrency Converter | Powered by InvestorsHub from ADVFN"
}

// FaviconURL points at the logo redirect for symbol. The version parameter busts
// browser favicon caches on every change.
func FaviconURL(baseURL, symbol string) string {
	return strings.TrimRight(baseURL, "/") + "/currency_image/" + url.PathEscape(symbol) + "?v=" + uuid.NewString()
}

// ShareURL mirrors the inputs into the page query string.
func ShareURL(baseURL string, in domain.ConversionInputs) string {
	q := url.Values{}
	if in.From != "" {
		q.Set("from", in.From)
	}
	if in.To != "" {
		q.Set("to", in.To)
	}
	if in.Amount != "" {
		q.Set("amount", in.Amount)
	}
	return strings.TrimRight(baseURL, "/") + "/?" + q.Encode()
}

// PageMetaFor derives the title, favicon and share link for in.
func PageMetaFor(baseURL string, in domain.ConversionInputs) domain.PageMeta {
	title := Title(in.From, in.To)
	return domain.PageMeta{
		Title:       title,
		Description: title,
		FaviconURL:  FaviconURL(baseURL, in.From),
		ShareURL:    ShareURL(baseURL, in),
	}
}
