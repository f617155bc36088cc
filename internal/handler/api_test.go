package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"coin-converter/internal/domain"
	"coin-converter/internal/registry"
)

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("parse error: %v (%s)", err, body)
	}
}

func TestAPIConvert(t *testing.T) {
	stub := &stubConverter{quote: btcUSD()}
	w := get(newTestRouter(stub), "/api/convert?from=btc&to=usd&amount=1,000")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp ConvertResponse
	decode(t, w.Body.Bytes(), &resp)
	if !resp.Supported || resp.Quote == nil || resp.Quote.Conversion != "97,000.50" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Inputs != (domain.ConversionInputs{From: "BTC", To: "USD", Amount: "1,000"}) {
		t.Fatalf("unexpected inputs: %+v", resp.Inputs)
	}
	if resp.FromLink != "https://investorshub.advfn.com/crypto/BTC" || resp.ToLink != "" {
		t.Fatalf("unexpected coin links: %q %q", resp.FromLink, resp.ToLink)
	}
	if resp.Meta.Title != "BTC to USD | Cryptocurrency Converter | Powered by InvestorsHub from ADVFN" {
		t.Fatalf("unexpected title: %s", resp.Meta.Title)
	}
	if !strings.HasPrefix(resp.Meta.ShareURL, "https://convert.example.com/?") {
		t.Fatalf("unexpected share url: %s", resp.Meta.ShareURL)
	}
}

func TestAPIConvertUnsupportedPair(t *testing.T) {
	stub := &stubConverter{quote: unsupportedQuote()}
	w := get(newTestRouter(stub), "/api/convert?from=BTC&to=NOPE")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp ConvertResponse
	decode(t, w.Body.Bytes(), &resp)
	if resp.Supported {
		t.Fatal("expected supported=false")
	}
	if resp.Inputs.Amount != "1" {
		t.Fatalf("expected default amount, got %q", resp.Inputs.Amount)
	}
}

func TestAPIConvertValidation(t *testing.T) {
	r := newTestRouter(&stubConverter{quote: btcUSD()})

	tests := []struct {
		query string
		want  string
	}{
		{"from=BTC", "to is required"},
		{"from=B$C&to=USD", "from must be an asset symbol"},
		{"from=BTC&to=ABCDEFGHIJKLMNOPQ", "to must be an asset symbol"},
		{"from=BTC&to=USD&amount=-1", "amount must be a non-negative number"},
		{"from=BTC&to=USD&amount=ten", "amount must be a non-negative number"},
	}
	for _, tt := range tests {
		w := get(r, "/api/convert?"+tt.query)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", tt.query, w.Code)
		}
		var body map[string]string
		decode(t, w.Body.Bytes(), &body)
		if body["error"] != tt.want {
			t.Fatalf("%s: expected %q, got %q", tt.query, tt.want, body["error"])
		}
	}
}

func TestAPIConvertUpstreamError(t *testing.T) {
	stub := &stubConverter{err: errors.New("converter returned 503")}
	w := get(newTestRouter(stub), "/api/convert?from=BTC&to=USD")

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestAPIConvertInverse(t *testing.T) {
	stub := &stubConverter{
		quote: btcUSD(),
		inverse: &domain.ConversionQuote{
			Status:                domain.StatusSuccess,
			Amount:                500,
			ConversionUnformatted: 0.005,
		},
	}
	w := get(newTestRouter(stub), "/api/convert/inverse?from=BTC&to=USD&to_amount=500")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp ConvertResponse
	decode(t, w.Body.Bytes(), &resp)
	if resp.Inputs.Amount != "0.005" {
		t.Fatalf("expected from amount 0.005, got %q", resp.Inputs.Amount)
	}
	if resp.Quote.Conversion != "500" || resp.Quote.From.Currency != "BTC" || resp.Quote.To.Currency != "USD" {
		t.Fatalf("unexpected quote: %+v", resp.Quote)
	}
	if resp.Quote.Chart.Link != "https://example.com/btc" {
		t.Fatal("expected chart carried over from the forward quote")
	}
}

func TestAPIConvertInverseWithoutForwardQuote(t *testing.T) {
	stub := &stubConverter{
		err:     errors.New("forward failed"),
		inverse: &domain.ConversionQuote{Amount: 10, ConversionUnformatted: 2},
	}
	w := get(newTestRouter(stub), "/api/convert/inverse?from=ETH&to=EUR&to_amount=10")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if stub.lastPrior != nil {
		t.Fatal("failed forward quote should not be used as prior")
	}
	var resp ConvertResponse
	decode(t, w.Body.Bytes(), &resp)
	if resp.Quote.From.Currency != "ETH" || resp.Quote.To.Currency != "EUR" {
		t.Fatalf("expected labels from the inputs, got %+v", resp.Quote)
	}
}

func TestAPIConvertInverseRequiresAmount(t *testing.T) {
	w := get(newTestRouter(&stubConverter{}), "/api/convert/inverse?from=BTC&to=USD")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestAPISearchAssets(t *testing.T) {
	r := newTestRouter(&stubConverter{})

	w := get(r, "/api/assets/search?q=b&limit=2")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Query   string         `json:"query"`
		Results []domain.Asset `json:"results"`
	}
	decode(t, w.Body.Bytes(), &body)
	if len(body.Results) != 2 || body.Results[0].Symbol != "BRL" {
		t.Fatalf("expected fiat first and capped results, got %+v", body.Results)
	}

	w = get(r, "/api/assets/search?q=")
	decode(t, w.Body.Bytes(), &body)
	if body.Results == nil || len(body.Results) != 0 {
		t.Fatalf("expected empty list for empty query, got %+v", body.Results)
	}

	w = get(r, "/api/assets/search?q=b&limit=500")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized limit, got %d", w.Code)
	}
}

func TestAPIListCoins(t *testing.T) {
	stub := &stubConverter{coins: []domain.Coin{{Symbol: "BTC", Name: "Bitcoin"}}}
	w := get(newTestRouter(stub), "/api/coins")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Coins []domain.Coin `json:"coins"`
	}
	decode(t, w.Body.Bytes(), &body)
	if len(body.Coins) != 1 || body.Coins[0].Symbol != "BTC" {
		t.Fatalf("unexpected coins: %+v", body.Coins)
	}

	stub.coinsErr = fmt.Errorf("catalog down")
	w = get(newTestRouter(stub), "/api/coins")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestAPIPopular(t *testing.T) {
	w := get(newTestRouter(&stubConverter{}), "/api/popular")
	var body struct {
		Popular []domain.Asset `json:"popular"`
	}
	decode(t, w.Body.Bytes(), &body)
	if len(body.Popular) != len(domain.PopularChoices) {
		t.Fatalf("expected %d popular choices, got %d", len(domain.PopularChoices), len(body.Popular))
	}
	for i, asset := range body.Popular {
		if asset.Symbol != domain.PopularChoices[i] {
			t.Fatalf("popular order changed at %d: %s", i, asset.Symbol)
		}
	}
}

func TestAPIAssets(t *testing.T) {
	w := get(newTestRouter(&stubConverter{}), "/api/assets")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Fiat   []domain.Asset `json:"fiat"`
		Crypto []domain.Asset `json:"crypto"`
	}
	decode(t, w.Body.Bytes(), &body)
	if len(body.Fiat) != len(registry.Fiat()) || len(body.Crypto) != len(registry.Crypto()) {
		t.Fatalf("expected full tables, got %d fiat and %d crypto", len(body.Fiat), len(body.Crypto))
	}
	if body.Fiat[0].Symbol != "USD" {
		t.Fatalf("expected USD first, got %s", body.Fiat[0].Symbol)
	}
	for _, a := range body.Crypto {
		if a.Logo == "" {
			t.Fatalf("missing logo for %s", a.Symbol)
		}
	}
}
