package service

import (
	"context"
	"errors"
	"testing"

	"coin-converter/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

func TestConversionServiceConvertNormalizes(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{quote: &domain.ConversionQuote{Amount: 2, Conversion: "194,001.00", ConversionUnformatted: 194001}}
	svc := NewConversionService(testTracer, provider, 10)

	quote, err := svc.Convert(context.Background(), domain.ConversionInputs{From: "btc", To: " usd", Amount: "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Conversion != "194,001.00" {
		t.Fatalf("unexpected quote: %+v", quote)
	}
	if len(provider.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(provider.calls))
	}
	got := provider.calls[0]
	if got.From != "BTC" || got.To != "USD" || got.Amount != "2" {
		t.Fatalf("unexpected provider inputs: %+v", got)
	}
}

func TestConversionServiceConvertRejectsBadAmount(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{}
	svc := NewConversionService(testTracer, provider, 10)

	for _, amount := range []string{"", "abc", "-1"} {
		_, err := svc.Convert(context.Background(), domain.ConversionInputs{From: "BTC", To: "USD", Amount: amount})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%q: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if len(provider.calls) != 0 {
		t.Fatalf("invalid amounts must not reach the provider")
	}
}

func TestConversionServiceConvertInverse(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{quote: &domain.ConversionQuote{
		Status:                "Success",
		From:                  domain.CurrencyRef{Currency: "USD"},
		To:                    domain.CurrencyRef{Currency: "BTC"},
		Amount:                500,
		Conversion:            "0.00515",
		ConversionUnformatted: 0.00515,
		Chart:                 domain.Chart{Link: "inverse-chart"},
	}}
	svc := NewConversionService(testTracer, provider, 10)

	prior := &domain.ConversionQuote{
		From:         domain.CurrencyRef{Currency: "BTC"},
		To:           domain.CurrencyRef{Currency: "USD"},
		Chart:        domain.Chart{Text: "BTC/USD", Image: "img", Link: "chart"},
		FromCoinLink: "from-link",
		ToCoinLink:   "to-link",
	}

	quote, err := svc.ConvertInverse(context.Background(), domain.ConversionInputs{From: "BTC", To: "USD", Amount: "1"}, "500", prior)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := provider.calls[0]
	if call.From != "USD" || call.To != "BTC" || call.Amount != "500" {
		t.Fatalf("expected inverse lookup, got %+v", call)
	}
	if quote.Amount != 0.00515 || quote.Conversion != "500" || quote.Unit != 500 || quote.ConversionUnformatted != 500 {
		t.Fatalf("amounts not swapped: %+v", quote)
	}
	if quote.From.Currency != "BTC" || quote.To.Currency != "USD" {
		t.Fatalf("labels must come from the prior quote: %+v", quote)
	}
	if quote.Chart != prior.Chart || quote.FromCoinLink != "from-link" || quote.ToCoinLink != "to-link" {
		t.Fatalf("chart and links must come from the prior quote: %+v", quote)
	}
}

func TestConversionServiceConvertInverseWithoutPrior(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{quote: &domain.ConversionQuote{Amount: 100, ConversionUnformatted: 0.001}}
	svc := NewConversionService(testTracer, provider, 10)

	quote, err := svc.ConvertInverse(context.Background(), domain.ConversionInputs{From: "eth", To: "gbp", Amount: "1"}, "100", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.From.Currency != "ETH" || quote.To.Currency != "GBP" {
		t.Fatalf("expected labels from inputs, got %+v", quote)
	}
}

func TestConversionServiceProviderError(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{err: errors.New("boom")}
	svc := NewConversionService(testTracer, provider, 10)

	if _, err := svc.Convert(context.Background(), domain.ConversionInputs{From: "BTC", To: "USD", Amount: "1"}); err == nil {
		t.Fatal("expected provider error")
	}
	if _, err := svc.ListAllCoins(context.Background()); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestConversionServiceSearchAssetsCap(t *testing.T) {
	t.Parallel()

	svc := NewConversionService(testTracer, &mockProvider{}, 2)
	if got := svc.SearchAssets("b", 0); len(got) != 2 {
		t.Fatalf("expected capped results, got %+v", got)
	}
	if got := svc.SearchAssets("b", 3); len(got) != 3 {
		t.Fatalf("explicit limit should win, got %+v", got)
	}
	unbounded := NewConversionService(testTracer, &mockProvider{}, 0)
	if got := unbounded.SearchAssets("b", 0); len(got) <= 3 {
		t.Fatalf("expected unbounded results, got %+v", got)
	}
}

func TestCanonicalAmount(t *testing.T) {
	tests := map[string]string{
		"1":         "1",
		" 2.50 ":    "2.50",
		"1,000.5":   "1000.5",
		"0":         "0",
		"0.0000001": "0.0000001",
	}
	for in, expected := range tests {
		got, err := CanonicalAmount(in)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", in, err)
		}
		if got != expected {
			t.Fatalf("%q expected %q, got %q", in, expected, got)
		}
	}
}

type mockProvider struct {
	quote *domain.ConversionQuote
	coins []domain.Coin
	err   error

	calls []domain.ConversionInputs
}

func (m *mockProvider) Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error) {
	m.calls = append(m.calls, in)
	if m.err != nil {
		return nil, m.err
	}
	q := *m.quote
	return &q, nil
}

func (m *mockProvider) ListAllCoins(ctx context.Context) ([]domain.Coin, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.coins, nil
}
