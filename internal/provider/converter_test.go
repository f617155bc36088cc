package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"coin-converter/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/trace"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestProvider(rt roundTripFunc) *ConverterProvider {
	p := NewConverterProvider(trace.NewNoopTracerProvider().Tracer("test"), ConverterOptions{
		ConverterURL: "http://example/api/getConversion",
		CoinsURL:     "http://example/api/getAllCoins",
	})
	p.client = &http.Client{Transport: rt}
	p.limiter = NewRateLimiter(100, time.Millisecond)
	p.newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 2)
	}
	return p
}

const btcUSDQuote = `{
	"status": "Success",
	"from_coin_link": "<a href=\"//investorshub.advfn.com/crypto/BTC\">Bitcoin</a>",
	"to_coin_link": null,
	"amount": 1,
	"conversion_unformatted": 97000.5,
	"conversion": "97,000.50",
	"unit": 97000.5,
	"chart": {"text": "BTC/USD", "image": "https://example.com/btc.png", "link": "https://example.com/btc"},
	"from": {"currency": "BTC"},
	"to": {"currency": "USD"}
}`

func TestConverterProviderConvert(t *testing.T) {
	t.Parallel()

	p := newTestProvider(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/api/getConversion" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		q := req.URL.Query()
		if q.Get("from") != "BTC" || q.Get("to") != "USD" || q.Get("amount") != "1" {
			t.Fatalf("unexpected query: %s", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, btcUSDQuote), nil
	})

	quote, err := p.Convert(context.Background(), domain.ConversionInputs{From: "BTC", To: "USD", Amount: "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.From.Currency != "BTC" || quote.To.Currency != "USD" {
		t.Fatalf("unexpected currencies: %+v", quote)
	}
	if quote.Amount.String() != "1" || quote.Conversion != "97,000.50" || !quote.Supported() {
		t.Fatalf("unexpected amounts: %+v", quote)
	}
	if quote.ToCoinLink != "" {
		t.Fatalf("expected empty to link, got %q", quote.ToCoinLink)
	}
}

func TestConverterProviderConvertUnknownSymbol(t *testing.T) {
	t.Parallel()

	p := newTestProvider(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"status":"Success","amount":0,"conversion":"0","conversion_unformatted":0,"unit":0,"chart":{},"from":{"currency":"XXX"},"to":{"currency":"USD"}}`), nil
	})

	quote, err := p.Convert(context.Background(), domain.ConversionInputs{From: "XXX", To: "USD", Amount: "1"})
	if err != nil {
		t.Fatalf("unsupported pair should not be an error: %v", err)
	}
	if quote.Supported() || quote.ConversionUnformatted != 0 {
		t.Fatalf("expected unsupported quote, got %+v", quote)
	}
}

func TestConverterProviderConvertErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]roundTripFunc{
		"status": func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadGateway, "bad gateway"), nil
		},
		"transport": func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
		"malformed": func(*http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusOK, "<html>"), nil
		},
	}
	for name, rt := range tests {
		p := newTestProvider(rt)
		if _, err := p.Convert(context.Background(), domain.ConversionInputs{From: "BTC", To: "USD", Amount: "1"}); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}

	p := newTestProvider(tests["status"])
	_, err := p.Convert(context.Background(), domain.ConversionInputs{From: "BTC", To: "USD", Amount: "1"})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestConverterProviderConvertCancelled(t *testing.T) {
	t.Parallel()

	p := newTestProvider(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := p.Convert(ctx, domain.ConversionInputs{From: "BTC", To: "USD", Amount: "1"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestConverterProviderListAllCoins(t *testing.T) {
	t.Parallel()

	p := newTestProvider(func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/getAllCoins") {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		return jsonResponse(http.StatusOK, `{"status":"success","cryptos":[{"symbol":"BTC","name":"Bitcoin","logo":"/cdn/BTC.png"},{"symbol":"ETH","name":"Ethereum","logo":"/cdn/ETH.png"}]}`), nil
	})

	coins, err := p.ListAllCoins(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coins) != 2 || coins[0].Symbol != "BTC" || coins[1].Logo != "/cdn/ETH.png" {
		t.Fatalf("unexpected coins: %+v", coins)
	}
}

func TestConverterProviderListAllCoinsRetries(t *testing.T) {
	t.Parallel()

	var calls int32
	p := newTestProvider(func(req *http.Request) (*http.Response, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return jsonResponse(http.StatusServiceUnavailable, "try later"), nil
		}
		return jsonResponse(http.StatusOK, `{"status":"success","cryptos":[{"symbol":"BTC","name":"Bitcoin","logo":"/cdn/BTC.png"}]}`), nil
	})

	coins, err := p.ListAllCoins(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coins) != 1 || atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("expected success on third call, got %d coins after %d calls", len(coins), calls)
	}
}

func TestConverterProviderListAllCoinsNoRetryOnClientError(t *testing.T) {
	t.Parallel()

	var calls int32
	p := newTestProvider(func(req *http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return jsonResponse(http.StatusNotFound, "missing"), nil
	})

	if _, err := p.ListAllCoins(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("4xx should not be retried, got %d calls", calls)
	}
}

func TestHrefFromLink(t *testing.T) {
	tests := map[string]string{
		"": "",
		`<a href="//investorshub.advfn.com/crypto/BTC">Bitcoin</a>`: "https://investorshub.advfn.com/crypto/BTC",
		"https://example.com/coin":                                  "https://example.com/coin",
		"plain text":                                                "",
	}
	for in, expected := range tests {
		if got := HrefFromLink(in); got != expected {
			t.Fatalf("%q expected %q, got %q", in, expected, got)
		}
	}
}
