package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"coin-converter/internal/domain"
	"coin-converter/internal/registry"
	"coin-converter/internal/service"
)

type stubConverter struct {
	quote *domain.ConversionQuote
	err   error
	last  domain.ConversionInputs
}

func (s *stubConverter) Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error) {
	s.last = in
	return s.quote, s.err
}

func (s *stubConverter) SearchAssets(prefix string, limit int) []domain.Asset {
	return registry.Search(prefix, 3)
}

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	StartTelegramBot(context.Background(), "", nil)
}

func TestParseConvertArgs(t *testing.T) {
	tests := []struct {
		args []string
		want domain.ConversionInputs
		ok   bool
	}{
		{[]string{"btc", "usd"}, domain.ConversionInputs{From: "BTC", To: "USD", Amount: "1"}, true},
		{[]string{"2.5", "eth", "eur"}, domain.ConversionInputs{From: "ETH", To: "EUR", Amount: "2.5"}, true},
		{[]string{"btc"}, domain.ConversionInputs{}, false},
		{nil, domain.ConversionInputs{}, false},
	}
	for _, tt := range tests {
		got, ok := parseConvertArgs(tt.args)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("parseConvertArgs(%v) = %+v, %v", tt.args, got, ok)
		}
	}
}

func TestConvertReply(t *testing.T) {
	stub := &stubConverter{quote: &domain.ConversionQuote{
		Amount:                2,
		Conversion:            "194,001.00",
		ConversionUnformatted: 194001,
		Chart:                 domain.Chart{Image: "https://example.com/c.png", Link: "https://example.com/chart"},
	}}

	got := convertReply(context.Background(), stub, []string{"2", "btc", "usd"})
	if got != "2 BTC = 194,001.00 USD\nChart: https://example.com/chart" {
		t.Fatalf("unexpected reply: %q", got)
	}
	if stub.last.From != "BTC" || stub.last.Amount != "2" {
		t.Fatalf("unexpected inputs: %+v", stub.last)
	}
}

func TestConvertReplyFailures(t *testing.T) {
	tests := []struct {
		name string
		stub *stubConverter
		args []string
		want string
	}{
		{"usage", &stubConverter{}, []string{"btc"}, "Usage:"},
		{"unsupported", &stubConverter{quote: &domain.ConversionQuote{Conversion: "0"}}, []string{"btc", "nope"}, "Cannot convert between these two."},
		{"invalid amount", &stubConverter{err: fmt.Errorf("%w: bad", service.ErrInvalidAmount)}, []string{"x", "btc", "usd"}, "Invalid amount: x"},
		{"upstream", &stubConverter{err: errors.New("503")}, []string{"btc", "usd"}, "Conversion unavailable"},
	}
	for _, tt := range tests {
		got := convertReply(context.Background(), tt.stub, tt.args)
		if !strings.HasPrefix(got, tt.want) {
			t.Fatalf("%s: expected prefix %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestSearchReply(t *testing.T) {
	stub := &stubConverter{}

	if got := searchReply(stub, nil); !strings.Contains(got, "Popular: BTC, ETH") {
		t.Fatalf("unexpected usage reply: %q", got)
	}
	if got := searchReply(stub, []string{"eth"}); !strings.HasPrefix(got, "ETH - Ethereum") {
		t.Fatalf("unexpected search reply: %q", got)
	}
	if got := searchReply(stub, []string{"zzz"}); got != `No assets match "zzz"` {
		t.Fatalf("unexpected empty reply: %q", got)
	}
}
