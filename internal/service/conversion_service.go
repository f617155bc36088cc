package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"coin-converter/internal/domain"
	"coin-converter/internal/registry"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrUnsupportedSymbol = errors.New("unsupported symbol")
)

// QuoteProvider is the remote conversion API.
type QuoteProvider interface {
	Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error)
	ListAllCoins(ctx context.Context) ([]domain.Coin, error)
}

// ConversionService is shared by the page, the API, the terminal UI, the bot and the
// MCP tools.
type ConversionService struct {
	tracer      trace.Tracer
	provider    QuoteProvider
	searchLimit int
}

func NewConversionService(tracer trace.Tracer, provider QuoteProvider, searchLimit int) *ConversionService {
	return &ConversionService{
		tracer:      tracer,
		provider:    provider,
		searchLimit: searchLimit,
	}
}

// Convert requests a quote for in. The amount must parse as a non-negative decimal;
// unknown symbols are passed through and come back as an unsupported quote.
func (s *ConversionService) Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error) {
	ctx, span := s.tracer.Start(ctx, "conversion-service.convert")
	defer span.End()

	in, err := Normalize(in)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("pair", in.From+"/"+in.To))

	return s.provider.Convert(ctx, in)
}

// ConvertInverse answers an edit of the "to" amount: it asks for to -> from and swaps
// the roles of the answer back onto prior. When prior is nil the labels come from in.
func (s *ConversionService) ConvertInverse(ctx context.Context, in domain.ConversionInputs, toAmount string, prior *domain.ConversionQuote) (*domain.ConversionQuote, error) {
	ctx, span := s.tracer.Start(ctx, "conversion-service.convert-inverse")
	defer span.End()

	in, err := Normalize(in)
	if err != nil {
		return nil, err
	}
	toAmount, err = CanonicalAmount(toAmount)
	if err != nil {
		return nil, err
	}

	inverse, err := s.provider.Convert(ctx, in.Inverse(toAmount))
	if err != nil {
		return nil, err
	}
	if prior == nil {
		prior = &domain.ConversionQuote{
			From: domain.CurrencyRef{Currency: in.From},
			To:   domain.CurrencyRef{Currency: in.To},
		}
	}
	return domain.InvertQuote(prior, inverse), nil
}

// SearchAssets matches prefix against the registry. A limit <= 0 falls back to the
// configured cap, which itself may be 0 for no cap.
func (s *ConversionService) SearchAssets(prefix string, limit int) []domain.Asset {
	if limit <= 0 {
		limit = s.searchLimit
	}
	return registry.Search(prefix, limit)
}

// ListAllCoins passes through to the remote catalog.
func (s *ConversionService) ListAllCoins(ctx context.Context) ([]domain.Coin, error) {
	ctx, span := s.tracer.Start(ctx, "conversion-service.list-all-coins")
	defer span.End()

	return s.provider.ListAllCoins(ctx)
}

// Normalize upper-cases symbols and canonicalises the amount.
func Normalize(in domain.ConversionInputs) (domain.ConversionInputs, error) {
	in.From = strings.ToUpper(strings.TrimSpace(in.From))
	in.To = strings.ToUpper(strings.TrimSpace(in.To))
	if in.From == "" || in.To == "" {
		return in, fmt.Errorf("%w: from and to are required", ErrUnsupportedSymbol)
	}
	amount, err := CanonicalAmount(in.Amount)
	if err != nil {
		return in, err
	}
	in.Amount = amount
	return in, nil
}

// CanonicalAmount validates a user-typed amount without doing any arithmetic on it.
// Thousands separators are dropped and the remaining text must be a non-negative
// decimal.
func CanonicalAmount(raw string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("%w: %q is negative", ErrInvalidAmount, raw)
	}
	return s, nil
}
