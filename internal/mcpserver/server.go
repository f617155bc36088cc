package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coin-converter/internal/domain"
	"coin-converter/internal/provider"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	serverName    = "coin-converter"
	serverVersion = "1.0.0"
)

// Converter is the conversion service as exposed to MCP clients.
type Converter interface {
	Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error)
	SearchAssets(prefix string, limit int) []domain.Asset
	ListAllCoins(ctx context.Context) ([]domain.Coin, error)
}

type Server struct {
	tracer      trace.Tracer
	conversions Converter
	timeout     time.Duration
	mcp         *mcp.Server
}

type ConvertArgs struct {
	From   string `json:"from" jsonschema:"source asset symbol, e.g. BTC"`
	To     string `json:"to" jsonschema:"target asset symbol, e.g. USD"`
	Amount string `json:"amount,omitempty" jsonschema:"amount of the source asset, defaults to 1"`
}

type ConvertResult struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Amount     string  `json:"amount"`
	Conversion string  `json:"conversion"`
	Value      float64 `json:"value"`
	Supported  bool    `json:"supported"`
	ChartLink  string  `json:"chart_link,omitempty"`
	FromLink   string  `json:"from_link,omitempty"`
	ToLink     string  `json:"to_link,omitempty"`
}

type SearchArgs struct {
	Prefix string `json:"prefix" jsonschema:"case-insensitive symbol prefix"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results"`
}

type SearchResult struct {
	Assets []domain.Asset `json:"assets"`
}

type ListCoinsArgs struct{}

type ListCoinsResult struct {
	Coins []domain.Coin `json:"coins"`
}

func New(tracer trace.Tracer, conversions Converter, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	s := &Server{
		tracer:      tracer,
		conversions: conversions,
		timeout:     timeout,
		mcp:         mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil),
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "convert",
		Description: "Convert an amount of one asset (crypto or fiat) into another. supported=false means the pair cannot be converted.",
	}, s.convert)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_assets",
		Description: "Find supported assets by symbol prefix. Fiat currencies are listed before crypto.",
	}, s.searchAssets)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_coins",
		Description: "List the crypto catalog known to the converter backend.",
	}, s.listCoins)

	return s
}

// MCP exposes the underlying server for transports.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// RunStdio serves a single client over stdin/stdout until ctx ends or the client leaves.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) convert(ctx context.Context, _ *mcp.CallToolRequest, args ConvertArgs) (*mcp.CallToolResult, ConvertResult, error) {
	ctx, span := s.tracer.Start(ctx, "mcp.convert")
	defer span.End()

	if args.From == "" || args.To == "" {
		return nil, ConvertResult{}, errors.New("from and to are required")
	}
	in := domain.NewConversionInputs(args.From, args.To, args.Amount)
	span.SetAttributes(attribute.String("pair", in.From+"/"+in.To))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	quote, err := s.conversions.Convert(ctx, in)
	if err != nil {
		return nil, ConvertResult{}, fmt.Errorf("convert %s to %s: %w", in.From, in.To, err)
	}

	res := ConvertResult{
		From:       in.From,
		To:         in.To,
		Amount:     quote.Amount.String(),
		Conversion: quote.Conversion,
		Value:      float64(quote.ConversionUnformatted),
		Supported:  quote.Supported(),
		FromLink:   provider.HrefFromLink(quote.FromCoinLink),
		ToLink:     provider.HrefFromLink(quote.ToCoinLink),
	}
	if quote.HasChart() {
		res.ChartLink = quote.Chart.Link
	}
	return nil, res, nil
}

func (s *Server) searchAssets(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, SearchResult, error) {
	_, span := s.tracer.Start(ctx, "mcp.search-assets")
	defer span.End()

	assets := s.conversions.SearchAssets(args.Prefix, args.Limit)
	if assets == nil {
		assets = []domain.Asset{}
	}
	return nil, SearchResult{Assets: assets}, nil
}

func (s *Server) listCoins(ctx context.Context, _ *mcp.CallToolRequest, _ ListCoinsArgs) (*mcp.CallToolResult, ListCoinsResult, error) {
	ctx, span := s.tracer.Start(ctx, "mcp.list-coins")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	coins, err := s.conversions.ListAllCoins(ctx)
	if err != nil {
		return nil, ListCoinsResult{}, fmt.Errorf("list coins: %w", err)
	}
	return nil, ListCoinsResult{Coins: coins}, nil
}
