package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"coin-converter/internal/cache"
	"coin-converter/internal/config"
	"coin-converter/internal/mcpserver"
	"coin-converter/internal/provider"
	"coin-converter/internal/service"
	"coin-converter/pkg/tracing"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc              = godotenv.Load
	loadConfigFunc           = config.Load
	initTracerFunc           = tracing.InitTracer
	newConverterProviderFunc = func(tracer trace.Tracer, cfg *config.Config) service.QuoteProvider {
		return provider.NewConverterProvider(tracer, provider.ConverterOptions{
			ConverterURL:  cfg.ConverterAPIURL,
			CoinsURL:      cfg.CoinsAPIURL,
			Timeout:       time.Duration(cfg.ConverterTimeoutSecs) * time.Second,
			RatePerSecond: cfg.UpstreamRatePerSec,
		})
	}
	runStdioFunc           = func(s *mcpserver.Server, ctx context.Context) error { return s.RunStdio(ctx) }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, "coin-converter-mcp")
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	conversions := service.NewConversionService(tracer, newConverterProviderFunc(tracer, cfg), cfg.SearchLimit)
	server := mcpserver.New(tracer, conversions, time.Duration(cfg.MCPRequestTimeoutSecs)*time.Second)

	if cfg.MCPTransport != "http" {
		log.Println("MCP server running on stdio")
		if err := runStdioFunc(server, ctx); err != nil && ctx.Err() == nil {
			log.Printf("MCP stdio session ended: %v", err)
		}
		return
	}

	if cfg.MCPAuthToken == "" {
		log.Println("Warning: MCP_AUTH_TOKEN not set, MCP HTTP transport is unauthenticated")
	}
	l, err := cache.NewLimiter(nil, fmt.Sprintf("%d-M", cfg.MCPRateLimitPerMin))
	if err != nil {
		log.Fatalf("failed to create MCP rate limiter: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.MCPHTTPBind, cfg.MCPHTTPPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.HTTPHandler(cfg.MCPAuthToken, l),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("MCP HTTP server listening on %s", addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down MCP server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Printf("MCP server shutdown error: %v", err)
	}

	log.Println("MCP server exited")
}
