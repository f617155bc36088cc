package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coin-converter/internal/bot"
	"coin-converter/internal/cache"
	"coin-converter/internal/config"
	"coin-converter/internal/handler"
	"coin-converter/internal/provider"
	"coin-converter/internal/service"
	"coin-converter/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "coin-converter/docs"
)

var (
	loadEnvFunc              = godotenv.Load
	loadConfigFunc           = config.Load
	initRedisFunc            = cache.InitRedis
	initTracerFunc           = tracing.InitTracer
	newLimiterFunc           = cache.NewLimiter
	newConverterProviderFunc = func(tracer trace.Tracer, cfg *config.Config) service.QuoteProvider {
		return provider.NewConverterProvider(tracer, provider.ConverterOptions{
			ConverterURL:  cfg.ConverterAPIURL,
			CoinsURL:      cfg.CoinsAPIURL,
			Timeout:       time.Duration(cfg.ConverterTimeoutSecs) * time.Second,
			RatePerSecond: cfg.UpstreamRatePerSec,
		})
	}
	newConversionServiceFunc = service.NewConversionService
	startTelegramBotFunc     = func(ctx context.Context, token string, conversions *service.ConversionService) {
		bot.StartTelegramBot(ctx, token, conversions)
	}
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Coin Converter API
// @version         1.0
// @description     Convert amounts between crypto and fiat assets.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, tracing.DefaultServiceName)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Redis only backs the inbound rate limiter; without it counters stay in memory.
	var rl *limiter.Limiter
	if cfg.RateLimitEnabled {
		var client *redis.Client
		if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
			log.Printf("Warning: %v", err)
		} else {
			client = cache.Client
		}
		rl, err = newLimiterFunc(client, cfg.RateLimit)
		if err != nil {
			log.Fatalf("failed to create rate limiter: %v", err)
		}
	}

	conversions := newConversionServiceFunc(tracer, newConverterProviderFunc(tracer, cfg), cfg.SearchLimit)

	startTelegramBotFunc(ctx, cfg.TelegramBotToken, conversions)

	h := newHandlerFunc(tracer, conversions, cfg.PublicBaseURL)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.DefaultServiceName))

	h.RegisterRoutes(r, handler.RateLimit(rl), handler.APIKeyAuth(cfg.APIKey))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if cache.Client != nil {
		_ = cache.Client.Close()
	}

	log.Println("Server exiting")
}
