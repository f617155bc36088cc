package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"coin-converter/internal/config"
	"coin-converter/internal/converter"
	"coin-converter/internal/provider"
	"coin-converter/internal/service"
	"coin-converter/internal/tui"
	"coin-converter/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"
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
	newConversionServiceFunc = service.NewConversionService
	newWishServerFunc        = wish.NewServer
	setupSignalNotify        = ossignal.Notify
	waitForSignalFunc        = func(quit <-chan os.Signal) { <-quit }
)

func main() {
	loadEnvFunc()
	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, "coin-converter-ssh")
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	conversions := newConversionServiceFunc(tracer, newConverterProviderFunc(tracer, cfg), cfg.SearchLimit)

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		authOption(cfg.SSHAuthorizedKeys),
		wish.WithMiddleware(
			bubbletea.Middleware(func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
				in := tui.InputsFromArgs(s.Command())
				ctrl := converter.New(s.Context(), conversions, in, nil, converter.WithBaseURL(cfg.PublicBaseURL))
				ctrl.Refresh()

				model := tui.NewModel(s.Context(), ctrl)
				pty, _, _ := s.Pty()
				model.SetSize(pty.Window.Width, pty.Window.Height)

				log.Printf("SSH session opened: user=%s pair=%s/%s", s.User(), in.From, in.To)
				return model, []tea.ProgramOption{tea.WithAltScreen()}
			}),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}

// authOption restricts logins to an authorized_keys file when one is configured.
// Without it any public key is accepted and only its fingerprint is logged.
func authOption(authorizedKeysPath string) ssh.Option {
	if authorizedKeysPath != "" {
		return wish.WithAuthorizedKeys(authorizedKeysPath)
	}
	return wish.WithPublicKeyAuth(func(ctx ssh.Context, key ssh.PublicKey) bool {
		log.Printf("SSH auth accepted: user=%s fingerprint=%s", ctx.User(), gossh.FingerprintSHA256(key))
		return true
	})
}
