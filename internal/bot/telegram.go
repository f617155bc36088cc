package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"coin-converter/internal/domain"
	"coin-converter/internal/service"

	tele "gopkg.in/telebot.v3"
)

const requestTimeout = 20 * time.Second

// Converter is what the bot commands call.
type Converter interface {
	Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error)
	SearchAssets(prefix string, limit int) []domain.Asset
}

// StartTelegramBot long-polls until ctx is done. An empty token skips startup.
func StartTelegramBot(ctx context.Context, token string, conversions Converter) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Printf("failed to create Telegram bot: %v", err)
		return
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/convert", func(c tele.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		defer cancel()
		return c.Send(convertReply(reqCtx, conversions, c.Args()))
	})

	b.Handle("/search", func(c tele.Context) error {
		return c.Send(searchReply(conversions, c.Args()))
	})

	log.Println("Telegram bot started")
	go b.Start()
	go func() {
		<-ctx.Done()
		b.Stop()
	}()
}

const convertUsage = "Usage: /convert [amount] FROM TO\nExample: /convert 2.5 ETH EUR"

// parseConvertArgs accepts "FROM TO" or "AMOUNT FROM TO".
func parseConvertArgs(args []string) (domain.ConversionInputs, bool) {
	switch len(args) {
	case 2:
		return domain.NewConversionInputs(args[0], args[1], ""), true
	case 3:
		return domain.NewConversionInputs(args[1], args[2], args[0]), true
	}
	return domain.ConversionInputs{}, false
}

func convertReply(ctx context.Context, conversions Converter, args []string) string {
	in, ok := parseConvertArgs(args)
	if !ok {
		return convertUsage
	}

	quote, err := conversions.Convert(ctx, in)
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return fmt.Sprintf("Invalid amount: %s\n%s", in.Amount, convertUsage)
	case err != nil:
		log.Printf("bot: convert %s/%s failed: %v", in.From, in.To, err)
		return "Conversion unavailable, try again later."
	case !quote.Supported():
		return "Cannot convert between these two."
	}

	msg := fmt.Sprintf("%s %s = %s %s", quote.Amount.String(), in.From, quote.Conversion, in.To)
	if quote.HasChart() {
		msg += "\nChart: " + quote.Chart.Link
	}
	return msg
}

func searchReply(conversions Converter, args []string) string {
	if len(args) == 0 {
		return "Usage: /search PREFIX\nPopular: " + strings.Join(domain.PopularChoices, ", ")
	}
	results := conversions.SearchAssets(args[0], 0)
	if len(results) == 0 {
		return fmt.Sprintf("No assets match %q", args[0])
	}
	lines := make([]string, 0, len(results))
	for _, asset := range results {
		lines = append(lines, fmt.Sprintf("%s - %s", asset.Symbol, asset.Name))
	}
	return strings.Join(lines, "\n")
}
