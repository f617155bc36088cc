package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"coin-converter/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultConverterURL = "https://ih.advfn.com/common/cryptocurrency/converter/api/getConversion"
	DefaultCoinsURL     = "https://ih.advfn.com/common/crypto/api/getAllCoins"
)

// ErrUpstream wraps non-200 answers from the converter API.
var ErrUpstream = errors.New("converter API error")

// ConverterProvider talks to the remote conversion and coin catalog endpoints.
// Every conversion is delegated; nothing is cached locally.
type ConverterProvider struct {
	client       *http.Client
	converterURL string
	coinsURL     string
	tracer       trace.Tracer
	limiter      *RateLimiter
	newBackOff   func() backoff.BackOff
}

type ConverterOptions struct {
	ConverterURL string
	CoinsURL     string
	Timeout      time.Duration
	// RatePerSecond caps outbound calls; bursts up to the same number are allowed.
	RatePerSecond int
}

func NewConverterProvider(tracer trace.Tracer, opts ConverterOptions) *ConverterProvider {
	if opts.ConverterURL == "" {
		opts.ConverterURL = DefaultConverterURL
	}
	if opts.CoinsURL == "" {
		opts.CoinsURL = DefaultCoinsURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 10
	}
	return &ConverterProvider{
		client:       &http.Client{Timeout: opts.Timeout},
		converterURL: opts.ConverterURL,
		coinsURL:     opts.CoinsURL,
		tracer:       tracer,
		limiter:      NewRateLimiter(opts.RatePerSecond, time.Second/time.Duration(opts.RatePerSecond)),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 250 * time.Millisecond
			b.MaxElapsedTime = 10 * time.Second
			return backoff.WithMaxRetries(b, 3)
		},
	}
}

// Convert asks the converter endpoint for a quote. A cancelled ctx aborts the call and
// the returned error wraps context.Canceled.
func (p *ConverterProvider) Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error) {
	ctx, span := p.tracer.Start(ctx, "converter.convert")
	defer span.End()
	span.SetAttributes(
		attribute.String("from", in.From),
		attribute.String("to", in.To),
		attribute.String("amount", in.Amount),
	)

	endpoint, err := url.Parse(p.converterURL)
	if err != nil {
		return nil, fmt.Errorf("parse converter url: %w", err)
	}
	q := endpoint.Query()
	q.Set("from", in.From)
	q.Set("to", in.To)
	q.Set("amount", in.Amount)
	endpoint.RawQuery = q.Encode()

	body, err := p.doRequest(ctx, endpoint.String())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("convert %s to %s: %w", in.From, in.To, err)
	}

	var quote domain.ConversionQuote
	if err := json.Unmarshal(body, &quote); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("parse conversion: %w", err)
	}
	span.SetAttributes(attribute.Bool("supported", quote.Supported()))
	return &quote, nil
}

// ListAllCoins fetches the full crypto catalog. Transient failures are retried with
// exponential backoff; 4xx answers are not.
func (p *ConverterProvider) ListAllCoins(ctx context.Context) ([]domain.Coin, error) {
	ctx, span := p.tracer.Start(ctx, "converter.list-all-coins")
	defer span.End()

	var body []byte
	op := func() error {
		var err error
		body, err = p.doRequest(ctx, p.coinsURL)
		if err == nil {
			return nil
		}
		var se *statusError
		if errors.As(err, &se) && se.code < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(op, backoff.WithContext(p.newBackOff(), ctx)); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch coin catalog: %w", err)
	}

	var payload struct {
		Status  string        `json:"status"`
		Cryptos []domain.Coin `json:"cryptos"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse coin catalog: %w", err)
	}
	if payload.Status != "" && !strings.EqualFold(payload.Status, "success") {
		return nil, fmt.Errorf("%w: catalog status %q", ErrUpstream, payload.Status)
	}
	span.SetAttributes(attribute.Int("coins", len(payload.Cryptos)))
	return payload.Cryptos, nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrUpstream, e.code, e.body)
}

func (e *statusError) Unwrap() error { return ErrUpstream }

func (p *ConverterProvider) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &statusError{code: resp.StatusCode, body: string(body)}
	}

	return io.ReadAll(resp.Body)
}

// HrefFromLink pulls the target out of the `<a href="//host/path">` markup the
// converter returns for coin links.
func HrefFromLink(link string) string {
	if link == "" {
		return ""
	}
	const marker = `<a href="//`
	i := strings.Index(link, marker)
	if i < 0 {
		if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
			return link
		}
		return ""
	}
	rest := link[i+len(marker):]
	if j := strings.Index(rest, `"`); j >= 0 {
		rest = rest[:j]
	}
	return "https://" + rest
}
