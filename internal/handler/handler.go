package handler

import (
	"context"
	"log"
	"sync"

	"coin-converter/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Converter is the slice of the conversion service the HTTP surface needs.
type Converter interface {
	Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error)
	ConvertInverse(ctx context.Context, in domain.ConversionInputs, toAmount string, prior *domain.ConversionQuote) (*domain.ConversionQuote, error)
	SearchAssets(prefix string, limit int) []domain.Asset
	ListAllCoins(ctx context.Context) ([]domain.Coin, error)
}

type Handler struct {
	tracer    trace.Tracer
	converter Converter
	baseURL   string
}

var validatorsOnce sync.Once

func New(tracer trace.Tracer, converter Converter, baseURL string) *Handler {
	validatorsOnce.Do(func() {
		if err := RegisterValidators(); err != nil {
			log.Printf("Warning: custom validators not registered: %v", err)
		}
	})
	return &Handler{
		tracer:    tracer,
		converter: converter,
		baseURL:   baseURL,
	}
}

// RegisterRoutes mounts the page, the logo redirect and the JSON API. apiMiddleware
// runs on /api only.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiMiddleware ...gin.HandlerFunc) {
	r.SetHTMLTemplate(pageTemplate)

	r.GET("/health", h.Health)
	r.GET("/", h.Page)
	r.GET("/currency_image/:symbol", h.CurrencyImage)

	api := r.Group("/api", apiMiddleware...)
	api.GET("/convert", h.Convert)
	api.GET("/convert/inverse", h.ConvertInverse)
	api.GET("/assets/search", h.SearchAssets)
	api.GET("/coins", h.ListCoins)
	api.GET("/popular", h.Popular)
	api.GET("/assets", h.Assets)
}

// inverse resolves an edit of the "to" amount. The forward quote supplies labels,
// chart and coin links; if it fails the inverse still goes ahead without them.
func (h *Handler) inverse(ctx context.Context, in domain.ConversionInputs, toAmount string) (*domain.ConversionQuote, error) {
	prior, err := h.converter.Convert(ctx, in)
	if err != nil {
		log.Printf("handler: forward quote for %s/%s failed: %v", in.From, in.To, err)
		prior = nil
	}
	return h.converter.ConvertInverse(ctx, in, toAmount, prior)
}
