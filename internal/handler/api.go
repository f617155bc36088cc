package handler

import (
	"errors"
	"net/http"

	"coin-converter/internal/converter"
	"coin-converter/internal/domain"
	"coin-converter/internal/provider"
	"coin-converter/internal/registry"
	"coin-converter/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type convertQuery struct {
	From   string `form:"from" binding:"required,alphanum,max=16"`
	To     string `form:"to" binding:"required,alphanum,max=16"`
	Amount string `form:"amount" binding:"omitempty,amount"`
}

type inverseQuery struct {
	From     string `form:"from" binding:"required,alphanum,max=16"`
	To       string `form:"to" binding:"required,alphanum,max=16"`
	ToAmount string `form:"to_amount" binding:"required,amount"`
}

type searchQuery struct {
	Q     string `form:"q"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// ConvertResponse is a quote plus what a client needs to render it.
type ConvertResponse struct {
	Inputs    domain.ConversionInputs `json:"inputs"`
	Supported bool                    `json:"supported"`
	Quote     *domain.ConversionQuote `json:"quote"`
	FromLink  string                  `json:"from_link,omitempty"`
	ToLink    string                  `json:"to_link,omitempty"`
	Meta      domain.PageMeta         `json:"meta"`
}

// Convert godoc
// @Summary      Convert an amount between two assets
// @Description  Quotes amount of from in units of to. An unsupported pair answers 200 with supported=false.
// @Tags         convert
// @Produce      json
// @Param        from    query  string  true   "Source symbol (e.g., BTC)"
// @Param        to      query  string  true   "Target symbol (e.g., USD)"
// @Param        amount  query  string  false  "Amount of from"  default(1)
// @Success      200  {object}  ConvertResponse
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/convert [get]
func (h *Handler) Convert(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.convert")
	defer span.End()

	var q convertQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	in := domain.NewConversionInputs(q.From, q.To, q.Amount)
	span.SetAttributes(attribute.String("pair", in.From+"/"+in.To))

	quote, err := h.converter.Convert(ctx, in)
	if err != nil {
		writeConvertError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.response(in, quote))
}

// ConvertInverse godoc
// @Summary      Convert from an edited target amount
// @Description  Answers "how much from buys to_amount of to" and reports it in the from -> to orientation.
// @Tags         convert
// @Produce      json
// @Param        from       query  string  true  "Source symbol"
// @Param        to         query  string  true  "Target symbol"
// @Param        to_amount  query  string  true  "Amount of to"
// @Success      200  {object}  ConvertResponse
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/convert/inverse [get]
func (h *Handler) ConvertInverse(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.convert-inverse")
	defer span.End()

	var q inverseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	in := domain.NewConversionInputs(q.From, q.To, "")
	span.SetAttributes(attribute.String("pair", in.From+"/"+in.To))

	quote, err := h.inverse(ctx, in, q.ToAmount)
	if err != nil {
		writeConvertError(c, err)
		return
	}
	in.Amount = quote.Amount.String()
	c.JSON(http.StatusOK, h.response(in, quote))
}

// SearchAssets godoc
// @Summary      Search supported assets by symbol prefix
// @Description  Fiat matches come first, then crypto, each in registry order
// @Tags         assets
// @Produce      json
// @Param        q      query  string  false  "Symbol prefix, case-insensitive"
// @Param        limit  query  int     false  "Maximum results (1-100)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/assets/search [get]
func (h *Handler) SearchAssets(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.search-assets")
	defer span.End()

	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	results := h.converter.SearchAssets(q.Q, q.Limit)
	if results == nil {
		results = []domain.Asset{}
	}
	c.JSON(http.StatusOK, gin.H{"query": q.Q, "results": results})
}

// ListCoins godoc
// @Summary      List the remote crypto catalog
// @Tags         assets
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]string
// @Router       /api/coins [get]
func (h *Handler) ListCoins(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.list-coins")
	defer span.End()

	coins, err := h.converter.ListAllCoins(ctx)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coins": coins})
}

// Popular godoc
// @Summary      Popular choices
// @Description  The one-click assets offered on both sides of the converter
// @Tags         assets
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/popular [get]
func (h *Handler) Popular(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"popular": popularAssets()})
}

// Assets godoc
// @Summary      Asset tables
// @Description  Every fiat and crypto symbol the converter knows, in display order
// @Tags         assets
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     ApiKeyAuth
// @Router       /api/assets [get]
func (h *Handler) Assets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fiat": registry.Fiat(), "crypto": registry.Crypto()})
}

func (h *Handler) response(in domain.ConversionInputs, quote *domain.ConversionQuote) ConvertResponse {
	return ConvertResponse{
		Inputs:    in,
		Supported: quote.Supported(),
		Quote:     quote,
		FromLink:  provider.HrefFromLink(quote.FromCoinLink),
		ToLink:    provider.HrefFromLink(quote.ToCoinLink),
		Meta:      converter.PageMetaFor(h.baseURL, in),
	}
}

func writeConvertError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrUnsupportedSymbol):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

func popularAssets() []domain.Asset {
	assets := make([]domain.Asset, 0, len(domain.PopularChoices))
	for _, symbol := range domain.PopularChoices {
		if asset, ok := registry.Lookup(symbol); ok {
			assets = append(assets, asset)
		}
	}
	return assets
}
