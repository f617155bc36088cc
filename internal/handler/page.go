package handler

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"

	"coin-converter/internal/converter"
	"coin-converter/internal/domain"
	"coin-converter/internal/provider"
	"coin-converter/internal/registry"
	"coin-converter/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

const (
	unavailableNotice = "Conversion unavailable"
	invalidNotice     = "Enter a non-negative number"
	defaultPoweredBy  = "https://investorshub.com"
)

type choiceView struct {
	Asset domain.Asset
	Href  string
}

type sideView struct {
	Symbol  string
	Name    string
	Field   string
	Link    string
	Term    string
	Results []choiceView
	Popular []choiceView
}

type pageView struct {
	Inputs      domain.ConversionInputs
	Meta        domain.PageMeta
	From        sideView
	To          sideView
	Quote       *domain.ConversionQuote
	ShowChart   bool
	Unsupported bool
	Error       string
	PoweredBy   string
}

// Page godoc
// @Summary      Converter page
// @Description  Server-rendered converter. Every control is a link or GET form, so edits round-trip through the query string.
// @Tags         page
// @Produce      html
// @Param        from       query  string  false  "Source symbol"  default(BTC)
// @Param        to         query  string  false  "Target symbol"  default(USD)
// @Param        amount     query  string  false  "Amount of from"  default(1)
// @Param        to_amount  query  string  false  "Edited amount of to"
// @Param        q_from     query  string  false  "Search term for the from side"
// @Param        q_to       query  string  false  "Search term for the to side"
// @Success      200  {string}  string
// @Router       / [get]
func (h *Handler) Page(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.page")
	defer span.End()

	in := domain.NewConversionInputs(c.Query("from"), c.Query("to"), c.Query("amount"))
	span.SetAttributes(attribute.String("pair", in.From+"/"+in.To))

	var (
		quote *domain.ConversionQuote
		err   error
	)
	if toAmount := strings.TrimSpace(c.Query("to_amount")); toAmount != "" {
		quote, err = h.inverse(ctx, in, toAmount)
		if err == nil {
			in.Amount = quote.Amount.String()
		}
	} else {
		quote, err = h.converter.Convert(ctx, in)
	}

	view := h.buildPage(in, quote, c.Query("q_from"), c.Query("q_to"))
	status := http.StatusOK
	if err != nil {
		view.Error = unavailableNotice
		status = http.StatusBadGateway
		if errors.Is(err, service.ErrInvalidAmount) || errors.Is(err, service.ErrUnsupportedSymbol) {
			view.Error = invalidNotice
			status = http.StatusBadRequest
		} else {
			log.Printf("handler: conversion %s/%s failed: %v", in.From, in.To, err)
		}
	}
	c.HTML(status, "index.html", view)
}

// CurrencyImage godoc
// @Summary      Asset logo
// @Description  Redirects to the logo for symbol; unknown symbols get the default logo
// @Tags         page
// @Param        symbol  path  string  true  "Asset symbol"
// @Success      302
// @Router       /currency_image/{symbol} [get]
func (h *Handler) CurrencyImage(c *gin.Context) {
	c.Redirect(http.StatusFound, registry.LogoFor(c.Param("symbol")))
}

func (h *Handler) buildPage(in domain.ConversionInputs, quote *domain.ConversionQuote, fromTerm, toTerm string) pageView {
	view := pageView{
		Inputs:    in,
		Meta:      converter.PageMetaFor(h.baseURL, in),
		Quote:     quote,
		PoweredBy: defaultPoweredBy,
		From: sideView{
			Symbol: in.From,
			Name:   registry.NameFor(in.From),
			Field:  in.Amount,
			Term:   strings.TrimSpace(fromTerm),
		},
		To: sideView{
			Symbol: in.To,
			Name:   registry.NameFor(in.To),
			Term:   strings.TrimSpace(toTerm),
		},
	}

	if quote != nil {
		view.From.Field = quote.Amount.String()
		view.To.Field = quote.Conversion
		view.From.Link = provider.HrefFromLink(quote.FromCoinLink)
		view.To.Link = provider.HrefFromLink(quote.ToCoinLink)
		view.Unsupported = !quote.Supported()
		view.ShowChart = quote.HasChart()
		switch {
		case quote.Chart.Link != "":
			view.PoweredBy = quote.Chart.Link
		case view.From.Link != "":
			view.PoweredBy = view.From.Link
		}
	}

	for _, asset := range popularAssets() {
		view.From.Popular = append(view.From.Popular, choiceView{Asset: asset, Href: h.pageHref(asset.Symbol, in.To, in.Amount)})
		view.To.Popular = append(view.To.Popular, choiceView{Asset: asset, Href: h.pageHref(in.From, asset.Symbol, in.Amount)})
	}
	if view.From.Term != "" {
		for _, asset := range h.converter.SearchAssets(view.From.Term, 0) {
			view.From.Results = append(view.From.Results, choiceView{Asset: asset, Href: h.pageHref(asset.Symbol, in.To, in.Amount)})
		}
	}
	if view.To.Term != "" {
		for _, asset := range h.converter.SearchAssets(view.To.Term, 0) {
			view.To.Results = append(view.To.Results, choiceView{Asset: asset, Href: h.pageHref(in.From, asset.Symbol, in.Amount)})
		}
	}
	return view
}

// pageHref is the relative link for a selection. It never carries a search term,
// so following it closes the result list.
func (h *Handler) pageHref(from, to, amount string) string {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("amount", amount)
	return "/?" + q.Encode()
}
