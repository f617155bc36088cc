// Package converter holds the two-way conversion controller. Editing either amount
// starts a lookup on that side's lane; a newer edit on the same lane cancels the
// older lookup and any answer it still produces is dropped. The two lanes never
// cancel each other, so a from-edit and a to-edit in flight together race and the
// last one to settle wins.
package converter

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"coin-converter/internal/domain"
	"coin-converter/internal/service"
)

type State int

const (
	StateIdle State = iota
	StateEditingFrom
	StateEditingTo
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEditingFrom:
		return "editing-from"
	case StateEditingTo:
		return "editing-to"
	default:
		return "unknown"
	}
}

type Side int

const (
	SideFrom Side = iota
	SideTo
)

func (s Side) String() string {
	if s == SideTo {
		return "to"
	}
	return "from"
}

// Quoter is the part of the conversion service the controller needs.
type Quoter interface {
	Convert(ctx context.Context, in domain.ConversionInputs) (*domain.ConversionQuote, error)
	SearchAssets(prefix string, limit int) []domain.Asset
}

type Search struct {
	Side    Side
	Term    string
	Results []domain.Asset
}

// Snapshot is a copy of the controller state safe to read without locking.
type Snapshot struct {
	State     State
	Inputs    domain.ConversionInputs
	Quote     *domain.ConversionQuote
	FromField string
	ToField   string
	Search    Search
	Err       error
	Meta      domain.PageMeta
}

// lane is the cancellation token of one edit direction.
type lane struct {
	gen    uint64
	cancel context.CancelFunc
}

func (l *lane) pending() bool { return l.cancel != nil }

// supersede cancels the outstanding lookup and returns the generation of the next one.
func (l *lane) supersede(parent context.Context) (context.Context, uint64) {
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, cancel := context.WithCancel(parent)
	l.cancel = cancel
	return ctx, l.gen
}

// abandon cancels the outstanding lookup without starting another; a late answer
// no longer matches the generation.
func (l *lane) abandon() {
	l.release()
	l.gen++
}

func (l *lane) release() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

type Option func(*Controller)

// WithBaseURL sets the prefix used for favicon and share links.
func WithBaseURL(baseURL string) Option {
	return func(c *Controller) { c.baseURL = baseURL }
}

type Controller struct {
	quoter  Quoter
	baseURL string

	root   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	state     State
	inputs    domain.ConversionInputs
	quote     *domain.ConversionQuote
	fromField string
	toField   string
	search    Search
	err       error
	meta      domain.PageMeta
	from      lane
	to        lane

	updated chan struct{}
}

// New builds a controller for inputs. initial is the quote loaded with the page and
// may be nil, in which case Refresh should be called to load one.
func New(ctx context.Context, quoter Quoter, inputs domain.ConversionInputs, initial *domain.ConversionQuote, opts ...Option) *Controller {
	root, cancel := context.WithCancel(ctx)
	c := &Controller{
		quoter:  quoter,
		root:    root,
		cancel:  cancel,
		inputs:  inputs,
		quote:   initial,
		updated: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if initial != nil {
		c.fromField = initial.Amount.String()
		c.toField = initial.Conversion
	} else {
		c.fromField = inputs.Amount
	}
	c.meta = PageMetaFor(c.baseURL, c.inputs)
	return c
}

// Updated signals after every state change. Signals coalesce; read Snapshot after
// receiving one.
func (c *Controller) Updated() <-chan struct{} {
	return c.updated
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:     c.state,
		Inputs:    c.inputs,
		FromField: c.fromField,
		ToField:   c.toField,
		Search: Search{
			Side:    c.search.Side,
			Term:    c.search.Term,
			Results: append([]domain.Asset(nil), c.search.Results...),
		},
		Err:  c.err,
		Meta: c.meta,
	}
	if c.quote != nil {
		q := *c.quote
		snap.Quote = &q
	}
	return snap
}

// EditFrom handles a change of the "from" amount field. It reports whether a lookup
// was started; an edit equal to the settled amount starts none.
func (c *Controller) EditFrom(value string) bool {
	c.mu.Lock()
	c.fromField = value
	if c.quote != nil && value == c.quote.Amount.String() {
		c.mu.Unlock()
		c.notify()
		return false
	}

	amount, err := service.CanonicalAmount(value)
	if err != nil {
		c.from.abandon()
		c.err = err
		c.updateState()
		c.mu.Unlock()
		c.notify()
		return false
	}

	ctx, gen := c.from.supersede(c.root)
	c.inputs.Amount = value
	c.state = StateEditingFrom
	c.meta = PageMetaFor(c.baseURL, c.inputs)
	in := c.inputs
	in.Amount = amount
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go c.lookup(ctx, SideFrom, gen, in)
	return true
}

// EditTo handles a change of the "to" amount field by looking up the inverse pair.
func (c *Controller) EditTo(value string) bool {
	c.mu.Lock()
	c.toField = value
	if c.quote != nil && value == c.quote.Conversion {
		c.mu.Unlock()
		c.notify()
		return false
	}

	amount, err := service.CanonicalAmount(value)
	if err != nil {
		c.to.abandon()
		c.err = err
		c.updateState()
		c.mu.Unlock()
		c.notify()
		return false
	}

	ctx, gen := c.to.supersede(c.root)
	c.state = StateEditingTo
	in := c.inputs.Inverse(amount)
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go c.lookup(ctx, SideTo, gen, in)
	return true
}

// Select sets one side's asset, clears the search and looks up the pair with the
// current amount. Edit guards do not apply and a pending "to" lookup is dropped.
func (c *Controller) Select(side Side, symbol string) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return
	}

	c.mu.Lock()
	// A pending inverse answer belongs to the old pair.
	c.to.abandon()
	if side == SideTo {
		c.inputs.To = symbol
	} else {
		c.inputs.From = symbol
	}
	c.search = Search{Side: side}
	c.meta = PageMetaFor(c.baseURL, c.inputs)
	c.mu.Unlock()

	c.Refresh()
}

// Refresh looks up the current inputs on the "from" lane.
func (c *Controller) Refresh() {
	c.mu.Lock()
	ctx, gen := c.from.supersede(c.root)
	c.state = StateEditingFrom
	in := c.inputs
	if amount, err := service.CanonicalAmount(in.Amount); err == nil {
		in.Amount = amount
	}
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go c.lookup(ctx, SideFrom, gen, in)
}

// SetSearch fills the autocomplete results for one side. An empty term clears them.
func (c *Controller) SetSearch(side Side, term string) {
	var results []domain.Asset
	if strings.TrimSpace(term) != "" {
		results = c.quoter.SearchAssets(term, 0)
	}

	c.mu.Lock()
	c.search = Search{Side: side, Term: term, Results: results}
	c.mu.Unlock()
	c.notify()
}

// Close cancels outstanding lookups and waits for them to return.
func (c *Controller) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Controller) lookup(ctx context.Context, side Side, gen uint64, in domain.ConversionInputs) {
	defer c.wg.Done()

	quote, err := c.quoter.Convert(ctx, in)
	c.settle(side, gen, quote, err)
}

func (c *Controller) settle(side Side, gen uint64, quote *domain.ConversionQuote, err error) {
	c.mu.Lock()

	l := &c.from
	if side == SideTo {
		l = &c.to
	}
	if gen != l.gen {
		// Superseded; whatever it returned is stale.
		c.mu.Unlock()
		return
	}
	l.release()

	if errors.Is(err, context.Canceled) {
		c.updateState()
		c.mu.Unlock()
		c.notify()
		return
	}
	if err != nil {
		log.Printf("conversion lookup (%s) failed: %v", side, err)
		c.err = err
		c.updateState()
		c.mu.Unlock()
		c.notify()
		return
	}

	if side == SideTo {
		prior := c.quote
		if prior == nil {
			prior = &domain.ConversionQuote{
				From: domain.CurrencyRef{Currency: c.inputs.From},
				To:   domain.CurrencyRef{Currency: c.inputs.To},
			}
		}
		quote = domain.InvertQuote(prior, quote)
		c.inputs.Amount = quote.Amount.String()
		c.meta = PageMetaFor(c.baseURL, c.inputs)
	}

	c.quote = quote
	c.err = nil
	c.reconcile()
	c.updateState()
	c.mu.Unlock()
	c.notify()
}

// reconcile writes the settled amounts into the fields that differ from them.
func (c *Controller) reconcile() {
	if amount := c.quote.Amount.String(); c.fromField != amount {
		c.fromField = amount
	}
	if c.toField != c.quote.Conversion {
		c.toField = c.quote.Conversion
	}
}

func (c *Controller) updateState() {
	switch {
	case c.state == StateEditingTo && c.to.pending():
	case c.state == StateEditingFrom && c.from.pending():
	case c.from.pending():
		c.state = StateEditingFrom
	case c.to.pending():
		c.state = StateEditingTo
	default:
		c.state = StateIdle
	}
}

func (c *Controller) notify() {
	select {
	case c.updated <- struct{}{}:
	default:
	}
}
