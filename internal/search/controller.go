package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/windoze95/saltybytes-mealsearch/internal/config"
	"github.com/windoze95/saltybytes-mealsearch/internal/logger"
	"github.com/windoze95/saltybytes-mealsearch/internal/mealdb"
	"github.com/windoze95/saltybytes-mealsearch/internal/models"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet interval between the last keystroke and the
// fetch.
const DefaultDebounce = 500 * time.Millisecond

// ErrUnknownItem is returned by Toggle for an ID that is not in the
// current results.
var ErrUnknownItem = errors.New("item is not in the current results")

// ErrClosed is returned by Toggle after Close.
var ErrClosed = errors.New("search screen is closed")

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce sets the quiet interval.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithCollapsedLines sets the description height of collapsed rows.
func WithCollapsedLines(n int) Option {
	return func(c *Controller) { c.collapsedLines = n }
}

// WithScreenText sets the labels used when rendering.
func WithScreenText(text *config.ScreenText) Option {
	return func(c *Controller) { c.text = text }
}

// WithOnChange registers a callback that receives every new Screen in
// version order. It must not call back into the Controller synchronously.
func WithOnChange(fn func(Screen)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithLogger sets the logger used for fetch outcomes.
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// Controller owns the state of one search screen: the query, the latest
// results, the expansion side table and the debounce timer. Create one per
// mounted screen and Close it on unmount.
type Controller struct {
	searcher       mealdb.Searcher
	debounce       time.Duration
	collapsedLines int
	text           *config.ScreenText
	onChange       func(Screen)
	log            *zap.Logger

	debouncer *Debouncer
	ctx       context.Context
	cancel    context.CancelFunc

	mu         sync.Mutex
	query      string
	meals      []models.Meal
	expansions Expansions
	status     Status
	seq        uint64 // bumped on every query change and every issued fetch
	version    uint64
	closed     bool

	notifyMu sync.Mutex
	notified uint64
}

// NewController creates a Controller that searches with searcher.
func NewController(searcher mealdb.Searcher, opts ...Option) *Controller {
	c := &Controller{
		searcher:       searcher,
		debounce:       DefaultDebounce,
		collapsedLines: DefaultCollapsedLines,
		text:           config.DefaultScreenText(),
		log:            logger.Get(),
		expansions:     Expansions{},
		status:         StatusIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.debouncer = NewDebouncer(c.debounce)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// SetQuery records a keystroke. Results are cleared at once; a non-empty
// query re-arms the debounce timer and an empty one cancels it.
func (c *Controller) SetQuery(query string) Screen {
	c.mu.Lock()
	if c.closed || query == c.query {
		screen := c.renderLocked()
		c.mu.Unlock()
		return screen
	}

	c.query = query
	c.meals = nil
	c.expansions.Reset()
	c.seq++

	if query == "" {
		c.status = StatusIdle
		c.debouncer.Cancel()
	} else {
		c.status = StatusPending
		armed := c.seq
		c.debouncer.Trigger(func() { c.fetch(armed) })
	}

	c.version++
	screen := c.renderLocked()
	c.mu.Unlock()

	c.notify(screen)
	return screen
}

// Clear resets the query, empties the results and cancels any pending
// search.
func (c *Controller) Clear() Screen {
	return c.SetQuery("")
}

// Toggle flips the expansion of the row with the given meal ID.
func (c *Controller) Toggle(id string) (Screen, error) {
	c.mu.Lock()
	if c.closed {
		screen := c.renderLocked()
		c.mu.Unlock()
		return screen, ErrClosed
	}
	if models.FindMeal(c.meals, id) < 0 {
		screen := c.renderLocked()
		c.mu.Unlock()
		return screen, ErrUnknownItem
	}

	c.expansions.Toggle(id)
	c.version++
	screen := c.renderLocked()
	c.mu.Unlock()

	c.notify(screen)
	return screen, nil
}

// Screen renders the current state.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderLocked()
}

// Close cancels the pending timer and any in-flight fetch. Later
// completions are dropped and later operations change nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.debouncer.Stop()
	c.cancel()
}

// fetch runs on the debounce timer goroutine. armed is the sequence number
// of the keystroke that started the timer; a timer that fires after a newer
// keystroke must not search for that keystroke's query.
func (c *Controller) fetch(armed uint64) {
	c.mu.Lock()
	if c.closed || c.seq != armed || c.query == "" {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq, query := c.seq, c.query
	c.mu.Unlock()

	meals, err := c.searcher.Search(c.ctx, query)
	c.complete(seq, query, meals, err)
}

func (c *Controller) complete(seq uint64, query string, meals []models.Meal, err error) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		c.log.Debug("discarding stale search result",
			zap.String("query", query),
			zap.Uint64("seq", seq),
		)
		return
	}

	if err != nil {
		c.log.Warn("search failed", zap.String("query", query), zap.Error(err))
		c.meals = nil
		c.status = StatusFailed
	} else {
		c.meals = append([]models.Meal(nil), meals...)
		c.status = StatusReady
	}
	c.expansions.Reset()
	c.version++
	screen := c.renderLocked()
	c.mu.Unlock()

	c.notify(screen)
}

func (c *Controller) renderLocked() Screen {
	return Render(State{
		Version:    c.version,
		Query:      c.query,
		Meals:      c.meals,
		Expansions: c.expansions,
		Status:     c.status,
	}, c.text, c.collapsedLines)
}

func (c *Controller) notify(screen Screen) {
	if c.onChange == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if screen.Version <= c.notified {
		return
	}
	c.notified = screen.Version
	c.onChange(screen)
}
