// internal/client/searchctl/controller.go

// Package searchctl holds the client side of search: the live filter state,
// debounced searches and suggestions, load-more paging and saved searches.
//
// The Controller is safe for concurrent use. Its state changes only through
// a reducer; the mutex guarding it is never held across a network call.
// Debounced work runs on timer goroutines, and a per-request sequence number
// decides whether a response is still wanted when it arrives.
package searchctl

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/opportunityhub/internal/domain/filter"
	"github.com/dalemusser/opportunityhub/internal/domain/models"
	"go.uber.org/zap"
)

// Debounce delays.
const (
	DefaultQueryDelay   = 300 * time.Millisecond
	DefaultSuggestDelay = 200 * time.Millisecond
)

// API is the search API as seen by the controller. searchapi.Client
// implements it.
type API interface {
	Search(ctx context.Context, m filter.Model) (models.ResultPage, error)
	List(ctx context.Context, m filter.Model) (models.ResultPage, error)
	Suggest(ctx context.Context, q string) ([]models.Suggestion, error)
	Save(ctx context.Context, name string, snap filter.Snapshot) (models.SavedSearch, error)
	ListSaved(ctx context.Context) ([]models.SavedSearch, error)
	DeleteSaved(ctx context.Context, id string) error
	Authenticated() bool
}

// Options tune a Controller. Zero values take the defaults.
type Options struct {
	Clock        Clock
	QueryDelay   time.Duration
	SuggestDelay time.Duration
	Logger       *zap.Logger
}

// Controller owns the live search state.
type Controller struct {
	api          API
	clock        Clock
	queryDelay   time.Duration
	suggestDelay time.Duration
	log          *zap.Logger

	// base is the context for debounced work; Close cancels it.
	base   context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	state        State
	onChange     func(State)
	searchTimer  Timer
	suggestTimer Timer
	searchGen    uint64
	suggestGen   uint64
	closed       bool
}

// New creates a Controller in the initial state. Nothing is fetched until
// the first update or an explicit Search.
func New(api API, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	if opts.QueryDelay <= 0 {
		opts.QueryDelay = DefaultQueryDelay
	}
	if opts.SuggestDelay <= 0 {
		opts.SuggestDelay = DefaultSuggestDelay
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Controller{
		api:          api,
		clock:        opts.Clock,
		queryDelay:   opts.QueryDelay,
		suggestDelay: opts.SuggestDelay,
		log:          opts.Logger,
		base:         base,
		cancel:       cancel,
		state:        initialState(),
	}
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnChange registers fn to be called with the new state after every change.
// fn runs on the goroutine that made the change and must not block.
func (c *Controller) OnChange(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Close cancels pending debounced work and in-flight debounced requests.
// Later updates change state but schedule nothing.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.stopTimersLocked()
	c.mu.Unlock()
	c.cancel()
}

// UpdateQuery sets the text query, returns to page 1 and schedules a
// search. Queries of at least MinSuggestRunes also schedule suggestions;
// shorter ones clear them without a request.
func (c *Controller) UpdateQuery(q string) {
	c.mu.Lock()
	c.applyLocked(queryChanged{query: q})
	c.scheduleSearchLocked()
	if shortQuery(q) {
		c.stopSuggestLocked()
	} else {
		c.scheduleSuggestLocked()
	}
	s, fn := c.state, c.onChange
	c.mu.Unlock()
	notify(fn, s)
}

// UpdateFilters applies edit to a copy of the current facets, returns to
// page 1 and schedules a search.
func (c *Controller) UpdateFilters(edit func(*filter.Filters)) {
	c.mu.Lock()
	f := c.state.Model.Filters.Clone()
	edit(&f)
	c.applyLocked(filtersChanged{filters: f})
	c.scheduleSearchLocked()
	s, fn := c.state, c.onChange
	c.mu.Unlock()
	notify(fn, s)
}

// UpdateSorting sets the sort, returns to page 1 and schedules a search.
func (c *Controller) UpdateSorting(by filter.SortBy, order filter.SortOrder) {
	c.mu.Lock()
	c.applyLocked(sortChanged{by: by, order: order})
	c.scheduleSearchLocked()
	s, fn := c.state, c.onChange
	c.mu.Unlock()
	notify(fn, s)
}

// Search runs the current model from the first page immediately, cancelling
// any pending debounced search. It is also the retry after a failure.
func (c *Controller) Search(ctx context.Context) error {
	c.mu.Lock()
	c.stopSearchLocked()
	c.applyLocked(refreshRequested{})
	c.mu.Unlock()
	return c.runSearch(ctx, false)
}

// LoadMore fetches the next page and appends it. It does nothing when there
// is no next page or a search is already running.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	ok := c.state.HasMore && c.state.Status != Searching
	c.mu.Unlock()
	if !ok {
		return nil
	}
	return c.runSearch(ctx, true)
}

// Reset restores the default model, clears suggestions and searches
// immediately.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.stopTimersLocked()
	c.applyLocked(resetRequested{})
	s, fn := c.state, c.onChange
	c.mu.Unlock()
	notify(fn, s)
	return c.runSearch(ctx, false)
}

// ApplySavedSearch replaces the model with the saved snapshot merged into
// the defaults and searches immediately. Applying the same search twice
// yields the same model.
func (c *Controller) ApplySavedSearch(ctx context.Context, saved models.SavedSearch) error {
	c.mu.Lock()
	c.stopTimersLocked()
	c.applyLocked(savedApplied{snapshot: saved.Filters})
	s, fn := c.state, c.onChange
	c.mu.Unlock()
	notify(fn, s)
	return c.runSearch(ctx, false)
}

// Load replaces the whole model, for example from a deep link or command
// line, and searches immediately. The page is honoured as given.
func (c *Controller) Load(ctx context.Context, m filter.Model) error {
	c.mu.Lock()
	c.stopTimersLocked()
	c.applyLocked(modelReplaced{model: m})
	s, fn := c.state, c.onChange
	c.mu.Unlock()
	notify(fn, s)
	return c.runSearch(ctx, false)
}

// SaveSearch stores the current model under name. Without a caller
// identity it does nothing and returns the zero SavedSearch.
func (c *Controller) SaveSearch(ctx context.Context, name string) (models.SavedSearch, error) {
	if !c.api.Authenticated() {
		return models.SavedSearch{}, nil
	}
	snap := c.Snapshot().Model.Snapshot()
	saved, err := c.api.Save(ctx, name, snap)
	if err != nil {
		c.log.Warn("save search failed", zap.Error(err))
		return models.SavedSearch{}, err
	}
	c.dispatch(savedAdded{saved: saved})
	return saved, nil
}

// LoadSavedSearches refreshes the caller's saved searches. Without a caller
// identity it does nothing.
func (c *Controller) LoadSavedSearches(ctx context.Context) error {
	if !c.api.Authenticated() {
		return nil
	}
	list, err := c.api.ListSaved(ctx)
	if err != nil {
		c.log.Warn("load saved searches failed", zap.Error(err))
		return err
	}
	c.dispatch(savedListLoaded{list: list})
	return nil
}

// DeleteSavedSearch removes a saved search. Without a caller identity it
// does nothing.
func (c *Controller) DeleteSavedSearch(ctx context.Context, id string) error {
	if !c.api.Authenticated() {
		return nil
	}
	if err := c.api.DeleteSaved(ctx, id); err != nil {
		c.log.Warn("delete saved search failed", zap.String("id", id), zap.Error(err))
		return err
	}
	c.dispatch(savedRemoved{id: id})
	return nil
}

// runSearch issues one search. The response is applied only if no newer
// search was started, and no model change happened, in the meantime.
func (c *Controller) runSearch(ctx context.Context, loadMore bool) error {
	c.mu.Lock()
	c.applyLocked(searchStarted{loadMore: loadMore})
	seq := c.state.searchSeq
	m := c.state.Model.Clone()
	if loadMore {
		m.Page++
	}
	s, fn := c.state, c.onChange
	c.mu.Unlock()
	notify(fn, s)

	page, err := c.fetch(ctx, m)
	if err != nil {
		c.log.Warn("search failed", zap.Int("page", m.Page), zap.Error(err))
		c.dispatch(searchFailed{seq: seq, loadMore: loadMore, err: err})
		return err
	}
	c.dispatch(searchSucceeded{seq: seq, loadMore: loadMore, page: page})
	return nil
}

// fetch calls the search endpoint and, when that fails for any reason other
// than the caller going away, retries once against the plain listing.
func (c *Controller) fetch(ctx context.Context, m filter.Model) (models.ResultPage, error) {
	page, err := c.api.Search(ctx, m)
	if err == nil {
		return page, nil
	}
	if ctx.Err() != nil || errors.Is(err, context.Canceled) {
		return models.ResultPage{}, err
	}
	c.log.Info("search endpoint failed; falling back to listing", zap.Error(err))
	return c.api.List(ctx, m)
}

func (c *Controller) runSuggest(ctx context.Context) {
	c.mu.Lock()
	c.applyLocked(suggestStarted{})
	seq := c.state.suggestSeq
	q := c.state.Model.Query
	c.mu.Unlock()

	list, err := c.api.Suggest(ctx, q)
	if err != nil {
		c.log.Debug("suggestions failed", zap.Error(err))
		list = []models.Suggestion{}
	}
	c.dispatch(suggestionsSet{seq: seq, list: list})
}

func (c *Controller) scheduleSearchLocked() {
	c.stopSearchLocked()
	if c.closed {
		return
	}
	gen := c.searchGen
	c.searchTimer = c.clock.AfterFunc(c.queryDelay, func() {
		c.mu.Lock()
		current := gen == c.searchGen && !c.closed
		c.mu.Unlock()
		if current {
			_ = c.runSearch(c.base, false)
		}
	})
}

func (c *Controller) scheduleSuggestLocked() {
	c.stopSuggestLocked()
	if c.closed {
		return
	}
	gen := c.suggestGen
	c.suggestTimer = c.clock.AfterFunc(c.suggestDelay, func() {
		c.mu.Lock()
		current := gen == c.suggestGen && !c.closed
		c.mu.Unlock()
		if current {
			c.runSuggest(c.base)
		}
	})
}

// stopSearchLocked cancels the pending search. The generation bump covers a
// timer that already fired but has not taken the lock yet.
func (c *Controller) stopSearchLocked() {
	c.searchGen++
	if c.searchTimer != nil {
		c.searchTimer.Stop()
		c.searchTimer = nil
	}
}

func (c *Controller) stopSuggestLocked() {
	c.suggestGen++
	if c.suggestTimer != nil {
		c.suggestTimer.Stop()
		c.suggestTimer = nil
	}
}

func (c *Controller) stopTimersLocked() {
	c.stopSearchLocked()
	c.stopSuggestLocked()
}

func (c *Controller) applyLocked(a action) {
	c.state = reduce(c.state, a)
}

func (c *Controller) dispatch(a action) {
	c.mu.Lock()
	c.applyLocked(a)
	s, fn := c.state, c.onChange
	c.mu.Unlock()
	notify(fn, s)
}

func notify(fn func(State), s State) {
	if fn != nil {
		fn(s)
	}
}
