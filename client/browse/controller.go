// Package browse drives a paged, filterable catalogue view over the
// KADA Connect API. It owns the search debounce, filter state, paging
// and the discarding of stale responses, leaving the caller to render.
package browse

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/velizhask/KADA-Connect/client"
)

// Query is the full fetch state of a browse view.
type Query struct {
	Search  string
	Filters map[string]string
	Page    int
	Limit   int
}

func (q Query) clone() Query {
	filters := make(map[string]string, len(q.Filters))
	for key, value := range q.Filters {
		filters[key] = value
	}
	q.Filters = filters
	return q
}

// Fetcher loads one page of results for a query.
type Fetcher[T any] interface {
	FetchPage(ctx context.Context, q Query) (client.Page[T], error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc[T any] func(ctx context.Context, q Query) (client.Page[T], error)

// FetchPage implements Fetcher.
func (f FetcherFunc[T]) FetchPage(ctx context.Context, q Query) (client.Page[T], error) {
	return f(ctx, q)
}

// State is a snapshot of the view. SearchInput is the raw term as
// typed; Query.Search only catches up once the input has settled. On a
// failed fetch Err is set and the previously loaded items stay in place.
type State[T any] struct {
	Query       Query
	SearchInput string
	Items       []T
	Pagination  client.Pagination
	Loading     bool
	Err         error
}

// Controller coordinates fetches for one catalogue view. All methods
// are safe for concurrent use.
type Controller[T any] struct {
	fetcher   Fetcher[T]
	debouncer *Debouncer
	limit     int

	mu          sync.Mutex
	query       Query
	searchInput string
	items       []T
	pagination  client.Pagination
	loading     bool
	err         error
	generation  uint64
	cancel      context.CancelFunc

	updates chan struct{}
	closed  chan struct{}
}

// ControllerOption customises a Controller.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	limit    int
	debounce time.Duration
}

// WithLimit sets the page size requested from the API.
func WithLimit(limit int) ControllerOption {
	return func(cfg *controllerConfig) {
		cfg.limit = limit
	}
}

// WithDebounce overrides the search settle time.
func WithDebounce(delay time.Duration) ControllerOption {
	return func(cfg *controllerConfig) {
		cfg.debounce = delay
	}
}

// NewController builds a controller and performs the initial fetch.
func NewController[T any](fetcher Fetcher[T], opts ...ControllerOption) *Controller[T] {
	cfg := controllerConfig{limit: 20, debounce: DefaultDebounce}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller[T]{
		fetcher:   fetcher,
		debouncer: NewDebouncer(cfg.debounce),
		limit:     cfg.limit,
		query:     Query{Filters: map[string]string{}, Page: 1, Limit: cfg.limit},
		updates:   make(chan struct{}, 1),
		closed:    make(chan struct{}),
	}

	go c.watchSearch()
	c.startFetch(c.snapshotQuery())
	return c
}

func (c *Controller[T]) watchSearch() {
	for {
		select {
		case term := <-c.debouncer.C():
			c.applySearch(term)
		case <-c.closed:
			return
		}
	}
}

// SetSearch records a new search term. The raw value is visible in the
// state immediately; the fetch fires once input has settled, so typing
// quickly produces a single request.
func (c *Controller[T]) SetSearch(term string) {
	term = strings.TrimSpace(term)

	c.mu.Lock()
	c.searchInput = term
	c.mu.Unlock()
	c.notify()

	c.debouncer.Set(term)
}

func (c *Controller[T]) applySearch(term string) {
	c.mu.Lock()
	if c.query.Search == term {
		c.mu.Unlock()
		return
	}
	c.query.Search = term
	c.query.Page = 1
	q := c.query.clone()
	c.mu.Unlock()

	c.startFetch(q)
}

// SetFilter sets one categorical filter and resets to the first page.
// An empty value or the catch-all sentinel removes the filter.
func (c *Controller[T]) SetFilter(key, value string) {
	c.mu.Lock()
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "all") {
		delete(c.query.Filters, key)
	} else {
		c.query.Filters[key] = value
	}
	c.query.Page = 1
	q := c.query.clone()
	c.mu.Unlock()

	c.startFetch(q)
}

// ClearAll drops the search term and every filter, back to page one.
func (c *Controller[T]) ClearAll() {
	c.debouncer.Set("")

	c.mu.Lock()
	c.searchInput = ""
	c.query = Query{Filters: map[string]string{}, Page: 1, Limit: c.limit}
	q := c.query.clone()
	c.mu.Unlock()

	c.startFetch(q)
}

// ChangePage moves to the given page. Targets outside 1..TotalPages are
// ignored; until the first response reports a total, only page one is
// considered valid.
func (c *Controller[T]) ChangePage(page int) {
	c.mu.Lock()
	totalPages := c.pagination.TotalPages
	if totalPages <= 0 {
		totalPages = 1
	}
	if page < 1 || page > totalPages {
		c.mu.Unlock()
		return
	}
	if page == c.query.Page {
		c.mu.Unlock()
		return
	}
	c.query.Page = page
	q := c.query.clone()
	c.mu.Unlock()

	c.startFetch(q)
}

// Refresh refetches the current query.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	q := c.query.clone()
	c.mu.Unlock()

	c.startFetch(q)
}

// startFetch launches an asynchronous fetch for q. Any in-flight fetch
// is cancelled and its response, if it still arrives, is discarded via
// the generation counter.
func (c *Controller[T]) startFetch(q Query) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.loading = true
	c.mu.Unlock()
	c.notify()

	go func() {
		page, err := c.fetcher.FetchPage(ctx, q)

		c.mu.Lock()
		if gen != c.generation {
			c.mu.Unlock()
			return
		}
		c.loading = false
		if err != nil {
			c.err = err
		} else {
			c.err = nil
			c.items = page.Data
			c.pagination = page.Pagination
		}
		c.mu.Unlock()
		c.notify()
	}()
}

func (c *Controller[T]) snapshotQuery() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.clone()
}

// State returns a snapshot of the current view.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return State[T]{
		Query:       c.query.clone(),
		SearchInput: c.searchInput,
		Items:       items,
		Pagination:  c.pagination,
		Loading:     c.loading,
		Err:         c.err,
	}
}

// Window lays out the pager for the current state.
func (c *Controller[T]) Window() []PageItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Window(c.pagination.Page, c.pagination.TotalPages)
}

// Updates signals after every state change. The channel holds at most
// one pending notification; consumers re-read State after each receive.
func (c *Controller[T]) Updates() <-chan struct{} {
	return c.updates
}

func (c *Controller[T]) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Close stops the controller and cancels any in-flight fetch.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	// Bump the generation so a response racing with shutdown is dropped.
	c.generation++
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()

	c.debouncer.Stop()
	close(c.closed)
}
