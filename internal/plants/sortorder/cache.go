package sortorder

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"sunflower/internal/plants/metrics"
	"sunflower/internal/plants/models"
	"sunflower/internal/plants/ports"
)

const fetchKey = "sort_order"

// Cache fetches the custom sort order at most once per successful fetch and
// memoizes it for its own lifetime. Construct one per process and pass it to
// consumers.
type Cache struct {
	source   ports.SortOrderSource
	fallback models.SortOrder
	logger   *slog.Logger
	metrics  *metrics.Metrics

	group singleflight.Group

	mu     sync.RWMutex
	order  models.SortOrder
	cached bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// WithFallback replaces the empty ordering returned when a fetch fails.
func WithFallback(order models.SortOrder) Option {
	return func(c *Cache) { c.fallback = slices.Clone(order) }
}

// NewCache constructs a cache over source.
func NewCache(source ports.SortOrderSource, opts ...Option) *Cache {
	c := &Cache{
		source:   source,
		fallback: models.SortOrder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// GetOrFetch returns the memoized sort order, fetching it first if needed.
// Concurrent callers share one in-flight fetch. A failed fetch yields the
// fallback and is retried by the next call. If ctx ends while waiting, the
// caller gets the fallback and the shared fetch carries on for the others.
func (c *Cache) GetOrFetch(ctx context.Context) models.SortOrder {
	if order, ok := c.Cached(); ok {
		c.metrics.IncrementSortOrderMemoHits()
		return order
	}

	// The fetch is shared, so it must outlive any single caller's cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(fetchKey, func() (any, error) {
		// A fetch that completed between Cached and DoChan already stored a value.
		if order, ok := c.Cached(); ok {
			return order, nil
		}
		order, err := c.source.FetchSortOrder(fetchCtx)
		if err != nil {
			c.metrics.RecordSortOrderFetch("failure")
			return nil, err
		}
		c.metrics.RecordSortOrderFetch("success")
		c.store(order)
		return c.mustCached(), nil
	})

	select {
	case <-ctx.Done():
		c.logger.DebugContext(ctx, "sort order wait abandoned", "error", ctx.Err())
		return c.fallbackCopy()
	case res := <-ch:
		if res.Err != nil {
			c.logger.WarnContext(ctx, "sort order fetch failed, using fallback", "error", res.Err)
			return c.fallbackCopy()
		}
		return slices.Clone(res.Val.(models.SortOrder))
	}
}

// Stream returns a lazy single-element stream of the sort order. The fetch
// starts on this call; the channel is closed after the value is delivered or
// when ctx ends.
func (c *Cache) Stream(ctx context.Context) <-chan models.SortOrder {
	out := make(chan models.SortOrder, 1)
	go func() {
		defer close(out)
		order := c.GetOrFetch(ctx)
		select {
		case out <- order:
		case <-ctx.Done():
		}
	}()
	return out
}

// Cached returns the memoized sort order, if any.
func (c *Cache) Cached() (models.SortOrder, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.cached {
		return nil, false
	}
	return slices.Clone(c.order), true
}

// store memoizes order. The first successful writer wins.
func (c *Cache) store(order models.SortOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached {
		return
	}
	if order == nil {
		order = models.SortOrder{}
	}
	c.order = slices.Clone(order)
	c.cached = true
}

func (c *Cache) mustCached() models.SortOrder {
	order, _ := c.Cached()
	return order
}

func (c *Cache) fallbackCopy() models.SortOrder {
	return slices.Clone(c.fallback)
}
