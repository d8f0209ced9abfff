package pipeline

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"sunflower/internal/plants/metrics"
	"sunflower/internal/plants/models"
	"sunflower/pkg/platform/latest"
)

// Batch is one emission of the plant feed: the plants matching filter.
type Batch struct {
	Filter models.GrowZone
	Plants []models.Plant
}

// Pipeline combines the latest plant batch with the latest sort order and
// publishes the sorted result. Every change of either input triggers a
// recompute once both have been seen. Recomputes run on a dedicated sorter
// goroutine and results are conflated for subscribers.
type Pipeline struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	out     *latest.Value[models.PlantList]
}

// New constructs a Pipeline. A nil logger uses slog.Default.
func New(logger *slog.Logger, m *metrics.Metrics) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:  logger,
		metrics: m,
		out:     latest.New[models.PlantList](),
	}
}

// combined is the last-known pair of inputs. gen advances on every change.
type combined struct {
	mu         sync.Mutex
	batch      Batch
	order      models.SortOrder
	havePlants bool
	haveOrder  bool
	gen        uint64
}

func (c *combined) snapshot() (Batch, models.SortOrder, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batch, c.order, c.gen, c.havePlants && c.haveOrder
}

// Run drives the pipeline until ctx ends or both inputs are closed. A closed
// input keeps contributing its last value.
func (p *Pipeline) Run(ctx context.Context, plants <-chan Batch, orders <-chan models.SortOrder) error {
	state := &combined{}
	wake := make(chan struct{}, 1)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(wake)
		for plants != nil || orders != nil {
			select {
			case <-ctx.Done():
				return nil
			case b, ok := <-plants:
				if !ok {
					plants = nil
					continue
				}
				p.update(state, wake, func(c *combined) {
					c.batch = b
					c.havePlants = true
				})
			case o, ok := <-orders:
				if !ok {
					orders = nil
					continue
				}
				p.update(state, wake, func(c *combined) {
					c.order = o
					c.haveOrder = true
				})
			}
		}
		return nil
	})

	g.Go(func() error {
		var published uint64
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-wake:
				if !ok {
					return nil
				}
				batch, order, gen, ready := state.snapshot()
				if !ready || gen == published {
					continue
				}
				p.publish(batch, order)
				published = gen
			}
		}
	})

	return g.Wait()
}

func (p *Pipeline) update(state *combined, wake chan<- struct{}, apply func(*combined)) {
	state.mu.Lock()
	apply(state)
	state.gen++
	ready := state.havePlants && state.haveOrder
	state.mu.Unlock()

	if !ready {
		return
	}
	// depth-1 signal: a pending wake already covers this change
	select {
	case wake <- struct{}{}:
	default:
	}
}

func (p *Pipeline) publish(batch Batch, order models.SortOrder) {
	start := time.Now()
	sorted := SortPlants(batch.Plants, order)
	p.metrics.ObserveRecomputation(time.Since(start).Seconds())

	list, dropped := p.out.Update(func(cur models.PlantList, _ bool) models.PlantList {
		return models.PlantList{
			Plants:  sorted,
			Filter:  batch.Filter,
			Version: cur.Version + 1,
		}
	})
	p.metrics.AddConflated(dropped)
	p.logger.Debug("plant list recomputed", "version", list.Version, "filter", batch.Filter.String(), "count", len(sorted))
}

// Current returns the latest projection and whether one exists yet.
func (p *Pipeline) Current() (models.PlantList, bool) {
	list, ok := p.out.Load()
	if !ok {
		return list, false
	}
	list.Plants = slices.Clone(list.Plants)
	return list, true
}

// Subscribe returns a conflated stream of projections. A subscriber that falls
// behind observes only the newest value.
func (p *Pipeline) Subscribe(ctx context.Context) <-chan models.PlantList {
	return p.out.Subscribe(ctx)
}
