// Package viewmodel owns the grow-zone filter, coordinates refreshes for it
// and exposes the sorted plant list and status flags to the UI.
package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"sunflower/internal/plants/metrics"
	"sunflower/internal/plants/models"
	"sunflower/internal/plants/pipeline"
	"sunflower/internal/plants/ports"
	"sunflower/pkg/platform/latest"
)

// SortOrderStream provides the sort order as a lazy stream.
type SortOrderStream interface {
	Stream(ctx context.Context) <-chan models.SortOrder
}

// ViewModel is safe for concurrent use.
//
// Every filter change starts a new refresh generation and cancels the
// previous one. Only the current generation may touch Status, so a
// superseded refresh can neither clear the loading flag of its successor nor
// surface its own error.
type ViewModel struct {
	store     ports.PlantStore
	refresher ports.PlantRefresher
	orders    SortOrderStream
	pipeline  *pipeline.Pipeline
	logger    *slog.Logger
	metrics   *metrics.Metrics

	filter *latest.Value[models.GrowZone]
	status *latest.Value[models.Status]

	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	inFlight bool
	closed   bool
}

// New constructs a ViewModel with no filter selected. Call Start to begin
// loading.
func New(store ports.PlantStore, refresher ports.PlantRefresher, orders SortOrderStream, logger *slog.Logger, m *metrics.Metrics) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	baseCtx, stop := context.WithCancel(context.Background())
	return &ViewModel{
		store:     store,
		refresher: refresher,
		orders:    orders,
		pipeline:  pipeline.New(logger, m),
		logger:    logger,
		metrics:   m,
		filter:    latest.NewWith(models.NoGrowZone),
		status:    latest.NewWith(models.Status{Filter: models.NoGrowZone}),
		baseCtx:   baseCtx,
		stop:      stop,
	}
}

// Start refreshes the current selection and runs the plant feed until ctx
// ends. The feed follows the latest filter: each change replaces the store
// watch and asks for the sort order again, and every emission is combined
// with the sort order.
func (vm *ViewModel) Start(ctx context.Context) error {
	vm.selectFilter(vm.Filter())

	batches := make(chan pipeline.Batch)
	orders := make(chan models.SortOrder)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return vm.feed(ctx, batches, orders)
	})
	g.Go(func() error {
		return vm.pipeline.Run(ctx, batches, orders)
	})
	return g.Wait()
}

// SetFilter selects zone and refreshes it. NoGrowZone clears the filter.
func (vm *ViewModel) SetFilter(zone models.GrowZone) {
	vm.selectFilter(zone)
}

// ClearFilter shows every plant and refreshes the full catalogue.
func (vm *ViewModel) ClearFilter() {
	vm.selectFilter(models.NoGrowZone)
}

// Filter returns the current selection.
func (vm *ViewModel) Filter() models.GrowZone {
	zone, _ := vm.filter.Load()
	return zone
}

// IsFiltered reports whether a grow zone is selected.
func (vm *ViewModel) IsFiltered() bool {
	return vm.Filter().IsSet()
}

// Plants returns the latest sorted plant list.
func (vm *ViewModel) Plants() (models.PlantList, bool) {
	return vm.pipeline.Current()
}

// SubscribePlants streams sorted plant lists, conflated to the newest.
func (vm *ViewModel) SubscribePlants(ctx context.Context) <-chan models.PlantList {
	return vm.pipeline.Subscribe(ctx)
}

// Status returns the current UI flags.
func (vm *ViewModel) Status() models.Status {
	st, _ := vm.status.Load()
	return st
}

// SubscribeStatus streams status changes, conflated to the newest.
func (vm *ViewModel) SubscribeStatus(ctx context.Context) <-chan models.Status {
	return vm.status.Subscribe(ctx)
}

// MessageShown acknowledges the pending message so it is not shown again.
func (vm *ViewModel) MessageShown() {
	vm.status.Update(func(cur models.Status, _ bool) models.Status {
		cur.Message = ""
		return cur
	})
}

// Close cancels any in-flight refresh and waits for it to finish.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	vm.closed = true
	vm.mu.Unlock()

	vm.stop()
	vm.wg.Wait()
}

func (vm *ViewModel) selectFilter(zone models.GrowZone) {
	if zone < 0 {
		zone = models.NoGrowZone
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed {
		return
	}

	if vm.cancel != nil {
		vm.cancel()
		if vm.inFlight {
			vm.metrics.IncrementRefreshesCanceled()
			vm.logger.Debug("superseded in-flight refresh", "generation", vm.gen)
		}
	}
	vm.gen++
	gen := vm.gen
	ctx, cancel := context.WithCancel(vm.baseCtx)
	vm.cancel = cancel
	vm.inFlight = true

	vm.filter.Publish(zone)
	vm.status.Update(func(cur models.Status, _ bool) models.Status {
		cur.Filter = zone
		cur.Loading = true
		return cur
	})

	vm.wg.Add(1)
	go vm.refresh(ctx, gen, zone)
}

func (vm *ViewModel) refresh(ctx context.Context, gen uint64, zone models.GrowZone) {
	defer vm.wg.Done()

	err := vm.refresher.Refresh(ctx, zone)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if gen != vm.gen {
		return
	}
	vm.inFlight = false
	vm.cancel()
	vm.cancel = nil

	// Close cancels the current generation; that is not a user-facing failure.
	showErr := err != nil && !(errors.Is(err, context.Canceled) && vm.closed)
	if err != nil {
		vm.logger.Warn("plant refresh failed", "zone", zone.String(), "error", err)
	}
	vm.status.Update(func(cur models.Status, _ bool) models.Status {
		cur.Loading = false
		if showErr {
			cur.Message = err.Error()
		}
		return cur
	})
}

// feed switches the store watch to each newly selected filter and forwards
// emissions of the current watch only. Every switch also re-reads the sort
// order stream: the cache answers from its memo once a fetch has succeeded,
// and retries a fetch that failed before. Unchanged orders are not forwarded.
func (vm *ViewModel) feed(ctx context.Context, out chan<- pipeline.Batch, orderOut chan<- models.SortOrder) error {
	defer close(out)
	defer close(orderOut)

	filters := vm.filter.Subscribe(ctx)
	var (
		plants      <-chan []models.Plant
		orders      <-chan models.SortOrder
		sent        models.SortOrder
		haveSent    bool
		zone        models.GrowZone
		cancelWatch context.CancelFunc = func() {}
	)
	defer func() { cancelWatch() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case z, ok := <-filters:
			if !ok {
				return nil
			}
			if plants != nil && z == zone {
				continue
			}
			cancelWatch()
			watchCtx, cancel := context.WithCancel(ctx)
			ch, err := vm.store.Watch(watchCtx, z)
			if err != nil {
				cancel()
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watch plants for zone %s: %w", z, err)
			}
			plants, zone, cancelWatch = ch, z, cancel
			orders = vm.orders.Stream(watchCtx)
		case ps, ok := <-plants:
			if !ok {
				plants = nil
				continue
			}
			select {
			case out <- pipeline.Batch{Filter: zone, Plants: ps}:
			case <-ctx.Done():
				return nil
			}
		case order, ok := <-orders:
			if !ok {
				orders = nil
				continue
			}
			if haveSent && slices.Equal(order, sent) {
				continue
			}
			select {
			case orderOut <- order:
				sent, haveSent = order, true
			case <-ctx.Done():
				return nil
			}
		}
	}
}
