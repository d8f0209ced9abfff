// Package refresh fetches plants from the remote API and stores them locally.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"sunflower/internal/plants/metrics"
	"sunflower/internal/plants/models"
	"sunflower/internal/plants/ports"
	"sunflower/pkg/platform/sentinel"
)

const publishTimeout = 2 * time.Second

// Service performs fetch-and-store refreshes of the local plant cache.
type Service struct {
	api       ports.PlantAPI
	store     ports.PlantStore
	publisher ports.EventPublisher
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds each refresh. Zero leaves refreshes unbounded.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithPublisher emits a RefreshEvent after every refresh.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a refresh Service.
func New(api ports.PlantAPI, store ports.PlantStore, opts ...Option) *Service {
	s := &Service{
		api:    api,
		store:  store,
		logger: slog.Default(),
		tracer: otel.Tracer("sunflower/plants/refresh"),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Refresh fetches the plants for zone (every plant for NoGrowZone) and
// upserts them. Nothing is written once ctx is done. When the configured
// bound elapses the error wraps sentinel.ErrRefreshTimeout.
func (s *Service) Refresh(ctx context.Context, zone models.GrowZone) error {
	start := s.now()
	event := models.RefreshEvent{ID: uuid.New(), Filter: zone, At: start}

	ctx, span := s.tracer.Start(ctx, "plants.refresh", trace.WithAttributes(
		attribute.String("refresh.id", event.ID.String()),
		attribute.Int("plants.grow_zone", int(zone)),
	))
	defer span.End()

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeoutCause(ctx, s.timeout, sentinel.ErrRefreshTimeout)
		defer cancel()
	}

	count, err := s.fetchAndStore(runCtx, zone)
	if err != nil && errors.Is(context.Cause(runCtx), sentinel.ErrRefreshTimeout) {
		err = fmt.Errorf("refresh zone %s after %s: %w", zone, s.timeout, sentinel.ErrRefreshTimeout)
	}

	event.Count = count
	event.Duration = s.now().Sub(start)
	event.Outcome = outcomeOf(err)
	if err != nil {
		event.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, string(event.Outcome))
	}
	span.SetAttributes(attribute.Int("plants.count", count), attribute.String("refresh.outcome", string(event.Outcome)))
	s.metrics.ObserveRefresh(string(event.Outcome), event.Duration.Seconds())

	s.logger.InfoContext(ctx, "plant refresh finished",
		"refresh_id", event.ID.String(),
		"zone", zone.String(),
		"outcome", event.Outcome,
		"count", count,
		"duration_ms", event.Duration.Milliseconds(),
	)
	s.publish(ctx, event)
	return err
}

func (s *Service) fetchAndStore(ctx context.Context, zone models.GrowZone) (int, error) {
	var (
		plants []models.Plant
		err    error
	)
	if zone.IsSet() {
		plants, err = s.api.FetchByZone(ctx, zone)
	} else {
		plants, err = s.api.FetchAll(ctx)
	}
	if err != nil {
		return 0, err
	}
	// a superseded or timed-out refresh must not overwrite newer state
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.store.Upsert(ctx, plants); err != nil {
		return 0, fmt.Errorf("store plants: %w", err)
	}
	return len(plants), nil
}

func (s *Service) publish(ctx context.Context, event models.RefreshEvent) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(pubCtx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish refresh event", "refresh_id", event.ID.String(), "error", err)
	}
}

func outcomeOf(err error) models.RefreshOutcome {
	switch {
	case err == nil:
		return models.RefreshSucceeded
	case errors.Is(err, sentinel.ErrRefreshTimeout):
		return models.RefreshTimedOut
	case errors.Is(err, context.Canceled):
		return models.RefreshCanceled
	default:
		return models.RefreshFailed
	}
}
