package sortorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"sunflower/internal/plants/models"
	"sunflower/internal/plants/ports"
)

const (
	// Redis key holding the JSON-encoded sort order.
	sortOrderKey = "sunflower:sort_order"

	defaultRedisTTL = time.Hour
)

// RedisSource shares the remote sort order between instances through Redis.
// Misses and Redis errors fall through to the wrapped source.
type RedisSource struct {
	client redis.UniversalClient
	next   ports.SortOrderSource
	ttl    time.Duration
	logger *slog.Logger
}

// RedisSourceOption configures a RedisSource.
type RedisSourceOption func(*RedisSource)

// WithTTL sets how long Redis keeps the shared copy.
func WithTTL(ttl time.Duration) RedisSourceOption {
	return func(s *RedisSource) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithRedisLogger sets the logger.
func WithRedisLogger(logger *slog.Logger) RedisSourceOption {
	return func(s *RedisSource) { s.logger = logger }
}

// NewRedisSource wraps next with a Redis read-through layer.
func NewRedisSource(client redis.UniversalClient, next ports.SortOrderSource, opts ...RedisSourceOption) *RedisSource {
	s := &RedisSource{
		client: client,
		next:   next,
		ttl:    defaultRedisTTL,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// FetchSortOrder returns the shared copy when present, otherwise fetches from
// the wrapped source and stores the result.
func (s *RedisSource) FetchSortOrder(ctx context.Context) (models.SortOrder, error) {
	raw, err := s.client.Get(ctx, sortOrderKey).Bytes()
	switch {
	case err == nil:
		var order models.SortOrder
		jerr := json.Unmarshal(raw, &order)
		if jerr == nil {
			return order, nil
		}
		s.logger.WarnContext(ctx, "discarding malformed cached sort order", "error", jerr)
	case errors.Is(err, redis.Nil):
	default:
		s.logger.WarnContext(ctx, "redis sort order lookup failed", "error", err)
	}

	order, err := s.next.FetchSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return order, nil
	}
	if err := s.client.Set(ctx, sortOrderKey, payload, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "redis sort order store failed", "error", err)
	}
	return order, nil
}
