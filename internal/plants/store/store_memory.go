package store

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"sync"

	"sunflower/internal/plants/models"
)

// InMemoryPlantStore is an observable, process-local plant store.
type InMemoryPlantStore struct {
	mu     sync.RWMutex
	plants map[models.PlantID]models.Plant
	feed   *changeFeed
	logger *slog.Logger
}

// NewInMemoryPlantStore creates an empty store. A nil logger uses slog.Default.
func NewInMemoryPlantStore(logger *slog.Logger) *InMemoryPlantStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryPlantStore{
		plants: make(map[models.PlantID]models.Plant),
		feed:   newChangeFeed(),
		logger: logger,
	}
}

// Watch emits the matching plants now and after every upsert.
func (s *InMemoryPlantStore) Watch(ctx context.Context, zone models.GrowZone) (<-chan []models.Plant, error) {
	return watch(ctx, s.logger, s.feed, zone, func(ctx context.Context) ([]models.Plant, error) {
		return s.List(ctx, zone)
	}), nil
}

// List returns the matching plants ordered by name.
func (s *InMemoryPlantStore) List(ctx context.Context, zone models.GrowZone) ([]models.Plant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Plant, 0, len(s.plants))
	for _, p := range s.plants {
		if zone.IsSet() && p.GrowZoneNumber != zone {
			continue
		}
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b models.Plant) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

// Upsert replaces plants by ID. A done ctx aborts the write entirely.
func (s *InMemoryPlantStore) Upsert(ctx context.Context, plants []models.Plant) error {
	s.mu.Lock()
	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		return err
	}
	for _, p := range plants {
		s.plants[p.ID] = p
	}
	s.mu.Unlock()

	bump(s.feed)
	return nil
}
