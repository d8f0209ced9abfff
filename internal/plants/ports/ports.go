// Package ports defines the collaborator interfaces of the plants module.
// Interfaces are placed here when consumed by more than one package.
package ports

import (
	"context"

	"sunflower/internal/plants/models"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

// PlantAPI is the remote plant catalogue. Any call may fail with a transport
// error wrapping sentinel.ErrNetwork.
type PlantAPI interface {
	// FetchAll returns the full catalogue.
	FetchAll(ctx context.Context) ([]models.Plant, error)

	// FetchByZone returns the plants of a single grow zone.
	FetchByZone(ctx context.Context, zone models.GrowZone) ([]models.Plant, error)

	// FetchSortOrder returns the custom display order.
	FetchSortOrder(ctx context.Context) (models.SortOrder, error)
}

// SortOrderSource produces the custom sort order.
type SortOrderSource interface {
	FetchSortOrder(ctx context.Context) (models.SortOrder, error)
}

// PlantStore is the local persistence of plants.
type PlantStore interface {
	// Watch emits the plants matching zone (all plants for NoGrowZone) ordered
	// by name, first immediately and then after every change. Emissions are
	// conflated. The channel closes when ctx is done.
	Watch(ctx context.Context, zone models.GrowZone) (<-chan []models.Plant, error)

	// List returns the current plants matching zone ordered by name.
	List(ctx context.Context, zone models.GrowZone) ([]models.Plant, error)

	// Upsert inserts or replaces plants by ID.
	Upsert(ctx context.Context, plants []models.Plant) error
}

// EventPublisher emits refresh events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event models.RefreshEvent) error
}

// PlantRefresher fetches plants for a filter and stores them locally.
type PlantRefresher interface {
	Refresh(ctx context.Context, zone models.GrowZone) error
}
