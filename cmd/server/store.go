package main

import (
	"context"
	"fmt"
	"log/slog"

	"sunflower/internal/plants/ports"
	"sunflower/internal/plants/store"
	"sunflower/internal/platform/config"
)

// openStore opens the configured plant store and returns its release func.
func openStore(ctx context.Context, cfg config.Store, log *slog.Logger) (ports.PlantStore, func(), error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		s, err := store.OpenSQLite(cfg.DSN, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	case config.DriverPostgres:
		s, err := store.OpenPostgres(ctx, cfg.DSN, log)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return store.NewInMemoryPlantStore(log), func() {}, nil
	}
}
