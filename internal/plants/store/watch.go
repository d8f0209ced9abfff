package store

import (
	"context"
	"log/slog"

	"sunflower/internal/plants/models"
	"sunflower/pkg/platform/latest"
)

// changeFeed counts writes. Watchers re-query on every new revision.
type changeFeed = latest.Value[uint64]

func newChangeFeed() *changeFeed {
	return latest.NewWith[uint64](0)
}

func bump(feed *changeFeed) {
	feed.Update(func(cur uint64, _ bool) uint64 { return cur + 1 })
}

// watch runs query once per revision of feed and forwards each result on a
// conflated channel. Query errors are logged and the previous result stands.
func watch(ctx context.Context, logger *slog.Logger, feed *changeFeed, zone models.GrowZone, query func(context.Context) ([]models.Plant, error)) <-chan []models.Plant {
	out := latest.New[[]models.Plant]()
	ch := out.Subscribe(ctx)
	revisions := feed.Subscribe(ctx)

	go func() {
		for range revisions {
			plants, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.WarnContext(ctx, "plant watch query failed", "zone", zone.String(), "error", err)
				}
				continue
			}
			out.Publish(plants)
		}
	}()
	return ch
}
