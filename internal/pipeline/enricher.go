package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"steamsync/internal/steam"
	"steamsync/internal/store"
)

// AchievementSource fetches global unlock percentages for one app.
type AchievementSource interface {
	AchievementPercentages(ctx context.Context, appID int64) ([]steam.AchievementPercentage, error)
}

// Enricher runs the best-effort achievement pass over newly written entries.
// Transport failures skip the app silently; nothing here ever quarantines.
type Enricher struct {
	client      AchievementSource
	store       *store.Store
	logger      *slog.Logger
	concurrency int
}

// NewEnricher creates an Enricher with the same connection-cap discipline as
// the batch fetcher.
func NewEnricher(client AchievementSource, st *store.Store, logger *slog.Logger, concurrency int) *Enricher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Enricher{client: client, store: st, logger: logger, concurrency: concurrency}
}

// Enrich fetches achievement lists concurrently for every app with a
// non-zero achievement total, then commits them per app. Returns the number
// of apps whose achievements were written.
func (e *Enricher) Enrich(ctx context.Context, apps []*store.App) int {
	eligible := make([]*store.App, 0, len(apps))
	for _, app := range apps {
		if app.AchievementsTotal > 0 {
			eligible = append(eligible, app)
		}
	}
	if len(eligible) == 0 {
		return 0
	}

	lists := make([][]steam.AchievementPercentage, len(eligible))
	var group errgroup.Group
	group.SetLimit(e.concurrency)
	for i, app := range eligible {
		group.Go(func() error {
			achievements, err := e.client.AchievementPercentages(ctx, app.AppID)
			if err != nil {
				e.logger.Debug("achievement fetch skipped", "appid", app.AppID, "error", err)
				return nil
			}
			lists[i] = achievements
			return nil
		})
	}
	_ = group.Wait()

	// Writes stay on the driver goroutine.
	enriched := 0
	for i, app := range eligible {
		if len(lists[i]) == 0 {
			continue
		}
		records := make([]store.Achievement, 0, len(lists[i]))
		for _, achievement := range lists[i] {
			records = append(records, store.Achievement{Name: achievement.Name, Percent: achievement.Percent})
		}
		if err := e.store.UpsertAchievements(ctx, app.PK, records); err != nil {
			e.logger.Warn("achievement write failed", "appid", app.AppID, "error", err)
			continue
		}
		enriched++
	}
	return enriched
}
