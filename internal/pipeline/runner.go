package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"steamsync/internal/config"
	"steamsync/internal/steam"
	"steamsync/internal/store"
)

// CatalogClient is the remote surface the runner needs.
type CatalogClient interface {
	AppList(ctx context.Context) (map[int64]string, error)
	Detailer
	AchievementSource
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	Selected    int
	Batches     int
	Written     int
	Quarantined int
	Transient   int
	Enriched    int
}

// Runner drives the pipeline end to end.
type Runner struct {
	cfg      *config.Config
	store    *store.Store
	client   CatalogClient
	logger   *slog.Logger
	fetcher  *Fetcher
	enricher *Enricher
	pacer    *Pacer
}

// RunnerOption configures optional Runner behavior.
type RunnerOption func(*runnerOptions)

type runnerOptions struct {
	clock Clock
}

// WithClock injects a clock, letting tests run without real delays.
func WithClock(clock Clock) RunnerOption {
	return func(o *runnerOptions) {
		o.clock = clock
	}
}

// NewRunner wires the pipeline components from configuration.
func NewRunner(cfg *config.Config, st *store.Store, client CatalogClient, logger *slog.Logger, opts ...RunnerOption) *Runner {
	options := &runnerOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return &Runner{
		cfg:      cfg,
		store:    st,
		client:   client,
		logger:   logger,
		fetcher:  NewFetcher(client, cfg.Pipeline.Concurrency),
		enricher: NewEnricher(client, st, logger, cfg.Pipeline.Concurrency),
		pacer: NewPacer(
			options.clock,
			time.Duration(cfg.Pipeline.MinBatchDelaySeconds)*time.Second,
			time.Duration(cfg.Pipeline.PerResultDelayMillis)*time.Millisecond,
		),
	}
}

// Run executes one full reconciliation pass. The only fatal conditions are
// an unobtainable listing and context cancellation; every per-id failure is
// resolved independently and the run continues.
func (r *Runner) Run(ctx context.Context) (*RunStats, error) {
	logger := r.logger.With("run_id", uuid.NewString())

	remote, err := r.listing(ctx)
	if err != nil {
		return nil, fmt.Errorf("obtain listing: %w", err)
	}
	if len(remote) == 0 {
		return nil, steam.ErrEmptyListing
	}

	stamps, err := r.store.AppStamps(ctx)
	if err != nil {
		return nil, fmt.Errorf("read local stamps: %w", err)
	}
	quarantined, err := r.store.QuarantinedAppIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read quarantine ledger: %w", err)
	}

	staleAfter := time.Duration(r.cfg.Pipeline.StaleDays) * 24 * time.Hour
	work := SelectWork(remote, stamps, quarantined, time.Now().UTC(), staleAfter)

	stats := &RunStats{Selected: len(work)}
	logger.Info("work set selected",
		"remote", len(remote),
		"local", len(stamps),
		"quarantined", len(quarantined),
		"selected", len(work),
	)

	batchSize := r.cfg.Pipeline.BatchSize
	previousResults := 0
	for start := 0; start < len(work); start += batchSize {
		end := min(start+batchSize, len(work))
		batch := work[start:end]

		if err := r.pacer.Wait(ctx, previousResults); err != nil {
			return stats, err
		}

		results := r.fetcher.FetchBatch(ctx, batch)
		written := make([]*store.App, 0, len(results))
		for _, result := range results {
			outcome := r.resolve(ctx, logger, remote, result)
			switch outcome.Kind {
			case OutcomeWritten:
				stats.Written++
				written = append(written, outcome.App)
			case OutcomePermanent:
				stats.Quarantined++
			case OutcomeTransient:
				stats.Transient++
			}
		}
		stats.Batches++

		withAchievements := 0
		for _, app := range written {
			if app.AchievementsTotal > 0 {
				withAchievements++
			}
		}
		if withAchievements > 0 {
			if err := r.pacer.Wait(ctx, withAchievements); err != nil {
				return stats, err
			}
			stats.Enriched += r.enricher.Enrich(ctx, written)
		}

		previousResults = len(results)
	}

	logger.Info("run complete",
		"written", stats.Written,
		"quarantined", stats.Quarantined,
		"transient", stats.Transient,
		"enriched", stats.Enriched,
	)
	return stats, nil
}

// resolve turns one fetch result into its final outcome, routing permanent
// failures to the quarantine ledger.
func (r *Runner) resolve(ctx context.Context, logger *slog.Logger, remote map[int64]string, result FetchResult) Outcome {
	name := remote[result.AppID]

	if result.Err != nil {
		logger.Warn("fetch failed", "appid", result.AppID, "name", name, "error", result.Err)
		return TransientFailure(result.AppID, result.Err.Error())
	}

	canonical, fault := Normalize(result.AppID, result.Envelope)
	if fault != nil {
		logger.Warn("payload rejected", "appid", result.AppID, "name", name, "reason", fault.Reason)
		r.quarantine(ctx, logger, result.AppID, name, fault.Reason)
		return PermanentFailure(result.AppID, fault.Reason)
	}

	app, err := r.store.UpsertApp(ctx, canonical.App, canonical.Categories, canonical.Genres)
	if err != nil {
		reason := fmt.Sprintf("storage: %v", err)
		logger.Error("entry write failed", "appid", result.AppID, "name", name, "error", err)
		r.quarantine(ctx, logger, result.AppID, name, reason)
		return PermanentFailure(result.AppID, reason)
	}

	return Written(app)
}

func (r *Runner) quarantine(ctx context.Context, logger *slog.Logger, appID int64, name, reason string) {
	if err := r.store.RecordQuarantine(ctx, appID, name, reason); err != nil {
		logger.Error("quarantine write failed", "appid", appID, "error", err)
	}
}

// listing reads the remote id space, preferring a configured local override
// file over the listing endpoint.
func (r *Runner) listing(ctx context.Context) (map[int64]string, error) {
	if r.cfg.Steam.AppListFile != "" {
		return steam.LoadAppListFile(r.cfg.Steam.AppListFile)
	}
	return r.client.AppList(ctx)
}
