package main

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// RefreshStaleInsights regenerates every industry whose next update is due.
// Each industry uses the most recently updated profile in it for location
// and experience; one failing industry does not stop the rest.
func (workerConfig *WorkerConfig) RefreshStaleInsights(ctx context.Context) (int, error) {
	industries, err := workerConfig.DB.ListStaleIndustries(ctx, workerConfig.now())
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, industry := range industries {
		if ctx.Err() != nil {
			return refreshed, ctx.Err()
		}
		profile, err := workerConfig.DB.GetIndustryProfile(ctx, industry)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			workerConfig.Logger.Warn("skipping industry refresh", "industry", industry, "error", err)
			continue
		}
		if _, err := workerConfig.generateInsights(ctx, industry, profile.Location, profile.Experience); err != nil {
			workerConfig.Logger.Error("industry refresh failed", "industry", industry, "error", err)
			continue
		}
		refreshed++
	}
	return refreshed, nil
}

// StartRefresher runs RefreshStaleInsights once and then on every tick
// until ctx is done.
func (workerConfig *WorkerConfig) StartRefresher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		n, err := workerConfig.RefreshStaleInsights(ctx)
		if err != nil && ctx.Err() == nil {
			workerConfig.Logger.Error("insight refresh failed", "error", err)
		} else if n > 0 {
			workerConfig.Logger.Info("insights refreshed", "industries", n)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
