package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jmallard/shelfwatch/core/series"
	"github.com/jmallard/shelfwatch/core/smooth"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/outwriter"
	"github.com/jmallard/shelfwatch/schema"
)

// runForecastCore performs the common enumeration, projection and tracking steps.
func runForecastCore(ctx context.Context, cfg *contract.Config, records []schema.SalesRecord, mgr contract.CacheManager) (*schema.ForecastTable, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogForecastHeader(cfg, len(records))
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	historyStore := mgr.GetHistoryStore()
	if historyStore != nil {
		startTime := time.Now()
		configParams := map[string]any{
			"horizon":      cfg.HorizonDays,
			"workers":      cfg.Workers,
			"result_limit": cfg.ResultLimit,
			"region":       string(cfg.Region),
			"data_dir":     cfg.DataDir,
		}
		var err error
		runID, err = historyStore.BeginRun(startTime, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	// --- 1. Projection Phase (with memoization) ---
	table, err := cachedRunForecast(ctx, cfg, records, mgr)
	if err != nil {
		return nil, err
	}

	// --- 2. End Run Tracking ---
	if historyStore != nil && runID > 0 {
		for _, result := range table.Results {
			if err := historyStore.RecordForecast(runID, result); err != nil {
				logTrackingError(result.Item, result.Location, err)
			}
		}
		endTime := time.Now()
		if err := historyStore.EndRun(runID, endTime, table.Len()); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return table, nil
}

// RunForecast projects demand for every (item, location) pair in the ledger
// using a worker pool of cfg.Workers goroutines. Pairs without enough history
// or with a failed fit are skipped and counted, never surfaced as errors.
//
// The output is identical for any worker count: pairs are enumerated in a
// sorted order and each worker writes its result to a dedicated slot.
func RunForecast(ctx context.Context, cfg *contract.Config, records []schema.SalesRecord) (*schema.ForecastTable, error) {
	pairs := series.Pairs(records)

	// Note: workers write to the 'slots' slice concurrently, but each
	// goroutine writes to a *unique* index (slots[idx]), which is safe.
	slots := make([]*schema.ForecastResult, len(pairs))

	idxCh := make(chan int, len(pairs))
	var wg sync.WaitGroup

	// Start worker pool
	for range cfg.Workers {
		wg.Go(func() {
			for idx := range idxCh {
				slots[idx] = forecastPair(cfg, records, pairs[idx])
			}
		})
	}

	// Feed pair indexes to the workers, checking for cancellation between
	// pairs. A cancelled run returns the context error and no partial table.
	var feedErr error
	for idx := range pairs {
		if err := ctx.Err(); err != nil {
			feedErr = err
			break
		}
		idxCh <- idx
	}
	close(idxCh)

	// Wait for all workers to finish processing
	wg.Wait()

	if feedErr != nil {
		return nil, feedErr
	}

	// Collect surviving rows in pair-enumeration order
	table := &schema.ForecastTable{
		GeneratedAt: time.Now().UTC(),
		HorizonDays: cfg.HorizonDays,
		PairsSeen:   len(pairs),
		Results:     make([]schema.ForecastResult, 0, len(pairs)),
	}
	for _, slot := range slots {
		if slot == nil {
			table.PairsSkipped++
			continue
		}
		table.Results = append(table.Results, *slot)
	}

	return table, nil
}

// forecastPair builds and projects a single pair. A nil return means the
// pair was skipped: not enough history, or the fit produced a degenerate
// model. Anything else is unexpected and also skips the pair.
func forecastPair(cfg *contract.Config, records []schema.SalesRecord, pair schema.Pair) *schema.ForecastResult {
	result, err := NewPairResultBuilder(cfg, records, pair).
		BuildSeries().    // Assembles the zero-filled daily series
		FitModel().       // Fits level and trend by grid search
		ProjectHorizon(). // Sums and rounds the projection
		AttachVelocity(). // Adds 7d and 28d moving averages
		Build()
	if err != nil {
		if !errors.Is(err, smooth.ErrInsufficientHistory) && !errors.Is(err, smooth.ErrModelFit) {
			contract.LogWarn("Unexpected projection failure for "+pair.String(), err)
		}
		return nil
	}
	return &result
}

// logTrackingError logs database tracking errors to stderr without disrupting the run.
func logTrackingError(item, location string, err error) {
	contract.LogWarn("Run tracking failed for "+item+" @ "+location, err)
}
