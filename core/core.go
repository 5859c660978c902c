// Package core has core logic for series building, forecasting and reporting.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/loader"
	"github.com/jmallard/shelfwatch/internal/outwriter"
	"github.com/jmallard/shelfwatch/schema"
)

// ExecutorFunc defines the function signature for executing shelfwatch commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteForecast runs the demand forecast and prints results to stdout.
// It serves as the main entry point for the 'forecast' command.
func ExecuteForecast(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	table, duration, err := GetForecastResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintForecastResults(table, cfg, duration)
}

// GetForecastResults loads the sales ledger, projects demand for every pair
// and ranks the table for display. It returns the table and elapsed time
// without printing, so non-CLI callers can reuse the run.
func GetForecastResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.ForecastTable, time.Duration, error) {
	start := time.Now()

	records, err := loadSalesRecords(ctx, cfg)
	if err != nil {
		return nil, 0, err
	}

	table, err := runForecastCore(ctx, cfg, records, mgr)
	if err != nil {
		return nil, 0, err
	}

	// Rank for display; the table itself stays in pair-enumeration order
	// until this point so memoized and fresh runs agree.
	table.Results = rankForecasts(table.Results, cfg.ResultLimit)

	return table, time.Since(start), nil
}

// ExecuteMetrics displays the formal definitions of all KPIs and model
// terms. This is a static display that does not require any data loading.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.PrintMetricsDefinitions(buildMetricsModel(), cfg)
}

// loadSalesRecords reads the sales ledger configured for this run. A ledger
// that fails to parse aborts the run; the forecast core assumes clean input.
func loadSalesRecords(ctx context.Context, cfg *contract.Config) ([]schema.SalesRecord, error) {
	source := loader.NewSalesCSVSource(cfg.SalesFile)
	records, err := source.LoadSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading sales ledger from %s: %w", source.Describe(), err)
	}
	return records, nil
}
