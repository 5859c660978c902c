package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"

	"github.com/jmallard/shelfwatch/core/series"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/outwriter"
	"github.com/jmallard/shelfwatch/schema"
)

// Demand velocity windows, in days.
const (
	shortVelocityWindow = 7
	longVelocityWindow  = 28
)

// ExecuteSeries renders the daily demand history for a single pair,
// alongside its smoothed velocity columns. It serves as the main entry
// point for the 'series' command.
func ExecuteSeries(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()

	if cfg.SeriesItem == "" {
		return errors.New("--item is required")
	}
	if cfg.SeriesLocation == "" {
		return errors.New("--location is required")
	}

	if !shouldSuppressHeader(ctx) {
		outwriter.LogSeriesHeader(cfg)
	}

	records, err := loadSalesRecords(ctx, cfg)
	if err != nil {
		return err
	}

	view := BuildSeriesView(records, cfg.SeriesItem, cfg.SeriesLocation)
	if len(view.Points) == 0 {
		return fmt.Errorf("no sales recorded for %s @ %s", cfg.SeriesItem, cfg.SeriesLocation)
	}

	duration := time.Since(start)
	return outwriter.PrintSeriesView(view, cfg, duration)
}

// BuildSeriesView assembles the rendered daily history for one pair. Moving
// averages are aligned so each day shows the average over the window ending
// on that day; days without a full window behind them show zero.
func BuildSeriesView(records []schema.SalesRecord, item, location string) *schema.SeriesView {
	s := series.Build(records, item, location)
	values := s.Values()

	sma7 := smaSeries(values, shortVelocityWindow)
	sma28 := smaSeries(values, longVelocityWindow)

	points := make([]schema.SeriesPoint, len(s.Points))
	for i, p := range s.Points {
		point := schema.SeriesPoint{Date: p.Date, Units: p.Units}
		if sma7 != nil && i >= shortVelocityWindow-1 {
			point.SMA7 = sma7[i-(shortVelocityWindow-1)]
		}
		if sma28 != nil && i >= longVelocityWindow-1 {
			point.SMA28 = sma28[i-(longVelocityWindow-1)]
		}
		points[i] = point
	}

	return &schema.SeriesView{
		Item:     item,
		Location: location,
		Eligible: s.Len() >= schema.MinHistoryDays,
		Points:   points,
	}
}

// smaSeries computes the simple moving average over the given window.
// The result holds one entry per full window, so it is period-1 entries
// shorter than the input; inputs shorter than the window yield nil.
func smaSeries(values []float64, period int) []float64 {
	if len(values) < period {
		return nil
	}
	sma := trend.NewSmaWithPeriod[float64](period)
	return helper.ChanToSlice(sma.Compute(helper.SliceToChan(values)))
}

// latestSMA returns the moving average over the most recent window, or 0
// when the series is shorter than the window.
func latestSMA(values []float64, period int) float64 {
	out := smaSeries(values, period)
	if len(out) == 0 {
		return 0
	}
	return out[len(out)-1]
}
