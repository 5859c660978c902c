package core

import (
	"math"

	"github.com/jmallard/shelfwatch/core/series"
	"github.com/jmallard/shelfwatch/core/smooth"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// PairResultBuilder builds the forecast row for one (item, location) pair.
type PairResultBuilder struct {
	cfg     *contract.Config
	records []schema.SalesRecord
	pair    schema.Pair

	// Internal data collected during the build process
	series schema.DemandSeries
	model  *smooth.Model

	result *schema.ForecastResult
	err    error
}

// NewPairResultBuilder is the starting point for building a forecast row.
func NewPairResultBuilder(cfg *contract.Config, records []schema.SalesRecord, pair schema.Pair) *PairResultBuilder {
	return &PairResultBuilder{
		cfg:     cfg,
		records: records,
		pair:    pair,
		result:  &schema.ForecastResult{Item: pair.Item, Location: pair.Location},
	}
}

// BuildSeries assembles the contiguous daily demand series for the pair.
// Days without sales appear as zero-unit entries, so the model sees real
// calendar spacing rather than a compressed sequence of busy days.
func (b *PairResultBuilder) BuildSeries() *PairResultBuilder {
	b.series = series.Build(b.records, b.pair.Item, b.pair.Location)
	b.result.HistoryDays = b.series.Len()
	return b
}

// FitModel fits the additive-trend smoothing state to the series.
// Series shorter than the history floor and degenerate fits surface as
// build errors, which callers treat as a skipped pair.
func (b *PairResultBuilder) FitModel() *PairResultBuilder {
	if b.err != nil {
		return b
	}

	model, err := smooth.Fit(b.series.Values())
	if err != nil {
		b.err = err
		return b
	}

	b.model = model
	b.result.DailyLevel = model.Level
	b.result.DailySlope = model.Trend
	b.result.Direction = schema.DirectionForSlope(model.Trend)
	return b
}

// ProjectHorizon extends the fitted state over the configured horizon and
// rounds the summed projection to whole units.
func (b *PairResultBuilder) ProjectHorizon() *PairResultBuilder {
	if b.err != nil {
		return b
	}

	total := b.model.ForecastTotal(b.cfg.HorizonDays)
	if math.IsNaN(total) || math.IsInf(total, 0) {
		b.err = smooth.ErrModelFit
		return b
	}

	b.result.HorizonDays = b.cfg.HorizonDays
	b.result.TotalUnits = int64(math.RoundToEven(total))
	return b
}

// AttachVelocity adds the recent 7-day and 28-day demand velocities.
// Velocity is informational only and never fails the build: series too
// short for a window simply report zero.
func (b *PairResultBuilder) AttachVelocity() *PairResultBuilder {
	if b.err != nil {
		return b
	}

	values := b.series.Values()
	b.result.Velocity7 = latestSMA(values, shortVelocityWindow)
	b.result.Velocity28 = latestSMA(values, longVelocityWindow)
	return b
}

// Build finalizes the construction and returns the completed forecast row.
func (b *PairResultBuilder) Build() (schema.ForecastResult, error) {
	if b.err != nil {
		return schema.ForecastResult{}, b.err
	}
	return *b.result, nil
}
