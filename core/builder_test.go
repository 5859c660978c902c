package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallard/shelfwatch/core/smooth"
	"github.com/jmallard/shelfwatch/schema"
)

func TestPairResultBuilderFullChain(t *testing.T) {
	records := genSales("Booster Box", "Store A - CA", day(2025, 3, 1), 40, 10)
	pair := schema.Pair{Item: "Booster Box", Location: "Store A - CA"}

	result, err := NewPairResultBuilder(forecastConfig(1), records, pair).
		BuildSeries().
		FitModel().
		ProjectHorizon().
		AttachVelocity().
		Build()
	require.NoError(t, err)

	assert.Equal(t, "Booster Box", result.Item)
	assert.Equal(t, "Store A - CA", result.Location)
	assert.Equal(t, 40, result.HistoryDays)
	assert.Equal(t, 30, result.HorizonDays)
	assert.Equal(t, int64(300), result.TotalUnits)
	assert.Equal(t, schema.FlatTrend, result.Direction)
	assert.InDelta(t, 10.0, result.Velocity7, 1e-9)
	assert.InDelta(t, 10.0, result.Velocity28, 1e-9)
}

func TestPairResultBuilderShortSeries(t *testing.T) {
	records := genSales("Plush Mascot", "Store B - US", day(2025, 5, 1), 10, 4)
	pair := schema.Pair{Item: "Plush Mascot", Location: "Store B - US"}

	_, err := NewPairResultBuilder(forecastConfig(1), records, pair).
		BuildSeries().
		FitModel().
		ProjectHorizon().
		AttachVelocity().
		Build()
	assert.ErrorIs(t, err, smooth.ErrInsufficientHistory)
}

func TestPairResultBuilderErrorShortCircuits(t *testing.T) {
	// Once a step fails, later steps keep the first error instead of
	// panicking on missing state.
	pair := schema.Pair{Item: "Ghost Item", Location: "Nowhere"}

	result, err := NewPairResultBuilder(forecastConfig(1), nil, pair).
		BuildSeries().
		FitModel().
		ProjectHorizon().
		AttachVelocity().
		Build()
	assert.ErrorIs(t, err, smooth.ErrInsufficientHistory)
	assert.Equal(t, schema.ForecastResult{}, result)
}
