package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDemandSeriesAccessors(t *testing.T) {
	series := DemandSeries{
		Item:     "Booster Pack",
		Location: "Main",
		Points: []DemandPoint{
			{Date: day(2025, time.March, 1), Units: 4},
			{Date: day(2025, time.March, 2), Units: 0},
			{Date: day(2025, time.March, 3), Units: 6.5},
		},
	}

	assert.Equal(t, 3, series.Len())
	assert.Equal(t, []float64{4, 0, 6.5}, series.Values())
	assert.Equal(t, day(2025, time.March, 1), series.Start())
	assert.Equal(t, day(2025, time.March, 3), series.End())
	assert.InDelta(t, 10.5, series.Total(), 1e-9)
}

func TestDemandSeriesEmpty(t *testing.T) {
	var series DemandSeries

	assert.Equal(t, 0, series.Len())
	assert.Empty(t, series.Values())
	assert.True(t, series.Start().IsZero())
	assert.True(t, series.End().IsZero())
	assert.Zero(t, series.Total())
}

func TestPairString(t *testing.T) {
	pair := Pair{Item: "Dice Set", Location: "Online"}
	assert.Equal(t, "Dice Set @ Online", pair.String())
}

func TestForecastResultAvgPerDay(t *testing.T) {
	result := ForecastResult{HorizonDays: 30, TotalUnits: 300}
	assert.InDelta(t, 10.0, result.AvgPerDay(), 1e-9)

	zero := ForecastResult{}
	assert.Zero(t, zero.AvgPerDay())
}

func TestDirectionForSlope(t *testing.T) {
	tests := []struct {
		name  string
		slope float64
		want  TrendDirection
	}{
		{"clearly rising", 0.4, RisingTrend},
		{"just above band", 0.051, RisingTrend},
		{"inside band positive", 0.05, FlatTrend},
		{"zero", 0, FlatTrend},
		{"inside band negative", -0.05, FlatTrend},
		{"just below band", -0.051, FallingTrend},
		{"clearly falling", -1.2, FallingTrend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DirectionForSlope(tt.slope))
		})
	}
}
