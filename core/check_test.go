package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

func TestEvaluateReorderAllHealthy(t *testing.T) {
	records := []schema.InventoryRecord{
		{Item: "Booster Box", Location: "Store A - CA", UnitsLeft: 20, ReorderPoint: 10},
		{Item: "Binder", Location: "Store B - US", UnitsLeft: 10, ReorderPoint: 10}, // at the point is fine
	}

	result := EvaluateReorder(&contract.Config{Region: schema.AllRegions}, records)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Alerts)
	assert.Equal(t, 2, result.TotalRecords)
	assert.Equal(t, schema.AllRegions, result.Region)
}

func TestEvaluateReorderFlagsShortfalls(t *testing.T) {
	records := []schema.InventoryRecord{
		{Item: "Deck Sleeves", Location: "Main Warehouse", UnitsLeft: 9, ReorderPoint: 10}, // ratio 0.1
		{Item: "Booster Box", Location: "Store A - CA", UnitsLeft: 1, ReorderPoint: 10},    // ratio 0.9
		{Item: "Plush Mascot", Location: "Store B - US", UnitsLeft: 5, ReorderPoint: 10},   // ratio 0.5
		{Item: "Binder", Location: "Osaka Depot", UnitsLeft: 3, ReorderPoint: 10},          // ratio 0.7
		{Item: "Playmat", Location: "Osaka Depot", UnitsLeft: 30, ReorderPoint: 10},        // healthy
	}

	result := EvaluateReorder(&contract.Config{Region: schema.AllRegions}, records)
	assert.False(t, result.Passed)
	assert.Equal(t, 5, result.TotalRecords)
	require.Len(t, result.Alerts, 4)

	// Worst shortfall first, severity labels attached
	assert.Equal(t, "Booster Box", result.Alerts[0].Item)
	assert.Equal(t, contract.CriticalValue, result.Alerts[0].Severity)
	assert.Equal(t, 9, result.Alerts[0].Shortfall)

	assert.Equal(t, "Binder", result.Alerts[1].Item)
	assert.Equal(t, contract.HighValue, result.Alerts[1].Severity)

	assert.Equal(t, "Plush Mascot", result.Alerts[2].Item)
	assert.Equal(t, contract.ModerateValue, result.Alerts[2].Severity)

	assert.Equal(t, "Deck Sleeves", result.Alerts[3].Item)
	assert.Equal(t, contract.LowValue, result.Alerts[3].Severity)
}

func TestEvaluateReorderBoundary(t *testing.T) {
	// The gate is strict: exactly at the reorder point never alerts, one
	// unit below always does.
	records := []schema.InventoryRecord{
		{Item: "At Point", Location: "Store A - CA", UnitsLeft: 10, ReorderPoint: 10},
		{Item: "One Below", Location: "Store A - CA", UnitsLeft: 9, ReorderPoint: 10},
	}

	result := EvaluateReorder(&contract.Config{}, records)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, "One Below", result.Alerts[0].Item)
	assert.Equal(t, 1, result.Alerts[0].Shortfall)
}

func TestEvaluateReorderEmpty(t *testing.T) {
	result := EvaluateReorder(&contract.Config{}, nil)
	assert.True(t, result.Passed)
	assert.Empty(t, result.Alerts)
	assert.Equal(t, 0, result.TotalRecords)
}

func TestPrintCheckResult(t *testing.T) {
	// Test that printCheckResult doesn't panic with various inputs
	tests := []struct {
		name   string
		cfg    contract.Config
		result schema.CheckResult
	}{
		{
			name: "all passed",
			cfg:  contract.Config{UseEmojis: true, UseColors: true},
			result: schema.CheckResult{
				Passed:       true,
				Alerts:       []schema.ReorderAlert{},
				TotalRecords: 5,
				Region:       schema.AllRegions,
			},
		},
		{
			name: "some alerts",
			cfg:  contract.Config{},
			result: schema.CheckResult{
				Passed: false,
				Alerts: []schema.ReorderAlert{
					{
						Item:         "Booster Box",
						Location:     "Store A - CA",
						UnitsLeft:    1,
						ReorderPoint: 10,
						Shortfall:    9,
						Severity:     contract.CriticalValue,
					},
				},
				TotalRecords: 5,
				Region:       schema.CARegion,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Rendering goes to stdout; the check here is that no
			// combination of config and result panics.
			assert.NotPanics(t, func() {
				printCheckResult(&tt.cfg, &tt.result, time.Second)
			})
		})
	}
}
