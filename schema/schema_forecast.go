package schema

import "time"

// ForecastResult is the projected demand for one (item, location) pair.
// HorizonDays and TotalUnits are the externally meaningful fields; the rest
// describe the fitted model state for detail views.
type ForecastResult struct {
	Item        string         `json:"item"`
	Location    string         `json:"location"`
	HorizonDays int            `json:"horizon_days"`
	TotalUnits  int64          `json:"total_units"`
	HistoryDays int            `json:"history_days"`
	DailyLevel  float64        `json:"daily_level"`
	DailySlope  float64        `json:"daily_slope"`
	Velocity7   float64        `json:"velocity_7d"`
	Velocity28  float64        `json:"velocity_28d"`
	Direction   TrendDirection `json:"direction"`
}

// AvgPerDay returns the projected average daily demand over the horizon.
func (r ForecastResult) AvgPerDay() float64 {
	if r.HorizonDays == 0 {
		return 0
	}
	return float64(r.TotalUnits) / float64(r.HorizonDays)
}

// ForecastTable is the final demand projection: one row per pair that had
// enough history and a clean fit, in a stable pair-enumeration order.
type ForecastTable struct {
	GeneratedAt  time.Time        `json:"generated_at"`
	HorizonDays  int              `json:"horizon_days"`
	PairsSeen    int              `json:"pairs_seen"`
	PairsSkipped int              `json:"pairs_skipped"`
	Results      []ForecastResult `json:"results"`
}

// Len returns the number of forecast rows.
func (t *ForecastTable) Len() int {
	return len(t.Results)
}
