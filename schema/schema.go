// Package schema has configs, models and global variables for all parts of shelfwatch.
package schema

import "time"

// SalesRecord represents a single observation from the raw sales ledger.
// Multiple records can exist for the same item, location and day; downstream
// aggregation sums them rather than overwriting.
type SalesRecord struct {
	Item     string    // Item name exactly as recorded in the ledger
	Location string    // Sales channel or warehouse the units left from
	Date     time.Time // Calendar day of the sale, normalized to UTC midnight
	Units    float64   // Units sold on that day, never negative
}

// Pair identifies one forecast unit: a single item sold at a single location.
type Pair struct {
	Item     string `json:"item"`
	Location string `json:"location"`
}

// String renders the pair for headers and cache keys.
func (p Pair) String() string {
	return p.Item + " @ " + p.Location
}

// DemandPoint is one day of demand within a DemandSeries.
type DemandPoint struct {
	Date  time.Time `json:"date"`
	Units float64   `json:"units"`
}

// DemandSeries is the per-pair daily demand history: points are ordered by
// ascending date and cover a contiguous daily calendar, with zero-unit entries
// filling days that had no sales.
type DemandSeries struct {
	Item     string        `json:"item"`
	Location string        `json:"location"`
	Points   []DemandPoint `json:"points"`
}

// Len returns the number of daily entries in the series.
func (s DemandSeries) Len() int {
	return len(s.Points)
}

// Values returns the daily unit counts in date order.
func (s DemandSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Units
	}
	return values
}

// Start returns the first covered day, or the zero time for an empty series.
func (s DemandSeries) Start() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[0].Date
}

// End returns the last covered day, or the zero time for an empty series.
func (s DemandSeries) End() time.Time {
	if len(s.Points) == 0 {
		return time.Time{}
	}
	return s.Points[len(s.Points)-1].Date
}

// Total returns the summed units across the whole series.
func (s DemandSeries) Total() float64 {
	var total float64
	for _, p := range s.Points {
		total += p.Units
	}
	return total
}
