package schema

import "time"

// SeriesPoint is one rendered day in the demand series view, carrying the
// raw units alongside smoothed moving-average columns.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Units float64   `json:"units"`
	SMA7  float64   `json:"sma_7d"`  // 7-day simple moving average
	SMA28 float64   `json:"sma_28d"` // 28-day simple moving average
}

// SeriesView holds the rendered daily demand history for one pair.
type SeriesView struct {
	Item     string        `json:"item"`
	Location string        `json:"location"`
	Eligible bool          `json:"eligible"` // Enough history for a forecast
	Points   []SeriesPoint `json:"points"`
}
