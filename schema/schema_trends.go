package schema

import "time"

// TrendPoint is one sampled interest value for a keyword.
type TrendPoint struct {
	Date     time.Time `json:"date"`
	Interest int       `json:"interest"` // Relative interest on a 0-100 scale
}

// TrendSeries holds interest-over-time samples for a single keyword.
type TrendSeries struct {
	Keyword   string       `json:"keyword"`
	Geo       string       `json:"geo"`
	Timeframe string       `json:"timeframe"`
	Points    []TrendPoint `json:"points"`
}

// Peak returns the highest sampled interest value, or 0 for an empty series.
func (s TrendSeries) Peak() int {
	peak := 0
	for _, p := range s.Points {
		if p.Interest > peak {
			peak = p.Interest
		}
	}
	return peak
}

// Latest returns the most recent point, or a zero point for an empty series.
func (s TrendSeries) Latest() TrendPoint {
	if len(s.Points) == 0 {
		return TrendPoint{}
	}
	return s.Points[len(s.Points)-1]
}
