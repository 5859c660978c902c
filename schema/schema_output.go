package schema

// EnrichedForecastResult adds presentation data to a ForecastResult.
type EnrichedForecastResult struct {
	Rank int `json:"rank"`
	ForecastResult
}

// GetSeverityLabel returns a plain text label indicating how severe a
// reorder shortfall is, based on the shortfall ratio (0-1].
func GetSeverityLabel(ratio float64) string {
	switch {
	case ratio >= 0.8:
		return "Critical"
	case ratio >= 0.6:
		return "High"
	case ratio >= 0.4:
		return "Moderate"
	default:
		return "Low"
	}
}

// EnrichForecasts adds rank numbers to a list of forecast results.
func EnrichForecasts(results []ForecastResult) []EnrichedForecastResult {
	output := make([]EnrichedForecastResult, len(results))
	for i, r := range results {
		output[i] = EnrichedForecastResult{
			Rank:           i + 1,
			ForecastResult: r,
		}
	}
	return output
}

// EnrichAlerts fills severity labels on reorder alerts in place and returns
// the slice for chaining.
func EnrichAlerts(alerts []ReorderAlert) []ReorderAlert {
	for i := range alerts {
		alerts[i].Severity = GetSeverityLabel(alerts[i].ShortfallRatio())
	}
	return alerts
}
