package core

import "github.com/jmallard/shelfwatch/schema"

// buildMetricsModel assembles the static reference sheet for every KPI and
// model term shelfwatch reports. This is display data only; the formulas
// live where the numbers are computed.
func buildMetricsModel() *schema.MetricsRenderModel {
	return &schema.MetricsRenderModel{
		Title:       "Shelfwatch Metric Definitions",
		Description: "How every reported inventory KPI and forecast column is computed.",
		Entries: []schema.MetricsEntry{
			{
				Name:    "margin_pct",
				Purpose: "Gross margin captured per unit sold",
				Formula: "(price - cost_price) / price * 100",
				Inputs:  []string{"price", "cost_price"},
				Notes:   "Zero-priced items report a zero margin. Rounded to 2 decimal places.",
			},
			{
				Name:    "stock_value",
				Purpose: "Capital tied up on the shelf at cost",
				Formula: "cost_price * units_left",
				Inputs:  []string{"cost_price", "units_left"},
			},
			{
				Name:    "turnover",
				Purpose: "Share of handled stock that has already sold",
				Formula: "units_sold / (units_sold + units_left)",
				Inputs:  []string{"units_sold", "units_left"},
				Notes:   "An epsilon guard keeps items with no movement at a turnover of 0.",
			},
			{
				Name:    "velocity_7d / velocity_28d",
				Purpose: "Recent demand speed in units per day",
				Formula: "simple moving average of daily units over the trailing window",
				Inputs:  []string{"daily demand series"},
				Notes:   "Series shorter than the window report 0.",
			},
			{
				Name:    "level / slope",
				Purpose: "Fitted demand state in units and units per day",
				Formula: "additive-trend exponential smoothing: level = a*y + (1-a)*(level+slope); slope = b*(level-prev) + (1-b)*slope",
				Inputs:  []string{"daily demand series (>= 30 days)"},
				Notes:   "Smoothing factors are chosen by grid search minimizing one-step error.",
			},
			{
				Name:    "total (forecast)",
				Purpose: "Projected demand over the horizon in whole units",
				Formula: "sum of (level + k*slope) for k = 1..horizon, rounded half to even",
				Inputs:  []string{"level", "slope", "horizon"},
			},
			{
				Name:    "trend",
				Purpose: "Direction of fitted demand",
				Formula: "rising if slope > 0.05, falling if slope < -0.05, else flat",
				Inputs:  []string{"slope"},
			},
			{
				Name:    "severity",
				Purpose: "How urgent a reorder alert is",
				Formula: "shortfall ratio (reorder_point - units_left) / reorder_point",
				Inputs:  []string{"units_left", "reorder_point"},
				Notes:   "critical >= 0.8, high >= 0.6, moderate >= 0.4, else low.",
			},
		},
	}
}
