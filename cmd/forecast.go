package cmd

import (
	"github.com/jmallard/shelfwatch/core"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/spf13/cobra"
)

// forecastCmd performs pair-level demand forecasting.
var forecastCmd = &cobra.Command{
	Use:   "forecast [data-dir]",
	Short: "Project demand per item and location from the sales ledger.",
	Long: `Fit a trend model to each item and location pair and project future demand.

Reads the daily sales ledger, builds a contiguous demand series per pair, and
fits an additive trend model to every pair with enough history, helping you:
- See which products will move the most units in the coming weeks
- Size purchase orders around projected demand instead of gut feel
- Spot rising sellers before they stock out
- Catch decaying lines before the next reorder locks up capital

Pairs with fewer than 30 days of history are skipped silently; everything
else is ranked from highest to lowest projected demand.

Examples:
  # Forecast the next 30 days for every item and location
  shelfwatch forecast ./data

  # Longer horizon with more workers
  shelfwatch forecast --horizon 90 --workers 8

  # Only California stores, top 20 movers
  shelfwatch forecast --region ca --limit 20

  # Include per-pair velocity and model detail
  shelfwatch forecast --detail

  # Export projections to CSV for the buyer
  shelfwatch forecast --output csv --output-file projections.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteForecast(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run demand forecast", err)
		}
	},
}
