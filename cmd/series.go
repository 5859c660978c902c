package cmd

import (
	"github.com/jmallard/shelfwatch/core"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/spf13/cobra"
)

// seriesCmd renders the daily demand history for a single pair.
var seriesCmd = &cobra.Command{
	Use:   "series [data-dir]",
	Short: "Render the daily demand history for one item and location pair",
	Long: `Show the day-by-day demand series for a single item at a single location.

Builds the same contiguous daily series the forecaster consumes - duplicate
dates summed, calendar gaps zero-filled - and renders it with smoothed
velocity columns, helping you:
- See exactly what the trend model sees before trusting a projection
- Spot promotions, stockouts, and seasonality in the raw history
- Check whether a pair has enough history to be forecast eligible
- Debug surprising projections pair by pair

Both --item and --location are required; names match the ledger exactly.

Examples:
  # Daily history for one pair
  shelfwatch series --item "Booster Box" --location "Store A - CA"

  # Same pair as CSV for a spreadsheet
  shelfwatch series --item "Booster Box" --location "Store A - CA" --output csv

  # Higher precision on the velocity columns
  shelfwatch series --item "Deck Sleeves" --location "Main Warehouse" --precision 3`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSeries(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot render demand series", err)
		}
	},
}
