package cmd

import (
	"github.com/jmallard/shelfwatch/core"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/spf13/cobra"
)

// inventoryCmd renders the current inventory position.
var inventoryCmd = &cobra.Command{
	Use:   "inventory [data-dir]",
	Short: "Show stock levels, margins, and turnover for every tracked item.",
	Long: `Render the current inventory position with per-item financial metrics.

Loads the inventory snapshot (CSV, or the SQLite fallback when no CSV exists)
and computes margin, stock value, and turnover per item, helping you:
- See at a glance which items sit below their reorder point
- Compare margins across categories and suppliers
- Find slow movers tying up shelf space and cash
- Sanity-check stock value before a stocktake

Rows are filterable by region, category, supplier, and location, and the
totals line summarizes stock value, average margin, and turnover.

Examples:
  # Snapshot of every tracked item
  shelfwatch inventory ./data

  # Focus on one supplier's catalog
  shelfwatch inventory --suppliers "GameVault Distribution"

  # California stores only, with turnover detail
  shelfwatch inventory --region ca --detail

  # Export the position to JSON for the dashboard
  shelfwatch inventory --output json --output-file position.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInventory(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run inventory overview", err)
		}
	},
}
