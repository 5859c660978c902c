package cmd

import (
	"github.com/jmallard/shelfwatch/core"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all KPIs and model terms.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display formulas and definitions for all KPIs and model terms",
	Long: `Show the formal definitions and formulas behind every reported number.

Provides complete transparency into how rows are computed, including:
- Inventory KPIs (margin, stock value, turnover)
- Demand velocity windows and their smoothing
- The trend model's level and slope terms
- How projected demand is summed and rounded

No data is loaded - this is purely informational.

Use this to:
- Understand what each column in a report measures
- Explain projection logic to the buyer
- Document methodology for auditors
- Check which inputs feed a given KPI

Examples:
  # Show all metric definitions
  shelfwatch metrics

  # Definitions as JSON for the docs generator
  shelfwatch metrics --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
