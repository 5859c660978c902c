package cmd

import (
	"github.com/jmallard/shelfwatch/core"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on reorder policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [data-dir]",
	Short: "Enforce reorder points for scheduled jobs (fails on violations)",
	Long: `Scan the inventory position and fail when any item has fallen below its reorder point.

Designed for cron jobs and CI-style automation - exits non-zero when stock
violations exist, so a wrapper script can page the buyer or open a ticket.
Only the inventory snapshot is read; no forecasting is performed.

Each violation is reported with a severity grade based on how far below the
reorder point the item has fallen:
- critical: at 20% of the reorder point or less
- high:     at 40% or less
- moderate: at 60% or less
- low:      everything else below the reorder point

Items sitting exactly at their reorder point pass; only a genuine shortfall
raises an alert.

Examples:
  # Fail the nightly job when anything needs reordering
  shelfwatch check ./data

  # Gate on California stores only
  shelfwatch check --region ca

  # Restrict the scan to one supplier's catalog
  shelfwatch check --suppliers "GameVault Distribution"

  # Machine-readable alerts for the ticketing hook
  shelfwatch check --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Violation handling (including the non-zero exit) is done in ExecuteCheck
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Reorder check failed", err)
		}
	},
}
