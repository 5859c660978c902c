package cmd

import (
	"github.com/jmallard/shelfwatch/core"
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/spf13/cobra"
)

// trendsCmd looks up external search interest for a keyword.
var trendsCmd = &cobra.Command{
	Use:   "trends <keyword>",
	Short: "Look up search interest over time for a product keyword",
	Long: `Fetch normalized search interest (0-100) for a keyword from the trends API.

Complements the sales-ledger view with outside-world demand signals,
helping you:
- Validate whether a projected rise matches broader interest
- Time promotions around seasonal interest peaks
- Compare interest across markets with --trends-geo
- Catch fading product categories before the ledger shows it

Responses are cached for a day per keyword, geography, and timeframe, so
repeated lookups don't hammer the API. Use --no-cache to force a refresh.

Examples:
  # Worldwide interest for a product keyword
  shelfwatch trends "booster box"

  # US interest over the last year
  shelfwatch trends "deck sleeves" --trends-geo US --trends-timeframe "12 months"

  # Fresh numbers, skipping the daily cache
  shelfwatch trends "plush mascot" --no-cache

  # Interest series as CSV for the marketing sheet
  shelfwatch trends "booster box" --output csv --output-file interest.csv`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is the keyword, not a data directory,
		// so run shared setup against the current directory.
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteTrends(rootCtx, cfg, cacheManager, args[0]); err != nil {
			contract.LogFatal("Cannot look up search interest", err)
		}
	},
}
