// Package cmd defines the command-line interface for shelfwatch.
package cmd

import (
	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("inventory-file", "", "Inventory CSV path (relative paths resolve inside the data directory)")
	rootCmd.PersistentFlags().String("inventory-db", "", "SQLite inventory database used when no inventory CSV exists")
	rootCmd.PersistentFlags().String("sales-file", "", "Sales ledger CSV path (relative paths resolve inside the data directory)")
	rootCmd.PersistentFlags().String("sku-file", "", "Newline-separated file of item names to restrict analysis to")
	rootCmd.PersistentFlags().String("region", string(schema.AllRegions), "Region scope: all or ca or us")
	rootCmd.PersistentFlags().String("categories", "", "Comma-separated list of categories to include")
	rootCmd.PersistentFlags().String("suppliers", "", "Comma-separated list of suppliers to include")
	rootCmd.PersistentFlags().String("locations", "", "Comma-separated list of locations to include")
	rootCmd.PersistentFlags().Int("horizon", schema.DefaultHorizonDays, "Projection window in days (30/60/90 are the usual choices)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-row model metadata (velocity, level, slope)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Bypass the result cache for this run")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of seriesCmd to Viper
	seriesCmd.Flags().String("item", "", "Item name of the pair to render")
	seriesCmd.Flags().String("location", "", "Location name of the pair to render")
	if err := viper.BindPFlags(seriesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding series flags", err)
	}

	// Bind all flags of trendsCmd to Viper
	trendsCmd.Flags().String("trends-geo", "", "Two-letter country code to scope interest to (empty = worldwide)")
	trendsCmd.Flags().String("trends-timeframe", contract.DefaultTrendsTimeframe, "Interest lookback window, e.g. '90 days' or '12 months'")
	trendsCmd.Flags().String("trends-base-url", "", "Override the interest API base URL (for self-hosted mirrors)")
	if err := viper.BindPFlags(trendsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trends flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
