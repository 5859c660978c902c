package cmd

import (
	"fmt"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/iocache"
	"github.com/jmallard/shelfwatch/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads just enough configuration to reach the cache backend.
// Cache commands skip sharedSetup on purpose: they should work even when
// the data directory is absent or half-configured.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Run history stays uninitialized; cache commands never record runs.
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheCmd groups the cache subcommands. The PersistentPreRunE is inherited
// by every subcommand, so each one starts with a connected cache store.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the result cache (improves performance)",
	Long: `Manage the result cache that speeds up repeated forecasts.

Forecast tables are cached for five minutes and trend lookups for a day,
keyed by a fingerprint of the data directory and forecast settings. Any
run with the same inputs inside that window is served from the cache
instead of re-reading the ledger and re-fitting models.

Backends: sqlite (default), mysql, postgresql, or none to disable caching.

Examples:
  # Inspect the configured backend and entry counts
  shelfwatch cache status

  # Drop everything after a ledger reload
  shelfwatch cache clear`,
	PersistentPreRunE: func(*cobra.Command, []string) error {
		return cacheSetup()
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached forecast and trend data",
	Long: `Delete every cached forecast table and trend lookup from the configured backend.

Cached results are keyed by input fingerprints, so a reloaded or backfilled
ledger produces new keys on its own. Clearing is for the times that is not
enough: a corrupted cache file, benchmarking cold runs, or reclaiming space
from entries that will never be read again.

SQLite backends remove the database file; MySQL and PostgreSQL drop the
cache table.

Examples:
  # Clear the default SQLite cache
  shelfwatch cache clear

  # Clear a MySQL cache (connection string via env variable)
  SHELFWATCH_CACHE_BACKEND=mysql SHELFWATCH_CACHE_DB_CONNECT="..." shelfwatch cache clear`,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Report the configured backend, connection health, the entry count, the
newest and oldest entry timestamps, and the size of the cache on disk.

A growing entry count with a recent last-entry time means runs are writing
through the cache as expected. A stale last-entry time on a busy install
usually points at a misconfigured backend.

Examples:
  shelfwatch cache status`,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetCacheStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
