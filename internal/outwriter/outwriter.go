// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"path/filepath"

	"github.com/jmallard/shelfwatch/internal/contract"
)

// headerPrefix returns the emoji prefix for a header line, or an empty
// string when emojis are disabled.
func headerPrefix(cfg *contract.Config, emoji string) string {
	if cfg.UseEmojis {
		return emoji + " "
	}
	return ""
}

// dataDirName returns a display name for the configured data directory.
func dataDirName(cfg *contract.Config) string {
	name := filepath.Base(cfg.DataDir)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "current"
	}
	return name
}

// geoLabel returns a display label for a trends geo filter.
func geoLabel(geo string) string {
	if geo == "" {
		return "worldwide"
	}
	return geo
}

// LogForecastHeader prints a concise, 2-line header for a forecast run.
func LogForecastHeader(cfg *contract.Config, recordCount int) {
	// Line 1: The run summary (data directory and region scope)
	fmt.Printf("%sData: %s (Region: %s)\n", headerPrefix(cfg, "🔎"), dataDirName(cfg), cfg.Region)

	// Line 2: The projection window and the size of the ledger behind it
	fmt.Printf("%sHorizon: %d days (ledger: %d records)\n", headerPrefix(cfg, "📅"), cfg.HorizonDays, recordCount)
}

// LogInventoryHeader prints a header for the inventory overview.
func LogInventoryHeader(cfg *contract.Config) {
	fmt.Printf("%sData: %s (Region: %s)\n", headerPrefix(cfg, "🔎"), dataDirName(cfg), cfg.Region)

	snapshot := cfg.InventoryFile
	if snapshot == "" {
		snapshot = cfg.InventoryDB
	}
	fmt.Printf("%sSnapshot: %s\n", headerPrefix(cfg, "📦"), filepath.Base(snapshot))
}

// LogSeriesHeader prints a header for the daily series view.
func LogSeriesHeader(cfg *contract.Config) {
	fmt.Printf("%sPair: %s @ %s\n", headerPrefix(cfg, "🔎"), cfg.SeriesItem, cfg.SeriesLocation)
	fmt.Printf("%sLedger: %s\n", headerPrefix(cfg, "📅"), filepath.Base(cfg.SalesFile))
}

// LogTrendsHeader prints a header for a search interest lookup.
func LogTrendsHeader(cfg *contract.Config, keyword string) {
	fmt.Printf("%sKeyword: %q (Geo: %s)\n", headerPrefix(cfg, "🔎"), keyword, geoLabel(cfg.TrendsGeo))
	fmt.Printf("%sTimeframe: %s\n", headerPrefix(cfg, "📅"), cfg.TrendsTimeframe)
}
