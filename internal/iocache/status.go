package iocache

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/jmallard/shelfwatch/schema"
)

// statusTimeFormat renders entry timestamps in wall-clock form.
const statusTimeFormat = "2006-01-02 15:04:05"

// PrintCacheStatus prints cache status information.
func PrintCacheStatus(status schema.CacheStatus) {
	fmt.Printf("Cache Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Entries: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		fmt.Printf("Last Entry: %s (%s)\n", status.LastEntryTime.Format(statusTimeFormat), humanize.Time(status.LastEntryTime))
		fmt.Printf("Oldest Entry: %s (%s)\n", status.OldestEntryTime.Format(statusTimeFormat), humanize.Time(status.OldestEntryTime))
	}
	fmt.Printf("Table Size: %s\n", humanize.IBytes(uint64(status.TableSizeBytes)))
}

// PrintHistoryStatus prints history status information. Table names are
// sorted so repeated invocations print in the same order.
func PrintHistoryStatus(status schema.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run ID: %d\n", status.LastRunID)
		fmt.Printf("Last Run: %s (%s)\n", status.LastRunTime.Format(statusTimeFormat), humanize.Time(status.LastRunTime))
		fmt.Printf("Oldest Run: %s (%s)\n", status.OldestRunTime.Format(statusTimeFormat), humanize.Time(status.OldestRunTime))
		fmt.Printf("Total Forecasts: %d\n", status.TotalForecasts)
	}
	fmt.Println("Table Sizes:")
	names := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		names = append(names, table)
	}
	sort.Strings(names)
	for _, table := range names {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}
