// Package main provides a performance benchmarking tool for the Shelfwatch CLI.
// It measures execution times across different dataset sizes and command types,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - shelfwatch binary installed and available in PATH
//
// Usage: go run benchmark/main.go [data-base-dir]
//
//	data-base-dir: Directory to hold the generated benchmark datasets.
//	Missing datasets are generated deterministically on first use.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataBase    string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Datasets    []DatasetSpec
}

// DatasetSpec describes one synthetic dataset by its dimensions.
type DatasetSpec struct {
	Name      string
	Items     int
	Locations int
	Days      int
}

// benchmarkLocations are cycled through when placing items.
var benchmarkLocations = []string{
	"Store A - CA", "Store B - CA", "Store C - NY", "Store D - TX",
	"Store E - WA", "Store F - CA", "Store G - FL", "Main Warehouse",
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [data-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	dataBase := os.Args[1]

	config := BenchmarkConfig{
		DataBase:    dataBase,
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Datasets: []DatasetSpec{
			{Name: "corner-shop", Items: 20, Locations: 2, Days: 120},
			{Name: "regional", Items: 100, Locations: 4, Days: 365},
			{Name: "chain", Items: 200, Locations: 8, Days: 730},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	if err := generateDatasets(config); err != nil {
		fmt.Printf("Dataset generation failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the cache using shelfwatch cache clear
	fmt.Printf("Clearing cache...\n")
	clearCmd := exec.Command("shelfwatch", "cache", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear cache: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Cache cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the shelfwatch binary exists.
func checkPrerequisites(_ BenchmarkConfig) error {
	if _, err := exec.LookPath("shelfwatch"); err != nil {
		return fmt.Errorf("shelfwatch binary not found in PATH")
	}
	return nil
}

// generateDatasets writes any missing benchmark dataset to disk.
// Generation is deterministic, so reruns benchmark identical inputs.
func generateDatasets(config BenchmarkConfig) error {
	for _, spec := range config.Datasets {
		dir := filepath.Join(config.DataBase, spec.Name)
		salesPath := filepath.Join(dir, "sales.csv")
		if _, err := os.Stat(salesPath); err == nil {
			continue
		}

		fmt.Printf("Generating dataset %s (%d items x %d locations x %d days)\n",
			spec.Name, spec.Items, spec.Locations, spec.Days)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := writeSalesLedger(salesPath, spec); err != nil {
			return err
		}
		if err := writeInventorySnapshot(filepath.Join(dir, "inventory.csv"), spec); err != nil {
			return err
		}
	}
	return nil
}

// writeSalesLedger emits a synthetic daily ledger with a weekly bump and a
// mild per-item trend so the fitted models have something to chew on.
func writeSalesLedger(path string, spec DatasetSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"item_name", "Date", "Units_Sold", "location"}); err != nil {
		return err
	}

	end := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -spec.Days)

	for i := range spec.Items {
		item := fmt.Sprintf("Item %04d", i+1)
		for l := range spec.Locations {
			location := benchmarkLocations[l%len(benchmarkLocations)]
			for d := range spec.Days {
				// Sparse ledgers are the norm; skip a deterministic subset of days.
				if (i+l+d)%7 == 3 {
					continue
				}
				units := 2 + (i+l)%5 + d/90
				if d%7 == 6 {
					units += 3
				}
				row := []string{
					item,
					start.AddDate(0, 0, d).Format("2006-01-02"),
					fmt.Sprintf("%d", units),
					location,
				}
				if err := writer.Write(row); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// writeInventorySnapshot emits one healthy stock row per item and location.
func writeInventorySnapshot(path string, spec DatasetSpec) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"item_name", "price", "cost_price", "units_left", "units_sold",
		"reorder_point", "category", "supplier", "location",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i := range spec.Items {
		item := fmt.Sprintf("Item %04d", i+1)
		for l := range spec.Locations {
			row := []string{
				item,
				fmt.Sprintf("%d.99", 5+(i%40)),
				fmt.Sprintf("%d.50", 2+(i%20)),
				fmt.Sprintf("%d", 30+(i+l)%50),
				fmt.Sprintf("%d", 100+(i*3+l)%400),
				fmt.Sprintf("%d", 10+(i%10)),
				fmt.Sprintf("Category %d", i%6),
				fmt.Sprintf("Supplier %d", i%9),
				benchmarkLocations[l%len(benchmarkLocations)],
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured datasets
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.Datasets), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, spec := range config.Datasets {
		fmt.Printf("Benchmarking %s\n", spec.Name)

		dataPath := filepath.Join(config.DataBase, spec.Name)

		// Full forecast across every pair (the hot path)
		args := fmt.Sprintf("--workers %d", config.Workers)
		result := runBenchmarkSuite(config, spec.Name, dataPath, "forecast", "forecast analysis", args)
		results = append(results, result)

		// Inventory overview with KPI enrichment
		result = runBenchmarkSuite(config, spec.Name, dataPath, "inventory", "inventory overview", "")
		results = append(results, result)

		// Single-pair series rendering
		args = fmt.Sprintf("--item \"Item 0001\" --location \"%s\"", benchmarkLocations[0])
		desc := "series rendering (Item 0001)"
		result = runBenchmarkSuite(config, spec.Name, dataPath, "series", desc, args)
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, dataset, dataPath, command, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, dataset)

	// Helper to run a benchmark phase
	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataPath, command, extraArgs, cacheBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Dataset:     dataset,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes a shelfwatch command multiple times with specified cache backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dataPath, command, extraArgs, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	// Prepare command arguments
	args := []string{command, "--cache-backend", cacheBackend}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("shelfwatch", args...)
		cmd.Dir = dataPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	switch command {
	case "forecast":
		completionPhrase = "Forecast completed in"
	case "inventory":
		completionPhrase = "Overview completed in"
	case "series":
		completionPhrase = "Series rendered in"
	default:
		completionPhrase = "completed in"
	}

	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/shelfwatch_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "forecast", "Forecast Analysis:")
	printCommandSummary(results, "inventory", "Inventory Overview:")
	printCommandSummary(results, "series", "Series Rendering:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: No-cache: %s, Cold: %s, Warm: %s\n", result.Dataset, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}