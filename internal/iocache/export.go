package iocache

import (
	"errors"
	"fmt"

	"github.com/jmallard/shelfwatch/internal/parquet"
)

// ExecuteHistoryExport dumps the full run history to a pair of Parquet
// files, one for runs and one for per-item forecast rows. outputFile is
// the shared path prefix.
func ExecuteHistoryExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetHistoryStore()

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no forecast history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total forecast runs: %d\n", status.TotalRuns)
	fmt.Printf("Total forecast rows: %d\n", status.TableSizes[forecastRowsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve forecast runs: %w", err)
	}
	forecasts, err := store.GetAllForecasts()
	if err != nil {
		return fmt.Errorf("failed to retrieve forecast rows: %w", err)
	}

	runsFile := outputFile + ".forecast_runs.parquet"
	parquetRuns := parquet.ConvertRunRecords(runs)
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write forecast runs: %w", err)
	}
	fmt.Printf("Exported %d forecast runs to: %s\n", len(parquetRuns), runsFile)

	forecastsFile := outputFile + ".forecasts.parquet"
	parquetForecasts := parquet.ConvertForecastRowRecords(forecasts)
	if err := parquet.WriteForecastsParquet(parquetForecasts, forecastsFile); err != nil {
		return fmt.Errorf("failed to write forecast rows: %w", err)
	}
	fmt.Printf("Exported %d forecast records to: %s\n", len(parquetForecasts), forecastsFile)

	fmt.Println("\nExport complete. Load the files with DuckDB, Spark, Pandas (pyarrow)," +
		" or any other Parquet-compatible tool.")
	return nil
}
