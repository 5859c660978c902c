// Package parquet provides data structures and functions for exporting
// forecast run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/jmallard/shelfwatch/schema"
	"github.com/parquet-go/parquet-go"
)

// ForecastRun represents a single forecast run with metadata.
// This struct maps to the shelfwatch_forecast_runs database table.
type ForecastRun struct {
	// RunID is the unique identifier for this forecast run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the forecast run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalForecasts is the number of pair forecasts produced in this run
	TotalForecasts int32 `parquet:"total_forecasts,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ForecastRow represents one projected (item, location) pair from a run.
// This struct maps to the shelfwatch_forecasts database table.
type ForecastRow struct {
	// RunID references the parent forecast run
	RunID int64 `parquet:"run_id,snappy"`

	// Item is the product name
	Item string `parquet:"item,snappy"`

	// Location is the store or warehouse the demand belongs to
	Location string `parquet:"location,snappy"`

	// RunTime is when this pair was projected (stored as TIMESTAMP with nanosecond precision)
	RunTime time.Time `parquet:"run_time,snappy"`

	// HorizonDays is the projection window in days
	HorizonDays int32 `parquet:"horizon_days,snappy"`

	// TotalUnits is the projected whole-unit demand over the horizon
	TotalUnits int64 `parquet:"total_units,snappy"`

	// HistoryDays is the length of the daily series the model was fitted on
	HistoryDays int32 `parquet:"history_days,snappy"`

	// DailyLevel is the fitted demand level in units per day
	DailyLevel float64 `parquet:"daily_level,snappy"`

	// DailySlope is the fitted trend in units per day per day
	DailySlope float64 `parquet:"daily_slope,snappy"`

	// Direction classifies the fitted slope: rising, flat or falling
	Direction string `parquet:"direction,snappy"`
}

// writeParquet writes any record slice to a Parquet file, with the schema
// inferred from the struct tags of T. An empty slice still produces a valid
// file carrying just the schema footer.
func writeParquet[T any](records []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the row groups and writes the footer, so its error
	// cannot be dropped.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes a slice of ForecastRun structs to a Parquet file.
func WriteRunsParquet(data []ForecastRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteForecastsParquet writes a slice of ForecastRow structs to a Parquet file.
func WriteForecastsParquet(data []ForecastRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// MockFetchForecastRuns generates sample ForecastRun data for demonstration.
func MockFetchForecastRuns() []ForecastRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 58*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"horizon_days":30,"region":"all","workers":4}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23*time.Hour - 59*time.Minute)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"horizon_days":60,"region":"ca","workers":1}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []ForecastRun{
		{
			RunID:          1,
			StartTime:      startTime1,
			EndTime:        &endTime1,
			RunDurationMs:  &durationMs1,
			TotalForecasts: 12,
			ConfigParams:   &configParams1,
		},
		{
			RunID:          2,
			StartTime:      startTime2,
			EndTime:        &endTime2,
			RunDurationMs:  &durationMs2,
			TotalForecasts: 5,
			ConfigParams:   &configParams2,
		},
		{
			RunID:          3,
			StartTime:      startTime3,
			EndTime:        nil, // Still running - nullable field
			RunDurationMs:  nil, // Not yet calculated - nullable field
			TotalForecasts: 0,
			ConfigParams:   nil, // No config stored - nullable field
		},
	}
}

// MockFetchForecastRows generates sample ForecastRow data for demonstration.
func MockFetchForecastRows() []ForecastRow {
	now := time.Now()

	return []ForecastRow{
		{
			RunID:       1,
			Item:        "Booster Box",
			Location:    "Store A - CA",
			RunTime:     now.Add(-2 * time.Hour),
			HorizonDays: 30,
			TotalUnits:  450,
			HistoryDays: 90,
			DailyLevel:  14.2,
			DailySlope:  0.35,
			Direction:   "rising",
		},
		{
			RunID:       1,
			Item:        "Deck Sleeves",
			Location:    "Main Warehouse",
			RunTime:     now.Add(-2 * time.Hour),
			HorizonDays: 30,
			TotalUnits:  1280,
			HistoryDays: 120,
			DailyLevel:  42.7,
			DailySlope:  -0.02,
			Direction:   "flat",
		},
		{
			RunID:       2,
			Item:        "Plush Mascot",
			Location:    "Store B - US",
			RunTime:     now.Add(-24 * time.Hour),
			HorizonDays: 60,
			TotalUnits:  260,
			HistoryDays: 45,
			DailyLevel:  5.1,
			DailySlope:  -0.22,
			Direction:   "falling",
		},
	}
}

// ConvertForecastResults converts live forecast results to ForecastRow for
// Parquet export. RunID is zero because results exported straight from a run
// never pass through the history store.
func ConvertForecastResults(results []schema.ForecastResult, runTime time.Time) []ForecastRow {
	rows := make([]ForecastRow, len(results))
	for i, r := range results {
		rows[i] = ForecastRow{
			RunID:       0,
			Item:        r.Item,
			Location:    r.Location,
			RunTime:     runTime,
			HorizonDays: int32(r.HorizonDays),
			TotalUnits:  r.TotalUnits,
			HistoryDays: int32(r.HistoryDays),
			DailyLevel:  r.DailyLevel,
			DailySlope:  r.DailySlope,
			Direction:   string(r.Direction),
		}
	}
	return rows
}

// ConvertRunRecords converts schema.RunRecord to ForecastRun for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []ForecastRun {
	result := make([]ForecastRun, len(records))
	for i, record := range records {
		result[i] = ForecastRun{
			RunID:          record.RunID,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			RunDurationMs:  record.RunDurationMs,
			TotalForecasts: record.TotalForecasts,
			ConfigParams:   record.ConfigParams,
		}
	}
	return result
}

// ConvertForecastRowRecords converts schema.ForecastRowRecord to ForecastRow for Parquet export.
func ConvertForecastRowRecords(records []schema.ForecastRowRecord) []ForecastRow {
	result := make([]ForecastRow, len(records))
	for i, record := range records {
		result[i] = ForecastRow{
			RunID:       record.RunID,
			Item:        record.Item,
			Location:    record.Location,
			RunTime:     record.RunTime,
			HorizonDays: record.HorizonDays,
			TotalUnits:  record.TotalUnits,
			HistoryDays: record.HistoryDays,
			DailyLevel:  record.DailyLevel,
			DailySlope:  record.DailySlope,
			Direction:   record.Direction,
		}
	}
	return result
}
