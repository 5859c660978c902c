package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/parquet"
	"github.com/jmallard/shelfwatch/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Trend direction colors for table output.
var (
	risingColor  = color.New(color.FgGreen)
	fallingColor = color.New(color.FgRed)
)

// getTrendCell renders a trend direction for table output, colored when enabled.
func getTrendCell(direction schema.TrendDirection, useColors bool) string {
	if !useColors {
		return string(direction)
	}
	switch direction {
	case schema.RisingTrend:
		return risingColor.Sprint(string(direction))
	case schema.FallingTrend:
		return fallingColor.Sprint(string(direction))
	default: // flat stays uncolored
		return string(direction)
	}
}

// PrintForecastResults outputs the demand projection, dispatching based on the
// output format configured.
func PrintForecastResults(table *schema.ForecastTable, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := floatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printForecastJSON(table, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printForecastCSV(table, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printForecastParquet(table, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg, "Wrote table", func(w io.Writer) error {
			return writeForecastTable(w, table, cfg, fmtFloat, duration)
		})
	}
	return nil
}

// printForecastJSON handles opening the file and calling the JSON writer.
func printForecastJSON(table *schema.ForecastTable, cfg *contract.Config) error {
	return writeWithFile(cfg, "Wrote JSON", func(w io.Writer) error {
		return writeForecastJSONRows(w, table)
	})
}

// printForecastCSV handles opening the file and calling the CSV writer.
func printForecastCSV(table *schema.ForecastTable, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg, "Wrote CSV", func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeForecastCSVRows(csvWriter, table, fmtFloat)
	})
}

// printForecastParquet writes the projection rows as a Parquet file. Config
// validation guarantees an output file is set for this mode, so there is no
// stdout path here.
func printForecastParquet(table *schema.ForecastTable, cfg *contract.Config) error {
	rows := parquet.ConvertForecastResults(table.Results, table.GeneratedAt)
	if err := parquet.WriteForecastsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%sWrote Parquet to %s\n", headerPrefix(cfg, "💾"), cfg.OutputFile)
	return nil
}

// writeForecastTable generates and writes the human-readable table.
func writeForecastTable(w io.Writer, t *schema.ForecastTable, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"#", "Item", "Location", "History", "Horizon", "Total", "Avg/Day", "Velocity(7d)", "Trend"}
	if cfg.Detail {
		headers = append(headers, "Velocity(28d)", "Level", "Slope")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	cellWidth := getMaxTableItemWidth(cfg)
	var data [][]string
	for i, r := range t.Results {
		// Prepare the row data as a slice of strings
		row := []string{
			strconv.Itoa(i + 1),                          // Rank
			contract.TruncateText(r.Item, cellWidth),     // Item
			contract.TruncateText(r.Location, cellWidth), // Location
			strconv.Itoa(r.HistoryDays),                  // History
			strconv.Itoa(r.HorizonDays),                  // Horizon
			strconv.FormatInt(r.TotalUnits, 10),          // Total
			fmtFloat(r.AvgPerDay()),                      // Avg/Day
			fmtFloat(r.Velocity7),                        // Velocity(7d)
			getTrendCell(r.Direction, cfg.UseColors),     // Trend
		}
		if cfg.Detail {
			row = append(
				row,
				fmtFloat(r.Velocity28), // Velocity(28d)
				fmtFloat(r.DailyLevel), // Level
				fmtFloat(r.DailySlope), // Slope
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	var totalUnits int64
	for _, r := range t.Results {
		totalUnits += r.TotalUnits
	}
	if _, err := fmt.Fprintf(w, "Showing %d pairs (seen: %d, skipped: %d, projected units: %d)\n", len(t.Results), t.PairsSeen, t.PairsSkipped, totalUnits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Forecast completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeForecastCSVRows writes the projection rows in CSV format.
func writeForecastCSVRows(w *csv.Writer, t *schema.ForecastTable, fmtFloat func(float64) string) error {
	// CSV header
	header := []string{
		"rank",
		"item",
		"location",
		"history_days",
		"horizon_days",
		"total_units",
		"avg_per_day",
		"velocity_7d",
		"velocity_28d",
		"daily_level",
		"daily_slope",
		"trend",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, r := range t.Results {
		rec := []string{
			strconv.Itoa(i + 1),                 // Rank
			r.Item,                              // Item
			r.Location,                          // Location
			strconv.Itoa(r.HistoryDays),         // History in days
			strconv.Itoa(r.HorizonDays),         // Horizon in days
			strconv.FormatInt(r.TotalUnits, 10), // Total projected units
			fmtFloat(r.AvgPerDay()),             // Average per day
			fmtFloat(r.Velocity7),               // 7-day velocity
			fmtFloat(r.Velocity28),              // 28-day velocity
			fmtFloat(r.DailyLevel),              // Fitted level
			fmtFloat(r.DailySlope),              // Fitted slope
			string(r.Direction),                 // Trend direction
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeForecastJSONRows writes the projection rows in JSON format.
func writeForecastJSONRows(w io.Writer, t *schema.ForecastTable) error {
	// Rank numbers are added so consumers see the display order
	return writeJSON(w, schema.EnrichForecasts(t.Results))
}
