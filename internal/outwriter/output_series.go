package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// seriesDateFormat renders series dates as calendar days.
const seriesDateFormat = "2006-01-02"

// PrintSeriesView outputs the daily demand history for one pair, dispatching
// based on the output format configured.
func PrintSeriesView(view *schema.SeriesView, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := floatFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printSeriesJSON(view, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printSeriesCSV(view, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by 'forecast' and 'history export'")
	default:
		// Default to human-readable table
		return writeWithFile(cfg, "Wrote table", func(w io.Writer) error {
			return writeSeriesTable(w, view, fmtFloat, duration)
		})
	}
	return nil
}

// printSeriesJSON handles opening the file and calling the JSON writer.
func printSeriesJSON(view *schema.SeriesView, cfg *contract.Config) error {
	return writeWithFile(cfg, "Wrote JSON", func(w io.Writer) error {
		return writeJSON(w, view)
	})
}

// printSeriesCSV handles opening the file and calling the CSV writer.
func printSeriesCSV(view *schema.SeriesView, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg, "Wrote CSV", func(w io.Writer) error {
		header := []string{"date", "units", "sma_7d", "sma_28d"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range view.Points {
				rec := []string{
					p.Date.Format(seriesDateFormat),
					fmtFloat(p.Units),
					fmtFloat(p.SMA7),
					fmtFloat(p.SMA28),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// writeSeriesTable generates and writes the human-readable table.
func writeSeriesTable(w io.Writer, view *schema.SeriesView, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Date", "Units", "SMA(7d)", "SMA(28d)"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, p := range view.Points {
		row := []string{
			p.Date.Format(seriesDateFormat),
			fmtFloat(p.Units),
			fmtFloat(p.SMA7),
			fmtFloat(p.SMA28),
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
	if _, err := fmt.Fprintf(w, "Pair %s @ %s: %d days of history (forecast eligible: %t)\n",
		view.Item, view.Location, len(view.Points), view.Eligible); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Series rendered in %v\n", duration); err != nil {
		return err
	}
	return nil
}
