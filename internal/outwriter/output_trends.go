package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintTrendSeries outputs the sampled search interest for a keyword,
// dispatching based on the output format configured.
func PrintTrendSeries(series schema.TrendSeries, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printTrendsJSON(series, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printTrendsCSV(series, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by 'forecast' and 'history export'")
	default:
		// Default to human-readable table
		return writeWithFile(cfg, "Wrote table", func(w io.Writer) error {
			return writeTrendsTable(w, series, duration)
		})
	}
	return nil
}

// printTrendsJSON handles opening the file and calling the JSON writer.
func printTrendsJSON(series schema.TrendSeries, cfg *contract.Config) error {
	return writeWithFile(cfg, "Wrote JSON", func(w io.Writer) error {
		return writeJSON(w, series)
	})
}

// printTrendsCSV handles opening the file and calling the CSV writer.
func printTrendsCSV(series schema.TrendSeries, cfg *contract.Config) error {
	return writeWithFile(cfg, "Wrote CSV", func(w io.Writer) error {
		header := []string{"date", "interest"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range series.Points {
				rec := []string{
					p.Date.Format(seriesDateFormat),
					strconv.Itoa(p.Interest),
				}
				if err := csvWriter.Write(rec); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// writeTrendsTable generates and writes the human-readable table.
func writeTrendsTable(w io.Writer, series schema.TrendSeries, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"Date", "Interest"}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for _, p := range series.Points {
		row := []string{
			p.Date.Format(seriesDateFormat),
			strconv.Itoa(p.Interest),
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
	latest := series.Latest()
	if _, err := fmt.Fprintf(w, "Keyword %q (%s, %s): peak %d, latest %d\n",
		series.Keyword, geoLabel(series.Geo), series.Timeframe, series.Peak(), latest.Interest); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Lookup completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
