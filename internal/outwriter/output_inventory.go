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

// getStockStatusCell renders the stock status for table output. Low-stock
// rows are highlighted with the critical color when colors are enabled.
func getStockStatusCell(r schema.EnrichedInventoryRecord, useColors bool) string {
	if !r.LowStock() {
		return "OK"
	}
	if useColors {
		return contract.CriticalColor.Sprint("LOW")
	}
	return "LOW"
}

// PrintInventoryReport outputs the KPI-enriched snapshot, dispatching based
// on the output format configured.
func PrintInventoryReport(report *schema.InventoryReport, cfg *contract.Config, duration time.Duration) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printInventoryJSON(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printInventoryCSV(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by 'forecast' and 'history export'")
	default:
		// Default to human-readable table
		return writeWithFile(cfg, "Wrote table", func(w io.Writer) error {
			return writeInventoryTable(w, report, cfg, duration)
		})
	}
	return nil
}

// printInventoryJSON handles opening the file and calling the JSON writer.
func printInventoryJSON(report *schema.InventoryReport, cfg *contract.Config) error {
	return writeWithFile(cfg, "Wrote JSON", func(w io.Writer) error {
		// The report carries its aggregates, so the whole object is written
		return writeJSON(w, report)
	})
}

// printInventoryCSV handles opening the file and calling the CSV writer.
func printInventoryCSV(report *schema.InventoryReport, cfg *contract.Config) error {
	return writeWithFile(cfg, "Wrote CSV", func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeInventoryCSVRows(csvWriter, report)
	})
}

// writeInventoryTable generates and writes the human-readable table.
func writeInventoryTable(w io.Writer, report *schema.InventoryReport, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	headers := []string{"#", "Item", "Location", "Price", "Left", "Sold", "Margin%", "Stock Value", "Turnover", "Status"}
	if cfg.Detail {
		headers = append(headers, "Category", "Supplier", "Cost", "Reorder At")
	}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	cellWidth := getMaxTableItemWidth(cfg)
	var data [][]string
	for i, r := range report.Rows {
		row := []string{
			strconv.Itoa(i + 1),                          // Rank
			contract.TruncateText(r.Item, cellWidth),     // Item
			contract.TruncateText(r.Location, cellWidth), // Location
			r.Price.StringFixed(2),                       // Price
			strconv.Itoa(r.UnitsLeft),                    // Left
			strconv.Itoa(r.UnitsSold),                    // Sold
			r.MarginPct.StringFixed(2),                   // Margin%
			r.StockValue.StringFixed(2),                  // Stock Value
			r.Turnover.StringFixed(2),                    // Turnover
			getStockStatusCell(r, cfg.UseColors),         // Status
		}
		if cfg.Detail {
			row = append(
				row,
				r.Category,                 // Category
				r.Supplier,                 // Supplier
				r.CostPrice.StringFixed(2), // Cost
				strconv.Itoa(r.ReorderPoint),
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
	// Report aggregates as summary lines
	if _, err := fmt.Fprintf(w, "Showing %d items (low stock: %d)\n", len(report.Rows), report.LowStockCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Totals: stock value %s, avg margin %s%%, avg turnover %s\n",
		report.TotalStockValue.StringFixed(2), report.AvgMarginPct.StringFixed(2), report.AvgTurnover.StringFixed(2)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Overview completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeInventoryCSVRows writes the enriched snapshot in CSV format.
func writeInventoryCSVRows(w *csv.Writer, report *schema.InventoryReport) error {
	// CSV header
	header := []string{
		"item",
		"category",
		"supplier",
		"location",
		"price",
		"cost_price",
		"units_left",
		"units_sold",
		"reorder_point",
		"margin_pct",
		"stock_value",
		"turnover",
		"low_stock",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range report.Rows {
		rec := []string{
			r.Item,                              // Item
			r.Category,                          // Category
			r.Supplier,                          // Supplier
			r.Location,                          // Location
			r.Price.StringFixed(2),           // Price
			r.CostPrice.StringFixed(2),       // Cost price
			strconv.Itoa(r.UnitsLeft),        // Units left
			strconv.Itoa(r.UnitsSold),        // Units sold
			strconv.Itoa(r.ReorderPoint),     // Reorder point
			r.MarginPct.StringFixed(2),       // Margin percent
			r.StockValue.StringFixed(2),      // Stock value
			r.Turnover.StringFixed(2),        // Turnover
			strconv.FormatBool(r.LowStock()), // Low stock flag
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
