package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func inventoryTestReport() *schema.InventoryReport {
	return &schema.InventoryReport{
		Rows: []schema.EnrichedInventoryRecord{
			{
				InventoryRecord: schema.InventoryRecord{
					Item:         "Booster Box",
					Category:     "Sealed",
					Supplier:     "Distributor North",
					Location:     "Store A - CA",
					Price:        money("129.99"),
					CostPrice:    money("95.00"),
					UnitsLeft:    12,
					UnitsSold:    48,
					ReorderPoint: 10,
				},
				MarginPct:  money("26.92"),
				StockValue: money("1559.88"),
				Turnover:   money("0.80"),
			},
			{
				InventoryRecord: schema.InventoryRecord{
					Item:         "Plush Mascot",
					Category:     "Merch",
					Supplier:     "Plush Co",
					Location:     "Store B - US",
					Price:        money("18.50"),
					CostPrice:    money("11.00"),
					UnitsLeft:    3,
					UnitsSold:    25,
					ReorderPoint: 8,
				},
				MarginPct:  money("40.54"),
				StockValue: money("55.50"),
				Turnover:   money("0.89"),
			},
		},
		TotalStockValue: money("1615.38"),
		AvgMarginPct:    money("33.73"),
		AvgTurnover:     money("0.85"),
		LowStockCount:   1,
	}
}

func TestGetStockStatusCell(t *testing.T) {
	tests := []struct {
		name         string
		unitsLeft    int
		reorderPoint int
		useColors    bool
		expected     string
	}{
		{
			name:         "healthy stock",
			unitsLeft:    12,
			reorderPoint: 10,
			useColors:    false,
			expected:     "OK",
		},
		{
			name:         "at reorder point is still ok",
			unitsLeft:    10,
			reorderPoint: 10,
			useColors:    false,
			expected:     "OK",
		},
		{
			name:         "below reorder point",
			unitsLeft:    3,
			reorderPoint: 8,
			useColors:    false,
			expected:     "LOW",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := schema.EnrichedInventoryRecord{
				InventoryRecord: schema.InventoryRecord{
					UnitsLeft:    tt.unitsLeft,
					ReorderPoint: tt.reorderPoint,
				},
			}
			assert.Equal(t, tt.expected, getStockStatusCell(r, tt.useColors))
		})
	}
}

func TestGetStockStatusCellColored(t *testing.T) {
	r := schema.EnrichedInventoryRecord{
		InventoryRecord: schema.InventoryRecord{UnitsLeft: 1, ReorderPoint: 5},
	}
	// Color codes are stripped in non-TTY environments, so match the label
	assert.Contains(t, getStockStatusCell(r, true), "LOW")
}

func TestWriteInventoryTable(t *testing.T) {
	cfg := &contract.Config{
		Output:       schema.TextOut,
		Precision:    1,
		Width:        160,
		CacheBackend: schema.SQLiteBackend,
	}
	var buf bytes.Buffer
	err := writeInventoryTable(&buf, inventoryTestReport(), cfg, 5*time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Booster Box")
	assert.Contains(t, output, "Plush Mascot")
	assert.Contains(t, output, "1559.88")
	assert.Contains(t, output, "OK")
	assert.Contains(t, output, "LOW")
	assert.Contains(t, output, "Showing 2 items (low stock: 1)")
	assert.Contains(t, output, "Totals: stock value 1615.38, avg margin 33.73%, avg turnover 0.85")
	assert.Contains(t, output, "Overview completed in 5ms. Cache backend: sqlite")
}

func TestWriteInventoryTableDetail(t *testing.T) {
	cfg := &contract.Config{
		Output:       schema.TextOut,
		Precision:    1,
		Width:        220,
		Detail:       true,
		CacheBackend: schema.SQLiteBackend,
	}
	var buf bytes.Buffer
	err := writeInventoryTable(&buf, inventoryTestReport(), cfg, time.Millisecond)
	require.NoError(t, err)

	output := buf.String()
	// Detail mode adds sourcing columns
	assert.Contains(t, output, "Supplier")
	assert.Contains(t, output, "Distributor North")
	assert.Contains(t, output, "95.00")
}

func TestWriteInventoryCSVRows(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeInventoryCSVRows(w, inventoryTestReport())
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 rows

	assert.Equal(t, "item,category,supplier,location,price,cost_price,units_left,units_sold,reorder_point,margin_pct,stock_value,turnover,low_stock", lines[0])
	assert.Contains(t, lines[1], "Booster Box")
	assert.True(t, strings.HasSuffix(lines[1], "false"), "healthy row should not be flagged: %s", lines[1])
	assert.Contains(t, lines[2], "Plush Mascot")
	assert.True(t, strings.HasSuffix(lines[2], "true"), "low row should be flagged: %s", lines[2])
}

func TestPrintInventoryReportJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "inventory.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: tmpFile,
	}

	err := PrintInventoryReport(inventoryTestReport(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(content, &result)
	require.NoError(t, err)

	rows, ok := result["rows"].([]any)
	require.True(t, ok, "rows should be a JSON array")
	assert.Len(t, rows, 2)

	// Decimals marshal as strings, counts as numbers
	assert.Equal(t, "1615.38", result["total_stock_value"])
	assert.Equal(t, float64(1), result["low_stock_count"])
}

func TestPrintInventoryReportCSVFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "inventory.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: tmpFile,
		Precision:  1,
	}

	err := PrintInventoryReport(inventoryTestReport(), cfg, time.Millisecond)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "item,category,supplier")
	assert.Contains(t, string(content), "Plush Mascot")
}

func TestPrintInventoryReportParquetRejected(t *testing.T) {
	cfg := &contract.Config{
		Output:     schema.ParquetOut,
		OutputFile: filepath.Join(t.TempDir(), "inventory.parquet"),
	}

	err := PrintInventoryReport(inventoryTestReport(), cfg, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet output is only supported")
}
