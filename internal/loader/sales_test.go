package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempFile drops a fixture file into a per-test temp directory.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSalesLedger(t *testing.T) {
	path := writeTempFile(t, "sales.csv",
		"item_name,Date,Units_Sold,location\n"+
			"Booster Box,2025-03-01,10,Store A - CA\n"+
			"Booster Box,2025/03/02,4.5,Store A - CA\n"+
			"  Plush  Mascot ,03/05/2025,0,Main Warehouse\n")

	records, err := NewSalesCSVSource(path).LoadSales(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "Booster Box", records[0].Item)
	assert.Equal(t, "Store A - CA", records[0].Location)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, 10.0, records[0].Units)

	// Slash layouts normalize to the same UTC midnight representation
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), records[1].Date)
	assert.Equal(t, 4.5, records[1].Units)

	// Field cleaning collapses inner runs and trims the edges
	assert.Equal(t, "Plush Mascot", records[2].Item)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), records[2].Date)
	assert.Equal(t, 0.0, records[2].Units)
}

func TestLoadSalesHeaderCaseInsensitive(t *testing.T) {
	path := writeTempFile(t, "sales.csv",
		"Item_Name,DATE,units_sold,Location\n"+
			"Deck Sleeves,2025-04-01,3,Osaka Depot\n")

	records, err := NewSalesCSVSource(path).LoadSales(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Deck Sleeves", records[0].Item)
	assert.Equal(t, "Osaka Depot", records[0].Location)
}

func TestLoadSalesHeaderOnly(t *testing.T) {
	path := writeTempFile(t, "sales.csv", "item_name,Date,Units_Sold,location\n")

	records, err := NewSalesCSVSource(path).LoadSales(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records, "a ledger with no observations is valid, just empty")
}

func TestLoadSalesMissingColumns(t *testing.T) {
	path := writeTempFile(t, "sales.csv",
		"item_name,Date\n"+
			"Booster Box,2025-03-01\n")

	_, err := NewSalesCSVSource(path).LoadSales(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), "units_sold")
	assert.Contains(t, err.Error(), "location")
}

func TestLoadSalesRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"unparseable date", "Booster Box,yesterday,10,Store A - CA"},
		{"empty date", "Booster Box,,10,Store A - CA"},
		{"non-numeric units", "Booster Box,2025-03-01,lots,Store A - CA"},
		{"negative units", "Booster Box,2025-03-01,-4,Store A - CA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "sales.csv",
				"item_name,Date,Units_Sold,location\n"+
					"Booster Box,2025-03-01,1,Store A - CA\n"+
					tt.row+"\n")

			_, err := NewSalesCSVSource(path).LoadSales(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Contains(t, err.Error(), "row 3", "error should point at the offending line")
		})
	}
}

func TestLoadSalesRaggedRow(t *testing.T) {
	path := writeTempFile(t, "sales.csv",
		"item_name,Date,Units_Sold,location\n"+
			"Booster Box,2025-03-01,10\n")

	_, err := NewSalesCSVSource(path).LoadSales(context.Background())
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestLoadSalesEmptyFile(t *testing.T) {
	path := writeTempFile(t, "sales.csv", "")

	_, err := NewSalesCSVSource(path).LoadSales(context.Background())
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestLoadSalesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	_, err := NewSalesCSVSource(path).LoadSales(context.Background())
	assert.Error(t, err)
}

func TestLoadSalesCancelledContext(t *testing.T) {
	path := writeTempFile(t, "sales.csv",
		"item_name,Date,Units_Sold,location\n"+
			"Booster Box,2025-03-01,10,Store A - CA\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSalesCSVSource(path).LoadSales(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSalesCSVDescribe(t *testing.T) {
	source := NewSalesCSVSource("data/sales.csv")
	assert.Equal(t, "csv:data/sales.csv", source.Describe())
}
