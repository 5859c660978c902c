package loader

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inventoryHeader = "item_name,price,cost_price,units_left,units_sold,reorder_point,category,supplier,location\n"

func TestLoadInventoryCSV(t *testing.T) {
	path := writeTempFile(t, "inventory.csv",
		inventoryHeader+
			"Booster Box,99.99,60.00,12,38,10,Games,Distribution One,Store A - CA\n"+
			"Deck Sleeves,4.50,1.25,200,431,50,Accessories,Sleeve Kings,Main Warehouse\n")

	records, err := NewInventoryCSVSource(path).LoadInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "Booster Box", first.Item)
	assert.Equal(t, "Games", first.Category)
	assert.Equal(t, "Distribution One", first.Supplier)
	assert.Equal(t, "Store A - CA", first.Location)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("99.99")), "price should parse exactly")
	assert.True(t, first.CostPrice.Equal(decimal.RequireFromString("60.00")))
	assert.Equal(t, 12, first.UnitsLeft)
	assert.Equal(t, 38, first.UnitsSold)
	assert.Equal(t, 10, first.ReorderPoint)

	second := records[1]
	assert.Equal(t, "Deck Sleeves", second.Item)
	assert.True(t, second.Price.Equal(decimal.RequireFromString("4.50")))
	assert.Equal(t, 200, second.UnitsLeft)
}

func TestLoadInventoryMissingColumns(t *testing.T) {
	path := writeTempFile(t, "inventory.csv",
		"item_name,price,cost_price,units_left,units_sold,reorder_point,location\n"+
			"Booster Box,99.99,60.00,12,38,10,Store A - CA\n")

	_, err := NewInventoryCSVSource(path).LoadInventory(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), "category")
	assert.Contains(t, err.Error(), "supplier")
}

func TestLoadInventoryRejectsBadRows(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		keyword string
	}{
		{"non-decimal price", "Booster Box,cheap,60.00,12,38,10,Games,Distribution One,Store A - CA", "price"},
		{"non-decimal cost", "Booster Box,99.99,n/a,12,38,10,Games,Distribution One,Store A - CA", "cost_price"},
		{"fractional count", "Booster Box,99.99,60.00,12.5,38,10,Games,Distribution One,Store A - CA", "units_left"},
		{"negative count", "Booster Box,99.99,60.00,12,-38,10,Games,Distribution One,Store A - CA", "units_sold"},
		{"non-numeric reorder", "Booster Box,99.99,60.00,12,38,soon,Games,Distribution One,Store A - CA", "reorder_point"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "inventory.csv", inventoryHeader+tt.row+"\n")

			_, err := NewInventoryCSVSource(path).LoadInventory(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
			assert.Contains(t, err.Error(), tt.keyword, "error should name the offending column")
		})
	}
}

func TestLoadInventoryHeaderOnly(t *testing.T) {
	path := writeTempFile(t, "inventory.csv", inventoryHeader)

	records, err := NewInventoryCSVSource(path).LoadInventory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestInventoryCSVDescribe(t *testing.T) {
	source := NewInventoryCSVSource("data/inventory.csv")
	assert.Equal(t, "csv:data/inventory.csv", source.Describe())
}
