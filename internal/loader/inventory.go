package loader

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// inventoryColumns are the required snapshot columns, matched
// case-insensitively.
var inventoryColumns = []string{
	"item_name", "price", "cost_price", "units_left",
	"units_sold", "reorder_point", "category", "supplier", "location",
}

// InventoryCSVSource loads the inventory snapshot from a CSV export.
type InventoryCSVSource struct {
	path string
}

var _ contract.InventorySource = &InventoryCSVSource{} // Compile-time check

// NewInventoryCSVSource creates an inventory source backed by the CSV at path.
func NewInventoryCSVSource(path string) *InventoryCSVSource {
	return &InventoryCSVSource{path: path}
}

// Describe implements the InventorySource interface.
func (s *InventoryCSVSource) Describe() string {
	return "csv:" + s.path
}

// LoadInventory implements the InventorySource interface.
func (s *InventoryCSVSource) LoadInventory(ctx context.Context) ([]schema.InventoryRecord, error) {
	rows, idx, err := readCSVTable(ctx, s.path, inventoryColumns)
	if err != nil {
		return nil, err
	}

	records := make([]schema.InventoryRecord, 0, len(rows))
	for i, row := range rows {
		record, err := parseInventoryRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// parseInventoryRow converts one CSV row into a stocked record.
func parseInventoryRow(row []string, idx map[string]int) (schema.InventoryRecord, error) {
	price, err := parseMoney(row[idx["price"]], "price")
	if err != nil {
		return schema.InventoryRecord{}, err
	}
	cost, err := parseMoney(row[idx["cost_price"]], "cost_price")
	if err != nil {
		return schema.InventoryRecord{}, err
	}

	unitsLeft, err := parseCount(row[idx["units_left"]], "units_left")
	if err != nil {
		return schema.InventoryRecord{}, err
	}
	unitsSold, err := parseCount(row[idx["units_sold"]], "units_sold")
	if err != nil {
		return schema.InventoryRecord{}, err
	}
	reorderPoint, err := parseCount(row[idx["reorder_point"]], "reorder_point")
	if err != nil {
		return schema.InventoryRecord{}, err
	}

	return schema.InventoryRecord{
		Item:         schema.CleanField(row[idx["item_name"]]),
		Category:     schema.CleanField(row[idx["category"]]),
		Supplier:     schema.CleanField(row[idx["supplier"]]),
		Location:     schema.CleanField(row[idx["location"]]),
		Price:        price,
		CostPrice:    cost,
		UnitsLeft:    unitsLeft,
		UnitsSold:    unitsSold,
		ReorderPoint: reorderPoint,
	}, nil
}

// parseMoney parses a currency cell into an exact decimal amount.
func parseMoney(cell, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(cell))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %s %q is not a decimal amount", ErrMalformedInput, column, cell)
	}
	return d, nil
}

// parseCount parses a whole-unit cell. Counts are physical stock figures,
// so negatives reject the file rather than silently flowing into KPIs.
func parseCount(cell, column string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a whole number", ErrMalformedInput, column, cell)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %s cannot be negative (received %d)", ErrMalformedInput, column, n)
	}
	return n, nil
}
