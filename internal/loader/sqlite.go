package loader

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// inventoryTable is the table read from the SQLite snapshot.
const inventoryTable = "inventory"

// InventoryDBSource loads the inventory snapshot from a SQLite database.
// This is the fallback when no CSV export is configured or found.
type InventoryDBSource struct {
	path string
}

var _ contract.InventorySource = &InventoryDBSource{} // Compile-time check

// NewInventoryDBSource creates an inventory source backed by the SQLite
// database at path.
func NewInventoryDBSource(path string) *InventoryDBSource {
	return &InventoryDBSource{path: path}
}

// Describe implements the InventorySource interface.
func (s *InventoryDBSource) Describe() string {
	return "sqlite:" + s.path
}

// LoadInventory implements the InventorySource interface.
func (s *InventoryDBSource) LoadInventory(ctx context.Context) ([]schema.InventoryRecord, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w", s.path, err)
	}
	defer func() { _ = db.Close() }()

	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	query := fmt.Sprintf(`
		SELECT item_name, price, cost_price, units_left, units_sold,
		       reorder_point, category, supplier, location
		FROM %s
	`, inventoryTable)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s table: %w", inventoryTable, err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.InventoryRecord
	for rows.Next() {
		record, err := scanInventoryRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", inventoryTable, err)
	}
	return records, nil
}

// scanInventoryRow scans one database row into a stocked record. Money
// columns scan as text regardless of their storage class, then parse into
// exact decimals the same way the CSV path does.
func scanInventoryRow(rows *sql.Rows) (schema.InventoryRecord, error) {
	var r schema.InventoryRecord
	var priceStr, costStr string

	if err := rows.Scan(&r.Item, &priceStr, &costStr, &r.UnitsLeft, &r.UnitsSold,
		&r.ReorderPoint, &r.Category, &r.Supplier, &r.Location); err != nil {
		return schema.InventoryRecord{}, fmt.Errorf("failed to scan %s row: %w", inventoryTable, err)
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return schema.InventoryRecord{}, fmt.Errorf("%w: price %q is not a decimal amount", ErrMalformedInput, priceStr)
	}
	cost, err := decimal.NewFromString(costStr)
	if err != nil {
		return schema.InventoryRecord{}, fmt.Errorf("%w: cost_price %q is not a decimal amount", ErrMalformedInput, costStr)
	}

	r.Item = schema.CleanField(r.Item)
	r.Category = schema.CleanField(r.Category)
	r.Supplier = schema.CleanField(r.Supplier)
	r.Location = schema.CleanField(r.Location)
	r.Price = price
	r.CostPrice = cost
	return r, nil
}
