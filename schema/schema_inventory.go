package schema

import "github.com/shopspring/decimal"

// InventoryRecord is one stocked item at one location, as loaded from the
// inventory snapshot (CSV or SQLite).
type InventoryRecord struct {
	Item         string          `json:"item"`
	Category     string          `json:"category"`
	Supplier     string          `json:"supplier"`
	Location     string          `json:"location"`
	Price        decimal.Decimal `json:"price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	UnitsLeft    int             `json:"units_left"`
	UnitsSold    int             `json:"units_sold"`
	ReorderPoint int             `json:"reorder_point"`
}

// LowStock reports whether the record sits strictly below its reorder point.
func (r InventoryRecord) LowStock() bool {
	return r.UnitsLeft < r.ReorderPoint
}

// EnrichedInventoryRecord adds computed KPI columns to an InventoryRecord.
// All KPI values are rounded to two decimal places.
type EnrichedInventoryRecord struct {
	InventoryRecord
	MarginPct  decimal.Decimal `json:"margin_pct"`
	StockValue decimal.Decimal `json:"stock_value"`
	Turnover   decimal.Decimal `json:"turnover"`
}

// InventoryReport is the KPI-enriched inventory snapshot plus its aggregates.
type InventoryReport struct {
	Rows            []EnrichedInventoryRecord `json:"rows"`
	TotalStockValue decimal.Decimal           `json:"total_stock_value"`
	AvgMarginPct    decimal.Decimal           `json:"avg_margin_pct"`
	AvgTurnover     decimal.Decimal           `json:"avg_turnover"`
	LowStockCount   int                       `json:"low_stock_count"`
}
