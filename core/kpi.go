package core

import (
	"github.com/shopspring/decimal"

	"github.com/jmallard/shelfwatch/schema"
)

// KPI computation constants.
var (
	hundred = decimal.NewFromInt(100)

	// turnoverEpsilon keeps the turnover denominator non-zero for items
	// with no recorded movement at all.
	turnoverEpsilon = decimal.NewFromFloat(1e-9)
)

// kpiPrecision is the number of decimal places every KPI value rounds to.
const kpiPrecision = 2

// EnrichInventoryRecord computes the KPI columns for one inventory record.
// All values round to two decimal places; a zero sale price yields a zero
// margin rather than a division error.
func EnrichInventoryRecord(r schema.InventoryRecord) schema.EnrichedInventoryRecord {
	enriched := schema.EnrichedInventoryRecord{InventoryRecord: r}

	// Margin: (price - cost) / price * 100
	if !r.Price.IsZero() {
		enriched.MarginPct = r.Price.Sub(r.CostPrice).Div(r.Price).Mul(hundred).Round(kpiPrecision)
	} else {
		enriched.MarginPct = decimal.Zero
	}

	// Stock value: cost * units left
	enriched.StockValue = r.CostPrice.Mul(decimal.NewFromInt(int64(r.UnitsLeft))).Round(kpiPrecision)

	// Turnover: sold / (sold + left), epsilon-guarded
	sold := decimal.NewFromInt(int64(r.UnitsSold))
	denominator := sold.Add(decimal.NewFromInt(int64(r.UnitsLeft))).Add(turnoverEpsilon)
	enriched.Turnover = sold.Div(denominator).Round(kpiPrecision)

	return enriched
}

// BuildInventoryReport enriches every record with KPI columns and computes
// the report aggregates over the (already filtered) snapshot.
func BuildInventoryReport(records []schema.InventoryRecord) *schema.InventoryReport {
	report := &schema.InventoryReport{
		Rows:            make([]schema.EnrichedInventoryRecord, 0, len(records)),
		TotalStockValue: decimal.Zero,
		AvgMarginPct:    decimal.Zero,
		AvgTurnover:     decimal.Zero,
	}

	marginSum := decimal.Zero
	turnoverSum := decimal.Zero
	for _, r := range records {
		enriched := EnrichInventoryRecord(r)
		report.Rows = append(report.Rows, enriched)

		report.TotalStockValue = report.TotalStockValue.Add(enriched.StockValue)
		marginSum = marginSum.Add(enriched.MarginPct)
		turnoverSum = turnoverSum.Add(enriched.Turnover)
		if r.LowStock() {
			report.LowStockCount++
		}
	}

	if n := len(records); n > 0 {
		count := decimal.NewFromInt(int64(n))
		report.AvgMarginPct = marginSum.Div(count).Round(kpiPrecision)
		report.AvgTurnover = turnoverSum.Div(count).Round(kpiPrecision)
	}
	report.TotalStockValue = report.TotalStockValue.Round(kpiPrecision)

	return report
}
