package loader

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// salesColumns are the required ledger columns, matched case-insensitively.
// The canonical export spells them item_name, Date, Units_Sold, location.
var salesColumns = []string{"item_name", "date", "units_sold", "location"}

// SalesCSVSource loads the raw sales ledger from a CSV export.
type SalesCSVSource struct {
	path string
}

var _ contract.SalesSource = &SalesCSVSource{} // Compile-time check

// NewSalesCSVSource creates a sales source backed by the CSV at path.
func NewSalesCSVSource(path string) *SalesCSVSource {
	return &SalesCSVSource{path: path}
}

// Describe implements the SalesSource interface.
func (s *SalesCSVSource) Describe() string {
	return "csv:" + s.path
}

// LoadSales implements the SalesSource interface. Observations come back in
// file order; grouping and date normalization happen downstream.
func (s *SalesCSVSource) LoadSales(ctx context.Context) ([]schema.SalesRecord, error) {
	rows, idx, err := readCSVTable(ctx, s.path, salesColumns)
	if err != nil {
		return nil, err
	}

	records := make([]schema.SalesRecord, 0, len(rows))
	for i, row := range rows {
		record, err := parseSalesRow(row, idx)
		if err != nil {
			// +2 converts to a 1-based line number after the header
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// parseSalesRow converts one CSV row into a sales observation.
func parseSalesRow(row []string, idx map[string]int) (schema.SalesRecord, error) {
	date, err := contract.ParseSalesDate(row[idx["date"]])
	if err != nil {
		return schema.SalesRecord{}, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	unitsStr := strings.TrimSpace(row[idx["units_sold"]])
	units, err := strconv.ParseFloat(unitsStr, 64)
	if err != nil {
		return schema.SalesRecord{}, fmt.Errorf("%w: units_sold %q is not a number", ErrMalformedInput, unitsStr)
	}
	if units < 0 {
		return schema.SalesRecord{}, fmt.Errorf("%w: units_sold cannot be negative (received %v)", ErrMalformedInput, units)
	}

	return schema.SalesRecord{
		Item:     schema.CleanField(row[idx["item_name"]]),
		Location: schema.CleanField(row[idx["location"]]),
		Date:     date,
		Units:    units,
	}, nil
}
