// Package loader reads inventory snapshots, sales ledgers and SKU filter
// lists from local files. Every source implements a contract interface, so
// the core logic never touches file formats or drivers directly.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmallard/shelfwatch/schema"
)

// ErrMalformedInput marks input the loaders refuse to serve: missing
// required columns, unparseable cells or negative quantities. A bad row
// rejects the whole file; downstream code never sees a partial load.
var ErrMalformedInput = errors.New("malformed input")

// readCSVTable reads the whole CSV at path, validates the required columns
// and returns the data rows plus the resolved column index. encoding/csv
// enforces a rectangular table, so resolved positions are valid for every
// returned row.
func readCSVTable(ctx context.Context, path string, required []string) ([][]string, map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("%w: file has no header row", ErrMalformedInput)
	}

	idx := headerIndex(all[0])
	if err := requireColumns(idx, required); err != nil {
		return nil, nil, err
	}
	return all[1:], idx, nil
}

// headerIndex maps normalized header names to their column positions.
// Duplicate headers keep the first occurrence.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, cell := range header {
		name := schema.NormalizeHeader(cell)
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	return idx
}

// requireColumns verifies every required column is present, reporting all
// missing names at once so a bad export is fixed in one pass.
func requireColumns(idx map[string]int, required []string) error {
	var missing []string
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: missing required column(s): %s", ErrMalformedInput, strings.Join(missing, ", "))
}
