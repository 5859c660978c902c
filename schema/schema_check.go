package schema

// CheckResult holds the results of a reorder policy check.
type CheckResult struct {
	Passed       bool
	Alerts       []ReorderAlert
	TotalRecords int
	Region       RegionScope
}

// ReorderAlert represents a record that violated the reorder policy,
// meaning its units on hand sit strictly below the reorder point.
type ReorderAlert struct {
	Item         string `json:"item"`
	Location     string `json:"location"`
	UnitsLeft    int    `json:"units_left"`
	ReorderPoint int    `json:"reorder_point"`
	Shortfall    int    `json:"shortfall"`
	Severity     string `json:"severity"`
}

// ShortfallRatio returns how far below the reorder point the record sits,
// from just above 0 (barely short) to 1 (nothing left).
func (a ReorderAlert) ShortfallRatio() float64 {
	if a.ReorderPoint <= 0 {
		return 0
	}
	return float64(a.Shortfall) / float64(a.ReorderPoint)
}
