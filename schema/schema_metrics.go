package schema

// MetricsEntry describes one KPI or model term for display purposes.
type MetricsEntry struct {
	Name    string   `json:"name"`
	Purpose string   `json:"purpose"`
	Formula string   `json:"formula"`
	Inputs  []string `json:"inputs,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// MetricsRenderModel contains all processed data needed for displaying
// metric and model definitions.
type MetricsRenderModel struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Entries     []MetricsEntry `json:"entries"`
}
