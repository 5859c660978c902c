package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsTestModel() *schema.MetricsRenderModel {
	return &schema.MetricsRenderModel{
		Title:       "Shelfwatch Metric Definitions",
		Description: "Formal definitions for every KPI and model term.",
		Entries: []schema.MetricsEntry{
			{
				Name:    "margin_pct",
				Purpose: "Gross margin as a percentage of the sale price",
				Formula: "(price - cost_price) / price * 100",
				Inputs:  []string{"price", "cost_price"},
			},
			{
				Name:    "velocity_7d",
				Purpose: "Average units sold per day over the trailing week",
				Formula: "sum(units, last 7 days) / 7",
				Inputs:  []string{"daily series"},
				Notes:   "Zero-filled days count toward the window.",
			},
		},
	}
}

func TestWriteMetricsText(t *testing.T) {
	cfg := &contract.Config{
		Output:    schema.TextOut,
		UseEmojis: false,
	}

	var buf bytes.Buffer
	err := writeMetricsText(&buf, metricsTestModel(), cfg)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Shelfwatch Metric Definitions")
	assert.Contains(t, output, strings.Repeat("=", len("Shelfwatch Metric Definitions")))
	assert.Contains(t, output, "MARGIN_PCT: Gross margin as a percentage of the sale price")
	assert.Contains(t, output, "Formula: (price - cost_price) / price * 100")
	assert.Contains(t, output, "Inputs: price, cost_price")
	assert.Contains(t, output, "VELOCITY_7D: Average units sold per day over the trailing week")
	assert.Contains(t, output, "Notes: Zero-filled days count toward the window.")
}

func TestWriteMetricsTextWithEmojis(t *testing.T) {
	cfg := &contract.Config{
		Output:    schema.TextOut,
		UseEmojis: true,
	}

	var buf bytes.Buffer
	err := writeMetricsText(&buf, metricsTestModel(), cfg)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "📐 Shelfwatch Metric Definitions")
}

func TestWriteMetricsTextOmitsEmptyNotes(t *testing.T) {
	cfg := &contract.Config{Output: schema.TextOut}

	var buf bytes.Buffer
	err := writeMetricsText(&buf, metricsTestModel(), cfg)
	require.NoError(t, err)

	// Only the velocity entry carries notes, so exactly one Notes line
	assert.Equal(t, 1, strings.Count(buf.String(), "Notes:"))
}

func TestWriteMetricsCSVRows(t *testing.T) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeMetricsCSVRows(w, metricsTestModel())
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2) // one row per entry, no header at this layer

	assert.Contains(t, lines[0], "margin_pct")
	assert.Contains(t, lines[0], "price|cost_price")
	assert.Contains(t, lines[1], "velocity_7d")
	assert.Contains(t, lines[1], "Zero-filled days count toward the window.")
}

func TestPrintMetricsDefinitionsJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "metrics.json")
	cfg := &contract.Config{
		Output:     schema.JSONOut,
		OutputFile: tmpFile,
	}

	err := PrintMetricsDefinitions(metricsTestModel(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	var result map[string]any
	err = json.Unmarshal(content, &result)
	require.NoError(t, err)

	assert.Equal(t, "Shelfwatch Metric Definitions", result["title"])
	entries, ok := result["entries"].([]any)
	require.True(t, ok, "entries should be a JSON array")
	assert.Len(t, entries, 2)
}

func TestPrintMetricsDefinitionsCSV(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "metrics.csv")
	cfg := &contract.Config{
		Output:     schema.CSVOut,
		OutputFile: tmpFile,
	}

	err := PrintMetricsDefinitions(metricsTestModel(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3) // header + 2 entries
	assert.Equal(t, "name,purpose,formula,inputs,notes", lines[0])
	assert.Contains(t, lines[1], "margin_pct")
}

func TestPrintMetricsDefinitionsText(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "metrics.txt")
	cfg := &contract.Config{
		Output:     schema.TextOut,
		OutputFile: tmpFile,
	}

	err := PrintMetricsDefinitions(metricsTestModel(), cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Shelfwatch Metric Definitions")
}
