package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// PrintMetricsDefinitions displays the formal definitions of every KPI and
// model term. This is a static display that does not require any data loading.
func PrintMetricsDefinitions(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return printMetricsJSON(model, cfg)
	case schema.CSVOut:
		return printMetricsCSV(model, cfg)
	case schema.ParquetOut:
		return fmt.Errorf("parquet output is only supported by 'forecast' and 'history export'")
	default:
		return writeWithFile(cfg, "Wrote text", func(w io.Writer) error {
			return writeMetricsText(w, model, cfg)
		})
	}
}

// printMetricsJSON displays metrics in JSON format.
func printMetricsJSON(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg, "Wrote JSON", func(w io.Writer) error {
		return writeJSON(w, model)
	})
}

// printMetricsCSV displays metrics in CSV format.
func printMetricsCSV(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg, "Wrote CSV", func(w io.Writer) error {
		header := []string{"name", "purpose", "formula", "inputs", "notes"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeMetricsCSVRows(csvWriter, model)
		})
	})
}

// writeMetricsText displays metrics in human-readable text format.
func writeMetricsText(w io.Writer, model *schema.MetricsRenderModel, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", headerPrefix(cfg, "📐"), model.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", strings.Repeat("=", len(model.Title))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n%s\n\n", model.Description); err != nil {
		return err
	}

	for _, entry := range model.Entries {
		if _, err := fmt.Fprintf(w, "%s: %s\n", strings.ToUpper(entry.Name), entry.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Formula: %s\n", entry.Formula); err != nil {
			return err
		}
		if len(entry.Inputs) > 0 {
			if _, err := fmt.Fprintf(w, "   Inputs: %s\n", strings.Join(entry.Inputs, ", ")); err != nil {
				return err
			}
		}
		if entry.Notes != "" {
			if _, err := fmt.Fprintf(w, "   Notes: %s\n", entry.Notes); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}

// writeMetricsCSVRows writes one CSV row per metric definition.
func writeMetricsCSVRows(w *csv.Writer, model *schema.MetricsRenderModel) error {
	for _, entry := range model.Entries {
		rec := []string{
			entry.Name,
			entry.Purpose,
			entry.Formula,
			strings.Join(entry.Inputs, "|"),
			entry.Notes,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
