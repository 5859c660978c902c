package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jmallard/shelfwatch/internal/contract"
)

// writeWithFile routes a renderer to the configured output file, or stdout
// when none is set. File writes get a confirmation line on stderr so a
// redirected stdout stays clean, and the prefix follows the emoji setting
// like every other status line.
func writeWithFile(cfg *contract.Config, successMsg string, render func(io.Writer) error) error {
	out, err := contract.SelectOutputFile(cfg.OutputFile)
	if err != nil {
		return err
	}
	if out == os.Stdout {
		return render(out)
	}
	defer func() { _ = out.Close() }()

	if err := render(out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s%s to %s\n", headerPrefix(cfg, "💾"), successMsg, cfg.OutputFile)
	return nil
}

// writeJSON encodes data as indented JSON.
func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader writes a header row, hands the writer to writeRows, then
// flushes. The flush error is returned rather than dropped so a full disk
// does not pass for a clean export.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writeRows(cw); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// floatFormatter returns a closure rendering floats at the configured
// precision. Integer columns always print with plain %d, so only the float
// side varies.
func floatFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}
