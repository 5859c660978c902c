package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/jmallard/shelfwatch/internal/contract"
)

// Item and location cells shrink to fit the terminal, within these bounds.
const (
	minNameCellWidth = 12
	maxNameCellWidth = 40
)

// terminalWidth returns the width budget for table output: an explicit
// override wins, then the detected terminal size, then an 80-column default
// for pipes and CI.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// getMaxTableItemWidth splits the width left over after the numeric columns
// evenly between the item and location cells.
func getMaxTableItemWidth(cfg *contract.Config) int {
	// Rank + History + Horizon + Total + Avg/Day + Velocity + Trend, plus
	// borders and padding.
	reserved := 60
	if cfg.Detail {
		reserved += 25 // Velocity(28d) + Level + Slope
	}

	cell := (terminalWidth(cfg) - reserved) / 2
	return min(max(cell, minNameCellWidth), maxNameCellWidth)
}
