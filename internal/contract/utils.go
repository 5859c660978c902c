package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/jmallard/shelfwatch/schema"
)

// Severity labels for the reorder check, from most to least urgent.
const (
	CriticalValue = "Critical"
	HighValue     = "High"
	ModerateValue = "Moderate"
	LowValue      = "Low"
)

// severityColors maps each label to its console color. The top two
// severities are bold so they stand out in long tables.
var severityColors = map[string]*color.Color{
	CriticalValue: color.New(color.FgRed, color.Bold),
	HighValue:     color.New(color.FgMagenta, color.Bold),
	ModerateValue: color.New(color.FgYellow),
	LowValue:      color.New(color.FgCyan),
}

// CriticalColor is exposed for callers that flag non-label text, like the
// low-stock marker in inventory tables.
var CriticalColor = severityColors[CriticalValue]

// GetColorLabel colors a severity label for table output. Labels without a
// registered color print unchanged.
func GetColorLabel(label string) string {
	if c, ok := severityColors[label]; ok {
		return c.Sprint(label)
	}
	return label
}

// MatchesRegion reports whether a location falls inside a region scope.
// The scopes are deliberately loose substring checks over location naming
// conventions: "ca" covers any location mentioning CA plus the flagship
// "Main Warehouse" site; "us" covers locations mentioning US.
func MatchesRegion(location string, scope schema.RegionScope) bool {
	switch scope {
	case schema.CARegion:
		return strings.Contains(location, "CA") || location == "Main Warehouse"
	case schema.USRegion:
		return strings.Contains(location, "US")
	default: // AllRegions
		return true
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// homeFilePath anchors a dotfile in the user's home directory, falling back
// to the working directory when home cannot be resolved.
func homeFilePath(name string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(homeDir, name)
}

// GetCacheDBFilePath returns the default SQLite file backing the result cache.
func GetCacheDBFilePath() string {
	return homeFilePath(".shelfwatch_cache.db")
}

// GetHistoryDBFilePath returns the default SQLite file backing run history.
func GetHistoryDBFilePath() string {
	return homeFilePath(".shelfwatch_history.db")
}

// TruncateText truncates a text cell to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." and at
// least one character of content; narrower widths return the text unchanged.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString reads the yes/no style strings accepted by the emoji and
// color settings: yes/no, true/false and 1/0, case-insensitively.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
}
