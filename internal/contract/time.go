package contract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateOnlyFormat is how calendar days render in tables and CSV output.
const DateOnlyFormat = "2006-01-02"

// salesDateLayouts are the accepted ledger date formats, tried in order.
// Ledgers come out of spreadsheets, so both ISO and US-style dates show up.
var salesDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
}

// ParseSalesDate parses a ledger date cell and normalizes it to UTC midnight.
func ParseSalesDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range salesDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// lookbackUnits maps the word form of each lookback unit to its duration.
// Months and years use calendar approximations, which is close enough for
// windowing sales history.
var lookbackUnits = map[string]time.Duration{
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
	"month":  30 * 24 * time.Hour,
	"year":   365 * 24 * time.Hour,
}

// ParseLookbackDuration turns a trend timeframe like "720h", "90 days" or
// "3 months" into a time.Duration. Bare Go durations are accepted first;
// the word forms take singular or plural units.
func ParseLookbackDuration(s string) (time.Duration, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return 0, errors.New("lookback must be positive")
		}
		return d, nil
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, fmt.Errorf("cannot parse lookback %q", s)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("cannot parse lookback %q", s)
	}
	unit, ok := lookbackUnits[strings.TrimSuffix(fields[1], "s")]
	if !ok {
		return 0, fmt.Errorf("unknown lookback unit %q", fields[1])
	}

	d := time.Duration(n) * unit
	if d == 0 {
		return 0, errors.New("lookback must be positive")
	}
	return d, nil
}
