package schema

import (
	"strconv"
	"strings"
)

// CleanField normalizes a free-text ledger field: surrounding whitespace is
// trimmed, a UTF-8 BOM is dropped, and inner whitespace runs collapse to a
// single space. Pair matching relies on exact equality, so "Booster Pack " and
// "Booster Pack" must normalize to the same key.
func CleanField(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeHeader lowers and cleans a CSV header cell so that required-column
// checks are case and whitespace insensitive.
func NormalizeHeader(s string) string {
	return strings.ToLower(CleanField(s))
}

// FormatUnits renders a unit count with up to prec decimal places, dropping
// trailing zeros so whole-unit days print as plain integers.
func FormatUnits(units float64, prec int) string {
	if prec < 0 {
		prec = 0
	}
	s := strconv.FormatFloat(units, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
