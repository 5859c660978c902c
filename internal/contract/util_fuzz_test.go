package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzParseSalesDate fuzzes the ledger date parser with arbitrary cell values.
func FuzzParseSalesDate(f *testing.F) {
	seeds := []string{
		"2025-03-14",
		"2025/03/14",
		"03/14/2025",
		"3/4/2025",
		"2025-03-14T15:26:35Z",
		"  2025-03-14  ",
		"",
		"not-a-date",
		"9999-99-99",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, value string) {
		parsed, err := ParseSalesDate(value)
		if err != nil {
			return
		}
		// Anything that parses must be normalized to UTC midnight
		if parsed.Location() != nil && parsed.Location().String() != "UTC" {
			t.Errorf("ParseSalesDate(%q) location = %v, want UTC", value, parsed.Location())
		}
		h, m, s := parsed.Clock()
		if h != 0 || m != 0 || s != 0 {
			t.Errorf("ParseSalesDate(%q) = %v, want midnight", value, parsed)
		}
	})
}

// FuzzTruncateText fuzzes truncation with random text and widths.
func FuzzTruncateText(f *testing.F) {
	seeds := []struct {
		text  string
		width int
	}{
		{"Booster Pack", 20},
		{"Collector Booster Display Case", 12},
		{"abc", 3},
		{"", 10},
		{"xyz", 0},
	}
	for _, seed := range seeds {
		f.Add(seed.text, seed.width)
	}

	f.Fuzz(func(t *testing.T, text string, width int) {
		got := TruncateText(text, width)
		gotLen := utf8.RuneCountInString(got)
		textLen := utf8.RuneCountInString(text)
		// Output never grows, and a truncated result honors the width
		if gotLen > textLen {
			t.Errorf("TruncateText(%q, %d) = %q grew", text, width, got)
		}
		if gotLen < textLen && gotLen != width {
			t.Errorf("TruncateText(%q, %d) = %q, want exactly %d runes when truncated", text, width, got, width)
		}
	})
}
