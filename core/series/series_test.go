package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallard/shelfwatch/schema"
)

// day builds a UTC midnight date for fixtures.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// rec builds a single sales observation for fixtures.
func rec(item, location string, date time.Time, units float64) schema.SalesRecord {
	return schema.SalesRecord{Item: item, Location: location, Date: date, Units: units}
}

func TestBuild(t *testing.T) {
	t.Run("sums duplicate days", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Booster Pack", "Main Warehouse", day(2025, time.January, 1), 5),
			rec("Booster Pack", "Main Warehouse", day(2025, time.January, 1), 3),
			rec("Booster Pack", "Main Warehouse", day(2025, time.January, 2), 2),
		}

		s := Build(records, "Booster Pack", "Main Warehouse")

		require.Equal(t, 2, s.Len())
		assert.Equal(t, 8.0, s.Points[0].Units) // 5 + 3
		assert.Equal(t, 2.0, s.Points[1].Units)
	})

	t.Run("zero fills interior gaps", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Dice Set", "Online", day(2025, time.March, 1), 4),
			rec("Dice Set", "Online", day(2025, time.March, 4), 6),
		}

		s := Build(records, "Dice Set", "Online")

		// Span covers March 1-4 inclusive, with zeros filling the 2nd and 3rd
		require.Equal(t, 4, s.Len())
		assert.Equal(t, day(2025, time.March, 1), s.Points[0].Date)
		assert.Equal(t, 4.0, s.Points[0].Units)
		assert.Equal(t, 0.0, s.Points[1].Units)
		assert.Equal(t, 0.0, s.Points[2].Units)
		assert.Equal(t, day(2025, time.March, 4), s.Points[3].Date)
		assert.Equal(t, 6.0, s.Points[3].Units)
	})

	t.Run("orders ascending from shuffled input", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Dice Set", "Online", day(2025, time.June, 3), 1),
			rec("Dice Set", "Online", day(2025, time.June, 1), 1),
			rec("Dice Set", "Online", day(2025, time.June, 2), 1),
		}

		s := Build(records, "Dice Set", "Online")

		require.Equal(t, 3, s.Len())
		for i := 1; i < s.Len(); i++ {
			assert.True(t, s.Points[i].Date.After(s.Points[i-1].Date),
				"point %d should come after point %d", i, i-1)
		}
	})

	t.Run("normalizes timestamps onto the same day", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Playmat", "Online", time.Date(2025, time.May, 10, 9, 30, 0, 0, time.UTC), 2),
			rec("Playmat", "Online", time.Date(2025, time.May, 10, 21, 15, 0, 0, time.UTC), 3),
		}

		s := Build(records, "Playmat", "Online")

		require.Equal(t, 1, s.Len())
		assert.Equal(t, day(2025, time.May, 10), s.Points[0].Date)
		assert.Equal(t, 5.0, s.Points[0].Units) // 2 + 3
	})

	t.Run("filters out other pairs", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Booster Pack", "Main Warehouse", day(2025, time.January, 1), 5),
			rec("Booster Pack", "Online", day(2025, time.January, 1), 7),
			rec("Dice Set", "Main Warehouse", day(2025, time.January, 1), 9),
		}

		s := Build(records, "Booster Pack", "Main Warehouse")

		require.Equal(t, 1, s.Len())
		assert.Equal(t, 5.0, s.Points[0].Units)
	})

	t.Run("single observation yields single point", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Playmat", "Store A - CA", day(2025, time.April, 15), 12),
		}

		s := Build(records, "Playmat", "Store A - CA")

		require.Equal(t, 1, s.Len())
		assert.Equal(t, day(2025, time.April, 15), s.Start())
		assert.Equal(t, day(2025, time.April, 15), s.End())
	})

	t.Run("empty for unknown pair", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Booster Pack", "Main Warehouse", day(2025, time.January, 1), 5),
		}

		s := Build(records, "Booster Pack", "Nowhere")

		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Points)
	})

	t.Run("empty input", func(t *testing.T) {
		s := Build(nil, "Booster Pack", "Main Warehouse")

		assert.Equal(t, 0, s.Len())
	})
}

func TestBuildSpanLength(t *testing.T) {
	// 40 consecutive days of sales produce exactly 40 points
	records := make([]schema.SalesRecord, 0, 40)
	start := day(2025, time.February, 1)
	for i := range 40 {
		records = append(records, rec("Booster Pack", "Main Warehouse", start.AddDate(0, 0, i), 10))
	}

	s := Build(records, "Booster Pack", "Main Warehouse")

	require.Equal(t, 40, s.Len())
	assert.Equal(t, start, s.Start())
	assert.Equal(t, start.AddDate(0, 0, 39), s.End())
	assert.Equal(t, 400.0, s.Total()) // 40 * 10
}

func TestPairs(t *testing.T) {
	t.Run("full cross product", func(t *testing.T) {
		// Only 3 of the 4 combinations have observations
		records := []schema.SalesRecord{
			rec("Booster Pack", "Main Warehouse", day(2025, time.January, 1), 5),
			rec("Booster Pack", "Online", day(2025, time.January, 1), 2),
			rec("Dice Set", "Online", day(2025, time.January, 1), 3),
		}

		pairs := Pairs(records)

		// 2 items x 2 locations = 4 pairs, including the unobserved combination
		require.Len(t, pairs, 4)
		assert.Contains(t, pairs, schema.Pair{Item: "Dice Set", Location: "Main Warehouse"})
	})

	t.Run("lexicographic order", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Dice Set", "Online", day(2025, time.January, 1), 1),
			rec("Booster Pack", "Main Warehouse", day(2025, time.January, 2), 1),
		}

		pairs := Pairs(records)

		expected := []schema.Pair{
			{Item: "Booster Pack", Location: "Main Warehouse"},
			{Item: "Booster Pack", Location: "Online"},
			{Item: "Dice Set", Location: "Main Warehouse"},
			{Item: "Dice Set", Location: "Online"},
		}
		assert.Equal(t, expected, pairs)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		records := []schema.SalesRecord{
			rec("Playmat", "Online", day(2025, time.January, 1), 1),
			rec("Booster Pack", "Store A - CA", day(2025, time.January, 1), 1),
			rec("Dice Set", "Main Warehouse", day(2025, time.January, 1), 1),
		}

		first := Pairs(records)
		for range 5 {
			assert.Equal(t, first, Pairs(records))
		}
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Pairs(nil))
	})
}
