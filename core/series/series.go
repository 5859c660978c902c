// Package series has aggregation logic for daily demand data.
package series

import (
	"sort"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// Build assembles the contiguous daily demand series for one (item, location)
// pair. Observations that land on the same calendar day are summed, and days
// without sales inside the observed span are filled with zero so the calendar
// has no gaps. A pair with no observations yields an empty series.
func Build(records []schema.SalesRecord, item, location string) schema.DemandSeries {
	// 1. Sum units per day for the selected pair
	totals := sumUnitsPerDay(records, item, location)

	out := schema.DemandSeries{Item: item, Location: location}
	if len(totals) == 0 {
		return out
	}

	// 2. Find the observed span
	start, end := observedSpan(totals)

	// 3. Walk the calendar from first to last sale, zero-filling the gaps
	spanDays := int(end.Sub(start).Hours()/24) + 1
	points := make([]schema.DemandPoint, 0, spanDays)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		points = append(points, schema.DemandPoint{Date: d, Units: totals[d]})
	}
	out.Points = points

	return out
}

// sumUnitsPerDay aggregates the observations for one pair into per-day totals.
// Dates are normalized to UTC midnight so two timestamps on the same day
// always land in the same bucket.
func sumUnitsPerDay(records []schema.SalesRecord, item, location string) map[time.Time]float64 {
	totals := make(map[time.Time]float64)
	for _, r := range records {
		if r.Item != item || r.Location != location {
			continue
		}
		totals[contract.DayOf(r.Date)] += r.Units
	}
	return totals
}

// observedSpan returns the earliest and latest day present in the totals map.
func observedSpan(totals map[time.Time]float64) (time.Time, time.Time) {
	var start, end time.Time
	for d := range totals {
		if start.IsZero() || d.Before(start) {
			start = d
		}
		if end.IsZero() || d.After(end) {
			end = d
		}
	}
	return start, end
}

// Pairs enumerates every distinct item crossed with every distinct location
// seen in the ledger, in lexicographic (item, location) order. The full cross
// product is deliberate: a combination with no observations simply yields an
// empty series downstream and drops out of the results there.
func Pairs(records []schema.SalesRecord) []schema.Pair {
	// 1. Collect the distinct values
	itemSet := make(map[string]struct{})
	locationSet := make(map[string]struct{})
	for _, r := range records {
		itemSet[r.Item] = struct{}{}
		locationSet[r.Location] = struct{}{}
	}

	items := sortedKeys(itemSet)
	locations := sortedKeys(locationSet)

	// 2. Cross product in deterministic order
	pairs := make([]schema.Pair, 0, len(items)*len(locations))
	for _, item := range items {
		for _, location := range locations {
			pairs = append(pairs, schema.Pair{Item: item, Location: location})
		}
	}

	return pairs
}

// sortedKeys flattens a string set into a sorted slice.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
