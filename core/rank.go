package core

import (
	"sort"

	"github.com/jmallard/shelfwatch/schema"
)

// rankForecasts sorts forecast rows by projected demand in descending order
// and returns the top 'limit' rows. Ties break on item then location so the
// display order stays deterministic for any worker count.
func rankForecasts(results []schema.ForecastResult, limit int) []schema.ForecastResult {
	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalUnits != results[j].TotalUnits {
			return results[i].TotalUnits > results[j].TotalUnits
		}
		if results[i].Item != results[j].Item {
			return results[i].Item < results[j].Item
		}
		return results[i].Location < results[j].Location
	})
	if len(results) > limit {
		return results[:limit]
	}
	return results
}

// rankAlerts sorts reorder alerts by shortfall ratio in descending order, so
// the emptiest shelves surface first. Ties break on item then location.
func rankAlerts(alerts []schema.ReorderAlert) []schema.ReorderAlert {
	sort.Slice(alerts, func(i, j int) bool {
		ri, rj := alerts[i].ShortfallRatio(), alerts[j].ShortfallRatio()
		if ri != rj {
			return ri > rj
		}
		if alerts[i].Item != alerts[j].Item {
			return alerts[i].Item < alerts[j].Item
		}
		return alerts[i].Location < alerts[j].Location
	})
	return alerts
}
