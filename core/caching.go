package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// currentCacheVersion marks entries so a schema change invalidates
// everything written before it.
const currentCacheVersion = 1

// Freshness windows for cached results. Forecast tables go stale quickly
// because the ledger underneath them is typically being appended to;
// interest lookups are sampled daily upstream, so a day of reuse is safe.
const (
	forecastCacheTTL = 5 * time.Minute
	trendCacheTTL    = 24 * time.Hour
)

// cachedRunForecast memoizes RunForecast through the cache store. The key
// covers the ledger content and the horizon, so any edit to the input or
// the projection window recomputes. Worker count is deliberately not part
// of the key: the table is identical for any worker count.
func cachedRunForecast(ctx context.Context, cfg *contract.Config, records []schema.SalesRecord, mgr contract.CacheManager) (*schema.ForecastTable, error) {
	cache := mgr.GetCacheStore()
	if cache == nil || cfg.NoCache {
		return RunForecast(ctx, cfg, records)
	}

	key := forecastCacheKey(cfg, records)
	if table := checkForecastCacheHit(cache, key); table != nil {
		return table, nil
	}

	table, err := RunForecast(ctx, cfg, records)
	if err != nil {
		return nil, err
	}
	// Store failures are not fatal; the next run just recomputes.
	if data, err := json.Marshal(table); err == nil {
		_ = cache.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	return table, nil
}

// checkForecastCacheHit returns the memoized table for key, or nil when the
// entry is absent, stale, written under another version, or unreadable.
func checkForecastCacheHit(cache contract.CacheStore, key string) *schema.ForecastTable {
	data, version, ts, err := cache.Get(key)
	if err != nil || version != currentCacheVersion {
		return nil
	}
	if time.Since(time.Unix(ts, 0)) > forecastCacheTTL {
		return nil
	}
	var table schema.ForecastTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil
	}
	return &table
}

// forecastCacheKey creates a unique key from the ledger content and the
// parameters that shape the projected table.
func forecastCacheKey(cfg *contract.Config, records []schema.SalesRecord) string {
	h := sha256.New()
	fmt.Fprintf(h, "forecast:%d:%d\n", currentCacheVersion, cfg.HorizonDays)
	for _, r := range records {
		fmt.Fprintf(h, "%s|%s|%s|%g\n",
			r.Item,
			r.Location,
			r.Date.Format(contract.DateOnlyFormat),
			r.Units,
		)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
