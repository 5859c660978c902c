package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/internal/outwriter"
	"github.com/jmallard/shelfwatch/internal/trendapi"
	"github.com/jmallard/shelfwatch/schema"
)

// ExecuteTrends looks up search interest for a keyword and prints the
// sampled series. It serves as the main entry point for the 'trends'
// command; the keyword arrives as a positional argument.
func ExecuteTrends(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, keyword string) error {
	result, duration, err := GetTrendSeries(ctx, cfg, mgr, keyword)
	if err != nil {
		return err
	}
	return outwriter.PrintTrendSeries(result, cfg, duration)
}

// GetTrendSeries looks up (possibly memoized) search interest for a keyword
// without printing the series.
func GetTrendSeries(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, keyword string) (schema.TrendSeries, time.Duration, error) {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogTrendsHeader(cfg, keyword)
	}

	client := trendapi.NewClient(cfg.TrendsBaseURL)
	result, err := CachedTrendInterest(ctx, cfg, client, mgr, keyword)
	if err != nil {
		return schema.TrendSeries{}, 0, err
	}

	return result, time.Since(start), nil
}

// CachedTrendInterest memoizes interest lookups through the cache store.
// Interest data is sampled daily upstream, so entries stay valid for a full
// day before the endpoint is asked again.
func CachedTrendInterest(ctx context.Context, cfg *contract.Config, client contract.TrendClient, mgr contract.CacheManager, keyword string) (schema.TrendSeries, error) {
	cache := mgr.GetCacheStore()
	if cache == nil || cfg.NoCache {
		// Fallback to a direct lookup
		return client.FetchInterest(ctx, keyword, cfg.TrendsTimeframe, cfg.TrendsGeo)
	}

	key := trendCacheKey(cfg, keyword)

	// Check for cache hit
	if result := checkTrendCacheHit(cache, key); result != nil {
		return *result, nil
	}

	// Cache miss: fetch and store
	result, err := client.FetchInterest(ctx, keyword, cfg.TrendsTimeframe, cfg.TrendsGeo)
	if err != nil {
		return schema.TrendSeries{}, err
	}
	if data, err := json.Marshal(result); err == nil {
		_ = cache.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
	return result, nil
}

// checkTrendCacheHit attempts to retrieve and validate a cached series
func checkTrendCacheHit(cache contract.CacheStore, key string) *schema.TrendSeries {
	data, version, ts, err := cache.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= trendCacheTTL {
			var result schema.TrendSeries
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// trendCacheKey creates a unique key based on lookup parameters
func trendCacheKey(cfg *contract.Config, keyword string) string {
	key := fmt.Sprintf("trends:%d:%s:%s:%s",
		currentCacheVersion,
		strings.ToLower(keyword),
		cfg.TrendsTimeframe,
		cfg.TrendsGeo,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
