// Package contract holds the interfaces and shared plumbing that the data
// sources, stores and command layer agree on.
package contract

import (
	"context"
	"time"

	"github.com/jmallard/shelfwatch/schema"
)

// InventorySource loads the inventory snapshot from wherever it lives.
// Implementations exist for CSV files, SQLite databases and the inert
// NetSuite placeholder, so the core logic never touches file formats.
type InventorySource interface {
	// LoadInventory returns every stocked record in the snapshot.
	LoadInventory(ctx context.Context) ([]schema.InventoryRecord, error)

	// Describe returns a short human-readable origin, e.g. "csv:data/inventory.csv".
	Describe() string
}

// SalesSource loads the raw sales ledger that demand forecasting runs on.
type SalesSource interface {
	// LoadSales returns every observation in the ledger. Rows that fail to
	// parse reject the whole load; downstream code assumes clean input.
	LoadSales(ctx context.Context) ([]schema.SalesRecord, error)

	// Describe returns a short human-readable origin.
	Describe() string
}

// TrendClient fetches relative search interest for a keyword over a window.
// This allows the lookup logic to be tested without hitting a live endpoint.
type TrendClient interface {
	FetchInterest(ctx context.Context, keyword, timeframe, geo string) (schema.TrendSeries, error)
}

// CacheManager hands out the two persistence stores. Commands receive one
// of these instead of globals so tests can substitute mocks.
type CacheManager interface {
	GetCacheStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore is a versioned byte cache. Values carry the schema version
// they were written under and a unix timestamp used for TTL checks.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking forecast runs and their rows.
type HistoryStore interface {
	// BeginRun creates a new forecast run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the forecast run with completion data
	EndRun(runID int64, endTime time.Time, totalForecasts int) error

	// RecordForecast stores one projected pair for the run
	RecordForecast(runID int64, result schema.ForecastResult) error

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllForecasts returns every recorded forecast row, oldest run first
	GetAllForecasts() ([]schema.ForecastRowRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
