package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// resultCacheTable is the name of the table for TTL result caching. Forecast
// tables and trend series share it, distinguished by key prefix.
const resultCacheTable = "result_cache"

// Manager is the process-wide store handle. The once guards make
// InitStores and CloseStores safe to call from any number of places.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetCacheDBFilePath returns the default SQLite file for the result cache.
func GetCacheDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// GetHistoryDBFilePath returns the default SQLite file for run history.
func GetHistoryDBFilePath() string {
	return contract.GetHistoryDBFilePath()
}

// InitStores initializes the global cache manager with separate result-cache
// and run-history stores.
// cacheBackend and cacheConnStr can be empty to disable result caching.
// historyBackend and historyConnStr can be empty to disable run tracking.
func InitStores(cacheBackend schema.DatabaseBackend, cacheConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		var cacheStore contract.CacheStore
		if cacheBackend != "" {
			store, err := NewCacheStore(resultCacheTable, cacheBackend, cacheConnStr)
			if err != nil {
				initErr = fmt.Errorf("failed to initialize result caching: %w", err)
				return
			}
			cacheStore = store
		}

		var historyStore contract.HistoryStore
		if historyBackend != "" {
			store, err := NewHistoryStore(historyBackend, historyConnStr)
			if err != nil {
				// Don't leak the cache connection on partial init.
				if cacheStore != nil {
					_ = cacheStore.Close()
				}
				initErr = fmt.Errorf("failed to initialize run history: %w", err)
				return
			}
			historyStore = store
		}

		Manager.cache = cacheStore
		Manager.history = historyStore
	})

	// Repeat calls skip the Do body and report success.
	return initErr
}

// CloseStores releases both store connections. Deferred from main so the
// SQLite files are flushed before the process exits.
func CloseStores() {
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.cache != nil {
			_ = Manager.cache.Close()
		}
		if Manager.history != nil {
			_ = Manager.history.Close()
		}
	})
}

// ClearCache wipes the result cache for the specified backend.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearBackend(backend, dbFilePath, connStr, resultCacheTable)
}

// ClearHistory wipes the run-history tables for the specified backend. The
// row table goes first, matching the order of the down migrations.
func ClearHistory(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	return clearBackend(backend, dbFilePath, connStr, forecastRowsTable, forecastRunsTable)
}

// clearBackend removes stored data. SQLite holds each store in its own file,
// so the file is deleted outright; the server backends drop the named tables
// instead. NoneBackend has nothing to clear.
func clearBackend(backend schema.DatabaseBackend, dbFilePath, connStr string, tables ...string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
		}
		// A missing file means there is nothing to clear.
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		for _, table := range tables {
			if err := dropSQLTable(backend, connStr, table); err != nil {
				return err
			}
		}
		return nil

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported backend for clearing: %s", backend)
	}
}

// dropSQLTable drops one table from a server backend, quoting the name in
// the backend's identifier style.
func dropSQLTable(backend schema.DatabaseBackend, connStr, tableName string) error {
	driverName := cacheDialects[backend].driver
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping %s database: %w", driverName, err)
	}

	drop := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(tableName, backend))
	if _, err := db.Exec(drop); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", tableName, err)
	}
	return nil
}
