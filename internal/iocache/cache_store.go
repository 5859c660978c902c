package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"    // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/jmallard/shelfwatch/internal/contract"
	"github.com/jmallard/shelfwatch/schema"
)

// cacheDialect collects the points where the supported engines disagree: the
// driver to load, the DDL grammar, and how upserts and parameters are
// written. Each statement takes the quoted table name as its only format
// argument.
type cacheDialect struct {
	driver string
	hint   string // appended to connection errors
	create string
	upsert string
	get    string
}

var cacheDialects = map[schema.DatabaseBackend]cacheDialect{
	schema.SQLiteBackend: {
		driver: "sqlite",
		hint:   "ensure the directory is writable",
		create: `CREATE TABLE IF NOT EXISTS %s (
			cache_key TEXT PRIMARY KEY,
			cache_value BLOB NOT NULL,
			cache_version INTEGER NOT NULL,
			cache_timestamp INTEGER NOT NULL
		)`,
		upsert: `INSERT OR REPLACE INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES (?, ?, ?, ?)`,
		get:    `SELECT cache_value, cache_version, cache_timestamp FROM %s WHERE cache_key = ?`,
	},
	schema.MySQLBackend: {
		driver: "mysql",
		hint:   "check connection format: user:password@tcp(host:port)/dbname",
		create: `CREATE TABLE IF NOT EXISTS %s (
			cache_key VARCHAR(255) PRIMARY KEY,
			cache_value BLOB NOT NULL,
			cache_version INT NOT NULL,
			cache_timestamp BIGINT NOT NULL
		)`,
		upsert: `INSERT INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, cache_version = new.cache_version, cache_timestamp = new.cache_timestamp`,
		get: `SELECT cache_value, cache_version, cache_timestamp FROM %s WHERE cache_key = ?`,
	},
	schema.PostgreSQLBackend: {
		driver: "pgx",
		hint:   "check connection format: host=localhost port=5432 user=postgres dbname=mydb",
		create: `CREATE TABLE IF NOT EXISTS %s (
			cache_key TEXT PRIMARY KEY,
			cache_value BYTEA NOT NULL,
			cache_version INTEGER NOT NULL,
			cache_timestamp BIGINT NOT NULL
		)`,
		upsert: `INSERT INTO %s (cache_key, cache_value, cache_version, cache_timestamp) VALUES ($1, $2, $3, $4)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, cache_version = EXCLUDED.cache_version, cache_timestamp = EXCLUDED.cache_timestamp`,
		get: `SELECT cache_value, cache_version, cache_timestamp FROM %s WHERE cache_key = $1`,
	},
}

// CacheStoreImpl stores cache entries on any of the supported database
// backends. A nil db (NoneBackend) turns every operation into a no-op.
type CacheStoreImpl struct {
	db        *sql.DB
	tableName string
	backend   schema.DatabaseBackend
	connStr   string
	dialect   cacheDialect
}

var _ contract.CacheStore = &CacheStoreImpl{} // Compile-time check

// table returns the backend-quoted table name.
func (ps *CacheStoreImpl) table() string {
	return quoteTableName(ps.tableName, ps.backend)
}

// NewCacheStore opens, and creates if needed, the cache table on the
// requested backend.
func NewCacheStore(tableName string, backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	if backend == schema.NoneBackend {
		// No-op store for disabled caching
		return &CacheStoreImpl{tableName: tableName, backend: backend, connStr: connStr}, nil
	}

	d, ok := cacheDialects[backend]
	if !ok {
		return nil, fmt.Errorf("unsupported cache backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	dsn := connStr
	if backend == schema.SQLiteBackend && dsn == "" {
		dsn = GetCacheDBFilePath()
	}

	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s cache (%s): %w", backend, d.hint, err)
	}
	if backend == schema.SQLiteBackend {
		// A single open connection avoids "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database (%s): %w", backend, d.hint, err)
	}

	store := &CacheStoreImpl{db: db, tableName: tableName, backend: backend, connStr: connStr, dialect: d}
	if _, err := db.Exec(fmt.Sprintf(d.create, store.table())); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return store, nil
}

// Get retrieves a value by key from the store.
func (ps *CacheStoreImpl) Get(key string) ([]byte, int, int64, error) {
	if ps.db == nil {
		return nil, 0, 0, sql.ErrNoRows
	}

	var (
		value   []byte
		version int
		ts      int64
	)
	row := ps.db.QueryRow(fmt.Sprintf(ps.dialect.get, ps.table()), key)
	if err := row.Scan(&value, &version, &ts); err != nil {
		return nil, 0, 0, err
	}
	return value, version, ts, nil
}

// Set inserts or replaces a key/value pair in the store.
func (ps *CacheStoreImpl) Set(key string, value []byte, version int, timestamp int64) error {
	if ps.db == nil {
		return nil
	}
	_, err := ps.db.Exec(fmt.Sprintf(ps.dialect.upsert, ps.table()), key, value, version, timestamp)
	return err
}

// Close closes the underlying DB connection.
func (ps *CacheStoreImpl) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

// GetStatus reports the entry count, the entry time range, and the
// approximate storage footprint of the cache table.
func (ps *CacheStoreImpl) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(ps.backend),
		Connected: ps.db != nil,
	}
	if ps.db == nil {
		return status, nil
	}

	// One round trip covers the count and both ends of the time range.
	var lastTs, oldestTs int64
	aggQuery := fmt.Sprintf("SELECT COUNT(*), COALESCE(MAX(cache_timestamp), 0), COALESCE(MIN(cache_timestamp), 0) FROM %s", ps.table())
	if err := ps.db.QueryRow(aggQuery).Scan(&status.TotalEntries, &lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to read cache table stats: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}
	status.LastEntryTime = time.Unix(lastTs, 0)
	status.OldestEntryTime = time.Unix(oldestTs, 0)
	status.TableSizeBytes = ps.tableSizeBytes(status.TotalEntries)
	return status, nil
}

// tableSizeBytes estimates the cache table's storage footprint. SQLite
// answers exactly through pragmas and the server backends through their
// catalogs; when a catalog query fails, a rough per-row estimate stands in.
func (ps *CacheStoreImpl) tableSizeBytes(entries int) int64 {
	estimate := int64(entries) * 1000

	switch ps.backend {
	case schema.SQLiteBackend:
		var size int64
		row := ps.db.QueryRow("SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()")
		if err := row.Scan(&size); err != nil {
			return 0
		}
		return size

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ps.connStr)
		if err != nil || cfg.DBName == "" {
			return estimate
		}
		var size int64
		row := ps.db.QueryRow("SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?", cfg.DBName, ps.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
		return size

	case schema.PostgreSQLBackend:
		var size int64
		row := ps.db.QueryRow("SELECT pg_total_relation_size($1)", ps.tableName)
		if err := row.Scan(&size); err != nil {
			return estimate
		}
		return size

	default:
		return estimate
	}
}
