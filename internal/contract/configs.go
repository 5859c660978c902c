package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jmallard/shelfwatch/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 100
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	MaxPrecision       = 3

	// DefaultInventoryCSV and friends are the filenames probed inside the
	// data directory when no explicit path is given.
	DefaultInventoryCSV = "inventory.csv"
	DefaultInventoryDB  = "inventory.db"
	DefaultSalesCSV     = "sales.csv"

	// DefaultTrendsTimeframe is the lookback window for interest lookups.
	DefaultTrendsTimeframe = "90 days"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a shelfwatch run.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir       string // Absolute path of the data directory
	InventoryFile string // Resolved inventory CSV path ("" = use InventoryDB)
	InventoryDB   string // Resolved SQLite fallback path
	SalesFile     string // Resolved sales ledger CSV path
	SKUFile       string // Optional newline-separated item filter file

	Region     schema.RegionScope
	Categories []string
	Suppliers  []string
	Locations  []string

	HorizonDays int
	Workers     int
	ResultLimit int
	Detail      bool
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	NoCache     bool

	SeriesItem     string // Pair selection for the series command
	SeriesLocation string

	TrendsGeo       string
	TrendsTimeframe string // Normalized timeframe string, also part of cache keys
	TrendsLookback  time.Duration
	TrendsBaseURL   string

	// NetSuite credentials are accepted but the integration stays inert.
	NetSuiteAccount string
	NetSuiteToken   string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	InventoryFile    string `mapstructure:"inventory-file"`
	InventoryDB      string `mapstructure:"inventory-db"`
	SalesFile        string `mapstructure:"sales-file"`
	SKUFile          string `mapstructure:"sku-file"`
	Region           string `mapstructure:"region"`
	Categories       string `mapstructure:"categories"`
	Suppliers        string `mapstructure:"suppliers"`
	Locations        string `mapstructure:"locations"`
	Horizon          int    `mapstructure:"horizon"`
	Workers          int    `mapstructure:"workers"`
	Limit            int    `mapstructure:"limit"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Detail           bool   `mapstructure:"detail"`
	Width            int    `mapstructure:"width"`
	NoCache          bool   `mapstructure:"no-cache"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from seriesCmd.Flags() ---
	Item     string `mapstructure:"item"`
	Location string `mapstructure:"location"`

	// --- Fields from trendsCmd.Flags() ---
	TrendsGeo       string `mapstructure:"trends-geo"`
	TrendsTimeframe string `mapstructure:"trends-timeframe"`
	TrendsBaseURL   string `mapstructure:"trends-base-url"`

	// --- NetSuite placeholder wiring from config file / env only ---
	NetSuiteAccount string `mapstructure:"netsuite-account"`
	NetSuiteToken   string `mapstructure:"netsuite-token"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Categories != nil {
		clone.Categories = make([]string, len(c.Categories))
		copy(clone.Categories, c.Categories)
	}
	if c.Suppliers != nil {
		clone.Suppliers = make([]string, len(c.Suppliers))
		copy(clone.Suppliers, c.Suppliers)
	}
	if c.Locations != nil {
		clone.Locations = make([]string, len(c.Locations))
		copy(clone.Locations, c.Locations)
	}
	return &clone
}

// CloneWithHorizon creates a copy of the Config with a different projection window.
func (c *Config) CloneWithHorizon(horizonDays int) *Config {
	clone := c.Clone()
	clone.HorizonDays = horizonDays
	return clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processHorizon(cfg, input); err != nil {
		return err
	}
	if err := processFilters(cfg, input); err != nil {
		return err
	}
	if err := processSeriesSelection(cfg, input); err != nil {
		return err
	}
	if err := processTrendsOptions(cfg, input); err != nil {
		return err
	}
	if err := resolveDataSources(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidCacheBackends[cfg.HistoryBackend]; !ok {
			return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Validate that cache and history use different databases
		if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			historyDBPath := cfg.HistoryDBConnect
			if historyDBPath == "" {
				historyDBPath = GetHistoryDBFilePath()
			}
			if cacheDBPath == historyDBPath {
				return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.NoCache = input.NoCache
	cfg.NetSuiteAccount = strings.TrimSpace(input.NetSuiteAccount)
	cfg.NetSuiteToken = strings.TrimSpace(input.NetSuiteToken)

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Region Validation ---
	cfg.Region = schema.RegionScope(strings.ToLower(strings.TrimSpace(input.Region)))
	if _, ok := schema.ValidRegionScopes[cfg.Region]; !ok {
		return fmt.Errorf("invalid region '%s'. must be all, ca, us", input.Region)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required when using parquet output")
	}

	// --- 5. Backend Validation ---
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}

	return nil
}

// processHorizon validates the projection window. Presets 30/60/90 are the
// documented choices, but any positive horizon is allowed.
func processHorizon(cfg *Config, input *ConfigRawInput) error {
	if input.Horizon <= 0 {
		return fmt.Errorf("horizon must be a positive number of days (received %d)", input.Horizon)
	}
	cfg.HorizonDays = input.Horizon
	return nil
}

// processFilters turns the comma-separated filter flags into cleaned lists.
func processFilters(cfg *Config, input *ConfigRawInput) error {
	cfg.Categories = splitCSVFlag(input.Categories)
	cfg.Suppliers = splitCSVFlag(input.Suppliers)
	cfg.Locations = splitCSVFlag(input.Locations)
	return nil
}

// processSeriesSelection carries the pair selection for the series command.
// Emptiness is allowed here; the command itself enforces that both are set.
func processSeriesSelection(cfg *Config, input *ConfigRawInput) error {
	cfg.SeriesItem = schema.CleanField(input.Item)
	cfg.SeriesLocation = schema.CleanField(input.Location)
	return nil
}

// processTrendsOptions validates the interest-lookup options.
func processTrendsOptions(cfg *Config, input *ConfigRawInput) error {
	timeframe := strings.TrimSpace(input.TrendsTimeframe)
	if timeframe == "" {
		timeframe = DefaultTrendsTimeframe
	}
	lookback, err := ParseLookbackDuration(timeframe)
	if err != nil {
		return fmt.Errorf("invalid trends timeframe: %w", err)
	}
	cfg.TrendsTimeframe = strings.ToLower(timeframe)
	cfg.TrendsLookback = lookback
	cfg.TrendsGeo = strings.ToUpper(strings.TrimSpace(input.TrendsGeo))
	cfg.TrendsBaseURL = strings.TrimRight(strings.TrimSpace(input.TrendsBaseURL), "/")
	return nil
}

// resolveDataSources resolves the data directory and the file paths inside it.
// The directory must exist; individual files are resolved lazily so commands
// that never read them (trends, cache, version) still run.
func resolveDataSources(cfg *Config, input *ConfigRawInput) error {
	dataDir := input.DataDirStr
	if dataDir == "" {
		dataDir = "."
	}
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return err
	}
	absDataDir = filepath.Clean(absDataDir)

	info, err := os.Stat(absDataDir)
	if err != nil {
		return fmt.Errorf("data directory %q not found: %w", dataDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %q is not a directory", dataDir)
	}
	cfg.DataDir = absDataDir

	cfg.InventoryFile = resolveDataPath(absDataDir, input.InventoryFile)
	cfg.SalesFile = resolveDataPath(absDataDir, input.SalesFile)
	cfg.SKUFile = resolveDataPath(absDataDir, input.SKUFile)

	inventoryDB := input.InventoryDB
	if inventoryDB == "" {
		inventoryDB = DefaultInventoryDB
	}
	cfg.InventoryDB = resolveDataPath(absDataDir, inventoryDB)

	// Default CSV paths are probed, not required: the SQLite fallback covers
	// a missing inventory CSV.
	if cfg.InventoryFile == "" {
		candidate := filepath.Join(absDataDir, DefaultInventoryCSV)
		if _, err := os.Stat(candidate); err == nil {
			cfg.InventoryFile = candidate
		}
	}
	if cfg.SalesFile == "" {
		cfg.SalesFile = filepath.Join(absDataDir, DefaultSalesCSV)
	}

	return nil
}

// resolveDataPath anchors a possibly-relative path inside the data directory.
// Empty input stays empty so callers can distinguish "not configured".
func resolveDataPath(dataDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dataDir, p)
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// splitCSVFlag splits a comma-separated flag value into trimmed parts.
func splitCSVFlag(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var parts []string
	for p := range strings.SplitSeq(s, ",") {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
