package schema

// Typed strings keep flag and config values from mixing with each other.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// RegionScope represents a coarse geographic filter over locations.
	RegionScope string

	// TrendDirection represents where a fitted demand trend is heading.
	TrendDirection string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// Output modes accepted by the --output flag.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All region scopes supported.
const (
	AllRegions RegionScope = "all" // default
	CARegion   RegionScope = "ca"
	USRegion   RegionScope = "us"
)

// All trend directions supported.
const (
	RisingTrend  TrendDirection = "rising"
	FlatTrend    TrendDirection = "flat"
	FallingTrend TrendDirection = "falling"
)

// Database backends recognized by the cache and history stores.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Forecasting policy constants.
const (
	// MinHistoryDays is the minimum number of daily entries a demand series
	// needs before a trend model is fitted. A series with exactly this many
	// entries qualifies.
	MinHistoryDays = 30

	// DefaultHorizonDays is the projection window used when none is given.
	DefaultHorizonDays = 30

	// DirectionSlopeBand is the dead band, in units per day, inside which a
	// fitted slope counts as flat rather than rising or falling.
	DirectionSlopeBand = 0.05
)

// HorizonPresets are the projection windows offered in command help. Any
// positive horizon is accepted; these are just the common choices.
var HorizonPresets = []int{30, 60, 90}

// ValidOutputModes is the membership set used by config validation.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidRegionScopes is the membership set for the --region flag.
var ValidRegionScopes = map[RegionScope]struct{}{
	AllRegions: {},
	CARegion:   {},
	USRegion:   {},
}

// ValidCacheBackends is the membership set for the backend settings.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DirectionForSlope classifies a fitted daily slope into a trend direction.
func DirectionForSlope(slope float64) TrendDirection {
	switch {
	case slope > DirectionSlopeBand:
		return RisingTrend
	case slope < -DirectionSlopeBand:
		return FallingTrend
	default:
		return FlatTrend
	}
}
