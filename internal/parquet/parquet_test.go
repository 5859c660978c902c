package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmallard/shelfwatch/schema"
)

// readBack reads every row of a Parquet file written during the test.
func readBack[T any](t *testing.T, path string) []T {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err, "open parquet output")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		t.Fatalf("read parquet rows: %v", err)
	}
	return rows[:n]
}

// assertColumns checks that the inferred schema carries every listed column.
func assertColumns(t *testing.T, s *parquet.Schema, columns []string) {
	t.Helper()
	for _, name := range columns {
		_, ok := s.Lookup(name)
		assert.True(t, ok, "column %s missing from schema", name)
	}
}

// assertSamePtr compares a nullable field across a write/read cycle.
func assertSamePtr[T comparable](t *testing.T, want, got *T, field string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, "%s should stay nil", field)
		return
	}
	require.NotNil(t, got, "%s should survive the round trip", field)
	assert.Equal(t, *want, *got, "%s mismatch", field)
}

// assertSameTimePtr is assertSamePtr for nullable timestamps, which need a
// tolerance-based comparison instead of ==.
func assertSameTimePtr(t *testing.T, want, got *time.Time, field string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, "%s should stay nil", field)
		return
	}
	require.NotNil(t, got, "%s should survive the round trip", field)
	assert.WithinDuration(t, *want, *got, time.Nanosecond, "%s drifted", field)
}

func TestSchemaInference(t *testing.T) {
	t.Run("runs", func(t *testing.T) {
		s := parquet.SchemaOf(new(ForecastRun))
		require.NotNil(t, s)
		assertColumns(t, s, []string{
			"run_id",
			"start_time",
			"end_time",
			"run_duration_ms",
			"total_forecasts",
			"config_params",
		})
	})

	t.Run("forecast rows", func(t *testing.T) {
		s := parquet.SchemaOf(new(ForecastRow))
		require.NotNil(t, s)
		assertColumns(t, s, []string{
			"run_id",
			"item",
			"location",
			"run_time",
			"horizon_days",
			"total_units",
			"history_days",
			"daily_level",
			"daily_slope",
			"direction",
		})
	})
}

func TestRunRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast_runs.parquet")

	data := MockFetchForecastRuns()
	require.NotEmpty(t, data)
	require.NoError(t, WriteRunsParquet(data, path), "write should succeed")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	got := readBack[ForecastRun](t, path)
	require.Len(t, got, len(data), "every run should come back")

	for i := range data {
		assert.Equal(t, data[i].RunID, got[i].RunID)
		assert.Equal(t, data[i].TotalForecasts, got[i].TotalForecasts)
		assert.WithinDuration(t, data[i].StartTime, got[i].StartTime, time.Nanosecond)
		assertSameTimePtr(t, data[i].EndTime, got[i].EndTime, "EndTime")
		assertSamePtr(t, data[i].RunDurationMs, got[i].RunDurationMs, "RunDurationMs")
		assertSamePtr(t, data[i].ConfigParams, got[i].ConfigParams, "ConfigParams")
	}
}

func TestForecastRowRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecasts.parquet")

	data := MockFetchForecastRows()
	require.NotEmpty(t, data)
	require.NoError(t, WriteForecastsParquet(data, path), "write should succeed")

	got := readBack[ForecastRow](t, path)
	require.Len(t, got, len(data), "every row should come back")

	for i := range data {
		assert.Equal(t, data[i].RunID, got[i].RunID)
		assert.Equal(t, data[i].Item, got[i].Item)
		assert.Equal(t, data[i].Location, got[i].Location)
		assert.WithinDuration(t, data[i].RunTime, got[i].RunTime, time.Nanosecond)
		assert.Equal(t, data[i].HorizonDays, got[i].HorizonDays)
		assert.Equal(t, data[i].TotalUnits, got[i].TotalUnits)
		assert.Equal(t, data[i].HistoryDays, got[i].HistoryDays)
		assert.InDelta(t, data[i].DailyLevel, got[i].DailyLevel, 1e-9)
		assert.InDelta(t, data[i].DailySlope, got[i].DailySlope, 1e-9)
		assert.Equal(t, data[i].Direction, got[i].Direction)
	}
}

func TestWriteEmptySlices(t *testing.T) {
	t.Run("runs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty_runs.parquet")
		require.NoError(t, WriteRunsParquet(nil, path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), "even an empty file carries the schema footer")
		assert.Empty(t, readBack[ForecastRun](t, path))
	})

	t.Run("forecast rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty_forecasts.parquet")
		require.NoError(t, WriteForecastsParquet(nil, path))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0), "even an empty file carries the schema footer")
		assert.Empty(t, readBack[ForecastRow](t, path))
	})
}

func TestWriteToInvalidPath(t *testing.T) {
	// The parent directory never exists, so os.Create fails for both writers.
	missing := filepath.Join(t.TempDir(), "no_such_dir", "out.parquet")

	assert.Error(t, WriteRunsParquet(MockFetchForecastRuns(), missing))
	assert.Error(t, WriteForecastsParquet(MockFetchForecastRows(), missing))
}

func TestMockData(t *testing.T) {
	t.Run("runs", func(t *testing.T) {
		runs := MockFetchForecastRuns()
		require.Len(t, runs, 3)

		// The first run finished, so all of its optional fields are set.
		assert.Equal(t, int64(1), runs[0].RunID)
		assert.NotNil(t, runs[0].EndTime)
		assert.NotNil(t, runs[0].RunDurationMs)
		assert.NotNil(t, runs[0].ConfigParams)

		// The third run is still in flight.
		assert.Equal(t, int64(3), runs[2].RunID)
		assert.Nil(t, runs[2].EndTime)
		assert.Nil(t, runs[2].RunDurationMs)
		assert.Nil(t, runs[2].ConfigParams)
	})

	t.Run("forecast rows", func(t *testing.T) {
		rows := MockFetchForecastRows()
		require.Len(t, rows, 3)

		assert.Equal(t, int64(1), rows[0].RunID)
		assert.Equal(t, "Booster Box", rows[0].Item)
		assert.Equal(t, "rising", rows[0].Direction)

		// The last row belongs to the second run and trends the other way.
		assert.Equal(t, int64(2), rows[2].RunID)
		assert.Equal(t, "falling", rows[2].Direction)
	})
}

func TestNullableRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nullable.parquet")

	now := time.Now()
	endTime := now.Add(90 * time.Second)
	durationMs := int32(90_000)
	config := `{"horizon_days":30}`

	testData := []ForecastRun{
		{RunID: 1, StartTime: now, EndTime: &endTime, RunDurationMs: &durationMs, TotalForecasts: 12, ConfigParams: &config},
		{RunID: 2, StartTime: now}, // nothing optional set
	}

	require.NoError(t, WriteRunsParquet(testData, path))
	got := readBack[ForecastRun](t, path)
	require.Len(t, got, 2)

	assert.NotNil(t, got[0].EndTime)
	assert.NotNil(t, got[0].RunDurationMs)
	assert.NotNil(t, got[0].ConfigParams)

	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].RunDurationMs)
	assert.Nil(t, got[1].ConfigParams)
}

func TestTimestampPrecision(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timestamps.parquet")

	// A wall-clock reading carries sub-microsecond digits worth preserving.
	now := time.Now()
	require.NoError(t, WriteRunsParquet([]ForecastRun{{RunID: 1, StartTime: now, EndTime: &now}}, path))

	got := readBack[ForecastRun](t, path)
	require.Len(t, got, 1)

	assert.WithinDuration(t, now, got[0].StartTime, time.Nanosecond)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, now, *got[0].EndTime, time.Nanosecond)
}

func TestConvertForecastResults(t *testing.T) {
	runTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	results := []schema.ForecastResult{
		{
			Item:        "Booster Box",
			Location:    "Store A - CA",
			HorizonDays: 30,
			TotalUnits:  450,
			HistoryDays: 90,
			DailyLevel:  14.2,
			DailySlope:  0.35,
			Direction:   schema.RisingTrend,
		},
	}

	rows := ConvertForecastResults(results, runTime)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(0), rows[0].RunID, "direct exports carry no run ID")
	assert.Equal(t, "Booster Box", rows[0].Item)
	assert.Equal(t, "Store A - CA", rows[0].Location)
	assert.Equal(t, runTime, rows[0].RunTime)
	assert.Equal(t, int32(30), rows[0].HorizonDays)
	assert.Equal(t, int64(450), rows[0].TotalUnits)
	assert.Equal(t, int32(90), rows[0].HistoryDays)
	assert.Equal(t, 14.2, rows[0].DailyLevel)
	assert.Equal(t, 0.35, rows[0].DailySlope)
	assert.Equal(t, "rising", rows[0].Direction)
}

func TestConvertRunRecords(t *testing.T) {
	end := time.Date(2026, 3, 14, 9, 32, 0, 0, time.UTC)
	duration := int32(120_000)
	config := `{"horizon_days":60}`

	records := []schema.RunRecord{
		{RunID: 7, StartTime: end.Add(-2 * time.Minute), EndTime: &end, RunDurationMs: &duration, TotalForecasts: 42, ConfigParams: &config},
		{RunID: 8, StartTime: end},
	}

	runs := ConvertRunRecords(records)
	require.Len(t, runs, 2)

	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, records[0].StartTime, runs[0].StartTime)
	assert.Equal(t, int32(42), runs[0].TotalForecasts)
	assertSameTimePtr(t, records[0].EndTime, runs[0].EndTime, "EndTime")
	assertSamePtr(t, records[0].RunDurationMs, runs[0].RunDurationMs, "RunDurationMs")
	assertSamePtr(t, records[0].ConfigParams, runs[0].ConfigParams, "ConfigParams")

	assert.Equal(t, int64(8), runs[1].RunID)
	assert.Nil(t, runs[1].EndTime, "absent end time stays absent")
}

func TestConvertForecastRowRecords(t *testing.T) {
	runTime := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	records := []schema.ForecastRowRecord{
		{
			RunID:       7,
			Item:        "Playmat",
			Location:    "Osaka Depot",
			RunTime:     runTime,
			HorizonDays: 14,
			TotalUnits:  96,
			HistoryDays: 60,
			DailyLevel:  6.9,
			DailySlope:  0.11,
			Direction:   "rising",
		},
	}

	rows := ConvertForecastRowRecords(records)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(7), rows[0].RunID)
	assert.Equal(t, "Playmat", rows[0].Item)
	assert.Equal(t, "Osaka Depot", rows[0].Location)
	assert.Equal(t, runTime, rows[0].RunTime)
	assert.Equal(t, int32(14), rows[0].HorizonDays)
	assert.Equal(t, int64(96), rows[0].TotalUnits)
	assert.Equal(t, int32(60), rows[0].HistoryDays)
	assert.Equal(t, 6.9, rows[0].DailyLevel)
	assert.Equal(t, 0.11, rows[0].DailySlope)
	assert.Equal(t, "rising", rows[0].Direction)
}
