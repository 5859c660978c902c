package schema

import "time"

// RunRecord represents a row from the shelfwatch_forecast_runs table.
type RunRecord struct {
	RunID          int64
	StartTime      time.Time
	EndTime        *time.Time
	RunDurationMs  *int32
	TotalForecasts int32
	ConfigParams   *string
}

// ForecastRowRecord represents a row from the shelfwatch_forecasts table.
type ForecastRowRecord struct {
	RunID       int64
	Item        string
	Location    string
	RunTime     time.Time
	HorizonDays int32
	TotalUnits  int64
	HistoryDays int32
	DailyLevel  float64
	DailySlope  float64
	Direction   string
}
