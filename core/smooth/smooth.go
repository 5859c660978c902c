// Package smooth implements Holt linear-trend exponential smoothing for
// daily demand series.
package smooth

import (
	"errors"
	"fmt"
	"math"

	"github.com/jmallard/shelfwatch/schema"
)

// Sentinel errors for series the model cannot project. Callers test with
// errors.Is and skip the pair instead of aborting the whole run.
var (
	// ErrInsufficientHistory marks a series with fewer daily entries than
	// schema.MinHistoryDays.
	ErrInsufficientHistory = errors.New("insufficient history for model fit")

	// ErrModelFit marks a series the smoother could not fit to finite state.
	ErrModelFit = errors.New("model fit failed")
)

// Grid-search bounds for the smoothing factors. A coarse pass walks the full
// grid, then a refinement pass walks a finer grid around the incumbent. Both
// grids are fixed, so the fit is fully deterministic for a given series.
const (
	minFactor  = 0.05
	maxFactor  = 0.95
	coarseStep = 0.05
	fineStep   = 0.01

	// initWindow is the number of leading observations fitted with a
	// least-squares line to seed the starting level and trend.
	initWindow = 10
)

// Model holds the fitted smoothing state at the end of a series.
type Model struct {
	Alpha float64 // level smoothing factor
	Beta  float64 // trend smoothing factor
	Level float64 // fitted level at the last observation
	Trend float64 // fitted per-day trend at the last observation
	SSE   float64 // in-sample sum of squared one-step errors
}

// Fit estimates level and trend state for a daily series using Holt's linear
// method with additive trend and no seasonality:
//
//	l[t] = a*y[t] + (1-a)*(l[t-1] + b[t-1])
//	b[t] = b*(l[t] - l[t-1]) + (1-b)*b[t-1]
//
// The smoothing factors are selected by minimizing the in-sample sum of
// squared one-step errors. A constant series (including all-zero) fits
// cleanly with zero trend.
func Fit(values []float64) (*Model, error) {
	if len(values) < schema.MinHistoryDays {
		return nil, fmt.Errorf("%w: %d points, need at least %d",
			ErrInsufficientHistory, len(values), schema.MinHistoryDays)
	}
	for i, v := range values {
		if !isFinite(v) {
			return nil, fmt.Errorf("%w: non-finite value at index %d", ErrModelFit, i)
		}
	}

	level0, trend0 := initialState(values)

	// 1. Coarse pass over the full factor grid
	best := searchGrid(values, level0, trend0,
		factorGrid(minFactor, maxFactor, coarseStep),
		factorGrid(minFactor, maxFactor, coarseStep),
		nil)

	// 2. Fine pass around the incumbent
	if best != nil {
		best = searchGrid(values, level0, trend0,
			factorGrid(best.Alpha-coarseStep, best.Alpha+coarseStep, fineStep),
			factorGrid(best.Beta-coarseStep, best.Beta+coarseStep, fineStep),
			best)
	}

	if best == nil || !isFinite(best.Level) || !isFinite(best.Trend) {
		return nil, fmt.Errorf("%w: search produced no finite state", ErrModelFit)
	}
	return best, nil
}

// Forecast projects the fitted line past the end of the series, returning one
// expected value per future day.
func (m *Model) Forecast(horizonDays int) []float64 {
	if horizonDays <= 0 {
		return nil
	}
	out := make([]float64, horizonDays)
	for k := 1; k <= horizonDays; k++ {
		out[k-1] = m.Level + float64(k)*m.Trend
	}
	return out
}

// ForecastTotal sums the per-day projection into one expected demand figure.
func (m *Model) ForecastTotal(horizonDays int) float64 {
	var total float64
	for k := 1; k <= horizonDays; k++ {
		total += m.Level + float64(k)*m.Trend
	}
	return total
}

// Project runs the eligibility, fit and projection pipeline for one series
// and shapes the outcome as a result row. The horizon total is rounded
// half-to-even to whole units.
func Project(s schema.DemandSeries, horizonDays int) (schema.ForecastResult, error) {
	if horizonDays <= 0 {
		return schema.ForecastResult{}, fmt.Errorf("horizon must be positive (received %d)", horizonDays)
	}

	model, err := Fit(s.Values())
	if err != nil {
		return schema.ForecastResult{}, err
	}

	total := model.ForecastTotal(horizonDays)
	if !isFinite(total) {
		return schema.ForecastResult{}, fmt.Errorf("%w: non-finite projection", ErrModelFit)
	}

	return schema.ForecastResult{
		Item:        s.Item,
		Location:    s.Location,
		HorizonDays: horizonDays,
		TotalUnits:  int64(math.RoundToEven(total)),
		HistoryDays: s.Len(),
		DailyLevel:  model.Level,
		DailySlope:  model.Trend,
		Direction:   schema.DirectionForSlope(model.Trend),
	}, nil
}

// searchGrid evaluates every factor combination on a rectangular grid and
// returns the model with the lowest SSE. Ties keep the earliest candidate so
// the outcome never depends on evaluation order quirks. The incumbent (if
// any) survives when nothing on the grid beats it.
func searchGrid(values []float64, level0, trend0 float64, alphas, betas []float64, incumbent *Model) *Model {
	best := incumbent
	for _, alpha := range alphas {
		for _, beta := range betas {
			m := run(values, level0, trend0, alpha, beta)
			if !isFinite(m.SSE) {
				continue
			}
			if best == nil || m.SSE < best.SSE {
				best = m
			}
		}
	}
	return best
}

// run applies the Holt recursions over the whole series with fixed factors,
// starting from the seeded state and accumulating one-step errors. The first
// observation is consumed by the seed, so errors accrue from the second on.
func run(values []float64, level0, trend0, alpha, beta float64) *Model {
	level, trend := level0, trend0
	var sse float64
	for _, y := range values[1:] {
		oneStepErr := y - (level + trend)
		sse += oneStepErr * oneStepErr

		prevLevel := level
		level = alpha*y + (1-alpha)*(level+trend)
		trend = beta*(level-prevLevel) + (1-beta)*trend
	}
	return &Model{Alpha: alpha, Beta: beta, Level: level, Trend: trend, SSE: sse}
}

// initialState fits a least-squares line through the first initWindow
// observations. The intercept seeds the level and the slope seeds the trend,
// which keeps the early one-step errors from swamping the factor search.
func initialState(values []float64) (float64, float64) {
	w := min(initWindow, len(values))

	var sumT, sumY, sumTY, sumTT float64
	for t := range w {
		y := values[t]
		ft := float64(t)
		sumT += ft
		sumY += y
		sumTY += ft * y
		sumTT += ft * ft
	}

	n := float64(w)
	den := n*sumTT - sumT*sumT
	if den == 0 {
		return values[0], 0
	}
	slope := (n*sumTY - sumT*sumY) / den
	intercept := (sumY - slope*sumT) / n
	return intercept, slope
}

// factorGrid builds the candidate factors from lo to hi inclusive, clamped
// to the valid range. Candidates are derived multiplicatively from the low
// bound so repeated addition never drifts the grid.
func factorGrid(lo, hi, step float64) []float64 {
	lo = clampFactor(lo)
	hi = clampFactor(hi)

	var out []float64
	for i := 0; ; i++ {
		f := lo + float64(i)*step
		if f > hi+step/2 {
			break
		}
		out = append(out, f)
	}
	return out
}

// clampFactor bounds a smoothing factor to the searchable range.
func clampFactor(f float64) float64 {
	if f < minFactor {
		return minFactor
	}
	if f > maxFactor {
		return maxFactor
	}
	return f
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
