package contracts

import (
	"context"
	"time"
)

// Observation is a single clean daily data point for a ticker.
// Provider gaps (missing close or volume) are filtered out before an
// Observation is created; a zero here is a real zero, never "missing".
type Observation struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// DailySeries is the ordered daily close/volume history for one ticker.
// Dates are strictly increasing with no duplicates.
type DailySeries struct {
	Ticker string        `json:"ticker"`
	Obs    []Observation `json:"observations"`
}

// Len returns the number of clean observations.
func (s *DailySeries) Len() int {
	return len(s.Obs)
}

// Last returns the most recent observation.
// ok is false when the series is empty.
func (s *DailySeries) Last() (Observation, bool) {
	if len(s.Obs) == 0 {
		return Observation{}, false
	}
	return s.Obs[len(s.Obs)-1], true
}

// Validate checks the series ordering invariant.
func (s *DailySeries) Validate() bool {
	for i := 1; i < len(s.Obs); i++ {
		if !s.Obs[i].Date.After(s.Obs[i-1].Date) {
			return false
		}
	}
	return true
}

// SeriesResult is the per-ticker outcome of a provider fetch:
// either a usable series or an explicit unavailable marker.
// A requested ticker is never silently dropped.
type SeriesResult struct {
	Series      *DailySeries `json:"series,omitempty"`
	Unavailable string       `json:"unavailable,omitempty"` // reason, empty when Series is set
}

// OK reports whether the fetch produced a usable series.
func (r SeriesResult) OK() bool {
	return r.Series != nil
}

// Available wraps a series into a successful result.
func Available(series *DailySeries) SeriesResult {
	return SeriesResult{Series: series}
}

// NotAvailable marks a ticker as unavailable with a reason.
func NotAvailable(reason string) SeriesResult {
	return SeriesResult{Unavailable: reason}
}

// SeriesProvider fetches daily series for a set of tickers.
// Implementations return one SeriesResult per requested ticker.
type SeriesProvider interface {
	Fetch(ctx context.Context, tickers []string, lookback time.Duration) (map[string]SeriesResult, error)
}
