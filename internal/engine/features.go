package engine

import (
	"github.com/hsulin/stockscan/internal/contracts"
)

// Moving-average windows used by the scan signals.
const (
	shortWindow  = 5
	mediumWindow = 20
	longWindow   = 60
	volumeWindow = 20
)

// features holds the per-position trailing averages for one series.
// Every slice is aligned with the series observations; a position is
// absent until a full window of observations exists at or before it.
type features struct {
	ma5     []contracts.OptFloat
	ma20    []contracts.OptFloat
	ma60    []contracts.OptFloat
	volMA20 []contracts.OptFloat
}

// computeFeatures derives all trailing averages for a clean series.
func computeFeatures(series *contracts.DailySeries) features {
	closes := make([]float64, len(series.Obs))
	volumes := make([]float64, len(series.Obs))
	for i, obs := range series.Obs {
		closes[i] = obs.Close
		volumes[i] = float64(obs.Volume)
	}

	return features{
		ma5:     trailingSMA(closes, shortWindow),
		ma20:    trailingSMA(closes, mediumWindow),
		ma60:    trailingSMA(closes, longWindow),
		volMA20: trailingSMA(volumes, volumeWindow),
	}
}

// trailingSMA computes the trailing simple moving average at every
// position. The average at i uses observations i-window+1..i only; it
// is absent while fewer than window observations exist. No partial
// windows, no look-ahead.
func trailingSMA(values []float64, window int) []contracts.OptFloat {
	out := make([]contracts.OptFloat, len(values))
	if window <= 0 {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i+1 >= window {
			out[i] = contracts.Some(sum / float64(window))
		}
	}
	return out
}

// at returns the feature value at position i, absent when out of range.
func at(values []contracts.OptFloat, i int) contracts.OptFloat {
	if i < 0 || i >= len(values) {
		return contracts.None()
	}
	return values[i]
}
