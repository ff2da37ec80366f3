package engine

import (
	"fmt"

	"github.com/hsulin/stockscan/internal/contracts"
)

// volumeSpikeFactor is the multiple of the 20-day average volume the
// last day must exceed to count as a spike.
const volumeSpikeFactor = 1.5

// buildRecord derives the signal record for one ticker from its clean
// series. Only the last two positions feed the signals. The caller has
// already enforced the minimum-history gate.
//
// An unexpected panic during derivation is converted into an error so a
// single bad series cannot take down the run.
func buildRecord(series *contracts.DailySeries) (rec contracts.SignalRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("derive %s: %v", series.Ticker, r)
		}
	}()

	last := len(series.Obs) - 1
	if last < 0 {
		return rec, fmt.Errorf("derive %s: empty series", series.Ticker)
	}
	prev := last - 1

	f := computeFeatures(series)
	lastObs := series.Obs[last]

	rec = contracts.SignalRecord{
		Ticker:          series.Ticker,
		AsOfDate:        lastObs.Date,
		LastPrice:       contracts.RoundTo(lastObs.Close, 4),
		DayChangePct:    dayChange(series, last),
		GoldenCross5x20: goldenCross(f, prev, last),
		VolumeSpike:     volumeSpike(f, lastObs, last),
		AboveLongMAPct:  aboveLongMA(f, lastObs, last),
	}
	return rec, nil
}

// dayChange computes the percent change of the last close against the
// prior close; absent with fewer than two observations.
func dayChange(series *contracts.DailySeries, last int) contracts.OptFloat {
	if last < 1 {
		return contracts.None()
	}
	prevClose := series.Obs[last-1].Close
	if prevClose == 0 {
		return contracts.None()
	}
	return contracts.Some((series.Obs[last].Close/prevClose - 1) * 100).Round(2)
}

// goldenCross detects a 5/20 cross from below to above between the
// last two positions. Both inequalities are strict; when any of the
// four averages is undefined the signal is false, never absent.
func goldenCross(f features, prev, last int) bool {
	ma5Prev, ma20Prev := at(f.ma5, prev), at(f.ma20, prev)
	ma5Last, ma20Last := at(f.ma5, last), at(f.ma20, last)

	if !ma5Prev.Valid || !ma20Prev.Valid || !ma5Last.Valid || !ma20Last.Valid {
		return false
	}
	return ma5Prev.Value < ma20Prev.Value && ma5Last.Value > ma20Last.Value
}

// volumeSpike reports whether the last day's volume exceeds 1.5x the
// trailing 20-day average volume; false when the average is undefined.
func volumeSpike(f features, lastObs contracts.Observation, last int) bool {
	volMA := at(f.volMA20, last)
	if !volMA.Valid {
		return false
	}
	return float64(lastObs.Volume) > volumeSpikeFactor*volMA.Value
}

// aboveLongMA computes the percent distance of the last price from the
// 60-day average. The 60-observation gate means it should always be
// defined here, but the absent path is still handled.
func aboveLongMA(f features, lastObs contracts.Observation, last int) contracts.OptFloat {
	ma60 := at(f.ma60, last)
	if !ma60.Valid || ma60.Value == 0 {
		return contracts.None()
	}
	return contracts.Some((lastObs.Close/ma60.Value - 1) * 100).Round(2)
}
