package contracts

import (
	"encoding/json"
	"math"
	"time"
)

// OptFloat is an explicitly optional float64.
// Derived numeric signals use this instead of NaN or zero sentinels so
// "not computable" can never be confused with a real value.
type OptFloat struct {
	Value float64
	Valid bool
}

// Some returns a present OptFloat.
func Some(v float64) OptFloat {
	return OptFloat{Value: v, Valid: true}
}

// None returns an absent OptFloat.
func None() OptFloat {
	return OptFloat{}
}

// Round returns the value rounded to the given number of decimal places.
// Absent stays absent. Rounding is idempotent.
func (o OptFloat) Round(places int) OptFloat {
	if !o.Valid {
		return o
	}
	return Some(RoundTo(o.Value, places))
}

// MarshalJSON renders absent values as null.
func (o OptFloat) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON accepts null as absent.
func (o *OptFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// RoundTo rounds half away from zero to the given decimal places.
func RoundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// SignalRecord is one ranked row of the scan output.
// Built once per qualifying ticker and never mutated afterwards;
// numeric fields are already rounded (price 4dp, percentages 2dp).
type SignalRecord struct {
	Ticker          string    `json:"ticker"`
	AsOfDate        time.Time `json:"date"`
	LastPrice       float64   `json:"price"`
	DayChangePct    OptFloat  `json:"d_change_pct"`
	GoldenCross5x20 bool      `json:"golden_cross_5_20"`
	VolumeSpike     bool      `json:"vol_spike_vs_20d"`
	AboveLongMAPct  OptFloat  `json:"above_ma60_pct"`
}

// ScanReport is the ranked output of one scan run.
type ScanReport struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Records     []SignalRecord `json:"records"`
}

// Top returns the first n records (or fewer when the report is smaller).
func (r *ScanReport) Top(n int) []SignalRecord {
	if n > len(r.Records) {
		n = len(r.Records)
	}
	return r.Records[:n]
}

// SkipReason classifies why a ticker was excluded from the report.
type SkipReason string

const (
	// SkipUnavailable means the provider could not deliver a series.
	SkipUnavailable SkipReason = "input_unavailable"
	// SkipShortHistory means fewer clean observations than the minimum.
	SkipShortHistory SkipReason = "short_history"
	// SkipComputeFailed means record derivation hit an unexpected fault.
	SkipComputeFailed SkipReason = "computation_failure"
)

// Skip records one excluded ticker with its reason.
type Skip struct {
	Ticker string     `json:"ticker"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}
