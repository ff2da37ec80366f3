package engine

import (
	"sort"

	"github.com/hsulin/stockscan/internal/contracts"
)

// rank orders records in place by descending signal strength on the
// key tuple (goldenCross5x20, volumeSpike, aboveLongMAPct,
// dayChangePct). Booleans order true first; absent numerics sort after
// every present value. Ties on all four keys keep the input order
// (stable sort), so callers that want full determinism feed records in
// a deterministic order.
func rank(records []contracts.SignalRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]

		if a.GoldenCross5x20 != b.GoldenCross5x20 {
			return a.GoldenCross5x20
		}
		if a.VolumeSpike != b.VolumeSpike {
			return a.VolumeSpike
		}
		if c := compareOptDesc(a.AboveLongMAPct, b.AboveLongMAPct); c != 0 {
			return c < 0
		}
		if c := compareOptDesc(a.DayChangePct, b.DayChangePct); c != 0 {
			return c < 0
		}
		return false
	})
}

// compareOptDesc compares two optional values for descending order:
// negative when a ranks before b, positive when after, zero when tied.
// Absent ranks after all present values.
func compareOptDesc(a, b contracts.OptFloat) int {
	switch {
	case a.Valid && b.Valid:
		if a.Value > b.Value {
			return -1
		}
		if a.Value < b.Value {
			return 1
		}
		return 0
	case a.Valid:
		return -1
	case b.Valid:
		return 1
	default:
		return 0
	}
}
