package engine

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsulin/stockscan/internal/contracts"
	"github.com/hsulin/stockscan/pkg/logger"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return New(60, logger.NewWriter(io.Discard))
}

func TestEngine_MinimumHistoryBoundary(t *testing.T) {
	e := testEngine(t)

	results := map[string]contracts.SeriesResult{
		"JUST.TW":  contracts.Available(constSeries("JUST.TW", 60, 100)),
		"SHORT.TW": contracts.Available(constSeries("SHORT.TW", 59, 100)),
	}

	report, skips, err := e.Scan(context.Background(), results)
	require.NoError(t, err)

	require.Len(t, report.Records, 1)
	assert.Equal(t, "JUST.TW", report.Records[0].Ticker)

	require.Len(t, skips, 1)
	assert.Equal(t, "SHORT.TW", skips[0].Ticker)
	assert.Equal(t, contracts.SkipShortHistory, skips[0].Reason)
}

func TestEngine_UnavailableTickerIsSkippedNotFatal(t *testing.T) {
	e := testEngine(t)

	results := map[string]contracts.SeriesResult{
		"OK.TW":  contracts.Available(constSeries("OK.TW", 70, 100)),
		"BAD.TW": contracts.NotAvailable("provider returned no rows"),
	}

	report, skips, err := e.Scan(context.Background(), results)
	require.NoError(t, err)

	require.Len(t, report.Records, 1)
	require.Len(t, skips, 1)
	assert.Equal(t, contracts.SkipUnavailable, skips[0].Reason)
	assert.Equal(t, "provider returned no rows", skips[0].Detail)
}

func TestEngine_EmptyResult(t *testing.T) {
	e := testEngine(t)

	results := map[string]contracts.SeriesResult{
		"A.TW": contracts.Available(constSeries("A.TW", 10, 100)),
		"B.TW": contracts.NotAvailable("no data"),
	}

	report, skips, err := e.Scan(context.Background(), results)
	require.ErrorIs(t, err, ErrEmptyResult)
	assert.Nil(t, report)
	assert.Len(t, skips, 2)
}

func TestEngine_NoInputIsEmptyResult(t *testing.T) {
	e := testEngine(t)

	_, _, err := e.Scan(context.Background(), map[string]contracts.SeriesResult{})
	require.ErrorIs(t, err, ErrEmptyResult)
}

func TestEngine_StrongSignalsOutrankPriceMoves(t *testing.T) {
	e := testEngine(t)

	// A: golden cross plus volume at 2x its 20-day average.
	seriesA := seriesOf("AAA.TW", crossingCloses(70))
	seriesA.Obs[69].Volume = 2000

	// B: flat series, ordinary volume, but a big last-day gain.
	closesB := make([]float64, 70)
	for i := range closesB {
		closesB[i] = 100
	}
	closesB[69] = 130
	seriesB := seriesOf("BBB.TW", closesB)

	report, _, err := e.Scan(context.Background(), map[string]contracts.SeriesResult{
		"AAA.TW": contracts.Available(seriesA),
		"BBB.TW": contracts.Available(seriesB),
	})
	require.NoError(t, err)

	require.Len(t, report.Records, 2)
	assert.Equal(t, "AAA.TW", report.Records[0].Ticker)
	assert.True(t, report.Records[0].GoldenCross5x20)
	assert.True(t, report.Records[0].VolumeSpike)
	assert.Equal(t, "BBB.TW", report.Records[1].Ticker)
}

func TestEngine_Deterministic(t *testing.T) {
	e := testEngine(t)

	results := map[string]contracts.SeriesResult{
		"C.TW": contracts.Available(constSeries("C.TW", 70, 100)),
		"A.TW": contracts.Available(constSeries("A.TW", 70, 50)),
		"B.TW": contracts.Available(constSeries("B.TW", 70, 75)),
	}

	first, _, err := e.Scan(context.Background(), results)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, _, err := e.Scan(context.Background(), results)
		require.NoError(t, err)
		assert.Equal(t, tickersOf(first.Records), tickersOf(again.Records))
	}

	// Flat series tie on every key: lexical input order survives.
	assert.Equal(t, []string{"A.TW", "B.TW", "C.TW"}, tickersOf(first.Records))
}

func TestEngine_TwoObservationGateAndDayChangeAreIndependent(t *testing.T) {
	e := testEngine(t)

	series := seriesOf("TINY.TW", []float64{100, 103})
	results := map[string]contracts.SeriesResult{
		"TINY.TW": contracts.Available(series),
	}

	// The record itself computes the day change correctly...
	recDirect, err := buildRecord(series)
	require.NoError(t, err)
	assert.Equal(t, contracts.Some(3.0), recDirect.DayChangePct)

	// ...but the 60-observation gate still excludes the ticker.
	_, skips, err := e.Scan(context.Background(), results)
	require.ErrorIs(t, err, ErrEmptyResult)
	require.Len(t, skips, 1)
	assert.Equal(t, contracts.SkipShortHistory, skips[0].Reason)
}

func TestEngine_ReportTimestamp(t *testing.T) {
	e := testEngine(t)

	report, _, err := e.Scan(context.Background(), map[string]contracts.SeriesResult{
		"OK.TW": contracts.Available(constSeries("OK.TW", 70, 100)),
	})
	require.NoError(t, err)
	assert.False(t, report.GeneratedAt.IsZero())
}
