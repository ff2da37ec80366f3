package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hsulin/stockscan/internal/contracts"
	"github.com/hsulin/stockscan/pkg/logger"
)

// ErrEmptyResult is returned when no ticker produced a record. It is
// the engine's only propagated error; every per-ticker problem is
// converted into a skip and logged instead.
var ErrEmptyResult = errors.New("no usable output: all tickers were excluded")

// Engine turns per-ticker series results into a ranked scan report.
// It is stateless between runs and performs no I/O.
type Engine struct {
	minHistory int
	logger     *logger.Logger
	now        func() time.Time
}

// New creates an engine with the given minimum-history gate.
func New(minHistory int, log *logger.Logger) *Engine {
	return &Engine{
		minHistory: minHistory,
		logger:     log,
		now:        time.Now,
	}
}

// Scan builds one SignalRecord per qualifying ticker and ranks the
// result. Tickers are processed in lexical order so repeated runs over
// the same input produce the same ordered output.
func (e *Engine) Scan(ctx context.Context, results map[string]contracts.SeriesResult) (*contracts.ScanReport, []contracts.Skip, error) {
	tickers := make([]string, 0, len(results))
	for ticker := range results {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	records := make([]contracts.SignalRecord, 0, len(tickers))
	var skips []contracts.Skip

	for _, ticker := range tickers {
		record, skip := e.process(ticker, results[ticker])
		if skip != nil {
			skips = append(skips, *skip)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		e.logger.WithField("skipped", len(skips)).Error("Scan produced no records")
		return nil, skips, ErrEmptyResult
	}

	rank(records)

	e.logger.WithFields(map[string]interface{}{
		"records": len(records),
		"skipped": len(skips),
		"top":     records[0].Ticker,
	}).Info("Scan completed")

	return &contracts.ScanReport{
		GeneratedAt: e.now(),
		Records:     records,
	}, skips, nil
}

// process derives one ticker's record or the reason it was excluded.
func (e *Engine) process(ticker string, result contracts.SeriesResult) (contracts.SignalRecord, *contracts.Skip) {
	if !result.OK() {
		e.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"reason": result.Unavailable,
		}).Warn("Ticker unavailable, skipping")
		return contracts.SignalRecord{}, &contracts.Skip{
			Ticker: ticker,
			Reason: contracts.SkipUnavailable,
			Detail: result.Unavailable,
		}
	}

	series := result.Series
	if series.Len() < e.minHistory {
		e.logger.WithFields(map[string]interface{}{
			"ticker":       ticker,
			"observations": series.Len(),
			"required":     e.minHistory,
		}).Warn("Insufficient history, skipping")
		return contracts.SignalRecord{}, &contracts.Skip{
			Ticker: ticker,
			Reason: contracts.SkipShortHistory,
			Detail: fmt.Sprintf("%d of %d observations", series.Len(), e.minHistory),
		}
	}

	record, err := buildRecord(series)
	if err != nil {
		e.logger.WithFields(map[string]interface{}{
			"ticker": ticker,
			"error":  err.Error(),
		}).Error("Record derivation failed, skipping")
		return contracts.SignalRecord{}, &contracts.Skip{
			Ticker: ticker,
			Reason: contracts.SkipComputeFailed,
			Detail: err.Error(),
		}
	}

	return record, nil
}
