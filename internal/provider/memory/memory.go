// Package memory provides a fixed in-memory series provider for tests
// and offline runs.
package memory

import (
	"context"
	"time"

	"github.com/hsulin/stockscan/internal/contracts"
)

// Provider serves canned series keyed by ticker. Tickers without an
// entry come back as unavailable, matching the live provider contract.
type Provider struct {
	series map[string]*contracts.DailySeries
}

// New creates a provider with the given series.
func New(series map[string]*contracts.DailySeries) *Provider {
	return &Provider{series: series}
}

// Fetch returns the canned result for every requested ticker.
func (p *Provider) Fetch(ctx context.Context, tickers []string, lookback time.Duration) (map[string]contracts.SeriesResult, error) {
	results := make(map[string]contracts.SeriesResult, len(tickers))
	for _, ticker := range tickers {
		if series, ok := p.series[ticker]; ok {
			results[ticker] = contracts.Available(series)
		} else {
			results[ticker] = contracts.NotAvailable("no fixture for ticker")
		}
	}
	return results, nil
}
