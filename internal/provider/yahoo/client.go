// Package yahoo fetches daily price history from the Yahoo Finance
// chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hsulin/stockscan/internal/contracts"
	"github.com/hsulin/stockscan/pkg/config"
	"github.com/hsulin/stockscan/pkg/httputil"
	"github.com/hsulin/stockscan/pkg/logger"
)

// Client implements contracts.SeriesProvider against the Yahoo
// Finance v8 chart endpoint, one request per ticker.
type Client struct {
	baseURL    string
	httpClient *httputil.Client
	logger     *logger.Logger
	now        func() time.Time
}

// New creates a new Yahoo Finance client.
func New(cfg config.ProviderConfig, httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     log,
		now:        time.Now,
	}
}

// Fetch retrieves the daily series for every requested ticker. A
// ticker that cannot be fetched gets an explicit unavailable result;
// only an empty ticker list is an error.
func (c *Client) Fetch(ctx context.Context, tickers []string, lookback time.Duration) (map[string]contracts.SeriesResult, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("no tickers requested")
	}

	to := c.now()
	from := to.Add(-lookback)

	results := make(map[string]contracts.SeriesResult, len(tickers))
	for _, ticker := range tickers {
		series, err := c.fetchOne(ctx, ticker, from, to)
		if err != nil {
			c.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"error":  err.Error(),
			}).Warn("Series fetch failed")
			results[ticker] = contracts.NotAvailable(err.Error())
			continue
		}
		results[ticker] = contracts.Available(series)
	}
	return results, nil
}

// fetchOne requests and parses one ticker's daily history.
func (c *Client) fetchOne(ctx context.Context, ticker string, from, to time.Time) (*contracts.DailySeries, error) {
	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		c.baseURL, url.PathEscape(ticker), from.Unix(), to.Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	series, err := parseChart(ticker, body)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"count":  series.Len(),
	}).Debug("Fetched series")
	return series, nil
}

// chartResponse mirrors the subset of the v8 chart payload we read.
// Close and volume entries are pointers: the API reports provider
// gaps as JSON nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// parseChart converts a chart payload into a clean daily series.
// Rows with a null close or volume are gaps and are dropped here, not
// carried forward as zeros.
func parseChart(ticker string, body []byte) (*contracts.DailySeries, error) {
	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("provider error %s: %s",
			payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty result for %s", ticker)
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}
	quote := result.Indicators.Quote[0]

	series := &contracts.DailySeries{Ticker: ticker}
	var lastDay time.Time
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || i >= len(quote.Volume) {
			break
		}
		if quote.Close[i] == nil || quote.Volume[i] == nil {
			continue // provider gap
		}

		day := time.Unix(ts, 0).UTC().Truncate(24 * time.Hour)
		if !lastDay.IsZero() && !day.After(lastDay) {
			continue // duplicate bar for the same session
		}
		lastDay = day

		series.Obs = append(series.Obs, contracts.Observation{
			Date:   day,
			Close:  *quote.Close[i],
			Volume: *quote.Volume[i],
		})
	}

	if series.Len() == 0 {
		return nil, fmt.Errorf("no clean observations for %s", ticker)
	}
	return series, nil
}
