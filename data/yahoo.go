package data

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/minwookim/ladder/market"
)

// DefaultBaseURL is the Yahoo Finance chart API endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// APIError is a non-2xx response from the chart API.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("yahoo: %s (%s)", e.Description, e.Code)
	}
	return fmt.Sprintf("yahoo: unexpected status %d", e.StatusCode)
}

// YahooClient fetches daily candles from the Yahoo Finance chart API.
// With CacheDir set, fetched ranges are saved as date,close CSV files and
// reused on later calls.
type YahooClient struct {
	BaseURL    string
	HTTPClient *http.Client
	CacheDir   string
}

// NewYahooClient returns a client with a 30 second request timeout.
// cacheDir may be empty to disable caching.
func NewYahooClient(cacheDir string) *YahooClient {
	return &YahooClient{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		CacheDir:   cacheDir,
	}
}

// chartResponse mirrors the slice of the chart API payload we care about.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
		Adjclose []struct {
			Adjclose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Daily returns the daily closing series for symbol over [start, end],
// both inclusive. Days with a null close (holidays, halted sessions) are
// dropped.
func (c *YahooClient) Daily(ctx context.Context, symbol string, start, end time.Time) (market.Series, error) {
	if c.CacheDir != "" {
		if s, err := LoadCSV(c.cachePath(symbol, start, end)); err == nil {
			return s, nil
		}
	}

	s, err := c.fetch(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}

	if c.CacheDir != "" {
		if err := os.MkdirAll(c.CacheDir, 0755); err == nil {
			// cache failures are not fatal, the series is already in hand
			_ = WriteCSV(c.cachePath(symbol, start, end), s)
		}
	}
	return s, nil
}

func (c *YahooClient) cachePath(symbol string, start, end time.Time) string {
	name := fmt.Sprintf("%s_%s_%s.csv",
		symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))
	return filepath.Join(c.CacheDir, name)
}

func (c *YahooClient) fetch(ctx context.Context, symbol string, start, end time.Time) (market.Series, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	hc := c.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}

	q := url.Values{}
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	// period2 is exclusive, push it past the end date
	q.Set("period2", fmt.Sprintf("%d", end.AddDate(0, 0, 1).Unix()))
	q.Set("interval", "1d")
	q.Set("events", "history")
	q.Set("includeAdjustedClose", "true")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", base, url.PathEscape(symbol), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "ladder/1.0")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	var body chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode}
		}
		return nil, fmt.Errorf("decode chart response: %w", err)
	}

	if body.Chart.Error != nil {
		return nil, &APIError{
			StatusCode:  resp.StatusCode,
			Code:        body.Chart.Error.Code,
			Description: body.Chart.Error.Description,
		}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}

	res := body.Chart.Result[0]
	closes := pickCloses(res)
	if closes == nil {
		return nil, fmt.Errorf("no close prices for %s", symbol)
	}

	var s market.Series
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		d := time.Unix(ts, 0).UTC()
		s = append(s, market.Bar{
			Date:  time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
			Close: market.USD(*closes[i]),
		})
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("chart data for %s: %w", symbol, err)
	}
	return s, nil
}

// pickCloses prefers adjusted closes and falls back to raw closes.
func pickCloses(res chartResult) []*float64 {
	if adj := res.Indicators.Adjclose; len(adj) > 0 && len(adj[0].Adjclose) > 0 {
		return adj[0].Adjclose
	}
	if q := res.Indicators.Quote; len(q) > 0 {
		return q[0].Close
	}
	return nil
}
