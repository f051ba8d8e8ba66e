package data

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/minwookim/ladder/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chartJSON(timestamps []int64, closes []float64) string {
	ts, cl := "", ""
	for i := range timestamps {
		if i > 0 {
			ts += ","
			cl += ","
		}
		ts += fmt.Sprintf("%d", timestamps[i])
		cl += fmt.Sprintf("%g", closes[i])
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],
		"indicators":{"quote":[{"close":[%s]}],"adjclose":[{"adjclose":[%s]}]}}],
		"error":null}}`, ts, cl, cl)
}

func testDates() (time.Time, time.Time, []int64) {
	d1 := time.Date(2024, 2, 1, 14, 30, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	return d1, d2, []int64{d1.Unix(), d2.Unix()}
}

func TestYahooDaily(t *testing.T) {
	t.Parallel()

	start, end, stamps := testDates()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/TQQQ", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartJSON(stamps, []float64{100, 95}))
	}))
	defer srv.Close()

	c := NewYahooClient("")
	c.BaseURL = srv.URL

	s, err := c.Daily(context.Background(), "TQQQ", start, end)
	require.NoError(t, err)
	require.Len(t, s, 2)
	assert.Equal(t, market.USD(100), s[0].Close)
	// intraday timestamps collapse to midnight dates
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), s[0].Date)
}

func TestYahooDailySkipsNullCloses(t *testing.T) {
	t.Parallel()

	start, end, stamps := testDates()
	body := fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%d,%d],
		"indicators":{"quote":[{"close":[100,null]}],"adjclose":[{"adjclose":[100,null]}]}}],
		"error":null}}`, stamps[0], stamps[1])

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	c := NewYahooClient("")
	c.BaseURL = srv.URL

	s, err := c.Daily(context.Background(), "TQQQ", start, end)
	require.NoError(t, err)
	assert.Len(t, s, 1)
}

func TestYahooDailyAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"chart":{"result":null,
			"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	c := NewYahooClient("")
	c.BaseURL = srv.URL

	start, end, _ := testDates()
	_, err := c.Daily(context.Background(), "NOPE", start, end)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not Found", apiErr.Code)
	assert.Contains(t, apiErr.Error(), "delisted")
}

func TestYahooDailyUsesCache(t *testing.T) {
	t.Parallel()

	start, end, stamps := testDates()

	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, chartJSON(stamps, []float64{100, 95}))
	}))
	defer srv.Close()

	c := NewYahooClient(t.TempDir())
	c.BaseURL = srv.URL

	first, err := c.Daily(context.Background(), "TQQQ", start, end)
	require.NoError(t, err)

	second, err := c.Daily(context.Background(), "TQQQ", start, end)
	require.NoError(t, err)

	assert.Equal(t, 1, hits)
	assert.Equal(t, first, second)
}

func TestYahooDailyContextCancel(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	c := NewYahooClient("")
	c.BaseURL = srv.URL

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start, end, _ := testDates()
	_, err := c.Daily(ctx, "TQQQ", start, end)
	assert.Error(t, err)
}
