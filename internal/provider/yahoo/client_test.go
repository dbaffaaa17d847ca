package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolaEngine/internal/domain/repository"
	xhttp "VolaEngine/pkg/http"
)

const chartPayload = `{
	"chart": {
		"result": [{
			"timestamp": [1764547200, 1764633600, 1764720000],
			"indicators": {
				"quote": [{
					"open":   [100.5, 102.0, 103.2],
					"high":   [103.0, 104.1, 105.0],
					"low":    [99.8, 101.2, 102.5],
					"close":  [102.0, 103.5, 104.25],
					"volume": [1000000, 1100000, 900000]
				}]
			}
		}],
		"error": null
	}
}`

func newTestClient(url string) *Client {
	// No politeness delay and a generous rate limit keep tests fast.
	return New(url, xhttp.NewClient(), 1000, 0, 0)
}

func TestQuoteFromLastTwoBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/AAPL", r.URL.Path)
		assert.Equal(t, "5d", r.URL.Query().Get("range"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		fmt.Fprint(w, chartPayload)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	q, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 104.25, q.Price)
	// Change is measured against the previous close (103.5).
	assert.Equal(t, 0.75, q.PriceChange)
	assert.Equal(t, 0.72, q.PriceChangePercent)
	assert.Equal(t, int64(900000), q.Volume)
	assert.Equal(t, "yfinance", q.Source)
}

func TestDailyBarsSkipsNullSlots(t *testing.T) {
	payload := `{
		"chart": {
			"result": [{
				"timestamp": [1, 2, 3],
				"indicators": {
					"quote": [{
						"open":   [100, 0, 102],
						"high":   [101, 0, 103],
						"low":    [99, 0, 101],
						"close":  [100.5, 0, 102.5],
						"volume": [10, 0, 12]
					}]
				}
			}],
			"error": null
		}
	}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1mo", r.URL.Query().Get("range"))
		fmt.Fprint(w, payload)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	bars, err := c.DailyBars(context.Background(), "AAPL", 30)
	require.NoError(t, err)

	require.Len(t, bars, 2)
	assert.Equal(t, 100.5, bars[0].Close)
	assert.Equal(t, 102.5, bars[1].Close)
}

func TestQuoteChartError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": {"code": "Not Found", "description": "no data"}}}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Quote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, repository.ErrProviderUnavailable)
}

func TestQuoteEmptyChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"chart": {"result": [], "error": null}}`)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, repository.ErrMalformedResponse)
}

func TestRangeForDays(t *testing.T) {
	assert.Equal(t, "5d", rangeForDays(3))
	assert.Equal(t, "1mo", rangeForDays(30))
	assert.Equal(t, "3mo", rangeForDays(60))
	assert.Equal(t, "1y", rangeForDays(365))
}
