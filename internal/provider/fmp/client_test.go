package fmp

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

func TestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/quote/AAPL", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, `[{
			"symbol": "AAPL",
			"price": 214.29,
			"change": 2.15,
			"changesPercentage": 1.01,
			"volume": 52000000,
			"avgVolume": 48500000,
			"marketCap": 3200000000000,
			"dayHigh": 216.5,
			"dayLow": 211.8,
			"open": 212.14
		}]`)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, xhttp.NewClient())
	q, err := c.Quote(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, 214.29, q.Price)
	assert.Equal(t, 2.15, q.PriceChange)
	assert.Equal(t, int64(3200000000000), q.MarketCap)
	assert.Equal(t, int64(48500000), q.AvgVolume)
	assert.Equal(t, "FMP", q.Source)
}

func TestQuoteWithoutAPIKey(t *testing.T) {
	c := New("", "https://financialmodelingprep.com", xhttp.NewClient())
	_, err := c.Quote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, repository.ErrProviderUnavailable)
}

func TestQuoteEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, xhttp.NewClient())
	_, err := c.Quote(context.Background(), "NOPE")
	assert.ErrorIs(t, err, repository.ErrMalformedResponse)
}

func TestNextEarnings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/earnings-calendar/AAPL", r.URL.Path)
		fmt.Fprint(w, `[{
			"date": "2027-01-28",
			"quarter": 1,
			"year": 2027,
			"eps": 2.18,
			"revenue": 124300000000
		}]`)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, xhttp.NewClient())
	e, err := c.NextEarnings(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "Q1 2027", e.NextEarnings)
	assert.Equal(t, "2027-01-28", e.EarningsDate)
	assert.Equal(t, 2.18, e.EPS)
	assert.Equal(t, "Financial Modeling Prep", e.Source)
}

func TestNextEarningsMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `[{"date": "", "quarter": 0, "year": 0, "eps": 0, "revenue": 0}]`)
	}))
	defer srv.Close()

	c := New("test-key", srv.URL, xhttp.NewClient())
	e, err := c.NextEarnings(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "N/A", e.NextEarnings)
	assert.Equal(t, "N/A", e.EarningsDate)
}
