package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	"VolaEngine/internal/usecase"
	"VolaEngine/pkg/logger"
)

type stubQuoteProvider struct {
	quote *models.StockQuote
	err   error
}

func (s *stubQuoteProvider) Name() string { return "stub" }

func (s *stubQuoteProvider) Quote(_ context.Context, ticker string) (*models.StockQuote, error) {
	if s.err != nil {
		return nil, s.err
	}
	q := *s.quote
	q.Ticker = ticker
	return &q, nil
}

type stubHistory struct{}

func (stubHistory) Name() string { return "stub" }

func (stubHistory) DailyBars(context.Context, string, int) ([]models.Bar, error) {
	bars := make([]models.Bar, 10)
	price := 100.0
	for i := range bars {
		price *= 1.01
		bars[i] = models.Bar{Timestamp: int64(i), Close: price}
	}
	return bars, nil
}

type stubEarnings struct{}

func (stubEarnings) NextEarnings(context.Context, string) (*models.Earnings, error) {
	return &models.Earnings{
		NextEarnings: "Q1 2027",
		EarningsDate: "2027-01-28",
		Source:       "Financial Modeling Prep",
	}, nil
}

func newTestServer(t *testing.T, provider repository.QuoteProvider) *echo.Echo {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stdout"})
	require.NoError(t, err)

	agg := usecase.NewQuoteAggregator([]repository.QuoteProvider{provider}, time.Second, nil, 0, nil, l)
	vol := usecase.NewVolatilityCalculator(stubHistory{}, 30, 5, l)
	earnings := usecase.NewEarningsLookup(stubEarnings{}, l)
	analyzer := usecase.NewAnalyzer(agg, vol, earnings, nil, nil, nil, l)
	sentiment := usecase.NewRandomSentiment()

	h := NewAnalysisHandler(analyzer, agg, earnings, sentiment, nil, l)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func goodProvider() *stubQuoteProvider {
	return &stubQuoteProvider{quote: &models.StockQuote{
		Price:     214.29,
		AvgVolume: 48_500_000,
		MarketCap: 3_200_000_000_000,
		Source:    "Polygon.io",
	}}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t, goodProvider())
	rec := doRequest(e, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAnalyzeEndpoint(t *testing.T) {
	e := newTestServer(t, goodProvider())

	for _, path := range []string{"/analyze/aapl", "/api/analyze/aapl"} {
		rec := doRequest(e, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, rec.Code, path)

		var resp models.AnalysisResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "AAPL", resp.Ticker)
		assert.Equal(t, 214.29, resp.CurrentPrice)
		assert.Equal(t, "Polygon.io", resp.DataSource)
	}
}

func TestAnalyzeEndpointNoData(t *testing.T) {
	e := newTestServer(t, &stubQuoteProvider{err: repository.ErrProviderUnavailable})
	rec := doRequest(e, http.MethodGet, "/analyze/NOPE", "")

	// Data failures still answer 200; the body carries the error.
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AnalysisResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "no real data found for NOPE", resp.Error)
	assert.Equal(t, "Error", resp.DataSource)
}

func TestAnalyzeEndpointRejectsLongTicker(t *testing.T) {
	e := newTestServer(t, goodProvider())
	rec := doRequest(e, http.MethodGet, "/analyze/WAYTOOLONGTICKER", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStockDataEndpoint(t *testing.T) {
	e := newTestServer(t, goodProvider())
	rec := doRequest(e, http.MethodPost, "/api/stock-data", `{"ticker": "msft"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.StockDataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Polygon.io", resp.Source)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "MSFT", resp.Data.Ticker)
}

func TestStockDataEndpointValidation(t *testing.T) {
	e := newTestServer(t, goodProvider())

	rec := doRequest(e, http.MethodPost, "/api/stock-data", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/stock-data", `{"ticker": "WAYTOOLONGTICKER"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEarningsEndpoint(t *testing.T) {
	e := newTestServer(t, goodProvider())
	rec := doRequest(e, http.MethodGet, "/api/earnings/aapl", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.Earnings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Q1 2027", resp.NextEarnings)
}

func TestSentimentEndpoint(t *testing.T) {
	e := newTestServer(t, goodProvider())
	rec := doRequest(e, http.MethodGet, "/api/sentiment/aapl", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.Sentiment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "AAPL", resp.Ticker)
	assert.Contains(t, []string{"Positive", "Neutral", "Negative"}, resp.OverallSentiment)
}

func TestRootEndpoint(t *testing.T) {
	e := newTestServer(t, goodProvider())
	rec := doRequest(e, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "vola-engine")
}
