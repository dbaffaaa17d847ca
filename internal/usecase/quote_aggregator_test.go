package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	"VolaEngine/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stdout"})
	require.NoError(t, err)
	return l
}

type fakeQuoteProvider struct {
	name  string
	quote *models.StockQuote
	err   error
	calls int
}

func (f *fakeQuoteProvider) Name() string { return f.name }

func (f *fakeQuoteProvider) Quote(_ context.Context, ticker string) (*models.StockQuote, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	q := *f.quote
	q.Ticker = ticker
	return &q, nil
}

func newAggregator(t *testing.T, providers ...repository.QuoteProvider) *QuoteAggregator {
	t.Helper()
	return NewQuoteAggregator(providers, time.Second, nil, 0, nil, testLogger(t))
}

func TestGetQuoteFirstProviderWins(t *testing.T) {
	first := &fakeQuoteProvider{name: "first", quote: &models.StockQuote{Price: 150.25, Source: "first"}}
	second := &fakeQuoteProvider{name: "second", quote: &models.StockQuote{Price: 151, Source: "second"}}

	agg := newAggregator(t, first, second)
	q, err := agg.GetQuote(context.Background(), "aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", q.Ticker)
	assert.Equal(t, "first", q.Source)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later providers must not be consulted after a hit")
}

func TestGetQuoteFallsThroughOnError(t *testing.T) {
	broken := &fakeQuoteProvider{name: "broken", err: errors.New("upstream down")}
	backup := &fakeQuoteProvider{name: "backup", quote: &models.StockQuote{Price: 99.5, Source: "backup"}}

	agg := newAggregator(t, broken, backup)
	q, err := agg.GetQuote(context.Background(), "MSFT")
	require.NoError(t, err)

	assert.Equal(t, "backup", q.Source)
	assert.Equal(t, 1, broken.calls)
}

func TestGetQuoteFallsThroughOnNonPositivePrice(t *testing.T) {
	empty := &fakeQuoteProvider{name: "empty", quote: &models.StockQuote{Price: 0}}
	backup := &fakeQuoteProvider{name: "backup", quote: &models.StockQuote{Price: 42, Source: "backup"}}

	agg := newAggregator(t, empty, backup)
	q, err := agg.GetQuote(context.Background(), "TSLA")
	require.NoError(t, err)

	assert.Equal(t, "backup", q.Source)
}

func TestGetQuoteAllProvidersExhausted(t *testing.T) {
	a := &fakeQuoteProvider{name: "a", err: errors.New("down")}
	b := &fakeQuoteProvider{name: "b", quote: &models.StockQuote{Price: -1}}

	agg := newAggregator(t, a, b)
	q, err := agg.GetQuote(context.Background(), "nope")
	require.Error(t, err)
	assert.Nil(t, q)

	var noData *repository.NoDataError
	require.ErrorAs(t, err, &noData)
	assert.Equal(t, "NOPE", noData.Ticker)
	assert.True(t, repository.IsNoData(err))
}

func TestGetQuoteNoProviders(t *testing.T) {
	agg := newAggregator(t)
	_, err := agg.GetQuote(context.Background(), "AAPL")
	assert.True(t, repository.IsNoData(err))
}
