package usecase

import (
	"context"
	"strings"
	"time"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	"VolaEngine/pkg/cache"
	"VolaEngine/pkg/logger"
)

// QuoteAggregator tries quote providers in a fixed priority order and returns
// the first usable snapshot. A record with price <= 0 counts as unavailable
// and the next provider is tried; provider errors are logged, never
// propagated. When every provider is exhausted the caller gets a NoDataError.
type QuoteAggregator struct {
	providers []repository.QuoteProvider
	timeout   time.Duration
	cache     cache.Service
	cacheTTL  time.Duration
	metrics   repository.Metrics
	logger    *logger.Logger
}

// NewQuoteAggregator creates an aggregator over the given priority-ordered
// providers. cache may be nil to disable quote caching.
func NewQuoteAggregator(
	providers []repository.QuoteProvider,
	timeout time.Duration,
	c cache.Service,
	cacheTTL time.Duration,
	metrics repository.Metrics,
	l *logger.Logger,
) *QuoteAggregator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &QuoteAggregator{
		providers: providers,
		timeout:   timeout,
		cache:     c,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		logger:    l,
	}
}

// GetQuote returns the first provider record with a positive price, in
// priority order. First success wins; later providers are not consulted.
func (a *QuoteAggregator) GetQuote(ctx context.Context, ticker string) (*models.StockQuote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if a.cache != nil {
		var cached models.StockQuote
		if err := a.cache.Get(ctx, quoteKey(ticker), &cached); err == nil && cached.Price > 0 {
			return &cached, nil
		}
	}

	for _, p := range a.providers {
		q, err := a.try(ctx, p, ticker)
		if err != nil {
			a.logger.Warn("quote provider unavailable",
				logger.String("provider", p.Name()),
				logger.String("ticker", ticker),
				logger.Error(err),
			)
			a.record(p.Name(), "error")
			continue
		}
		if q == nil || q.Price <= 0 {
			a.record(p.Name(), "no_data")
			continue
		}

		a.record(p.Name(), "ok")
		if a.metrics != nil {
			a.metrics.RecordLastPrice(ticker, q.Price)
		}
		if a.cache != nil {
			if err := a.cache.Set(ctx, quoteKey(ticker), q, a.cacheTTL); err != nil {
				a.logger.Warn("quote cache set failed", logger.Error(err))
			}
		}
		return q, nil
	}

	return nil, &repository.NoDataError{Ticker: ticker}
}

// try invokes one provider under its own bounded timeout so a hung upstream
// degrades to unavailable instead of stalling the whole chain.
func (a *QuoteAggregator) try(ctx context.Context, p repository.QuoteProvider, ticker string) (*models.StockQuote, error) {
	pctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return p.Quote(pctx, ticker)
}

func (a *QuoteAggregator) record(provider, result string) {
	if a.metrics != nil {
		a.metrics.RecordProviderRequest(provider, result)
	}
}

func quoteKey(ticker string) string {
	return "quote:" + ticker
}
