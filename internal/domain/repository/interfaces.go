package repository

import (
	"context"

	"VolaEngine/internal/domain/models"
)

// QuoteProvider is one upstream quote source. Quote returns a normalized
// snapshot or an error; a price of zero or less is treated as unavailable by
// the aggregator, never surfaced to callers.
type QuoteProvider interface {
	Name() string
	Quote(ctx context.Context, ticker string) (*models.StockQuote, error)
}

// HistoryProvider supplies daily OHLC bars for volatility analysis.
type HistoryProvider interface {
	Name() string
	DailyBars(ctx context.Context, ticker string, days int) ([]models.Bar, error)
}

// EarningsProvider supplies the next scheduled earnings event.
type EarningsProvider interface {
	NextEarnings(ctx context.Context, ticker string) (*models.Earnings, error)
}

// SentimentAnalyzer produces a sentiment record for a ticker. The shipped
// implementation is a random-choice stub; the interface exists so a real
// analyzer can replace it without touching callers.
type SentimentAnalyzer interface {
	Analyze(ctx context.Context, ticker string) *models.Sentiment
}

// AnalysisStore persists completed analyses for research workflows.
type AnalysisStore interface {
	Store(ctx context.Context, a *models.AnalysisResponse) error
	Health(ctx context.Context) error
	Close() error
}

// Publisher emits completed analyses as events keyed by ticker.
type Publisher interface {
	Publish(ctx context.Context, a *models.AnalysisResponse) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordProviderRequest(provider, result string)
	RecordAnalysis(success bool)
	RecordLastPrice(ticker string, price float64)
	RecordLatency(op string, seconds float64)
}
