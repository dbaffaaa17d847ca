package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	"VolaEngine/pkg/logger"
	"VolaEngine/pkg/util"
)

// Analyzer composes a full stock analysis from the quote aggregator, the
// volatility calculator, and the earnings lookup. The three lookups run
// concurrently; only the quote can fail, and its failure downgrades the whole
// analysis to an error response rather than an HTTP error.
type Analyzer struct {
	quotes     *QuoteAggregator
	volatility *VolatilityCalculator
	earnings   *EarningsLookup
	store      repository.AnalysisStore
	publisher  repository.Publisher
	metrics    repository.Metrics
	logger     *logger.Logger
	now        func() time.Time
}

// NewAnalyzer creates an analyzer. store and publisher may be nil; they are
// best-effort collaborators and never affect the response.
func NewAnalyzer(
	quotes *QuoteAggregator,
	volatility *VolatilityCalculator,
	earnings *EarningsLookup,
	store repository.AnalysisStore,
	publisher repository.Publisher,
	metrics repository.Metrics,
	l *logger.Logger,
) *Analyzer {
	return &Analyzer{
		quotes:     quotes,
		volatility: volatility,
		earnings:   earnings,
		store:      store,
		publisher:  publisher,
		metrics:    metrics,
		logger:     l,
		now:        time.Now,
	}
}

// Analyze produces the composite analysis for ticker. It always returns a
// response; a failed quote lookup yields an error-shaped response with
// Success false.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) *models.AnalysisResponse {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	started := a.now()

	var (
		quote    *models.StockQuote
		quoteErr error
		vol      *models.Volatility
		earnings *models.Earnings
	)

	// The group is used purely as a waitgroup: volatility and earnings never
	// fail, and a quote failure must not cancel them mid-flight.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		quote, quoteErr = a.quotes.GetQuote(gctx, ticker)
		return nil
	})
	g.Go(func() error {
		vol = a.volatility.GetVolatility(gctx, ticker)
		return nil
	})
	g.Go(func() error {
		earnings = a.earnings.GetEarnings(gctx, ticker)
		return nil
	})
	_ = g.Wait()

	if a.metrics != nil {
		defer func() {
			a.metrics.RecordLatency("analyze", time.Since(started).Seconds())
		}()
	}

	if quoteErr != nil {
		a.logger.Warn("analysis failed",
			logger.String("ticker", ticker),
			logger.Error(quoteErr),
		)
		a.recordAnalysis(false)
		return a.errorResponse(ticker, quoteErr)
	}

	resp := a.buildResponse(ticker, quote, vol, earnings)
	a.recordAnalysis(true)
	a.persist(ctx, resp)
	return resp
}

func (a *Analyzer) buildResponse(ticker string, quote *models.StockQuote, vol *models.Volatility, earnings *models.Earnings) *models.AnalysisResponse {
	resp := &models.AnalysisResponse{
		Success:            true,
		Ticker:             ticker,
		CurrentPrice:       quote.Price,
		PriceChange:        quote.PriceChange,
		PriceChangePercent: quote.PriceChangePercent,
		MarketCap:          quote.MarketCap,
		Volume:             quote.Volume,
		AvgVolume:          quote.AvgVolume,
		High:               quote.High,
		Low:                quote.Low,
		Open:               quote.Open,
		Volatility30D:      util.Round2(vol.AnnualizedVolatility),
		VolatilityRating:   vol.VolatilityRating,
		NextEarnings:       earnings.NextEarnings,
		EarningsDate:       earnings.EarningsDate,
		DataSource:         quote.Source,
		Timestamp:          a.now().UTC().Format(time.RFC3339),
		RawData: &models.RawData{
			StockData:      quote,
			EarningsData:   earnings,
			VolatilityData: vol,
		},
	}
	resp.AnalysisSummary = buildSummary(resp)
	return resp
}

// errorResponse shapes a quote failure as a response artifact so the HTTP
// layer can keep returning 200 for analysis requests.
func (a *Analyzer) errorResponse(ticker string, err error) *models.AnalysisResponse {
	return &models.AnalysisResponse{
		Success:          false,
		Ticker:           ticker,
		Error:            err.Error(),
		VolatilityRating: "Error",
		NextEarnings:     "N/A",
		EarningsDate:     "N/A",
		DataSource:       "Error",
		Timestamp:        a.now().UTC().Format(time.RFC3339),
		AnalysisSummary:  "No analysis available due to data error.",
	}
}

// buildSummary renders the human-readable summary line. The earnings sentence
// is dropped when no estimate exists.
func buildSummary(r *models.AnalysisResponse) string {
	descriptor := "low"
	switch {
	case r.Volatility30D > 25:
		descriptor = "high"
	case r.Volatility30D > 15:
		descriptor = "moderate"
	}

	summary := fmt.Sprintf(
		"%s is currently trading at $%.2f with a %s volatility of %.1f%%. The stock has a market cap of %s and average volume of %s shares.",
		r.Ticker, r.CurrentPrice, descriptor, r.Volatility30D,
		util.Comma(r.MarketCap), util.Comma(r.AvgVolume),
	)
	if r.NextEarnings != "" && r.NextEarnings != "N/A" {
		summary += fmt.Sprintf(" Next earnings are expected %s.", r.NextEarnings)
	}
	return summary
}

// persist forwards the analysis to the optional store and publisher. Both are
// best effort; failures are logged and dropped.
func (a *Analyzer) persist(ctx context.Context, resp *models.AnalysisResponse) {
	if a.store != nil {
		if err := a.store.Store(ctx, resp); err != nil {
			a.logger.Warn("analysis store failed",
				logger.String("ticker", resp.Ticker),
				logger.Error(err),
			)
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, resp); err != nil {
			a.logger.Warn("analysis publish failed",
				logger.String("ticker", resp.Ticker),
				logger.Error(err),
			)
		}
	}
}

func (a *Analyzer) recordAnalysis(success bool) {
	if a.metrics != nil {
		a.metrics.RecordAnalysis(success)
	}
}
