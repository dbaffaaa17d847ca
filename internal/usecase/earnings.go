package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	"VolaEngine/pkg/logger"
	"VolaEngine/pkg/util"
)

// EarningsLookup resolves the next scheduled earnings event for a ticker.
// When the upstream calendar is unavailable it synthesizes an estimate for
// the next calendar quarter, tagged as simulated. It never fails.
type EarningsLookup struct {
	provider repository.EarningsProvider
	now      func() time.Time
	logger   *logger.Logger
}

// NewEarningsLookup creates a lookup over the given calendar provider.
// provider may be nil, in which case every lookup is simulated.
func NewEarningsLookup(provider repository.EarningsProvider, l *logger.Logger) *EarningsLookup {
	return &EarningsLookup{
		provider: provider,
		now:      time.Now,
		logger:   l,
	}
}

// GetEarnings returns the next earnings event for ticker.
func (e *EarningsLookup) GetEarnings(ctx context.Context, ticker string) *models.Earnings {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	if e.provider != nil {
		earnings, err := e.provider.NextEarnings(ctx, ticker)
		if err == nil && earnings != nil {
			return earnings
		}
		if err != nil {
			e.logger.Warn("earnings calendar unavailable",
				logger.String("ticker", ticker),
				logger.Error(err),
			)
		}
	}
	return e.simulated()
}

// simulated estimates the next calendar quarter and a report date roughly 90
// days out, with plausible EPS and revenue figures.
func (e *EarningsLookup) simulated() *models.Earnings {
	now := e.now()
	quarter, year := util.NextQuarter(now)
	return &models.Earnings{
		NextEarnings: fmt.Sprintf("Q%d %d", quarter, year),
		EarningsDate: util.ISODate(now.AddDate(0, 0, 90)),
		EPS:          util.Round2(0.5 + rand.Float64()*2.5),
		Revenue:      float64(1_000_000 + rand.Int63n(49_000_000)),
		Source:       SourceSimulated,
	}
}
