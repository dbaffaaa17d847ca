package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"VolaEngine/internal/domain/models"
)

type fakeEarningsProvider struct {
	earnings *models.Earnings
	err      error
}

func (f *fakeEarningsProvider) NextEarnings(context.Context, string) (*models.Earnings, error) {
	return f.earnings, f.err
}

func TestGetEarningsFromProvider(t *testing.T) {
	want := &models.Earnings{
		NextEarnings: "Q3 2026",
		EarningsDate: "2026-07-28",
		EPS:          1.42,
		Revenue:      89_500_000_000,
		Source:       "Financial Modeling Prep",
	}
	lookup := NewEarningsLookup(&fakeEarningsProvider{earnings: want}, testLogger(t))

	got := lookup.GetEarnings(context.Background(), "aapl")
	assert.Equal(t, want, got)
}

func TestGetEarningsSimulatedOnProviderError(t *testing.T) {
	lookup := NewEarningsLookup(&fakeEarningsProvider{err: errors.New("calendar down")}, testLogger(t))
	lookup.now = func() time.Time {
		return time.Date(2026, time.November, 15, 12, 0, 0, 0, time.UTC)
	}

	got := lookup.GetEarnings(context.Background(), "AAPL")

	assert.Equal(t, SourceSimulated, got.Source)
	// November is Q4, so the estimate targets Q1 of the next year.
	assert.Equal(t, "Q1 2027", got.NextEarnings)
	assert.Equal(t, "2027-02-13", got.EarningsDate) // 90 days after Nov 15
	assert.GreaterOrEqual(t, got.EPS, 0.5)
	assert.LessOrEqual(t, got.EPS, 3.0)
	assert.GreaterOrEqual(t, got.Revenue, 1_000_000.0)
	assert.Less(t, got.Revenue, 50_000_000.0)
}

func TestGetEarningsSimulatedWithoutProvider(t *testing.T) {
	lookup := NewEarningsLookup(nil, testLogger(t))
	lookup.now = func() time.Time {
		return time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	}

	got := lookup.GetEarnings(context.Background(), "AAPL")

	assert.Equal(t, SourceSimulated, got.Source)
	assert.Equal(t, "Q3 2026", got.NextEarnings)
	assert.Equal(t, "2026-06-30", got.EarningsDate)
}
