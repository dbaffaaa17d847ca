package fmp

import (
	"context"
	"fmt"
	"strings"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	xhttp "VolaEngine/pkg/http"
)

const sourceName = "FMP"

// Client talks to Financial Modeling Prep: the v3 quote endpoint for
// snapshots and the earnings calendar for the next scheduled report. FMP
// reports its own price change, so that value is passed through unmodified.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates an FMP client. An empty API key makes the client report
// unavailable immediately.
func New(apiKey, baseURL string, http *xhttp.Client) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http,
	}
}

func (c *Client) Name() string { return sourceName }

// quoteItem mirrors one element of the v3 quote array payload.
type quoteItem struct {
	Symbol            string  `json:"symbol"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Volume            int64   `json:"volume"`
	AvgVolume         int64   `json:"avgVolume"`
	MarketCap         int64   `json:"marketCap"`
	DayHigh           float64 `json:"dayHigh"`
	DayLow            float64 `json:"dayLow"`
	Open              float64 `json:"open"`
}

// Quote returns the current snapshot for ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (*models.StockQuote, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("fmp: no api key: %w", repository.ErrProviderUnavailable)
	}

	url := fmt.Sprintf("%s/api/v3/quote/%s", c.baseURL, ticker)
	var raw []quoteItem
	if err := c.http.GetJSON(ctx, url, map[string]string{"apikey": c.apiKey}, &raw); err != nil {
		return nil, fmt.Errorf("fmp: %v: %w", err, repository.ErrProviderUnavailable)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fmp: empty quote for %s: %w", ticker, repository.ErrMalformedResponse)
	}

	return normalizeQuote(ticker, raw[0]), nil
}

func normalizeQuote(ticker string, d quoteItem) *models.StockQuote {
	return &models.StockQuote{
		Ticker:             ticker,
		Price:              d.Price,
		PriceChange:        d.Change,
		PriceChangePercent: d.ChangesPercentage,
		Volume:             d.Volume,
		AvgVolume:          d.AvgVolume,
		MarketCap:          d.MarketCap,
		High:               d.DayHigh,
		Low:                d.DayLow,
		Open:               d.Open,
		Source:             sourceName,
	}
}

// calendarItem mirrors one element of the earnings calendar payload.
type calendarItem struct {
	Date    string  `json:"date"`
	Quarter int     `json:"quarter"`
	Year    int     `json:"year"`
	EPS     float64 `json:"eps"`
	Revenue float64 `json:"revenue"`
}

// NextEarnings returns the next scheduled earnings event for ticker.
func (c *Client) NextEarnings(ctx context.Context, ticker string) (*models.Earnings, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("fmp: no api key: %w", repository.ErrProviderUnavailable)
	}

	url := fmt.Sprintf("%s/api/v3/earnings-calendar/%s", c.baseURL, ticker)
	var raw []calendarItem
	if err := c.http.GetJSON(ctx, url, map[string]string{"apikey": c.apiKey}, &raw); err != nil {
		return nil, fmt.Errorf("fmp: %v: %w", err, repository.ErrProviderUnavailable)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fmp: empty earnings calendar for %s: %w", ticker, repository.ErrMalformedResponse)
	}

	return normalizeEarnings(raw[0]), nil
}

func normalizeEarnings(d calendarItem) *models.Earnings {
	next := "N/A"
	if d.Quarter > 0 && d.Year > 0 {
		next = fmt.Sprintf("Q%d %d", d.Quarter, d.Year)
	}
	date := d.Date
	if date == "" {
		date = "N/A"
	}
	return &models.Earnings{
		NextEarnings: next,
		EarningsDate: date,
		EPS:          d.EPS,
		Revenue:      d.Revenue,
		Source:       "Financial Modeling Prep",
	}
}
