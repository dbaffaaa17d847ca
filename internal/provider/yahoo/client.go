package yahoo

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	"VolaEngine/internal/service/ratelimit"
	xhttp "VolaEngine/pkg/http"
	"VolaEngine/pkg/util"
)

const sourceName = "yfinance"

// Client fetches quotes and daily history from the Yahoo Finance chart API.
// Yahoo needs no API key but is scrape-sensitive, so each request waits a
// randomized politeness delay and passes a token-bucket limiter first. The
// price change is measured against the previous trading day's close.
type Client struct {
	baseURL  string
	http     *xhttp.Client
	limiter  *ratelimit.Limiter
	minDelay time.Duration
	maxDelay time.Duration
}

// New creates a Yahoo chart client.
func New(baseURL string, http *xhttp.Client, maxRPS float64, minDelay, maxDelay time.Duration) *Client {
	if maxRPS <= 0 {
		maxRPS = 2
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     http,
		limiter:  ratelimit.New(maxRPS, maxRPS),
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

func (c *Client) Name() string { return sourceName }

// chartResponse mirrors the v8 chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Quote derives a snapshot from the last two daily bars of a 5-day chart.
func (c *Client) Quote(ctx context.Context, ticker string) (*models.StockQuote, error) {
	bars, err := c.fetchBars(ctx, ticker, "5d")
	if err != nil {
		return nil, err
	}
	if len(bars) < 2 {
		return nil, fmt.Errorf("yahoo: not enough bars for %s: %w", ticker, repository.ErrMalformedResponse)
	}

	last := bars[len(bars)-1]
	prev := bars[len(bars)-2]
	change := last.Close - prev.Close
	changePct := 0.0
	if prev.Close > 0 {
		changePct = change / prev.Close * 100
	}

	return &models.StockQuote{
		Ticker:             ticker,
		Price:              last.Close,
		PriceChange:        util.Round2(change),
		PriceChangePercent: util.Round2(changePct),
		Volume:             last.Volume,
		High:               last.High,
		Low:                last.Low,
		Open:               last.Open,
		Source:             sourceName,
	}, nil
}

// DailyBars returns up to days calendar days of daily OHLC bars.
func (c *Client) DailyBars(ctx context.Context, ticker string, days int) ([]models.Bar, error) {
	return c.fetchBars(ctx, ticker, rangeForDays(days))
}

func (c *Client) fetchBars(ctx context.Context, ticker, rng string) ([]models.Bar, error) {
	if !c.limiter.Allow() {
		return nil, fmt.Errorf("yahoo: rate limited: %w", repository.ErrProviderUnavailable)
	}
	if err := c.politenessDelay(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, ticker)
	var raw chartResponse
	err := c.http.GetJSON(ctx, url, map[string]string{"range": rng, "interval": "1d"}, &raw)
	if err != nil {
		return nil, fmt.Errorf("yahoo: %v: %w", err, repository.ErrProviderUnavailable)
	}

	return normalizeBars(ticker, raw)
}

// normalizeBars maps the columnar chart payload into bars, skipping null
// slots (Yahoo pads holidays with nulls, which decode to zero closes).
func normalizeBars(ticker string, raw chartResponse) ([]models.Bar, error) {
	if raw.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo: %s for %s: %w", raw.Chart.Error.Code, ticker, repository.ErrProviderUnavailable)
	}
	if len(raw.Chart.Result) == 0 || len(raw.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: empty chart for %s: %w", ticker, repository.ErrMalformedResponse)
	}

	res := raw.Chart.Result[0]
	q := res.Indicators.Quote[0]
	bars := make([]models.Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(q.Close) || q.Close[i] <= 0 {
			continue
		}
		bar := models.Bar{Timestamp: ts, Close: q.Close[i]}
		if i < len(q.Open) {
			bar.Open = q.Open[i]
		}
		if i < len(q.High) {
			bar.High = q.High[i]
		}
		if i < len(q.Low) {
			bar.Low = q.Low[i]
		}
		if i < len(q.Volume) {
			bar.Volume = q.Volume[i]
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// politenessDelay sleeps a random duration in [minDelay, maxDelay] unless the
// context is cancelled first.
func (c *Client) politenessDelay(ctx context.Context) error {
	if c.maxDelay <= 0 {
		return nil
	}
	delay := c.minDelay
	if span := c.maxDelay - c.minDelay; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("yahoo: %v: %w", ctx.Err(), repository.ErrProviderUnavailable)
	case <-timer.C:
		return nil
	}
}

func rangeForDays(days int) string {
	switch {
	case days <= 5:
		return "5d"
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	default:
		return "1y"
	}
}
