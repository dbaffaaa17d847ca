package polygon

import (
	"context"
	"fmt"
	"strings"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	xhttp "VolaEngine/pkg/http"
	"VolaEngine/pkg/util"
)

const sourceName = "Polygon.io"

// Client fetches previous-day aggregates from Polygon.io. The price change is
// measured against the session open, which is the closest reference the
// prev-day endpoint exposes.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates a Polygon quote client. An empty API key makes the client
// report unavailable immediately instead of issuing doomed requests.
func New(apiKey, baseURL string, http *xhttp.Client) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http,
	}
}

func (c *Client) Name() string { return sourceName }

// prevAggsResponse mirrors the v2 aggs prev-day payload.
type prevAggsResponse struct {
	Ticker  string `json:"ticker"`
	Results []struct {
		Close  float64 `json:"c"`
		Open   float64 `json:"o"`
		High   float64 `json:"h"`
		Low    float64 `json:"l"`
		Volume float64 `json:"v"`
	} `json:"results"`
}

// Quote returns the previous trading day's snapshot for ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (*models.StockQuote, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("polygon: no api key: %w", repository.ErrProviderUnavailable)
	}

	url := fmt.Sprintf("%s/v2/aggs/ticker/%s/prev", c.baseURL, ticker)
	var raw prevAggsResponse
	if err := c.http.GetJSON(ctx, url, map[string]string{"apiKey": c.apiKey}, &raw); err != nil {
		return nil, fmt.Errorf("polygon: %v: %w", err, repository.ErrProviderUnavailable)
	}

	if len(raw.Results) == 0 {
		return nil, fmt.Errorf("polygon: empty results for %s: %w", ticker, repository.ErrMalformedResponse)
	}

	return normalize(ticker, raw), nil
}

// normalize maps the raw aggregate into the canonical quote shape. Polygon
// supplies neither market cap nor average volume; those stay zero.
func normalize(ticker string, raw prevAggsResponse) *models.StockQuote {
	r := raw.Results[0]
	price := r.Close
	ref := r.Open
	change := price - ref
	changePct := 0.0
	if ref > 0 {
		changePct = change / ref * 100
	}

	return &models.StockQuote{
		Ticker:             ticker,
		Price:              price,
		PriceChange:        util.Round2(change),
		PriceChangePercent: util.Round2(changePct),
		Volume:             int64(r.Volume),
		High:               r.High,
		Low:                r.Low,
		Open:               r.Open,
		Source:             sourceName,
	}
}
