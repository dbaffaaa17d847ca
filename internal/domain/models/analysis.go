package models

// StockQuote is the canonical per-ticker snapshot all quote providers
// normalize into. Price change semantics are provider-dependent (polygon
// measures against the session open, yahoo against the previous close, fmp
// reports its own change); Source records which provider produced the record
// and exists for observability only.
type StockQuote struct {
	Ticker             string  `json:"ticker"`
	Price              float64 `json:"price"`
	PriceChange        float64 `json:"price_change"`
	PriceChangePercent float64 `json:"price_change_percent"`
	Volume             int64   `json:"volume"`
	AvgVolume          int64   `json:"avg_volume"`
	MarketCap          int64   `json:"market_cap"`
	High               float64 `json:"high"`
	Low                float64 `json:"low"`
	Open               float64 `json:"open"`
	Source             string  `json:"source"`
}

// Bar is a single daily OHLC bar from a historical price provider.
type Bar struct {
	Timestamp int64   `json:"t"` // unix seconds
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    int64   `json:"v"`
}

// Volatility holds the 30-day volatility metrics for a ticker.
// Source is "simulated" when the record was synthesized because history was
// unavailable or too short.
type Volatility struct {
	DailyVolatility      float64 `json:"daily_volatility"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	VolatilityRating     string  `json:"volatility_rating"`
	AnalysisPeriod       string  `json:"analysis_period"`
	Source               string  `json:"source"`
}

// Earnings holds the next scheduled earnings information for a ticker.
type Earnings struct {
	NextEarnings string  `json:"next_earnings"` // "Q<q> <year>" or "N/A"
	EarningsDate string  `json:"earnings_date"` // ISO date or "N/A"
	EPS          float64 `json:"eps"`
	Revenue      float64 `json:"revenue"`
	Source       string  `json:"source"`
}

// RawData carries the three source records for debugging and traceability.
type RawData struct {
	StockData      *StockQuote `json:"stock_data,omitempty"`
	EarningsData   *Earnings   `json:"earnings_data,omitempty"`
	VolatilityData *Volatility `json:"volatility_data,omitempty"`
}

// AnalysisResponse is the top-level artifact returned to callers. It is
// constructed fresh per request and never persisted by the core; Success
// reflects only whether the quote lookup succeeded.
type AnalysisResponse struct {
	Success            bool     `json:"success"`
	Ticker             string   `json:"ticker"`
	Error              string   `json:"error,omitempty"`
	CurrentPrice       float64  `json:"current_price"`
	PriceChange        float64  `json:"price_change"`
	PriceChangePercent float64  `json:"price_change_percent"`
	MarketCap          int64    `json:"market_cap"`
	Volume             int64    `json:"volume"`
	AvgVolume          int64    `json:"avg_volume"`
	High               float64  `json:"high"`
	Low                float64  `json:"low"`
	Open               float64  `json:"open"`
	Volatility30D      float64  `json:"volatility_30d"`
	VolatilityRating   string   `json:"volatility_rating"`
	NextEarnings       string   `json:"next_earnings"`
	EarningsDate       string   `json:"earnings_date"`
	DataSource         string   `json:"data_source"`
	Timestamp          string   `json:"timestamp"`
	AnalysisSummary    string   `json:"analysis_summary"`
	RawData            *RawData `json:"raw_data,omitempty"`
}

// Sentiment is the canned sentiment record returned by the stub analyzer.
type Sentiment struct {
	Success          bool     `json:"success"`
	Ticker           string   `json:"ticker"`
	OverallSentiment string   `json:"overall_sentiment"`
	SentimentScore   float64  `json:"sentiment_score"`
	KeyPhrases       []string `json:"key_phrases"`
	RiskIndicators   []string `json:"risk_indicators"`
	Timestamp        string   `json:"timestamp"`
}
