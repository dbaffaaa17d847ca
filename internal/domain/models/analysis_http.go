package models

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

type StockDataRequest struct {
	Ticker string `json:"ticker" validate:"required,min=1,max=10"`
}

// StockDataResponse wraps a normalized quote for the POST /api/stock-data endpoint.
type StockDataResponse struct {
	Success bool        `json:"success"`
	Source  string      `json:"source,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    *StockQuote `json:"data,omitempty"`
}
