package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"VolaEngine/internal/domain/models"
	"VolaEngine/internal/domain/repository"
	"VolaEngine/internal/usecase"
	xhttp "VolaEngine/pkg/http"
	"VolaEngine/pkg/logger"
)

const maxTickerLen = 10

// AnalysisHandler exposes the analysis API over HTTP. Analysis endpoints
// always answer 200 with a success flag in the body; only malformed requests
// get a 4xx.
type AnalysisHandler struct {
	analyzer  *usecase.Analyzer
	quotes    *usecase.QuoteAggregator
	earnings  *usecase.EarningsLookup
	sentiment repository.SentimentAnalyzer
	streamer  *QuoteStreamer
	logger    *logger.Logger
}

// NewAnalysisHandler creates the handler.
func NewAnalysisHandler(
	analyzer *usecase.Analyzer,
	quotes *usecase.QuoteAggregator,
	earnings *usecase.EarningsLookup,
	sentiment repository.SentimentAnalyzer,
	streamer *QuoteStreamer,
	l *logger.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:  analyzer,
		quotes:    quotes,
		earnings:  earnings,
		sentiment: sentiment,
		streamer:  streamer,
		logger:    l,
	}
}

// RegisterRoutes wires all endpoints onto the Echo instance.
func (h *AnalysisHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/analyze/:ticker", h.Analyze)

	g := e.Group("/api")
	g.GET("/analyze/:ticker", h.Analyze)
	g.POST("/stock-data", h.StockData)
	g.GET("/earnings/:ticker", h.Earnings)
	g.GET("/sentiment/:ticker", h.Sentiment)

	if h.streamer != nil {
		e.GET("/ws/quotes/:ticker", h.streamer.Stream)
	}
}

// Root describes the service and its endpoints.
func (h *AnalysisHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"service": "vola-engine",
		"status":  "running",
		"endpoints": []string{
			"/health",
			"/analyze/{ticker}",
			"/api/analyze/{ticker}",
			"/api/stock-data",
			"/api/earnings/{ticker}",
			"/api/sentiment/{ticker}",
			"/ws/quotes/{ticker}",
		},
	})
}

// Health reports liveness.
func (h *AnalysisHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Analyze runs the full analysis for the path ticker. Data failures come back
// as a 200 with success=false so clients handle one response shape.
func (h *AnalysisHandler) Analyze(c echo.Context) error {
	ticker, ok := cleanTicker(c.Param("ticker"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "ticker must be 1-10 characters",
		})
	}
	return c.JSON(http.StatusOK, h.analyzer.Analyze(c.Request().Context(), ticker))
}

// StockData returns a raw quote snapshot for the requested ticker.
func (h *AnalysisHandler) StockData(c echo.Context) error {
	req := new(models.StockDataRequest)
	if errs := xhttp.ReadAndValidateRequest(c, req); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"errors":  errs,
		})
	}

	quote, err := h.quotes.GetQuote(c.Request().Context(), req.Ticker)
	if err != nil {
		return c.JSON(http.StatusOK, models.StockDataResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(http.StatusOK, models.StockDataResponse{
		Success: true,
		Source:  quote.Source,
		Data:    quote,
	})
}

// Earnings returns the next scheduled earnings event. Never fails; upstream
// outages yield a simulated estimate.
func (h *AnalysisHandler) Earnings(c echo.Context) error {
	ticker, ok := cleanTicker(c.Param("ticker"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "ticker must be 1-10 characters",
		})
	}
	return c.JSON(http.StatusOK, h.earnings.GetEarnings(c.Request().Context(), ticker))
}

// Sentiment returns the stubbed sentiment record.
func (h *AnalysisHandler) Sentiment(c echo.Context) error {
	ticker, ok := cleanTicker(c.Param("ticker"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "ticker must be 1-10 characters",
		})
	}
	return c.JSON(http.StatusOK, h.sentiment.Analyze(c.Request().Context(), ticker))
}

// cleanTicker normalizes a path ticker and rejects empty or oversized values.
func cleanTicker(raw string) (string, bool) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" || len(t) > maxTickerLen {
		return "", false
	}
	return t, true
}
