package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"VolaEngine/internal/usecase"
	"VolaEngine/pkg/logger"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
)

// QuoteStreamer pushes quote snapshots over a websocket at a fixed interval.
// Each connection serves a single ticker taken from the path.
type QuoteStreamer struct {
	quotes   *usecase.QuoteAggregator
	interval time.Duration
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewQuoteStreamer creates a streamer ticking at the given interval.
func NewQuoteStreamer(quotes *usecase.QuoteAggregator, interval time.Duration, l *logger.Logger) *QuoteStreamer {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &QuoteStreamer{
		quotes:   quotes,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: l,
	}
}

// streamEvent is one websocket frame. Failed lookups are streamed too, so a
// client watching an unknown ticker sees errors instead of silence.
type streamEvent struct {
	Ticker    string      `json:"ticker"`
	Quote     interface{} `json:"quote,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Stream upgrades the connection and pushes snapshots until the client goes
// away or the request context is cancelled.
func (s *QuoteStreamer) Stream(c echo.Context) error {
	ticker, ok := cleanTicker(c.Param("ticker"))
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "ticker must be 1-10 characters",
		})
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	s.logger.Info("quote stream opened",
		logger.String("ticker", ticker),
		logger.String("remote", conn.RemoteAddr().String()),
	)

	// Reader goroutine drains control frames and signals client disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request().Context()
	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	// First snapshot goes out immediately.
	if err := s.push(c, conn, ticker); err != nil {
		return nil
	}
	for {
		select {
		case <-done:
			s.logger.Info("quote stream closed", logger.String("ticker", ticker))
			return nil
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if err := s.push(c, conn, ticker); err != nil {
				return nil
			}
		}
	}
}

func (s *QuoteStreamer) push(c echo.Context, conn *websocket.Conn, ticker string) error {
	event := streamEvent{
		Ticker:    ticker,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	quote, err := s.quotes.GetQuote(c.Request().Context(), ticker)
	if err != nil {
		event.Error = err.Error()
	} else {
		event.Quote = quote
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(event); err != nil {
		s.logger.Warn("quote stream write failed",
			logger.String("ticker", ticker),
			logger.Error(err),
		)
		return err
	}
	return nil
}
