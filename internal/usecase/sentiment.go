package usecase

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"VolaEngine/internal/domain/models"
)

// sentimentOption is one of the canned outcomes the stub picks from.
type sentimentOption struct {
	overall        string
	score          float64
	keyPhrases     []string
	riskIndicators []string
}

var sentimentOptions = []sentimentOption{
	{
		overall:        "Positive",
		score:          0.75,
		keyPhrases:     []string{"strong earnings", "growth potential", "market leader"},
		riskIndicators: []string{"market volatility"},
	},
	{
		overall:        "Neutral",
		score:          0.50,
		keyPhrases:     []string{"stable performance", "steady outlook"},
		riskIndicators: []string{"sector competition", "regulatory uncertainty"},
	},
	{
		overall:        "Negative",
		score:          0.25,
		keyPhrases:     []string{"declining margins"},
		riskIndicators: []string{"earnings miss", "analyst downgrades", "high debt load"},
	},
}

// RandomSentiment is a placeholder analyzer that picks one of three canned
// sentiment records at random. It stands in for a real news-driven model.
type RandomSentiment struct {
	now func() time.Time
}

// NewRandomSentiment creates the stub analyzer.
func NewRandomSentiment() *RandomSentiment {
	return &RandomSentiment{now: time.Now}
}

// Analyze returns a random canned sentiment record for ticker.
func (s *RandomSentiment) Analyze(_ context.Context, ticker string) *models.Sentiment {
	opt := sentimentOptions[rand.Intn(len(sentimentOptions))]
	return &models.Sentiment{
		Success:          true,
		Ticker:           strings.ToUpper(strings.TrimSpace(ticker)),
		OverallSentiment: opt.overall,
		SentimentScore:   opt.score,
		KeyPhrases:       opt.keyPhrases,
		RiskIndicators:   opt.riskIndicators,
		Timestamp:        s.now().UTC().Format(time.RFC3339),
	}
}
