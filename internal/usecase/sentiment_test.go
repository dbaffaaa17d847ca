package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSentimentAnalyze(t *testing.T) {
	analyzer := NewRandomSentiment()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s := analyzer.Analyze(context.Background(), "aapl")
		require.True(t, s.Success)
		assert.Equal(t, "AAPL", s.Ticker)
		assert.NotEmpty(t, s.KeyPhrases)
		assert.NotEmpty(t, s.RiskIndicators)
		assert.NotEmpty(t, s.Timestamp)

		switch s.OverallSentiment {
		case "Positive":
			assert.Equal(t, 0.75, s.SentimentScore)
		case "Neutral":
			assert.Equal(t, 0.50, s.SentimentScore)
		case "Negative":
			assert.Equal(t, 0.25, s.SentimentScore)
		default:
			t.Fatalf("unexpected sentiment %q", s.OverallSentiment)
		}
		seen[s.OverallSentiment] = true
	}

	// 50 draws over 3 options should hit more than one outcome.
	assert.Greater(t, len(seen), 1)
}
