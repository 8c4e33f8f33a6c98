package analysis

import (
	"context"
	"fmt"

	"daily-trading-bot/internal/types"
)

// Sentiment score thresholds. Scores in (-0.3, 0.3) read as neutral.
const (
	positiveScore = 0.3
	negativeScore = -0.3
)

// Scorer produces a news sentiment score in [-1, 1] for a symbol. The
// engine only depends on this contract, so a real scorer can replace the
// stub without touching callers.
type Scorer interface {
	Score(ctx context.Context, symbol string) (float64, error)
}

// SentimentAnalyzer maps a scorer's output onto a directional opinion.
type SentimentAnalyzer struct {
	scorer Scorer
}

// NewSentimentAnalyzer wraps a scorer. A nil scorer yields the stub
// behavior: every symbol scores 0.0 and reads NEUTRAL.
func NewSentimentAnalyzer(s Scorer) *SentimentAnalyzer {
	return &SentimentAnalyzer{scorer: s}
}

// Analyze returns the sentiment opinion for a symbol. Scorer failures are
// folded into a neutral opinion rather than surfaced as errors; sentiment
// is advisory and must never sink a symbol's run.
func (a *SentimentAnalyzer) Analyze(ctx context.Context, symbol string) types.Opinion {
	if a == nil || a.scorer == nil {
		return types.Opinion{Label: types.Neutral, Reason: "Neutral sentiment (0.00)"}
	}
	score, err := a.scorer.Score(ctx, symbol)
	if err != nil {
		return types.Opinion{Label: types.Neutral, Reason: "Sentiment unavailable: " + err.Error()}
	}
	switch {
	case score > positiveScore:
		return types.Opinion{Label: types.Positive, Reason: fmt.Sprintf("Positive news sentiment (%.2f)", score)}
	case score < negativeScore:
		return types.Opinion{Label: types.Negative, Reason: fmt.Sprintf("Negative news sentiment (%.2f)", score)}
	default:
		return types.Opinion{Label: types.Neutral, Reason: fmt.Sprintf("Neutral sentiment (%.2f)", score)}
	}
}
