package news

import (
	"context"
	"fmt"
	"strings"

	"daily-trading-bot/internal/logger"
)

var positiveWords = []string{
	"beat", "beats", "surge", "surges", "soar", "soars", "rally", "rallies",
	"upgrade", "upgraded", "record", "growth", "profit", "gain", "gains",
	"strong", "bullish", "outperform", "buyback", "dividend",
}

var negativeWords = []string{
	"miss", "misses", "plunge", "plunges", "drop", "drops", "fall", "falls",
	"downgrade", "downgraded", "loss", "losses", "lawsuit", "probe", "recall",
	"weak", "bearish", "underperform", "layoff", "layoffs", "bankruptcy",
}

// Scorer derives a sentiment score in [-1, 1] from headline keywords.
// It satisfies the analysis package's scorer contract.
type Scorer struct {
	scraper      *Scraper
	maxHeadlines int
}

func NewScorer(scraper *Scraper, maxHeadlines int) *Scorer {
	if maxHeadlines <= 0 {
		maxHeadlines = 15
	}
	return &Scorer{scraper: scraper, maxHeadlines: maxHeadlines}
}

// Score fetches recent headlines and nets positive against negative keyword
// hits. No headlines means no opinion, scored as zero.
func (s *Scorer) Score(ctx context.Context, symbol string) (float64, error) {
	headlines, err := s.scraper.Fetch(ctx, symbol, s.maxHeadlines)
	if err != nil {
		return 0, fmt.Errorf("fetch headlines %s: %w", symbol, err)
	}
	if len(headlines) == 0 {
		return 0, nil
	}

	var score float64
	for _, h := range headlines {
		score += scoreHeadline(h.Title)
	}
	score /= float64(len(headlines))

	logger.Debug(ctx, "headline sentiment scored", "symbol", symbol, "headlines", len(headlines), "score", score)
	return clamp(score), nil
}

func scoreHeadline(title string) float64 {
	words := strings.Fields(strings.ToLower(title))
	var score float64
	for _, w := range words {
		w = strings.Trim(w, ".,:;!?'\"()")
		if contains(positiveWords, w) {
			score += 0.5
		} else if contains(negativeWords, w) {
			score -= 0.5
		}
	}
	return score
}

func contains(list []string, word string) bool {
	for _, v := range list {
		if v == word {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
