package analysis

import (
	"testing"

	"daily-trading-bot/internal/ta"
	"daily-trading-bot/internal/types"
)

func patternRows(highs, lows, closes []float64) []ta.Row {
	rows := make([]ta.Row, len(highs))
	for i := range rows {
		rows[i].Bar = types.Bar{High: highs[i], Low: lows[i], Close: closes[i]}
	}
	return rows
}

func flat(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestDetectPatternsTooFewRows(t *testing.T) {
	rows := patternRows(flat(9, 100), flat(9, 99), flat(9, 100))
	if op := DetectPatterns(rows); op.Label != "" {
		t.Errorf("expected zero opinion under 10 rows, got %q", op.Label)
	}
}

func TestDetectPatternsDoubleTop(t *testing.T) {
	highs := []float64{100, 110, 100, 100, 109, 100, 100, 100, 100, 100}
	closes := flat(10, 100)
	closes[9] = 95 // broke below the recent highs
	op := DetectPatterns(patternRows(highs, flat(10, 94), closes))
	if op.Label != types.Bearish {
		t.Fatalf("expected BEARISH, got %q", op.Label)
	}
	if op.Reason != "Double top pattern" {
		t.Errorf("unexpected reason %q", op.Reason)
	}
}

func TestDetectPatternsDoubleBottom(t *testing.T) {
	lows := []float64{100, 90, 100, 100, 90.5, 100, 100, 100, 100, 100}
	closes := flat(10, 100)
	closes[9] = 105 // broke above the recent lows
	op := DetectPatterns(patternRows(flat(10, 106), lows, closes))
	if op.Label != types.Bullish {
		t.Fatalf("expected BULLISH, got %q", op.Label)
	}
	if op.Reason != "Double bottom pattern" {
		t.Errorf("unexpected reason %q", op.Reason)
	}
}

// Peaks further than 2% apart must not read as a double top.
func TestDetectPatternsPeaksOutsideTolerance(t *testing.T) {
	highs := []float64{100, 120, 100, 100, 109, 100, 100, 100, 100, 100}
	closes := flat(10, 100)
	closes[9] = 95
	op := DetectPatterns(patternRows(highs, flat(10, 94), closes))
	if op.Reason == "Double top pattern" {
		t.Error("peaks 10% apart should not form a double top")
	}
}

func TestDetectPatternsUptrend(t *testing.T) {
	closes := make([]float64, 10)
	for i := range closes {
		closes[i] = 100 + float64(i)*2
	}
	op := DetectPatterns(patternRows(closes, closes, closes))
	if op.Label != types.Bullish || op.Reason != "Strong upward trend" {
		t.Errorf("expected upward trend, got %q/%q", op.Label, op.Reason)
	}
}

func TestDetectPatternsDowntrend(t *testing.T) {
	closes := make([]float64, 10)
	for i := range closes {
		closes[i] = 120 - float64(i)*2
	}
	op := DetectPatterns(patternRows(closes, closes, closes))
	if op.Label != types.Bearish || op.Reason != "Strong downward trend" {
		t.Errorf("expected downward trend, got %q/%q", op.Label, op.Reason)
	}
}

func TestDetectPatternsNoClearPattern(t *testing.T) {
	rows := patternRows(flat(10, 101), flat(10, 99), flat(10, 100))
	op := DetectPatterns(rows)
	if op.Label != types.Neutral || op.Reason != "No clear pattern" {
		t.Errorf("expected neutral, got %q/%q", op.Label, op.Reason)
	}
}
