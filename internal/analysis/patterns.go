package analysis

import (
	"daily-trading-bot/internal/ta"
	"daily-trading-bot/internal/types"
)

const (
	patternWindow  = 10
	peakTolerance  = 0.02 // latest two peaks/troughs within 2% of each other
	trendThreshold = 0.05 // close vs. 10-bar mean
)

// DetectPatterns examines the trailing 10-bar window for double tops and
// bottoms, falling back to a simple trend check. Double top/bottom are
// evaluated first and short-circuit the trend test.
func DetectPatterns(rows []ta.Row) types.Opinion {
	if len(rows) < patternWindow {
		return types.Opinion{}
	}
	window := rows[len(rows)-patternWindow:]

	highs := make([]float64, patternWindow)
	lows := make([]float64, patternWindow)
	closes := make([]float64, patternWindow)
	for i, r := range window {
		highs[i] = r.Bar.High
		lows[i] = r.Bar.Low
		closes[i] = r.Bar.Close
	}
	latestClose := closes[patternWindow-1]

	if peaks := localMaxima(highs); len(peaks) >= 2 {
		a, b := peaks[len(peaks)-2], peaks[len(peaks)-1]
		if within(a, b, peakTolerance) && latestClose < minOf(highs[patternWindow-3:]) {
			return types.Opinion{Label: types.Bearish, Reason: "Double top pattern"}
		}
	}
	if troughs := localMinima(lows); len(troughs) >= 2 {
		a, b := troughs[len(troughs)-2], troughs[len(troughs)-1]
		if within(a, b, peakTolerance) && latestClose > maxOf(lows[patternWindow-3:]) {
			return types.Opinion{Label: types.Bullish, Reason: "Double bottom pattern"}
		}
	}

	mean := 0.0
	for _, c := range closes {
		mean += c
	}
	mean /= float64(patternWindow)
	switch {
	case latestClose > mean*(1+trendThreshold):
		return types.Opinion{Label: types.Bullish, Reason: "Strong upward trend"}
	case latestClose < mean*(1-trendThreshold):
		return types.Opinion{Label: types.Bearish, Reason: "Strong downward trend"}
	default:
		return types.Opinion{Label: types.Neutral, Reason: "No clear pattern"}
	}
}

// localMaxima returns points strictly greater than both neighbors, oldest
// first. Window endpoints have one neighbor only and never qualify.
func localMaxima(vals []float64) []float64 {
	var out []float64
	for i := 1; i < len(vals)-1; i++ {
		if vals[i] > vals[i-1] && vals[i] > vals[i+1] {
			out = append(out, vals[i])
		}
	}
	return out
}

func localMinima(vals []float64) []float64 {
	var out []float64
	for i := 1; i < len(vals)-1; i++ {
		if vals[i] < vals[i-1] && vals[i] < vals[i+1] {
			out = append(out, vals[i])
		}
	}
	return out
}

// within reports whether a and b differ by less than tol relative to b,
// the more recent of the two.
func within(a, b, tol float64) bool {
	if b == 0 {
		return false
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return d/b < tol
}

func minOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vals []float64) float64 {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
