package analysis

import (
	"fmt"

	"daily-trading-bot/internal/ta"
	"daily-trading-bot/internal/types"
)

// Thresholds for classifying the latest volume ratio.
const (
	highVolumeRatio = 1.5
	lowVolumeRatio  = 0.5
)

// AnalyzeVolume classifies the latest bar by its volume relative to the
// 20-day average. It needs at least two rows and a defined ratio; anything
// less yields the zero Opinion, never an error.
func AnalyzeVolume(rows []ta.Row) types.Opinion {
	if len(rows) < 2 {
		return types.Opinion{}
	}
	latest := ta.Latest(rows)
	prev := ta.Prev(rows)
	if !latest.VolRatio.Defined() {
		return types.Opinion{}
	}

	r := latest.VolRatio.F
	switch {
	case r > highVolumeRatio && latest.Bar.Close > prev.Bar.Close:
		return types.Opinion{Label: types.Bullish, Reason: "High volume breakout"}
	case r > highVolumeRatio && latest.Bar.Close < prev.Bar.Close:
		return types.Opinion{Label: types.Bearish, Reason: "High volume selling"}
	case r < lowVolumeRatio:
		return types.Opinion{Label: types.Neutral, Reason: fmt.Sprintf("Low volume (%.2f)", r)}
	default:
		return types.Opinion{Label: types.Neutral, Reason: "Normal volume"}
	}
}
