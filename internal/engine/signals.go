package engine

import (
	"fmt"
	"strings"

	"daily-trading-bot/internal/ta"
	"daily-trading-bot/internal/types"
)

// RSI bands for the momentum checks.
const (
	rsiOversold   = 30.0
	rsiOverbought = 70.0
)

// DefaultThreshold is the vote count that accepts a directional signal.
const DefaultThreshold = 3

// tally accumulates independent directional votes. Each check contributes
// at most one vote to one side; a symbol can hold votes on both sides at
// once.
type tally struct {
	buy, sell   int
	voteReasons []string
	factors     []string
}

func (t *tally) voteBuy(reason string) {
	t.buy++
	t.voteReasons = append(t.voteReasons, reason)
	t.factors = append(t.factors, reason)
}

func (t *tally) voteSell(reason string) {
	t.sell++
	t.voteReasons = append(t.voteReasons, reason)
	t.factors = append(t.factors, reason)
}

// note records a non-voting justification so HOLD rows still explain
// themselves in the report.
func (t *tally) note(reason string) {
	if reason != "" {
		t.factors = append(t.factors, reason)
	}
}

// Aggregate folds the indicator crossover checks and the three analyzer
// opinions into one evaluation. Every check's precondition is that all
// referenced indicator values are defined; undefined values never vote.
//
// buy >= threshold wins before sell is considered, so when both sides
// clear the threshold simultaneously the decision is BUY.
func Aggregate(symbol string, rows []ta.Row, volume, pattern, sentiment types.Opinion, threshold int) types.Evaluation {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	ev := types.Evaluation{Symbol: symbol, Action: types.ActionHold}
	latest := ta.Latest(rows)
	prev := ta.Prev(rows)
	if latest == nil || prev == nil {
		return ev
	}

	var t tally

	if latest.RSI.Defined() {
		switch {
		case latest.RSI.F < rsiOversold:
			t.voteBuy(fmt.Sprintf("RSI oversold (%.1f)", latest.RSI.F))
		case latest.RSI.F > rsiOverbought:
			t.voteSell(fmt.Sprintf("RSI overbought (%.1f)", latest.RSI.F))
		}
	}

	if prev.MACD.Defined() && prev.MACDSignal.Defined() && latest.MACD.Defined() && latest.MACDSignal.Defined() {
		switch {
		case prev.MACD.F < prev.MACDSignal.F && latest.MACD.F > latest.MACDSignal.F:
			t.voteBuy("MACD bullish crossover")
		case prev.MACD.F > prev.MACDSignal.F && latest.MACD.F < latest.MACDSignal.F:
			t.voteSell("MACD bearish crossover")
		}
	}

	if prev.SMA20.Defined() && prev.SMA50.Defined() && latest.SMA20.Defined() && latest.SMA50.Defined() {
		switch {
		case prev.SMA20.F < prev.SMA50.F && latest.SMA20.F > latest.SMA50.F:
			t.voteBuy("Golden cross")
		case prev.SMA20.F > prev.SMA50.F && latest.SMA20.F < latest.SMA50.F:
			t.voteSell("Death cross")
		}
	}

	if latest.SMA20.Defined() && latest.SMA50.Defined() {
		close := latest.Bar.Close
		switch {
		case close > latest.SMA20.F && latest.SMA20.F > latest.SMA50.F:
			t.voteBuy("Price above rising MAs")
		case close < latest.SMA20.F && latest.SMA20.F < latest.SMA50.F:
			t.voteSell("Price below falling MAs")
		}
	}

	opinion(&t, volume, types.Bullish, types.Bearish)
	opinion(&t, pattern, types.Bullish, types.Bearish)
	opinion(&t, sentiment, types.Positive, types.Negative)

	ev.BuyVotes = t.buy
	ev.SellVotes = t.sell
	ev.Factors = t.factors

	if t.buy >= threshold {
		ev.Action = types.ActionBuy
		ev.Signal = &types.Signal{Action: types.ActionBuy, Reason: "BUY: " + strings.Join(t.voteReasons, ", ")}
	} else if t.sell >= threshold {
		ev.Action = types.ActionSell
		ev.Signal = &types.Signal{Action: types.ActionSell, Reason: "SELL: " + strings.Join(t.voteReasons, ", ")}
	}
	return ev
}

func opinion(t *tally, op types.Opinion, up, down string) {
	switch op.Label {
	case up:
		t.voteBuy(op.Reason)
	case down:
		t.voteSell(op.Reason)
	case types.Neutral:
		t.note(op.Reason)
	}
}
