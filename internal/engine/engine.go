package engine

import (
	"context"

	"daily-trading-bot/internal/analysis"
	"daily-trading-bot/internal/interfaces"
	"daily-trading-bot/internal/logger"
	"daily-trading-bot/internal/store"
	"daily-trading-bot/internal/ta"
	"daily-trading-bot/internal/tradelog"
	"daily-trading-bot/internal/trace"
	"daily-trading-bot/internal/types"
)

// Engine runs the full per-symbol pipeline: historical bars, indicators,
// factor analyzers, vote aggregation, and order execution. Symbols are
// processed strictly one at a time; nothing is shared across them except
// the broker connection.
type Engine struct {
	cfg       *store.Config
	brk       interfaces.Broker
	sentiment *analysis.SentimentAnalyzer
	exec      *Executor
}

func New(cfg *store.Config, brk interfaces.Broker, sentiment *analysis.SentimentAnalyzer) *Engine {
	return &Engine{
		cfg:       cfg,
		brk:       brk,
		sentiment: sentiment,
		exec:      NewExecutor(brk, cfg.DryRun(), cfg.Sizing.MaxPositionPct),
	}
}

// Step evaluates one symbol end to end. It never returns an error: data
// failures and insufficient history degrade to a HOLD evaluation with an
// explanatory factor, so the run report accounts for every symbol it was
// asked about.
func (e *Engine) Step(ctx context.Context, symbol string) types.StepResult {
	ctx, span := trace.StartSpan(ctx, "engine-step")
	defer span.End()

	logger.Debug(ctx, "Generating signals", "symbol", symbol)

	bars, err := e.brk.HistoricalBars(ctx, symbol, e.cfg.LookbackDays)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch historical bars", err, "symbol", symbol)
		return holdResult(symbol, "Market data unavailable")
	}

	rows := ta.Compute(bars)
	if rows == nil {
		logger.Info(ctx, "Insufficient history for indicators", "symbol", symbol, "bars", len(bars), "required", ta.MinBars)
		return holdResult(symbol, "Insufficient history")
	}

	volume := analysis.AnalyzeVolume(rows)
	pattern := analysis.DetectPatterns(rows)
	sentiment := e.sentiment.Analyze(ctx, symbol)

	ev := Aggregate(symbol, rows, volume, pattern, sentiment, e.cfg.Signal.Threshold)

	reason := ""
	if ev.Signal != nil {
		reason = ev.Signal.Reason
	}
	logger.Decision(ctx, symbol, ev.Action, ev.BuyVotes, ev.SellVotes, reason)
	_ = tradelog.AppendDecision(tradelog.DecisionEntry{
		Symbol:    symbol,
		Action:    ev.Action,
		BuyVotes:  ev.BuyVotes,
		SellVotes: ev.SellVotes,
		Reason:    reason,
		Factors:   ev.Factors,
	})

	res := types.StepResult{Evaluation: ev}
	if ev.Signal != nil {
		res.Trades = e.exec.Execute(ctx, symbol, []types.Signal{*ev.Signal})
	}
	return res
}

func holdResult(symbol, factor string) types.StepResult {
	return types.StepResult{Evaluation: types.Evaluation{
		Symbol:  symbol,
		Action:  types.ActionHold,
		Factors: []string{factor},
	}}
}
