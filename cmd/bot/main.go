package main

import (
	"context"
	"os"
	"time"

	"daily-trading-bot/internal/engine"
	"daily-trading-bot/internal/logger"
	"daily-trading-bot/internal/report"
	"daily-trading-bot/internal/trace"
	"daily-trading-bot/internal/types"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := initializeSystem(); err != nil {
		return fail(ctx, "initialization failed", err)
	}
	defer func() { _ = trace.Shutdown(context.Background()) }()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return fail(ctx, "config load failed", err)
	}

	compressOldLogs(ctx)

	brk := initializeBroker(ctx, cfg)

	gate := initializeGate(brk)
	if ok, reason := gate.ShouldRun(ctx); !ok {
		logger.Info(ctx, "Skipping run", "reason", reason)
		return 0
	}

	symbols := resolveUniverse(ctx, cfg, brk)
	if len(symbols) == 0 {
		logger.Warn(ctx, "No symbols to trade")
		return 0
	}

	account, err := brk.Account(ctx)
	if err != nil {
		return fail(ctx, "account lookup failed", err)
	}
	logger.Info(ctx, "Account snapshot",
		"equity", account.Equity,
		"buying_power", account.BuyingPower,
		"dry_run", cfg.DryRun(),
	)

	eng := engine.New(cfg, brk, initializeSentiment(cfg))

	results := make([]types.StepResult, 0, len(symbols))
	for _, symbol := range symbols {
		results = append(results, eng.Step(ctx, symbol))
	}

	r := report.Build(time.Now(), account, results, cfg.Signal.Threshold, cfg.DryRun())
	if path, err := report.SaveJSON(r, cfg.ReportDir); err != nil {
		logger.ErrorWithErr(ctx, "Failed to save daily report", err)
	} else {
		logger.Info(ctx, "Daily report saved", "path", path)
	}
	if path, err := report.SaveMarkdown(r, cfg.ReportDir); err != nil {
		logger.ErrorWithErr(ctx, "Failed to save markdown summary", err)
	} else {
		logger.Info(ctx, "Markdown summary saved", "path", path)
	}
	if path, err := report.SummarizeDay(time.Now()); err != nil {
		logger.Warn(ctx, "EOD summary failed", "error", err)
	} else if path != "" {
		logger.Info(ctx, "EOD CSV written", "path", path)
	}

	logger.Info(ctx, "Run completed",
		"symbols_analyzed", r.Analysis.SymbolsAnalyzed,
		"signals_generated", r.Analysis.SignalsGenerated,
		"trades_executed", r.Summary.TradesExecuted,
	)
	return 0
}

func fail(ctx context.Context, msg string, err error) int {
	logger.ErrorWithErr(ctx, msg, err)
	return 1
}
