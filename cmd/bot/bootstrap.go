package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"daily-trading-bot/internal/analysis"
	"daily-trading-bot/internal/broker/alpaca"
	"daily-trading-bot/internal/calendar"
	"daily-trading-bot/internal/interfaces"
	"daily-trading-bot/internal/logger"
	"daily-trading-bot/internal/news"
	"daily-trading-bot/internal/store"
	"daily-trading-bot/internal/trace"
	"daily-trading-bot/internal/tradelog"
	"daily-trading-bot/internal/universe"
)

const newsTimeout = 10 * time.Second

// initializeSystem loads the environment and brings up logging and tracing.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}
	return nil
}

func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// compressOldLogs gzips old tradelog files if retention is configured.
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old logs", "error", err)
		}
	}
}

func initializeBroker(ctx context.Context, cfg *store.Config) interfaces.Broker {
	if cfg.DryRun() {
		logger.Warn(ctx, "Running in DRY_RUN mode - orders will be simulated")
	}
	if cfg.Paper {
		logger.Info(ctx, "Using Alpaca paper trading endpoint")
	}
	return alpaca.New(alpaca.Params{
		APIKey:    cfg.APIKey,
		APISecret: cfg.APISecret,
		Paper:     cfg.Paper,
	})
}

func initializeGate(brk interfaces.Broker) *calendar.Gate {
	return calendar.NewGate(brk)
}

// initializeSentiment returns the configured sentiment analyzer. With news
// scoring disabled it falls back to the neutral stub, so the pipeline shape
// is identical either way.
func initializeSentiment(cfg *store.Config) *analysis.SentimentAnalyzer {
	if !cfg.Sentiment.Enabled {
		return analysis.NewSentimentAnalyzer(nil)
	}
	scorer := news.NewScorer(news.NewScraper(newsTimeout), cfg.Sentiment.MaxHeadlines)
	return analysis.NewSentimentAnalyzer(scorer)
}

// resolveUniverse picks the day's symbols: the static config list, or a
// dynamic selection ranked from recent market data.
func resolveUniverse(ctx context.Context, cfg *store.Config, brk interfaces.Broker) []string {
	if !cfg.Universe.Dynamic {
		return cfg.Symbols
	}
	sel := universe.NewSelector(brk)
	symbols := sel.Select(ctx, universe.Params{
		Method:          cfg.Universe.Method,
		Limit:           cfg.Universe.Limit,
		StocksPerSector: cfg.Universe.StocksPerSector,
		MinVolume:       cfg.Universe.MinVolume,
		PeriodDays:      cfg.Universe.PeriodDays,
	})
	if len(symbols) == 0 {
		logger.Warn(ctx, "Dynamic selection returned nothing, using static symbols",
			"fallback", strings.Join(cfg.Symbols, ","))
		return cfg.Symbols
	}
	return symbols
}
