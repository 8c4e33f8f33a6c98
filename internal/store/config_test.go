package store

import (
	"os"
	"path/filepath"
	"testing"
)

func setCreds(t *testing.T) {
	t.Helper()
	t.Setenv("ALPACA_API_KEY", "key")
	t.Setenv("ALPACA_SECRET", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setCreds(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("config file is optional, got error: %v", err)
	}

	if cfg.Mode != "LIVE" {
		t.Errorf("expected LIVE default mode, got %q", cfg.Mode)
	}
	if len(cfg.Symbols) != 3 || cfg.Symbols[0] != "AAPL" {
		t.Errorf("unexpected default symbols %v", cfg.Symbols)
	}
	if cfg.LookbackDays != 90 {
		t.Errorf("expected 90 lookback days, got %d", cfg.LookbackDays)
	}
	if cfg.Signal.Threshold != 3 {
		t.Errorf("expected threshold 3, got %d", cfg.Signal.Threshold)
	}
	if cfg.Sizing.MaxPositionPct != 0.20 {
		t.Errorf("expected 20%% position cap, got %v", cfg.Sizing.MaxPositionPct)
	}
	if !cfg.Paper {
		t.Error("paper trading should default on")
	}
	if cfg.Sentiment.Enabled {
		t.Error("sentiment scoring should default off")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	setCreds(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
mode: DRY_RUN
symbols: [MSFT, NVDA]
lookback_days: 120
signal:
  threshold: 4
universe:
  dynamic: true
  method: high_volume
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.DryRun() {
		t.Error("expected DRY_RUN mode")
	}
	if len(cfg.Symbols) != 2 || cfg.Symbols[1] != "NVDA" {
		t.Errorf("unexpected symbols %v", cfg.Symbols)
	}
	if cfg.LookbackDays != 120 || cfg.Signal.Threshold != 4 {
		t.Errorf("yaml values not applied: %+v", cfg)
	}
	if !cfg.Universe.Dynamic || cfg.Universe.Method != "high_volume" {
		t.Errorf("universe settings not applied: %+v", cfg.Universe)
	}
}

func TestEnvOverrides(t *testing.T) {
	setCreds(t)
	t.Setenv("DRY_RUN", "true")
	t.Setenv("TRADING_SYMBOLS", " AAPL , MSFT ,")
	t.Setenv("STOCK_SELECTION_METHOD", "top_gainers")
	t.Setenv("APCA_PAPER", "false")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.DryRun() {
		t.Error("DRY_RUN env should force dry-run mode")
	}
	if len(cfg.Symbols) != 2 || cfg.Symbols[0] != "AAPL" || cfg.Symbols[1] != "MSFT" {
		t.Errorf("TRADING_SYMBOLS not parsed, got %v", cfg.Symbols)
	}
	if cfg.Universe.Method != "top_gainers" {
		t.Errorf("selection method override missed, got %q", cfg.Universe.Method)
	}
	if cfg.Paper {
		t.Error("APCA_PAPER=false should disable paper mode")
	}
}

func TestAlternateCredentialNames(t *testing.T) {
	t.Setenv("APCA_API_KEY_ID", "alt-key")
	t.Setenv("APCA_API_SECRET_KEY", "alt-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKey != "alt-key" || cfg.APISecret != "alt-secret" {
		t.Errorf("APCA_* fallbacks not honored: %q/%q", cfg.APIKey, cfg.APISecret)
	}
}

func TestValidateRejectsMissingCredentials(t *testing.T) {
	for _, k := range []string{"ALPACA_API_KEY", "APCA_API_KEY_ID", "ALPACA_SECRET", "APCA_API_SECRET_KEY"} {
		t.Setenv(k, "")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected validation failure without credentials")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	setCreds(t)

	cfg := &Config{Mode: "YOLO", Symbols: []string{"AAPL"}, APIKey: "k", APISecret: "s"}
	cfg.Signal.Threshold = 3
	cfg.Sizing.MaxPositionPct = 0.2
	if err := cfg.Validate(); err == nil {
		t.Error("expected rejection of unknown mode")
	}

	cfg.Mode = "LIVE"
	cfg.Sizing.MaxPositionPct = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected rejection of position cap above 1")
	}

	cfg.Sizing.MaxPositionPct = 0.2
	cfg.Symbols = nil
	if err := cfg.Validate(); err == nil {
		t.Error("expected rejection of empty symbols without dynamic selection")
	}
	cfg.Universe.Dynamic = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("dynamic selection should satisfy the symbol requirement: %v", err)
	}
}
