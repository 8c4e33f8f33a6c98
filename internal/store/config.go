package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config drives one daily run. Values come from an optional yaml file with
// environment overrides layered on top; credentials come from the
// environment only.
type Config struct {
	Mode         string   `yaml:"mode"` // DRY_RUN or LIVE
	Symbols      []string `yaml:"symbols"`
	LookbackDays int      `yaml:"lookback_days"`
	ReportDir    string   `yaml:"report_dir"`

	Signal struct {
		// Threshold is the vote count that accepts a signal. The strategy
		// is calibrated for 3; change it and the behavior is no longer the
		// documented one.
		Threshold int `yaml:"threshold"`
	} `yaml:"signal"`

	Sizing struct {
		// MaxPositionPct caps a buy at this fraction of buying power.
		MaxPositionPct float64 `yaml:"max_position_pct"`
	} `yaml:"sizing"`

	Universe struct {
		Dynamic         bool    `yaml:"dynamic"`
		Method          string  `yaml:"method"` // diversified, high_volume, top_gainers, top_losers, mixed
		Limit           int     `yaml:"limit"`
		StocksPerSector int     `yaml:"stocks_per_sector"`
		MinVolume       float64 `yaml:"min_volume"`
		PeriodDays      int     `yaml:"period_days"`
	} `yaml:"universe"`

	Sentiment struct {
		Enabled      bool `yaml:"enabled"`
		MaxHeadlines int  `yaml:"max_headlines"`
	} `yaml:"sentiment"`

	// Alpaca credentials, environment only.
	APIKey    string `yaml:"-"`
	APISecret string `yaml:"-"`
	Paper     bool   `yaml:"-"`
}

func (c *Config) DryRun() bool { return c.Mode == "DRY_RUN" }

func (c *Config) Validate() error {
	var errs []string
	if c.Mode != "DRY_RUN" && c.Mode != "LIVE" {
		errs = append(errs, fmt.Sprintf("invalid mode '%s': must be 'DRY_RUN' or 'LIVE'", c.Mode))
	}
	if c.APIKey == "" {
		errs = append(errs, "ALPACA_API_KEY or APCA_API_KEY_ID is required")
	}
	if c.APISecret == "" {
		errs = append(errs, "ALPACA_SECRET or APCA_API_SECRET_KEY is required")
	}
	if len(c.Symbols) == 0 && !c.Universe.Dynamic {
		errs = append(errs, "symbols cannot be empty unless universe.dynamic is set")
	}
	if c.Signal.Threshold <= 0 {
		errs = append(errs, fmt.Sprintf("signal.threshold must be positive, got %d", c.Signal.Threshold))
	}
	if c.Sizing.MaxPositionPct <= 0 || c.Sizing.MaxPositionPct > 1 {
		errs = append(errs, fmt.Sprintf("sizing.max_position_pct must be in (0, 1], got %.2f", c.Sizing.MaxPositionPct))
	}
	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}
	return nil
}

// LoadConfig reads the yaml file (which may be absent), applies defaults
// and environment overrides, and validates. Validation failures are fatal
// to the run: a misconfigured bot must not trade.
func LoadConfig(path string) (*Config, error) {
	var c Config
	if b, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	applyDefaults(&c)
	applyEnv(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = "LIVE"
	}
	if len(c.Symbols) == 0 {
		c.Symbols = []string{"AAPL", "GOOG", "TSLA"}
	}
	if c.LookbackDays == 0 {
		c.LookbackDays = 90
	}
	if c.ReportDir == "" {
		c.ReportDir = "reports"
	}
	if c.Signal.Threshold == 0 {
		c.Signal.Threshold = 3
	}
	if c.Sizing.MaxPositionPct == 0 {
		c.Sizing.MaxPositionPct = 0.20
	}
	if c.Universe.Method == "" {
		c.Universe.Method = "diversified"
	}
	if c.Universe.Limit == 0 {
		c.Universe.Limit = 10
	}
	if c.Universe.StocksPerSector == 0 {
		c.Universe.StocksPerSector = 2
	}
	if c.Universe.MinVolume == 0 {
		c.Universe.MinVolume = 5_000_000
	}
	if c.Universe.PeriodDays == 0 {
		c.Universe.PeriodDays = 1
	}
	if c.Sentiment.MaxHeadlines == 0 {
		c.Sentiment.MaxHeadlines = 15
	}
}

func applyEnv(c *Config) {
	c.APIKey = firstEnv("ALPACA_API_KEY", "APCA_API_KEY_ID")
	c.APISecret = firstEnv("ALPACA_SECRET", "APCA_API_SECRET_KEY")
	c.Paper = strings.ToLower(envOr("APCA_PAPER", "true")) == "true"

	if strings.ToLower(os.Getenv("DRY_RUN")) == "true" {
		c.Mode = "DRY_RUN"
	}
	if v := os.Getenv("TRADING_SYMBOLS"); v != "" {
		var syms []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				syms = append(syms, s)
			}
		}
		c.Symbols = syms
	}
	if strings.ToLower(os.Getenv("USE_DYNAMIC_STOCK_SELECTION")) == "true" {
		c.Universe.Dynamic = true
	}
	if v := os.Getenv("STOCK_SELECTION_METHOD"); v != "" {
		c.Universe.Method = v
	}
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
