// Package report assembles the daily run report: a JSON document covering
// every analyzed symbol, a markdown summary for quick viewing, and an
// end-of-day CSV aggregation of executed trades.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"daily-trading-bot/internal/types"
)

// AccountSummary is the account snapshot embedded in the daily report.
type AccountSummary struct {
	Equity      float64 `json:"equity"`
	BuyingPower float64 `json:"buying_power"`
	Cash        float64 `json:"cash"`
}

// Analysis aggregates vote counts across the whole run.
type Analysis struct {
	SymbolsAnalyzed    int `json:"symbols_analyzed"`
	SymbolsWithSignals int `json:"symbols_with_signals"`
	TotalBuySignals    int `json:"total_buy_signals"`
	TotalSellSignals   int `json:"total_sell_signals"`
	SignalsGenerated   int `json:"signals_generated"`
}

// Summary closes out the report with execution totals.
type Summary struct {
	TradesExecuted  int    `json:"trades_executed"`
	SignalThreshold string `json:"signal_threshold"`
	DryRun          bool   `json:"dry_run"`
}

// Report is the full daily report document.
type Report struct {
	Date      string              `json:"date"`
	Timestamp string              `json:"timestamp"`
	Account   AccountSummary      `json:"account"`
	Analysis  Analysis            `json:"analysis"`
	Symbols   []types.Evaluation  `json:"symbols"`
	Trades    []types.OrderResult `json:"trades"`
	Summary   Summary             `json:"summary"`
}

// Build assembles the report from the run's per-symbol results. Every
// analyzed symbol appears in Symbols, HOLDs included.
func Build(now time.Time, account types.Account, results []types.StepResult, threshold int, dryRun bool) Report {
	r := Report{
		Date:      now.Format("2006-01-02"),
		Timestamp: now.Format(time.RFC3339),
		Account: AccountSummary{
			Equity:      account.Equity,
			BuyingPower: account.BuyingPower,
			Cash:        account.Cash,
		},
		Symbols: make([]types.Evaluation, 0, len(results)),
		Trades:  []types.OrderResult{},
		Summary: Summary{
			SignalThreshold: fmt.Sprintf(">=%d indicators required", threshold),
			DryRun:          dryRun,
		},
	}
	for _, res := range results {
		ev := res.Evaluation
		r.Symbols = append(r.Symbols, ev)
		r.Analysis.SymbolsAnalyzed++
		r.Analysis.TotalBuySignals += ev.BuyVotes
		r.Analysis.TotalSellSignals += ev.SellVotes
		if ev.Signal != nil {
			r.Analysis.SymbolsWithSignals++
			r.Analysis.SignalsGenerated++
		}
		r.Trades = append(r.Trades, res.Trades...)
	}
	r.Summary.TradesExecuted = len(r.Trades)
	return r
}

// SaveJSON writes the report as daily_report_YYYYMMDD.json under dir.
func SaveJSON(r Report, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return "", fmt.Errorf("bad report date %q: %w", r.Date, err)
	}
	path := filepath.Join(dir, "daily_report_"+date.Format("20060102")+".json")
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Markdown renders a quick-view summary of the report.
func Markdown(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Daily Trading Report - %s\n\n", r.Date)

	b.WriteString("## Account Summary\n\n")
	fmt.Fprintf(&b, "- **Equity**: $%.2f\n", r.Account.Equity)
	fmt.Fprintf(&b, "- **Buying Power**: $%.2f\n", r.Account.BuyingPower)
	fmt.Fprintf(&b, "- **Cash**: $%.2f\n\n", r.Account.Cash)

	b.WriteString("## Trading Activity\n\n")
	fmt.Fprintf(&b, "- **Symbols Analyzed**: %d\n", r.Analysis.SymbolsAnalyzed)
	fmt.Fprintf(&b, "- **Buy Signals**: %d\n", r.Analysis.TotalBuySignals)
	fmt.Fprintf(&b, "- **Sell Signals**: %d\n", r.Analysis.TotalSellSignals)
	fmt.Fprintf(&b, "- **Signals Generated**: %d\n", r.Analysis.SignalsGenerated)
	fmt.Fprintf(&b, "- **Trades Executed**: %d\n\n", r.Summary.TradesExecuted)

	b.WriteString("## Symbol Analysis\n\n")
	b.WriteString("| Symbol | Action | Buy Indicators | Sell Indicators |\n")
	b.WriteString("|--------|--------|----------------|-----------------|\n")
	for _, s := range r.Symbols {
		fmt.Fprintf(&b, "| %s | %s | %d | %d |\n", s.Symbol, s.Action, s.BuyVotes, s.SellVotes)
	}
	b.WriteString("\n")

	if len(r.Trades) > 0 {
		b.WriteString("## Trades Executed\n\n")
		for _, t := range r.Trades {
			fmt.Fprintf(&b, "- **%s** %d shares of %s at $%.2f (%s)\n", t.Action, t.Shares, t.Symbol, t.Price, t.Status)
		}
	}
	return b.String()
}

// SaveMarkdown writes the markdown summary next to the JSON report.
func SaveMarkdown(r Report, dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return "", fmt.Errorf("bad report date %q: %w", r.Date, err)
	}
	path := filepath.Join(dir, "daily_summary_"+date.Format("20060102")+".md")
	if err := os.WriteFile(path, []byte(Markdown(r)), 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}
