package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"daily-trading-bot/internal/tradelog"
	"daily-trading-bot/internal/types"
)

func sampleResults() []types.StepResult {
	buy := types.Signal{Action: types.ActionBuy, Reason: "BUY: RSI oversold (28.5)"}
	return []types.StepResult{
		{
			Evaluation: types.Evaluation{
				Symbol: "AAPL", Action: types.ActionBuy,
				BuyVotes: 4, SellVotes: 1,
				Factors: []string{"RSI oversold (28.5)", "MACD bullish crossover"},
				Signal:  &buy,
			},
			Trades: []types.OrderResult{{
				Symbol: "AAPL", Action: types.ActionBuy, Shares: 10, Price: 175.50, Status: types.StatusSubmitted, OrderID: "o-1",
			}},
		},
		{
			Evaluation: types.Evaluation{
				Symbol: "GOOG", Action: types.ActionHold,
				BuyVotes: 2, SellVotes: 2,
				Factors: []string{"Normal volume", "No clear pattern"},
			},
		},
	}
}

func TestBuildAggregates(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)
	account := types.Account{Equity: 10000, BuyingPower: 5000, Cash: 2000}
	r := Build(now, account, sampleResults(), 3, false)

	if r.Date != "2026-08-31" {
		t.Errorf("unexpected date %q", r.Date)
	}
	if r.Analysis.SymbolsAnalyzed != 2 {
		t.Errorf("expected 2 symbols analyzed, got %d", r.Analysis.SymbolsAnalyzed)
	}
	if r.Analysis.SymbolsWithSignals != 1 || r.Analysis.SignalsGenerated != 1 {
		t.Errorf("expected 1 signal, got %+v", r.Analysis)
	}
	if r.Analysis.TotalBuySignals != 6 || r.Analysis.TotalSellSignals != 3 {
		t.Errorf("vote totals wrong: %+v", r.Analysis)
	}
	if r.Summary.TradesExecuted != 1 {
		t.Errorf("expected 1 trade, got %d", r.Summary.TradesExecuted)
	}
	// HOLD symbols stay in the report.
	if len(r.Symbols) != 2 || r.Symbols[1].Symbol != "GOOG" {
		t.Errorf("expected every symbol in the report, got %+v", r.Symbols)
	}
}

func TestSaveJSONShape(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)
	r := Build(now, types.Account{Equity: 10000}, sampleResults(), 3, true)

	path, err := SaveJSON(r, dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "daily_report_20260831.json" {
		t.Errorf("unexpected filename %q", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatal(err)
	}

	analysis, ok := doc["analysis"].(map[string]any)
	if !ok {
		t.Fatal("missing analysis block")
	}
	for _, key := range []string{"symbols_analyzed", "symbols_with_signals", "total_buy_signals", "total_sell_signals", "signals_generated"} {
		if _, ok := analysis[key]; !ok {
			t.Errorf("analysis missing key %q", key)
		}
	}

	symbols, ok := doc["symbols"].([]any)
	if !ok || len(symbols) != 2 {
		t.Fatalf("expected 2 symbol entries")
	}
	first := symbols[0].(map[string]any)
	for _, key := range []string{"symbol", "action", "buy_indicators", "sell_indicators", "factors"} {
		if _, ok := first[key]; !ok {
			t.Errorf("symbol entry missing key %q", key)
		}
	}
	// The internal signal pointer never serializes.
	if _, ok := first["Signal"]; ok {
		t.Error("signal leaked into the report JSON")
	}
}

func TestMarkdownSummary(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)
	r := Build(now, types.Account{Equity: 10000, BuyingPower: 5000, Cash: 2000}, sampleResults(), 3, false)

	md := Markdown(r)
	for _, want := range []string{
		"# Daily Trading Report - 2026-08-31",
		"**Equity**: $10000.00",
		"| AAPL | BUY | 4 | 1 |",
		"| GOOG | HOLD | 2 | 2 |",
		"**BUY** 10 shares of AAPL at $175.50",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestSummarizeDay(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TRADER_LOG_DIR", dir)

	day := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	lines := []tradelog.Entry{
		{Symbol: "AAPL", Action: types.ActionBuy, Shares: 10, Price: 100, Status: types.StatusSubmitted},
		{Symbol: "AAPL", Action: types.ActionSell, Shares: 10, Price: 110, Status: types.StatusSubmitted},
		{Symbol: "MSFT", Action: types.ActionBuy, Shares: 5, Price: 300, Status: types.StatusFailed}, // ignored
	}
	f, err := os.Create(filepath.Join(dir, day.Format("2006-01-02")+".txt"))
	if err != nil {
		t.Fatal(err)
	}
	enc := json.NewEncoder(f)
	for _, e := range lines {
		if err := enc.Encode(e); err != nil {
			t.Fatal(err)
		}
	}
	f.Close()

	path, err := SummarizeDay(day)
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("expected a CSV path")
	}

	in, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	recs, err := csv.NewReader(in).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected header plus one symbol row, got %d rows", len(recs))
	}
	row := recs[1]
	if row[0] != "AAPL" || row[1] != "10" || row[3] != "10" {
		t.Errorf("unexpected aggregation row %v", row)
	}
	// 10 shares bought at 100 and sold at 110 realizes 100.
	if row[5] != "100.00" {
		t.Errorf("expected realized PnL 100.00, got %q", row[5])
	}
}

func TestSummarizeDayNoTrades(t *testing.T) {
	t.Setenv("TRADER_LOG_DIR", t.TempDir())
	path, err := SummarizeDay(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("expected empty path with no trade file, got %q", path)
	}
}
