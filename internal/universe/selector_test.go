package universe

import (
	"context"
	"testing"

	"daily-trading-bot/internal/types"
)

type fakeData struct {
	vols   map[string]float64 // avg daily volume per symbol
	closes map[string][]float64
	calls  int
}

func (f *fakeData) HistoricalBars(ctx context.Context, symbol string, lookbackDays int) ([]types.Bar, error) {
	f.calls++
	if closes, ok := f.closes[symbol]; ok {
		bars := make([]types.Bar, len(closes))
		for i, c := range closes {
			bars[i] = types.Bar{Close: c, Vol: f.vols[symbol]}
		}
		return bars, nil
	}
	vol, ok := f.vols[symbol]
	if !ok {
		return nil, nil
	}
	bars := make([]types.Bar, 5)
	for i := range bars {
		bars[i] = types.Bar{Close: 100, Vol: vol}
	}
	return bars, nil
}

func TestUniverseAccessors(t *testing.T) {
	sectors := Sectors()
	if len(sectors) != 8 {
		t.Fatalf("expected 8 sectors, got %d", len(sectors))
	}
	if sectors[0] != "Technology" || sectors[7] != "Materials" {
		t.Errorf("unexpected sector order %v", sectors)
	}

	all := AllSymbols()
	if len(all) != 80 {
		t.Errorf("expected 80 unique symbols, got %d", len(all))
	}

	tech := SectorSymbols("Technology")
	if len(tech) != 10 || tech[0] != "AAPL" {
		t.Errorf("unexpected Technology symbols %v", tech)
	}
	// Accessors hand out copies; mutation must not leak back.
	tech[0] = "HACKED"
	if SectorSymbols("Technology")[0] != "AAPL" {
		t.Error("SectorSymbols leaked internal state")
	}
	if SectorSymbols("Unknown") != nil {
		t.Error("unknown sector should yield nil")
	}
}

func TestSelectDiversified(t *testing.T) {
	s := NewSelector(&fakeData{})
	symbols := s.Select(context.Background(), Params{Method: MethodDiversified, Limit: 16, StocksPerSector: 2})

	if len(symbols) != 16 {
		t.Fatalf("expected 16 symbols, got %d", len(symbols))
	}
	if symbols[0] != "AAPL" || symbols[1] != "MSFT" || symbols[2] != "JPM" {
		t.Errorf("unexpected leading symbols %v", symbols[:3])
	}
	dist := Distribution(symbols)
	for sector, n := range dist {
		if n != 2 {
			t.Errorf("sector %s has %d symbols, want 2", sector, n)
		}
	}
}

func TestSelectHighVolume(t *testing.T) {
	data := &fakeData{vols: map[string]float64{
		"AAPL": 90_000_000,
		"TSLA": 120_000_000,
		"JPM":  10_000_000,
		"XOM":  2_000_000, // below the floor
	}}
	s := NewSelector(data)
	symbols := s.Select(context.Background(), Params{Method: MethodHighVolume, Limit: 3, MinVolume: 5_000_000})

	if len(symbols) != 3 {
		t.Fatalf("expected 3 symbols, got %d: %v", len(symbols), symbols)
	}
	if symbols[0] != "TSLA" || symbols[1] != "AAPL" || symbols[2] != "JPM" {
		t.Errorf("expected volume-descending order, got %v", symbols)
	}
}

func TestSelectTopMovers(t *testing.T) {
	data := &fakeData{
		vols: map[string]float64{"AAPL": 1, "MSFT": 1, "NVDA": 1},
		closes: map[string][]float64{
			"AAPL": {100, 100, 110}, // +10%
			"MSFT": {100, 100, 95},  // -5%
			"NVDA": {100, 100, 103}, // +3%
		},
	}

	s := NewSelector(data)
	gainers := s.Select(context.Background(), Params{Method: MethodTopGainers, Limit: 2, PeriodDays: 1})
	if len(gainers) != 2 || gainers[0] != "AAPL" || gainers[1] != "NVDA" {
		t.Errorf("unexpected gainers %v", gainers)
	}

	s = NewSelector(data)
	losers := s.Select(context.Background(), Params{Method: MethodTopLosers, Limit: 1, PeriodDays: 1})
	if len(losers) != 1 || losers[0] != "MSFT" {
		t.Errorf("unexpected losers %v", losers)
	}
}

func TestSelectCachesByParams(t *testing.T) {
	data := &fakeData{vols: map[string]float64{"AAPL": 90_000_000}}
	s := NewSelector(data)

	p := Params{Method: MethodHighVolume, Limit: 5, MinVolume: 5_000_000}
	first := s.Select(context.Background(), p)
	calls := data.calls
	second := s.Select(context.Background(), p)

	if data.calls != calls {
		t.Errorf("repeated selection refetched market data: %d -> %d calls", calls, data.calls)
	}
	if len(first) != len(second) {
		t.Errorf("cached result differs: %v vs %v", first, second)
	}

	// Different parameters miss the cache.
	p.Limit = 3
	s.Select(context.Background(), p)
	if data.calls == calls {
		t.Error("changed params should refetch")
	}
}

func TestSelectUnknownMethodFallsBack(t *testing.T) {
	s := NewSelector(&fakeData{})
	symbols := s.Select(context.Background(), Params{Method: "mystery", Limit: 16})
	if len(symbols) != 16 {
		t.Errorf("expected diversified fallback, got %v", symbols)
	}
}
