// Package universe selects the day's trading symbols from a fixed pool of
// liquid large-cap stocks, either statically or ranked by recent market data.
package universe

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"daily-trading-bot/internal/logger"
	"daily-trading-bot/internal/types"
)

// Selection methods.
const (
	MethodDiversified = "diversified"
	MethodHighVolume  = "high_volume"
	MethodTopGainers  = "top_gainers"
	MethodTopLosers   = "top_losers"
	MethodMixed       = "mixed"
)

const volumeLookbackDays = 7

// sectorOrder keeps selection deterministic; Go maps iterate randomly.
var sectorOrder = []string{
	"Technology", "Financial", "Healthcare", "Consumer",
	"Energy", "Industrial", "Communication", "Materials",
}

var stockUniverse = map[string][]string{
	"Technology":    {"AAPL", "MSFT", "GOOGL", "META", "NVDA", "AMD", "INTC", "CSCO", "ORCL", "CRM"},
	"Financial":     {"JPM", "BAC", "WFC", "GS", "MS", "C", "BLK", "SCHW", "AXP", "USB"},
	"Healthcare":    {"JNJ", "UNH", "PFE", "ABBV", "TMO", "MRK", "ABT", "DHR", "BMY", "LLY"},
	"Consumer":      {"AMZN", "TSLA", "WMT", "HD", "NKE", "MCD", "SBUX", "TGT", "LOW", "CVS"},
	"Energy":        {"XOM", "CVX", "COP", "SLB", "EOG", "MPC", "PSX", "VLO", "OXY", "HAL"},
	"Industrial":    {"BA", "CAT", "GE", "HON", "UPS", "RTX", "LMT", "MMM", "DE", "EMR"},
	"Communication": {"DIS", "CMCSA", "NFLX", "T", "VZ", "TMUS", "CHTR", "EA", "ATVI", "TTWO"},
	"Materials":     {"LIN", "APD", "ECL", "SHW", "DD", "NEM", "FCX", "NUE", "VMC", "MLM"},
}

// Sectors returns the sector names in selection order.
func Sectors() []string {
	out := make([]string, len(sectorOrder))
	copy(out, sectorOrder)
	return out
}

// SectorSymbols returns a copy of the symbols listed under a sector.
func SectorSymbols(sector string) []string {
	syms, ok := stockUniverse[sector]
	if !ok {
		return nil
	}
	out := make([]string, len(syms))
	copy(out, syms)
	return out
}

// AllSymbols returns every symbol in the universe, deduplicated, in
// sector order.
func AllSymbols() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sector := range sectorOrder {
		for _, s := range stockUniverse[sector] {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}

// MarketData is the slice of the broker the selector needs.
type MarketData interface {
	HistoricalBars(ctx context.Context, symbol string, lookbackDays int) ([]types.Bar, error)
}

// Params control how symbols are ranked and how many come back.
type Params struct {
	Method          string
	Limit           int
	StocksPerSector int
	MinVolume       float64
	PeriodDays      int
}

type Selector struct {
	data MarketData

	mu    sync.Mutex
	cache map[string][]string
}

func NewSelector(data MarketData) *Selector {
	return &Selector{data: data, cache: make(map[string][]string)}
}

// Select picks symbols using the configured method. Results are cached per
// parameter set so repeated calls within a run don't refetch market data.
func (s *Selector) Select(ctx context.Context, p Params) []string {
	if p.Limit <= 0 {
		p.Limit = 10
	}
	if p.StocksPerSector <= 0 {
		p.StocksPerSector = 2
	}
	if p.MinVolume <= 0 {
		p.MinVolume = 5_000_000
	}
	if p.PeriodDays <= 0 {
		p.PeriodDays = 1
	}

	key := fmt.Sprintf("%s|%d|%d|%.0f|%d", p.Method, p.Limit, p.StocksPerSector, p.MinVolume, p.PeriodDays)
	s.mu.Lock()
	if cached, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return cached
	}
	s.mu.Unlock()

	logger.Info(ctx, "selecting trading universe", "method", p.Method, "limit", p.Limit)

	var symbols []string
	switch p.Method {
	case MethodDiversified:
		symbols = s.diversified(p.StocksPerSector)
	case MethodHighVolume:
		symbols = s.highVolume(ctx, p.MinVolume, p.Limit)
	case MethodTopGainers:
		symbols = s.topMovers(ctx, p.PeriodDays, p.Limit, true)
	case MethodTopLosers:
		symbols = s.topMovers(ctx, p.PeriodDays, p.Limit, false)
	case MethodMixed:
		symbols = s.mixed(ctx, p)
	default:
		logger.Warn(ctx, "unknown selection method, using diversified", "method", p.Method)
		symbols = s.diversified(p.StocksPerSector)
	}

	if len(symbols) > p.Limit {
		symbols = symbols[:p.Limit]
	}
	logger.Info(ctx, "universe selected", "count", len(symbols), "symbols", strings.Join(symbols, ","))

	s.mu.Lock()
	s.cache[key] = symbols
	s.mu.Unlock()
	return symbols
}

func (s *Selector) diversified(perSector int) []string {
	var out []string
	for _, sector := range sectorOrder {
		syms := stockUniverse[sector]
		if perSector < len(syms) {
			syms = syms[:perSector]
		}
		out = append(out, syms...)
	}
	return out
}

func (s *Selector) highVolume(ctx context.Context, minVolume float64, limit int) []string {
	type ranked struct {
		symbol string
		avgVol float64
	}
	var liquid []ranked
	for _, symbol := range AllSymbols() {
		bars, err := s.data.HistoricalBars(ctx, symbol, volumeLookbackDays)
		if err != nil || len(bars) == 0 {
			logger.Debug(ctx, "skipping symbol in volume ranking", "symbol", symbol, "error", err)
			continue
		}
		var total float64
		for _, b := range bars {
			total += b.Vol
		}
		avg := total / float64(len(bars))
		if avg >= minVolume {
			liquid = append(liquid, ranked{symbol, avg})
		}
	}
	sort.SliceStable(liquid, func(i, j int) bool { return liquid[i].avgVol > liquid[j].avgVol })
	if len(liquid) > limit {
		liquid = liquid[:limit]
	}
	out := make([]string, len(liquid))
	for i, r := range liquid {
		out[i] = r.symbol
	}
	return out
}

func (s *Selector) topMovers(ctx context.Context, periodDays, limit int, gainers bool) []string {
	type mover struct {
		symbol    string
		pctChange float64
	}
	var movers []mover
	// Extra lookback covers weekends and holidays in the bar history.
	lookback := periodDays + 5
	for _, symbol := range AllSymbols() {
		bars, err := s.data.HistoricalBars(ctx, symbol, lookback)
		if err != nil || len(bars) <= periodDays {
			logger.Debug(ctx, "skipping symbol in mover ranking", "symbol", symbol, "error", err)
			continue
		}
		start := bars[len(bars)-periodDays-1].Close
		end := bars[len(bars)-1].Close
		if start <= 0 {
			continue
		}
		movers = append(movers, mover{symbol, (end - start) / start * 100})
	}
	sort.SliceStable(movers, func(i, j int) bool {
		if gainers {
			return movers[i].pctChange > movers[j].pctChange
		}
		return movers[i].pctChange < movers[j].pctChange
	})
	if len(movers) > limit {
		movers = movers[:limit]
	}
	out := make([]string, len(movers))
	for i, m := range movers {
		out[i] = m.symbol
	}
	return out
}

func (s *Selector) mixed(ctx context.Context, p Params) []string {
	half := p.Limit / 2
	seen := make(map[string]bool)
	var out []string
	add := func(syms []string) {
		for _, sym := range syms {
			if !seen[sym] {
				seen[sym] = true
				out = append(out, sym)
			}
		}
	}
	div := s.diversified(1)
	if len(div) > half {
		div = div[:half]
	}
	add(div)
	add(s.highVolume(ctx, p.MinVolume, half))
	if len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

// Distribution reports how many of the given symbols fall in each sector.
func Distribution(symbols []string) map[string]int {
	member := make(map[string]string)
	for sector, syms := range stockUniverse {
		for _, s := range syms {
			member[s] = sector
		}
	}
	counts := make(map[string]int)
	for _, s := range symbols {
		if sector, ok := member[s]; ok {
			counts[sector]++
		}
	}
	return counts
}
