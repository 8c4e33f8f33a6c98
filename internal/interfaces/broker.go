package interfaces

import (
	"context"
	"errors"

	"daily-trading-bot/internal/types"
)

// ErrNoPosition is returned by OpenPosition when the account holds no open
// position for the symbol. Callers treat it as a tagged outcome, not a
// failure.
var ErrNoPosition = errors.New("no open position")

// ErrNoQuote is returned by LatestQuote when no quote data exists for the
// symbol.
var ErrNoQuote = errors.New("no quote data")

// OrderReq is a market order request, always day-valid.
type OrderReq struct {
	Symbol string
	Side   string // BUY or SELL
	Qty    int
}

// Broker is the brokerage and market-data boundary. Implementations own
// all network concerns; the engine only sees these calls.
type Broker interface {
	// Account returns a fresh account snapshot. Buy sizing re-fetches this
	// before every order rather than caching it.
	Account(ctx context.Context) (types.Account, error)
	// LatestQuote returns the current ask price for a symbol.
	LatestQuote(ctx context.Context, symbol string) (float64, error)
	// HistoricalBars returns daily bars for the trailing lookback window,
	// sorted ascending by timestamp. An empty series is (nil, nil).
	HistoricalBars(ctx context.Context, symbol string, lookbackDays int) ([]types.Bar, error)
	// OpenPosition returns the open position for a symbol, or ErrNoPosition.
	OpenPosition(ctx context.Context, symbol string) (types.Position, error)
	// SubmitMarketOrder places a day-valid market order and returns the
	// broker's order id.
	SubmitMarketOrder(ctx context.Context, req OrderReq) (string, error)
	// Clock returns the brokerage market clock.
	Clock(ctx context.Context) (types.Clock, error)
}
