package engine

import (
	"context"
	"fmt"
	"time"

	"daily-trading-bot/internal/interfaces"
	"daily-trading-bot/internal/logger"
	"daily-trading-bot/internal/tradelog"
	"daily-trading-bot/internal/types"
)

// DefaultMaxPositionPct caps a buy order at this fraction of buying power.
const DefaultMaxPositionPct = 0.20

// orderPause is the fixed delay between successive live submissions for
// one symbol, to stay inside brokerage rate limits.
const orderPause = 1 * time.Second

// Executor sizes and places orders for accepted signals. In dry-run mode it
// returns results of the same shape without touching the broker's order
// endpoint.
type Executor struct {
	brk            interfaces.Broker
	dryRun         bool
	maxPositionPct float64
	pause          func(time.Duration)
}

func NewExecutor(brk interfaces.Broker, dryRun bool, maxPositionPct float64) *Executor {
	if maxPositionPct <= 0 {
		maxPositionPct = DefaultMaxPositionPct
	}
	return &Executor{brk: brk, dryRun: dryRun, maxPositionPct: maxPositionPct, pause: time.Sleep}
}

// Execute runs each accepted signal to a terminal state. Failed and skipped
// orders are logged and left out of the returned trade list; they never
// abort the remaining signals. Nothing here retries.
func (x *Executor) Execute(ctx context.Context, symbol string, signals []types.Signal) []types.OrderResult {
	var trades []types.OrderResult
	for _, sig := range signals {
		var (
			res types.OrderResult
			err error
		)
		switch sig.Action {
		case types.ActionBuy:
			res, err = x.placeBuy(ctx, symbol, sig.Reason)
		case types.ActionSell:
			res, err = x.placeSell(ctx, symbol, sig.Reason)
		default:
			continue
		}
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to execute order", err, "symbol", symbol, "side", sig.Action)
			continue
		}
		if res.Status == types.StatusSkippedNoPos {
			logger.Warn(ctx, "No position to sell", "symbol", symbol)
			continue
		}

		logger.Trade(ctx, symbol, res.Action, res.Shares, res.Price, res.OrderID, res.Status)
		_ = tradelog.Append(tradelog.Entry{
			Symbol:  symbol,
			Action:  res.Action,
			Shares:  res.Shares,
			Price:   res.Price,
			OrderID: res.OrderID,
			Status:  res.Status,
			Reason:  res.Reason,
		})
		trades = append(trades, res)

		if !x.dryRun {
			x.pause(orderPause)
		}
	}
	return trades
}

// placeBuy sizes a buy at the position cap and submits it. Buying power is
// fetched fresh for every order so sequential buys in one run never size
// against a stale balance. The share count is floored to 1 even when one
// share exceeds the cap; that minimum is intentional.
func (x *Executor) placeBuy(ctx context.Context, symbol, reason string) (types.OrderResult, error) {
	acct, err := x.brk.Account(ctx)
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("account snapshot: %w", err)
	}
	maxPosition := acct.BuyingPower * x.maxPositionPct

	price, err := x.brk.LatestQuote(ctx, symbol)
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("latest quote: %w", err)
	}
	if price <= 0 {
		return types.OrderResult{}, fmt.Errorf("latest quote: %w", interfaces.ErrNoQuote)
	}

	shares := int(maxPosition / price)
	if shares < 1 {
		shares = 1
	}

	res := types.OrderResult{
		Symbol: symbol,
		Action: types.ActionBuy,
		Reason: reason,
		Shares: shares,
		Price:  price,
		Status: types.StatusDryRun,
	}
	if x.dryRun {
		logger.Info(ctx, "[DRY RUN] Would buy", "symbol", symbol, "shares", shares, "price", price)
		return res, nil
	}

	id, err := x.brk.SubmitMarketOrder(ctx, interfaces.OrderReq{Symbol: symbol, Side: types.ActionBuy, Qty: shares})
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("submit buy: %w", err)
	}
	res.OrderID = id
	res.Status = types.StatusSubmitted
	return res, nil
}

// placeSell liquidates the full open position. A missing or empty position
// is a tagged SKIPPED_NO_POSITION outcome, not an error.
func (x *Executor) placeSell(ctx context.Context, symbol, reason string) (types.OrderResult, error) {
	pos, err := x.brk.OpenPosition(ctx, symbol)
	if err != nil || pos.Qty <= 0 {
		if err != nil {
			logger.Warn(ctx, "No position found", "symbol", symbol, "cause", err)
		}
		return types.OrderResult{Symbol: symbol, Action: types.ActionSell, Reason: reason, Status: types.StatusSkippedNoPos}, nil
	}

	price, err := x.brk.LatestQuote(ctx, symbol)
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("latest quote: %w", err)
	}

	res := types.OrderResult{
		Symbol: symbol,
		Action: types.ActionSell,
		Reason: reason,
		Shares: pos.Qty,
		Price:  price,
		Status: types.StatusDryRun,
	}
	if x.dryRun {
		logger.Info(ctx, "[DRY RUN] Would sell", "symbol", symbol, "shares", pos.Qty, "price", price)
		return res, nil
	}

	id, err := x.brk.SubmitMarketOrder(ctx, interfaces.OrderReq{Symbol: symbol, Side: types.ActionSell, Qty: pos.Qty})
	if err != nil {
		return types.OrderResult{}, fmt.Errorf("submit sell: %w", err)
	}
	res.OrderID = id
	res.Status = types.StatusSubmitted
	return res, nil
}
