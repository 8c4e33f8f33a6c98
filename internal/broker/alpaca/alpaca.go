package alpaca

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"daily-trading-bot/internal/interfaces"
	"daily-trading-bot/internal/types"
)

const (
	paperBaseURL = "https://paper-api.alpaca.markets"
	liveBaseURL  = "https://api.alpaca.markets"
)

type Params struct {
	APIKey    string
	APISecret string
	Paper     bool
}

// Client adapts the Alpaca trading and market-data APIs to the engine's
// broker boundary.
type Client struct {
	trading *alpaca.Client
	data    *marketdata.Client
}

var _ interfaces.Broker = (*Client)(nil)

func New(p Params) *Client {
	baseURL := liveBaseURL
	if p.Paper {
		baseURL = paperBaseURL
	}
	return &Client{
		trading: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    p.APIKey,
			APISecret: p.APISecret,
			BaseURL:   baseURL,
		}),
		data: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    p.APIKey,
			APISecret: p.APISecret,
		}),
	}
}

func (c *Client) Account(ctx context.Context) (types.Account, error) {
	acct, err := c.trading.GetAccount()
	if err != nil {
		return types.Account{}, fmt.Errorf("get account: %w", err)
	}
	return types.Account{
		Equity:         acct.Equity.InexactFloat64(),
		BuyingPower:    acct.BuyingPower.InexactFloat64(),
		Cash:           acct.Cash.InexactFloat64(),
		PortfolioValue: acct.PortfolioValue.InexactFloat64(),
	}, nil
}

func (c *Client) LatestQuote(ctx context.Context, symbol string) (float64, error) {
	q, err := c.data.GetLatestQuote(symbol, marketdata.GetLatestQuoteRequest{Feed: marketdata.IEX})
	if err != nil {
		return 0, fmt.Errorf("latest quote %s: %w", symbol, err)
	}
	if q == nil || q.AskPrice <= 0 {
		return 0, fmt.Errorf("%s: %w", symbol, interfaces.ErrNoQuote)
	}
	return q.AskPrice, nil
}

func (c *Client) HistoricalBars(ctx context.Context, symbol string, lookbackDays int) ([]types.Bar, error) {
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -lookbackDays)
	bars, err := c.data.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
		Feed:      marketdata.IEX,
	})
	if err != nil {
		return nil, fmt.Errorf("historical bars %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, nil
	}
	out := make([]types.Bar, len(bars))
	for i, b := range bars {
		out[i] = types.Bar{
			Ts:    b.Timestamp,
			Open:  b.Open,
			High:  b.High,
			Low:   b.Low,
			Close: b.Close,
			Vol:   float64(b.Volume),
		}
	}
	return out, nil
}

func (c *Client) OpenPosition(ctx context.Context, symbol string) (types.Position, error) {
	pos, err := c.trading.GetPosition(symbol)
	if err != nil {
		var apiErr *alpaca.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return types.Position{}, fmt.Errorf("%s: %w", symbol, interfaces.ErrNoPosition)
		}
		return types.Position{}, fmt.Errorf("get position %s: %w", symbol, err)
	}
	return types.Position{Symbol: symbol, Qty: int(pos.Qty.IntPart())}, nil
}

func (c *Client) SubmitMarketOrder(ctx context.Context, req interfaces.OrderReq) (string, error) {
	side := alpaca.Buy
	if req.Side == types.ActionSell {
		side = alpaca.Sell
	}
	qty := decimal.NewFromInt(int64(req.Qty))
	order, err := c.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:      req.Symbol,
		Qty:         &qty,
		Side:        side,
		Type:        alpaca.Market,
		TimeInForce: alpaca.Day,
	})
	if err != nil {
		return "", fmt.Errorf("place order %s %s: %w", req.Side, req.Symbol, err)
	}
	return order.ID, nil
}

func (c *Client) Clock(ctx context.Context) (types.Clock, error) {
	clock, err := c.trading.GetClock()
	if err != nil {
		return types.Clock{}, fmt.Errorf("get clock: %w", err)
	}
	return types.Clock{IsOpen: clock.IsOpen}, nil
}
