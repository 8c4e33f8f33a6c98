package types

import "time"

// Bar is one trading-day OHLCV observation for a symbol.
type Bar struct {
	Ts                          time.Time
	Open, High, Low, Close, Vol float64
}

// Opinion is one analyzer's directional read of a symbol.
type Opinion struct {
	Label  string // BULLISH/BEARISH/NEUTRAL, or POSITIVE/NEGATIVE/NEUTRAL for sentiment
	Reason string
}

const (
	Bullish  = "BULLISH"
	Bearish  = "BEARISH"
	Neutral  = "NEUTRAL"
	Positive = "POSITIVE"
	Negative = "NEGATIVE"
)

// Signal is one accepted directional decision for a symbol.
type Signal struct {
	Action string `json:"action"` // BUY or SELL
	Reason string `json:"reason"`
}

const (
	ActionBuy  = "BUY"
	ActionSell = "SELL"
	ActionHold = "HOLD"
)

// Evaluation carries the full vote tally for a symbol, signal or not.
// A HOLD evaluation has a nil Signal but still surfaces counts and factors.
type Evaluation struct {
	Symbol    string   `json:"symbol"`
	Action    string   `json:"action"`
	BuyVotes  int      `json:"buy_indicators"`
	SellVotes int      `json:"sell_indicators"`
	Factors   []string `json:"factors"`
	Signal    *Signal  `json:"-"`
}

// Order statuses. A FAILED submission is logged and dropped from the run's
// trade list; it is never retried.
const (
	StatusDryRun       = "DRY_RUN"
	StatusSubmitted    = "SUBMITTED"
	StatusSkippedNoPos = "SKIPPED_NO_POSITION"
	StatusFailed       = "FAILED"
)

// OrderResult records one sized order, simulated or submitted.
type OrderResult struct {
	Symbol  string  `json:"symbol"`
	Action  string  `json:"action"`
	Reason  string  `json:"reason"`
	Shares  int     `json:"shares"`
	Price   float64 `json:"price"`
	OrderID string  `json:"order_id,omitempty"`
	Status  string  `json:"status"`
}

// Account is the brokerage account snapshot used for buy sizing.
type Account struct {
	Equity         float64 `json:"equity"`
	BuyingPower    float64 `json:"buying_power"`
	Cash           float64 `json:"cash"`
	PortfolioValue float64 `json:"portfolio_value"`
}

// Position is an open brokerage position.
type Position struct {
	Symbol string
	Qty    int
}

// Clock is the brokerage market clock.
type Clock struct {
	IsOpen bool
}

// StepResult is the outcome of one symbol's full pipeline run.
type StepResult struct {
	Evaluation Evaluation    `json:"evaluation"`
	Trades     []OrderResult `json:"trades"`
}
