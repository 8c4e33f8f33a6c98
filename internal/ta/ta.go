package ta

import (
	"daily-trading-bot/internal/types"
)

// Window lengths are fixed constants of the strategy, not tunables.
const (
	MinBars      = 30
	rsiPeriod    = 14
	macdFast     = 12
	macdSlow     = 26
	macdSmooth   = 9
	smaShort     = 20
	smaLong      = 50
	emaPeriod    = 12
	volumePeriod = 20
)

// Value is an explicit nullable numeric. Indicator rows inside a lookback
// window are undefined rather than NaN, and anything computed from an
// undefined input is itself undefined.
type Value struct {
	F  float64
	OK bool
}

func val(f float64) Value { return Value{F: f, OK: true} }

// Defined reports whether the value may participate in a vote.
func (v Value) Defined() bool { return v.OK }

// Row is one bar with its derived indicator columns. Raw OHLCV fields are
// never overwritten.
type Row struct {
	Bar        types.Bar
	RSI        Value
	MACD       Value
	MACDSignal Value
	MACDDiff   Value
	SMA20      Value
	SMA50      Value
	EMA12      Value
	VolSMA20   Value
	VolRatio   Value
}

// Compute derives the indicator columns for an ascending OHLCV series.
// Fewer than MinBars bars is not an error: the caller gets nil and must
// treat it as "no opinion".
func Compute(bars []types.Bar) []Row {
	if len(bars) < MinBars {
		return nil
	}

	closes := make([]float64, len(bars))
	vols := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		vols[i] = b.Vol
	}

	rows := make([]Row, len(bars))
	ema12 := emaSeries(closes, macdFast)
	ema26 := emaSeries(closes, macdSlow)
	macd := make([]Value, len(bars))
	for i := range bars {
		rows[i].Bar = bars[i]
		rows[i].RSI = rsiAt(closes, i)
		rows[i].SMA20 = smaAt(closes, i, smaShort)
		rows[i].SMA50 = smaAt(closes, i, smaLong)
		rows[i].EMA12 = ema12[i]
		rows[i].VolSMA20 = smaAt(vols, i, volumePeriod)
		rows[i].VolRatio = ratio(vols[i], rows[i].VolSMA20)

		if ema12[i].OK && ema26[i].OK {
			macd[i] = val(ema12[i].F - ema26[i].F)
		}
		rows[i].MACD = macd[i]
	}

	signal := emaOfValues(macd, macdSmooth)
	for i := range rows {
		rows[i].MACDSignal = signal[i]
		if macd[i].OK && signal[i].OK {
			rows[i].MACDDiff = val(macd[i].F - signal[i].F)
		}
	}
	return rows
}

// Latest returns the last row, or nil for an empty slice.
func Latest(rows []Row) *Row {
	if len(rows) == 0 {
		return nil
	}
	return &rows[len(rows)-1]
}

// Prev returns the second-to-last row, or nil when fewer than two exist.
func Prev(rows []Row) *Row {
	if len(rows) < 2 {
		return nil
	}
	return &rows[len(rows)-2]
}

func smaAt(vals []float64, i, n int) Value {
	if n <= 0 || i < n-1 {
		return Value{}
	}
	sum := 0.0
	for j := i - n + 1; j <= i; j++ {
		sum += vals[j]
	}
	return val(sum / float64(n))
}

// rsiAt is the 14-period relative-strength oscillator, bounded [0,100].
// A window with zero losses reads 100.
func rsiAt(closes []float64, i int) Value {
	if i < rsiPeriod {
		return Value{}
	}
	gain, loss := 0.0, 0.0
	for j := i - rsiPeriod + 1; j <= i; j++ {
		d := closes[j] - closes[j-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	if loss == 0 {
		return val(100.0)
	}
	rs := (gain / float64(rsiPeriod)) / (loss / float64(rsiPeriod))
	return val(100.0 - (100.0 / (1.0 + rs)))
}

// emaSeries seeds with the simple average of the first n values, then
// applies the standard recursive smoothing. Rows before the seed window
// stay undefined.
func emaSeries(vals []float64, n int) []Value {
	out := make([]Value, len(vals))
	if n <= 0 || len(vals) < n {
		return out
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += vals[i]
	}
	prev := sum / float64(n)
	out[n-1] = val(prev)
	k := 2.0 / (float64(n) + 1.0)
	for i := n; i < len(vals); i++ {
		prev = (vals[i]-prev)*k + prev
		out[i] = val(prev)
	}
	return out
}

// emaOfValues is emaSeries over a partially-undefined input: the seed
// window starts at the first defined value.
func emaOfValues(vals []Value, n int) []Value {
	out := make([]Value, len(vals))
	first := -1
	for i, v := range vals {
		if v.OK {
			first = i
			break
		}
	}
	if first < 0 || n <= 0 || len(vals)-first < n {
		return out
	}
	sum := 0.0
	for i := first; i < first+n; i++ {
		sum += vals[i].F
	}
	prev := sum / float64(n)
	out[first+n-1] = val(prev)
	k := 2.0 / (float64(n) + 1.0)
	for i := first + n; i < len(vals); i++ {
		prev = (vals[i].F-prev)*k + prev
		out[i] = val(prev)
	}
	return out
}

func ratio(num float64, denom Value) Value {
	if !denom.OK || denom.F == 0 {
		return Value{}
	}
	return val(num / denom.F)
}
