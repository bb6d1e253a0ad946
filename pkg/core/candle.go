package core

import (
	"fmt"
	"math"
)

// Candle is a synthetic OHLC bar built from two consecutive closes, the way
// the educational charts draw candlesticks from a single price line
type Candle struct {
	Index int     `json:"i" yaml:"i"`
	Open  float64 `json:"open" yaml:"open"`
	Close float64 `json:"close" yaml:"close"`
	Low   float64 `json:"low" yaml:"low"`
	High  float64 `json:"high" yaml:"high"`
}

// Bullish reports whether the candle closed at or above its open
func (c Candle) Bullish() bool { return c.Close >= c.Open }

// String returns a human-readable representation of the candle
func (c Candle) String() string {
	return fmt.Sprintf("[%d] O: %.2f | C: %.2f | L: %.2f | H: %.2f",
		c.Index, c.Open, c.Close, c.Low, c.High)
}

// WickFunc returns the wick extension above and below the candle body at index i
type WickFunc func(i int) (upper, lower float64)

// FixedWick extends both wicks by the same amount
func FixedWick(size float64) WickFunc {
	return func(int) (float64, float64) { return size, size }
}

// SineWick produces stable wicks from sine waves so redraws never flicker
func SineWick(scale, base float64) WickFunc {
	return func(i int) (float64, float64) {
		upper := math.Abs(math.Sin(float64(i)*0.7))*scale + base
		lower := math.Abs(math.Sin(float64(i)*0.5))*scale + base
		return upper, lower
	}
}

// CandlesFromPrices builds one candle per price, opening at the previous close.
// The first candle opens at its own close.
func CandlesFromPrices(prices Series[float64], wick WickFunc) []Candle {
	candles := make([]Candle, 0, len(prices))
	for i, closePrice := range prices {
		open := closePrice
		if i > 0 {
			open = prices[i-1]
		}

		upper, lower := wick(i)
		candles = append(candles, Candle{
			Index: i,
			Open:  open,
			Close: closePrice,
			High:  math.Max(open, closePrice) + upper,
			Low:   math.Min(open, closePrice) - lower,
		})
	}
	return candles
}
