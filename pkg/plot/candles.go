package plot

import "github.com/raykavin/machart/pkg/core"

// MapCandles places candles with the same scale used for the chart lines
func MapCandles(scale Scale, candles []core.Candle) []CandleShape {
	shapes := make([]CandleShape, 0, len(candles))
	for _, candle := range candles {
		shapes = append(shapes, CandleShape{
			Index:   candle.Index,
			X:       scale.X(candle.Index),
			Open:    scale.Y(candle.Open),
			Close:   scale.Y(candle.Close),
			High:    scale.Y(candle.High),
			Low:     scale.Y(candle.Low),
			Bullish: candle.Bullish(),
		})
	}
	return shapes
}

// TruncateCandles returns the candles drawn at the given progress,
// floor(len*progress) of them
func TruncateCandles(shapes []CandleShape, progress float64) []CandleShape {
	if progress >= 1 {
		return shapes
	}
	if progress <= 0 {
		return shapes[:0]
	}
	return shapes[:int(float64(len(shapes))*progress)]
}
