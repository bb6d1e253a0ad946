package indicator

import (
	"github.com/raykavin/machart/pkg/core"
	"gonum.org/v1/gonum/floats"
)

// SMA calculates the Simple Moving Average of a series.
// Positions before the first full window are gaps; when the period is larger
// than the series every position is a gap.
func SMA(input core.Series[float64], period int) (core.Series[float64], error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	out := core.Gaps(len(input))
	for i := period - 1; i < len(input); i++ {
		out[i] = floats.Sum(input[i-period+1:i+1]) / float64(period)
	}

	return out, nil
}
