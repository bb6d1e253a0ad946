package indicator

import (
	"github.com/raykavin/machart/pkg/core"
	"gonum.org/v1/gonum/floats"
)

// WMA calculates the linearly Weighted Moving Average of a series.
// Inside each window the oldest sample weighs 1 and the newest weighs period.
func WMA(input core.Series[float64], period int) (core.Series[float64], error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	out := core.Gaps(len(input))
	if len(input) < period {
		return out, nil
	}

	weights := make([]float64, period)
	for j := range weights {
		weights[j] = float64(j + 1)
	}
	weightSum := float64(period) * float64(period+1) / 2

	for i := period - 1; i < len(input); i++ {
		out[i] = floats.Dot(input[i-period+1:i+1], weights) / weightSum
	}

	return out, nil
}
