package indicator

import (
	"github.com/raykavin/machart/pkg/core"
	"gonum.org/v1/gonum/floats"
)

// EMA calculates the Exponential Moving Average of a series.
// The value at period-1 is seeded with the simple average of the first window
// and every later value folds the new sample into the previous one with
// multiplier 2/(period+1), so the scan must run strictly left to right.
// A gap in the input resets the average: the output stays a gap until a new
// window of period defined samples seeds it again.
func EMA(input core.Series[float64], period int) (core.Series[float64], error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	out := core.Gaps(len(input))
	if len(input) < period {
		return out, nil
	}

	multiplier := 2 / float64(period+1)
	run := 0
	for i, value := range input {
		if core.IsGap(value) {
			run = 0
			continue
		}
		run++

		switch {
		case run == period:
			out[i] = floats.Sum(input[i-period+1:i+1]) / float64(period)
		case run > period:
			out[i] = (value-out[i-1])*multiplier + out[i-1]
		}
	}

	return out, nil
}
