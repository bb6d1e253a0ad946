// Package metric summarises how far a price series strays from its moving average.
package metric

import (
	"fmt"
	"math"
	"sort"

	"github.com/raykavin/machart/pkg/core"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of a deviation series.
type Summary struct {
	Count  int     // Number of defined samples
	Mean   float64 // Mean deviation
	StdDev float64 // Sample standard deviation
	Lower  float64 // Lower quantile bound for the requested confidence
	Upper  float64 // Upper quantile bound for the requested confidence
	Min    float64
	Max    float64
}

// Deviation returns the percentage distance of price from average at every
// index where both are defined. Indices with a gap on either side, or a zero
// average, are skipped.
func Deviation(price, average core.Series[float64]) ([]float64, error) {
	if len(price) != len(average) {
		return nil, fmt.Errorf("deviation: %d prices vs %d averages: %w", len(price), len(average), core.ErrInvalidInput)
	}

	out := make([]float64, 0, len(price))
	for i := range price {
		if core.IsGap(price[i]) || core.IsGap(average[i]) || average[i] == 0 {
			continue
		}
		out = append(out, (price[i]-average[i])/average[i]*100)
	}
	return out, nil
}

// Summarize computes the distribution of values with symmetric quantile bounds
// at the given confidence (e.g. 0.95).
func Summarize(values []float64, confidence float64) (Summary, error) {
	if confidence <= 0 || confidence >= 1 || math.IsNaN(confidence) {
		return Summary{}, fmt.Errorf("confidence %v outside (0,1): %w", confidence, core.ErrInvalidParameter)
	}
	if len(values) == 0 {
		return Summary{}, nil
	}

	data := append([]float64(nil), values...)
	sort.Float64s(data)

	tail := 1 - confidence
	mean, stdDev := stat.MeanStdDev(data, nil)
	if len(data) < 2 {
		stdDev = 0
	}

	return Summary{
		Count:  len(data),
		Mean:   mean,
		StdDev: stdDev,
		Lower:  stat.Quantile(tail/2, stat.LinInterp, data, nil),
		Upper:  stat.Quantile(1-tail/2, stat.LinInterp, data, nil),
		Min:    data[0],
		Max:    data[len(data)-1],
	}, nil
}
