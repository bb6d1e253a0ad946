package signal

import (
	"fmt"
	"math"

	"github.com/raykavin/machart/pkg/core"
)

// Bounces returns the indices where price dips to within tolerance above the
// average and moves away again on both sides: a touch of dynamic support.
// Indices closer than margin to either end are ignored.
func Bounces(price, average core.Series[float64], tolerance float64, margin int) ([]int, error) {
	if len(price) != len(average) {
		return nil, fmt.Errorf("%w: series lengths differ (%d and %d)", core.ErrInvalidInput, len(price), len(average))
	}

	margin = max(margin, 1)
	bounces := make([]int, 0)
	for i := margin; i < len(price)-margin; i++ {
		if !defined(average[i-1], average[i], average[i+1]) {
			continue
		}

		diff := price[i] - average[i]
		prev := price[i-1] - average[i-1]
		next := price[i+1] - average[i+1]

		if math.Abs(diff) < tolerance && diff > 0 && prev > diff && next > diff {
			bounces = append(bounces, i)
		}
	}

	return bounces, nil
}

// Rejections is the mirror of Bounces for dynamic resistance: price rallies to
// within tolerance below the average and falls away on both sides.
func Rejections(price, average core.Series[float64], tolerance float64, margin int) ([]int, error) {
	inverted := make(core.Series[float64], len(price))
	for i, v := range price {
		inverted[i] = -v
	}

	invertedAverage := make(core.Series[float64], len(average))
	for i, v := range average {
		invertedAverage[i] = -v
	}

	return Bounces(inverted, invertedAverage, tolerance, margin)
}
