package core

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Gap marks an undefined position in a derived series, such as the
// warmup window of a moving average.
var Gap = math.NaN()

// Series is a time series of ordered values
// It provides methods for analyzing time series data
type Series[T constraints.Ordered] []T

// Last returns the value at a specified position from the end
// position 0 is the last value, 1 is the second-to-last, etc.
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// IsGap reports whether v marks an undefined sample
func IsGap(v float64) bool {
	return math.IsNaN(v)
}

// Gaps returns a series of the given length where every position is undefined
func Gaps(length int) Series[float64] {
	out := make(Series[float64], length)
	for i := range out {
		out[i] = Gap
	}
	return out
}

// Defined returns the defined values of a series in order, dropping gaps
func Defined(s Series[float64]) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if !IsGap(v) {
			out = append(out, v)
		}
	}
	return out
}

// CountDefined returns how many positions of the series hold a value
func CountDefined(s Series[float64]) int {
	count := 0
	for _, v := range s {
		if !IsGap(v) {
			count++
		}
	}
	return count
}

// FirstDefined returns the index of the first defined value or -1
func FirstDefined(s Series[float64]) int {
	for i, v := range s {
		if !IsGap(v) {
			return i
		}
	}
	return -1
}
