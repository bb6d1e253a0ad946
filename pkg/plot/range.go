package plot

import (
	"fmt"

	"github.com/raykavin/machart/pkg/core"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
)

// ValueRange is the vertical extent shared by every series drawn on one chart
type ValueRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Span returns Max-Min, or 1 for a flat range so scaling never divides by zero
func (r ValueRange) Span() float64 {
	if span := r.Max - r.Min; span != 0 {
		return span
	}
	return 1
}

// Widen returns the range grown by margin on both ends
func (r ValueRange) Widen(margin float64) ValueRange {
	return ValueRange{Min: r.Min - margin, Max: r.Max + margin}
}

// Range returns the union of every defined value across the given series.
// The boolean is false when no series holds a defined value.
func Range(series ...core.Series[float64]) (ValueRange, bool) {
	values := lo.FlatMap(series, func(s core.Series[float64], _ int) []float64 {
		return core.Defined(s)
	})
	if len(values) == 0 {
		return ValueRange{}, false
	}

	return ValueRange{Min: floats.Min(values), Max: floats.Max(values)}, true
}

// Scale converts sample positions and values into area coordinates
type Scale struct {
	area  core.Area
	rng   ValueRange
	xStep float64
}

// NewScale builds the scale for series of the given length drawn inside area
func NewScale(area core.Area, rng ValueRange, length int) (Scale, error) {
	if !area.Valid() {
		return Scale{}, fmt.Errorf("%w: drawing area %gx%g with padding %g leaves no room",
			core.ErrInvalidInput, area.Width, area.Height, area.Padding)
	}

	if rng.Max < rng.Min {
		return Scale{}, fmt.Errorf("%w: range max %g below min %g", core.ErrInvalidInput, rng.Max, rng.Min)
	}

	scale := Scale{area: area, rng: rng}
	if length > 1 {
		scale.xStep = area.InnerWidth() / float64(length-1)
	}

	return scale, nil
}

// Range returns the value range of the scale
func (s Scale) Range() ValueRange { return s.rng }

// Step returns the horizontal distance between consecutive samples
func (s Scale) Step() float64 { return s.xStep }

// X maps a sample index to its horizontal position
func (s Scale) X(index int) float64 {
	return s.area.Padding + float64(index)*s.xStep
}

// Y maps a value to its vertical position; larger values sit higher
func (s Scale) Y(value float64) float64 {
	return s.area.Padding + (1-(value-s.rng.Min)/s.rng.Span())*s.area.InnerHeight()
}

// Value maps a vertical position back to the value drawn there
func (s Scale) Value(y float64) float64 {
	return Invert(s.area, s.rng, y)
}

// Point maps one sample
func (s Scale) Point(index int, value float64) core.Point {
	return core.Point{X: s.X(index), Y: s.Y(value), Index: index}
}

// Invert recovers the value drawn at vertical position y
func Invert(area core.Area, rng ValueRange, y float64) float64 {
	return rng.Min + (1-(y-area.Padding)/area.InnerHeight())*rng.Span()
}
