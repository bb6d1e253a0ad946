package core

import "math"

// Point is a position inside a drawing area. Index is the position of the
// source sample in its series, kept because gap filtering shifts positions.
type Point struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Index int     `json:"i" yaml:"i"`
}

// Area describes a drawing surface of Width x Height with the same
// Padding on every side
type Area struct {
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	Padding float64 `json:"padding" yaml:"padding"`
}

// InnerWidth returns the horizontal space left after padding
func (a Area) InnerWidth() float64 {
	return a.Width - 2*a.Padding
}

// InnerHeight returns the vertical space left after padding
func (a Area) InnerHeight() float64 {
	return a.Height - 2*a.Padding
}

// Valid reports whether the area has finite dimensions and the padded area
// still has room to draw
func (a Area) Valid() bool {
	for _, v := range []float64{a.Width, a.Height, a.Padding} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return a.InnerWidth() > 0 && a.InnerHeight() > 0
}
