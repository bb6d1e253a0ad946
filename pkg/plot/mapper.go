package plot

import (
	"fmt"
	"math"

	"github.com/raykavin/machart/pkg/core"
)

type mapOptions struct {
	progress float64
	margin   float64
	rng      *ValueRange
}

// MapOption configures MapToPoints
type MapOption func(*mapOptions)

// WithProgress truncates every point sequence to the prefix drawn at the
// given animation progress in [0,1]
func WithProgress(progress float64) MapOption {
	return func(o *mapOptions) {
		o.progress = progress
	}
}

// WithMargin widens the computed value range by margin on both ends
func WithMargin(margin float64) MapOption {
	return func(o *mapOptions) {
		o.margin = margin
	}
}

// WithRange pins the value range instead of computing it from the series
func WithRange(rng ValueRange) MapOption {
	return func(o *mapOptions) {
		o.rng = &rng
	}
}

// MapToPoints scales a set of aligned series onto one shared value range and
// returns one point sequence per series. Gaps produce no point, so each
// point carries the index of the sample it came from.
func MapToPoints(series []core.Series[float64], area core.Area, options ...MapOption) ([][]core.Point, error) {
	opts := mapOptions{progress: 1}
	for _, option := range options {
		option(&opts)
	}

	length, err := validateMapInput(series, area, opts)
	if err != nil {
		return nil, err
	}

	rng, ok := Range(series...)
	if opts.rng != nil {
		rng, ok = *opts.rng, true
	}

	result := make([][]core.Point, len(series))
	if !ok {
		for i := range result {
			result[i] = []core.Point{}
		}
		return result, nil
	}

	scale, err := NewScale(area, rng.Widen(opts.margin), length)
	if err != nil {
		return nil, err
	}

	for i, values := range series {
		result[i] = Truncate(mapSeries(scale, values), opts.progress)
	}

	return result, nil
}

// MapSeries maps a single series with an existing scale, skipping gaps
func MapSeries(scale Scale, values core.Series[float64]) []core.Point {
	return mapSeries(scale, values)
}

func mapSeries(scale Scale, values core.Series[float64]) []core.Point {
	points := make([]core.Point, 0, len(values))
	for i, v := range values {
		if core.IsGap(v) {
			continue
		}
		points = append(points, scale.Point(i, v))
	}
	return points
}

// Truncate returns the prefix of points drawn at the given progress.
// Sequences shorter than two points and progress >= 1 are returned whole;
// otherwise at least two points are kept so a line can still be stroked.
func Truncate(points []core.Point, progress float64) []core.Point {
	n := len(points)
	if progress >= 1 || n < 2 {
		return points
	}

	count := int(math.Floor(float64(n) * progress))
	if count < 2 {
		count = 2
	}
	return points[:count]
}

func validateMapInput(series []core.Series[float64], area core.Area, opts mapOptions) (int, error) {
	if len(series) == 0 {
		return 0, fmt.Errorf("%w: no series to map", core.ErrInvalidInput)
	}

	length := len(series[0])
	for i, values := range series[1:] {
		if len(values) != length {
			return 0, fmt.Errorf("%w: series %d has length %d, expected %d",
				core.ErrInvalidInput, i+1, len(values), length)
		}
	}

	if !area.Valid() {
		return 0, fmt.Errorf("%w: drawing area %gx%g with padding %g leaves no room",
			core.ErrInvalidInput, area.Width, area.Height, area.Padding)
	}

	if math.IsNaN(opts.progress) || opts.progress < 0 || opts.progress > 1 {
		return 0, fmt.Errorf("%w: progress %g outside [0,1]", core.ErrInvalidInput, opts.progress)
	}

	if math.IsNaN(opts.margin) || opts.margin < 0 {
		return 0, fmt.Errorf("%w: negative range margin %g", core.ErrInvalidInput, opts.margin)
	}

	return length, nil
}
