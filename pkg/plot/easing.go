package plot

import (
	"math"
	"time"
)

// EaseOutCubic decelerates towards the end of an animation: 1-(1-t)^3.
// t is clamped to [0,1].
func EaseOutCubic(t float64) float64 {
	t = math.Max(0, math.Min(1, t))
	return 1 - math.Pow(1-t, 3)
}

// Progress returns the linear ratio of elapsed to duration, clamped to [0,1]
func Progress(elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return 1
	}
	return math.Max(0, math.Min(1, float64(elapsed)/float64(duration)))
}
