package indicator

import (
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/plot"
)

// SMA creates a new Simple Moving Average overlay
// period: the number of periods to use for calculations
// color: the color to use for the indicator line
// width: the stroke width of the line
func SMA(period int, color string, width float64) plot.Indicator {
	return newAverage(ma.KindSMA, period, color, width)
}
