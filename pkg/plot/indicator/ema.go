package indicator

import (
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/plot"
)

// EMA creates a new Exponential Moving Average overlay
// period: the number of periods to use for calculations
// color: the color to use for the indicator line
// width: the stroke width of the line
func EMA(period int, color string, width float64) plot.Indicator {
	return newAverage(ma.KindEMA, period, color, width)
}
