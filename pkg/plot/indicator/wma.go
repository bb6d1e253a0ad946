package indicator

import (
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/plot"
)

// WMA creates a new Weighted Moving Average overlay
// period: the number of periods to use for calculations
// color: the color to use for the indicator line
// width: the stroke width of the line
func WMA(period int, color string, width float64) plot.Indicator {
	return newAverage(ma.KindWMA, period, color, width)
}

// MA creates an overlay of the given kind
func MA(kind ma.Kind, period int, color string, width float64) plot.Indicator {
	return newAverage(kind, period, color, width)
}
