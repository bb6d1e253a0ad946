package indicator

import (
	"fmt"

	"github.com/raykavin/machart/pkg/core"
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/plot"
)

// BaseIndicator provides common functionality for all overlays
type BaseIndicator struct {
	Period int
	Color  string
	Width  float64
}

// CreateMetric creates a standard indicator metric
func CreateMetric(style, color string, width float64, values core.Series[float64], name ...string) plot.IndicatorMetric {
	metric := plot.IndicatorMetric{
		Style:  style,
		Color:  color,
		Width:  width,
		Values: values,
	}

	if len(name) > 0 {
		metric.Name = name[0]
	}

	return metric
}

// average draws one moving average as a line over the price chart
type average struct {
	BaseIndicator
	kind   ma.Kind
	Values core.Series[float64]
}

func newAverage(kind ma.Kind, period int, color string, width float64) *average {
	return &average{
		BaseIndicator: BaseIndicator{
			Period: period,
			Color:  color,
			Width:  width,
		},
		kind: kind,
	}
}

// Warmup returns the number of samples needed before the first value
func (a average) Warmup() int {
	return a.Period - 1
}

// Name returns the formatted name of the indicator
func (a average) Name() string {
	return fmt.Sprintf("%s(%d)", a.kind, a.Period)
}

// Load calculates the indicator values, keeping gaps aligned with prices
func (a *average) Load(prices core.Series[float64]) error {
	values, err := ma.Compute(a.kind, prices, a.Period)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Name(), err)
	}

	a.Values = values
	return nil
}

// Metrics returns the visual representation of the indicator
func (a average) Metrics() []plot.IndicatorMetric {
	return []plot.IndicatorMetric{
		CreateMetric(plot.StyleLine, a.Color, a.Width, a.Values, a.Name()),
	}
}
