package indicator

import (
	"fmt"
	"strings"

	"github.com/raykavin/machart/pkg/core"
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/plot"
)

// Ribbon creates an overlay with one average per period. colors must hold
// one color per period, fastest first.
func Ribbon(kind ma.Kind, periods []int, colors []string, width float64) (plot.Indicator, error) {
	if len(periods) == 0 || len(periods) != len(colors) {
		return nil, fmt.Errorf("%w: ribbon needs one color per period, got %d periods and %d colors",
			core.ErrInvalidParameter, len(periods), len(colors))
	}

	return &ribbon{
		kind:    kind,
		periods: periods,
		colors:  colors,
		width:   width,
	}, nil
}

type ribbon struct {
	kind    ma.Kind
	periods []int
	colors  []string
	width   float64
	values  []core.Series[float64]
}

// Warmup returns the warmup of the slowest member
func (r ribbon) Warmup() int {
	warmup := 0
	for _, period := range r.periods {
		warmup = max(warmup, period-1)
	}
	return warmup
}

// Name returns the formatted name of the indicator
func (r ribbon) Name() string {
	periods := make([]string, len(r.periods))
	for i, period := range r.periods {
		periods[i] = fmt.Sprint(period)
	}
	return fmt.Sprintf("%s Ribbon(%s)", r.kind, strings.Join(periods, ","))
}

// Load calculates every ribbon member
func (r *ribbon) Load(prices core.Series[float64]) error {
	values, err := ma.Ribbon(r.kind, prices, r.periods...)
	if err != nil {
		return fmt.Errorf("%s: %w", r.Name(), err)
	}

	r.values = values
	return nil
}

// Metrics returns members slowest first so the fastest is drawn on top
func (r ribbon) Metrics() []plot.IndicatorMetric {
	metrics := make([]plot.IndicatorMetric, 0, len(r.values))
	for i := len(r.values) - 1; i >= 0; i-- {
		name := fmt.Sprintf("%s(%d)", r.kind, r.periods[i])
		metrics = append(metrics, CreateMetric(plot.StyleLine, r.colors[i], r.width, r.values[i], name))
	}
	return metrics
}

// Members returns the loaded ribbon, fastest first
func Members(ind plot.Indicator) []core.Series[float64] {
	if r, ok := ind.(*ribbon); ok {
		return r.values
	}
	return nil
}
