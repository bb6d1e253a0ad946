package machart

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/olekukonko/tablewriter"
	"github.com/raykavin/machart/pkg/core"
	"github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/metric"
	"github.com/raykavin/machart/pkg/signal"
)

// Touch detection used by the report footer
const (
	touchTolerance = 0.01
	touchMargin    = 2
)

// Report holds a price series with one moving average per period
type Report struct {
	Kind     indicator.Kind
	Periods  []int
	Prices   core.Series[float64]
	Averages []core.Series[float64]
	Crosses  []signal.Cross
}

// Compute calculates the averages of prices. With two or more periods the
// crosses between the first two averages are detected as well.
func Compute(prices core.Series[float64], kind indicator.Kind, periods ...int) (*Report, error) {
	if len(periods) == 0 {
		return nil, fmt.Errorf("no periods: %w", core.ErrInvalidParameter)
	}

	averages, err := indicator.Ribbon(kind, prices, periods...)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Kind:     kind,
		Periods:  periods,
		Prices:   prices,
		Averages: averages,
	}

	if len(averages) > 1 {
		if report.Crosses, err = signal.Crosses(averages[0], averages[1]); err != nil {
			return nil, err
		}
	}

	return report, nil
}

// Names returns the column name of every average
func (r *Report) Names() []string {
	names := make([]string, len(r.Periods))
	for i, period := range r.Periods {
		names[i] = fmt.Sprintf("%s(%d)", r.Kind, period)
	}
	return names
}

// Table renders the last rows of the report. rows <= 0 renders everything.
func (r *Report) Table(w io.Writer, rows int) error {
	crossAt := make(map[int]signal.CrossKind, len(r.Crosses))
	for _, cross := range r.Crosses {
		crossAt[cross.Index] = cross.Kind
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(append(append([]string{"Index", "Price"}, r.Names()...), "Signal"))
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetFooterAlignment(tablewriter.ALIGN_RIGHT)

	start := 0
	if rows > 0 && rows < len(r.Prices) {
		start = len(r.Prices) - rows
	}

	for i := start; i < len(r.Prices); i++ {
		row := []string{strconv.Itoa(i), formatValue(r.Prices[i])}
		for _, average := range r.Averages {
			row = append(row, formatValue(average[i]))
		}

		signalName := ""
		if kind, ok := crossAt[i]; ok {
			signalName = kind.String()
		}
		table.Append(append(row, signalName))
	}

	footer := []string{"", "touches"}
	for _, average := range r.Averages {
		tolerance := touchBand(average)
		bounces, err := signal.Bounces(r.Prices, average, tolerance, touchMargin)
		if err != nil {
			return err
		}
		rejections, err := signal.Rejections(r.Prices, average, tolerance, touchMargin)
		if err != nil {
			return err
		}
		footer = append(footer, fmt.Sprintf("%d up / %d down", len(bounces), len(rejections)))
	}
	table.SetFooter(append(footer, fmt.Sprintf("%d crosses", len(r.Crosses))))

	table.Render()
	return nil
}

// Deviation prints the distribution of the percentage distance between the
// price and the first average, with a histogram
func (r *Report) Deviation(w io.Writer, confidence float64) error {
	deviation, err := metric.Deviation(r.Prices, r.Averages[0])
	if err != nil {
		return err
	}

	summary, err := metric.Summarize(deviation, confidence)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "-- PRICE VS %s --\n", r.Names()[0])
	if summary.Count == 0 {
		fmt.Fprintln(w, "not enough samples")
		return nil
	}

	fmt.Fprintf(w, "MEAN:   %.2f%% (%.0f%%: %.2f%% ~ %.2f%%)\n", summary.Mean, confidence*100, summary.Lower, summary.Upper)
	fmt.Fprintf(w, "STDDEV: %.2f%%\n", summary.StdDev)
	fmt.Fprintf(w, "RANGE:  %.2f%% ~ %.2f%%\n\n", summary.Min, summary.Max)

	hist := histogram.Hist(15, deviation)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}

// touchBand is touchTolerance of the latest average value
func touchBand(average core.Series[float64]) float64 {
	if len(average) == 0 || core.IsGap(average.Last(0)) {
		return 0
	}
	return math.Abs(average.Last(0)) * touchTolerance
}

func formatValue(v float64) string {
	if core.IsGap(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
