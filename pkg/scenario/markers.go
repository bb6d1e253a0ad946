package scenario

import (
	"github.com/raykavin/machart/pkg/core"
	"github.com/raykavin/machart/pkg/plot"
	"github.com/raykavin/machart/pkg/signal"
)

// MarkerInput is the displayed slice of a scenario handed to marker rules.
// Averages follow the order of the scenario overlays.
type MarkerInput struct {
	Prices   core.Series[float64]
	Averages []core.Series[float64]
	Scale    plot.Scale
}

// MarkerRule derives the highlighted events of a chart
type MarkerRule func(in MarkerInput) ([]plot.Marker, error)

func marker(kind, label, color string, scale plot.Scale, index int, value float64) plot.Marker {
	return plot.Marker{
		Kind:  kind,
		Label: label,
		Color: color,
		Value: value,
		Point: scale.Point(index, value),
	}
}

// CrossMarker marks the first crossing of the given kind between two overlays
func CrossMarker(fast, slow int, kind signal.CrossKind) MarkerRule {
	return func(in MarkerInput) ([]plot.Marker, error) {
		cross, ok, err := signal.FirstCross(in.Averages[fast], in.Averages[slow], kind, 0)
		if err != nil || !ok {
			return nil, err
		}

		markerKind, label, color := plot.MarkerGoldenCross, "GOLDEN CROSS", ColorGold
		if kind == signal.DeathCross {
			markerKind, label, color = plot.MarkerDeathCross, "DEATH CROSS", ColorRed
		}

		return []plot.Marker{marker(markerKind, label, color, in.Scale, cross.Index, cross.Fast)}, nil
	}
}

// BounceMarker marks every touch of dynamic support on the given overlay
func BounceMarker(average int, tolerance float64, margin int) MarkerRule {
	return func(in MarkerInput) ([]plot.Marker, error) {
		bounces, err := signal.Bounces(in.Prices, in.Averages[average], tolerance, margin)
		if err != nil {
			return nil, err
		}

		markers := make([]plot.Marker, 0, len(bounces))
		for _, i := range bounces {
			markers = append(markers, marker(plot.MarkerBounce, "", ColorGold, in.Scale, i, in.Averages[average][i]))
		}
		return markers, nil
	}
}

// ArrowMarkers marks fixed indices on an overlay, pointing up for support
// and down for resistance
func ArrowMarkers(average int, kind string, indices ...int) MarkerRule {
	color := ColorGreen
	if kind == plot.MarkerRejection {
		color = ColorRed
	}

	return func(in MarkerInput) ([]plot.Marker, error) {
		markers := make([]plot.Marker, 0, len(indices))
		for _, i := range indices {
			if i >= len(in.Averages[average]) || core.IsGap(in.Averages[average][i]) {
				continue
			}
			markers = append(markers, marker(kind, "", color, in.Scale, i, in.Averages[average][i]))
		}
		return markers, nil
	}
}

// CrossTradeMarkers marks the entry, exit and stop of a crossover trade
func CrossTradeMarkers(fast, slow, start int, stopOffset float64) MarkerRule {
	return func(in MarkerInput) ([]plot.Marker, error) {
		setup, ok, err := signal.TradeSetup(in.Prices, in.Averages[fast], in.Averages[slow], start, stopOffset)
		if err != nil || !ok {
			return nil, err
		}

		markers := []plot.Marker{
			marker(plot.MarkerEntry, "ENTRY", ColorGreen, in.Scale, setup.Entry, setup.EntryCost),
			marker(plot.MarkerStop, "STOP", ColorRed, in.Scale, setup.Entry, setup.StopLoss),
		}
		if setup.HasExit {
			markers = append(markers, marker(plot.MarkerExit, "EXIT", ColorGold, in.Scale, setup.Exit, setup.ExitPrice))
		}
		return markers, nil
	}
}

// PullbackMarkers marks an entry on the fast overlay at a fixed pullback
// index and a stop stopOffset below the slow overlay
func PullbackMarkers(fast, slow, entry int, stopOffset float64) MarkerRule {
	return func(in MarkerInput) ([]plot.Marker, error) {
		if entry >= len(in.Prices) {
			return nil, nil
		}

		entryPrice := in.Averages[fast][entry]
		if core.IsGap(entryPrice) {
			entryPrice = in.Prices[entry]
		}

		markers := []plot.Marker{marker(plot.MarkerEntry, "ENTRY", ColorGreen, in.Scale, entry, entryPrice)}
		if stop := in.Averages[slow][entry]; !core.IsGap(stop) {
			markers = append(markers, marker(plot.MarkerStop, "STOP", ColorRed, in.Scale, entry, stop-stopOffset))
		}
		return markers, nil
	}
}

// CrossStopMarkers marks the first golden cross at or after start and a stop
// stopOffset below the slow overlay at that point
func CrossStopMarkers(fast, slow, start int, stopOffset float64) MarkerRule {
	return func(in MarkerInput) ([]plot.Marker, error) {
		cross, ok, err := signal.FirstCross(in.Averages[fast], in.Averages[slow], signal.GoldenCross, start)
		if err != nil || !ok {
			return nil, err
		}

		return []plot.Marker{
			marker(plot.MarkerGoldenCross, "ENTRY", ColorGold, in.Scale, cross.Index, cross.Fast),
			marker(plot.MarkerStop, "STOP", ColorRed, in.Scale, cross.Index, cross.Slow-stopOffset),
		}, nil
	}
}
