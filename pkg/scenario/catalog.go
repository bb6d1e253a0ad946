package scenario

import (
	"math/rand"

	"github.com/raykavin/machart/pkg/core"
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/plot"
	"github.com/raykavin/machart/pkg/signal"
)

func trend(count int, pattern Pattern) Generator {
	return func(rng *rand.Rand) core.Series[float64] {
		prices, _ := Trending(rng, count, pattern)
		return prices
	}
}

func keyPeriods() []Overlay {
	return []Overlay{
		{Kind: ma.KindSMA, Period: 200, Color: ColorMA200, Width: 3},
		{Kind: ma.KindSMA, Period: 50, Color: ColorMA50, Width: 2.5},
		{Kind: ma.KindEMA, Period: 20, Color: ColorMA20, Width: 2},
		{Kind: ma.KindEMA, Period: 9, Color: ColorMA9, Width: 1.5},
	}
}

func maTypes(width float64) []Overlay {
	return []Overlay{
		{Kind: ma.KindSMA, Period: 20, Color: ColorSMA, Width: width},
		{Kind: ma.KindEMA, Period: 20, Color: ColorEMA, Width: width},
		{Kind: ma.KindWMA, Period: 20, Color: ColorWMA, Width: width},
	}
}

func crossPair(fast, slow int, width float64) []Overlay {
	return []Overlay{
		{Kind: ma.KindSMA, Period: fast, Color: ColorGreen, Width: width},
		{Kind: ma.KindSMA, Period: slow, Color: ColorBlue, Width: width},
	}
}

func fibonacciRibbon(colors []string, width float64) *RibbonOverlay {
	return &RibbonOverlay{
		Kind:    ma.KindEMA,
		Periods: ma.FibonacciPeriods,
		Colors:  colors,
		Width:   width,
	}
}

// DefaultScenarios returns the moving average lessons, in reading order
func DefaultScenarios() []Scenario {
	trendColors := []string{ColorRed, ColorGold, ColorGreen, ColorBlue, ColorPurple}

	return []Scenario{
		{
			Name:       "basics",
			Title:      "Moving Average Smooths Price",
			Generator:  trend(60, Uptrend),
			Overlays:   []Overlay{{Kind: ma.KindSMA, Period: 20, Color: ColorBlue, Width: 2.5}},
			PriceWidth: 2,
		},
		{
			Name:       "comparison",
			Title:      "SMA vs EMA vs WMA (20 Period)",
			Generator:  trend(60, Ranging),
			Overlays:   maTypes(2),
			PriceColor: ColorPrice + "80",
		},
		{
			Name:         "periods",
			Title:        "Key Periods: 9, 20, 50, 200",
			Generator:    trend(250, Uptrend),
			Overlays:     keyPeriods(),
			DisplayStart: 190,
			PriceColor:   ColorPrice + "60",
			PriceWidth:   1,
		},
		{
			Name:            "crossover",
			Title:           "MA Crossover Signal",
			Generator:       trend(100, CrossoverBull),
			Overlays:        crossPair(20, 40, 2.5),
			DisplayStart:    20,
			PriceColor:      ColorPrice + "50",
			Markers:         CrossMarker(0, 1, signal.GoldenCross),
			MarkerThreshold: 0.7,
		},
		{
			Name:            "golden",
			Title:           "Golden Cross - 50 MA crosses above 200 MA",
			Generator:       trend(120, CrossoverBull),
			Overlays:        crossPair(15, 35, 3),
			DisplayStart:    35,
			Wick:            core.SineWick(1.5, 0.5),
			Markers:         CrossMarker(0, 1, signal.GoldenCross),
			MarkerThreshold: 0.6,
		},
		{
			Name:            "death",
			Title:           "Death Cross - 50 MA crosses below 200 MA",
			Generator:       trend(120, CrossoverBear),
			Overlays:        crossPair(15, 35, 3),
			DisplayStart:    35,
			Wick:            core.SineWick(1.5, 0.5),
			Markers:         CrossMarker(0, 1, signal.DeathCross),
			MarkerThreshold: 0.6,
		},
		{
			Name:       "types",
			Title:      "Moving Average Types",
			Generator:  trend(80, Ranging),
			Overlays:   maTypes(2.5),
			PriceWidth: 2,
		},
		{
			Name:      "sma-detail",
			Title:     "Simple Moving Average",
			Generator: trend(50, Uptrend),
			Overlays:  []Overlay{{Kind: ma.KindSMA, Period: 20, Color: ColorBlue, Width: 3}},
			Wick:      core.FixedWick(1),
		},
		{
			Name:      "ema-detail",
			Title:     "Exponential Moving Average",
			Generator: trend(50, Ranging),
			Overlays:  []Overlay{{Kind: ma.KindEMA, Period: 20, Color: ColorRed, Width: 3}},
			Wick:      core.FixedWick(1),
		},
		{
			Name:         "all-periods",
			Title:        "All Key Periods",
			Generator:    trend(250, Uptrend),
			Overlays:     keyPeriods(),
			DisplayStart: 190,
			Wick:         core.FixedWick(0.5),
		},
		{
			Name:       "ribbon",
			Title:      "Moving Average Ribbon",
			Generator:  ribbonShowcase,
			Ribbon:     fibonacciRibbon([]string{ColorRed, ColorOrange, ColorGold, ColorGreen, ColorBlue}, 2),
			PriceColor: ColorWhite + "60",
			PriceWidth: 1,
		},
		{
			Name:      "ribbon-expansion",
			Title:     "Ribbon Expansion - Strong Trend",
			Generator: ribbonExpansion,
			Ribbon:    fibonacciRibbon(trendColors, 2.5),
			HidePrice: true,
		},
		{
			Name:      "ribbon-compression",
			Title:     "Ribbon Compression - Trend Weakening",
			Generator: ribbonCompression,
			Ribbon:    fibonacciRibbon(trendColors, 2.5),
			HidePrice: true,
		},
		{
			Name:            "dynamic-sr",
			Title:           "Dynamic Support",
			Generator:       trend(80, Uptrend),
			Overlays:        []Overlay{{Kind: ma.KindSMA, Period: 20, Color: ColorGreen, Width: 3}},
			Wick:            core.FixedWick(1),
			Zone:            ZoneSupport,
			Markers:         BounceMarker(0, 1, 5),
			MarkerThreshold: 0.5,
		},
		{
			Name:            "support",
			Title:           "MA as Support",
			Generator:       pullbacks(80, 1),
			Overlays:        []Overlay{{Kind: ma.KindEMA, Period: 15, Color: ColorGreen, Width: 2.5}},
			Wick:            core.FixedWick(0.5),
			Zone:            ZoneSupport,
			Markers:         ArrowMarkers(0, plot.MarkerBounce, 15, 30, 45),
			MarkerThreshold: 0.7,
		},
		{
			Name:            "resistance",
			Title:           "MA as Resistance",
			Generator:       pullbacks(120, -1),
			Overlays:        []Overlay{{Kind: ma.KindEMA, Period: 15, Color: ColorRed, Width: 2.5}},
			Wick:            core.FixedWick(0.5),
			Zone:            ZoneResistance,
			Markers:         ArrowMarkers(0, plot.MarkerRejection, 15, 30, 45),
			MarkerThreshold: 0.7,
		},
		{
			Name:      "day-trading",
			Title:     "Day Trading: 9/20 EMA Crossover",
			Generator: dayTrading,
			Overlays: []Overlay{
				{Kind: ma.KindEMA, Period: 9, Color: ColorRed, Width: 2.5},
				{Kind: ma.KindEMA, Period: 20, Color: ColorGold, Width: 2.5},
			},
			Margin:          3,
			Wick:            core.SineWick(0.5, 0),
			Markers:         CrossTradeMarkers(0, 1, 20, 4),
			MarkerThreshold: 0.5,
			Duration:        SlowDuration,
		},
		{
			Name:      "swing-trading",
			Title:     "Swing Trading: 20/50 SMA Pullback",
			Generator: swingTrading,
			Overlays: []Overlay{
				{Kind: ma.KindSMA, Period: 20, Color: ColorGold, Width: 2.5},
				{Kind: ma.KindSMA, Period: 50, Color: ColorBlue, Width: 2.5},
			},
			Margin:          4,
			Wick:            core.SineWick(1, 0),
			Markers:         PullbackMarkers(0, 1, 57, 3),
			MarkerThreshold: 0.5,
			Duration:        SlowDuration,
		},
		{
			Name:            "position-trading",
			Title:           "Position Trading: 50/200 SMA Golden Cross",
			Generator:       positionTrading,
			Overlays:        crossPair(20, 40, 3),
			Margin:          5,
			Wick:            core.SineWick(1.5, 0),
			Markers:         CrossStopMarkers(0, 1, 45, 5),
			MarkerThreshold: 0.5,
			Duration:        SlowDuration,
		},
	}
}

// DefaultCatalog returns a catalog holding DefaultScenarios
func DefaultCatalog() *Catalog {
	catalog := NewCatalog()
	if err := catalog.Register(DefaultScenarios()...); err != nil {
		panic(err)
	}
	return catalog
}
