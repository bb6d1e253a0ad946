package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/raykavin/machart/pkg/core"
)

// Pattern selects the shape of a trending price series
type Pattern string

// Trending patterns
const (
	Uptrend       Pattern = "uptrend"
	Downtrend     Pattern = "downtrend"
	CrossoverBull Pattern = "crossover-bull"
	CrossoverBear Pattern = "crossover-bear"
	Ranging       Pattern = "range"
)

const (
	walkFloor     = 10
	trendingFloor = 20
	trendingStart = 100
)

// Generator produces a price series. Deterministic generators ignore rng.
type Generator func(rng *rand.Rand) core.Series[float64]

// RandomWalk produces count prices starting at start where each step moves by
// uniform noise of the given volatility plus a constant trend, never dropping
// below floor
func RandomWalk(rng *rand.Rand, count int, start, volatility, trend, floor float64) core.Series[float64] {
	if count <= 0 {
		return core.Series[float64]{}
	}

	prices := make(core.Series[float64], count)
	prices[0] = start
	for i := 1; i < count; i++ {
		change := (rng.Float64()-0.5)*volatility + trend
		prices[i] = math.Max(prices[i-1]+change, floor)
	}
	return prices
}

// Trending produces count noisy prices following pattern, starting near 100
// and never dropping below 20
func Trending(rng *rand.Rand, count int, pattern Pattern) (core.Series[float64], error) {
	drift, err := patternDrift(pattern, count)
	if err != nil {
		return nil, err
	}

	prices := make(core.Series[float64], 0, max(count, 0))
	price := float64(trendingStart)
	for i := 0; i < count; i++ {
		noise := (rng.Float64() - 0.5) * 3
		price = math.Max(price+drift(i)+noise, trendingFloor)
		prices = append(prices, price)
	}
	return prices, nil
}

// TrendingGenerator wraps Trending for use in a scenario
func TrendingGenerator(count int, pattern Pattern) (Generator, error) {
	if _, err := patternDrift(pattern, count); err != nil {
		return nil, err
	}

	return trend(count, pattern), nil
}

func patternDrift(pattern Pattern, count int) (func(i int) float64, error) {
	turn := float64(count) * 0.4

	switch pattern {
	case Uptrend:
		return func(i int) float64 { return 0.3 + math.Sin(float64(i)*0.1)*0.2 }, nil
	case Downtrend:
		return func(i int) float64 { return -0.3 - math.Sin(float64(i)*0.1)*0.2 }, nil
	case CrossoverBull:
		return func(i int) float64 {
			if float64(i) < turn {
				return -0.4
			}
			return 0.6
		}, nil
	case CrossoverBear:
		return func(i int) float64 {
			if float64(i) < turn {
				return 0.4
			}
			return -0.6
		}, nil
	case Ranging:
		return func(i int) float64 { return math.Sin(float64(i)*0.15) * 0.8 }, nil
	}

	return nil, fmt.Errorf("%w: unknown price pattern %q", core.ErrInvalidParameter, pattern)
}

// phase is one leg of a deterministic wave: until the index reaches End the
// price moves by Step plus a sine of Amplitude at Frequency
type phase struct {
	End       int
	Step      float64
	Frequency float64
	Amplitude float64
}

// wave builds a smooth series from consecutive phases, without randomness.
// Indices past the last phase keep using it.
func wave(count int, start float64, phases ...phase) Generator {
	return func(*rand.Rand) core.Series[float64] {
		prices := make(core.Series[float64], 0, count)
		price := start
		current := 0
		for i := 0; i < count; i++ {
			for current < len(phases)-1 && i >= phases[current].End {
				current++
			}
			p := phases[current]
			price += p.Step + math.Sin(float64(i)*p.Frequency)*p.Amplitude
			prices = append(prices, price)
		}
		return prices
	}
}

// ribbonShowcase is a smooth uptrend built from two sine waves
func ribbonShowcase(*rand.Rand) core.Series[float64] {
	prices := make(core.Series[float64], 0, 100)
	price := 50.0
	for i := 0; i < 100; i++ {
		x := float64(i)
		price += 0.4 + math.Sin(x*0.08)*0.3 + math.Sin(x*0.15)*0.2
		prices = append(prices, price)
	}
	return prices
}

// ribbonExpansion is an accelerating uptrend
func ribbonExpansion(*rand.Rand) core.Series[float64] {
	prices := make(core.Series[float64], 0, 80)
	price := 50.0
	for i := 0; i < 80; i++ {
		x := float64(i)
		strength := 0.3 + (x/80)*0.5
		price += strength + math.Sin(x*0.1)*0.3
		prices = append(prices, price)
	}
	return prices
}

// ribbonCompression trends strongly, weakens, then drifts in a tight range
var ribbonCompression = wave(80, 50,
	phase{End: 25, Step: 0.8, Frequency: 0.15, Amplitude: 0.2},
	phase{End: 50, Step: 0.1, Frequency: 0.2, Amplitude: 0.15},
	phase{End: 80, Step: 0.05, Frequency: 0.25, Amplitude: 0.08},
)

// pullbacks produces a trend of 0.4 per step in direction with periodic
// pullbacks towards the average
func pullbacks(start, direction float64) Generator {
	return func(*rand.Rand) core.Series[float64] {
		prices := make(core.Series[float64], 0, 60)
		price := start
		for i := 0; i < 60; i++ {
			cycle := math.Sin(float64(i)*0.2) * 3
			price += direction * (0.4 + cycle*0.1)
			prices = append(prices, price+direction*cycle)
		}
		return prices
	}
}

var dayTrading = wave(80, 100,
	phase{End: 15, Step: -0.3, Frequency: 0.3, Amplitude: -0.2},
	phase{End: 25, Step: 0, Frequency: 0.5, Amplitude: 0.4},
	phase{End: 55, Step: 0.5, Frequency: 0.2, Amplitude: 0.3},
	phase{End: 80, Step: -0.35, Frequency: 0.4, Amplitude: -0.2},
)

var swingTrading = wave(80, 80,
	phase{End: 25, Step: 0.6, Frequency: 0.3, Amplitude: 0.3},
	phase{End: 35, Step: -0.4, Frequency: 0.4, Amplitude: -0.2},
	phase{End: 50, Step: 0.5, Frequency: 0.25, Amplitude: 0.3},
	phase{End: 58, Step: -0.5, Frequency: 0.3, Amplitude: -0.2},
	phase{End: 80, Step: 0.7, Frequency: 0.2, Amplitude: 0.25},
)

var positionTrading = wave(100, 120,
	phase{End: 30, Step: -0.6, Frequency: 0.15, Amplitude: -0.8},
	phase{End: 50, Step: 0.1, Frequency: 0.2, Amplitude: 1.5},
	phase{End: 100, Step: 0.7, Frequency: 0.1, Amplitude: 0.5},
)
