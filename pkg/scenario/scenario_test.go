package scenario

import (
	"context"
	"math/rand"
	"testing"

	"github.com/raykavin/machart/pkg/core"
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/logger"
	"github.com/raykavin/machart/pkg/plot"
	"github.com/raykavin/machart/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testArea = core.Area{Width: 500, Height: 300, Padding: 40}

func newTestBuilder(t *testing.T, options ...Option) (*Builder, *storage.BuntCache) {
	t.Helper()
	cache, err := storage.FromMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return NewBuilder(cache, logger.Nop(), options...), cache
}

// countingCache counts how often a series is generated
type countingCache struct {
	*storage.BuntCache
	computed int
}

func (c *countingCache) GetOrCompute(key string, compute func() (core.Series[float64], error)) (core.Series[float64], error) {
	return c.BuntCache.GetOrCompute(key, func() (core.Series[float64], error) {
		c.computed++
		return compute()
	})
}

func TestCatalog(t *testing.T) {
	t.Run("default order", func(t *testing.T) {
		names := DefaultCatalog().Names()
		require.Len(t, names, 19)
		assert.Equal(t, "basics", names[0])
		assert.Equal(t, "ribbon", names[10])
		assert.Equal(t, "position-trading", names[18])
	})

	t.Run("defaults applied", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.Register(Scenario{Name: "flat", Generator: trend(10, Ranging)}))

		s, err := catalog.Get("flat")
		require.NoError(t, err)
		assert.Equal(t, DefaultDuration, s.Duration)
		assert.Equal(t, ColorPrice, s.PriceColor)
		assert.Equal(t, 1.5, s.PriceWidth)
	})

	t.Run("trading charts animate slowly", func(t *testing.T) {
		s, err := DefaultCatalog().Get("day-trading")
		require.NoError(t, err)
		assert.Equal(t, SlowDuration, s.Duration)
		assert.Equal(t, 3.0, s.Margin)
	})

	t.Run("rejects invalid", func(t *testing.T) {
		catalog := NewCatalog()
		require.NoError(t, catalog.Register(Scenario{Name: "a", Generator: trend(10, Uptrend)}))

		assert.ErrorIs(t, catalog.Register(Scenario{Name: "a", Generator: trend(10, Uptrend)}), core.ErrInvalidParameter)
		assert.ErrorIs(t, catalog.Register(Scenario{Name: "b"}), core.ErrInvalidParameter)
		assert.ErrorIs(t, catalog.Register(Scenario{Generator: trend(10, Uptrend)}), core.ErrInvalidParameter)
		assert.Equal(t, []string{"a"}, catalog.Names())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := DefaultCatalog().Get("nope")
		assert.ErrorIs(t, err, core.ErrScenarioNotFound)
	})
}

func TestBuilderPrices(t *testing.T) {
	cache, err := storage.FromMemory()
	require.NoError(t, err)
	defer cache.Close()

	counting := &countingCache{BuntCache: cache}
	builder := NewBuilder(counting, logger.Nop(), WithSeed(5))
	ctx := context.Background()

	first, err := builder.Prices(ctx, "basics")
	require.NoError(t, err)
	second, err := builder.Prices(ctx, "basics")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, counting.computed)

	keys, err := cache.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"basics:5"}, keys)

	require.NoError(t, builder.Invalidate())
	_, err = builder.Prices(ctx, "basics")
	require.NoError(t, err)
	assert.Equal(t, 2, counting.computed)

	other, _ := newTestBuilder(t, WithSeed(5))
	fresh, err := other.Prices(ctx, "basics")
	require.NoError(t, err)
	assert.Equal(t, first, fresh)

	_, err = builder.Prices(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrScenarioNotFound)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = builder.Prices(cancelled, "basics")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuilderFrameEveryScenario(t *testing.T) {
	builder, _ := newTestBuilder(t)
	ctx := context.Background()

	for _, name := range builder.Names() {
		t.Run(name, func(t *testing.T) {
			frame, err := builder.Frame(ctx, name, testArea, 1)
			require.NoError(t, err)

			assert.Equal(t, name, frame.Scenario)
			assert.NotEmpty(t, frame.Title)
			assert.Less(t, frame.Range.Min, frame.Range.Max)
			require.NotEmpty(t, frame.Lines)

			for _, line := range frame.Lines {
				for _, p := range line.Points {
					assert.GreaterOrEqual(t, p.X, testArea.Padding-1e-9)
					assert.LessOrEqual(t, p.X, testArea.Width-testArea.Padding+1e-9)
					assert.GreaterOrEqual(t, p.Y, testArea.Padding-1e-9)
					assert.LessOrEqual(t, p.Y, testArea.Height-testArea.Padding+1e-9)
				}
			}

			early, err := builder.Frame(ctx, name, testArea, 0.3)
			require.NoError(t, err)
			assert.Empty(t, early.Markers)
		})
	}
}

func TestBuilderFrame(t *testing.T) {
	builder, _ := newTestBuilder(t)
	ctx := context.Background()

	t.Run("price and average", func(t *testing.T) {
		frame, err := builder.Frame(ctx, "basics", testArea, 1)
		require.NoError(t, err)

		require.Len(t, frame.Lines, 2)
		assert.Equal(t, "Price", frame.Lines[0].Name)
		assert.Len(t, frame.Lines[0].Points, 60)
		assert.Equal(t, "SMA(20)", frame.Lines[1].Name)
		assert.Len(t, frame.Lines[1].Points, 41)
		assert.Equal(t, 19, frame.Lines[1].Points[0].Index)
		assert.Equal(t, frame.Lines[0].Points[19].X, frame.Lines[1].Points[0].X)
		assert.Empty(t, frame.Candles)
		assert.Empty(t, frame.Ribbon)
	})

	t.Run("progress truncates", func(t *testing.T) {
		frame, err := builder.Frame(ctx, "basics", testArea, 0.5)
		require.NoError(t, err)
		assert.Len(t, frame.Lines[0].Points, 30)
		assert.Len(t, frame.Lines[1].Points, 20)

		frame, err = builder.Frame(ctx, "basics", testArea, 0)
		require.NoError(t, err)
		assert.Len(t, frame.Lines[0].Points, 2)
	})

	t.Run("display window", func(t *testing.T) {
		frame, err := builder.Frame(ctx, "periods", testArea, 1)
		require.NoError(t, err)

		require.Len(t, frame.Lines, 5)
		assert.Len(t, frame.Lines[0].Points, 60)
		assert.Equal(t, "SMA(200)", frame.Lines[1].Name)
		assert.Len(t, frame.Lines[1].Points, 51)
	})

	t.Run("candles replace the price line", func(t *testing.T) {
		frame, err := builder.Frame(ctx, "golden", testArea, 1)
		require.NoError(t, err)

		assert.Len(t, frame.Candles, 85)
		require.Len(t, frame.Lines, 2)
		assert.Equal(t, "SMA(15)", frame.Lines[0].Name)

		half, err := builder.Frame(ctx, "golden", testArea, 0.5)
		require.NoError(t, err)
		assert.Len(t, half.Candles, 42)
	})

	t.Run("ribbon", func(t *testing.T) {
		frame, err := builder.Frame(ctx, "ribbon-expansion", testArea, 1)
		require.NoError(t, err)

		require.Len(t, frame.Lines, len(ma.FibonacciPeriods))
		assert.Equal(t, "EMA(55)", frame.Lines[0].Name)
		assert.Equal(t, "EMA(8)", frame.Lines[4].Name)
		assert.NotEmpty(t, frame.Ribbon)
	})

	t.Run("zone and markers", func(t *testing.T) {
		frame, err := builder.Frame(ctx, "support", testArea, 1)
		require.NoError(t, err)

		require.Len(t, frame.Zones, 1)
		assert.Equal(t, ZoneSupport, frame.Zones[0].Kind)
		assert.Equal(t, testArea.Height-testArea.Padding, frame.Zones[0].Edge)

		require.Len(t, frame.Markers, 3)
		for _, m := range frame.Markers {
			assert.Equal(t, plot.MarkerBounce, m.Kind)
		}

		frame, err = builder.Frame(ctx, "resistance", testArea, 1)
		require.NoError(t, err)
		assert.Equal(t, testArea.Padding, frame.Zones[0].Edge)
		assert.Equal(t, plot.MarkerRejection, frame.Markers[0].Kind)
	})

	t.Run("margin widens the range", func(t *testing.T) {
		frame, err := builder.Frame(ctx, "day-trading", testArea, 1)
		require.NoError(t, err)

		columns, err := builder.Columns(ctx, "day-trading")
		require.NoError(t, err)
		rng, ok := plot.Range(columns[0].Values, columns[1].Values, columns[2].Values)
		require.True(t, ok)
		assert.InDelta(t, rng.Min-3, frame.Range.Min, 1e-9)
		assert.InDelta(t, rng.Max+3, frame.Range.Max, 1e-9)
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := builder.Frame(ctx, "basics", core.Area{Width: 50, Height: 300, Padding: 30}, 1)
		assert.ErrorIs(t, err, core.ErrInvalidInput)

		_, err = builder.Frame(ctx, "basics", testArea, 1.5)
		assert.ErrorIs(t, err, core.ErrInvalidInput)

		_, err = builder.Frame(ctx, "nope", testArea, 1)
		assert.ErrorIs(t, err, core.ErrScenarioNotFound)
	})
}

func TestBuilderColumns(t *testing.T) {
	builder, _ := newTestBuilder(t)

	columns, err := builder.Columns(context.Background(), "comparison")
	require.NoError(t, err)

	require.Len(t, columns, 4)
	assert.Equal(t, []string{"price", "SMA(20)", "EMA(20)", "WMA(20)"},
		[]string{columns[0].Name, columns[1].Name, columns[2].Name, columns[3].Name})
	for _, column := range columns {
		assert.Len(t, column.Values, 60)
	}
	assert.True(t, core.IsGap(columns[1].Values[18]))
	assert.False(t, core.IsGap(columns[1].Values[19]))
}

func TestBuilderCustomCatalog(t *testing.T) {
	catalog := NewCatalog()
	require.NoError(t, catalog.Register(Scenario{
		Name: "walk",
		Generator: func(rng *rand.Rand) core.Series[float64] {
			return RandomWalk(rng, 40, 50, 2, 0.1, walkFloor)
		},
		Overlays: []Overlay{{Kind: ma.KindWMA, Period: 5, Color: ColorBlue, Width: 1}},
	}))

	builder, _ := newTestBuilder(t, WithCatalog(catalog))
	assert.Equal(t, []string{"walk"}, builder.Names())

	frame, err := builder.Frame(context.Background(), "walk", testArea, 1)
	require.NoError(t, err)
	require.Len(t, frame.Lines, 2)
	assert.Len(t, frame.Lines[1].Points, 36)
}
