package signal

import (
	"testing"

	"github.com/raykavin/machart/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gap = core.Gap

func TestCrosses(t *testing.T) {
	fast := core.Series[float64]{gap, 1, 2, 4, 5, 3, 2}
	slow := core.Series[float64]{gap, 3, 3, 3, 3, 3, 3}

	crosses, err := Crosses(fast, slow)
	require.NoError(t, err)
	require.Len(t, crosses, 2)

	assert.Equal(t, Cross{Index: 3, Kind: GoldenCross, Fast: 4, Slow: 3}, crosses[0])
	assert.Equal(t, 5, crosses[1].Index)
	assert.Equal(t, DeathCross, crosses[1].Kind)
	assert.Equal(t, "death", crosses[1].Kind.String())
}

func TestCrosses_SkipsGaps(t *testing.T) {
	fast := core.Series[float64]{1, gap, 5}
	slow := core.Series[float64]{3, 3, 3}

	crosses, err := Crosses(fast, slow)
	require.NoError(t, err)
	assert.Empty(t, crosses)
}

func TestCrosses_LengthMismatch(t *testing.T) {
	_, err := Crosses(core.Series[float64]{1, 2}, core.Series[float64]{1})
	require.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestFirstCross(t *testing.T) {
	fast := core.Series[float64]{1, 4, 2, 5}
	slow := core.Series[float64]{3, 3, 3, 3}

	cross, ok, err := FirstCross(fast, slow, GoldenCross, 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, cross.Index)

	_, ok, err = FirstCross(fast, slow, DeathCross, 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBounces(t *testing.T) {
	price := core.Series[float64]{14, 13, 12, 10.5, 12, 13, 14}
	ma := core.Series[float64]{10, 10, 10, 10, 10, 10, 10}

	bounces, err := Bounces(price, ma, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, bounces)

	rejections, err := Rejections(core.Series[float64]{6, 7, 8, 9.5, 8, 7, 6}, ma, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, rejections)
}

func TestRibbonSpread(t *testing.T) {
	ribbon := []core.Series[float64]{
		{gap, 5, 8},
		{gap, 3, 2},
		{1, 4, 4},
	}

	spread := RibbonSpread(ribbon)
	require.Len(t, spread, 3)
	assert.True(t, core.IsGap(spread[0]))
	assert.Equal(t, 2.0, spread[1])
	assert.Equal(t, 6.0, spread[2])

	assert.Empty(t, RibbonSpread(nil))
}

func TestClassifyRibbon(t *testing.T) {
	tests := []struct {
		name   string
		spread core.Series[float64]
		want   RibbonState
	}{
		{"expanding", core.Series[float64]{1, 1.5, 2, 3}, Expanding},
		{"compressing", core.Series[float64]{4, 3, 2, 1}, Compressing},
		{"flat", core.Series[float64]{2, 2, 2.01, 2.02}, Flat},
		{"too short", core.Series[float64]{1}, Flat},
		{"gap", core.Series[float64]{gap, 1, 2, 3}, Flat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRibbon(tt.spread, 3, 0.1))
		})
	}
}

func TestTradeSetup(t *testing.T) {
	price := core.Series[float64]{100, 98, 97, 101, 104, 103, 99}
	fast := core.Series[float64]{gap, 2, 1, 4, 5, 4, 1}
	slow := core.Series[float64]{gap, 3, 3, 3, 3, 3, 3}

	setup, ok, err := TradeSetup(price, fast, slow, 0, 4)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 3, setup.Entry)
	assert.Equal(t, 101.0, setup.EntryCost)
	assert.Equal(t, 97.0, setup.StopLoss)
	assert.True(t, setup.HasExit)
	assert.Equal(t, 6, setup.Exit)
	assert.Equal(t, 99.0, setup.ExitPrice)

	_, ok, err = TradeSetup(price, fast, slow, 4, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = TradeSetup(price[:3], fast, slow, 0, 4)
	require.ErrorIs(t, err, core.ErrInvalidInput)
}
