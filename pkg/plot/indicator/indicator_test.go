package indicator

import (
	"testing"

	"github.com/raykavin/machart/pkg/core"
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/plot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var prices = core.Series[float64]{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

func TestAverages(t *testing.T) {
	tests := []struct {
		ind    plot.Indicator
		name   string
		kind   ma.Kind
		period int
	}{
		{SMA(3, "#fff", 2), "SMA(3)", ma.KindSMA, 3},
		{EMA(4, "#fff", 2), "EMA(4)", ma.KindEMA, 4},
		{WMA(5, "#fff", 2), "WMA(5)", ma.KindWMA, 5},
		{MA(ma.KindEMA, 2, "#fff", 2), "EMA(2)", ma.KindEMA, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.ind.Name())
			assert.Equal(t, tt.period-1, tt.ind.Warmup())

			require.NoError(t, tt.ind.Load(prices))
			metrics := tt.ind.Metrics()
			require.Len(t, metrics, 1)

			want, err := ma.Compute(tt.kind, prices, tt.period)
			require.NoError(t, err)
			assert.Equal(t, tt.name, metrics[0].Name)
			assert.Equal(t, plot.StyleLine, metrics[0].Style)
			assert.Equal(t, "#fff", metrics[0].Color)
			assert.Equal(t, 2.0, metrics[0].Width)
			assert.Equal(t, core.CountDefined(want), core.CountDefined(metrics[0].Values))
			assert.InDeltaSlice(t, want[tt.period-1:], metrics[0].Values[tt.period-1:], 1e-12)
		})
	}

	t.Run("invalid period", func(t *testing.T) {
		err := SMA(0, "#fff", 1).Load(prices)
		assert.ErrorIs(t, err, core.ErrInvalidParameter)
	})
}

func TestRibbon(t *testing.T) {
	ind, err := Ribbon(ma.KindSMA, []int{2, 3, 5}, []string{"a", "b", "c"}, 1)
	require.NoError(t, err)

	assert.Equal(t, "SMA Ribbon(2,3,5)", ind.Name())
	assert.Equal(t, 4, ind.Warmup())
	assert.Nil(t, Members(ind))

	require.NoError(t, ind.Load(prices))
	metrics := ind.Metrics()
	require.Len(t, metrics, 3)
	assert.Equal(t, "SMA(5)", metrics[0].Name)
	assert.Equal(t, "c", metrics[0].Color)
	assert.Equal(t, "SMA(2)", metrics[2].Name)

	members := Members(ind)
	require.Len(t, members, 3)
	assert.InDelta(t, 18.5, members[0][9], 1e-12)
	assert.InDelta(t, 17.0, members[2][9], 1e-12)

	assert.Nil(t, Members(SMA(3, "", 1)))

	_, err = Ribbon(ma.KindEMA, []int{8, 13}, []string{"a"}, 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
	_, err = Ribbon(ma.KindEMA, nil, nil, 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestCreateMetric(t *testing.T) {
	values := core.Series[float64]{1, 2}
	metric := CreateMetric(plot.StyleDashed, "#000", 1.5, values)
	assert.Empty(t, metric.Name)
	assert.Equal(t, plot.StyleDashed, metric.Style)

	metric = CreateMetric(plot.StyleLine, "#000", 1.5, values, "custom")
	assert.Equal(t, "custom", metric.Name)
}
