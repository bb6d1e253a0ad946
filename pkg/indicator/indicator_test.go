package indicator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/machart/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSeries(seed int64, n int) core.Series[float64] {
	rng := rand.New(rand.NewSource(seed))
	out := make(core.Series[float64], n)
	price := 100.0
	for i := range out {
		price += (rng.Float64() - 0.5) * 4
		out[i] = price
	}
	return out
}

func TestSMA_Ramp(t *testing.T) {
	sma, err := SMA(core.Series[float64]{10, 12, 14, 16, 18}, 3)
	require.NoError(t, err)
	require.Len(t, sma, 5)

	assert.True(t, core.IsGap(sma[0]))
	assert.True(t, core.IsGap(sma[1]))
	assert.InDelta(t, 12, sma[2], 1e-12)
	assert.InDelta(t, 14, sma[3], 1e-12)
	assert.InDelta(t, 16, sma[4], 1e-12)
}

func TestSMA_DefinedCount(t *testing.T) {
	series := randomSeries(1, 30)
	for period := 1; period <= 35; period++ {
		sma, err := SMA(series, period)
		require.NoError(t, err)
		require.Len(t, sma, len(series))

		want := len(series) - period + 1
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, core.CountDefined(sma), "period %d", period)

		// every defined value sits at the tail
		for i := range sma {
			assert.Equal(t, i >= period-1, !core.IsGap(sma[i]), "period %d index %d", period, i)
		}
	}
}

func TestSMA_Constant(t *testing.T) {
	series := core.Series[float64]{7.5, 7.5, 7.5, 7.5, 7.5, 7.5}
	sma, err := SMA(series, 4)
	require.NoError(t, err)

	for _, v := range core.Defined(sma) {
		assert.Equal(t, 7.5, v)
	}
}

func TestEMA_Ramp(t *testing.T) {
	ema, err := EMA(core.Series[float64]{10, 12, 14, 16, 18}, 3)
	require.NoError(t, err)

	assert.True(t, core.IsGap(ema[0]))
	assert.True(t, core.IsGap(ema[1]))
	assert.InDelta(t, 12, ema[2], 1e-12)
	assert.InDelta(t, 14, ema[3], 1e-12)
	assert.InDelta(t, 16, ema[4], 1e-12)
}

func TestEMA_PeriodOneIsIdentity(t *testing.T) {
	series := randomSeries(2, 25)
	ema, err := EMA(series, 1)
	require.NoError(t, err)
	require.Len(t, ema, len(series))

	assert.Equal(t, series[0], ema[0])
	for i := range series {
		assert.InDelta(t, series[i], ema[i], 1e-9, "index %d", i)
	}
}

func TestEMA_ShortSeries(t *testing.T) {
	ema, err := EMA(core.Series[float64]{1, 2}, 3)
	require.NoError(t, err)
	require.Len(t, ema, 2)
	assert.Zero(t, core.CountDefined(ema))

	empty, err := EMA(nil, 3)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWMA_Weights(t *testing.T) {
	wma, err := WMA(core.Series[float64]{1, 2, 3}, 3)
	require.NoError(t, err)
	// (1*1 + 2*2 + 3*3) / 6
	assert.InDelta(t, 14.0/6.0, wma[2], 1e-12)
	assert.True(t, core.IsGap(wma[1]))
}

func TestWMA_FavoursNewestSample(t *testing.T) {
	base := core.Series[float64]{10, 11, 12, 13, 14}
	wma, err := WMA(base, 5)
	require.NoError(t, err)

	newest := append(core.Series[float64]{}, base...)
	newest[4] += 1
	oldest := append(core.Series[float64]{}, base...)
	oldest[0] += 1

	withNewest, err := WMA(newest, 5)
	require.NoError(t, err)
	withOldest, err := WMA(oldest, 5)
	require.NoError(t, err)

	assert.Greater(t, math.Abs(withNewest[4]-wma[4]), math.Abs(withOldest[4]-wma[4]))
}

func TestTransforms_InvalidPeriod(t *testing.T) {
	series := core.Series[float64]{1, 2, 3}
	for _, kind := range []Kind{KindSMA, KindEMA, KindWMA} {
		for _, period := range []int{0, -1, -20} {
			out, err := Compute(kind, series, period)
			require.ErrorIs(t, err, core.ErrInvalidParameter, "%s(%d)", kind, period)
			assert.Nil(t, out)
		}
	}
}

func TestTransforms_PeriodLongerThanSeries(t *testing.T) {
	series := core.Series[float64]{1, 2, 3}
	for _, kind := range []Kind{KindSMA, KindEMA, KindWMA} {
		for _, period := range []int{4, 1 << 20, math.MaxInt} {
			out, err := Compute(kind, series, period)
			require.NoError(t, err, "%s(%d)", kind, period)
			require.Len(t, out, len(series))
			assert.Zero(t, core.CountDefined(out), "%s(%d)", kind, period)
		}
	}
}

func TestEMA_ReseedsAfterGap(t *testing.T) {
	series := core.Series[float64]{10, 11, 12, core.Gap, 14, 15, 16, 17, 18, 19}
	ema, err := EMA(series, 2)
	require.NoError(t, err)
	require.Len(t, ema, len(series))

	assert.True(t, core.IsGap(ema[0]))
	assert.InDelta(t, 10.5, ema[1], 1e-12)
	assert.InDelta(t, 11.5, ema[2], 1e-12)
	assert.True(t, core.IsGap(ema[3]))
	assert.True(t, core.IsGap(ema[4]))
	// new seed is the mean of 14 and 15
	assert.InDelta(t, 14.5, ema[5], 1e-12)
	assert.InDelta(t, (16-14.5)*2.0/3.0+14.5, ema[6], 1e-12)
	assert.Equal(t, 7, core.CountDefined(ema))

	clean, err := EMA(series[4:], 2)
	require.NoError(t, err)
	for i := range clean {
		if core.IsGap(clean[i]) {
			assert.True(t, core.IsGap(ema[i+4]), "index %d", i+4)
			continue
		}
		assert.InDelta(t, clean[i], ema[i+4], 1e-9, "index %d", i+4)
	}
}

func TestTransforms_MatchTalib(t *testing.T) {
	series := randomSeries(42, 120)
	for _, period := range []int{2, 9, 20, 50} {
		sma, err := SMA(series, period)
		require.NoError(t, err)
		ema, err := EMA(series, period)
		require.NoError(t, err)
		wma, err := WMA(series, period)
		require.NoError(t, err)

		refSMA := talib.Sma(series, period)
		refEMA := talib.Ema(series, period)
		refWMA := talib.Wma(series, period)

		for i := period - 1; i < len(series); i++ {
			assert.InDelta(t, refSMA[i], sma[i], 1e-9, "SMA(%d)[%d]", period, i)
			assert.InDelta(t, refEMA[i], ema[i], 1e-9, "EMA(%d)[%d]", period, i)
			assert.InDelta(t, refWMA[i], wma[i], 1e-9, "WMA(%d)[%d]", period, i)
		}
	}
}

func TestTransforms_DoNotMutateInput(t *testing.T) {
	series := randomSeries(7, 40)
	snapshot := append(core.Series[float64]{}, series...)

	_, err := Ribbon(KindEMA, series, FibonacciPeriods...)
	require.NoError(t, err)
	_, err = WMA(series, 10)
	require.NoError(t, err)

	assert.Equal(t, snapshot, series)
}

func TestRibbon(t *testing.T) {
	series := randomSeries(3, 100)
	ribbon, err := Ribbon(KindEMA, series, FibonacciPeriods...)
	require.NoError(t, err)
	require.Len(t, ribbon, len(FibonacciPeriods))

	for i, period := range FibonacciPeriods {
		assert.Equal(t, period-1, core.FirstDefined(ribbon[i]))
	}

	_, err = Ribbon(KindSMA, series, 5, 0)
	require.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
		fails bool
	}{
		{"sma", KindSMA, false},
		{" EMA ", KindEMA, false},
		{"Wma", KindWMA, false},
		{"hull", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.fails {
				require.ErrorIs(t, err, core.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}
