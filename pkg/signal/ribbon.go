package signal

import (
	"math"

	"github.com/raykavin/machart/pkg/core"
	"github.com/samber/lo"
)

// RibbonState describes how the members of a ribbon move relative to each other
type RibbonState int8

const (
	Flat RibbonState = iota
	Expanding
	Compressing
)

func (s RibbonState) String() string {
	switch s {
	case Expanding:
		return "expanding"
	case Compressing:
		return "compressing"
	}
	return "flat"
}

// RibbonSpread returns, per index, the distance between the highest and the
// lowest ribbon member. Indices where any member is a gap are gaps.
func RibbonSpread(ribbon []core.Series[float64]) core.Series[float64] {
	if len(ribbon) == 0 {
		return core.Series[float64]{}
	}

	length := lo.Min(lo.Map(ribbon, func(s core.Series[float64], _ int) int { return len(s) }))
	spread := core.Gaps(length)

	for i := 0; i < length; i++ {
		values := lo.Map(ribbon, func(s core.Series[float64], _ int) float64 { return s[i] })
		if !defined(values...) {
			continue
		}
		spread[i] = lo.Max(values) - lo.Min(values)
	}

	return spread
}

// ClassifyRibbon compares the spread at the end of the series with the spread
// lookback samples earlier. A relative change below threshold is Flat.
func ClassifyRibbon(spread core.Series[float64], lookback int, threshold float64) RibbonState {
	last := len(spread) - 1
	if lookback <= 0 || last-lookback < 0 {
		return Flat
	}

	now, before := spread[last], spread[last-lookback]
	if !defined(now, before) || before == 0 {
		return Flat
	}

	change := (now - before) / math.Abs(before)
	switch {
	case change > threshold:
		return Expanding
	case change < -threshold:
		return Compressing
	}
	return Flat
}
