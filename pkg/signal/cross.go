package signal

import (
	"fmt"

	"github.com/raykavin/machart/pkg/core"
)

// CrossKind tells which way a fast average crossed a slow one
type CrossKind int8

const (
	// GoldenCross is the fast average moving above the slow one
	GoldenCross CrossKind = iota + 1
	// DeathCross is the fast average moving below the slow one
	DeathCross
)

func (k CrossKind) String() string {
	switch k {
	case GoldenCross:
		return "golden"
	case DeathCross:
		return "death"
	}
	return "none"
}

// Cross is a crossing between two averages at Index
type Cross struct {
	Index int
	Kind  CrossKind
	Fast  float64
	Slow  float64
}

// Crosses returns every crossing of fast over slow in index order. A crossing
// at i needs both series defined at i-1 and i.
func Crosses(fast, slow core.Series[float64]) ([]Cross, error) {
	if len(fast) != len(slow) {
		return nil, fmt.Errorf("%w: series lengths differ (%d and %d)", core.ErrInvalidInput, len(fast), len(slow))
	}

	crosses := make([]Cross, 0)
	for i := 1; i < len(fast); i++ {
		if !defined(fast[i-1], slow[i-1], fast[i], slow[i]) {
			continue
		}

		var kind CrossKind
		switch {
		case fast[i-1] < slow[i-1] && fast[i] >= slow[i]:
			kind = GoldenCross
		case fast[i-1] > slow[i-1] && fast[i] <= slow[i]:
			kind = DeathCross
		default:
			continue
		}

		crosses = append(crosses, Cross{Index: i, Kind: kind, Fast: fast[i], Slow: slow[i]})
	}

	return crosses, nil
}

// FirstCross returns the first crossing of the given kind at or after start
func FirstCross(fast, slow core.Series[float64], kind CrossKind, start int) (Cross, bool, error) {
	crosses, err := Crosses(fast, slow)
	if err != nil {
		return Cross{}, false, err
	}

	for _, cross := range crosses {
		if cross.Kind == kind && cross.Index >= start {
			return cross, true, nil
		}
	}
	return Cross{}, false, nil
}

func defined(values ...float64) bool {
	for _, v := range values {
		if core.IsGap(v) {
			return false
		}
	}
	return true
}
