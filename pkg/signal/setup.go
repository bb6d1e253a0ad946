package signal

import (
	"fmt"

	"github.com/raykavin/machart/pkg/core"
)

// Setup is a crossover trade drawn on the trading style charts
type Setup struct {
	Entry     int
	Exit      int
	HasExit   bool
	EntryCost float64
	ExitPrice float64
	StopLoss  float64
}

// TradeSetup enters on the first golden cross at or after start, exits on the
// first death cross after the entry and places the stop stopOffset below the
// entry price. ok is false when no entry exists.
func TradeSetup(price, fast, slow core.Series[float64], start int, stopOffset float64) (Setup, bool, error) {
	if len(price) != len(fast) {
		return Setup{}, false, fmt.Errorf("%w: price has %d samples, averages have %d",
			core.ErrInvalidInput, len(price), len(fast))
	}

	entry, ok, err := FirstCross(fast, slow, GoldenCross, start)
	if err != nil || !ok {
		return Setup{}, false, err
	}

	setup := Setup{
		Entry:     entry.Index,
		EntryCost: price[entry.Index],
		StopLoss:  price[entry.Index] - stopOffset,
	}

	exit, ok, err := FirstCross(fast, slow, DeathCross, entry.Index+1)
	if err != nil {
		return Setup{}, false, err
	}
	if ok {
		setup.Exit = exit.Index
		setup.HasExit = true
		setup.ExitPrice = price[exit.Index]
	}

	return setup, true, nil
}
