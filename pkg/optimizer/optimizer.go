// Package optimizer searches moving average period pairs for the crossover
// rule that performed best on a price series.
package optimizer

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/raykavin/machart/pkg/core"
	"github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/logger"
	"github.com/raykavin/machart/pkg/signal"
)

// Pair is one crossover rule: buy when the fast average crosses above the
// slow one, sell on the opposite cross
type Pair struct {
	Kind indicator.Kind
	Fast int
	Slow int
}

func (p Pair) String() string {
	return fmt.Sprintf("%s(%d)/%s(%d)", p.Kind, p.Fast, p.Kind, p.Slow)
}

// Result is the simulated performance of a pair
type Result struct {
	Pair   Pair
	Trades int     // Closed trades
	Wins   int     // Trades closed above the entry
	Profit float64 // Sum of trade returns in percent
}

// WinRate returns the share of winning trades in [0,1]
func (r Result) WinRate() float64 {
	if r.Trades == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Trades)
}

// Range is an inclusive period range walked by Step
type Range struct {
	Min, Max, Step int
}

func (r Range) values() []int {
	step := max(r.Step, 1)
	values := make([]int, 0)
	for v := r.Min; v <= r.Max; v += step {
		values = append(values, v)
	}
	return values
}

// Config configures a grid search
type Config struct {
	Kinds       []indicator.Kind
	Fast        Range
	Slow        Range
	Parallelism int
	Logger      logger.Logger
}

// Grid evaluates every pair with Fast < Slow
type Grid struct {
	pairs       []Pair
	parallelism int
	log         logger.Logger
}

// NewGrid validates cfg and expands the pairs to evaluate
func NewGrid(cfg Config) (*Grid, error) {
	if cfg.Fast.Min <= 0 || cfg.Slow.Min <= 0 || cfg.Fast.Max < cfg.Fast.Min || cfg.Slow.Max < cfg.Slow.Min {
		return nil, fmt.Errorf("%w: period ranges %+v and %+v", core.ErrInvalidParameter, cfg.Fast, cfg.Slow)
	}

	kinds := cfg.Kinds
	if len(kinds) == 0 {
		kinds = []indicator.Kind{indicator.KindSMA}
	}

	pairs := make([]Pair, 0)
	for _, kind := range kinds {
		for _, fast := range cfg.Fast.values() {
			for _, slow := range cfg.Slow.values() {
				if fast < slow {
					pairs = append(pairs, Pair{Kind: kind, Fast: fast, Slow: slow})
				}
			}
		}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no pair with fast < slow", core.ErrInvalidParameter)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &Grid{
		pairs:       pairs,
		parallelism: max(cfg.Parallelism, 1),
		log:         log,
	}, nil
}

// Pairs returns the pairs the grid evaluates
func (g *Grid) Pairs() []Pair {
	return g.pairs
}

// Optimize evaluates every pair on prices and returns the results, most
// profitable first
func (g *Grid) Optimize(ctx context.Context, prices core.Series[float64]) ([]Result, error) {
	g.log.Infof("Evaluating %d crossover pairs", len(g.pairs))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		results   = make([]Result, 0, len(g.pairs))
		mutex     sync.Mutex
		wg        sync.WaitGroup
		once      sync.Once
		failure   error
		semaphore = make(chan struct{}, g.parallelism)
	)

	for _, pair := range g.pairs {
		select {
		case <-ctx.Done():
		case semaphore <- struct{}{}:
			wg.Add(1)
			go func(pair Pair) {
				defer wg.Done()
				defer func() { <-semaphore }()

				result, err := Evaluate(prices, pair)
				if err != nil {
					once.Do(func() {
						failure = fmt.Errorf("evaluate %s: %w", pair, err)
						cancel()
					})
					return
				}

				mutex.Lock()
				results = append(results, result)
				mutex.Unlock()
			}(pair)
			continue
		}
		break
	}

	wg.Wait()

	if failure != nil {
		return nil, failure
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortResults(results)
	return results, nil
}

// Evaluate simulates pair on prices. Each golden cross opens a trade at the
// price of that index and the next death cross closes it; a trade still open
// at the end is not counted.
func Evaluate(prices core.Series[float64], pair Pair) (Result, error) {
	fast, err := indicator.Compute(pair.Kind, prices, pair.Fast)
	if err != nil {
		return Result{}, err
	}
	slow, err := indicator.Compute(pair.Kind, prices, pair.Slow)
	if err != nil {
		return Result{}, err
	}

	crosses, err := signal.Crosses(fast, slow)
	if err != nil {
		return Result{}, err
	}

	result := Result{Pair: pair}
	entry := core.Gap
	for _, cross := range crosses {
		price := prices[cross.Index]
		switch {
		case cross.Kind == signal.GoldenCross && core.IsGap(entry):
			entry = price
		case cross.Kind == signal.DeathCross && !core.IsGap(entry):
			if !core.IsGap(price) && entry != 0 {
				change := (price - entry) / entry * 100
				result.Trades++
				result.Profit += change
				if change > 0 {
					result.Wins++
				}
			}
			entry = core.Gap
		}
	}

	return result, nil
}

func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Profit != b.Profit {
			return a.Profit > b.Profit
		}
		if a.Pair.Kind != b.Pair.Kind {
			return a.Pair.Kind < b.Pair.Kind
		}
		if a.Pair.Fast != b.Pair.Fast {
			return a.Pair.Fast < b.Pair.Fast
		}
		return a.Pair.Slow < b.Pair.Slow
	})
}
