// Package machart wires the moving average chart pipeline together: the
// scenario builder over a price cache, the chart server, frame export and
// indicator reports.
package machart

import (
	"context"
	"fmt"
	"time"

	"github.com/raykavin/machart/pkg/animation"
	"github.com/raykavin/machart/pkg/config"
	"github.com/raykavin/machart/pkg/logger"
	"github.com/raykavin/machart/pkg/plot"
	"github.com/raykavin/machart/pkg/scenario"
	"github.com/raykavin/machart/pkg/storage"
)

// Machart ties the price cache, scenario builder and animator to one config
type Machart struct {
	config   *config.Config
	cache    *storage.BuntCache
	builder  *scenario.Builder
	animator *animation.Animator
	log      logger.Logger
}

// New opens the price cache named by cfg and builds the scenario catalog
func New(cfg *config.Config, log logger.Logger) (*Machart, error) {
	if log == nil {
		log = DefaultLog
	}

	cache, err := storage.NewBuntCache(cfg.CachePath)
	if err != nil {
		return nil, err
	}

	return &Machart{
		config:   cfg,
		cache:    cache,
		builder:  scenario.NewBuilder(cache, log, scenario.WithSeed(cfg.Seed)),
		animator: animation.New(animation.WithFrameInterval(cfg.FrameInterval), animation.WithLogger(log)),
		log:      log,
	}, nil
}

// Builder returns the scenario builder
func (m *Machart) Builder() *scenario.Builder {
	return m.builder
}

// Duration returns the animation duration of a scenario. Scenarios using the
// slow default follow the configured slow duration.
func (m *Machart) Duration(name string) (time.Duration, error) {
	s, err := m.builder.Scenario(name)
	if err != nil {
		return 0, err
	}
	if s.Duration == scenario.SlowDuration {
		return m.config.SlowDuration, nil
	}
	return m.config.Duration, nil
}

// Serve runs the chart server until ctx is done
func (m *Machart) Serve(ctx context.Context) error {
	chart, err := plot.NewChart(m.log,
		plot.WithPort(m.config.Port),
		plot.WithArea(m.config.Area),
		plot.WithSource(m.builder),
	)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return chart.Start(ctx)
}

// Close releases the price cache
func (m *Machart) Close() error {
	return m.cache.Close()
}
