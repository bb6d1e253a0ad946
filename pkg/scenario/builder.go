package scenario

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/raykavin/machart/pkg/core"
	"github.com/raykavin/machart/pkg/logger"
	"github.com/raykavin/machart/pkg/plot"
	"github.com/raykavin/machart/pkg/plot/indicator"
	"github.com/raykavin/machart/pkg/signal"
)

// Ribbon classification window
const (
	ribbonLookback  = 10
	ribbonThreshold = 0.05
)

// Cache stores generated price series by key
type Cache interface {
	GetOrCompute(key string, compute func() (core.Series[float64], error)) (core.Series[float64], error)
	InvalidateAll() error
}

// Builder turns scenarios into frames, generating each price series once
type Builder struct {
	catalog *Catalog
	cache   Cache
	seed    int64
	log     logger.Logger
}

// Option configures a Builder
type Option func(*Builder)

// WithSeed sets the seed of the random price generators
func WithSeed(seed int64) Option {
	return func(b *Builder) {
		b.seed = seed
	}
}

// WithCatalog replaces the default scenario catalog
func WithCatalog(catalog *Catalog) Option {
	return func(b *Builder) {
		b.catalog = catalog
	}
}

// NewBuilder creates a builder over the default catalog
func NewBuilder(cache Cache, log logger.Logger, options ...Option) *Builder {
	builder := &Builder{
		catalog: DefaultCatalog(),
		cache:   cache,
		seed:    1,
		log:     log,
	}

	for _, option := range options {
		option(builder)
	}

	return builder
}

// Names returns the scenario names in reading order
func (b *Builder) Names() []string {
	return b.catalog.Names()
}

// Scenario returns the scenario registered under name
func (b *Builder) Scenario(name string) (Scenario, error) {
	return b.catalog.Get(name)
}

// Prices returns the full price series of a scenario, generated on first use
func (b *Builder) Prices(ctx context.Context, name string) (core.Series[float64], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := b.catalog.Get(name)
	if err != nil {
		return nil, err
	}

	return b.cache.GetOrCompute(b.cacheKey(name), func() (core.Series[float64], error) {
		b.log.WithField("scenario", name).Debug("generating price series")
		return s.Generator(rand.New(rand.NewSource(b.scenarioSeed(name)))), nil
	})
}

// Invalidate drops every generated series, for example after a resize
func (b *Builder) Invalidate() error {
	return b.cache.InvalidateAll()
}

// Columns returns the displayed price series followed by every average
func (b *Builder) Columns(ctx context.Context, name string) ([]plot.Column, error) {
	view, err := b.load(ctx, name)
	if err != nil {
		return nil, err
	}

	columns := []plot.Column{{Name: "price", Values: view.prices}}
	for _, metric := range view.metrics {
		columns = append(columns, plot.Column{Name: metric.Name, Values: metric.Values})
	}
	return columns, nil
}

// Frame builds the chart of a scenario at the given animation progress
func (b *Builder) Frame(ctx context.Context, name string, area core.Area, progress float64) (plot.Frame, error) {
	view, err := b.load(ctx, name)
	if err != nil {
		return plot.Frame{}, err
	}
	s := view.scenario

	series := make([]core.Series[float64], 0, len(view.metrics)+1)
	series = append(series, view.prices)
	for _, metric := range view.metrics {
		series = append(series, metric.Values)
	}

	rng, ok := plot.Range(series...)
	if !ok {
		return plot.Frame{}, fmt.Errorf("%w: scenario %s has no values to draw", core.ErrInvalidInput, name)
	}
	rng = rng.Widen(s.Margin)

	points, err := plot.MapToPoints(series, area, plot.WithRange(rng), plot.WithProgress(progress))
	if err != nil {
		return plot.Frame{}, fmt.Errorf("scenario %s: %w", name, err)
	}

	scale, err := plot.NewScale(area, rng, len(view.prices))
	if err != nil {
		return plot.Frame{}, fmt.Errorf("scenario %s: %w", name, err)
	}

	frame := plot.Frame{
		Scenario: s.Name,
		Title:    s.Title,
		Area:     area,
		Range:    rng,
		Progress: progress,
		Lines:    make([]plot.Line, 0, len(series)),
	}

	switch {
	case s.Wick != nil:
		candles := core.CandlesFromPrices(view.prices, s.Wick)
		frame.Candles = plot.TruncateCandles(plot.MapCandles(scale, candles), progress)
	case !s.HidePrice:
		frame.Lines = append(frame.Lines, plot.Line{
			Name:   "Price",
			Color:  s.PriceColor,
			Style:  plot.StyleLine,
			Width:  s.PriceWidth,
			Points: points[0],
		})
	}

	for i, metric := range view.metrics {
		frame.Lines = append(frame.Lines, plot.Line{
			Name:   metric.Name,
			Color:  metric.Color,
			Style:  metric.Style,
			Width:  metric.Width,
			Points: points[i+1],
		})
	}

	if len(view.ribbon) > 0 {
		state := signal.ClassifyRibbon(signal.RibbonSpread(view.ribbon), ribbonLookback, ribbonThreshold)
		frame.Ribbon = state.String()
	}

	if s.Zone != "" && len(view.metrics) > 0 {
		frame.Zones = []plot.Zone{zone(s.Zone, area, plot.MapSeries(scale, view.metrics[0].Values))}
	}

	if s.Markers != nil && progress > s.MarkerThreshold {
		averages := make([]core.Series[float64], len(view.metrics))
		for i, metric := range view.metrics {
			averages[i] = metric.Values
		}

		frame.Markers, err = s.Markers(MarkerInput{Prices: view.prices, Averages: averages, Scale: scale})
		if err != nil {
			return plot.Frame{}, fmt.Errorf("scenario %s markers: %w", name, err)
		}
	}

	return frame, nil
}

type view struct {
	scenario Scenario
	prices   core.Series[float64]
	metrics  []plot.IndicatorMetric
	ribbon   []core.Series[float64]
}

// load computes the averages on the full series and slices the displayed window
func (b *Builder) load(ctx context.Context, name string) (view, error) {
	prices, err := b.Prices(ctx, name)
	if err != nil {
		return view{}, err
	}

	s, err := b.catalog.Get(name)
	if err != nil {
		return view{}, err
	}

	indicators, err := s.Indicators()
	if err != nil {
		return view{}, err
	}

	start := min(s.DisplayStart, len(prices))
	v := view{scenario: s, prices: prices[start:]}
	for _, ind := range indicators {
		if err := ind.Load(prices); err != nil {
			return view{}, fmt.Errorf("scenario %s: %w", name, err)
		}
		for _, metric := range ind.Metrics() {
			metric.Values = metric.Values[start:]
			v.metrics = append(v.metrics, metric)
		}
		for _, member := range indicator.Members(ind) {
			v.ribbon = append(v.ribbon, member[start:])
		}
	}

	return v, nil
}

func zone(kind string, area core.Area, points []core.Point) plot.Zone {
	z := plot.Zone{Kind: kind, Points: points}
	if kind == ZoneResistance {
		z.Color = ColorResistanceZone
		z.Edge = area.Padding
	} else {
		z.Color = ColorSupportZone
		z.Edge = area.Height - area.Padding
	}
	return z
}

func (b *Builder) cacheKey(name string) string {
	return fmt.Sprintf("%s:%d", name, b.seed)
}

func (b *Builder) scenarioSeed(name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return b.seed ^ int64(h.Sum64())
}
