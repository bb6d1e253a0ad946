package scenario

import (
	"fmt"
	"time"

	"github.com/StudioSol/set"
	"github.com/raykavin/machart/pkg/core"
	ma "github.com/raykavin/machart/pkg/indicator"
	"github.com/raykavin/machart/pkg/plot"
	"github.com/raykavin/machart/pkg/plot/indicator"
)

// Animation durations used by the charts
const (
	DefaultDuration = 1500 * time.Millisecond
	SlowDuration    = 3000 * time.Millisecond
)

// Zone kinds
const (
	ZoneSupport    = "support"
	ZoneResistance = "resistance"
)

// Overlay is one moving average drawn over the prices
type Overlay struct {
	Kind   ma.Kind
	Period int
	Color  string
	Width  float64
}

// RibbonOverlay is a set of averages drawn together
type RibbonOverlay struct {
	Kind    ma.Kind
	Periods []int
	Colors  []string
	Width   float64
}

// Scenario describes one educational chart
type Scenario struct {
	Name      string
	Title     string
	Generator Generator
	Overlays  []Overlay
	Ribbon    *RibbonOverlay

	// DisplayStart drops the first samples after the averages are computed,
	// so long averages are already warmed up on screen
	DisplayStart int
	Margin       float64

	// Wick draws the prices as candles instead of a line
	Wick       core.WickFunc
	PriceColor string
	PriceWidth float64
	HidePrice  bool

	// Zone shades the area between the first overlay and the chart edge
	Zone string

	Markers         MarkerRule
	MarkerThreshold float64
	Duration        time.Duration
}

// Indicators creates fresh overlay instances for one build
func (s Scenario) Indicators() ([]plot.Indicator, error) {
	indicators := make([]plot.Indicator, 0, len(s.Overlays)+1)
	if s.Ribbon != nil {
		ribbon, err := indicator.Ribbon(s.Ribbon.Kind, s.Ribbon.Periods, s.Ribbon.Colors, s.Ribbon.Width)
		if err != nil {
			return nil, err
		}
		indicators = append(indicators, ribbon)
	}

	for _, overlay := range s.Overlays {
		indicators = append(indicators, indicator.MA(overlay.Kind, overlay.Period, overlay.Color, overlay.Width))
	}
	return indicators, nil
}

// Catalog is an ordered registry of scenarios
type Catalog struct {
	names     *set.LinkedHashSetString
	scenarios map[string]Scenario
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		names:     set.NewLinkedHashSetString(),
		scenarios: make(map[string]Scenario),
	}
}

// Register adds scenarios, rejecting duplicate or incomplete ones
func (c *Catalog) Register(scenarios ...Scenario) error {
	for _, s := range scenarios {
		if s.Name == "" || s.Generator == nil {
			return fmt.Errorf("%w: scenario %q needs a name and a generator", core.ErrInvalidParameter, s.Name)
		}
		if _, exists := c.scenarios[s.Name]; exists {
			return fmt.Errorf("%w: scenario %q already registered", core.ErrInvalidParameter, s.Name)
		}

		if s.Duration == 0 {
			s.Duration = DefaultDuration
		}
		if s.PriceColor == "" {
			s.PriceColor = ColorPrice
		}
		if s.PriceWidth == 0 {
			s.PriceWidth = 1.5
		}

		c.scenarios[s.Name] = s
		c.names.Add(s.Name)
	}
	return nil
}

// Get returns the scenario registered under name
func (c *Catalog) Get(name string) (Scenario, error) {
	s, ok := c.scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", core.ErrScenarioNotFound, name)
	}
	return s, nil
}

// Names returns the scenario names in registration order
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.names.Length())
	for name := range c.names.Iter() {
		names = append(names, name)
	}
	return names
}
