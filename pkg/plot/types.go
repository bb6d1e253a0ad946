package plot

import (
	"context"

	"github.com/raykavin/machart/pkg/core"
)

// Line styles understood by renderers
const (
	StyleLine   = "line"
	StyleDashed = "dashed"
)

// Marker kinds
const (
	MarkerGoldenCross = "golden_cross"
	MarkerDeathCross  = "death_cross"
	MarkerBounce      = "bounce"
	MarkerRejection   = "rejection"
	MarkerEntry       = "entry"
	MarkerExit        = "exit"
	MarkerStop        = "stop"
)

// IndicatorMetric represents a single metric within an indicator
type IndicatorMetric struct {
	Name   string
	Color  string
	Style  string
	Width  float64
	Values core.Series[float64]
}

// Indicator interface defines the methods required to implement a chart overlay
type Indicator interface {
	Name() string
	Warmup() int
	Metrics() []IndicatorMetric
	Load(prices core.Series[float64]) error
}

// Line is a mapped series ready to be stroked
type Line struct {
	Name   string       `json:"name" yaml:"name"`
	Color  string       `json:"color" yaml:"color"`
	Style  string       `json:"style" yaml:"style"`
	Width  float64      `json:"width" yaml:"width"`
	Points []core.Point `json:"points" yaml:"points"`
}

// CandleShape is a candle already placed in area coordinates
type CandleShape struct {
	Index   int     `json:"i" yaml:"i"`
	X       float64 `json:"x" yaml:"x"`
	Open    float64 `json:"open" yaml:"open"`
	Close   float64 `json:"close" yaml:"close"`
	High    float64 `json:"high" yaml:"high"`
	Low     float64 `json:"low" yaml:"low"`
	Bullish bool    `json:"bullish" yaml:"bullish"`
}

// Marker highlights a single event on the chart
type Marker struct {
	Kind  string     `json:"kind" yaml:"kind"`
	Label string     `json:"label" yaml:"label"`
	Color string     `json:"color" yaml:"color"`
	Value float64    `json:"value" yaml:"value"`
	Point core.Point `json:"point" yaml:"point"`
}

// Zone is the area between an average and the top or bottom edge of the chart
type Zone struct {
	Kind   string       `json:"kind" yaml:"kind"`
	Color  string       `json:"color" yaml:"color"`
	Edge   float64      `json:"edge" yaml:"edge"`
	Points []core.Point `json:"points" yaml:"points"`
}

// Frame is everything a renderer needs to draw one chart at one progress value
type Frame struct {
	Scenario string        `json:"scenario" yaml:"scenario"`
	Title    string        `json:"title" yaml:"title"`
	Area     core.Area     `json:"area" yaml:"area"`
	Range    ValueRange    `json:"range" yaml:"range"`
	Progress float64       `json:"progress" yaml:"progress"`
	Lines    []Line        `json:"lines" yaml:"lines"`
	Candles  []CandleShape `json:"candles,omitempty" yaml:"candles,omitempty"`
	Zones    []Zone        `json:"zones,omitempty" yaml:"zones,omitempty"`
	Markers  []Marker      `json:"markers,omitempty" yaml:"markers,omitempty"`
	Ribbon   string        `json:"ribbon,omitempty" yaml:"ribbon,omitempty"`
}

// Column is a named raw or derived series
type Column struct {
	Name   string
	Values core.Series[float64]
}

// FrameSource builds frames for named charts
type FrameSource interface {
	Names() []string
	Frame(ctx context.Context, name string, area core.Area, progress float64) (Frame, error)
	Columns(ctx context.Context, name string) ([]Column, error)
}
