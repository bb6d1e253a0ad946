package machart

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/raykavin/machart/pkg/core"
	"github.com/raykavin/machart/pkg/plot"
	"github.com/schollz/progressbar/v3"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultSteps is the number of frames exported per scenario
const DefaultSteps = 30

// ExportOptions selects what Export writes
type ExportOptions struct {
	Dir       string
	Format    string
	Scenarios []string  // empty exports every scenario
	Area      core.Area // zero uses the configured area
	Steps     int       // evenly spaced eased frames, ignored with Animate
	Animate   bool      // record frames in real time with the animator
	Progress  io.Writer // progress bar output, nil disables it
}

// Export writes the animation frames of each scenario to Dir, one file per
// scenario, and returns the written paths
func (m *Machart) Export(ctx context.Context, opts ExportOptions) ([]string, error) {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = FormatJSON
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("export format %q: %w", opts.Format, core.ErrInvalidParameter)
	}

	if opts.Area == (core.Area{}) {
		opts.Area = m.config.Area
	}
	if opts.Steps <= 0 {
		opts.Steps = DefaultSteps
	}

	names := opts.Scenarios
	if len(names) == 0 {
		names = m.builder.Names()
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, err
	}

	progress := io.Discard
	if opts.Progress != nil {
		progress = opts.Progress
	}
	bar := progressbar.NewOptions(len(names),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("exporting"),
	)

	paths := make([]string, 0, len(names))
	for _, name := range names {
		var frames []plot.Frame
		var err error
		if opts.Animate {
			frames, err = m.recordFrames(ctx, name, opts.Area)
		} else {
			frames, err = m.steppedFrames(ctx, name, opts.Area, opts.Steps)
		}
		if err != nil {
			return paths, err
		}

		path := filepath.Join(opts.Dir, name+"."+format)
		if err := writeFrames(path, format, frames); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		m.log.WithField("scenario", name).Debugf("exported %d frames", len(frames))
		_ = bar.Add(1)
	}

	return paths, nil
}

// steppedFrames builds steps frames at evenly spaced points of the eased timeline
func (m *Machart) steppedFrames(ctx context.Context, name string, area core.Area, steps int) ([]plot.Frame, error) {
	frames := make([]plot.Frame, 0, steps)
	for i := 0; i < steps; i++ {
		raw := 1.0
		if steps > 1 {
			raw = float64(i) / float64(steps-1)
		}

		frame, err := m.builder.Frame(ctx, name, area, plot.EaseOutCubic(raw))
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

// recordFrames plays the scenario animation and keeps every frame drawn
func (m *Machart) recordFrames(ctx context.Context, name string, area core.Area) ([]plot.Frame, error) {
	duration, err := m.Duration(name)
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		frames   []plot.Frame
		frameErr error
	)

	m.animator.Animate(ctx, name, duration, func(progress float64) {
		frame, err := m.builder.Frame(ctx, name, area, progress)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			if frameErr == nil {
				frameErr = err
			}
			return
		}
		frames = append(frames, frame)
	})

	if err := m.animator.Wait(name); err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return frames, frameErr
}

func writeFrames(path, format string, frames []plot.Frame) error {
	var (
		content []byte
		err     error
	)

	switch format {
	case FormatYAML:
		content, err = yaml.Marshal(frames)
	default:
		content, err = json.MarshalIndent(frames, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return os.WriteFile(path, content, 0o644)
}
