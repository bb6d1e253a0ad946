// Package animation drives eased progress values for chart targets.
package animation

import (
	"context"
	"sync"
	"time"

	"github.com/raykavin/machart/pkg/logger"
	"github.com/raykavin/machart/pkg/plot"
)

// DefaultFrameInterval is roughly one frame at 60Hz.
const DefaultFrameInterval = 16 * time.Millisecond

// FrameFunc receives the eased progress of one frame, in [0,1].
type FrameFunc func(progress float64)

// Animator runs at most one animation per target id. Starting a new animation
// for an id cancels the one in flight; frames of one id never overlap.
type Animator struct {
	mu       sync.Mutex
	interval time.Duration
	running  map[string]*run
	log      logger.Logger
}

type run struct {
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// Option configures an Animator
type Option func(*Animator)

// WithFrameInterval sets the delay between frames
func WithFrameInterval(interval time.Duration) Option {
	return func(a *Animator) {
		if interval > 0 {
			a.interval = interval
		}
	}
}

// WithLogger sets the logger
func WithLogger(log logger.Logger) Option {
	return func(a *Animator) {
		a.log = log
	}
}

// New creates an animator ticking at DefaultFrameInterval unless overridden
func New(options ...Option) *Animator {
	a := &Animator{
		interval: DefaultFrameInterval,
		running:  make(map[string]*run),
		log:      logger.Nop(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Animate starts animating id over duration and returns immediately. fn is
// called with EaseOutCubic of the linear progress on every frame and with
// exactly 1 on the last one. A cancelled or superseded animation stops
// without the final frame.
func (a *Animator) Animate(ctx context.Context, id string, duration time.Duration, fn FrameFunc) {
	ctx, cancel := context.WithCancel(ctx)
	current := &run{cancel: cancel, done: make(chan struct{})}

	a.mu.Lock()
	previous := a.running[id]
	a.running[id] = current
	a.mu.Unlock()

	if previous != nil {
		a.log.WithField("target", id).Debug("animation superseded")
		previous.cancel()
	}

	go func() {
		defer close(current.done)
		defer cancel()
		defer a.release(id, current)

		if previous != nil {
			<-previous.done
		}
		current.err = a.play(ctx, duration, fn)
	}()
}

// Wait blocks until the animation currently registered for id ends. It
// returns nil when no animation is running or the animation completed, and
// the context error when it was cancelled.
func (a *Animator) Wait(id string) error {
	a.mu.Lock()
	current := a.running[id]
	a.mu.Unlock()

	if current == nil {
		return nil
	}
	<-current.done
	return current.err
}

// Stop cancels the animation of id, if any.
func (a *Animator) Stop(id string) {
	a.mu.Lock()
	current := a.running[id]
	a.mu.Unlock()

	if current != nil {
		current.cancel()
	}
}

func (a *Animator) play(ctx context.Context, duration time.Duration, fn FrameFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	start := time.Now()
	for {
		raw := plot.Progress(time.Since(start), duration)
		if raw >= 1 {
			fn(1)
			return nil
		}
		fn(plot.EaseOutCubic(raw))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (a *Animator) release(id string, r *run) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running[id] == r {
		delete(a.running, id)
	}
}
