package plot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/raykavin/machart/pkg/core"
	"github.com/raykavin/machart/pkg/logger"
)

// DefaultArea is the drawing area used when a request does not name one
var DefaultArea = core.Area{Width: 800, Height: 400, Padding: 40}

// Chart serves chart frames as JSON over HTTP
type Chart struct {
	sync.Mutex
	port       int
	area       core.Area
	source     FrameSource
	server     *http.Server
	lastUpdate time.Time
	log        logger.Logger
}

// Option defines a function type for configuring a Chart instance
type Option func(*Chart)

// WithPort sets the HTTP server port
func WithPort(port int) Option {
	return func(chart *Chart) {
		chart.port = port
	}
}

// WithArea sets the area used when a request omits width, height or padding
func WithArea(area core.Area) Option {
	return func(chart *Chart) {
		chart.area = area
	}
}

// WithSource sets the frame source, usually a scenario builder
func WithSource(source FrameSource) Option {
	return func(chart *Chart) {
		chart.source = source
	}
}

// NewChart creates a new chart instance with the provided options
func NewChart(log logger.Logger, options ...Option) (*Chart, error) {
	chart := &Chart{
		port: 8080,
		area: DefaultArea,
		log:  log,
	}

	for _, option := range options {
		option(chart)
	}

	if chart.source == nil {
		return nil, fmt.Errorf("chart needs a frame source: %w", core.ErrInvalidInput)
	}
	if !chart.area.Valid() {
		return nil, fmt.Errorf("chart area %+v: %w", chart.area, core.ErrInvalidInput)
	}

	return chart, nil
}

// Handler returns the chart routes
func (c *Chart) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", c.handleHealth)
	mux.HandleFunc("/scenarios", c.handleScenarios)
	mux.HandleFunc("/data", c.handleData)
	mux.HandleFunc("/series", c.handleSeries)
	return c.withRequestID(mux)
}

// Start serves the chart until ctx is cancelled
func (c *Chart) Start(ctx context.Context) error {
	c.Lock()
	c.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", c.port),
		Handler:           c.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	server := c.server
	c.Unlock()

	errCh := make(chan error, 1)
	go func() {
		c.log.Infof("Chart available at http://localhost:%d", c.port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

type requestIDKey struct{}

// RequestID returns the id assigned to the request carried by ctx
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (c *Chart) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ulid.Make().String()
		w.Header().Set("X-Request-Id", id)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))

		c.log.WithFields(map[string]any{
			"request_id": id,
			"path":       r.URL.Path,
			"elapsed":    time.Since(start).String(),
		}).Debug("request served")
	})
}

func (c *Chart) touch() {
	c.Lock()
	c.lastUpdate = time.Now()
	c.Unlock()
}
