package plot

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/raykavin/machart/pkg/core"
	"github.com/samber/lo"
)

// handleHealth handles health check requests
func (c *Chart) handleHealth(w http.ResponseWriter, _ *http.Request) {
	c.Lock()
	last := c.lastUpdate
	c.Unlock()

	c.writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"scenarios":   len(c.source.Names()),
		"last_update": last,
	})
}

// handleScenarios lists the chart names in catalogue order
func (c *Chart) handleScenarios(w http.ResponseWriter, _ *http.Request) {
	c.writeJSON(w, http.StatusOK, c.source.Names())
}

// handleData builds one frame
func (c *Chart) handleData(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("scenario")
	if name == "" {
		c.writeError(w, r, fmt.Errorf("missing scenario: %w", core.ErrInvalidInput))
		return
	}

	area, progress, err := c.parseFrameQuery(r)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	frame, err := c.source.Frame(r.Context(), name, area, progress)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	c.touch()
	c.writeJSON(w, http.StatusOK, frame)
}

// handleSeries exports the raw and derived values of a chart as CSV
func (c *Chart) handleSeries(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("scenario")
	if name == "" {
		c.writeError(w, r, fmt.Errorf("missing scenario: %w", core.ErrInvalidInput))
		return
	}

	columns, err := c.source.Columns(r.Context(), name)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	buffer := bytes.NewBuffer(nil)
	if err := WriteCSV(buffer, columns); err != nil {
		c.log.WithError(err).Error("Failed writing CSV")
		http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename=series_"+name+".csv")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buffer.Bytes()); err != nil {
		c.log.WithError(err).Error("Failed writing CSV response")
	}
}

// WriteCSV writes columns side by side with an index column. Gaps are empty cells.
func WriteCSV(w io.Writer, columns []Column) error {
	writer := csv.NewWriter(w)

	header := append([]string{"index"}, lo.Map(columns, func(c Column, _ int) string { return c.Name })...)
	if err := writer.Write(header); err != nil {
		return err
	}

	rows := lo.Max(lo.Map(columns, func(c Column, _ int) int { return len(c.Values) }))
	for i := 0; i < rows; i++ {
		record := make([]string, 0, len(columns)+1)
		record = append(record, strconv.Itoa(i))
		for _, column := range columns {
			if i >= len(column.Values) || core.IsGap(column.Values[i]) {
				record = append(record, "")
				continue
			}
			record = append(record, strconv.FormatFloat(column.Values[i], 'f', -1, 64))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func (c *Chart) parseFrameQuery(r *http.Request) (core.Area, float64, error) {
	query := r.URL.Query()
	area := c.area
	progress := 1.0

	fields := []struct {
		key string
		dst *float64
	}{
		{"width", &area.Width},
		{"height", &area.Height},
		{"padding", &area.Padding},
		{"progress", &progress},
	}

	for _, field := range fields {
		raw := query.Get(field.key)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return core.Area{}, 0, fmt.Errorf("%s=%q: %w", field.key, raw, core.ErrInvalidInput)
		}
		*field.dst = value
	}

	if !area.Valid() {
		return core.Area{}, 0, fmt.Errorf("area %gx%g padding %g: %w",
			area.Width, area.Height, area.Padding, core.ErrInvalidInput)
	}

	return area, progress, nil
}

func (c *Chart) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrScenarioNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrInvalidInput), errors.Is(err, core.ErrInvalidParameter):
		status = http.StatusBadRequest
	}

	c.log.WithError(err).
		WithField("request_id", RequestID(r.Context())).
		Warnf("request failed with %d", status)

	c.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (c *Chart) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		c.log.Error("JSON encoding failed: ", err)
	}
}
