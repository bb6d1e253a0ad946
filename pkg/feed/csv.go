// Package feed reads price series from CSV files.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/raykavin/machart/pkg/core"
)

// DefaultColumn is read when the file has a header and no column is named
const DefaultColumn = "close"

// ReadFile reads one price column from a CSV file. "-" reads stdin.
func ReadFile(path, column string) (core.Series[float64], error) {
	if path == "-" {
		return ReadPrices(os.Stdin, column)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadPrices(file, column)
}

// ReadPrices reads one price column from CSV. When the first row is a header
// the column is looked up by name (DefaultColumn when empty); otherwise
// column must be empty or a zero based index, and an empty column selects
// the last field. Empty cells are gaps.
func ReadPrices(r io.Reader, column string) (core.Series[float64], error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(lines) == 0 {
		return core.Series[float64]{}, nil
	}

	index, hasHeader, err := columnIndex(lines[0], column)
	if err != nil {
		return nil, err
	}
	if hasHeader {
		lines = lines[1:]
	}

	prices := make(core.Series[float64], 0, len(lines))
	for n, line := range lines {
		if index >= len(line) {
			return nil, fmt.Errorf("line %d has %d fields, want column %d: %w", n+1, len(line), index, core.ErrInvalidInput)
		}

		raw := strings.TrimSpace(line[index])
		if raw == "" {
			prices = append(prices, core.Gap)
			continue
		}

		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %q: %w", n+1, raw, core.ErrInvalidInput)
		}
		prices = append(prices, value)
	}

	return prices, nil
}

// columnIndex resolves column against the first row, reporting whether that
// row is a header
func columnIndex(first []string, column string) (int, bool, error) {
	hasHeader := false
	for _, field := range first {
		if _, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil && strings.TrimSpace(field) != "" {
			hasHeader = true
			break
		}
	}

	if !hasHeader {
		if column == "" {
			return len(first) - 1, false, nil
		}
		index, err := strconv.Atoi(column)
		if err != nil || index < 0 {
			return 0, false, fmt.Errorf("column %q must be an index for files without header: %w", column, core.ErrInvalidInput)
		}
		return index, false, nil
	}

	if column == "" {
		column = DefaultColumn
	}
	for i, field := range first {
		if strings.EqualFold(strings.TrimSpace(field), column) {
			return i, true, nil
		}
	}
	if index, err := strconv.Atoi(column); err == nil && index >= 0 && index < len(first) {
		return index, true, nil
	}
	return 0, true, fmt.Errorf("column %q not found in header %v: %w", column, first, core.ErrInvalidInput)
}
