package core

import "errors"

var (
	// ErrInvalidParameter is returned when a transform receives a non-positive period.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInput is returned for mismatched series lengths, a degenerate
	// drawing area or an out of range progress value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrScenarioNotFound is returned when a scenario name is not registered.
	ErrScenarioNotFound = errors.New("scenario not found")
)
