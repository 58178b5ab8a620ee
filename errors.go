package gctrace

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFeedRate is returned when a move would run with a feed rate
	// that is zero or negative.
	ErrInvalidFeedRate = errors.New("feed rate must be positive")

	// ErrDegenerateArc is returned for arcs whose radius is effectively zero.
	ErrDegenerateArc = errors.New("arc radius is zero")

	// ErrUnsupportedMotion is returned for motion codes the interpreter does
	// not execute, such as canned cycles or splines.
	ErrUnsupportedMotion = errors.New("unsupported motion")

	ErrConfigValidation = errors.New("configuration validation failed")
)

// LineError reports a failure to honor a single program line.
type LineError struct {
	Line int
	Err  error
}

func (le *LineError) Error() string {
	return fmt.Sprintf("line %d: %s", le.Line, le.Err)
}

func (le *LineError) Unwrap() error {
	return le.Err
}
