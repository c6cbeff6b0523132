package colormap

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyRamp is returned for a ramp with fewer than two stops.
	ErrEmptyRamp = errors.New("colormap: ramp needs at least two stops")

	// ErrRampNotMonotonic is returned when stop positions are not strictly ascending.
	ErrRampNotMonotonic = errors.New("colormap: ramp stops not ascending")

	// ErrRampDomain is returned when a ramp does not start at 0 and end at 1.
	// It matches ErrRampNotMonotonic under errors.Is.
	ErrRampDomain = fmt.Errorf("%w: ramp must span [0, 1]", ErrRampNotMonotonic)

	// ErrUnknownRamp is returned when looking up a ramp name that is not registered.
	ErrUnknownRamp = errors.New("colormap: unknown ramp")
)
