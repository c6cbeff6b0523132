package noise

import "errors"

var (
	// ErrInvalidDimension is returned when a grid or output is sized with a
	// non-positive width or height.
	ErrInvalidDimension = errors.New("noise: invalid dimension")

	// ErrUninitializedGrid is returned when sampling through a sampler that
	// has no gradient grid.
	ErrUninitializedGrid = errors.New("noise: uninitialized grid")

	// ErrInvalidParameters is returned for fractal parameters that cannot
	// produce a field.
	ErrInvalidParameters = errors.New("noise: invalid parameters")
)
