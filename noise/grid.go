package noise

import "fmt"

// GradientGrid is a lattice of random unit gradient vectors, stored row-major.
// It is read-only after construction and safe for concurrent sampling.
type GradientGrid struct {
	width  int
	height int
	cells  []Vector2D
}

// NewGradientGrid allocates a width x height lattice and fills every cell,
// row by row, with a random unit vector drawn from rng.
func NewGradientGrid(width, height int, rng Rand) (*GradientGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gradient grid %dx%d: %w", width, height, ErrInvalidDimension)
	}

	cells := make([]Vector2D, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells[y*width+x] = RandomUnit(rng)
		}
	}

	return &GradientGrid{width: width, height: height, cells: cells}, nil
}

// Width returns the number of lattice columns.
func (g *GradientGrid) Width() int { return g.width }

// Height returns the number of lattice rows.
func (g *GradientGrid) Height() int { return g.height }

// GradientAt returns the gradient at lattice point (ix, iy).
//
// Sample coordinates span [0, width] inclusive, so a corner lookup can land
// one past the last column or row. That axis resolves to index 0, not to
// width-1: the lattice is neither toroidal nor edge-clamped, and the first
// column/row is reused on the trailing boundary.
func (g *GradientGrid) GradientAt(ix, iy int) Vector2D {
	gx := ix
	if ix < 0 || ix >= g.width {
		gx = 0
	}
	gy := iy
	if iy < 0 || iy >= g.height {
		gy = 0
	}
	return g.cells[gy*g.width+gx]
}

func (g *GradientGrid) empty() bool {
	return g == nil || g.width <= 0 || g.height <= 0
}
