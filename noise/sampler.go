package noise

import (
	"fmt"
	"math"
)

// Sampler evaluates continuous gradient noise over a GradientGrid.
// It holds no mutable state; copies may be used from several goroutines.
type Sampler struct {
	grid    *GradientGrid
	mode    SmoothingMode
	workers int
}

// NewSampler pairs a gradient grid with a smoothing mode.
func NewSampler(grid *GradientGrid, mode SmoothingMode) Sampler {
	return Sampler{grid: grid, mode: mode}
}

// WithWorkers returns a copy that samples fields with n goroutines
// (0 = GOMAXPROCS, 1 = sequential).
func (s Sampler) WithWorkers(n int) Sampler {
	s.workers = n
	return s
}

// Grid returns the underlying gradient grid.
func (s Sampler) Grid() *GradientGrid { return s.grid }

// Smoothing returns the active smoothing mode.
func (s Sampler) Smoothing() SmoothingMode { return s.mode }

// SampleAt returns the interpolated noise value at lattice coordinates (x, y).
// The result is not clamped; it stays close to [-1, 1] but may overshoot.
//
// SampleAt requires a grid built by NewGradientGrid and panics without one;
// SampleField reports the same condition as ErrUninitializedGrid.
func (s Sampler) SampleAt(x, y float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	x0, y0 := int(fx), int(fy)
	x1, y1 := x0+1, y0+1

	tx := s.mode.Apply(x - fx)
	ty := s.mode.Apply(y - fy)

	// Upper row
	n0 := s.dotGridGradient(x0, y0, x, y)
	n1 := s.dotGridGradient(x1, y0, x, y)
	ix0 := lerp(n0, n1, tx)

	// Lower row
	n0 = s.dotGridGradient(x0, y1, x, y)
	n1 = s.dotGridGradient(x1, y1, x, y)
	ix1 := lerp(n0, n1, tx)

	return lerp(ix0, ix1, ty)
}

// dotGridGradient dots the gradient at lattice point (ix, iy) with the
// offset from that point to (x, y).
func (s Sampler) dotGridGradient(ix, iy int, x, y float64) float64 {
	offset := Vector2D{x - float64(ix), y - float64(iy)}
	return s.grid.GradientAt(ix, iy).Dot(offset)
}

// SampleField samples an outWidth x outHeight field stretched over the whole
// grid: pixel (px, py) reads lattice point (px*gridW/outW, py*gridH/outH).
func (s Sampler) SampleField(outWidth, outHeight int) (*Field, error) {
	if s.grid.empty() {
		return nil, ErrUninitializedGrid
	}
	return SampleSource(s, s.grid.width, s.grid.height, outWidth, outHeight, s.workers)
}

// SampleSource fills an outWidth x outHeight field from src, mapping the
// output onto a gridWidth x gridHeight coordinate span.
func SampleSource(src Source, gridWidth, gridHeight, outWidth, outHeight, workers int) (*Field, error) {
	if outWidth <= 0 || outHeight <= 0 {
		return nil, fmt.Errorf("output %dx%d: %w", outWidth, outHeight, ErrInvalidDimension)
	}
	if gridWidth <= 0 || gridHeight <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", gridWidth, gridHeight, ErrInvalidDimension)
	}

	field := NewField(outWidth, outHeight)

	xratio := float64(gridWidth) / float64(outWidth)
	yratio := float64(gridHeight) / float64(outHeight)

	forEachRows(outHeight, workers, func(start, end int) {
		for py := start; py < end; py++ {
			row := field.Row(py)
			gy := float64(py) * yratio
			for px := range row {
				row[px] = src.SampleAt(float64(px)*xratio, gy)
			}
		}
	})

	return field, nil
}

func lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}
