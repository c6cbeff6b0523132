package noise

import (
	"fmt"
	"log/slog"
)

// Phase names reported to a PhaseTimer during Generate.
const (
	PhaseGridBuild = "grid_build"
	PhaseSample    = "sample"
	PhaseMerge     = "merge"
)

// FractalSmoothing is the smoothing every octave uses.
const FractalSmoothing = SmoothQuintic

// Params configures a multi-octave fractal field.
type Params struct {
	OutputWidth  int
	OutputHeight int
	StartGrid    int     // lattice size of the first octave
	Octaves      int     // number of layers
	StartGain    float64 // weight of the second octave
	GainDecay    float64 // gain multiplier per further octave

	// WaterLevel is carried for the colouring stage; Generate ignores it.
	WaterLevel *float64
}

// Validate reports whether p can produce a field.
func (p Params) Validate() error {
	switch {
	case p.Octaves <= 0:
		return fmt.Errorf("octaves %d: %w", p.Octaves, ErrInvalidParameters)
	case p.StartGrid <= 0:
		return fmt.Errorf("start grid %d: %w", p.StartGrid, ErrInvalidParameters)
	case p.OutputWidth <= 0 || p.OutputHeight <= 0:
		return fmt.Errorf("output %dx%d: %w", p.OutputWidth, p.OutputHeight, ErrInvalidParameters)
	}
	return nil
}

// PhaseTimer receives phase boundaries. telemetry.PerfCollector satisfies it.
type PhaseTimer interface {
	StartPhase(phase string)
}

// Compositor layers octaves of gradient noise into a fractal field.
// The zero value is ready to use.
type Compositor struct {
	Workers int          // goroutines per octave (0 = GOMAXPROCS)
	Logger  *slog.Logger // nil = slog.Default()
	Timer   PhaseTimer   // optional
}

// Generate builds a fractal field with a zero-value Compositor.
func Generate(p Params, rng Rand) (*Field, error) {
	var c Compositor
	return c.Generate(p, rng)
}

// Generate builds p.Octaves gradient grids, starting at p.StartGrid and
// doubling each octave, samples each at the output size and merges them.
//
// Octave 0 becomes the base field unweighted. Every later octave is added
// scaled by the running gain and each pixel is clamped to [-1, 1] right
// after the addition; the gain is then multiplied by p.GainDecay.
//
// Grids are built on the calling goroutine in octave order, so a seeded rng
// yields the same field for any worker count.
func (c *Compositor) Generate(p Params, rng Rand) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	log := c.Logger
	if log == nil {
		log = slog.Default()
	}

	gridSize := p.StartGrid
	gain := p.StartGain
	var result *Field

	for i := 0; i < p.Octaves; i++ {
		c.startPhase(PhaseGridBuild)
		grid, err := NewGradientGrid(gridSize, gridSize, rng)
		if err != nil {
			return nil, fmt.Errorf("octave %d: %w", i, err)
		}

		c.startPhase(PhaseSample)
		sampler := NewSampler(grid, FractalSmoothing).WithWorkers(c.Workers)
		layer, err := sampler.SampleField(p.OutputWidth, p.OutputHeight)
		if err != nil {
			return nil, fmt.Errorf("octave %d: %w", i, err)
		}

		if i == 0 {
			result = layer
			log.Debug("octave sampled", "octave", i, "grid", gridSize, "gain", 1.0)
		} else {
			c.startPhase(PhaseMerge)
			mergeLayer(result, layer, gain, c.Workers)
			log.Debug("octave merged", "octave", i, "grid", gridSize, "gain", gain)
			gain *= p.GainDecay
		}

		gridSize *= 2
	}

	return result, nil
}

func (c *Compositor) startPhase(phase string) {
	if c.Timer != nil {
		c.Timer.StartPhase(phase)
	}
}

// mergeLayer adds layer*gain into dst, clamping every pixel to [-1, 1].
func mergeLayer(dst, layer *Field, gain float64, workers int) {
	forEachRows(dst.Height, workers, func(start, end int) {
		for y := start; y < end; y++ {
			d := dst.Row(y)
			l := layer.Row(y)
			for x := range d {
				d[x] = clamp(d[x]+l[x]*gain, -1, 1)
			}
		}
	})
}

func clamp(v, lo, hi float64) float64 {
	return min(max(lo, v), hi)
}
