package noise

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Source is anything that yields a scalar at continuous coordinates.
type Source interface {
	SampleAt(x, y float64) float64
}

var _ Source = Sampler{}

// Perlin parameters for PerlinSource: alpha=2, beta=2, n=3 gives
// terrain-like noise with a single call per sample.
const (
	perlinAlpha = 2
	perlinBeta  = 2
	perlinN     = 3
)

// PerlinSource adapts github.com/aquilax/go-perlin to Source. It is used to
// compare the gradient-grid sampler against a permutation-table Perlin.
type PerlinSource struct {
	noise *perlin.Perlin
	seed  int64
}

// NewPerlinSource creates a permutation-table Perlin source for seed.
func NewPerlinSource(seed int64) *PerlinSource {
	return &PerlinSource{
		noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed),
		seed:  seed,
	}
}

// SampleAt implements Source.
func (p *PerlinSource) SampleAt(x, y float64) float64 {
	return p.noise.Noise2D(x, y)
}

// Seed returns the seed the source was built with.
func (p *PerlinSource) Seed() int64 { return p.seed }

// SimplexSource adapts github.com/ojrac/opensimplex-go to Source.
type SimplexSource struct {
	noise opensimplex.Noise
	seed  int64
}

// NewSimplexSource creates an OpenSimplex source for seed.
func NewSimplexSource(seed int64) *SimplexSource {
	return &SimplexSource{
		noise: opensimplex.New(seed),
		seed:  seed,
	}
}

// SampleAt implements Source.
func (s *SimplexSource) SampleAt(x, y float64) float64 {
	return s.noise.Eval2(x, y)
}

// Seed returns the seed the source was built with.
func (s *SimplexSource) Seed() int64 { return s.seed }
