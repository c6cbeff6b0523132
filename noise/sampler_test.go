package noise

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoByOne builds a 2x1 grid with gradient (1,0) at column 0 and (0,1) at column 1.
func twoByOne(t *testing.T) *GradientGrid {
	t.Helper()
	g, err := NewGradientGrid(2, 1, &seqRand{vals: []float64{0, 0.25}})
	require.NoError(t, err)
	return g
}

func TestSampleAtKnownValues(t *testing.T) {
	g := twoByOne(t)

	tests := []struct {
		name string
		mode SmoothingMode
		x, y float64
		want float64
	}{
		{name: "cell centre, no smoothing", mode: SmoothNone, x: 0.5, y: 0.5, want: 0.25},
		{name: "off centre, cubic", mode: SmoothCubic, x: 0.25, y: 0.5, want: 0.2109375},
		{name: "lattice point is zero", mode: SmoothQuintic, x: 1, y: 0, want: 0},
		{name: "origin is zero", mode: SmoothCubic, x: 0, y: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler(g, tt.mode)
			assert.InDelta(t, tt.want, s.SampleAt(tt.x, tt.y), 1e-12)
		})
	}
}

func TestSampleAtDeterministic(t *testing.T) {
	g, err := NewGradientGrid(8, 8, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	for _, mode := range []SmoothingMode{SmoothNone, SmoothCubic, SmoothQuintic} {
		s := NewSampler(g, mode)
		coords := []struct{ x, y float64 }{{0.1, 0.2}, {3.7, 5.5}, {7.99, 7.99}, {8, 8}, {4, 2.5}}
		for _, c := range coords {
			first := s.SampleAt(c.x, c.y)
			second := s.SampleAt(c.x, c.y)
			assert.Equal(t, first, second, "%s at (%v,%v)", mode, c.x, c.y)
			assert.False(t, math.IsNaN(first))
		}
	}
}

func TestSampleFieldUninitialized(t *testing.T) {
	tests := []struct {
		name    string
		sampler Sampler
	}{
		{name: "zero value sampler", sampler: Sampler{}},
		{name: "nil grid", sampler: NewSampler(nil, SmoothCubic)},
		{name: "empty grid", sampler: NewSampler(&GradientGrid{}, SmoothNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := tt.sampler.SampleField(4, 4)
			assert.Nil(t, f)
			assert.True(t, errors.Is(err, ErrUninitializedGrid), "got %v", err)
		})
	}
}

func TestSampleAtRequiresGrid(t *testing.T) {
	assert.Panics(t, func() { Sampler{}.SampleAt(0.5, 0.5) })
	assert.Panics(t, func() { NewSampler(nil, SmoothQuintic).SampleAt(0.5, 0.5) })
}

func TestSampleFieldInvalidOutput(t *testing.T) {
	s := NewSampler(twoByOne(t), SmoothNone)

	_, err := s.SampleField(0, 4)
	assert.True(t, errors.Is(err, ErrInvalidDimension))

	_, err = s.SampleField(4, -1)
	assert.True(t, errors.Is(err, ErrInvalidDimension))
}

func TestSampleFieldMapsPixelsToLattice(t *testing.T) {
	g, err := NewGradientGrid(4, 2, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	s := NewSampler(g, SmoothCubic)

	f, err := s.SampleField(10, 6)
	require.NoError(t, err)
	require.Equal(t, 10, f.Width)
	require.Equal(t, 6, f.Height)

	xratio := 4.0 / 10.0
	yratio := 2.0 / 6.0
	for py := 0; py < 6; py++ {
		for px := 0; px < 10; px++ {
			want := s.SampleAt(float64(px)*xratio, float64(py)*yratio)
			assert.Equal(t, want, f.At(px, py), "pixel (%d,%d)", px, py)
		}
	}
}

func TestSampleFieldParallelMatchesSequential(t *testing.T) {
	g, err := NewGradientGrid(16, 16, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	seq, err := NewSampler(g, SmoothQuintic).WithWorkers(1).SampleField(97, 131)
	require.NoError(t, err)

	for _, workers := range []int{2, 3, 8, 0} {
		par, err := NewSampler(g, SmoothQuintic).WithWorkers(workers).SampleField(97, 131)
		require.NoError(t, err)
		assert.Equal(t, seq.Data, par.Data, "workers=%d", workers)
	}
}

func TestFieldRows(t *testing.T) {
	f := NewField(3, 2)
	f.Set(2, 1, 0.5)

	rows := f.Rows()
	require.Len(t, rows, 2)
	assert.Len(t, rows[1], 3)
	assert.Equal(t, 0.5, rows[1][2])

	c := f.Clone()
	c.Set(2, 1, -0.5)
	assert.Equal(t, 0.5, f.At(2, 1), "clone must not share storage")
}

func TestAlternativeSources(t *testing.T) {
	sources := map[string]func(seed int64) Source{
		"perlin":  func(seed int64) Source { return NewPerlinSource(seed) },
		"simplex": func(seed int64) Source { return NewSimplexSource(seed) },
	}

	for name, build := range sources {
		t.Run(name, func(t *testing.T) {
			a, err := SampleSource(build(12345), 8, 8, 32, 32, 1)
			require.NoError(t, err)
			b, err := SampleSource(build(12345), 8, 8, 32, 32, 4)
			require.NoError(t, err)

			assert.Equal(t, a.Data, b.Data, "same seed should give the same field")
			for _, v := range a.Data {
				assert.False(t, math.IsNaN(v))
				assert.False(t, math.IsInf(v, 0))
			}
		})
	}
}

func BenchmarkSampleField(b *testing.B) {
	g, _ := NewGradientGrid(32, 32, rand.New(rand.NewSource(1)))
	s := NewSampler(g, SmoothQuintic)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SampleField(256, 256)
	}
}
