package noise

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGradientGrid(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g, err := NewGradientGrid(5, 3, rng)
	require.NoError(t, err)

	assert.Equal(t, 5, g.Width())
	assert.Equal(t, 3, g.Height())

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			assert.InDelta(t, 1.0, g.GradientAt(x, y).Len(), 1e-12, "cell (%d,%d) should be unit length", x, y)
		}
	}
}

func TestNewGradientGridInvalidDimension(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{name: "zero width", width: 0, height: 4},
		{name: "zero height", width: 4, height: 0},
		{name: "negative width", width: -1, height: 4},
		{name: "negative height", width: 4, height: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGradientGrid(tt.width, tt.height, rand.New(rand.NewSource(1)))
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrInvalidDimension), "got %v", err)
		})
	}
}

func TestGradientGridFillOrder(t *testing.T) {
	// Row-major fill: (0,0), (1,0), (0,1), (1,1).
	rng := &seqRand{vals: []float64{0, 0.25, 0.5, 0.75}}
	g, err := NewGradientGrid(2, 2, rng)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, g.GradientAt(0, 0).X(), 1e-12)
	assert.InDelta(t, 1.0, g.GradientAt(1, 0).Y(), 1e-12)
	assert.InDelta(t, -1.0, g.GradientAt(0, 1).X(), 1e-12)
	assert.InDelta(t, -1.0, g.GradientAt(1, 1).Y(), 1e-12)
	assert.Equal(t, 4, rng.i)
}

func TestGradientAtEdgeClampsToZero(t *testing.T) {
	rng := &seqRand{vals: []float64{0, 0.25, 0.5, 0.75}}
	g, err := NewGradientGrid(2, 2, rng)
	require.NoError(t, err)

	// Coordinate equal to the width resolves to column 0, not column 1.
	assert.Equal(t, g.GradientAt(0, 0), g.GradientAt(2, 0))
	assert.NotEqual(t, g.GradientAt(1, 0), g.GradientAt(2, 0))

	assert.Equal(t, g.GradientAt(0, 0), g.GradientAt(0, 2))
	assert.Equal(t, g.GradientAt(1, 0), g.GradientAt(1, 2))
	assert.Equal(t, g.GradientAt(0, 1), g.GradientAt(2, 1))
	assert.Equal(t, g.GradientAt(0, 0), g.GradientAt(2, 2))
}
