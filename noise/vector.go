package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rand is the random source consumed while building gradient grids.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Vector2D is a 2D vector of float64 components.
type Vector2D mgl64.Vec2

// X returns the x component.
func (v Vector2D) X() float64 { return v[0] }

// Y returns the y component.
func (v Vector2D) Y() float64 { return v[1] }

// RandomUnit returns a unit vector at a uniformly random angle.
// Consumes exactly one draw from rng.
func RandomUnit(rng Rand) Vector2D {
	a := 2 * math.Pi * rng.Float64()
	return Vector2D{math.Cos(a), math.Sin(a)}
}

// Dot returns the dot product of v and o.
func (v Vector2D) Dot(o Vector2D) float64 {
	return mgl64.Vec2(v).Dot(mgl64.Vec2(o))
}

// Len returns the euclidean length of v.
func (v Vector2D) Len() float64 {
	return mgl64.Vec2(v).Len()
}
