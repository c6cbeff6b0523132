package colormap

import (
	"fmt"
	"math"
)

// Stop is one control point of a ramp.
type Stop struct {
	Pos   float64 `yaml:"pos"`
	Color RGB     `yaml:"color"`
}

// Ramp is a validated piecewise-linear colour ramp over [0, 1].
type Ramp struct {
	name  string
	stops []Stop
}

// NewRamp validates stops and builds a ramp. Stops must number at least two,
// ascend strictly, start at 0 and end at 1.
func NewRamp(name string, stops []Stop) (*Ramp, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("ramp %q has %d stops: %w", name, len(stops), ErrEmptyRamp)
	}
	for i := 1; i < len(stops); i++ {
		if !(stops[i].Pos > stops[i-1].Pos) {
			return nil, fmt.Errorf("ramp %q stop %d (%v) after %v: %w",
				name, i, stops[i].Pos, stops[i-1].Pos, ErrRampNotMonotonic)
		}
	}
	if stops[0].Pos != 0 || stops[len(stops)-1].Pos != 1 {
		return nil, fmt.Errorf("ramp %q spans [%v, %v]: %w",
			name, stops[0].Pos, stops[len(stops)-1].Pos, ErrRampDomain)
	}

	r := &Ramp{name: name, stops: make([]Stop, len(stops))}
	copy(r.stops, stops)
	return r, nil
}

func mustRamp(name string, stops ...Stop) *Ramp {
	r, err := NewRamp(name, stops)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the ramp's registry name.
func (r *Ramp) Name() string { return r.name }

// Stops returns a copy of the ramp's stops.
func (r *Ramp) Stops() []Stop {
	out := make([]Stop, len(r.stops))
	copy(out, r.stops)
	return out
}

// At returns the colour at position t in [0, 1]; t outside is clamped.
func (r *Ramp) At(t float64, rounding Rounding) RGB {
	t = math.Min(math.Max(t, 0), 1)

	i := r.segment(t)
	a, b := r.stops[i], r.stops[i+1]
	local := (t - a.Pos) / (b.Pos - a.Pos)

	return RGB{
		R: lerpChannel(a.Color.R, b.Color.R, local, rounding),
		G: lerpChannel(a.Color.G, b.Color.G, local, rounding),
		B: lerpChannel(a.Color.B, b.Color.B, local, rounding),
	}
}

// segment returns the index of the first segment whose upper stop is >= t.
func (r *Ramp) segment(t float64) int {
	last := len(r.stops) - 2
	for i := 0; i < last; i++ {
		if t <= r.stops[i+1].Pos {
			return i
		}
	}
	return last
}

func lerpChannel(a, b uint8, t float64, rounding Rounding) uint8 {
	v := float64(a) + t*(float64(b)-float64(a))
	if rounding == RoundNearest {
		v = math.Round(v)
	}
	v = math.Min(math.Max(v, 0), 255)
	return uint8(v)
}
