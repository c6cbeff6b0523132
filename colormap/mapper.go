// Package colormap turns scalar noise values into RGB colours through
// piecewise-linear ramps, with an optional water level that overrides
// the ramp below a threshold.
package colormap

import (
	"github.com/pthm-cable/terrain/noise"
)

// Mapper maps values in [-1, 1] to colours.
type Mapper struct {
	ramp     *Ramp
	water    float64
	hasWater bool
	rounding Rounding
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithWaterLevel paints every value below level with WaterColor.
func WithWaterLevel(level float64) Option {
	return func(m *Mapper) {
		m.water = level
		m.hasWater = true
	}
}

// WithWater is WithWaterLevel for an optional level; nil disables water.
func WithWater(level *float64) Option {
	return func(m *Mapper) {
		if level == nil {
			m.hasWater = false
			return
		}
		m.water = *level
		m.hasWater = true
	}
}

// WithRounding sets the channel rounding policy (default RoundTruncate).
func WithRounding(r Rounding) Option {
	return func(m *Mapper) {
		m.rounding = r
	}
}

// NewMapper builds a mapper over ramp.
func NewMapper(ramp *Ramp, opts ...Option) (*Mapper, error) {
	if ramp == nil {
		return nil, ErrEmptyRamp
	}
	m := &Mapper{ramp: ramp}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Ramp returns the mapper's ramp.
func (m *Mapper) Ramp() *Ramp { return m.ramp }

// WaterLevel returns the water threshold and whether it is active.
func (m *Mapper) WaterLevel() (float64, bool) { return m.water, m.hasWater }

// MapValue returns the colour for n. Values below an active water level
// return WaterColor without consulting the ramp; otherwise n is remapped
// from [-1, 1] to [0, 1] and looked up.
func (m *Mapper) MapValue(n float64) RGB {
	if m.hasWater && n < m.water {
		return WaterColor
	}
	return m.ramp.At((n+1)/2, m.rounding)
}

// MapField colours every value of f, row-major.
func (m *Mapper) MapField(f *noise.Field) []RGB {
	out := make([]RGB, len(f.Data))
	for i, v := range f.Data {
		out[i] = m.MapValue(v)
	}
	return out
}

// MapValue colours n with a built-in ramp using truncating rounding.
// water may be nil.
func MapValue(n float64, rampName string, water *float64) (RGB, error) {
	ramp, err := Builtin(rampName)
	if err != nil {
		return RGB{}, err
	}
	m, err := NewMapper(ramp, WithWater(water))
	if err != nil {
		return RGB{}, err
	}
	return m.MapValue(n), nil
}
