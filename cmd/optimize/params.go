package main

import (
	"github.com/pthm-cable/terrain/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Octaves and start grid stay fixed; they change the character of the
// terrain rather than its profile.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "start_gain", Path: "fractal.start_gain", Min: 0.05, Max: 1.0, Default: 0.5},
			{Name: "gain_decay", Path: "fractal.gain_decay", Min: 0.1, Max: 0.95, Default: 0.5},
			{Name: "water_level", Path: "fractal.water_level", Min: -0.8, Max: 0.8, Default: -0.1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Fractal.StartGain = clamped[0]
	cfg.Fractal.GainDecay = clamped[1]
	water := clamped[2]
	cfg.Fractal.WaterLevel = &water
}

// ExtractFromConfig extracts current parameter values from a Config struct.
// A config without water reports the lower bound.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	water := pv.Specs[2].Min
	if cfg.Fractal.WaterLevel != nil {
		water = *cfg.Fractal.WaterLevel
	}
	return []float64{
		cfg.Fractal.StartGain,
		cfg.Fractal.GainDecay,
		water,
	}
}
