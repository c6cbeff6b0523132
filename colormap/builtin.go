package colormap

import (
	"fmt"
	"slices"
)

// Built-in ramp names.
const (
	RampSnowcap1   = "snowcap1"
	RampWatersnow1 = "watersnow1"
	RampWatersnow2 = "watersnow2"
	RampGray       = "gray"
)

var (
	white = RGB{0xff, 0xff, 0xff}
	black = RGB{0x00, 0x00, 0x00}
)

var builtins = map[string]*Ramp{
	RampSnowcap1: mustRamp(RampSnowcap1,
		Stop{0.0, RGB{0xe5, 0xff, 0xcc}},
		Stop{0.6, RGB{0x84, 0x5b, 0x15}},
		Stop{0.8, white},
		Stop{1.0, white},
	),
	RampWatersnow1: mustRamp(RampWatersnow1,
		Stop{0.0, RGB{0x00, 0x00, 0x33}},
		Stop{0.2, RGB{0x00, 0x00, 0xff}},
		Stop{0.4, RGB{0x00, 0xff, 0xff}},
		Stop{0.6, RGB{0x00, 0x66, 0x33}},
		Stop{0.68, RGB{0x66, 0x2a, 0x00}},
		Stop{0.8, white},
		Stop{1.0, white},
	),
	RampWatersnow2: mustRamp(RampWatersnow2,
		Stop{0.0, RGB{0x00, 0x00, 0x33}},
		Stop{0.2, RGB{0x00, 0x00, 0xff}},
		Stop{0.5, RGB{0x00, 0xff, 0xff}},
		Stop{0.55, RGB{0x00, 0x66, 0x33}},
		Stop{0.68, RGB{0x66, 0x2a, 0x00}},
		Stop{0.8, white},
		Stop{1.0, white},
	),
	RampGray: mustRamp(RampGray,
		Stop{0.0, black},
		Stop{1.0, white},
	),
}

// Builtin returns the named built-in ramp.
func Builtin(name string) (*Ramp, error) {
	r, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownRamp)
	}
	return r, nil
}

// BuiltinNames returns the built-in ramp names, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Registry resolves ramp names to ramps. It starts with the built-ins and
// accepts user ramps; it is not safe for concurrent Register calls.
type Registry struct {
	ramps map[string]*Ramp
}

// NewRegistry returns a registry holding the built-in ramps.
func NewRegistry() *Registry {
	r := &Registry{ramps: make(map[string]*Ramp, len(builtins))}
	for name, ramp := range builtins {
		r.ramps[name] = ramp
	}
	return r
}

// Register adds or replaces a ramp under its name.
func (r *Registry) Register(ramp *Ramp) {
	r.ramps[ramp.Name()] = ramp
}

// Lookup returns the ramp registered under name.
func (r *Registry) Lookup(name string) (*Ramp, error) {
	ramp, ok := r.ramps[name]
	if !ok {
		return nil, fmt.Errorf("%q (have %v): %w", name, r.Names(), ErrUnknownRamp)
	}
	return ramp, nil
}

// Names returns the registered ramp names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ramps))
	for name := range r.ramps {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
