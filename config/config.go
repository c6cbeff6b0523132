// Package config provides configuration loading and access for the
// terrain generator.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/terrain/colormap"
	"github.com/pthm-cable/terrain/noise"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all generator configuration parameters.
type Config struct {
	Fractal   FractalConfig   `yaml:"fractal"`
	Perlin    PerlinConfig    `yaml:"perlin"`
	Color     ColorConfig     `yaml:"color"`
	Output    OutputConfig    `yaml:"output"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// FractalConfig holds multi-octave generation parameters.
type FractalConfig struct {
	OutputWidth  int      `yaml:"output_width"`
	OutputHeight int      `yaml:"output_height"`
	StartGrid    int      `yaml:"start_grid"`
	Octaves      int      `yaml:"octaves"`
	StartGain    float64  `yaml:"start_gain"`
	GainDecay    float64  `yaml:"gain_decay"`
	WaterLevel   *float64 `yaml:"water_level"` // nil = no water
}

// PerlinConfig holds the single-layer demo parameters.
type PerlinConfig struct {
	GridWidth  int                 `yaml:"grid_width"`
	GridHeight int                 `yaml:"grid_height"`
	Scale      int                 `yaml:"scale"` // Output pixels per lattice cell
	Smoothing  noise.SmoothingMode `yaml:"smoothing"`
}

// ColorConfig selects how fields are coloured.
type ColorConfig struct {
	Ramp     string            `yaml:"ramp"`
	Rounding colormap.Rounding `yaml:"rounding"`
	Ramps    []RampConfig      `yaml:"ramps"`
}

// RampConfig describes a user-defined colour ramp.
type RampConfig struct {
	Name  string          `yaml:"name"`
	Stops []colormap.Stop `yaml:"stops"`
}

// OutputConfig holds image and telemetry output settings.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
}

// ParallelConfig holds worker settings.
type ParallelConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig holds log handler settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int  `yaml:"perf_window"`
	FieldCSV   bool `yaml:"field_csv"`
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the parameters the generator cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if err := c.FractalParams().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("fractal: %w", err))
	}
	if c.Perlin.GridWidth <= 0 || c.Perlin.GridHeight <= 0 || c.Perlin.Scale <= 0 {
		errs = append(errs, fmt.Errorf("perlin: grid %dx%d scale %d: %w",
			c.Perlin.GridWidth, c.Perlin.GridHeight, c.Perlin.Scale, noise.ErrInvalidDimension))
	}
	if w := c.Fractal.WaterLevel; w != nil && (*w < -1 || *w > 1) {
		errs = append(errs, fmt.Errorf("fractal: water_level %v outside [-1, 1]", *w))
	}
	if _, err := c.Registry(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FractalParams converts the fractal section to generator parameters.
func (c *Config) FractalParams() noise.Params {
	f := c.Fractal
	return noise.Params{
		OutputWidth:  f.OutputWidth,
		OutputHeight: f.OutputHeight,
		StartGrid:    f.StartGrid,
		Octaves:      f.Octaves,
		StartGain:    f.StartGain,
		GainDecay:    f.GainDecay,
		WaterLevel:   f.WaterLevel,
	}
}

// SetFractalParams writes p back into the fractal section.
func (c *Config) SetFractalParams(p noise.Params) {
	c.Fractal = FractalConfig{
		OutputWidth:  p.OutputWidth,
		OutputHeight: p.OutputHeight,
		StartGrid:    p.StartGrid,
		Octaves:      p.Octaves,
		StartGain:    p.StartGain,
		GainDecay:    p.GainDecay,
		WaterLevel:   p.WaterLevel,
	}
}

// Registry returns the built-in ramps plus the configured custom ramps.
func (c *Config) Registry() (*colormap.Registry, error) {
	reg := colormap.NewRegistry()
	for _, rc := range c.Color.Ramps {
		ramp, err := colormap.NewRamp(rc.Name, rc.Stops)
		if err != nil {
			return nil, fmt.Errorf("color.ramps: %w", err)
		}
		reg.Register(ramp)
	}
	if _, err := reg.Lookup(c.Color.Ramp); err != nil {
		return nil, fmt.Errorf("color.ramp: %w", err)
	}
	return reg, nil
}

// Mapper builds the colour mapper for the configured ramp, rounding and
// water level.
func (c *Config) Mapper() (*colormap.Mapper, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	ramp, err := reg.Lookup(c.Color.Ramp)
	if err != nil {
		return nil, err
	}
	return colormap.NewMapper(ramp,
		colormap.WithRounding(c.Color.Rounding),
		colormap.WithWater(c.Fractal.WaterLevel),
	)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
