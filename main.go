package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/terrain/colormap"
	"github.com/pthm-cable/terrain/config"
	"github.com/pthm-cable/terrain/logging"
	"github.com/pthm-cable/terrain/noise"
	"github.com/pthm-cable/terrain/render"
	"github.com/pthm-cable/terrain/telemetry"
)

// Generation modes.
const (
	modeFractal = "fractal"
	modePerlin  = "perlin"
)

// Single-layer noise backends.
const (
	backendGradient = "gradient"
	backendPerlin   = "perlin"
	backendSimplex  = "simplex"
)

const histogramBins = 20

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	mode := flag.String("mode", modeFractal, "Generation mode: fractal or perlin (single layer)")
	backend := flag.String("backend", backendGradient, "Perlin mode noise backend: gradient, perlin or simplex")
	size := flag.Int("size", 0, "Square output size in pixels (0 = use config)")
	ramp := flag.String("ramp", "", "Colour ramp name (empty = use config)")
	water := flag.Float64("water", 0, "Water level in [-1, 1] (overrides config)")
	noWater := flag.Bool("no-water", false, "Disable the water level")
	rounding := flag.String("rounding", "", "Channel rounding: truncate or nearest (empty = use config)")
	format := flag.String("format", "", "Image format: png, bmp or tiff (empty = from -out extension)")
	out := flag.String("out", "", "Output image path (empty = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV stats and config snapshot")
	workers := flag.Int("workers", -1, "Worker goroutines (0 = GOMAXPROCS, -1 = use config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (empty = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger, err := logging.New(os.Stderr, cfg.Logging, "terrain")
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := applyFlags(cfg, set, flagValues{
		size:      *size,
		ramp:      *ramp,
		water:     *water,
		noWater:   *noWater,
		rounding:  *rounding,
		format:    *format,
		out:       *out,
		outputDir: *outputDir,
		workers:   *workers,
	}); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if err := run(cfg, *mode, *backend, rngSeed, set["ramp"]); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

type flagValues struct {
	size      int
	ramp      string
	water     float64
	noWater   bool
	rounding  string
	format    string
	out       string
	outputDir string
	workers   int
}

// applyFlags overlays explicitly set CLI flags on cfg and revalidates it.
func applyFlags(cfg *config.Config, set map[string]bool, v flagValues) error {
	if v.size > 0 {
		cfg.Fractal.OutputWidth = v.size
		cfg.Fractal.OutputHeight = v.size
	}
	if v.ramp != "" {
		cfg.Color.Ramp = v.ramp
	}
	if set["water"] {
		w := v.water
		cfg.Fractal.WaterLevel = &w
	}
	if v.noWater {
		cfg.Fractal.WaterLevel = nil
	}
	if v.rounding != "" {
		r, err := colormap.ParseRounding(v.rounding)
		if err != nil {
			return err
		}
		cfg.Color.Rounding = r
	}
	if v.format != "" {
		cfg.Output.Format = v.format
	}
	if v.out != "" {
		cfg.Output.Path = v.out
	}
	if v.outputDir != "" {
		cfg.Output.Dir = v.outputDir
	}
	if v.workers >= 0 {
		cfg.Parallel.Workers = v.workers
	}
	return cfg.Validate()
}

func run(cfg *config.Config, mode, backend string, seed int64, rampFlag bool) error {
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	rng := rand.New(rand.NewSource(seed))

	om, err := telemetry.NewOutputManager(cfg.Output.Dir)
	if err != nil {
		return err
	}
	defer om.Close()

	slog.Info("starting generation",
		"seed", seed,
		"mode", mode,
		"workers", cfg.Parallel.Workers,
	)

	perf.StartRun()

	var (
		field  *noise.Field
		mapper *colormap.Mapper
	)
	switch mode {
	case modeFractal:
		comp := noise.Compositor{
			Workers: cfg.Parallel.Workers,
			Logger:  slog.Default(),
			Timer:   perf,
		}
		field, err = comp.Generate(cfg.FractalParams(), rng)
		if err != nil {
			return fmt.Errorf("fractal: %w", err)
		}
		if mapper, err = cfg.Mapper(); err != nil {
			return err
		}

	case modePerlin:
		perf.StartPhase(telemetry.PhaseSample)
		field, err = singleLayer(cfg.Perlin, backend, rng, seed, cfg.Parallel.Workers)
		if err != nil {
			return fmt.Errorf("perlin: %w", err)
		}
		// Plain grayscale unless a ramp was asked for.
		if !rampFlag {
			cfg.Color.Ramp = colormap.RampGray
			cfg.Fractal.WaterLevel = nil
		}
		if mapper, err = cfg.Mapper(); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown mode %q", mode)
	}

	perf.StartPhase(telemetry.PhaseColorize)
	img, err := render.FieldImage(mapper, field)
	if err != nil {
		return err
	}

	perf.StartPhase(telemetry.PhaseEncode)
	var format render.Format
	if cfg.Output.Format != "" {
		if format, err = render.ParseFormat(cfg.Output.Format); err != nil {
			return err
		}
	}
	if err := render.WriteFile(cfg.Output.Path, img, format); err != nil {
		return err
	}
	perf.EndRun()

	stats := telemetry.ComputeFieldStats(field, cfg.Fractal.WaterLevel)
	stats.Seed = seed
	perfStats := perf.Stats()

	slog.Info("wrote image",
		"path", cfg.Output.Path,
		"ramp", mapper.Ramp().Name(),
		"field", stats,
		"perf", perfStats,
	)

	if err := om.WriteConfig(cfg); err != nil {
		return err
	}
	if err := om.WriteStats(stats); err != nil {
		return err
	}
	if err := om.WritePerf(perfStats, 1); err != nil {
		return err
	}
	if err := om.WriteHistogram(telemetry.Histogram(field, histogramBins)); err != nil {
		return err
	}
	if cfg.Telemetry.FieldCSV {
		if err := om.WriteField(field); err != nil {
			return err
		}
	}
	if om != nil {
		slog.Info("wrote telemetry", "dir", om.Dir())
	}
	return nil
}

// singleLayer samples one noise layer over a pc.GridWidth x pc.GridHeight
// lattice at pc.Scale pixels per cell.
func singleLayer(pc config.PerlinConfig, backend string, rng noise.Rand, seed int64, workers int) (*noise.Field, error) {
	outW, outH := pc.GridWidth*pc.Scale, pc.GridHeight*pc.Scale

	switch backend {
	case backendGradient:
		grid, err := noise.NewGradientGrid(pc.GridWidth, pc.GridHeight, rng)
		if err != nil {
			return nil, err
		}
		return noise.NewSampler(grid, pc.Smoothing).WithWorkers(workers).SampleField(outW, outH)
	case backendPerlin:
		return noise.SampleSource(noise.NewPerlinSource(seed), pc.GridWidth, pc.GridHeight, outW, outH, workers)
	case backendSimplex:
		return noise.SampleSource(noise.NewSimplexSource(seed), pc.GridWidth, pc.GridHeight, outW, outH, workers)
	}
	return nil, fmt.Errorf("unknown backend %q", backend)
}
