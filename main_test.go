package main

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/pthm-cable/terrain/colormap"
	"github.com/pthm-cable/terrain/config"
)

func decodeFile(t *testing.T, path string, decode func(*os.File) (image.Image, error)) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := decode(f)
	require.NoError(t, err)
	return img
}

func decodePNG(f *os.File) (image.Image, error) { return png.Decode(f) }

func TestRunPerlinGrayscale(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Path = filepath.Join(t.TempDir(), "perlin.png")

	require.NoError(t, run(cfg, modePerlin, backendGradient, 7, false))

	img := decodeFile(t, cfg.Output.Path, decodePNG)
	assert.Equal(t, image.Rect(0, 0, 600, 300), img.Bounds(), "40x20 grid at 15 pixels per cell")

	for y := 0; y < 300; y += 7 {
		for x := 0; x < 600; x += 11 {
			r, g, b, _ := img.At(x, y).RGBA()
			require.True(t, r == g && g == b, "pixel (%d,%d) not gray", x, y)
		}
	}
	assert.Nil(t, cfg.Fractal.WaterLevel)
	assert.Equal(t, colormap.RampGray, cfg.Color.Ramp)
}

func TestRunPerlinWithRampKeepsWater(t *testing.T) {
	cfg := config.Default()
	cfg.Perlin.Scale = 2
	cfg.Output.Path = filepath.Join(t.TempDir(), "perlin.png")

	require.NoError(t, run(cfg, modePerlin, backendGradient, 7, true))

	assert.Equal(t, colormap.RampWatersnow2, cfg.Color.Ramp)
	require.NotNil(t, cfg.Fractal.WaterLevel)
	assert.Equal(t, -0.1, *cfg.Fractal.WaterLevel)
}

func TestRunPerlinBackends(t *testing.T) {
	for _, backend := range []string{backendGradient, backendPerlin, backendSimplex} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Perlin.Scale = 2
			cfg.Output.Path = filepath.Join(t.TempDir(), backend+".png")

			require.NoError(t, run(cfg, modePerlin, backend, 3, false))

			img := decodeFile(t, cfg.Output.Path, decodePNG)
			assert.Equal(t, image.Rect(0, 0, 80, 40), img.Bounds())
		})
	}
}

func TestRunFractalWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Fractal.OutputWidth = 32
	cfg.Fractal.OutputHeight = 16
	cfg.Fractal.Octaves = 3
	cfg.Output.Path = filepath.Join(dir, "terrain.bmp")
	cfg.Output.Dir = filepath.Join(dir, "run")
	cfg.Telemetry.FieldCSV = true

	require.NoError(t, run(cfg, modeFractal, backendGradient, 42, false))

	img := decodeFile(t, cfg.Output.Path, func(f *os.File) (image.Image, error) { return bmp.Decode(f) })
	assert.Equal(t, image.Rect(0, 0, 32, 16), img.Bounds())

	for _, name := range []string{"stats.csv", "perf.csv", "histogram.csv", "field.csv", "config.yaml"} {
		assert.FileExists(t, filepath.Join(cfg.Output.Dir, name))
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		backend string
		wantErr string
	}{
		{name: "unknown mode", mode: "voronoi", backend: backendGradient, wantErr: `unknown mode "voronoi"`},
		{name: "unknown backend", mode: modePerlin, backend: "worley", wantErr: `unknown backend "worley"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Output.Path = filepath.Join(t.TempDir(), "out.png")

			err := run(cfg, tt.mode, tt.backend, 1, false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoFileExists(t, cfg.Output.Path)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name    string
		set     []string
		values  flagValues
		check   func(t *testing.T, cfg *config.Config)
		wantErr bool
	}{
		{
			name:   "size sets a square output",
			values: flagValues{size: 64, workers: -1},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 64, cfg.Fractal.OutputWidth)
				assert.Equal(t, 64, cfg.Fractal.OutputHeight)
			},
		},
		{
			name:   "water overrides config",
			set:    []string{"water"},
			values: flagValues{water: 0.3, workers: -1},
			check: func(t *testing.T, cfg *config.Config) {
				require.NotNil(t, cfg.Fractal.WaterLevel)
				assert.Equal(t, 0.3, *cfg.Fractal.WaterLevel)
			},
		},
		{
			name:   "water at zero still counts when set",
			set:    []string{"water"},
			values: flagValues{water: 0, workers: -1},
			check: func(t *testing.T, cfg *config.Config) {
				require.NotNil(t, cfg.Fractal.WaterLevel)
				assert.Zero(t, *cfg.Fractal.WaterLevel)
			},
		},
		{
			name:   "no-water wins over water",
			set:    []string{"water", "no-water"},
			values: flagValues{water: 0.3, noWater: true, workers: -1},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Nil(t, cfg.Fractal.WaterLevel)
			},
		},
		{
			name:   "unset flags keep config",
			values: flagValues{workers: -1},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.Default(), cfg)
			},
		},
		{
			name:   "rounding and workers",
			values: flagValues{rounding: "nearest", workers: 3},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, colormap.RoundNearest, cfg.Color.Rounding)
				assert.Equal(t, 3, cfg.Parallel.Workers)
			},
		},
		{
			name:   "output settings",
			values: flagValues{format: "tiff", out: "x.tif", outputDir: "run", ramp: colormap.RampSnowcap1, workers: -1},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "tiff", cfg.Output.Format)
				assert.Equal(t, "x.tif", cfg.Output.Path)
				assert.Equal(t, "run", cfg.Output.Dir)
				assert.Equal(t, colormap.RampSnowcap1, cfg.Color.Ramp)
			},
		},
		{name: "bad rounding", values: flagValues{rounding: "bankers", workers: -1}, wantErr: true},
		{name: "unknown ramp", values: flagValues{ramp: "sepia", workers: -1}, wantErr: true},
		{name: "water out of range", set: []string{"water"}, values: flagValues{water: 2, workers: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			set := make(map[string]bool)
			for _, name := range tt.set {
				set[name] = true
			}

			err := applyFlags(cfg, set, tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
