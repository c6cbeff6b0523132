// Terrain preview tool - interactive fractal parameters with sliders.
//
// Parameter changes regenerate the noise field; ramp and water changes only
// recolour the cached field. Mouse wheel zooms, right drag pans.
//
// Usage: go run ./cmd/preview [-config path] [-res 256]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"os"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/terrain/camera"
	"github.com/pthm-cable/terrain/colormap"
	"github.com/pthm-cable/terrain/config"
	"github.com/pthm-cable/terrain/logging"
	"github.com/pthm-cable/terrain/noise"
	"github.com/pthm-cable/terrain/telemetry"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// previewParams holds the slider-controlled values.
type previewParams struct {
	StartGrid  float32
	Octaves    float32
	StartGain  float32
	GainDecay  float32
	WaterLevel float32
	Water      bool
	Seed       int64
}

func paramsFromConfig(cfg *config.Config) previewParams {
	p := previewParams{
		StartGrid: float32(cfg.Fractal.StartGrid),
		Octaves:   float32(cfg.Fractal.Octaves),
		StartGain: float32(cfg.Fractal.StartGain),
		GainDecay: float32(cfg.Fractal.GainDecay),
		Seed:      1,
	}
	if w := cfg.Fractal.WaterLevel; w != nil {
		p.WaterLevel = float32(*w)
		p.Water = true
	}
	return p
}

func (p previewParams) fractal(res int) noise.Params {
	return noise.Params{
		OutputWidth:  res,
		OutputHeight: res,
		StartGrid:    int(p.StartGrid),
		Octaves:      int(p.Octaves),
		StartGain:    float64(p.StartGain),
		GainDecay:    float64(p.GainDecay),
	}
}

func (p previewParams) water() *float64 {
	if !p.Water {
		return nil
	}
	w := float64(p.WaterLevel)
	return &w
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	res := flag.Int("res", 256, "Field resolution in pixels")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	logger, err := logging.New(os.Stderr, cfg.Logging, "preview")
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	registry, err := cfg.Registry()
	if err != nil {
		slog.Error("failed to build ramps", "error", err)
		os.Exit(1)
	}
	rampNames := registry.Names()
	rampIdx := max(slices.Index(rampNames, cfg.Color.Ramp), 0)

	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	defaults := paramsFromConfig(cfg)
	params := defaults
	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	size := int32(*res)
	img := rl.GenImageColor(int(size), int(size), rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	cam := camera.New(previewSize, previewSize, float32(size), float32(size))

	var field *noise.Field
	var stats telemetry.FieldStats
	pixels := make([]color.RGBA, int(size)*int(size))

	needsRegen := true
	needsRecolor := true
	var lastErr error

	for !rl.WindowShouldClose() {
		perf.RecordFrame()

		if needsRegen {
			perf.StartRun()
			comp := noise.Compositor{Workers: cfg.Parallel.Workers, Timer: perf}
			f, err := comp.Generate(params.fractal(int(size)), rand.New(rand.NewSource(params.Seed)))
			perf.EndRun()
			lastErr = err
			if err == nil {
				field = f
				slog.Debug("regenerated", "seed", params.Seed, "perf", perf.Stats())
			}
			needsRegen = false
			needsRecolor = true
		}

		if needsRecolor && field != nil {
			ramp, err := registry.Lookup(rampNames[rampIdx])
			if err == nil {
				var mapper *colormap.Mapper
				mapper, err = colormap.NewMapper(ramp,
					colormap.WithWater(params.water()),
					colormap.WithRounding(cfg.Color.Rounding),
				)
				if err == nil {
					for i, c := range mapper.MapField(field) {
						pixels[i] = c.RGBA()
					}
					rl.UpdateTexture(texture, pixels)
					stats = telemetry.ComputeFieldStats(field, params.water())
				}
			}
			lastErr = err
			needsRecolor = false
		}

		// Zoom with the wheel, pan with the right mouse button
		mouse := rl.GetMousePosition()
		mx, my := mouse.X-10, mouse.Y-10
		hoverX, hoverY, hovering := cam.ScreenToField(mx, my)
		if hovering {
			if wheel := rl.GetMouseWheelMove(); wheel != 0 {
				cam.ZoomAt(1+wheel*0.1, mx, my)
			}
			if rl.IsMouseButtonDown(rl.MouseButtonRight) {
				d := rl.GetMouseDelta()
				cam.Pan(d.X, d.Y)
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		srcX, srcY, srcW, srcH := cam.SourceRect()
		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: srcX, Y: srcY, Width: srcW, Height: srcH},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Mean: %.3f  Std: %.3f", stats.Min, stats.Max, stats.Mean, stats.Std), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Water: %.1f%%  Saturated: %.1f%%", stats.WaterFraction*100, stats.Saturated*100), 15, statsY+20, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Generate: %.1f ms  FPS: %.0f", float64(perf.Stats().AvgRunDuration.Microseconds())/1000, perf.Stats().FPS), 15, statsY+40, 16, rl.DarkGray)
		if hovering && field != nil {
			rl.DrawText(fmt.Sprintf("(%d, %d) = %.3f  zoom %.1fx", hoverX, hoverY, field.At(hoverX, hoverY), cam.Zoom), 15, statsY+60, 16, rl.DarkGray)
		}
		if lastErr != nil {
			rl.DrawText(lastErr.Error(), 15, statsY+80, 14, rl.Red)
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Fractal Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		if slider(&panelY, panelX, "Start grid (first octave lattice)", "1", "16", "%.0f", &params.StartGrid, 1, 16, true) {
			needsRegen = true
		}
		if slider(&panelY, panelX, "Octaves", "1", "10", "%.0f", &params.Octaves, 1, 10, true) {
			needsRegen = true
		}
		if slider(&panelY, panelX, "Start gain (second octave weight)", "0", "1", "%.2f", &params.StartGain, 0, 1, false) {
			needsRegen = true
		}
		if slider(&panelY, panelX, "Gain decay (per octave)", "0", "1", "%.2f", &params.GainDecay, 0, 1, false) {
			needsRegen = true
		}

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		rl.DrawText("Colour (recolour only)", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		if slider(&panelY, panelX, "Water level", "-1", "1", "%.2f", &params.WaterLevel, -1, 1, false) && params.Water {
			needsRecolor = true
		}

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(params.Water, "Water Off", "Water On")) {
			params.Water = !params.Water
			needsRecolor = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Next Ramp") {
			rampIdx = (rampIdx + 1) % len(rampNames)
			needsRecolor = true
		}
		rl.DrawText(rampNames[rampIdx], int32(panelX+260), int32(panelY+8), 16, rl.DarkGray)
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "New Seed") {
			params.Seed = int64(rl.GetRandomValue(1, 999999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaults
			rampIdx = max(slices.Index(rampNames, cfg.Color.Ramp), 0)
			cam.Reset()
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params, rampNames[rampIdx]) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			var text string
			for _, line := range yamlLines(params, rampNames[rampIdx]) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and reports whether the value changed.
// Integer sliders snap to whole numbers.
func slider(panelY *float32, panelX float32, label, left, right, valueFmt string, value *float32, lo, hi float32, integer bool) bool {
	rl.DrawText(label, int32(panelX), int32(*panelY), 14, rl.Gray)
	*panelY += 18
	v := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *panelY, Width: float32(panelWidth - 80), Height: 20},
		left, right,
		*value, lo, hi,
	)
	if integer {
		v = float32(int(v + 0.5))
	}
	rl.DrawText(fmt.Sprintf(valueFmt, *value), int32(panelX+float32(panelWidth-70)), int32(*panelY+2), 16, rl.DarkGray)
	*panelY += 35
	if v == *value {
		return false
	}
	*value = v
	return true
}

func yamlLines(p previewParams, ramp string) []string {
	lines := []string{
		"fractal:",
		fmt.Sprintf("  start_grid: %d", int(p.StartGrid)),
		fmt.Sprintf("  octaves: %d", int(p.Octaves)),
		fmt.Sprintf("  start_gain: %.2f", p.StartGain),
		fmt.Sprintf("  gain_decay: %.2f", p.GainDecay),
	}
	if p.Water {
		lines = append(lines, fmt.Sprintf("  water_level: %.2f", p.WaterLevel))
	} else {
		lines = append(lines, "  water_level: null")
	}
	return append(lines, "color:", "  ramp: "+ramp)
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
