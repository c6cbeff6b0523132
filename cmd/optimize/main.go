// Package main provides CMA-ES optimization for finding fractal parameters
// that produce a target terrain profile (land fraction and roughness).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/terrain/config"
	"github.com/pthm-cable/terrain/logging"
)

// EvalRecord is one row of optimize_log.csv.
type EvalRecord struct {
	Eval         int     `csv:"eval"`
	Fitness      float64 `csv:"fitness"`
	StartGain    float64 `csv:"start_gain"`
	GainDecay    float64 `csv:"gain_decay"`
	WaterLevel   float64 `csv:"water_level"`
	LandFraction float64 `csv:"land_fraction"`
	Std          float64 `csv:"std"`
	Saturated    float64 `csv:"saturated"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 4, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	resolution := flag.Int("res", 128, "Field resolution used during the search")
	land := flag.Float64("land", 0.6, "Target land fraction in [0, 1]")
	std := flag.Float64("std", 0.3, "Target height standard deviation")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if err := run(*configPath, *outputDir, *seeds, *maxEvals, *population, *resolution, Target{LandFraction: *land, Std: *std}); err != nil {
		slog.Error("optimization failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, outputDir string, seeds, maxEvals, population, resolution int, target Target) error {
	if outputDir == "" {
		return fmt.Errorf("--output is required")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// Load base config
	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	baseCfg := config.Cfg()

	logger, err := logging.New(os.Stderr, baseCfg.Logging, "optimize")
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	params := NewParamVector()

	// Generate seeds for evaluation
	evalSeeds := make([]int64, seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, evalSeeds, baseCfg, target, resolution)

	dim := params.Dim()
	initX := params.Normalize(params.ExtractFromConfig(baseCfg))

	popSize := population
	if popSize == 0 {
		// Auto-size: 4 + floor(3*ln(n))
		popSize = 4 + int(3*math.Log(float64(dim)))
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	logFile, err := os.Create(filepath.Join(outputDir, "optimize_log.csv"))
	if err != nil {
		return fmt.Errorf("creating log file: %w", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			evalCount++

			// Clamped values are the ones actually used
			clamped := params.Clamp(raw)
			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			s := evaluator.LastStats()
			record := []EvalRecord{{
				Eval:         evalCount,
				Fitness:      fitness,
				StartGain:    clamped[0],
				GainDecay:    clamped[1],
				WaterLevel:   clamped[2],
				LandFraction: 1 - s.WaterFraction,
				Std:          s.Std,
				Saturated:    s.Saturated,
			}}
			var werr error
			if evalCount == 1 {
				werr = gocsv.Marshal(record, logFile)
			} else {
				werr = gocsv.MarshalWithoutHeaders(record, logFile)
			}
			if werr != nil {
				slog.Warn("failed to log evaluation", "error", werr)
			}

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(maxEvals-evalCount) * avgPerEval

			slog.Info("evaluation",
				"eval", evalCount,
				"of", maxEvals,
				"fitness", fitness,
				"land", 1-s.WaterFraction,
				"std", s.Std,
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
			return fitness
		},
	}

	slog.Info("starting CMA-ES optimization",
		"params", dim,
		"population", popSize,
		"max_evals", maxEvals,
		"seeds", seeds,
		"target_land", target.LandFraction,
		"target_std", target.Std,
	)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil {
		if result == nil {
			return fmt.Errorf("no evaluations completed")
		}
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	attrs := []any{"evals", evalCount, "duration", formatDuration(time.Since(startTime)), "fitness", bestFitness}
	for i, spec := range params.Specs {
		attrs = append(attrs, spec.Name, bestParams[i])
	}
	slog.Info("optimization complete", attrs...)

	// Save best config
	bestCfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	params.ApplyToConfig(bestCfg, bestParams)

	configOutPath := filepath.Join(outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		return err
	}
	slog.Info("best config saved", "path", configOutPath)
	return nil
}
