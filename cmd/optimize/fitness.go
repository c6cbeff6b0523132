package main

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/terrain/config"
	"github.com/pthm-cable/terrain/noise"
	"github.com/pthm-cable/terrain/telemetry"
)

// Target describes the terrain profile the search aims for.
type Target struct {
	LandFraction float64 // share of pixels at or above the water level
	Std          float64 // height standard deviation (roughness)
}

// Fitness weights.
const (
	landWeight      = 1.0
	stdWeight       = 1.0
	saturatedWeight = 0.5 // penalty for pixels pinned at +-1 by clamping
)

// FitnessEvaluator generates fields for candidate parameters and scores
// them against a target profile.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	target     Target
	resolution int

	mu          sync.Mutex
	bestFitness float64
	lastStats   telemetry.FieldStats // mean over seeds of the most recent Evaluate
}

// NewFitnessEvaluator creates a new evaluator. Fields are generated at
// resolution x resolution to keep evaluations cheap.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, baseCfg *config.Config, target Target, resolution int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		baseConfig:  baseCfg,
		target:      target,
		resolution:  resolution,
		bestFitness: math.Inf(1),
	}
}

// LastStats returns the seed-averaged field stats from the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() telemetry.FieldStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStats
}

// BestFitness returns the lowest fitness seen so far.
func (fe *FitnessEvaluator) BestFitness() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestFitness
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Invalid parameters score +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	p := cfg.FractalParams()
	p.OutputWidth = fe.resolution
	p.OutputHeight = fe.resolution

	// Run all seeds in parallel
	results := make([]telemetry.FieldStats, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			// One worker per seed; the seeds already fill the cores.
			comp := noise.Compositor{Workers: 1}
			field, err := comp.Generate(p, rand.New(rand.NewSource(s)))
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = telemetry.ComputeFieldStats(field, p.WaterLevel)
		}(i, seed)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return math.Inf(1)
		}
	}

	mean := meanStats(results)
	fitness := fe.score(mean)

	fe.mu.Lock()
	if fitness < fe.bestFitness {
		fe.bestFitness = fitness
	}
	fe.lastStats = mean
	fe.mu.Unlock()

	return fitness
}

// score is the weighted squared distance of s from the target profile.
func (fe *FitnessEvaluator) score(s telemetry.FieldStats) float64 {
	land := 1 - s.WaterFraction
	dl := land - fe.target.LandFraction
	ds := s.Std - fe.target.Std
	return landWeight*dl*dl + stdWeight*ds*ds + saturatedWeight*s.Saturated
}

func meanStats(all []telemetry.FieldStats) telemetry.FieldStats {
	var m telemetry.FieldStats
	if len(all) == 0 {
		return m
	}
	for _, s := range all {
		m.Min += s.Min
		m.Max += s.Max
		m.Mean += s.Mean
		m.Std += s.Std
		m.Saturated += s.Saturated
		m.WaterFraction += s.WaterFraction
	}
	n := float64(len(all))
	m.Min /= n
	m.Max /= n
	m.Mean /= n
	m.Std /= n
	m.Saturated /= n
	m.WaterFraction /= n
	m.Width, m.Height = all[0].Width, all[0].Height
	return m
}

// copyConfig creates a copy of the base config that ApplyToConfig may mutate.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	if w := fe.baseConfig.Fractal.WaterLevel; w != nil {
		level := *w
		cfg.Fractal.WaterLevel = &level
	}
	return &cfg
}
