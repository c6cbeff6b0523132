package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/terrain/noise"
)

// FieldStats summarises the value distribution of one generated field.
type FieldStats struct {
	Seed   int64 `csv:"seed"`
	Width  int   `csv:"width"`
	Height int   `csv:"height"`

	Min  float64 `csv:"min"`
	Max  float64 `csv:"max"`
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"` // sample standard deviation
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`

	// Fraction of pixels pinned at -1 or 1 by merge clamping
	Saturated float64 `csv:"saturated"`

	// Fraction of pixels below the water level (0 when no water)
	WaterFraction float64 `csv:"water_fraction"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats calculates distribution statistics for f. water may be nil.
func ComputeFieldStats(f *noise.Field, water *float64) FieldStats {
	s := FieldStats{Width: f.Width, Height: f.Height}
	n := len(f.Data)
	if n == 0 {
		return s
	}

	sorted := make([]float64, n)
	copy(sorted, f.Data)
	sort.Float64s(sorted)

	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	if n > 1 {
		s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	} else {
		s.Mean = sorted[0]
	}
	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)

	var saturated, below int
	for _, v := range sorted {
		if v <= -1 || v >= 1 {
			saturated++
		}
		if water != nil && v < *water {
			below++
		}
	}
	s.Saturated = float64(saturated) / float64(n)
	s.WaterFraction = float64(below) / float64(n)

	return s
}

// HistogramBin is one bucket of a value histogram.
type HistogramBin struct {
	Lower float64 `csv:"lower"`
	Upper float64 `csv:"upper"`
	Count int     `csv:"count"`
}

// Histogram buckets f into bins equal-width bins spanning [-1, 1], widened
// to cover any values outside that range.
func Histogram(f *noise.Field, bins int) []HistogramBin {
	if bins < 1 || len(f.Data) == 0 {
		return nil
	}

	sorted := make([]float64, len(f.Data))
	copy(sorted, f.Data)
	sort.Float64s(sorted)

	lo := math.Min(-1, sorted[0])
	hi := math.Max(1, sorted[len(sorted)-1])

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// stat.Histogram bins are half-open; nudge the top so hi lands in the last bin.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	out := make([]HistogramBin, bins)
	for i := range out {
		out[i] = HistogramBin{
			Lower: dividers[i],
			Upper: dividers[i+1],
			Count: int(counts[i]),
		}
	}
	return out
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("seed", s.Seed),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("saturated", s.Saturated),
		slog.Float64("water_fraction", s.WaterFraction),
	)
}
