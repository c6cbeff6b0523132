package telemetry

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartRun()
		pc.StartPhase(PhaseGridBuild)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseSample)
		time.Sleep(200 * time.Microsecond)
		pc.EndRun()
	}

	stats := pc.Stats()

	assert.Equal(t, 5, stats.Runs)
	assert.Positive(t, stats.AvgRunDuration)
	assert.Contains(t, stats.PhaseAvg, PhaseGridBuild)
	assert.Contains(t, stats.PhaseAvg, PhaseSample)
	assert.NotContains(t, stats.PhaseAvg, PhaseMerge)
	assert.LessOrEqual(t, stats.MinRunDuration, stats.AvgRunDuration)
	assert.GreaterOrEqual(t, stats.MaxRunDuration, stats.AvgRunDuration)
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartRun()
		pc.StartPhase(PhaseMerge)
		pc.EndRun()
	}

	stats := pc.Stats()
	assert.Equal(t, 5, stats.Runs, "window caps the sample count")
	assert.GreaterOrEqual(t, stats.AvgRunDuration, time.Duration(0))
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)

	stats := pc.Stats()
	assert.Zero(t, stats.Runs)
	assert.NotNil(t, stats.PhaseAvg)
	assert.NotNil(t, stats.PhasePct)
	assert.Zero(t, stats.RunsPerSecond)
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(4)

	pc.StartRun()
	pc.StartPhase(PhaseGridBuild)
	time.Sleep(time.Millisecond)
	pc.StartPhase(PhaseEncode)
	time.Sleep(time.Millisecond)
	pc.EndRun()

	stats := pc.Stats()
	total := 0.0
	for _, pct := range stats.PhasePct {
		total += pct
	}
	assert.InDelta(t, 100, total, 5, "phases cover nearly the whole run")
}

func TestPerfCollector_RepeatedPhaseAccumulates(t *testing.T) {
	pc := NewPerfCollector(1)

	pc.StartRun()
	for i := 0; i < 3; i++ {
		pc.StartPhase(PhaseSample)
		time.Sleep(200 * time.Microsecond)
		pc.StartPhase(PhaseMerge)
	}
	pc.EndRun()

	stats := pc.Stats()
	require.Contains(t, stats.PhaseAvg, PhaseSample)
	assert.GreaterOrEqual(t, stats.PhaseAvg[PhaseSample], 600*time.Microsecond)
}

func TestPerfCollector_RecordFrame(t *testing.T) {
	pc := NewPerfCollector(1)

	pc.RecordFrame()
	time.Sleep(time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	assert.Positive(t, stats.FrameDuration)
	assert.Positive(t, stats.FPS)
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgRunDuration: 1500 * time.Microsecond,
		MinRunDuration: time.Millisecond,
		MaxRunDuration: 2 * time.Millisecond,
		RunsPerSecond:  666.6,
		PhasePct: map[string]float64{
			PhaseGridBuild: 10,
			PhaseSample:    60,
			PhaseMerge:     20,
			PhaseColorize:  8,
			PhaseEncode:    2,
		},
	}

	row := s.ToCSV(3)
	assert.Equal(t, 3, row.Run)
	assert.Equal(t, int64(1500), row.AvgRunUS)
	assert.Equal(t, int64(1000), row.MinRunUS)
	assert.Equal(t, int64(2000), row.MaxRunUS)
	assert.Equal(t, 60.0, row.SamplePct)
	assert.Equal(t, 2.0, row.EncodePct)
}

func TestPerfStats_LogValue(t *testing.T) {
	s := PerfStats{
		Runs:           2,
		AvgRunDuration: time.Millisecond,
		PhasePct:       map[string]float64{PhaseSample: 75.55, PhaseMerge: 0.05},
	}

	v := s.LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())

	keys := make(map[string]slog.Value)
	for _, a := range v.Group() {
		keys[a.Key] = a.Value
	}
	assert.Equal(t, int64(2), keys["runs"].Int64())
	assert.Equal(t, 75.5, keys["sample_pct"].Float64())
	assert.NotContains(t, keys, "merge_pct", "negligible phases are omitted")
	assert.NotContains(t, keys, "fps")
}
