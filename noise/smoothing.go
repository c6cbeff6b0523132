package noise

import (
	"fmt"
	"strings"
)

// SmoothingMode selects the easing curve applied to fractional lattice
// coordinates before interpolation.
type SmoothingMode uint8

const (
	SmoothNone    SmoothingMode = iota // t
	SmoothCubic                        // 3t^2 - 2t^3
	SmoothQuintic                      // 6t^5 - 15t^4 + 10t^3
)

var smoothers = [...]func(float64) float64{
	SmoothNone:    smoothNone,
	SmoothCubic:   smoothCubic,
	SmoothQuintic: smoothQuintic,
}

var smoothingNames = [...]string{
	SmoothNone:    "none",
	SmoothCubic:   "cubic",
	SmoothQuintic: "quintic",
}

func smoothNone(t float64) float64 {
	return t
}

func smoothCubic(t float64) float64 {
	t2 := t * t
	return 3*t2 - 2*t*t2
}

func smoothQuintic(t float64) float64 {
	t3 := t * t * t
	t4 := t3 * t
	return 6*t4*t - 15*t4 + 10*t3
}

// Apply runs the easing curve on t. Unknown modes fall back to SmoothNone.
func (m SmoothingMode) Apply(t float64) float64 {
	if int(m) >= len(smoothers) {
		return t
	}
	return smoothers[m](t)
}

func (m SmoothingMode) String() string {
	if int(m) >= len(smoothingNames) {
		return fmt.Sprintf("SmoothingMode(%d)", m)
	}
	return smoothingNames[m]
}

// ParseSmoothing accepts a mode name or its level number (0=none,
// 1=cubic, 2=quintic).
func ParseSmoothing(s string) (SmoothingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "raw", "0", "":
		return SmoothNone, nil
	case "cubic", "smooth", "1":
		return SmoothCubic, nil
	case "quintic", "improved", "2":
		return SmoothQuintic, nil
	}
	return SmoothNone, fmt.Errorf("unknown smoothing mode %q", s)
}

// MarshalText implements encoding.TextMarshaler so modes read naturally in
// YAML config.
func (m SmoothingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SmoothingMode) UnmarshalText(b []byte) error {
	mode, err := ParseSmoothing(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
