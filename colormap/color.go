package colormap

import (
	"fmt"
	"image/color"
	"strings"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// WaterColor is returned for every value below the water level.
var WaterColor = RGB{0x00, 0x30, 0xAF}

// RGBA returns the colour as an opaque color.RGBA.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex formats the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses #rrggbb or rrggbb.
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var c RGB
	if len(s) != 6 {
		return c, fmt.Errorf("colour %q: want 6 hex digits", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("colour %q: %w", s, err)
	}
	return c, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Rounding selects how interpolated channel values become integers.
type Rounding uint8

const (
	// RoundTruncate drops the fraction, so gray at 0 maps to 127.
	RoundTruncate Rounding = iota
	// RoundNearest rounds half away from zero, so gray at 0 maps to 128.
	RoundNearest
)

func (r Rounding) String() string {
	switch r {
	case RoundTruncate:
		return "truncate"
	case RoundNearest:
		return "nearest"
	}
	return fmt.Sprintf("Rounding(%d)", r)
}

// ParseRounding accepts "truncate" or "nearest".
func ParseRounding(s string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "truncate", "trunc", "":
		return RoundTruncate, nil
	case "nearest", "round":
		return RoundNearest, nil
	}
	return RoundTruncate, fmt.Errorf("unknown rounding %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rounding) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rounding) UnmarshalText(b []byte) error {
	parsed, err := ParseRounding(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
