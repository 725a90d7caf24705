// Package color provides RGBA colors, color notation parsing and gradients
// for molecular coloring.
package color

import (
	"errors"
	"fmt"
)

// ErrInvalidColorSpec is returned for malformed hex strings, out-of-range
// component arrays and unknown color names.
var ErrInvalidColorSpec = errors.New("invalid color spec")

// Color is an RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Predefined colors. The named lookup table below maps notation names to
// these values.
var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}

	Grey      = Color{0.5, 0.5, 0.5, 1}
	LightGrey = Color{0.8, 0.8, 0.8, 1}
	DarkGrey  = Color{0.3, 0.3, 0.3, 1}

	Red      = Color{1, 0, 0, 1}
	DarkRed  = Color{0.5, 0, 0, 1}
	LightRed = Color{1, 0.5, 0.5, 1}

	Green      = Color{0, 1, 0, 1}
	DarkGreen  = Color{0, 0.5, 0, 1}
	LightGreen = Color{0.5, 1, 0.5, 1}

	Blue      = Color{0, 0, 1, 1}
	DarkBlue  = Color{0, 0, 0.5, 1}
	LightBlue = Color{0.5, 0.5, 1, 1}

	Yellow      = Color{1, 1, 0, 1}
	DarkYellow  = Color{0.5, 0.5, 0, 1}
	LightYellow = Color{1, 1, 0.5, 1}

	Cyan      = Color{0, 1, 1, 1}
	DarkCyan  = Color{0, 0.5, 0.5, 1}
	LightCyan = Color{0.5, 1, 1, 1}

	Magenta      = Color{1, 0, 1, 1}
	DarkMagenta  = Color{0.5, 0, 0.5, 1}
	LightMagenta = Color{1, 0.5, 1, 1}

	Orange      = Color{1, 0.5, 0, 1}
	DarkOrange  = Color{0.5, 0.25, 0, 1}
	LightOrange = Color{1, 0.75, 0.5, 1}
)

// named is the closed set of color names accepted by Parse.
var named = map[string]Color{
	"white": White,
	"black": Black,

	"grey":      Grey,
	"lightgrey": LightGrey,
	"darkgrey":  DarkGrey,

	"red":      Red,
	"darkred":  DarkRed,
	"lightred": LightRed,

	"green":      Green,
	"darkgreen":  DarkGreen,
	"lightgreen": LightGreen,

	"blue":      Blue,
	"darkblue":  DarkBlue,
	"lightblue": LightBlue,

	"yellow":      Yellow,
	"darkyellow":  DarkYellow,
	"lightyellow": LightYellow,

	"cyan":      Cyan,
	"darkcyan":  DarkCyan,
	"lightcyan": LightCyan,

	"magenta":      Magenta,
	"darkmagenta":  DarkMagenta,
	"lightmagenta": LightMagenta,

	"orange":      Orange,
	"darkorange":  DarkOrange,
	"lightorange": LightOrange,
}

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Mix returns the linear interpolation between c and other at parameter t.
func (c Color) Mix(other Color, t float32) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// WriteTo writes the color as 4 floats at buf[offset..offset+3].
func (c Color) WriteTo(buf []float32, offset int) {
	buf[offset] = c.R
	buf[offset+1] = c.G
	buf[offset+2] = c.B
	buf[offset+3] = c.A
}

// Parse resolves a color notation string: either a hash-prefixed hex form
// (#rgb, #rgba, #rrggbb, #rrggbbaa) or one of the fixed color names.
// The 3 and 6 digit hex forms imply alpha 1.
func Parse(s string) (Color, error) {
	if len(s) > 0 && s[0] == '#' {
		return parseHex(s[1:])
	}
	if c, ok := named[s]; ok {
		return c, nil
	}
	return Color{}, fmt.Errorf("%w: unknown color name %q", ErrInvalidColorSpec, s)
}

// FromFloats resolves a numeric color array of length 3 (alpha defaults
// to 1) or 4, each component in [0, 1].
func FromFloats(vals []float32) (Color, error) {
	if len(vals) != 3 && len(vals) != 4 {
		return Color{}, fmt.Errorf("%w: array must have 3 or 4 components, got %d", ErrInvalidColorSpec, len(vals))
	}
	for _, v := range vals {
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("%w: component %v outside [0,1]", ErrInvalidColorSpec, v)
		}
	}
	c := Color{vals[0], vals[1], vals[2], 1}
	if len(vals) == 4 {
		c.A = vals[3]
	}
	return c, nil
}

// Resolve accepts any supported color notation: a Color value, a string
// (hex or name) or a []float32 of length 3 or 4.
func Resolve(spec any) (Color, error) {
	switch v := spec.(type) {
	case Color:
		return v, nil
	case string:
		return Parse(v)
	case []float32:
		return FromFloats(v)
	default:
		return Color{}, fmt.Errorf("%w: unsupported notation %T", ErrInvalidColorSpec, spec)
	}
}

// MustParse is like Parse but panics on error. Intended for compile-time
// constant notations.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(digits string) (Color, error) {
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: hex color needs 3, 4, 6 or 8 digits, got %d", ErrInvalidColorSpec, len(digits))
	}

	wide := len(digits) >= 6
	var comps [4]float32
	comps[3] = 1
	n := len(digits)
	if wide {
		n /= 2
	}
	for i := 0; i < n; i++ {
		if wide {
			hi, ok1 := hexDigit(digits[i*2])
			lo, ok2 := hexDigit(digits[i*2+1])
			if !ok1 || !ok2 {
				return Color{}, fmt.Errorf("%w: bad hex digit in %q", ErrInvalidColorSpec, digits)
			}
			comps[i] = float32(hi*16+lo) / 255.0
		} else {
			d, ok := hexDigit(digits[i])
			if !ok {
				return Color{}, fmt.Errorf("%w: bad hex digit in %q", ErrInvalidColorSpec, digits)
			}
			comps[i] = float32(d) / 15.0
		}
	}
	return Color{comps[0], comps[1], comps[2], comps[3]}, nil
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	}
	return 0, false
}
