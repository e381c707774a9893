package termgl

import (
	"fmt"
	"image/color"
)

// Color is a non-premultiplied 8-bit RGBA color.
// The zero value is fully transparent black.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// Uint32 packs the color as 0xRRGGBBAA.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// String returns the color as "#RRGGBBAA".
func (c Color) String() string {
	return fmt.Sprintf("#%08X", c.Uint32())
}

// FromColor converts a standard color.Color to Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseHex parses a hex color string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with an optional
// leading '#'.
func ParseHex(hex string) (Color, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}

	var v [4]uint8
	v[3] = 255

	switch len(s) {
	case 3, 4:
		for i := range len(s) {
			d, ok := hexDigit(s[i])
			if !ok {
				return Color{}, fmt.Errorf("termgl: invalid hex color %q", hex)
			}
			v[i] = d * 17
		}
	case 6, 8:
		for i := 0; i < len(s); i += 2 {
			hi, ok1 := hexDigit(s[i])
			lo, ok2 := hexDigit(s[i+1])
			if !ok1 || !ok2 {
				return Color{}, fmt.Errorf("termgl: invalid hex color %q", hex)
			}
			v[i/2] = hi<<4 | lo
		}
	default:
		return Color{}, fmt.Errorf("termgl: invalid hex color %q", hex)
	}

	return Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}

// Hex is like ParseHex but returns opaque black for malformed input.
func Hex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		return Black
	}
	return c
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Common colors
var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Yellow      = RGB(255, 255, 0)
	Cyan        = RGB(0, 255, 255)
	Magenta     = RGB(255, 0, 255)
	Transparent = Color{}
)
