package dots

import (
	"image/color"
	"math"
	"strconv"
)

// DotAlpha is the opacity of every dot.
const DotAlpha = 0.25

var (
	// DarkDot is drawn when the page is in dark mode.
	DarkDot = Color{R: 255, G: 255, B: 255, A: DotAlpha}
	// LightDot is drawn in light mode.
	LightDot = Color{R: 100, G: 100, B: 100, A: DotAlpha}
)

// Color is a CSS-style rgba color with a fractional alpha.
type Color struct {
	R, G, B uint8
	A       float64
}

// DotColor picks the dot color for the current theme.
func DotColor(dark bool) Color {
	if dark {
		return DarkDot
	}
	return LightDot
}

// String formats c as a CSS rgba() value, e.g. "rgba(255, 255, 255, 0.25)".
func (c Color) String() string {
	b := make([]byte, 0, 32)
	b = append(b, "rgba("...)
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ", "...)
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ", "...)
	b = strconv.AppendUint(b, uint64(c.B), 10)
	b = append(b, ", "...)
	b = strconv.AppendFloat(b, c.A, 'g', -1, 64)
	b = append(b, ')')
	return string(b)
}

// NRGBA converts c for raster hosts.
func (c Color) NRGBA() color.NRGBA {
	a := math.Max(0, math.Min(1, c.A))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(a * 255))}
}
