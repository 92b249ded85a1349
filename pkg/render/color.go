package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a gamma-encoded (sRGB) triple with nominal 0-1 components.
// Components are not clamped while shading; clamping happens only when a
// color is converted for display.
type Color struct {
	R, G, B float64
}

// RGB creates a color from components in the 0-1 range.
func RGB(r, g, b float64) Color {
	return Color{r, g, b}
}

// Gray creates a color with all three components set to v.
func Gray(v float64) Color {
	return Color{v, v, v}
}

// Colors for convenience
var (
	Black     = Color{0, 0, 0}
	White     = Color{1, 1, 1}
	Red       = Color{1, 0, 0}
	Green     = Color{0, 1, 0}
	Blue      = Color{0, 0, 1}
	Yellow    = Color{1, 1, 0}
	Cyan      = Color{0, 1, 1}
	Magenta   = Color{1, 0, 1}
	Sky       = Color{0.53, 0.81, 0.92}
	PaleGreen = Color{0.6, 0.98, 0.6}
	Slate     = Color{30.0 / 255, 30.0 / 255, 40.0 / 255}
)

// Add returns c + o.
func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

// Mul returns the component-wise product, used to modulate a light by a material.
func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Scale returns c * s.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s}
}

// Div returns c / s.
func (c Color) Div(s float64) Color {
	return Color{c.R / s, c.G / s, c.B / s}
}

// Over composites src with opacity alpha over dst:
// (1-alpha)*dst + alpha*src.
func Over(dst, src Color, alpha float64) Color {
	return dst.Scale(1 - alpha).Add(src.Scale(alpha))
}

// RGBA converts the color to 8-bit RGBA, clamping each component to [0, 1].
func (c Color) RGBA() color.RGBA {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FromRGBA scales an 8-bit color to 0-1 components without linearizing.
// Fully transparent input maps to black.
func FromRGBA(c color.Color) Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return Black
	}
	return Color{cf.R, cf.G, cf.B}
}

// ApproxEqual reports whether every component differs by at most eps.
func (c Color) ApproxEqual(o Color, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps && math.Abs(c.G-o.G) <= eps && math.Abs(c.B-o.B) <= eps
}
