package core

import (
	"image/color"
	"math"
)

// Color is a linear four channel intensity. Channels are unconstrained while
// light is accumulated and only clamped when encoded to 8-bit pixels.
type Color struct {
	R, G, B, A float64
}

// NewColor creates a new Color
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Transparent returns the all-zero color
func Transparent() Color {
	return Color{}
}

// White returns opaque white
func White() Color {
	return Color{1, 1, 1, 1}
}

// All returns a color with every channel, alpha included, set to v
func All(v float64) Color {
	return Color{v, v, v, v}
}

// Gray returns an opaque color with r, g and b set to v
func Gray(v float64) Color {
	return Color{v, v, v, 1}
}

// ColorFromRGBA8 decodes an 8-bit per channel pixel
func ColorFromRGBA8(p [4]uint8) Color {
	return Color{
		R: float64(p[0]) / 255.0,
		G: float64(p[1]) / 255.0,
		B: float64(p[2]) / 255.0,
		A: float64(p[3]) / 255.0,
	}
}

// ColorFromStd converts any image/color value to a Color in [0, 1].
// Channels are taken unpremultiplied, as stored in the image.
func ColorFromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return ColorFromRGBA8([4]uint8{n.R, n.G, n.B, n.A})
}

// Add returns the per-channel sum
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// MultiplyColor returns the per-channel product
func (c Color) MultiplyColor(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B, c.A * other.A}
}

// Multiply scales every channel by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar, c.A * scalar}
}

// DivideColor returns the per-channel quotient. The divisor must be non-zero.
func (c Color) DivideColor(other Color) Color {
	return Color{c.R / other.R, c.G / other.G, c.B / other.B, c.A / other.A}
}

// Divide divides every channel by a scalar. The divisor must be non-zero.
func (c Color) Divide(scalar float64) Color {
	return Color{c.R / scalar, c.G / scalar, c.B / scalar, c.A / scalar}
}

// MaxRGB returns the largest of the r, g and b channels
func (c Color) MaxRGB() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// IsTransparent reports whether all four channels are exactly zero
func (c Color) IsTransparent() bool {
	return c.R == 0 && c.G == 0 && c.B == 0 && c.A == 0
}

// RGBA8 encodes the color as an 8-bit pixel. Color channels are clamped to
// [0, 1] before scaling and truncation; alpha is always fully opaque.
func (c Color) RGBA8() [4]uint8 {
	return [4]uint8{
		uint8(255 * clamp01(c.R)),
		uint8(255 * clamp01(c.G)),
		uint8(255 * clamp01(c.B)),
		255,
	}
}

// ToRGBA converts the color to an image/color value using RGBA8 encoding
func (c Color) ToRGBA() color.RGBA {
	p := c.RGBA8()
	return color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

func clamp01(v float64) float64 {
	// NaN compares false on both sides and is mapped to 0
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
