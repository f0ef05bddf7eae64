package material

import (
	"github.com/df07/go-rect-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at texture coordinates u, v in [0, 1]
	Evaluate(u, v float64) core.Color
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV
func (s *SolidColor) Evaluate(u, v float64) core.Color {
	return s.Color
}
