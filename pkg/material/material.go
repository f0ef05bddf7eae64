package material

import (
	"github.com/df07/go-rect-raytracer/pkg/core"
)

// Material resolves the four light properties of a surface from color sources.
// Each channel may be a flat color or an image texture.
type Material struct {
	Emittance      ColorSource
	Transparency   ColorSource
	Reflectiveness ColorSource
	Scattering     ColorSource
}

// NewFlat creates a material where every channel is a solid color
func NewFlat(props core.PointLightProperties) Material {
	return Material{
		Emittance:      NewSolidColor(props.Emittance),
		Transparency:   NewSolidColor(props.Transparency),
		Reflectiveness: NewSolidColor(props.Reflectiveness),
		Scattering:     NewSolidColor(props.Scattering),
	}
}

// NewEmissive creates an opaque material that only emits light
func NewEmissive(emittance core.Color) Material {
	return NewFlat(core.PointLightProperties{Emittance: emittance})
}

// Resolve evaluates all channels at texture coordinates u, v in [0, 1].
// A nil channel resolves to the transparent color.
func (m Material) Resolve(u, v float64) core.PointLightProperties {
	return core.PointLightProperties{
		Emittance:      evaluate(m.Emittance, u, v),
		Transparency:   evaluate(m.Transparency, u, v),
		Reflectiveness: evaluate(m.Reflectiveness, u, v),
		Scattering:     evaluate(m.Scattering, u, v),
	}
}

func evaluate(source ColorSource, u, v float64) core.Color {
	if source == nil {
		return core.Transparent()
	}
	return source.Evaluate(u, v)
}
