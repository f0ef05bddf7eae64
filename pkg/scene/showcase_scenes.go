package scene

import (
	"fmt"

	"github.com/df07/go-rect-raytracer/pkg/core"
	"github.com/df07/go-rect-raytracer/pkg/material"
)

// NewHallOfMirrorsScene creates a checkered back wall between two facing
// mirrors above a glossy floor
func NewHallOfMirrorsScene() (*Scene, error) {
	checker, err := newCheckerTexture(8, core.White(), core.NewColor(0.1, 0.1, 0.3, 1))
	if err != nil {
		return nil, fmt.Errorf("checker texture: %w", err)
	}

	var b rectBuilder

	// Back wall
	b.add(
		core.NewVec3(4, 0, 0),
		core.NewVec3(0, 1.5, 0),
		core.NewVec3(0, 0, -1),
		material.Material{Emittance: checker},
	)

	mirror := material.NewFlat(core.PointLightProperties{
		Emittance:      core.NewColor(0.02, 0.02, 0.02, 0),
		Reflectiveness: core.Gray(0.85),
	})

	// Right mirror, facing -y
	b.add(core.NewVec3(2, 1.5, 0), core.NewVec3(-2, 0, 0), core.NewVec3(0, 0, -1), mirror)

	// Left mirror, facing +y
	b.add(core.NewVec3(2, -1.5, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, -1), mirror)

	// Floor, facing up
	b.add(
		core.NewVec3(2, 0, -1),
		core.NewVec3(0, 1.5, 0),
		core.NewVec3(-2, 0, 0),
		material.NewFlat(core.PointLightProperties{
			Emittance:      core.NewColor(0.05, 0.04, 0.03, 0),
			Reflectiveness: core.Gray(0.4),
		}),
	)

	if b.err != nil {
		return nil, b.err
	}

	return &Scene{
		Name:      "hall-of-mirrors",
		Drawables: b.drawables,
		Camera: CameraConfig{
			Position: core.NewVec3(0, 0, 0),
			Right:    core.NewVec3(0, 1, 0),
			Down:     core.NewVec3(0, 0, -0.5625),
		},
		Width:  480,
		Height: 270,
		Env:    core.RenderEnv{MaxLightRays: 6},
	}, nil
}

// NewStainedGlassScene creates three tinted panes in front of a white emitter
func NewStainedGlassScene() (*Scene, error) {
	var b rectBuilder

	tints := []core.Color{
		core.NewColor(0.9, 0.2, 0.2, 0),
		core.NewColor(0.2, 0.9, 0.2, 0),
		core.NewColor(0.2, 0.2, 0.9, 0),
	}
	for i, tint := range tints {
		b.add(
			core.NewVec3(3, float64(i-1)*0.7, 0),
			core.NewVec3(0, 0.3, 0),
			core.NewVec3(0, 0, -0.5),
			material.NewFlat(core.PointLightProperties{
				Emittance:      tint.Multiply(0.05),
				Transparency:   tint,
				Reflectiveness: core.Gray(0.1),
			}),
		)
	}

	// Backlight
	b.add(
		core.NewVec3(6, 0, 0),
		core.NewVec3(0, 2, 0),
		core.NewVec3(0, 0, -1.2),
		material.NewEmissive(core.White()),
	)

	if b.err != nil {
		return nil, b.err
	}

	return &Scene{
		Name:      "stained-glass",
		Drawables: b.drawables,
		Camera: CameraConfig{
			Position: core.NewVec3(0, 0, 0),
			Right:    core.NewVec3(0, 16.0/18.0, 0),
			Down:     core.NewVec3(0, 0, -0.5),
		},
		Width:  480,
		Height: 270,
		Env:    core.RenderEnv{MaxLightRays: 1},
	}, nil
}

// newCheckerTexture creates a size x size texture of alternating colors
func newCheckerTexture(size int, even, odd core.Color) (*material.ImageTexture, error) {
	pixels := make([]core.Color, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x+y)%2 == 0 {
				pixels[y*size+x] = even
			} else {
				pixels[y*size+x] = odd
			}
		}
	}
	return material.NewImageTexture(size, size, pixels)
}
