package scene

import (
	"github.com/df07/go-rect-raytracer/pkg/core"
	"github.com/df07/go-rect-raytracer/pkg/material"
)

// NewDefaultScene creates the reference scene: a reflective red panel in front
// of the camera, a green panel behind it and a blue panel behind the camera
// that only shows up in the red panel's reflection
func NewDefaultScene() (*Scene, error) {
	var b rectBuilder

	// Red
	b.add(
		core.NewVec3(2.5, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, -0.5),
		material.NewFlat(core.PointLightProperties{
			Emittance:      core.NewColor(0.5, 0, 0, 0),
			Transparency:   core.NewColor(0.3, 0.3, 0.3, 0),
			Reflectiveness: core.NewColor(0.5, 0.5, 0.5, 0),
		}),
	)

	// Green, behind red
	b.add(
		core.NewVec3(3, 1, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, -0.5),
		material.NewFlat(core.PointLightProperties{
			Emittance:    core.NewColor(0, 0.5, 0, 0),
			Transparency: core.NewColor(0.5, 0.5, 0.5, 0),
		}),
	)

	// Blue, behind the camera. Right is flipped so the front face points at the camera.
	b.add(
		core.NewVec3(-2, -0.5, 0.25),
		core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, -0.5),
		material.NewFlat(core.PointLightProperties{
			Emittance:    core.NewColor(0, 0, 0.5, 0),
			Transparency: core.NewColor(0.5, 0.5, 0.5, 0),
		}),
	)

	if b.err != nil {
		return nil, b.err
	}

	return &Scene{
		Name:      "default",
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

// NewWhiteWallScene creates a single white emitter in front of the camera on a
// black background
func NewWhiteWallScene() (*Scene, error) {
	var b rectBuilder
	b.add(
		core.NewVec3(2.5, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, -0.5),
		material.NewEmissive(core.White()),
	)
	if b.err != nil {
		return nil, b.err
	}

	return &Scene{
		Name:      "white-wall",
		Drawables: b.drawables,
		Camera: CameraConfig{
			Position: core.NewVec3(0, 0, 0),
			Right:    core.NewVec3(0, 1, 0),
			Down:     core.NewVec3(0, 0, -0.5),
		},
		Width:  320,
		Height: 160,
		Env:    core.RenderEnv{MaxLightRays: 0},
	}, nil
}
