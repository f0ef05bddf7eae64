package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-rect-raytracer/pkg/core"
	"github.com/df07/go-rect-raytracer/pkg/loaders"
	"github.com/df07/go-rect-raytracer/pkg/material"
)

// NewFileScene loads a scene from a JSON scene file
func NewFileScene(path string) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, err
	}
	if sf.Name == "" {
		sf.Name = sceneFileID(path)
	}
	return NewSceneFromFile(sf)
}

// NewSceneFromFile builds a scene from a decoded scene file, loading any
// referenced textures. A texture used by several channels is loaded once.
func NewSceneFromFile(sf *loaders.SceneFile) (*Scene, error) {
	textures := make(map[string]*material.ImageTexture)
	channel := func(ch loaders.ChannelFile) (material.ColorSource, error) {
		switch {
		case ch.Texture != "":
			path := sf.TexturePath(ch.Texture)
			if tex, ok := textures[path]; ok {
				return tex, nil
			}
			tex, err := loaders.LoadTexture(path)
			if err != nil {
				return nil, err
			}
			textures[path] = tex
			return tex, nil
		case ch.Color != nil:
			return material.NewSolidColor(ch.Color.Color()), nil
		default:
			return material.NewSolidColor(core.Transparent()), nil
		}
	}

	var b rectBuilder
	for i, rf := range sf.Rects {
		var mat material.Material
		var err error
		if mat.Emittance, err = channel(rf.Material.Emittance); err != nil {
			return nil, fmt.Errorf("rect %d emittance: %w", i, err)
		}
		if mat.Transparency, err = channel(rf.Material.Transparency); err != nil {
			return nil, fmt.Errorf("rect %d transparency: %w", i, err)
		}
		if mat.Reflectiveness, err = channel(rf.Material.Reflectiveness); err != nil {
			return nil, fmt.Errorf("rect %d reflectiveness: %w", i, err)
		}
		if mat.Scattering, err = channel(rf.Material.Scattering); err != nil {
			return nil, fmt.Errorf("rect %d scattering: %w", i, err)
		}
		b.add(rf.Center.Vec3(), rf.Right.Vec3(), rf.Down.Vec3(), mat)
	}
	if b.err != nil {
		return nil, fmt.Errorf("scene %q: %w", sf.Name, b.err)
	}

	return &Scene{
		Name:      sf.Name,
		Drawables: b.drawables,
		Camera: CameraConfig{
			Position: sf.Camera.Position.Vec3(),
			Right:    sf.Camera.Right.Vec3(),
			Down:     sf.Camera.Down.Vec3(),
		},
		Width:  sf.Width,
		Height: sf.Height,
		Env:    core.RenderEnv{MaxLightRays: sf.MaxLightRays},
	}, nil
}

// sceneFileID derives a scene name from a scene file path
func sceneFileID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
