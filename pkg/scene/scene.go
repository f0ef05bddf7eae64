package scene

import (
	"fmt"
	"image"
	"strings"

	"github.com/df07/go-rect-raytracer/pkg/core"
	"github.com/df07/go-rect-raytracer/pkg/geometry"
	"github.com/df07/go-rect-raytracer/pkg/material"
	"github.com/df07/go-rect-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name      string
	Drawables []core.Drawable // Objects in the scene
	Camera    CameraConfig
	Width     int            // Image width
	Height    int            // Image height
	Env       core.RenderEnv // Frame counter and light ray budget
}

// CameraConfig holds the camera pose. Right and Down are not required to be
// unit length; their magnitude sets the field of view.
type CameraConfig struct {
	Position core.Vec3
	Right    core.Vec3
	Down     core.Vec3
}

// NewRenderer creates a renderer for the scene's drawables
func (s *Scene) NewRenderer(config renderer.RenderConfig, logger core.Logger) *renderer.Renderer {
	r := renderer.NewRenderer(s.Drawables)
	r.SetConfig(config)
	r.SetLogger(logger)
	return r
}

// Render renders the scene with its own camera, resolution and environment
func (s *Scene) Render(config renderer.RenderConfig, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	r := s.NewRenderer(config, logger)
	return r.RenderWithStats(s.Env, s.Width, s.Height, s.Camera.Position, s.Camera.Right, s.Camera.Down)
}

// NewScene creates a built-in scene by name, or loads a scene file when the
// name ends in .json
func NewScene(name string) (*Scene, error) {
	if strings.HasSuffix(name, ".json") {
		return NewFileScene(name)
	}

	constructor, ok := builtInScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return constructor()
}

var builtInScenes = map[string]func() (*Scene, error){
	"default":         NewDefaultScene,
	"white-wall":      NewWhiteWallScene,
	"hall-of-mirrors": NewHallOfMirrorsScene,
	"stained-glass":   NewStainedGlassScene,
}

// rectBuilder collects rects and remembers the first construction error
type rectBuilder struct {
	drawables []core.Drawable
	err       error
}

func (b *rectBuilder) add(center, right, down core.Vec3, mat material.Material) {
	if b.err != nil {
		return
	}
	rect, err := geometry.NewRect(center, right, down, mat)
	if err != nil {
		b.err = fmt.Errorf("rect %d: %w", len(b.drawables), err)
		return
	}
	b.drawables = append(b.drawables, rect)
}
