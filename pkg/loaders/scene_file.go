package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-rect-raytracer/pkg/core"
)

// Vec3File is a 3D vector as stored in a scene file
type Vec3File struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec3 converts to core.Vec3
func (v Vec3File) Vec3() core.Vec3 {
	return core.NewVec3(v.X, v.Y, v.Z)
}

// ColorFile is a linear RGBA color as stored in a scene file
type ColorFile struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Color converts to core.Color
func (c ColorFile) Color() core.Color {
	return core.NewColor(c.R, c.G, c.B, c.A)
}

// ChannelFile is one material channel: a flat color or a texture path.
// A channel with neither set is the transparent color.
type ChannelFile struct {
	Color   *ColorFile `json:"color,omitempty"`
	Texture string     `json:"texture,omitempty"` // Relative to the scene file
}

// MaterialFile describes the four light properties of a rect
type MaterialFile struct {
	Emittance      ChannelFile `json:"emittance"`
	Transparency   ChannelFile `json:"transparency"`
	Reflectiveness ChannelFile `json:"reflectiveness"`
	Scattering     ChannelFile `json:"scattering"`
}

// RectFile describes a rect by center and half-extent edges
type RectFile struct {
	Center   Vec3File     `json:"center"`
	Right    Vec3File     `json:"right"`
	Down     Vec3File     `json:"down"`
	Material MaterialFile `json:"material"`
}

// CameraFile describes the camera pose and basis
type CameraFile struct {
	Position Vec3File `json:"position"`
	Right    Vec3File `json:"right"`
	Down     Vec3File `json:"down"`
}

// SceneFile is the JSON representation of a scene
type SceneFile struct {
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Group        string     `json:"group,omitempty"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	MaxLightRays int        `json:"maxLightRays"`
	Camera       CameraFile `json:"camera"`
	Rects        []RectFile `json:"rects"`

	BaseDir string `json:"-"` // Directory texture paths are resolved against
}

// LoadSceneFile reads a scene from a JSON file
func LoadSceneFile(path string) (*SceneFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	var sf SceneFile
	decoder := json.NewDecoder(f)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode scene %s: %w", path, err)
	}
	if err := sf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %s: %w", path, err)
	}

	sf.BaseDir = filepath.Dir(path)
	return &sf, nil
}

// SaveSceneFile writes a scene to a JSON file
func SaveSceneFile(path string, sf *SceneFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sf); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Validate checks the parts of a scene file that do not need geometry
func (sf *SceneFile) Validate() error {
	if sf.Width <= 0 || sf.Height <= 0 {
		return fmt.Errorf("resolution must be positive, got %dx%d", sf.Width, sf.Height)
	}
	if sf.MaxLightRays < 0 {
		return fmt.Errorf("maxLightRays must not be negative, got %d", sf.MaxLightRays)
	}
	for i, rect := range sf.Rects {
		channels := []ChannelFile{
			rect.Material.Emittance, rect.Material.Transparency,
			rect.Material.Reflectiveness, rect.Material.Scattering,
		}
		for _, ch := range channels {
			if ch.Color != nil && ch.Texture != "" {
				return fmt.Errorf("rect %d: a channel has both a color and a texture", i)
			}
		}
	}
	return nil
}

// TexturePath resolves a texture path against the scene file's directory
func (sf *SceneFile) TexturePath(texture string) string {
	if filepath.IsAbs(texture) || sf.BaseDir == "" {
		return texture
	}
	return filepath.Join(sf.BaseDir, texture)
}
