package scene

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-rect-raytracer/pkg/core"
	"github.com/df07/go-rect-raytracer/pkg/geometry"
)

const texturedSceneJSON = `{
  "width": 16,
  "height": 9,
  "maxLightRays": 3,
  "camera": {
    "position": {"x": 0, "y": 0, "z": 0},
    "right": {"x": 0, "y": 1, "z": 0},
    "down": {"x": 0, "y": 0, "z": -0.5}
  },
  "rects": [
    {
      "center": {"x": 2.5, "y": 0, "z": 0},
      "right": {"x": 0, "y": 1, "z": 0},
      "down": {"x": 0, "y": 0, "z": -0.5},
      "material": {
        "emittance": {"texture": "stripes.png"},
        "transparency": {"color": {"r": 0.5, "g": 0.5, "b": 0.5, "a": 0}},
        "scattering": {"texture": "stripes.png"}
      }
    }
  ]
}`

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// writeStripes writes a 2x1 PNG: red on the left, blue on the right
func writeStripes(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 255, 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func TestNewScene_FromFile(t *testing.T) {
	dir := t.TempDir()
	writeStripes(t, filepath.Join(dir, "stripes.png"))
	path := filepath.Join(dir, "striped-wall.json")
	writeTestFile(t, path, texturedSceneJSON)

	s, err := NewScene(path)
	if err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}

	if s.Name != "striped-wall" {
		t.Errorf("Expected name from file name, got %q", s.Name)
	}
	if s.Width != 16 || s.Height != 9 || s.Env.MaxLightRays != 3 {
		t.Errorf("Unexpected scene settings: %dx%d budget %d", s.Width, s.Height, s.Env.MaxLightRays)
	}
	if !s.Camera.Down.Equals(core.NewVec3(0, 0, -0.5)) {
		t.Errorf("Unexpected camera down %v", s.Camera.Down)
	}
	if len(s.Drawables) != 1 {
		t.Fatalf("Expected 1 drawable, got %d", len(s.Drawables))
	}

	rect, ok := s.Drawables[0].(*geometry.Rect)
	if !ok {
		t.Fatalf("Expected *geometry.Rect, got %T", s.Drawables[0])
	}
	if rect.Material.Emittance != rect.Material.Scattering {
		t.Error("Expected channels sharing a texture path to share the texture")
	}

	// Texture x follows Right: left edge red, right edge blue
	left := rect.Material.Resolve(0, 0.5)
	right := rect.Material.Resolve(1, 0.5)
	if left.Emittance.R != 1 || left.Emittance.B != 0 {
		t.Errorf("Expected red on the left, got %v", left.Emittance)
	}
	if right.Emittance.R != 0 || right.Emittance.B != 1 {
		t.Errorf("Expected blue on the right, got %v", right.Emittance)
	}
	if left.Reflectiveness != core.Transparent() {
		t.Errorf("Expected unset channel to be transparent, got %v", left.Reflectiveness)
	}
	if left.Transparency != core.NewColor(0.5, 0.5, 0.5, 0) {
		t.Errorf("Unexpected transparency %v", left.Transparency)
	}
}

func TestNewScene_FromFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{
			name:    "missing texture",
			content: strings.Replace(texturedSceneJSON, "stripes.png", "nope.png", 1),
			errPart: "rect 0 emittance",
		},
		{
			name: "degenerate rect",
			content: `{"width": 4, "height": 4, "rects": [{
				"center": {"x": 1, "y": 0, "z": 0},
				"right": {"x": 0, "y": 1, "z": 0},
				"down": {"x": 0, "y": 2, "z": 0}
			}]}`,
			errPart: "rect 0",
		},
		{
			name:    "invalid header",
			content: `{"width": -1, "height": 4}`,
			errPart: "resolution",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeStripes(t, filepath.Join(dir, "stripes.png"))
			path := filepath.Join(dir, "scene.json")
			writeTestFile(t, path, tt.content)

			_, err := NewScene(path)
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

func TestFileScene_Renders(t *testing.T) {
	dir := t.TempDir()
	writeStripes(t, filepath.Join(dir, "stripes.png"))
	path := filepath.Join(dir, "scene.json")
	writeTestFile(t, path, texturedSceneJSON)

	s, err := NewFileScene(path)
	if err != nil {
		t.Fatalf("NewFileScene failed: %v", err)
	}

	// Narrow the view so the edge columns land at u=-0.5 and u=0.5 on the wall
	s.Camera.Right = core.NewVec3(0, 0.2, 0)
	img := renderCenter(t, s, 5, 3)

	if c := img.RGBAAt(0, 1); c.R != 255 || c.B != 0 {
		t.Errorf("Expected red on the left edge, got %v", c)
	}
	if c := img.RGBAAt(4, 1); c.R != 0 || c.B != 255 {
		t.Errorf("Expected blue on the right edge, got %v", c)
	}
}
