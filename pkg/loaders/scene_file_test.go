package loaders

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSceneJSON = `{
  "name": "test",
  "width": 64,
  "height": 32,
  "maxLightRays": 2,
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
        "emittance": {"color": {"r": 1, "g": 0.5, "b": 0, "a": 1}},
        "reflectiveness": {"texture": "mirror.png"}
      }
    }
  ]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoadSceneFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.json")
	writeFile(t, path, testSceneJSON)

	sf, err := LoadSceneFile(path)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}

	if sf.Name != "test" || sf.Width != 64 || sf.Height != 32 || sf.MaxLightRays != 2 {
		t.Errorf("Unexpected header: %+v", sf)
	}
	if sf.Camera.Down.Z != -0.5 {
		t.Errorf("Expected camera down z=-0.5, got %v", sf.Camera.Down)
	}
	if len(sf.Rects) != 1 {
		t.Fatalf("Expected 1 rect, got %d", len(sf.Rects))
	}

	m := sf.Rects[0].Material
	if m.Emittance.Color == nil || m.Emittance.Color.G != 0.5 {
		t.Errorf("Expected emittance color, got %+v", m.Emittance)
	}
	if m.Transparency.Color != nil || m.Transparency.Texture != "" {
		t.Errorf("Expected empty transparency channel, got %+v", m.Transparency)
	}
	if got := sf.TexturePath(m.Reflectiveness.Texture); got != filepath.Join(tmpDir, "mirror.png") {
		t.Errorf("Expected texture resolved next to the scene file, got %s", got)
	}
}

func TestSaveSceneFileRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.json")
	writeFile(t, src, testSceneJSON)

	original, err := LoadSceneFile(src)
	if err != nil {
		t.Fatalf("LoadSceneFile failed: %v", err)
	}

	dst := filepath.Join(tmpDir, "dst.json")
	if err := SaveSceneFile(dst, original); err != nil {
		t.Fatalf("SaveSceneFile failed: %v", err)
	}
	reloaded, err := LoadSceneFile(dst)
	if err != nil {
		t.Fatalf("LoadSceneFile of saved scene failed: %v", err)
	}

	if reloaded.Rects[0].Center != original.Rects[0].Center {
		t.Errorf("Center changed: %v vs %v", reloaded.Rects[0].Center, original.Rects[0].Center)
	}
	if *reloaded.Rects[0].Material.Emittance.Color != *original.Rects[0].Material.Emittance.Color {
		t.Error("Emittance changed across save/load")
	}
}

func TestLoadSceneFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"malformed json", `{"name": `, "decode scene"},
		{"unknown field", `{"width": 1, "height": 1, "spheres": []}`, "decode scene"},
		{"zero resolution", `{"width": 0, "height": 10}`, "resolution"},
		{"negative budget", `{"width": 1, "height": 1, "maxLightRays": -1}`, "maxLightRays"},
		{
			"color and texture",
			`{"width": 1, "height": 1, "rects": [{"material": {"emittance": {"color": {"r": 1}, "texture": "a.png"}}}]}`,
			"both a color and a texture",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.json")
			writeFile(t, path, tt.content)

			_, err := LoadSceneFile(path)
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}

	if _, err := LoadSceneFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}
