package material

import (
	"fmt"
	"image"
	"math"

	"github.com/df07/go-rect-raytracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Color // Row-major: Pixels[y*Width + x], row 0 at v=0
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Color) (*ImageTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid texture size %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("texture %dx%d needs %d pixels, got %d", width, height, width*height, len(pixels))
	}
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// NewImageTextureFromImage converts a decoded image into a texture
func NewImageTextureFromImage(img image.Image) (*ImageTexture, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Color, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y*width+x] = core.ColorFromStd(img.At(x+bounds.Min.X, y+bounds.Min.Y))
		}
	}

	return NewImageTexture(width, height, pixels)
}

// Evaluate samples the texture at given UV coordinates using nearest-pixel lookup.
// The pixel index is round(coord * (dim-1)), clamped to the image.
func (t *ImageTexture) Evaluate(u, v float64) core.Color {
	x := nearestIndex(u, t.Width)
	y := nearestIndex(v, t.Height)
	return t.Pixels[y*t.Width+x]
}

func nearestIndex(coord float64, dim int) int {
	i := int(math.Round(coord * float64(dim-1)))
	return max(0, min(dim-1, i))
}
