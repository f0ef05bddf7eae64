package loaders

import (
	"fmt"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/fogleman/gg"

	"github.com/df07/go-rect-raytracer/pkg/material"
)

// LoadTexture loads a PNG or JPEG image as a nearest-pixel texture
func LoadTexture(filename string) (*material.ImageTexture, error) {
	// Decode image (auto-detects PNG/JPEG from file header)
	img, err := gg.LoadImage(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", filename, err)
	}

	texture, err := material.NewImageTextureFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert texture %s: %w", filename, err)
	}
	return texture, nil
}
