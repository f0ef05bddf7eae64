package renderer

import (
	"image"
	"testing"
)

func newTestImage(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func TestRenderStats_Rays(t *testing.T) {
	stats := RenderStats{TotalPixels: 100, TotalRays: 250}

	if got := stats.SecondaryRays(); got != 150 {
		t.Errorf("Expected 150 secondary rays, got %d", got)
	}
	if got := stats.RaysPerPixel(); got != 2.5 {
		t.Errorf("Expected 2.5 rays per pixel, got %f", got)
	}
}

func TestRenderStats_Empty(t *testing.T) {
	var stats RenderStats
	if got := stats.RaysPerPixel(); got != 0 {
		t.Errorf("Expected 0 rays per pixel for empty stats, got %f", got)
	}
}
