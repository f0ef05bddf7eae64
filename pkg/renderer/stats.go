package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	Tiles       int           // Number of tiles the image was split into
	Workers     int           // Number of parallel workers used
	TotalRays   int           // Rays traced, one primary ray per pixel plus secondary rays
	Duration    time.Duration // Wall time of the render
}

// SecondaryRays returns the number of reflected and scattered rays
func (s RenderStats) SecondaryRays() int {
	return s.TotalRays - s.TotalPixels
}

// RaysPerPixel returns the average number of rays traced per pixel
func (s RenderStats) RaysPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalRays) / float64(s.TotalPixels)
}
