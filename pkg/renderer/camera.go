package renderer

import (
	"fmt"

	"github.com/df07/go-rect-raytracer/pkg/core"
)

// Camera maps pixels to rays. The right and down basis vectors are not
// required to be unit length; their magnitude sets the field of view.
type Camera struct {
	width    int
	height   int
	position core.Vec3
	forward  core.Vec3 // normalize(down × right)
	right    core.Vec3
	down     core.Vec3
}

// NewCamera creates a planar pinhole camera for the given resolution and pose
func NewCamera(width, height int, position, right, down core.Vec3) (*Camera, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid resolution %dx%d", width, height)
	}
	forward := down.Cross(right)
	if forward.IsZero() {
		return nil, fmt.Errorf("camera basis is degenerate (right=%v, down=%v)", right, down)
	}

	return &Camera{
		width:    width,
		height:   height,
		position: position,
		forward:  forward.Normalize(),
		right:    right,
		down:     down,
	}, nil
}

// GetCameraForward returns the unit viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.forward
}

// NormalizedDeviceCoords maps a pixel to [-1, 1] on both axes.
// Pixel (0, 0) maps to (-1, -1) and (width-1, height-1) to (1, 1).
func (c *Camera) NormalizedDeviceCoords(x, y int) (rf, df float64) {
	return ndc(x, c.width), ndc(y, c.height)
}

// GetRay generates the primary ray for pixel (x, y)
func (c *Camera) GetRay(x, y int) core.Ray {
	rf, df := c.NormalizedDeviceCoords(x, y)
	direction := c.forward.
		Add(c.down.Multiply(df)).
		Add(c.right.Multiply(rf))
	return core.NewRay(c.position, direction)
}

// ndc maps i in [0, n-1] to [-1, 1]. A single pixel sits in the center.
func ndc(i, n int) float64 {
	if n == 1 {
		return 0
	}
	return 2*float64(i)/float64(n-1) - 1
}
