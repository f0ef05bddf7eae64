package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-rect-raytracer/pkg/core"
	"github.com/df07/go-rect-raytracer/pkg/material"
)

// Rect represents a single-sided rectangle defined by its center and two
// half-extent edge vectors. center ± Right reaches the left/right edges and
// center ± Down the top/bottom edges. The visible side is the one the normal
// Right × Down points to. The geometry is fixed at construction; build rects
// with NewRect.
type Rect struct {
	Material material.Material // Material of the rect

	center     core.Vec3
	right      core.Vec3
	down       core.Vec3
	normal     core.Vec3 // Unit normal of right × down
	rightLenSq float64
	downLenSq  float64
}

// NewRect creates a new rect. The edge vectors must be non-zero and not parallel.
func NewRect(center, right, down core.Vec3, mat material.Material) (*Rect, error) {
	if right.IsZero() || down.IsZero() {
		return nil, fmt.Errorf("rect edges must be non-zero (right=%v, down=%v)", right, down)
	}
	cross := right.Cross(down)
	if cross.IsZero() {
		return nil, fmt.Errorf("rect edges must not be parallel (right=%v, down=%v)", right, down)
	}

	return &Rect{
		Material:   mat,
		center:     center,
		right:      right,
		down:       down,
		normal:     cross.Normalize(),
		rightLenSq: right.LengthSquared(),
		downLenSq:  down.LengthSquared(),
	}, nil
}

// Center returns the center of the rect
func (r *Rect) Center() core.Vec3 { return r.center }

// Right returns the half-extent towards the right edge
func (r *Rect) Right() core.Vec3 { return r.right }

// Down returns the half-extent towards the bottom edge
func (r *Rect) Down() core.Vec3 { return r.down }

// Normal returns the unit normal of the visible side
func (r *Rect) Normal() core.Vec3 { return r.normal }

// OuterBounds returns a sphere enclosing the rect
func (r *Rect) OuterBounds() (core.Vec3, float64) {
	return r.center, r.right.Add(r.down).Length()
}

// Intersect tests if a ray hits the visible side of the rect
func (r *Rect) Intersect(ray core.Ray) (*core.Hit, bool) {
	// Height of the ray origin over the plane, negative on the visible side
	height := r.center.Subtract(ray.Origin).Dot(r.normal)
	if height >= 0 {
		return nil, false
	}

	// Rays parallel to the plane or leaving the visible side never hit
	denominator := r.normal.Dot(ray.Direction)
	if cos := denominator / ray.Direction.Length(); !(cos < 0) {
		return nil, false
	}

	// Both terms are negative, so t is the positive multiple of Direction
	t := height / denominator
	hitPoint := ray.At(t)

	// Relative coordinates, -1 to +1 inside the rect
	fromCenter := hitPoint.Subtract(r.center)
	u := fromCenter.Dot(r.right) / r.rightLenSq
	v := fromCenter.Dot(r.down) / r.downLenSq
	if math.Abs(u) > 1 || math.Abs(v) > 1 {
		return nil, false
	}

	return &core.Hit{
		Distance: t,
		Properties: core.PointRayProperties{
			Orientation: r.reflect(ray.Direction),
			Light:       r.Material.Resolve((u+1)/2, (v+1)/2),
		},
	}, true
}

// reflect mirrors a direction around the normal
func (r *Rect) reflect(direction core.Vec3) core.Vec3 {
	// Projection of the inverted direction onto the normal
	mirror := r.normal.Multiply(r.normal.Dot(direction.Negate()))
	return mirror.Add(mirror.Add(direction))
}
