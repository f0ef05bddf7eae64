package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// PointLightProperties describes how a surface point responds to light.
// The four channels are independent and are not required to sum to one.
type PointLightProperties struct {
	Emittance      Color // Light emitted by the surface itself
	Transparency   Color // Fraction of light passed through to farther hits
	Reflectiveness Color // Fraction of the specular bounce added
	Scattering     Color // Fraction distributed across the scattering directions
}

// PointRayProperties is the result of a successful intersection
type PointRayProperties struct {
	Orientation            Vec3   // Outgoing direction of the specular bounce
	ScatteringOrientations []Vec3 // Additional scattering directions, empty for none
	Light                  PointLightProperties
}

// Hit contains information about a ray-drawable intersection
type Hit struct {
	Distance   float64 // Multiple of the ray direction from its origin to the hit point
	Properties PointRayProperties
}

// Drawable is the capability every scene object implements.
// Drawables are immutable and shared by all concurrently traced rays.
type Drawable interface {
	// Intersect reports whether the ray hits the drawable and, if so,
	// the distance and the surface properties at the hit point.
	Intersect(ray Ray) (*Hit, bool)

	// OuterBounds returns a bounding sphere of the drawable
	OuterBounds() (center Vec3, radius float64)
}

// RenderEnv is propagated by value down the trace recursion
type RenderEnv struct {
	Frame        uint64 // Opaque frame counter, passed through unchanged
	MaxLightRays int    // Remaining budget of secondary rays
}
