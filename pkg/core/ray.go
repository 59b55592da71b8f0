package core

import "math"

const (
	// NoHit is the ray parameter reported by a query that found no intersection.
	NoHit = math.MaxFloat64

	// Epsilon is the smallest ray parameter accepted as a hit. Anything closer
	// is treated as the surface the ray started on.
	Epsilon = 1e-6

	// ShadowBias is how far a shading point is pushed along its normal before a
	// shadow ray is cast. Too small and surfaces shadow themselves (acne); too
	// large and shadows visibly detach from their casters (peter-panning).
	// Scenes in this repo are modelled in units of roughly 1-50.
	ShadowBias = 1e-4
)

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// NewRayTo creates a ray from origin pointing at target
func NewRayTo(origin, target Vec3) Ray {
	return NewRay(origin, target.Subtract(origin))
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// IsDegenerate reports whether the ray has no usable direction
func (r Ray) IsDegenerate() bool {
	return r.Direction.IsZero()
}

// MovePointOffSurface nudges point along normal by ShadowBias
func MovePointOffSurface(point, normal Vec3) Vec3 {
	return point.Add(normal.Multiply(ShadowBias))
}
