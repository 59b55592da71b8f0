package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// SurfaceHit describes where a ray crosses a shape
type SurfaceHit struct {
	T      float64   // Parameter t along the ray
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Outward unit normal at the intersection
	UV     core.Vec2 // Texture coordinates
}

// Shape is an implicit surface that can be intersected by rays
type Shape interface {
	// Hit returns the nearest intersection with t in [tMin, tMax]
	Hit(ray core.Ray, tMin, tMax float64) (*SurfaceHit, bool)
}

const parallelEpsilon = 1e-8

// solveQuadratic returns the real roots of a·t² + b·t + c = 0 in ascending
// order. ok is false when there are no real roots or a is (nearly) zero.
func solveQuadratic(a, b, c float64) (t0, t1 float64, ok bool) {
	if math.Abs(a) < parallelEpsilon {
		return 0, 0, false
	}
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Numerically stable form avoids cancellation when b ≈ ±sqrtD
	var q float64
	if b < 0 {
		q = -0.5 * (b - sqrtD)
	} else {
		q = -0.5 * (b + sqrtD)
	}
	t0 = q / a
	if q != 0 {
		t1 = c / q
	} else {
		t1 = t0
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

// perpendicular returns some unit vector orthogonal to the unit vector n
func perpendicular(n core.Vec3) core.Vec3 {
	var ref core.Vec3
	if math.Abs(n.X) > 0.9 {
		ref = core.NewVec3(0, 1, 0)
	} else {
		ref = core.NewVec3(1, 0, 0)
	}
	return ref.Cross(n).Normalize()
}

// sphericalUV maps a unit direction from a center to (u, v) in [0,1]²
func sphericalUV(d core.Vec3) core.Vec2 {
	theta := math.Acos(max(-1, min(1, -d.Y)))
	phi := math.Atan2(-d.Z, d.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
