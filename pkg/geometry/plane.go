package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal

	// In-plane basis used for texture coordinates
	tangent   core.Vec3
	bitangent core.Vec3
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3) *Plane {
	n := normal.Normalize()
	tangent := perpendicular(n)
	return &Plane{
		Point:     point,
		Normal:    n,
		tangent:   tangent,
		bitangent: n.Cross(tangent),
	}
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*SurfaceHit, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane never crosses it
	if math.Abs(denominator) < parallelEpsilon {
		return nil, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < tMin || t > tMax {
		return nil, false
	}

	hitPoint := ray.At(t)
	local := hitPoint.Subtract(p.Point)

	return &SurfaceHit{
		T:      t,
		Point:  hitPoint,
		Normal: p.Normal,
		UV:     core.NewVec2(local.Dot(p.tangent), local.Dot(p.bitangent)),
	}, true
}
