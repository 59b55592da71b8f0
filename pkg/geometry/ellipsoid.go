package geometry

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"golang.org/x/xerrors"
)

// Ellipsoid is an axis-aligned ellipsoid
// ((x-cx)/a)² + ((y-cy)/b)² + ((z-cz)/c)² = 1
type Ellipsoid struct {
	Center core.Vec3
	Radii  core.Vec3 // Semi-axis lengths (a, b, c)
}

// NewEllipsoid creates an ellipsoid. All semi-axes must be positive.
func NewEllipsoid(center, radii core.Vec3) (*Ellipsoid, error) {
	if radii.X <= 0 || radii.Y <= 0 || radii.Z <= 0 {
		return nil, xerrors.Errorf("ellipsoid semi-axes must be positive, got %v", radii)
	}
	return &Ellipsoid{Center: center, Radii: radii}, nil
}

// Hit scales the ray into the unit-sphere space of the ellipsoid. The
// direction is not renormalized so t stays valid in world space.
func (e *Ellipsoid) Hit(ray core.Ray, tMin, tMax float64) (*SurfaceHit, bool) {
	o := ray.Origin.Subtract(e.Center).DivideVec(e.Radii)
	d := ray.Direction.DivideVec(e.Radii)

	t0, t1, ok := solveQuadratic(d.Dot(d), 2*o.Dot(d), o.Dot(o)-1)
	if !ok {
		return nil, false
	}

	root := t0
	if root < tMin || root > tMax {
		root = t1
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	local := point.Subtract(e.Center).DivideVec(e.Radii)

	// Gradient of the implicit equation: ((x-cx)/a², (y-cy)/b², (z-cz)/c²)
	normal := local.DivideVec(e.Radii).Normalize()

	return &SurfaceHit{
		T:      root,
		Point:  point,
		Normal: normal,
		UV:     sphericalUV(local.Normalize()),
	}, true
}
