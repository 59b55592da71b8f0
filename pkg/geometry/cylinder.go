package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"golang.org/x/xerrors"
)

// Cylinder represents a right circular cylinder around the axis through
// Center. A bounded cylinder spans Length along the axis, centered on Center;
// an unbounded one extends forever. Capped cylinders are closed by two discs.
type Cylinder struct {
	Center core.Vec3
	Axis   core.Vec3 // Unit axis direction
	Radius float64
	Length float64 // <= 0 for an unbounded cylinder
	Capped bool

	// Cached derived values
	halfLength float64
	reference  core.Vec3 // Unit vector perpendicular to the axis, u = 0
}

// NewCylinder creates a cylinder around an arbitrary axis. length <= 0
// produces an unbounded cylinder, which cannot be capped.
func NewCylinder(center, axis core.Vec3, radius, length float64, capped bool) (*Cylinder, error) {
	if radius <= 0 {
		return nil, xerrors.Errorf("cylinder radius must be positive, got %f", radius)
	}
	if axis.LengthSquared() == 0 {
		return nil, xerrors.New("cylinder axis must be non-zero")
	}
	if capped && length <= 0 {
		return nil, xerrors.Errorf("closed cylinder needs a positive length, got %f", length)
	}

	a := axis.Normalize()
	return &Cylinder{
		Center:     center,
		Axis:       a,
		Radius:     radius,
		Length:     length,
		Capped:     capped,
		halfLength: length / 2,
		reference:  perpendicular(a),
	}, nil
}

// NewCylinderY creates an open cylinder aligned with the Y axis
func NewCylinderY(center core.Vec3, radius, length float64) (*Cylinder, error) {
	return NewCylinder(center, core.NewVec3(0, 1, 0), radius, length, false)
}

// NewCylinderZ creates an open cylinder aligned with the Z axis
func NewCylinderZ(center core.Vec3, radius, length float64) (*Cylinder, error) {
	return NewCylinder(center, core.NewVec3(0, 0, 1), radius, length, false)
}

// NewClosedCylinderY creates a capped cylinder aligned with the Y axis
func NewClosedCylinderY(center core.Vec3, radius, length float64) (*Cylinder, error) {
	return NewCylinder(center, core.NewVec3(0, 1, 0), radius, length, true)
}

// NewClosedCylinderZ creates a capped cylinder aligned with the Z axis
func NewClosedCylinderZ(center core.Vec3, radius, length float64) (*Cylinder, error) {
	return NewCylinder(center, core.NewVec3(0, 0, 1), radius, length, true)
}

// Bounded reports whether the cylinder has a finite axial extent
func (c *Cylinder) Bounded() bool {
	return c.Length > 0
}

// Hit tests if a ray intersects with the cylinder
func (c *Cylinder) Hit(ray core.Ray, tMin, tMax float64) (*SurfaceHit, bool) {
	closest, closestT := c.hitBody(ray, tMin, tMax)

	if c.Capped {
		top := c.Center.Add(c.Axis.Multiply(c.halfLength))
		bottom := c.Center.Subtract(c.Axis.Multiply(c.halfLength))
		if hit := hitDisc(ray, top, c.Axis, c.Radius, tMin, closestT); hit != nil {
			closest, closestT = hit, hit.T
		}
		if hit := hitDisc(ray, bottom, c.Axis.Negate(), c.Radius, tMin, closestT); hit != nil {
			closest = hit
		}
	}

	if closest == nil {
		return nil, false
	}
	return closest, true
}

// hitBody intersects the curved side. It returns tMax as the second value
// when nothing was hit, so callers can use it as the new search bound.
func (c *Cylinder) hitBody(ray core.Ray, tMin, tMax float64) (*SurfaceHit, float64) {
	delta := ray.Origin.Subtract(c.Center)

	DV := ray.Direction.Dot(c.Axis) // D · V̂
	deltaV := delta.Dot(c.Axis)     // Δ · V̂

	// a = |D|² - (D·V̂)²
	// b = 2[Δ·D - (Δ·V̂)(D·V̂)]
	// cc = |Δ|² - (Δ·V̂)² - r²
	a := ray.Direction.LengthSquared() - DV*DV
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*DV)
	cc := delta.LengthSquared() - deltaV*deltaV - c.Radius*c.Radius

	// A ray parallel to the axis has a ≈ 0 and never crosses the side
	t0, t1, ok := solveQuadratic(a, b, cc)
	if !ok {
		return nil, tMax
	}

	for _, t := range [2]float64{t0, t1} {
		if t < tMin || t > tMax {
			continue
		}
		point := ray.At(t)
		h := point.Subtract(c.Center).Dot(c.Axis)
		if c.Bounded() && math.Abs(h) > c.halfLength {
			continue
		}

		// Gradient of the implicit equation is the radial direction from the axis
		axisPoint := c.Center.Add(c.Axis.Multiply(h))
		radial := point.Subtract(axisPoint)
		outwardNormal := radial.Normalize()

		return &SurfaceHit{
			T:      t,
			Point:  point,
			Normal: outwardNormal,
			UV:     core.NewVec2(c.angleU(outwardNormal), c.heightV(h)),
		}, t
	}

	return nil, tMax
}

func (c *Cylinder) angleU(radial core.Vec3) float64 {
	bitangent := c.Axis.Cross(c.reference)
	phi := math.Atan2(radial.Dot(bitangent), radial.Dot(c.reference))
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi / (2 * math.Pi)
}

func (c *Cylinder) heightV(h float64) float64 {
	if !c.Bounded() {
		return h
	}
	return (h + c.halfLength) / c.Length
}

// hitDisc checks for intersection with a circular cap
func hitDisc(ray core.Ray, center, normal core.Vec3, radius, tMin, tMax float64) *SurfaceHit {
	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) < parallelEpsilon {
		return nil
	}

	t := center.Subtract(ray.Origin).Dot(normal) / denom
	if t < tMin || t > tMax {
		return nil
	}

	point := ray.At(t)
	offset := point.Subtract(center)
	if offset.LengthSquared() > radius*radius {
		return nil
	}

	tangent := perpendicular(normal)
	bitangent := normal.Cross(tangent)
	return &SurfaceHit{
		T:      t,
		Point:  point,
		Normal: normal,
		UV: core.NewVec2(
			0.5+offset.Dot(tangent)/(2*radius),
			0.5+offset.Dot(bitangent)/(2*radius),
		),
	}
}
