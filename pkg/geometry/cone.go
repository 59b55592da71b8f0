package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"golang.org/x/xerrors"
)

// Cone represents a finite cone or frustum shape
type Cone struct {
	BaseCenter core.Vec3
	BaseRadius float64
	TopCenter  core.Vec3
	TopRadius  float64 // 0 for pointed cone, >0 for frustum
	Capped     bool    // Whether to include circular end cap(s)

	// Cached derived values
	axis     core.Vec3 // Unit vector from base to top
	height   float64   // Distance between base and top
	tanAngle float64   // tan(cone angle) = (BaseRadius - TopRadius) / height
	apex     core.Vec3 // Apex of the infinite cone extended from frustum
}

// NewCone creates a new cone or frustum
func NewCone(baseCenter core.Vec3, baseRadius float64, topCenter core.Vec3, topRadius float64, capped bool) (*Cone, error) {
	if baseRadius <= 0 {
		return nil, xerrors.Errorf("base radius must be positive, got %f", baseRadius)
	}
	if topRadius < 0 {
		return nil, xerrors.Errorf("top radius must be non-negative, got %f", topRadius)
	}
	if baseRadius <= topRadius {
		return nil, xerrors.Errorf("base radius must be greater than top radius for a cone (got base=%f, top=%f). Use Cylinder for equal radii", baseRadius, topRadius)
	}

	axisVector := topCenter.Subtract(baseCenter)
	height := axisVector.Length()
	if height <= 0 {
		return nil, xerrors.New("height must be positive (base and top centers cannot be the same)")
	}

	axis := axisVector.Normalize()
	tanAngle := (baseRadius - topRadius) / height

	// For a frustum the apex lies beyond the top, where the radius reaches 0
	apex := topCenter
	if topRadius > 0 {
		dFromTop := topRadius * height / (baseRadius - topRadius)
		apex = topCenter.Add(axis.Multiply(dFromTop))
	}

	return &Cone{
		BaseCenter: baseCenter,
		BaseRadius: baseRadius,
		TopCenter:  topCenter,
		TopRadius:  topRadius,
		Capped:     capped,
		axis:       axis,
		height:     height,
		tanAngle:   tanAngle,
		apex:       apex,
	}, nil
}

// NewConeY creates an open cone with its apex at apex, opening downward
// along -Y to a base of the given radius, height below the apex
func NewConeY(apex core.Vec3, radius, height float64) (*Cone, error) {
	base := apex.Subtract(core.NewVec3(0, height, 0))
	return NewCone(base, radius, apex, 0, false)
}

// NewClosedConeY is NewConeY with the base disc included
func NewClosedConeY(apex core.Vec3, radius, height float64) (*Cone, error) {
	base := apex.Subtract(core.NewVec3(0, height, 0))
	return NewCone(base, radius, apex, 0, true)
}

// Apex returns the apex of the (possibly extended) cone
func (c *Cone) Apex() core.Vec3 {
	return c.apex
}

// Hit tests if a ray intersects with the cone (body and optionally caps)
func (c *Cone) Hit(ray core.Ray, tMin, tMax float64) (*SurfaceHit, bool) {
	var closestHit *SurfaceHit
	closestT := tMax

	if bodyHit := c.hitBody(ray, tMin, closestT); bodyHit != nil {
		closestHit = bodyHit
		closestT = bodyHit.T
	}

	if c.Capped {
		if baseHit := hitDisc(ray, c.BaseCenter, c.axis.Negate(), c.BaseRadius, tMin, closestT); baseHit != nil {
			closestHit = baseHit
			closestT = baseHit.T
		}

		// Only frustums have a top cap
		if c.TopRadius > 0 {
			if topHit := hitDisc(ray, c.TopCenter, c.axis, c.TopRadius, tMin, closestT); topHit != nil {
				closestHit = topHit
			}
		}
	}

	if closestHit != nil {
		return closestHit, true
	}
	return nil, false
}

// hitBody checks for intersection with the cone body (curved surface)
func (c *Cone) hitBody(ray core.Ray, tMin, tMax float64) *SurfaceHit {
	CO := ray.Origin.Subtract(c.apex)

	DdotV := ray.Direction.Dot(c.axis)
	COdotV := CO.Dot(c.axis)

	// k = tan²(α)
	k := c.tanAngle * c.tanAngle

	// a = D·D - (1 + k)·DdotV²
	// b = 2[D·CO - (1 + k)·DdotV·COdotV]
	// cc = CO·CO - (1 + k)·COdotV²
	a := ray.Direction.LengthSquared() - (1+k)*DdotV*DdotV
	b := 2.0 * (ray.Direction.Dot(CO) - (1+k)*DdotV*COdotV)
	cc := CO.LengthSquared() - (1+k)*COdotV*COdotV

	// A ray parallel to the surface (a ≈ 0) is treated as a miss
	t0, t1, ok := solveQuadratic(a, b, cc)
	if !ok {
		return nil
	}

	t := t0
	if !c.validateIntersection(ray, t, tMin, tMax) {
		t = t1
		if !c.validateIntersection(ray, t, tMin, tMax) {
			return nil
		}
	}

	point := ray.At(t)
	h := point.Subtract(c.BaseCenter).Dot(c.axis)
	centerPoint := c.BaseCenter.Add(c.axis.Multiply(h))
	radial := point.Subtract(centerPoint)

	// At the apex itself the radial direction is undefined; fall back to the axis
	var outwardNormal core.Vec3
	if radial.LengthSquared() < 1e-18 {
		outwardNormal = c.axis
	} else {
		outwardNormal = radial.Normalize().Add(c.axis.Multiply(c.tanAngle)).Normalize()
	}

	return &SurfaceHit{
		T:      t,
		Point:  point,
		Normal: outwardNormal,
		UV:     core.NewVec2(c.angleU(radial), h/c.height),
	}
}

// validateIntersection checks that t is in range and that the point lies on
// the nappe below the apex, between base and top
func (c *Cone) validateIntersection(ray core.Ray, t, tMin, tMax float64) bool {
	const epsilon = 1e-8

	if t < tMin || t > tMax {
		return false
	}

	point := ray.At(t)

	h := point.Subtract(c.BaseCenter).Dot(c.axis)
	if h < -epsilon || h > c.height+epsilon {
		return false
	}

	// The mirrored nappe above the apex also satisfies the quadratic
	if point.Subtract(c.apex).Dot(c.axis) > epsilon {
		return false
	}

	return true
}

func (c *Cone) angleU(radial core.Vec3) float64 {
	reference := perpendicular(c.axis)
	bitangent := c.axis.Cross(reference)
	phi := math.Atan2(radial.Dot(bitangent), radial.Dot(reference))
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi / (2 * math.Pi)
}
