package lights

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/object"
)

type LightType string

const (
	LightTypePositional LightType = "positional"
	LightTypeSpot       LightType = "spot"
)

// Light interface for sources that shade opaque surfaces
type Light interface {
	Type() LightType

	// Illuminate returns the Phong color of a surface point seen from the
	// camera at eye.Origin. Only the ambient term survives when inShadow is set.
	Illuminate(point, normal core.Vec3, mat *material.Material, eye core.Frame, inShadow bool) core.Vec3

	// PointIsInShadow reports whether an opaque object blocks the path from
	// the point (nudged off the surface along normal) to the light
	PointIsInShadow(point, normal core.Vec3, opaque []*object.Opaque, eye core.Frame) bool
}

// Attenuation holds the constant, linear and quadratic falloff terms:
// factor = 1 / (Constant + Linear·d + Quadratic·d²)
type Attenuation struct {
	Constant  float64
	Linear    float64
	Quadratic float64
}

// NoAttenuation keeps a light at full strength at any distance
var NoAttenuation = Attenuation{Constant: 1}

// Factor returns the attenuation multiplier at distance d, capped at 1
func (a Attenuation) Factor(d float64) float64 {
	denom := a.Constant + a.Linear*d + a.Quadratic*d*d
	if denom <= 1 {
		return 1
	}
	return 1 / denom
}
