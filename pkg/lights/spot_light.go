package lights

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/object"
)

// SpotLight is a positional light restricted to a cone around Direction.
// Points outside the cone receive only the ambient term.
type SpotLight struct {
	PositionalLight
	Direction   core.Vec3 // Unit vector the spot points along
	CutoffAngle float64   // Half-angle of the cone in radians

	cosCutoff float64
}

// NewSpotLight creates a switched-on spot light
func NewSpotLight(position, direction, color core.Vec3, cutoffAngle float64) *SpotLight {
	return &SpotLight{
		PositionalLight: *NewPositionalLight(position, color),
		Direction:       direction.Normalize(),
		CutoffAngle:     cutoffAngle,
		cosCutoff:       math.Cos(cutoffAngle),
	}
}

// Type returns the light type
func (sl *SpotLight) Type() LightType {
	return LightTypeSpot
}

// InCone reports whether point lies inside the spot's cone
func (sl *SpotLight) InCone(point core.Vec3) bool {
	toPoint := point.Subtract(sl.Position).Normalize()
	return toPoint.Dot(sl.Direction) >= sl.cosCutoff
}

// Illuminate applies Phong inside the cone and ambient only outside it
func (sl *SpotLight) Illuminate(point, normal core.Vec3, mat *material.Material, eye core.Frame, inShadow bool) core.Vec3 {
	if !sl.On {
		return core.Vec3{}
	}
	lit := !inShadow && sl.InCone(point)
	return phong(sl.Position, sl.Color, sl.Attenuation, point, normal, mat, eye, !lit)
}

// PointIsInShadow casts a shadow ray toward the light
func (sl *SpotLight) PointIsInShadow(point, normal core.Vec3, opaque []*object.Opaque, eye core.Frame) bool {
	return occludedFrom(sl.Position, point, normal, opaque)
}
