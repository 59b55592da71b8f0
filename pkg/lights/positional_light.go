package lights

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/object"
)

// PositionalLight is a point light emitting equally in all directions
type PositionalLight struct {
	Position    core.Vec3
	Color       core.Vec3
	Attenuation Attenuation
	On          bool
}

// NewPositionalLight creates a switched-on light without distance falloff
func NewPositionalLight(position, color core.Vec3) *PositionalLight {
	return &PositionalLight{
		Position:    position,
		Color:       color,
		Attenuation: NoAttenuation,
		On:          true,
	}
}

// Type returns the light type
func (pl *PositionalLight) Type() LightType {
	return LightTypePositional
}

// Illuminate applies the Phong reflectance model
func (pl *PositionalLight) Illuminate(point, normal core.Vec3, mat *material.Material, eye core.Frame, inShadow bool) core.Vec3 {
	if !pl.On {
		return core.Vec3{}
	}
	return phong(pl.Position, pl.Color, pl.Attenuation, point, normal, mat, eye, inShadow)
}

// PointIsInShadow casts a shadow ray toward the light
func (pl *PositionalLight) PointIsInShadow(point, normal core.Vec3, opaque []*object.Opaque, eye core.Frame) bool {
	return occludedFrom(pl.Position, point, normal, opaque)
}

func phong(lightPos, lightColor core.Vec3, atten Attenuation, point, normal core.Vec3, mat *material.Material, eye core.Frame, inShadow bool) core.Vec3 {
	ambient := mat.Ambient.MultiplyVec(lightColor)
	if inShadow {
		return ambient
	}

	toLight := lightPos.Subtract(point)
	L := toLight.Normalize()
	nDotL := L.Dot(normal)
	if nDotL <= 0 {
		// Light is behind the surface
		return ambient
	}

	diffuse := mat.Diffuse.MultiplyVec(lightColor).Multiply(nDotL)

	R := L.Negate().Reflect(normal)
	V := eye.Origin.Subtract(point).Normalize()
	specular := mat.Specular.MultiplyVec(lightColor).Multiply(math.Pow(max(R.Dot(V), 0), mat.Shininess))

	return ambient.Add(diffuse.Add(specular).Multiply(atten.Factor(toLight.Length())))
}

func occludedFrom(lightPos, point, normal core.Vec3, opaque []*object.Opaque) bool {
	origin := core.MovePointOffSurface(point, normal)
	toLight := lightPos.Subtract(origin)
	distance := toLight.Length()
	if distance == 0 {
		return false
	}
	return object.Occluded(core.NewRay(origin, toLight), opaque, distance)
}
