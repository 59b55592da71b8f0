package object

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
)

// Opaque is a shape shaded with a Phong material, optionally textured
type Opaque struct {
	Shape    geometry.Shape
	Material *material.Material
	Texture  material.Texture // nil when untextured
}

// NewOpaque creates an untextured opaque object
func NewOpaque(shape geometry.Shape, mat *material.Material) *Opaque {
	return &Opaque{Shape: shape, Material: mat}
}

// NewTexturedOpaque creates an opaque object whose shading is blended with a texture
func NewTexturedOpaque(shape geometry.Shape, mat *material.Material, tex material.Texture) *Opaque {
	return &Opaque{Shape: shape, Material: mat, Texture: tex}
}

// Transparent is a shape drawn as a flat color layered over whatever lies
// behind it
type Transparent struct {
	Shape geometry.Shape
	Color core.Vec3
	Alpha float64 // Opacity in [0,1]
}

// NewTransparent creates a transparent object. Alpha is clamped to [0,1].
func NewTransparent(shape geometry.Shape, color core.Vec3, alpha float64) *Transparent {
	return &Transparent{Shape: shape, Color: color, Alpha: max(0, min(1, alpha))}
}

// OpaqueHitRecord describes the nearest opaque hit along a ray. T is
// core.NoHit when nothing was hit.
type OpaqueHitRecord struct {
	T        float64
	Point    core.Vec3
	Normal   core.Vec3
	Material *material.Material
	Texture  material.Texture
	U, V     float64
}

// Hit reports whether the record describes an intersection
func (h OpaqueHitRecord) Hit() bool {
	return h.T != core.NoHit
}

// TransparentHitRecord describes the nearest transparent hit along a ray.
// T is core.NoHit when nothing was hit.
type TransparentHitRecord struct {
	T     float64
	Color core.Vec3
	Alpha float64
}

// Hit reports whether the record describes an intersection
func (h TransparentHitRecord) Hit() bool {
	return h.T != core.NoHit
}
