package object

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// FindOpaqueIntersection returns the nearest opaque hit with t > core.Epsilon.
// Objects are scanned in order; on equal t the earlier object wins.
func FindOpaqueIntersection(ray core.Ray, objs []*Opaque) OpaqueHitRecord {
	best := OpaqueHitRecord{T: core.NoHit}
	for _, obj := range objs {
		hit, ok := obj.Shape.Hit(ray, core.Epsilon, best.T)
		if !ok || hit.T >= best.T {
			continue
		}
		best = OpaqueHitRecord{
			T:        hit.T,
			Point:    hit.Point,
			Normal:   hit.Normal,
			Material: obj.Material,
			Texture:  obj.Texture,
			U:        hit.UV.X,
			V:        hit.UV.Y,
		}
	}
	return best
}

// FindTransparentIntersection returns the nearest transparent hit with
// t > core.Epsilon, first in list on ties.
func FindTransparentIntersection(ray core.Ray, objs []*Transparent) TransparentHitRecord {
	best := TransparentHitRecord{T: core.NoHit}
	for _, obj := range objs {
		hit, ok := obj.Shape.Hit(ray, core.Epsilon, best.T)
		if !ok || hit.T >= best.T {
			continue
		}
		best = TransparentHitRecord{T: hit.T, Color: obj.Color, Alpha: obj.Alpha}
	}
	return best
}

// Occluded reports whether any opaque object lies on the ray strictly
// before maxT
func Occluded(ray core.Ray, objs []*Opaque, maxT float64) bool {
	for _, obj := range objs {
		if hit, ok := obj.Shape.Hit(ray, core.Epsilon, maxT); ok && hit.T < maxT {
			return true
		}
	}
	return false
}
