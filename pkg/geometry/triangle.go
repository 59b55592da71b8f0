package geometry

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	normal     core.Vec3
}

// NewTriangle creates a new triangle. The face normal follows the
// counter-clockwise winding V0 → V1 → V2.
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	return &Triangle{
		V0:     v0,
		V1:     v1,
		V2:     v2,
		normal: v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize(),
	}
}

// Normal returns the triangle's face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}

// Degenerate reports whether the triangle has zero area
func (t *Triangle) Degenerate() bool {
	return t.normal.IsZero()
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*SurfaceHit, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -parallelEpsilon && a < parallelEpsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	return &SurfaceHit{
		T:      tParam,
		Point:  ray.At(tParam),
		Normal: t.normal,
		UV:     core.NewVec2(u, v),
	}, true
}

// TriangleMesh is a triangle soup searched linearly
type TriangleMesh struct {
	Triangles []*Triangle
}

// NewTriangleMesh creates a mesh from vertices and face indices. Each group
// of three 0-based indices forms one triangle; degenerate triangles are
// dropped.
func NewTriangleMesh(vertices []core.Vec3, faces [][3]int) *TriangleMesh {
	mesh := &TriangleMesh{Triangles: make([]*Triangle, 0, len(faces))}
	for _, f := range faces {
		tri := NewTriangle(vertices[f[0]], vertices[f[1]], vertices[f[2]])
		if tri.Degenerate() {
			continue
		}
		mesh.Triangles = append(mesh.Triangles, tri)
	}
	return mesh
}

// Len returns the number of triangles in the mesh
func (m *TriangleMesh) Len() int {
	return len(m.Triangles)
}

// Hit returns the nearest triangle hit
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*SurfaceHit, bool) {
	var closest *SurfaceHit
	closestT := tMax
	for _, tri := range m.Triangles {
		if hit, ok := tri.Hit(ray, tMin, closestT); ok {
			closest = hit
			closestT = hit.T
		}
	}
	return closest, closest != nil
}

// Translated returns a copy of the mesh moved by offset
func (m *TriangleMesh) Translated(offset core.Vec3) *TriangleMesh {
	moved := &TriangleMesh{Triangles: make([]*Triangle, len(m.Triangles))}
	for i, tri := range m.Triangles {
		moved.Triangles[i] = NewTriangle(tri.V0.Add(offset), tri.V1.Add(offset), tri.V2.Add(offset))
	}
	return moved
}
