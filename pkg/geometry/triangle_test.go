package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Triangle in the XY plane
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))

	tests := []struct {
		name      string
		ray       core.Ray
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle interior",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray hits triangle edge",
			ray:       core.NewRay(core.NewVec3(0.5, 0, -1), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray misses outside hypotenuse",
			ray:       core.NewRay(core.NewVec3(0.75, 0.75, -1), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(1, 0, 0)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name:      "Hit beyond tMax",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -5), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      2.0,
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray, tt.tMin, tt.tMax)
			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > tolerance {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestTriangle_Normal(t *testing.T) {
	triangle := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0))
	assertVecNear(t, "normal", triangle.Normal(), core.NewVec3(0, 0, 1))

	degenerate := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0))
	if !degenerate.Degenerate() {
		t.Error("Expected collinear triangle to be degenerate")
	}
}

func TestTriangleMesh_NearestTriangle(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(-1, -1, 0), core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(-1, -1, 2), core.NewVec3(1, -1, 2), core.NewVec3(0, 1, 2),
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0),
	}
	mesh := NewTriangleMesh(vertices, [][3]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}})

	if mesh.Len() != 2 {
		t.Fatalf("Expected degenerate face to be dropped, got %d triangles", mesh.Len())
	}

	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	hit, isHit := mesh.Hit(ray, core.Epsilon, core.NoHit)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.T-3) > tolerance {
		t.Errorf("Expected nearest triangle at t=3, got t=%f", hit.T)
	}
}

func TestTriangleMesh_Translated(t *testing.T) {
	mesh := NewTriangleMesh(
		[]core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		[][3]int{{0, 1, 2}},
	)
	moved := mesh.Translated(core.NewVec3(0, 0, -2))

	assertVecNear(t, "V0", moved.Triangles[0].V0, core.NewVec3(0, 0, -2))
	assertVecNear(t, "original V0", mesh.Triangles[0].V0, core.Vec3{})

	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, isHit := moved.Hit(ray, core.Epsilon, core.NoHit)
	if !isHit || math.Abs(hit.T-3) > tolerance {
		t.Errorf("Expected hit at t=3, got %v (hit=%t)", hit, isHit)
	}
}
