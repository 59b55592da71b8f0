package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

func TestNewEllipsoid_RejectsNonPositiveAxes(t *testing.T) {
	for _, radii := range []core.Vec3{
		core.NewVec3(0, 1, 1),
		core.NewVec3(1, -1, 1),
		core.NewVec3(1, 1, 0),
	} {
		if _, err := NewEllipsoid(core.Vec3{}, radii); err == nil {
			t.Errorf("Expected error for radii %v", radii)
		}
	}
}

func TestEllipsoid_Hit(t *testing.T) {
	ellipsoid, err := NewEllipsoid(core.NewVec3(0, 0, 0), core.NewVec3(2, 1, 1))
	if err != nil {
		t.Fatalf("NewEllipsoid failed: %v", err)
	}

	yAtX1 := math.Sqrt(0.75)

	tests := []struct {
		name           string
		origin         core.Vec3
		direction      core.Vec3
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
	}{
		{
			name:           "long axis",
			origin:         core.NewVec3(5, 0, 0),
			direction:      core.NewVec3(-1, 0, 0),
			shouldHit:      true,
			expectedT:      3,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "short axis",
			origin:         core.NewVec3(0, 5, 0),
			direction:      core.NewVec3(0, -1, 0),
			shouldHit:      true,
			expectedT:      4,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:           "gradient normal off axis",
			origin:         core.NewVec3(1, 5, 0),
			direction:      core.NewVec3(0, -1, 0),
			shouldHit:      true,
			expectedT:      5 - yAtX1,
			expectedNormal: core.NewVec3(0.25, yAtX1, 0).Normalize(),
		},
		{
			name:      "passes beside",
			origin:    core.NewVec3(2.5, 5, 0),
			direction: core.NewVec3(0, -1, 0),
			shouldHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction)
			hit, isHit := ellipsoid.Hit(ray, core.Epsilon, core.NoHit)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got %t", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-6 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			assertVecNear(t, "normal", hit.Normal, tt.expectedNormal)
			assertUnit(t, hit.Normal)
		})
	}
}
