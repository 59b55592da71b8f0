package geometry

import (
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

const tolerance = 1e-9

func assertVecNear(t *testing.T, what string, got, want core.Vec3) {
	t.Helper()
	if got.Subtract(want).Length() > 1e-6 {
		t.Errorf("Expected %s %v, got %v", what, want, got)
	}
}

func assertUnit(t *testing.T, v core.Vec3) {
	t.Helper()
	if l := v.Length(); l < 1-1e-9 || l > 1+1e-9 {
		t.Errorf("Expected unit normal, got %v (length %f)", v, l)
	}
}
