package lights

import (
	"math"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/object"
)

var (
	white  = core.NewVec3(1, 1, 1)
	origin = core.Vec3{}
	up     = core.NewVec3(0, 1, 0)
	matte  = material.NewMaterial(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.5, 0.5, 0.5), core.Vec3{}, 1)
	shiny  = material.NewMaterial(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.5, 0.5, 0.5), white, 10)
)

func eyeAt(p core.Vec3) core.Frame {
	return core.Frame{Origin: p}
}

func assertGray(t *testing.T, got core.Vec3, expected float64) {
	t.Helper()
	for _, c := range []float64{got.X, got.Y, got.Z} {
		if math.Abs(c-expected) > 1e-9 {
			t.Errorf("Expected gray %f, got %v", expected, got)
			return
		}
	}
}

func TestPositionalLight_Illuminate(t *testing.T) {
	overhead := core.NewVec3(0, 10, 0)

	tests := []struct {
		name     string
		light    *PositionalLight
		mat      *material.Material
		inShadow bool
		expected float64
	}{
		{"ambient plus diffuse", NewPositionalLight(overhead, white), matte, false, 0.6},
		{"specular peak when eye is on the mirror direction", NewPositionalLight(overhead, white), shiny, false, 1.6},
		{"in shadow is ambient only", NewPositionalLight(overhead, white), shiny, true, 0.1},
		{"light behind surface is ambient only", NewPositionalLight(core.NewVec3(0, -10, 0), white), matte, false, 0.1},
		{"switched off light is black", &PositionalLight{Position: overhead, Color: white, Attenuation: NoAttenuation}, matte, false, 0},
		{"quadratic attenuation", &PositionalLight{
			Position:    overhead,
			Color:       white,
			Attenuation: Attenuation{Constant: 1, Quadratic: 0.01},
			On:          true,
		}, matte, false, 0.35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.light.Illuminate(origin, up, tt.mat, eyeAt(overhead), tt.inShadow)
			assertGray(t, got, tt.expected)
		})
	}
}

func TestPositionalLight_ColoredLight(t *testing.T) {
	light := NewPositionalLight(core.NewVec3(0, 10, 0), core.NewVec3(1, 0, 0))
	got := light.Illuminate(origin, up, matte, eyeAt(core.NewVec3(0, 10, 0)), false)

	if math.Abs(got.X-0.6) > 1e-9 || got.Y != 0 || got.Z != 0 {
		t.Errorf("Expected (0.6,0,0), got %v", got)
	}
}

func TestPositionalLight_PointIsInShadow(t *testing.T) {
	light := NewPositionalLight(core.NewVec3(0, 10, 0), white)
	floor := object.NewOpaque(geometry.NewPlane(origin, up), matte)
	blocker := object.NewOpaque(geometry.NewSphere(core.NewVec3(0, 2, 0), 1), matte)
	beyond := object.NewOpaque(geometry.NewSphere(core.NewVec3(0, 20, 0), 1), matte)

	tests := []struct {
		name     string
		point    core.Vec3
		opaque   []*object.Opaque
		expected bool
	}{
		{"no objects", origin, nil, false},
		{"surface does not shadow itself", origin, []*object.Opaque{floor}, false},
		{"sphere between point and light", origin, []*object.Opaque{floor, blocker}, true},
		{"point off to the side", core.NewVec3(5, 0, 0), []*object.Opaque{floor, blocker}, false},
		{"object beyond the light", origin, []*object.Opaque{floor, beyond}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := light.PointIsInShadow(tt.point, up, tt.opaque, eyeAt(core.NewVec3(0, 5, 5)))
			if got != tt.expected {
				t.Errorf("Expected inShadow=%t, got %t", tt.expected, got)
			}
		})
	}
}

func TestShadowedPointReceivesAmbientOnly(t *testing.T) {
	var light Light = NewPositionalLight(core.NewVec3(0, 10, 0), white)
	opaque := []*object.Opaque{
		object.NewOpaque(geometry.NewPlane(origin, up), shiny),
		object.NewOpaque(geometry.NewSphere(core.NewVec3(0, 2, 0), 1), shiny),
	}
	eye := eyeAt(core.NewVec3(0, 10, 0))

	inShadow := light.PointIsInShadow(origin, up, opaque, eye)
	if !inShadow {
		t.Fatal("Expected point under the sphere to be in shadow")
	}
	got := light.Illuminate(origin, up, shiny, eye, inShadow)
	if got != shiny.Ambient {
		t.Errorf("Expected ambient %v, got %v", shiny.Ambient, got)
	}
}

func TestSpotLight(t *testing.T) {
	spot := NewSpotLight(core.NewVec3(0, 10, 0), core.NewVec3(0, -1, 0), white, math.Pi/8)
	eye := eyeAt(core.NewVec3(0, 10, 0))

	if spot.Type() != LightTypeSpot {
		t.Errorf("Expected spot type, got %s", spot.Type())
	}
	if !spot.InCone(origin) {
		t.Error("Expected point below the spot to be inside the cone")
	}
	assertGray(t, spot.Illuminate(origin, up, matte, eye, false), 0.6)

	outside := core.NewVec3(10, 0, 0)
	if spot.InCone(outside) {
		t.Error("Expected point at 45 degrees to be outside the cone")
	}
	assertGray(t, spot.Illuminate(outside, up, matte, eye, false), 0.1)

	spot.On = false
	assertGray(t, spot.Illuminate(origin, up, matte, eye, false), 0)
}

func TestAttenuation_Factor(t *testing.T) {
	tests := []struct {
		atten    Attenuation
		d        float64
		expected float64
	}{
		{NoAttenuation, 100, 1},
		{Attenuation{Constant: 1, Linear: 0.1}, 10, 0.5},
		{Attenuation{}, 0, 1},
	}
	for _, tt := range tests {
		if got := tt.atten.Factor(tt.d); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("%+v at d=%f: expected %f, got %f", tt.atten, tt.d, tt.expected, got)
		}
	}
}
