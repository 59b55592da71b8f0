package scene

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/lights"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/google/go-cmp/cmp"
)

const testSceneYAML = `
camera:
  position: [0, 10, 10]
  focus: [0, 5, 0]
  fov: 60
background: lightGray
render:
  width: 64
  height: 48
  supersampling: 2
  workers: 3
materials:
  shinyRed:
    preset: redPlastic
    shininess: 64
    reflectivity: 0.25
  custom:
    ambient: [0.1, 0.1, 0.1]
    diffuse: [0.2, 0.4, 0.6]
    specular: white
    shininess: 8
objects:
  - type: plane
    point: [0, -2, 0]
    normal: [0, 1, 0]
    material: whitePlastic
    texture:
      type: solidChecker
      scale: 2
      even: white
      odd: [0.1, 0.1, 0.1]
  - type: sphere
    center: [12, 0, 4]
    radius: 3
    material: shinyRed
  - type: ellipsoid
    center: [-20, 7, -10]
    radii: [5, 10, 5]
    material: silver
  - type: cylinderY
    center: [2, 6, 0]
    radius: 5
    length: 3
    material: gold
  - type: closedCylinderZ
    center: [-8, 6, 5]
    radius: 5
    length: 3
    material: custom
  - type: coneY
    apex: [25, 15, -10]
    radius: 5
    height: 10
    material: greenPlastic
  - type: triangle
    vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
    material: chrome
transparent:
  - type: sphere
    center: [0, 5, 0]
    radius: 1
    color: green
    alpha: 0.5
lights:
  - position: [10, 10, 10]
  - type: spot
    position: [0, 20, 0]
    direction: [0, -1, 0]
    cutoff: 30
    color: [0.5, 0.5, 0.5]
    attenuation: {constant: 1, linear: 0.01, quadratic: 0}
    enabled: false
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(testSceneYAML), "")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	wantSampling := SamplingConfig{Width: 64, Height: 48, Supersampling: 2, Workers: 3}
	if diff := cmp.Diff(wantSampling, s.SamplingConfig); diff != "" {
		t.Errorf("SamplingConfig mismatch (-want +got):\n%s", diff)
	}
	if s.Background != material.LightGray {
		t.Errorf("Expected lightGray background, got %v", s.Background)
	}
	if math.Abs(s.CameraConfig.FOV-math.Pi/3) > 1e-12 {
		t.Errorf("Expected 60 degree FOV, got %f rad", s.CameraConfig.FOV)
	}
	if s.CameraConfig.Up != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected default up vector, got %v", s.CameraConfig.Up)
	}
	if s.Camera.Width() != 64 || s.Camera.Height() != 48 {
		t.Errorf("Expected 64x48 camera, got %dx%d", s.Camera.Width(), s.Camera.Height())
	}

	if len(s.OpaqueObjs) != 7 {
		t.Fatalf("Expected 7 opaque objects, got %d", len(s.OpaqueObjs))
	}
	if s.OpaqueObjs[0].Texture == nil {
		t.Error("Expected floor to be textured")
	}
	if _, ok := s.OpaqueObjs[3].Shape.(*geometry.Cylinder); !ok {
		t.Errorf("Expected cylinder, got %T", s.OpaqueObjs[3].Shape)
	}
	if c := s.OpaqueObjs[4].Shape.(*geometry.Cylinder); !c.Capped || c.Axis != core.NewVec3(0, 0, 1) {
		t.Errorf("Expected capped Z cylinder, got %+v", c)
	}

	shinyRed := s.OpaqueObjs[1].Material
	if shinyRed.Shininess != 64 || shinyRed.Reflectivity != 0.25 || shinyRed.Diffuse != material.RedPlastic.Diffuse {
		t.Errorf("Unexpected shinyRed material %+v", shinyRed)
	}
	if material.RedPlastic.Shininess == 64 {
		t.Error("Overriding a preset must not modify the shared preset")
	}
	custom := s.OpaqueObjs[4].Material
	if custom.Diffuse != core.NewVec3(0.2, 0.4, 0.6) || custom.Specular != material.White {
		t.Errorf("Unexpected custom material %+v", custom)
	}
	if s.OpaqueObjs[2].Material != material.Silver {
		t.Error("Expected preset material to be shared")
	}

	if len(s.TransparentObjs) != 1 || s.TransparentObjs[0].Color != material.Green || s.TransparentObjs[0].Alpha != 0.5 {
		t.Errorf("Unexpected transparent objects %+v", s.TransparentObjs)
	}

	if len(s.Lights) != 2 {
		t.Fatalf("Expected 2 lights, got %d", len(s.Lights))
	}
	point, ok := s.Lights[0].(*lights.PositionalLight)
	if !ok || !point.On || point.Color != material.White {
		t.Errorf("Unexpected positional light %+v", s.Lights[0])
	}
	spot, ok := s.Lights[1].(*lights.SpotLight)
	if !ok {
		t.Fatalf("Expected spot light, got %T", s.Lights[1])
	}
	if spot.On {
		t.Error("Expected spot light to be off")
	}
	if diff := cmp.Diff(lights.Attenuation{Constant: 1, Linear: 0.01}, spot.Attenuation); diff != "" {
		t.Errorf("Attenuation mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(spot.CutoffAngle-math.Pi/6) > 1e-12 {
		t.Errorf("Expected 30 degree cutoff, got %f rad", spot.CutoffAngle)
	}
}

func TestParse_OrthographicCamera(t *testing.T) {
	sceneYAML := `
camera:
  projection: orthographic
  position: [0, 0, 5]
  focus: [0, 0, 0]
  pixelsPerUnit: 10
render:
  width: 100
  height: 80
`
	s, err := Parse([]byte(sceneYAML), "")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	camera, ok := s.Camera.(*geometry.OrthographicCamera)
	if !ok {
		t.Fatalf("Expected orthographic camera, got %T", s.Camera)
	}
	if camera.Config().PixelsPerUnit != 10 {
		t.Errorf("Expected 10 pixels per unit, got %f", camera.Config().PixelsPerUnit)
	}
	ray := camera.GetRay(60, 40)
	if ray.Origin != core.NewVec3(1, 0, 5) {
		t.Errorf("Expected ray origin (1,0,5), got %v", ray.Origin)
	}

	if err := s.Resize(50, 40); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if _, ok := s.Camera.(*geometry.OrthographicCamera); !ok {
		t.Errorf("Expected resize to keep the orthographic camera, got %T", s.Camera)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\nobjectz: []\n"},
		{"unknown shape", "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\nobjects: [{type: torus, material: gold}]\n"},
		{"unknown material", "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\nobjects: [{type: sphere, radius: 1, material: unobtainium}]\n"},
		{"missing material", "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\nobjects: [{type: sphere, radius: 1}]\n"},
		{"unknown color", "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\nbackground: mauve\n"},
		{"bad cylinder", "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\nobjects: [{type: cylinderY, radius: -1, material: gold}]\n"},
		{"transparent without color", "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\ntransparent: [{type: sphere, radius: 1}]\n"},
		{"degenerate camera", "camera: {position: [0, 5, 0], focus: [0, 0, 0]}\n"},
		{"spot without direction", "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\nlights: [{type: spot, position: [0, 1, 0], cutoff: 10}]\n"},
		{"unknown projection", "camera: {projection: fisheye, position: [0, 0, 5], focus: [0, 0, 0]}\n"},
		{"orthographic without scale", "camera: {projection: orthographic, position: [0, 0, 5], focus: [0, 0, 0]}\n"},
		{"not yaml", "camera: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml), ""); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoad_ResolvesMeshPath(t *testing.T) {
	dir := t.TempDir()
	obj := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 0 0 1\nf 1 2 3\nf 1 2 4\n"
	if err := os.WriteFile(filepath.Join(dir, "tri.obj"), []byte(obj), 0644); err != nil {
		t.Fatalf("Failed to write OBJ: %v", err)
	}
	sceneYAML := "camera: {position: [0, 0, 5], focus: [0, 0, 0]}\n" +
		"objects:\n" +
		"  - {type: mesh, path: tri.obj, offset: [0, 1, 0], material: gold}\n" +
		"  - {type: mesh, path: missing.obj, material: gold}\n"
	path := filepath.Join(dir, "scene.yaml")
	if err := os.WriteFile(path, []byte(sceneYAML), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	mesh := s.OpaqueObjs[0].Shape.(*geometry.TriangleMesh)
	if mesh.Len() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.Len())
	}
	if mesh.Triangles[0].V0 != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected offset to be applied, got %v", mesh.Triangles[0].V0)
	}
	if missing := s.OpaqueObjs[1].Shape.(*geometry.TriangleMesh); missing.Len() != 0 {
		t.Errorf("Expected missing OBJ to give an empty mesh, got %d triangles", missing.Len())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing scene file, got nil")
	}
}
