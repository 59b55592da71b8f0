package scene

import (
	"math"
	"sort"
	"strings"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/lights"
	"github.com/df07/go-implicit-raytracer/pkg/loaders"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/object"
	"golang.org/x/xerrors"
)

// Builder creates a built-in scene rendered at width x height
type Builder func(width, height int) (*Scene, error)

var builtins = map[string]Builder{
	"default":      NewDefaultScene,
	"transparency": NewTransparencyScene,
	"shadow":       NewShadowScene,
	"textured":     NewTexturedScene,
	"mesh":         NewMeshScene,
}

// Names lists the built-in scenes in alphabetical order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin creates the built-in scene with the given name
func Builtin(name string, width, height int) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, xerrors.Errorf("unknown scene %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return build(width, height)
}

// NewDefaultScene creates the composite shapes scene: one of each implicit
// surface above a white floor, lit by a single positional light
func NewDefaultScene(width, height int) (*Scene, error) {
	s, err := NewScene(geometry.CameraConfig{
		Position: core.NewVec3(0, 10, 10),
		Focus:    core.NewVec3(0, 5, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      math.Pi / 2,
		Width:    width,
		Height:   height,
	}, material.Gray)
	if err != nil {
		return nil, err
	}

	cone, err := geometry.NewConeY(core.NewVec3(25, 15, -10), 5, 10)
	if err != nil {
		return nil, err
	}
	cylinderY, err := geometry.NewCylinderY(core.NewVec3(2, 6, 0), 5, 3)
	if err != nil {
		return nil, err
	}
	ellipsoid, err := geometry.NewEllipsoid(core.NewVec3(-20, 7, -10), core.NewVec3(5, 10, 5))
	if err != nil {
		return nil, err
	}
	cylinderZ, err := geometry.NewCylinderZ(core.NewVec3(-8, 6, 5), 5, 3)
	if err != nil {
		return nil, err
	}

	s.AddOpaqueObject(object.NewOpaque(cone, material.GreenPlastic))
	s.AddOpaqueObject(object.NewOpaque(geometry.NewPlane(core.NewVec3(0, -2, 0), core.NewVec3(0, 1, 0)), material.WhitePlastic))
	s.AddOpaqueObject(object.NewOpaque(cylinderY, material.Gold))
	s.AddOpaqueObject(object.NewOpaque(geometry.NewSphere(core.NewVec3(12, 0, 4), 3), material.Copper))
	s.AddOpaqueObject(object.NewOpaque(ellipsoid, material.Silver))
	s.AddOpaqueObject(object.NewOpaque(cylinderZ, material.RedPlastic))
	s.AddLight(lights.NewPositionalLight(core.NewVec3(10, 10, 10), material.White))

	return s, nil
}

// NewTransparencyScene layers transparent shapes over opaque ones and over
// the background
func NewTransparencyScene(width, height int) (*Scene, error) {
	s, err := NewScene(geometry.CameraConfig{
		Position: core.NewVec3(0, 4, 12),
		Focus:    core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      math.Pi / 3,
		Width:    width,
		Height:   height,
	}, material.LightGray)
	if err != nil {
		return nil, err
	}

	closedCylinder, err := geometry.NewClosedCylinderY(core.NewVec3(-3, 1, -2), 1.5, 4)
	if err != nil {
		return nil, err
	}
	veil, err := geometry.NewEllipsoid(core.NewVec3(-1, 2, 2), core.NewVec3(3, 1.5, 1))
	if err != nil {
		return nil, err
	}

	s.AddOpaqueObject(object.NewOpaque(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), material.WhitePlastic))
	s.AddOpaqueObject(object.NewOpaque(geometry.NewSphere(core.NewVec3(2, 1, 0), 2), material.PolishedCopper))
	s.AddOpaqueObject(object.NewOpaque(closedCylinder, material.BluePlastic))

	s.AddTransparentObject(object.NewTransparent(geometry.NewSphere(core.NewVec3(3, 2, 4), 1.5), material.Green, 0.5))
	s.AddTransparentObject(object.NewTransparent(veil, material.Red, 0.3))
	s.AddTransparentObject(object.NewTransparent(geometry.NewSphere(core.NewVec3(-5, 6, -4), 1.5), material.Blue, 0.6))

	s.AddLight(lights.NewPositionalLight(core.NewVec3(5, 10, 10), material.White))

	return s, nil
}

// NewShadowScene stacks shapes under two lights so that their shadows
// overlap on the floor
func NewShadowScene(width, height int) (*Scene, error) {
	s, err := NewScene(geometry.CameraConfig{
		Position: core.NewVec3(0, 8, 14),
		Focus:    core.NewVec3(0, 0, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      math.Pi / 3,
		Width:    width,
		Height:   height,
	}, material.Black)
	if err != nil {
		return nil, err
	}

	cone, err := geometry.NewClosedConeY(core.NewVec3(-3, 3, 0), 1.5, 3)
	if err != nil {
		return nil, err
	}

	s.AddOpaqueObject(object.NewOpaque(geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), material.WhiteRubber))
	s.AddOpaqueObject(object.NewOpaque(geometry.NewSphere(core.NewVec3(0, 2.5, 0), 1.5), material.PolishedGold))
	s.AddOpaqueObject(object.NewOpaque(cone, material.RedPlastic))

	key := lights.NewPositionalLight(core.NewVec3(4, 12, 4), material.White)
	key.Attenuation = lights.Attenuation{Constant: 1, Quadratic: 0.002}
	s.AddLight(key)
	s.AddLight(lights.NewSpotLight(core.NewVec3(-6, 10, 2), core.NewVec3(0.4, -1, -0.1), core.NewVec3(0.4, 0.4, 0.6), math.Pi/6))

	return s, nil
}

// NewTexturedScene shows UV mapping on the implicit surfaces
func NewTexturedScene(width, height int) (*Scene, error) {
	s, err := NewScene(geometry.CameraConfig{
		Position: core.NewVec3(0, 5, 12),
		Focus:    core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      math.Pi / 3,
		Width:    width,
		Height:   height,
	}, material.DarkGray)
	if err != nil {
		return nil, err
	}

	cylinder, err := geometry.NewClosedCylinderY(core.NewVec3(3, 1.5, 0), 1.2, 3)
	if err != nil {
		return nil, err
	}

	floorTexture := material.NewSolidCheckerTexture(2, material.White, material.Black)
	sphereTexture := material.NewCheckerboardImage(64, 32, 4, material.Yellow, material.Blue)
	stripes := material.NewCheckerTexture(8, material.Red, material.White)

	s.AddOpaqueObject(object.NewTexturedOpaque(geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), material.WhitePlastic, floorTexture))
	s.AddOpaqueObject(object.NewTexturedOpaque(geometry.NewSphere(core.NewVec3(-2, 2, 0), 2), material.WhitePlastic, sphereTexture))
	s.AddOpaqueObject(object.NewTexturedOpaque(cylinder, material.WhitePlastic, stripes))

	s.AddLight(lights.NewPositionalLight(core.NewVec3(0, 12, 8), material.White))

	return s, nil
}

// octahedronOBJ is the mesh shown by NewMeshScene
const octahedronOBJ = `# octahedron
v 0 2 0
v 0 -2 0
v 1.5 0 0
v -1.5 0 0
v 0 0 1.5
v 0 0 -1.5
f 1 5 3
f 1 3 6
f 1 6 4
f 1 4 5
f 2 3 5
f 2 6 3
f 2 4 6
f 2 5 4
`

// NewMeshScene renders an OBJ triangle mesh next to an implicit sphere
func NewMeshScene(width, height int) (*Scene, error) {
	s, err := NewScene(geometry.CameraConfig{
		Position: core.NewVec3(0, 3, 9),
		Focus:    core.NewVec3(0, 1, 0),
		Up:       core.NewVec3(0, 1, 0),
		FOV:      math.Pi / 3,
		Width:    width,
		Height:   height,
	}, material.Gray)
	if err != nil {
		return nil, err
	}

	mesh, err := loaders.ParseOBJ(strings.NewReader(octahedronOBJ))
	if err != nil {
		return nil, xerrors.Errorf("while parsing built-in mesh: %w", err)
	}

	s.AddOpaqueObject(object.NewOpaque(geometry.NewPlane(core.Vec3{}, core.NewVec3(0, 1, 0)), material.WhitePlastic))
	s.AddOpaqueObject(object.NewOpaque(mesh.Translated(core.NewVec3(-1.5, 2, 0)), material.Chrome))
	s.AddOpaqueObject(object.NewOpaque(geometry.NewSphere(core.NewVec3(2, 1, 0), 1), material.Bronze.WithReflectivity(0.3)))
	s.AddLight(lights.NewPositionalLight(core.NewVec3(4, 8, 6), material.White))

	return s, nil
}
