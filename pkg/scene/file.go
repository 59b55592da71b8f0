package scene

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/lights"
	"github.com/df07/go-implicit-raytracer/pkg/loaders"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/object"
	"golang.org/x/xerrors"
	"sigs.k8s.io/yaml"
)

// File is the YAML scene description. Vectors and colors are written as
// three-element lists; colors may also be given by name ("lightGray").
type File struct {
	Camera      CameraSpec              `json:"camera"`
	Background  *Color                  `json:"background,omitempty"`
	Render      *RenderSpec             `json:"render,omitempty"`
	Materials   map[string]MaterialSpec `json:"materials,omitempty"`
	Objects     []ShapeSpec             `json:"objects"`
	Transparent []ShapeSpec             `json:"transparent,omitempty"`
	Lights      []LightSpec             `json:"lights"`
}

// Vec is a point or direction in a scene file
type Vec [3]float64

func (v Vec) vec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

// Color accepts either a named color or an [r, g, b] list
type Color core.Vec3

// UnmarshalJSON implements json.Unmarshaler
func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		named, ok := material.NamedColor(name)
		if !ok {
			return xerrors.Errorf("unknown color %q", name)
		}
		*c = Color(named)
		return nil
	}

	var rgb Vec
	if err := json.Unmarshal(data, &rgb); err != nil {
		return xerrors.Errorf("color must be a name or [r, g, b]: %w", err)
	}
	*c = Color(rgb.vec3())
	return nil
}

// CameraSpec places the camera. Projection is "perspective" (the default)
// or "orthographic"; FOV is in degrees and applies to perspective cameras,
// PixelsPerUnit to orthographic ones.
type CameraSpec struct {
	Projection    string  `json:"projection,omitempty"`
	Position      Vec     `json:"position"`
	Focus         Vec     `json:"focus"`
	Up            *Vec    `json:"up,omitempty"`
	FOV           float64 `json:"fov,omitempty"`
	PixelsPerUnit float64 `json:"pixelsPerUnit,omitempty"`
}

// RenderSpec overrides the default sampling configuration
type RenderSpec struct {
	Width         int `json:"width,omitempty"`
	Height        int `json:"height,omitempty"`
	Supersampling int `json:"supersampling,omitempty"`
	Depth         int `json:"depth,omitempty"`
	Workers       int `json:"workers,omitempty"`
}

// MaterialSpec defines a material either from a preset or from explicit
// Phong coefficients. Explicit coefficients win over the preset.
type MaterialSpec struct {
	Preset       string  `json:"preset,omitempty"`
	Ambient      *Color  `json:"ambient,omitempty"`
	Diffuse      *Color  `json:"diffuse,omitempty"`
	Specular     *Color  `json:"specular,omitempty"`
	Shininess    float64 `json:"shininess,omitempty"`
	Reflectivity float64 `json:"reflectivity,omitempty"`
}

// TextureSpec selects a texture: "checker" (UV cells), "solidChecker"
// (world-space cells) or "image"
type TextureSpec struct {
	Type  string  `json:"type"`
	Scale float64 `json:"scale,omitempty"`
	Even  *Color  `json:"even,omitempty"`
	Odd   *Color  `json:"odd,omitempty"`
	Path  string  `json:"path,omitempty"`
}

// ShapeSpec describes one object. Which fields apply depends on Type.
type ShapeSpec struct {
	Type string `json:"type"`

	Point    Vec     `json:"point,omitempty"`
	Normal   Vec     `json:"normal,omitempty"`
	Center   Vec     `json:"center,omitempty"`
	Radii    Vec     `json:"radii,omitempty"`
	Axis     Vec     `json:"axis,omitempty"`
	Apex     Vec     `json:"apex,omitempty"`
	Radius   float64 `json:"radius,omitempty"`
	Length   float64 `json:"length,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Capped   bool    `json:"capped,omitempty"`
	Vertices []Vec   `json:"vertices,omitempty"`
	Path     string  `json:"path,omitempty"`
	Offset   Vec     `json:"offset,omitempty"`

	// Opaque objects
	Material string       `json:"material,omitempty"`
	Texture  *TextureSpec `json:"texture,omitempty"`

	// Transparent objects
	Color *Color  `json:"color,omitempty"`
	Alpha float64 `json:"alpha,omitempty"`
}

// AttenuationSpec mirrors lights.Attenuation
type AttenuationSpec struct {
	Constant  float64 `json:"constant"`
	Linear    float64 `json:"linear"`
	Quadratic float64 `json:"quadratic"`
}

// LightSpec describes a positional or spot light. Cutoff is in degrees.
// Enabled defaults to true. The key must not be "on": YAML 1.1 decodes a
// bare on as a boolean.
type LightSpec struct {
	Type        string           `json:"type,omitempty"`
	Position    Vec              `json:"position"`
	Color       *Color           `json:"color,omitempty"`
	Direction   Vec              `json:"direction,omitempty"`
	Cutoff      float64          `json:"cutoff,omitempty"`
	Attenuation *AttenuationSpec `json:"attenuation,omitempty"`
	Enabled     *bool            `json:"enabled,omitempty"`
}

// Load reads a YAML scene file. Relative mesh and texture paths are resolved
// against the file's directory.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("while reading scene file: %w", err)
	}
	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, xerrors.Errorf("while loading %s: %w", path, err)
	}
	return s, nil
}

// Parse builds a scene from YAML. Unknown keys are rejected.
func Parse(data []byte, baseDir string) (*Scene, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, xerrors.Errorf("while parsing scene YAML: %w", err)
	}
	return f.Build(baseDir)
}

// Build turns a parsed scene file into a Scene
func (f *File) Build(baseDir string) (*Scene, error) {
	sampling := DefaultSamplingConfig()
	if r := f.Render; r != nil {
		if r.Width > 0 {
			sampling.Width = r.Width
		}
		if r.Height > 0 {
			sampling.Height = r.Height
		}
		if r.Supersampling > 0 {
			sampling.Supersampling = r.Supersampling
		}
		if r.Depth > 0 {
			sampling.Depth = r.Depth
		}
		sampling.Workers = r.Workers
	}

	up := core.NewVec3(0, 1, 0)
	if f.Camera.Up != nil {
		up = f.Camera.Up.vec3()
	}
	fov := 90.0
	if f.Camera.FOV != 0 {
		fov = f.Camera.FOV
	}
	background := material.Gray
	if f.Background != nil {
		background = core.Vec3(*f.Background)
	}

	s, err := NewScene(geometry.CameraConfig{
		Projection:    geometry.Projection(f.Camera.Projection),
		Position:      f.Camera.Position.vec3(),
		Focus:         f.Camera.Focus.vec3(),
		Up:            up,
		FOV:           fov * math.Pi / 180,
		PixelsPerUnit: f.Camera.PixelsPerUnit,
		Width:         sampling.Width,
		Height:        sampling.Height,
	}, background)
	if err != nil {
		return nil, err
	}
	s.SamplingConfig = sampling

	for i, spec := range f.Objects {
		obj, err := f.buildOpaque(spec, baseDir)
		if err != nil {
			return nil, xerrors.Errorf("object %d (%s): %w", i, spec.Type, err)
		}
		s.AddOpaqueObject(obj)
	}

	for i, spec := range f.Transparent {
		shape, err := buildShape(spec, baseDir)
		if err != nil {
			return nil, xerrors.Errorf("transparent object %d (%s): %w", i, spec.Type, err)
		}
		if spec.Color == nil {
			return nil, xerrors.Errorf("transparent object %d (%s): missing color", i, spec.Type)
		}
		s.AddTransparentObject(object.NewTransparent(shape, core.Vec3(*spec.Color), spec.Alpha))
	}

	for i, spec := range f.Lights {
		light, err := buildLight(spec)
		if err != nil {
			return nil, xerrors.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	return s, nil
}

func (f *File) buildOpaque(spec ShapeSpec, baseDir string) (*object.Opaque, error) {
	shape, err := buildShape(spec, baseDir)
	if err != nil {
		return nil, err
	}
	mat, err := f.lookupMaterial(spec.Material)
	if err != nil {
		return nil, err
	}
	if spec.Texture == nil {
		return object.NewOpaque(shape, mat), nil
	}
	tex, err := buildTexture(*spec.Texture, baseDir)
	if err != nil {
		return nil, err
	}
	return object.NewTexturedOpaque(shape, mat, tex), nil
}

func (f *File) lookupMaterial(name string) (*material.Material, error) {
	if name == "" {
		return nil, xerrors.New("missing material")
	}
	if spec, ok := f.Materials[name]; ok {
		return buildMaterial(spec)
	}
	if mat, ok := material.Preset(name); ok {
		return mat, nil
	}
	return nil, xerrors.Errorf("unknown material %q", name)
}

func buildMaterial(spec MaterialSpec) (*material.Material, error) {
	mat := material.NewMaterial(core.Vec3{}, core.Vec3{}, core.Vec3{}, 1)
	if spec.Preset != "" {
		preset, ok := material.Preset(spec.Preset)
		if !ok {
			return nil, xerrors.Errorf("unknown material preset %q", spec.Preset)
		}
		cp := *preset
		mat = &cp
	}
	if spec.Ambient != nil {
		mat.Ambient = core.Vec3(*spec.Ambient)
	}
	if spec.Diffuse != nil {
		mat.Diffuse = core.Vec3(*spec.Diffuse)
	}
	if spec.Specular != nil {
		mat.Specular = core.Vec3(*spec.Specular)
	}
	if spec.Shininess > 0 {
		mat.Shininess = spec.Shininess
	}
	return mat.WithReflectivity(spec.Reflectivity), nil
}

func buildTexture(spec TextureSpec, baseDir string) (material.Texture, error) {
	even, odd := material.White, material.Black
	if spec.Even != nil {
		even = core.Vec3(*spec.Even)
	}
	if spec.Odd != nil {
		odd = core.Vec3(*spec.Odd)
	}
	scale := spec.Scale
	if scale <= 0 {
		scale = 1
	}

	switch spec.Type {
	case "checker":
		return material.NewCheckerTexture(scale, even, odd), nil
	case "solidChecker":
		return material.NewSolidCheckerTexture(scale, even, odd), nil
	case "image":
		tex, err := loaders.LoadImageTexture(resolve(baseDir, spec.Path))
		if err != nil {
			return nil, err
		}
		return tex, nil
	default:
		return nil, xerrors.Errorf("unknown texture type %q", spec.Type)
	}
}

func buildShape(spec ShapeSpec, baseDir string) (geometry.Shape, error) {
	switch spec.Type {
	case "plane":
		if spec.Normal.vec3().IsZero() {
			return nil, xerrors.New("plane normal must be non-zero")
		}
		return geometry.NewPlane(spec.Point.vec3(), spec.Normal.vec3()), nil
	case "sphere":
		if spec.Radius <= 0 {
			return nil, xerrors.Errorf("sphere radius must be positive, got %f", spec.Radius)
		}
		return geometry.NewSphere(spec.Center.vec3(), spec.Radius), nil
	case "ellipsoid":
		return geometry.NewEllipsoid(spec.Center.vec3(), spec.Radii.vec3())
	case "cylinderY":
		return geometry.NewCylinderY(spec.Center.vec3(), spec.Radius, spec.Length)
	case "cylinderZ":
		return geometry.NewCylinderZ(spec.Center.vec3(), spec.Radius, spec.Length)
	case "closedCylinderY":
		return geometry.NewClosedCylinderY(spec.Center.vec3(), spec.Radius, spec.Length)
	case "closedCylinderZ":
		return geometry.NewClosedCylinderZ(spec.Center.vec3(), spec.Radius, spec.Length)
	case "cylinder":
		return geometry.NewCylinder(spec.Center.vec3(), spec.Axis.vec3(), spec.Radius, spec.Length, spec.Capped)
	case "coneY":
		return geometry.NewConeY(spec.Apex.vec3(), spec.Radius, spec.Height)
	case "closedConeY":
		return geometry.NewClosedConeY(spec.Apex.vec3(), spec.Radius, spec.Height)
	case "triangle":
		if len(spec.Vertices) != 3 {
			return nil, xerrors.Errorf("triangle needs 3 vertices, got %d", len(spec.Vertices))
		}
		return geometry.NewTriangle(spec.Vertices[0].vec3(), spec.Vertices[1].vec3(), spec.Vertices[2].vec3()), nil
	case "mesh":
		if spec.Path == "" {
			return nil, xerrors.New("mesh needs a path")
		}
		return loaders.LoadOBJ(resolve(baseDir, spec.Path)).Translated(spec.Offset.vec3()), nil
	default:
		return nil, xerrors.Errorf("unknown shape type %q", spec.Type)
	}
}

func buildLight(spec LightSpec) (lights.Light, error) {
	color := material.White
	if spec.Color != nil {
		color = core.Vec3(*spec.Color)
	}
	atten := lights.NoAttenuation
	if a := spec.Attenuation; a != nil {
		atten = lights.Attenuation{Constant: a.Constant, Linear: a.Linear, Quadratic: a.Quadratic}
	}
	on := spec.Enabled == nil || *spec.Enabled

	switch spec.Type {
	case "", "positional":
		light := lights.NewPositionalLight(spec.Position.vec3(), color)
		light.Attenuation = atten
		light.On = on
		return light, nil
	case "spot":
		if spec.Direction.vec3().IsZero() {
			return nil, xerrors.New("spot light direction must be non-zero")
		}
		if spec.Cutoff <= 0 || spec.Cutoff > 180 {
			return nil, xerrors.Errorf("spot light cutoff must be in (0, 180] degrees, got %f", spec.Cutoff)
		}
		light := lights.NewSpotLight(spec.Position.vec3(), spec.Direction.vec3(), color, spec.Cutoff*math.Pi/180)
		light.Attenuation = atten
		light.On = on
		return light, nil
	default:
		return nil, xerrors.Errorf("unknown light type %q", spec.Type)
	}
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
