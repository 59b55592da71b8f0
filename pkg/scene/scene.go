package scene

import (
	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/lights"
	"github.com/df07/go-implicit-raytracer/pkg/object"
	"golang.org/x/xerrors"
)

// Scene contains all the elements needed for rendering. It is built once and
// must not be mutated while a render pass is running.
type Scene struct {
	Camera          geometry.Camera
	OpaqueObjs      []*object.Opaque
	TransparentObjs []*object.Transparent
	Lights          []lights.Light
	Background      core.Vec3 // Color where no opaque surface is seen

	CameraConfig   geometry.CameraConfig
	SamplingConfig SamplingConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width         int // Image width
	Height        int // Image height
	Supersampling int // Rays per pixel along each axis (N, for N² rays)
	Depth         int // Reflection bounces followed by the ray tracer
	Workers       int // Render goroutines, 0 for one per CPU
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:         400,
		Height:        300,
		Supersampling: 3,
	}
}

// NewScene creates an empty scene with the camera built from config
func NewScene(cameraConfig geometry.CameraConfig, background core.Vec3) (*Scene, error) {
	s := &Scene{
		Background:     background,
		SamplingConfig: DefaultSamplingConfig(),
	}
	if err := s.SetCameraConfig(cameraConfig); err != nil {
		return nil, err
	}
	s.SamplingConfig.Width = cameraConfig.Width
	s.SamplingConfig.Height = cameraConfig.Height
	return s, nil
}

// AddOpaqueObject appends a shaded object
func (s *Scene) AddOpaqueObject(obj *object.Opaque) {
	s.OpaqueObjs = append(s.OpaqueObjs, obj)
}

// AddTransparentObject appends a transparent object
func (s *Scene) AddTransparentObject(obj *object.Transparent) {
	s.TransparentObjs = append(s.TransparentObjs, obj)
}

// AddLight appends a light
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// SetCamera replaces the active camera. Later resizes and camera edits start
// from this camera's configuration.
func (s *Scene) SetCamera(camera geometry.Camera) {
	s.Camera = camera
	s.CameraConfig = camera.Config()
	s.SamplingConfig.Width = camera.Width()
	s.SamplingConfig.Height = camera.Height()
}

// SetCameraConfig builds the camera config describes and makes it active
func (s *Scene) SetCameraConfig(config geometry.CameraConfig) error {
	camera, err := geometry.NewCameraFromConfig(config)
	if err != nil {
		return xerrors.Errorf("while building camera: %w", err)
	}
	s.CameraConfig = camera.Config()
	s.Camera = camera
	return nil
}

// Resize rebuilds the camera, keeping its projection, for a new output
// resolution
func (s *Scene) Resize(width, height int) error {
	config := s.CameraConfig
	config.Width = width
	config.Height = height
	if err := s.SetCameraConfig(config); err != nil {
		return err
	}
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, obj := range s.OpaqueObjs {
		count += countPrimitivesInShape(obj.Shape)
	}
	for _, obj := range s.TransparentObjs {
		count += countPrimitivesInShape(obj.Shape)
	}
	return count
}

// countPrimitivesInShape counts primitives in a single shape, handling meshes
func countPrimitivesInShape(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.TriangleMesh:
		return obj.Len()
	default:
		return 1
	}
}
