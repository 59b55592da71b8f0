package viewer

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/renderer"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
	"golang.org/x/xerrors"
)

// Action is a user command that changes the view
type Action int

const (
	ActionNone Action = iota
	ActionOrbitLeft
	ActionOrbitRight
	ActionMoveCloser
	ActionMoveAway
	ActionWidenFOV
	ActionNarrowFOV
	ActionCycleSupersampling
)

const (
	orbitStep = math.Pi / 36 // 5 degrees
	moveStep  = 0.9
	fovStep   = math.Pi / 36
	minFOV    = math.Pi / 36
	maxFOV    = math.Pi * 17 / 18
)

// supersamplingCycle is the sequence of N values the viewer steps through
var supersamplingCycle = []int{1, 2, 3, 4}

// Viewer owns a scene, a ray tracer and a framebuffer and re-renders the
// scene synchronously whenever the view changes
type Viewer struct {
	Scene       *scene.Scene
	Tracer      *renderer.RayTracer
	FrameBuffer *renderer.FrameBuffer
	N           int // Supersampling factor
	Depth       int // Reflection bounces

	LastStats renderer.RenderStats

	dirty bool
}

// New creates a viewer whose framebuffer matches the scene camera. The first
// call to RenderIfDirty renders the scene.
func New(sc *scene.Scene, rt *renderer.RayTracer, presenter renderer.Presenter) (*Viewer, error) {
	if sc == nil || sc.Camera == nil {
		return nil, renderer.ErrNoCamera
	}
	n := sc.SamplingConfig.Supersampling
	if n < 1 {
		n = 1
	}
	return &Viewer{
		Scene:       sc,
		Tracer:      rt,
		FrameBuffer: renderer.NewFrameBuffer(sc.Camera.Width(), sc.Camera.Height(), presenter),
		N:           n,
		Depth:       sc.SamplingConfig.Depth,
		dirty:       true,
	}, nil
}

// Dirty reports whether the next RenderIfDirty will render
func (v *Viewer) Dirty() bool { return v.dirty }

// Apply changes the camera or render settings. The camera is rebuilt, never
// modified in place.
func (v *Viewer) Apply(a Action) error {
	config := v.Scene.CameraConfig
	offset := config.Position.Subtract(config.Focus)

	switch a {
	case ActionNone:
		return nil
	case ActionOrbitLeft:
		config.Position = config.Focus.Add(offset.RotateY(-orbitStep))
	case ActionOrbitRight:
		config.Position = config.Focus.Add(offset.RotateY(orbitStep))
	case ActionMoveCloser:
		config.Position = config.Focus.Add(offset.Multiply(moveStep))
	case ActionMoveAway:
		config.Position = config.Focus.Add(offset.Multiply(1 / moveStep))
	case ActionWidenFOV:
		if config.Projection == geometry.Orthographic {
			config.PixelsPerUnit *= moveStep
		} else {
			config.FOV = math.Min(config.FOV+fovStep, maxFOV)
		}
	case ActionNarrowFOV:
		if config.Projection == geometry.Orthographic {
			config.PixelsPerUnit /= moveStep
		} else {
			config.FOV = math.Max(config.FOV-fovStep, minFOV)
		}
	case ActionCycleSupersampling:
		v.N = nextSupersampling(v.N)
		v.dirty = true
		return nil
	default:
		return xerrors.Errorf("unknown action %d", a)
	}

	if err := v.Scene.SetCameraConfig(config); err != nil {
		return err
	}
	v.dirty = true
	return nil
}

// Resize rebuilds the camera and framebuffer for a new window size
func (v *Viewer) Resize(width, height int) error {
	if width == v.FrameBuffer.Width() && height == v.FrameBuffer.Height() {
		return nil
	}
	if err := v.Scene.Resize(width, height); err != nil {
		return err
	}
	v.FrameBuffer.SetFrameBufferSize(width, height)
	v.dirty = true
	return nil
}

// RenderIfDirty renders one pass if anything changed since the last one
func (v *Viewer) RenderIfDirty() (bool, error) {
	if !v.dirty {
		return false, nil
	}
	stats, err := v.Tracer.RaytraceScene(v.FrameBuffer, v.Depth, v.Scene, v.N)
	if err != nil {
		return false, err
	}
	v.LastStats = stats
	v.dirty = false
	return true, nil
}

// Eye returns the current camera position
func (v *Viewer) Eye() core.Vec3 {
	return v.Scene.CameraConfig.Position
}

func nextSupersampling(n int) int {
	for i, s := range supersamplingCycle {
		if s == n {
			return supersamplingCycle[(i+1)%len(supersamplingCycle)]
		}
	}
	return supersamplingCycle[0]
}
