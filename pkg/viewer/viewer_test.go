package viewer

import (
	"math"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/geometry"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/renderer"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
)

func newTestViewer(t *testing.T) *Viewer {
	t.Helper()
	sc, err := scene.NewDefaultScene(16, 12)
	if err != nil {
		t.Fatalf("NewDefaultScene failed: %v", err)
	}
	v, err := New(sc, renderer.NewRayTracer(material.Gray), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return v
}

func TestViewer_RenderIfDirty(t *testing.T) {
	v := newTestViewer(t)

	rendered, err := v.RenderIfDirty()
	if err != nil || !rendered {
		t.Fatalf("Expected first call to render, got rendered=%t err=%v", rendered, err)
	}
	if v.LastStats.TotalPixels != 16*12 {
		t.Errorf("Expected %d pixels, got %d", 16*12, v.LastStats.TotalPixels)
	}

	if rendered, _ := v.RenderIfDirty(); rendered {
		t.Error("Expected no render without changes")
	}

	if err := v.Apply(ActionOrbitLeft); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !v.Dirty() {
		t.Error("Expected camera change to mark the view dirty")
	}
}

func TestViewer_Orbit(t *testing.T) {
	v := newTestViewer(t)
	focus := v.Scene.CameraConfig.Focus
	distance := v.Eye().Subtract(focus).Length()
	camera := v.Scene.Camera

	if err := v.Apply(ActionOrbitRight); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if v.Scene.Camera == camera {
		t.Error("Expected a new camera to be built")
	}
	if got := v.Eye().Subtract(focus).Length(); math.Abs(got-distance) > 1e-9 {
		t.Errorf("Expected orbit to keep distance %f, got %f", distance, got)
	}
	if v.Scene.Camera.Frame().Origin != v.Eye() {
		t.Errorf("Expected camera at %v, got %v", v.Eye(), v.Scene.Camera.Frame().Origin)
	}

	if err := v.Apply(ActionOrbitLeft); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if d := v.Eye().Subtract(core.NewVec3(0, 10, 10)).Length(); d > 1e-9 {
		t.Errorf("Expected left then right to return to the start, off by %g", d)
	}
}

func TestViewer_Move(t *testing.T) {
	v := newTestViewer(t)
	focus := v.Scene.CameraConfig.Focus
	distance := v.Eye().Subtract(focus).Length()

	if err := v.Apply(ActionMoveCloser); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := v.Eye().Subtract(focus).Length(); math.Abs(got-distance*moveStep) > 1e-9 {
		t.Errorf("Expected distance %f, got %f", distance*moveStep, got)
	}
	if err := v.Apply(ActionMoveAway); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := v.Eye().Subtract(focus).Length(); math.Abs(got-distance) > 1e-9 {
		t.Errorf("Expected distance %f, got %f", distance, got)
	}
}

func TestViewer_FOVLimits(t *testing.T) {
	v := newTestViewer(t)

	for i := 0; i < 100; i++ {
		if err := v.Apply(ActionWidenFOV); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
	}
	if got := v.Scene.CameraConfig.FOV; got != maxFOV {
		t.Errorf("Expected FOV capped at %f, got %f", maxFOV, got)
	}

	for i := 0; i < 100; i++ {
		if err := v.Apply(ActionNarrowFOV); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
	}
	if got := v.Scene.CameraConfig.FOV; got != minFOV {
		t.Errorf("Expected FOV floored at %f, got %f", minFOV, got)
	}
}

func TestViewer_CycleSupersampling(t *testing.T) {
	v := newTestViewer(t)
	v.N = 1

	var got []int
	for i := 0; i < 5; i++ {
		if err := v.Apply(ActionCycleSupersampling); err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		got = append(got, v.N)
	}
	want := []int{2, 3, 4, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected cycle %v, got %v", want, got)
		}
	}

	v.N = 9
	if err := v.Apply(ActionCycleSupersampling); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if v.N != 1 {
		t.Errorf("Expected unknown N to restart the cycle, got %d", v.N)
	}
}

func TestViewer_Resize(t *testing.T) {
	v := newTestViewer(t)
	if _, err := v.RenderIfDirty(); err != nil {
		t.Fatalf("RenderIfDirty failed: %v", err)
	}

	if err := v.Resize(16, 12); err != nil || v.Dirty() {
		t.Errorf("Expected same size to be a no-op, got err=%v dirty=%t", err, v.Dirty())
	}

	if err := v.Resize(20, 10); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if v.FrameBuffer.Width() != 20 || v.FrameBuffer.Height() != 10 {
		t.Errorf("Expected 20x10 framebuffer, got %dx%d", v.FrameBuffer.Width(), v.FrameBuffer.Height())
	}
	if v.Scene.Camera.Width() != 20 || v.Scene.Camera.Height() != 10 {
		t.Errorf("Expected 20x10 camera, got %dx%d", v.Scene.Camera.Width(), v.Scene.Camera.Height())
	}
	if _, err := v.RenderIfDirty(); err != nil {
		t.Errorf("Expected render after resize to succeed, got %v", err)
	}
}

func TestNew_RequiresCamera(t *testing.T) {
	if _, err := New(&scene.Scene{}, renderer.NewRayTracer(material.Gray), nil); err == nil {
		t.Error("Expected error for scene without camera, got nil")
	}
}

func TestViewer_OrthographicZoomAndResize(t *testing.T) {
	v := newTestViewer(t)
	config := v.Scene.CameraConfig
	config.Projection = geometry.Orthographic
	config.PixelsPerUnit = 2
	if err := v.Scene.SetCameraConfig(config); err != nil {
		t.Fatalf("SetCameraConfig failed: %v", err)
	}

	if err := v.Apply(ActionNarrowFOV); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := v.Scene.CameraConfig.PixelsPerUnit; math.Abs(got-2/moveStep) > 1e-12 {
		t.Errorf("Expected narrowing to magnify to %f, got %f", 2/moveStep, got)
	}
	if err := v.Resize(24, 12); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if _, ok := v.Scene.Camera.(*geometry.OrthographicCamera); !ok {
		t.Errorf("Expected orthographic camera to survive zoom and resize, got %T", v.Scene.Camera)
	}
	if _, err := v.RenderIfDirty(); err != nil {
		t.Errorf("RenderIfDirty failed: %v", err)
	}
}
