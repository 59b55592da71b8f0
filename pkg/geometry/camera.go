package geometry

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"golang.org/x/xerrors"
)

// Camera generates primary rays. Pixel coordinates have their origin at the
// bottom-left of the image with y increasing upward; the integer part selects
// the pixel and the fractional part the position inside it.
type Camera interface {
	GetRay(x, y float64) core.Ray
	Frame() core.Frame
	Width() int
	Height() int
	Config() CameraConfig
}

// Projection selects the kind of camera a CameraConfig builds
type Projection string

const (
	Perspective  Projection = "perspective"
	Orthographic Projection = "orthographic"
)

// CameraConfig describes where a camera sits and what it sees
type CameraConfig struct {
	Projection    Projection // Empty means Perspective
	Position      core.Vec3
	Focus         core.Vec3
	Up            core.Vec3
	FOV           float64 // Vertical field of view in radians (perspective)
	PixelsPerUnit float64 // Pixels per world unit on the image plane (orthographic)
	Width         int
	Height        int
}

// NewCameraFromConfig builds the camera kind named by config.Projection
func NewCameraFromConfig(config CameraConfig) (Camera, error) {
	switch config.Projection {
	case "", Perspective:
		return NewPerspectiveCameraFromConfig(config)
	case Orthographic:
		return NewOrthographicCameraFromConfig(config)
	default:
		return nil, xerrors.Errorf("unknown projection %q", config.Projection)
	}
}

// Resized builds a camera like c with a new output resolution
func Resized(c Camera, width, height int) (Camera, error) {
	config := c.Config()
	config.Width = width
	config.Height = height
	return NewCameraFromConfig(config)
}

// PerspectiveCamera is a pinhole camera. It is immutable; resizing the
// output means building a new camera.
type PerspectiveCamera struct {
	config      CameraConfig
	frame       core.Frame
	distToPlane float64
	aspectRatio float64
}

// NewPerspectiveCamera creates a pinhole camera at pos looking at focus
func NewPerspectiveCamera(pos, focus, up core.Vec3, fovY float64, width, height int) (*PerspectiveCamera, error) {
	return NewPerspectiveCameraFromConfig(CameraConfig{
		Position: pos,
		Focus:    focus,
		Up:       up,
		FOV:      fovY,
		Width:    width,
		Height:   height,
	})
}

// NewPerspectiveCameraFromConfig creates a pinhole camera from a config
func NewPerspectiveCameraFromConfig(config CameraConfig) (*PerspectiveCamera, error) {
	if config.FOV <= 0 || config.FOV >= math.Pi {
		return nil, xerrors.Errorf("field of view must be in (0, π) radians, got %f", config.FOV)
	}
	config.Projection = Perspective
	frame, err := newCameraFrame(config)
	if err != nil {
		return nil, err
	}

	return &PerspectiveCamera{
		config:      config,
		frame:       frame,
		distToPlane: 1.0 / math.Tan(config.FOV/2),
		aspectRatio: float64(config.Width) / float64(config.Height),
	}, nil
}

// GetRay returns the ray from the eye through pixel position (x, y)
func (c *PerspectiveCamera) GetRay(x, y float64) core.Ray {
	a := c.aspectRatio * (2*x/float64(c.config.Width) - 1)
	b := 2*y/float64(c.config.Height) - 1

	direction := c.frame.ToWorld(a, b, -c.distToPlane)
	return core.NewRay(c.frame.Origin, direction)
}

// Frame returns the camera's position and orientation
func (c *PerspectiveCamera) Frame() core.Frame { return c.frame }

// Width returns the horizontal resolution
func (c *PerspectiveCamera) Width() int { return c.config.Width }

// Height returns the vertical resolution
func (c *PerspectiveCamera) Height() int { return c.config.Height }

// Config returns the parameters the camera was built from
func (c *PerspectiveCamera) Config() CameraConfig { return c.config }

// OrthographicCamera casts parallel rays along the view direction
type OrthographicCamera struct {
	config             CameraConfig
	frame              core.Frame
	pixelsPerWorldUnit float64
}

// NewOrthographicCamera creates a parallel-projection camera. ppwu is the
// number of pixels per world unit on the projection plane.
func NewOrthographicCamera(pos, focus, up core.Vec3, ppwu float64, width, height int) (*OrthographicCamera, error) {
	return NewOrthographicCameraFromConfig(CameraConfig{
		Position:      pos,
		Focus:         focus,
		Up:            up,
		PixelsPerUnit: ppwu,
		Width:         width,
		Height:        height,
	})
}

// NewOrthographicCameraFromConfig creates a parallel-projection camera from
// a config. FOV is ignored.
func NewOrthographicCameraFromConfig(config CameraConfig) (*OrthographicCamera, error) {
	if config.PixelsPerUnit <= 0 {
		return nil, xerrors.Errorf("pixels per world unit must be positive, got %f", config.PixelsPerUnit)
	}
	frame, err := newCameraFrame(config)
	if err != nil {
		return nil, err
	}
	config.Projection = Orthographic
	return &OrthographicCamera{config: config, frame: frame, pixelsPerWorldUnit: config.PixelsPerUnit}, nil
}

// GetRay returns the ray through pixel position (x, y)
func (c *OrthographicCamera) GetRay(x, y float64) core.Ray {
	a := (x - float64(c.config.Width)/2) / c.pixelsPerWorldUnit
	b := (y - float64(c.config.Height)/2) / c.pixelsPerWorldUnit
	origin := c.frame.Origin.Add(c.frame.ToWorld(a, b, 0))
	return core.NewRay(origin, c.frame.W.Negate())
}

// Frame returns the camera's position and orientation
func (c *OrthographicCamera) Frame() core.Frame { return c.frame }

// Width returns the horizontal resolution
func (c *OrthographicCamera) Width() int { return c.config.Width }

// Height returns the vertical resolution
func (c *OrthographicCamera) Height() int { return c.config.Height }

// Config returns the parameters the camera was built from
func (c *OrthographicCamera) Config() CameraConfig { return c.config }

func newCameraFrame(config CameraConfig) (core.Frame, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return core.Frame{}, xerrors.Errorf("camera resolution must be positive, got %dx%d", config.Width, config.Height)
	}
	frame, ok := core.NewFrame(config.Position, config.Focus, config.Up)
	if !ok {
		return core.Frame{}, xerrors.Errorf("camera at %v looking at %v with up %v has no valid orientation",
			config.Position, config.Focus, config.Up)
	}
	return frame, nil
}
