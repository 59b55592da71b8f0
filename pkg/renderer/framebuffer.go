package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// FrameBuffer is a grid of colors addressed with the origin at the
// bottom-left, y increasing upward, matching camera pixel coordinates. It is
// backed by an image.RGBA whose row 0 is the top of the picture.
type FrameBuffer struct {
	img        *image.RGBA
	clearColor core.Vec3
	presenter  Presenter
}

// NewFrameBuffer creates a black framebuffer. presenter may be nil, in which
// case ShowColorBuffer does nothing.
func NewFrameBuffer(width, height int, presenter Presenter) *FrameBuffer {
	return &FrameBuffer{
		img:       image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		presenter: presenter,
	}
}

// Width returns the framebuffer width in pixels
func (fb *FrameBuffer) Width() int { return fb.img.Rect.Dx() }

// Height returns the framebuffer height in pixels
func (fb *FrameBuffer) Height() int { return fb.img.Rect.Dy() }

// Image returns the backing image
func (fb *FrameBuffer) Image() *image.RGBA { return fb.img }

// SetPresenter replaces the presenter used by ShowColorBuffer
func (fb *FrameBuffer) SetPresenter(p Presenter) { fb.presenter = p }

// SetClearColor sets the color used by ClearColorBuffer
func (fb *FrameBuffer) SetClearColor(c core.Vec3) {
	fb.clearColor = c
}

// ClearColorBuffer fills every pixel with the clear color
func (fb *FrameBuffer) ClearColorBuffer() {
	c := vec3ToColor(fb.clearColor)
	for i := 0; i < len(fb.img.Pix); i += 4 {
		fb.img.Pix[i+0] = c.R
		fb.img.Pix[i+1] = c.G
		fb.img.Pix[i+2] = c.B
		fb.img.Pix[i+3] = c.A
	}
}

// SetFrameBufferSize reallocates the buffer. Contents are cleared to the
// clear color.
func (fb *FrameBuffer) SetFrameBufferSize(width, height int) {
	if width == fb.Width() && height == fb.Height() {
		return
	}
	fb.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	fb.ClearColorBuffer()
}

// SetColor stores c, clamped to [0,1], at (x, y). Out of range coordinates
// are ignored.
func (fb *FrameBuffer) SetColor(x, y int, c core.Vec3) {
	if !fb.inBounds(x, y) {
		return
	}
	fb.img.SetRGBA(x, fb.Height()-1-y, vec3ToColor(c))
}

// ColorAt returns the stored color at (x, y) with channels in [0,1]
func (fb *FrameBuffer) ColorAt(x, y int) core.Vec3 {
	if !fb.inBounds(x, y) {
		return core.Vec3{}
	}
	c := fb.img.RGBAAt(x, fb.Height()-1-y)
	return core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
}

// ShowColorBuffer hands the finished frame to the presenter
func (fb *FrameBuffer) ShowColorBuffer() error {
	if fb.presenter == nil {
		return nil
	}
	return fb.presenter.Present(fb.img)
}

func (fb *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width() && y < fb.Height()
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and rounding
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
