package material

import (
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
)

// CheckerTexture alternates two colors on a grid. With Solid set the grid is
// laid out in world space (cells of size Scale), otherwise in UV space
// (Scale cells per unit of u and v).
type CheckerTexture struct {
	Even  core.Vec3
	Odd   core.Vec3
	Scale float64
	Solid bool
}

// NewCheckerTexture creates a UV-space checkerboard with cells per unit
func NewCheckerTexture(cells float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Scale: cells}
}

// NewSolidCheckerTexture creates a world-space checkerboard with the given
// cell size
func NewSolidCheckerTexture(cellSize float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Scale: cellSize, Solid: true}
}

// Evaluate returns Even or Odd depending on the cell containing uv or point
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if c.Scale <= 0 {
		return c.Even
	}

	var sum int
	if c.Solid {
		sum = int(math.Floor(point.X/c.Scale)) +
			int(math.Floor(point.Y/c.Scale)) +
			int(math.Floor(point.Z/c.Scale))
	} else {
		sum = int(math.Floor(uv.X*c.Scale)) + int(math.Floor(uv.Y*c.Scale))
	}

	if sum%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// NewCheckerboardImage rasterizes a checkerboard into an image texture
func NewCheckerboardImage(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}

	return NewImageTexture(width, height, pixels)
}

// NewGradientTexture creates a vertical gradient from top (v=1) to bottom (v=0)
func NewGradientTexture(width, height int, top, bottom core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		c := top.Lerp(bottom, t)
		for x := 0; x < width; x++ {
			pixels[y*width+x] = c
		}
	}

	return NewImageTexture(width, height, pixels)
}
