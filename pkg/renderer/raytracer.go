package renderer

import (
	"runtime"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/material"
	"github.com/df07/go-implicit-raytracer/pkg/object"
	"github.com/df07/go-implicit-raytracer/pkg/scene"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// MaxSupersampling is the largest accepted N (N² rays per pixel)
const MaxSupersampling = 16

var (
	// ErrInvalidSupersampling is returned when N is outside [1, MaxSupersampling]
	ErrInvalidSupersampling = xerrors.New("invalid supersampling factor")
	// ErrSizeMismatch is returned when the camera and framebuffer disagree on resolution
	ErrSizeMismatch = xerrors.New("camera resolution does not match framebuffer")
	// ErrNoCamera is returned for a scene without a camera
	ErrNoCamera = xerrors.New("scene has no camera")
)

// RayTracer renders scenes with Phong shading, shadows and transparency
// layering
type RayTracer struct {
	DefaultColor core.Vec3   // Clear color, and the color seen by rays that hit nothing
	Workers      int         // Rows rendered concurrently; <= 0 means one per CPU
	Logger       core.Logger // Logger for rendering output
}

// NewRayTracer creates a ray tracer with the given default color
func NewRayTracer(defaultColor core.Vec3) *RayTracer {
	return &RayTracer{
		DefaultColor: defaultColor,
		Workers:      runtime.NumCPU(),
		Logger:       core.NopLogger{},
	}
}

// RaytraceScene renders sc into fb using N² rays per pixel on a regular
// grid, then presents the buffer. depth is the number of reflection bounces
// followed for reflective materials. The framebuffer must match the camera
// resolution.
func (rt *RayTracer) RaytraceScene(fb *FrameBuffer, depth int, sc *scene.Scene, n int) (RenderStats, error) {
	if n < 1 || n > MaxSupersampling {
		return RenderStats{}, xerrors.Errorf("N=%d not in [1, %d]: %w", n, MaxSupersampling, ErrInvalidSupersampling)
	}
	if sc == nil || sc.Camera == nil {
		return RenderStats{}, ErrNoCamera
	}
	camera := sc.Camera
	if camera.Width() != fb.Width() || camera.Height() != fb.Height() {
		return RenderStats{}, xerrors.Errorf("camera %dx%d, framebuffer %dx%d: %w",
			camera.Width(), camera.Height(), fb.Width(), fb.Height(), ErrSizeMismatch)
	}

	startTime := time.Now()
	workers := rt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	fb.SetClearColor(rt.DefaultColor)
	fb.ClearColorBuffer()

	offsets := subPixelOffsets(n)
	weight := 1.0 / float64(n*n)

	// Each row is owned by one goroutine; rows never share pixels
	rowStats := make([]RenderStats, fb.Height())
	var g errgroup.Group
	g.SetLimit(workers)
	for y := 0; y < fb.Height(); y++ {
		y := y // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			st := &rowStats[y]
			for x := 0; x < fb.Width(); x++ {
				var pixel core.Vec3
				for _, o := range offsets {
					ray := camera.GetRay(float64(x)+o.X, float64(y)+o.Y)
					pixel = pixel.Add(rt.trace(ray, sc, depth, st).Multiply(weight))
				}
				fb.SetColor(x, y, pixel)
				st.TotalPixels++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RenderStats{}, err
	}

	stats := RenderStats{Supersampling: n, Workers: workers}
	for _, st := range rowStats {
		stats.add(st)
	}
	stats.Duration = time.Since(startTime)
	rt.Logger.Printf("Rendered %v", stats)

	if err := fb.ShowColorBuffer(); err != nil {
		return stats, xerrors.Errorf("while presenting frame: %w", err)
	}
	return stats, nil
}

// TraceIndividualRay returns the color seen along ray, following at most
// recursionLevel-1 reflection bounces. A level of zero or less yields black.
func (rt *RayTracer) TraceIndividualRay(ray core.Ray, sc *scene.Scene, recursionLevel int) core.Vec3 {
	if recursionLevel <= 0 {
		return material.Black
	}
	return rt.trace(ray, sc, recursionLevel-1, nil)
}

// subPixelOffsets returns the centers of an N x N grid over the unit pixel
func subPixelOffsets(n int) []core.Vec2 {
	offsets := make([]core.Vec2, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			offsets = append(offsets, core.NewVec2((float64(i)+0.5)/float64(n), (float64(j)+0.5)/float64(n)))
		}
	}
	return offsets
}

// trace composites the opaque and transparent hits along one ray. st may be
// nil.
func (rt *RayTracer) trace(ray core.Ray, sc *scene.Scene, depth int, st *RenderStats) core.Vec3 {
	if st != nil {
		st.TotalRays++
	}
	if len(sc.Lights) == 0 {
		return rt.DefaultColor
	}

	opaqueHit := object.FindOpaqueIntersection(ray, sc.OpaqueObjs)
	transHit := object.FindTransparentIntersection(ray, sc.TransparentObjs)
	if st != nil {
		if opaqueHit.Hit() {
			st.OpaqueHits++
		}
		if transHit.Hit() {
			st.TransparentHits++
		}
	}

	if !opaqueHit.Hit() {
		if !transHit.Hit() {
			return rt.DefaultColor
		}
		return overlay(rt.DefaultColor, transHit)
	}

	// Shade the side of the surface facing the viewer
	if ray.Direction.Dot(opaqueHit.Normal) > 0 {
		opaqueHit.Normal = opaqueHit.Normal.Negate()
	}

	surface := rt.shade(opaqueHit, sc, st)
	if opaqueHit.Texture != nil {
		texel := opaqueHit.Texture.Evaluate(core.NewVec2(opaqueHit.U, opaqueHit.V), opaqueHit.Point)
		surface = surface.Multiply(0.5).Add(texel.Multiply(0.5))
	}
	if r := opaqueHit.Material.Reflectivity; r > 0 && depth > 0 {
		reflected := core.NewRay(
			core.MovePointOffSurface(opaqueHit.Point, opaqueHit.Normal),
			ray.Direction.Reflect(opaqueHit.Normal))
		surface = surface.Lerp(rt.trace(reflected, sc, depth-1, st), r)
	}

	if transHit.Hit() && transHit.T < opaqueHit.T {
		return overlay(surface, transHit)
	}
	return surface
}

// shade sums the clamped contribution of every light at an opaque hit
func (rt *RayTracer) shade(hit object.OpaqueHitRecord, sc *scene.Scene, st *RenderStats) core.Vec3 {
	var eye core.Frame
	if sc.Camera != nil {
		eye = sc.Camera.Frame()
	}
	var total core.Vec3
	for _, light := range sc.Lights {
		inShadow := light.PointIsInShadow(hit.Point, hit.Normal, sc.OpaqueObjs, eye)
		if st != nil {
			st.ShadowRays++
		}
		c := light.Illuminate(hit.Point, hit.Normal, hit.Material, eye, inShadow)
		total = total.Add(c.Clamp(0, 1))
	}
	return total
}

// overlay alpha-blends a transparent hit over the color behind it
func overlay(behind core.Vec3, hit object.TransparentHitRecord) core.Vec3 {
	return behind.Multiply(1 - hit.Alpha).Add(hit.Color.Multiply(hit.Alpha)).Clamp(0, 1)
}
