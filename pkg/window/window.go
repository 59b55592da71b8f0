package window

import (
	"image"
	"math"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/df07/go-implicit-raytracer/pkg/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyActions maps keys to viewer actions
var keyActions = map[ebiten.Key]viewer.Action{
	ebiten.KeyArrowLeft:  viewer.ActionOrbitLeft,
	ebiten.KeyArrowRight: viewer.ActionOrbitRight,
	ebiten.KeyArrowUp:    viewer.ActionMoveCloser,
	ebiten.KeyArrowDown:  viewer.ActionMoveAway,
	ebiten.KeyEqual:      viewer.ActionNarrowFOV,
	ebiten.KeyKPAdd:      viewer.ActionNarrowFOV,
	ebiten.KeyMinus:      viewer.ActionWidenFOV,
	ebiten.KeyKPSubtract: viewer.ActionWidenFOV,
	ebiten.KeyS:          viewer.ActionCycleSupersampling,
}

// Presenter shows rendered frames in a desktop window. It is handed to the
// framebuffer, which calls Present from inside the game's Update.
type Presenter struct {
	frame *ebiten.Image
}

// Present uploads the finished frame to the window texture
func (p *Presenter) Present(img *image.RGBA) error {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if p.frame == nil || p.frame.Bounds().Dx() != w || p.frame.Bounds().Dy() != h {
		if p.frame != nil {
			p.frame.Deallocate()
		}
		p.frame = ebiten.NewImage(w, h)
	}
	p.frame.WritePixels(img.Pix)
	return nil
}

type game struct {
	v         *viewer.Viewer
	presenter *Presenter
	logger    core.Logger

	// Size reported by the last Layout call
	width, height int
}

// Run opens a window showing v and blocks until it is closed. Arrow keys
// orbit and dolly the camera, +/- zoom, S cycles supersampling and resizing
// the window re-renders at the new resolution.
func Run(v *viewer.Viewer, presenter *Presenter, title string, logger core.Logger) error {
	g := &game{
		v:         v,
		presenter: presenter,
		logger:    logger,
		width:     v.FrameBuffer.Width(),
		height:    v.FrameBuffer.Height(),
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(30)
	return ebiten.RunGame(g)
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if err := g.v.Resize(g.width, g.height); err != nil {
		return err
	}
	for key, action := range keyActions {
		if inpututil.IsKeyJustPressed(key) {
			if err := g.v.Apply(action); err != nil {
				return err
			}
		}
	}

	rendered, err := g.v.RenderIfDirty()
	if err != nil {
		return err
	}
	if rendered {
		g.logger.Printf("Eye %v, FOV %.1f°, N=%d: %v", g.v.Eye(), g.v.Scene.CameraConfig.FOV*180/math.Pi, g.v.N, g.v.LastStats)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.presenter.frame != nil {
		screen.DrawImage(g.presenter.frame, nil)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Resizing is applied in Update, outside the layout callback
	g.width, g.height = max(outsideWidth, 1), max(outsideHeight, 1)
	return g.width, g.height
}
