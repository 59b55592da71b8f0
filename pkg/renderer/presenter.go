package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"golang.org/x/xerrors"
)

// Presenter displays or stores a finished frame
type Presenter interface {
	Present(img *image.RGBA) error
}

// PNGPresenter saves each presented frame as a timestamped PNG
type PNGPresenter struct {
	Dir    string
	Logger core.Logger

	// Path of the most recently written file
	LastPath string

	now func() time.Time
}

// NewPNGPresenter creates a presenter writing into dir
func NewPNGPresenter(dir string, logger core.Logger) *PNGPresenter {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &PNGPresenter{Dir: dir, Logger: logger, now: time.Now}
}

// Present writes img to <Dir>/render_<timestamp>.png
func (p *PNGPresenter) Present(img *image.RGBA) error {
	if err := os.MkdirAll(p.Dir, 0755); err != nil {
		return xerrors.Errorf("while creating output directory: %w", err)
	}

	now := time.Now
	if p.now != nil {
		now = p.now
	}
	filename := filepath.Join(p.Dir, fmt.Sprintf("render_%s.png", now().Format("20060102_150405")))

	file, err := os.Create(filename)
	if err != nil {
		return xerrors.Errorf("while creating %s: %w", filename, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return xerrors.Errorf("while encoding PNG: %w", err)
	}
	if err := file.Close(); err != nil {
		return xerrors.Errorf("while writing %s: %w", filename, err)
	}

	p.LastPath = filename
	p.Logger.Printf("Render saved as %s", filename)
	return nil
}
