package loaders

import (
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-implicit-raytracer/pkg/material"
	"golang.org/x/xerrors"
)

// LoadImageTexture loads a PNG or JPEG image as a texture
func LoadImageTexture(filename string) (*material.ImageTexture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, xerrors.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode image %s: %w", filename, err)
	}

	return material.NewImageTextureFromImage(img), nil
}
