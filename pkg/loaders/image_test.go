package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-implicit-raytracer/pkg/core"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// TestLoadImageTexture creates a test PNG and verifies loading
func TestLoadImageTexture(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.png")

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	texture, err := LoadImageTexture(testFile)
	if err != nil {
		t.Fatalf("LoadImageTexture failed: %v", err)
	}

	if texture.Width != 2 || texture.Height != 2 {
		t.Errorf("Expected 2x2 image, got %dx%d", texture.Width, texture.Height)
	}

	// Row-major, row 0 at the top
	want := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1),
	}
	if diff := cmp.Diff(want, texture.Pixels, cmpopts.EquateApprox(0, 0.01)); diff != "" {
		t.Errorf("Pixels mismatch (-want +got):\n%s", diff)
	}
}

// TestLoadImageTextureNotFound verifies error handling for missing files
func TestLoadImageTextureNotFound(t *testing.T) {
	if _, err := LoadImageTexture("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
