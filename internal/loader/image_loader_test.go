package loader

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"Horizon3D/internal/logger"
	"Horizon3D/internal/renderer"

	"github.com/cockroachdb/errors"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageLoaderLoad(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "stone.png"), 4, 3)

	loader := NewImageLoader(root)
	img, err := loader.Load("stone.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if img.Width != 4 || img.Height != 3 {
		t.Errorf("image is %dx%d, want 4x3", img.Width, img.Height)
	}
	if img.ChannelCount != 4 {
		t.Errorf("channels = %d, want 4", img.ChannelCount)
	}
	if len(img.Pixels) != 4*3*4 {
		t.Errorf("pixel buffer is %d bytes, want %d", len(img.Pixels), 4*3*4)
	}
}

func TestImageLoaderExtensionSearch(t *testing.T) {
	root := t.TempDir()
	skyDir := filepath.Join(root, "..", "skyboxes", "test")
	if err := os.MkdirAll(skyDir, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(skyDir, "right.png"), 2, 2)

	loader := NewImageLoader(root)
	img, err := loader.Load("../skyboxes/test/right")
	if err != nil {
		t.Fatalf("Load without extension failed: %v", err)
	}
	if img.Width != 2 || img.Height != 2 {
		t.Errorf("image is %dx%d, want 2x2", img.Width, img.Height)
	}
}

func TestImageLoaderMissingResource(t *testing.T) {
	loader := NewImageLoader(t.TempDir())

	_, err := loader.Load("does-not-exist")
	if err == nil {
		t.Fatal("Load should fail for a missing resource")
	}
	if !errors.Is(err, renderer.ErrResourceNotFound) {
		t.Errorf("error should be marked as resource-not-found: %v", err)
	}
}

func TestImageLoaderUnload(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "stone.png"), 2, 2)

	loader := NewImageLoader(root)
	img, err := loader.Load("stone.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	loader.Unload(img)
	if img.Pixels != nil {
		t.Error("Unload should release the pixel buffer")
	}

	loader.Unload(nil) // must not panic
}
