package loader

import (
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"Horizon3D/internal/logger"
	"Horizon3D/internal/renderer"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
)

// imageExtensions is the search order when a resource name carries no
// file extension.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// ImageLoader resolves resource names against a textures root directory and
// decodes them to tightly packed RGBA pixel data.
type ImageLoader struct {
	texturesRoot string
}

func NewImageLoader(texturesRoot string) *ImageLoader {
	return &ImageLoader{texturesRoot: texturesRoot}
}

// Load decodes the named image resource. Names are resolved relative to the
// textures root, so "../skyboxes/default/right" walks out of it by design.
// When the name has no extension, known image extensions are tried in order.
func (l *ImageLoader) Load(resourceName string) (*renderer.ImageData, error) {
	path, err := l.resolve(resourceName)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open image %q", path)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %q", path)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	logger.Log.Debug("Image loaded",
		zap.String("resource", resourceName),
		zap.String("format", format),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()))

	return &renderer.ImageData{
		Width:        uint32(bounds.Dx()),
		Height:       uint32(bounds.Dy()),
		ChannelCount: 4,
		Pixels:       rgba.Pix,
	}, nil
}

// Unload releases the decoded pixel data.
func (l *ImageLoader) Unload(img *renderer.ImageData) {
	if img == nil {
		return
	}
	img.Pixels = nil
}

func (l *ImageLoader) resolve(resourceName string) (string, error) {
	base := filepath.Join(l.texturesRoot, filepath.FromSlash(resourceName))

	if filepath.Ext(base) != "" {
		if _, err := os.Stat(base); err != nil {
			return "", errors.Mark(errors.Wrapf(err, "image resource %q", resourceName), renderer.ErrResourceNotFound)
		}
		return base, nil
	}

	for _, ext := range imageExtensions {
		candidate := base + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Mark(
		errors.Newf("image resource %q not found under %q", resourceName, l.texturesRoot),
		renderer.ErrResourceNotFound)
}
