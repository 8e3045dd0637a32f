package renderer

import (
	"fmt"

	"Horizon3D/internal/logger"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Skybox face names in cubemap order: +X, -X, +Y, -Y, +Z, -Z.
var skyboxFaceNames = [6]string{"right", "left", "top", "bottom", "front", "back"}

// faceSet holds the pixel copies for the six faces of one cubemap.
// All faces share the same dimensions and channel count.
type faceSet struct {
	width    uint32
	height   uint32
	channels uint8
	pixels   [6][]byte
}

// fetchFaces loads the six face images of a skybox through the image loader.
// Face 0 establishes the reference dimensions; the remaining faces must match
// exactly. Loader resources are returned as soon as their pixels have been
// copied, so no loader-owned memory survives this call, success or failure.
func (s *SkyboxSystem) fetchFaces(skyboxName string) (*faceSet, error) {
	var faces faceSet

	for i, faceName := range skyboxFaceNames {
		// The image loader resolves names against the textures root, so go
		// up one level to reach the skyboxes directory.
		resourceName := fmt.Sprintf("../skyboxes/%s/%s", skyboxName, faceName)

		img, err := s.images.Load(resourceName)
		if err != nil {
			logger.Log.Error("Failed to load skybox face",
				zap.String("skybox", skyboxName),
				zap.String("face", faceName),
				zap.Error(err))
			return nil, errors.Mark(
				errors.Wrapf(err, "skybox %q face %q", skyboxName, faceName),
				ErrResourceNotFound)
		}

		if i == 0 {
			faces.width = img.Width
			faces.height = img.Height
			faces.channels = img.ChannelCount
		} else if img.Width != faces.width || img.Height != faces.height || img.ChannelCount != faces.channels {
			logger.Log.Error("Skybox face dimensions differ from first face",
				zap.String("skybox", skyboxName),
				zap.String("face", faceName),
				zap.Uint32("width", img.Width),
				zap.Uint32("height", img.Height),
				zap.Uint8("channels", img.ChannelCount))
			s.images.Unload(img)
			return nil, errors.Mark(
				errors.Newf("skybox %q face %q is %dx%dx%d, expected %dx%dx%d",
					skyboxName, faceName,
					img.Width, img.Height, img.ChannelCount,
					faces.width, faces.height, faces.channels),
				ErrDimensionMismatch)
		}

		// Copy the pixels into our own buffer and hand the resource back
		// to the loader right away.
		faces.pixels[i] = append([]byte(nil), img.Pixels...)
		s.images.Unload(img)
	}

	return &faces, nil
}
