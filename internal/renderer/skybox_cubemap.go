package renderer

import (
	"Horizon3D/internal/logger"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// createCubemap builds the GPU cubemap texture and its sampler map from a
// fetched face set. On any failure everything created inside this call is
// destroyed again before the error is returned.
func (s *SkyboxSystem) createCubemap(name string, faces *faceSet) error {
	s.cubemap = Texture{
		Name:         name,
		Width:        faces.width,
		Height:       faces.height,
		ChannelCount: faces.channels,
		Generation:   -1, // forces the first instance update after load
	}

	if err := s.backend.CreateCubemapTexture(faces.pixels, &s.cubemap); err != nil {
		s.cubemap = Texture{}
		return errors.Mark(
			errors.Wrapf(err, "cubemap texture for skybox %q", name),
			ErrGPUResourceAcquisition)
	}

	// Linear filtering with clamp-to-edge on all three axes; anything else
	// produces visible seams between cube faces.
	s.cubemapMap = TextureMap{
		Texture:   &s.cubemap,
		MinFilter: FilterLinear,
		MagFilter: FilterLinear,
		RepeatU:   RepeatClampToEdge,
		RepeatV:   RepeatClampToEdge,
		RepeatW:   RepeatClampToEdge,
	}

	if err := s.backend.AcquireTextureMapResources(&s.cubemapMap); err != nil {
		logger.Log.Error("Failed to acquire texture map resources for skybox cubemap",
			zap.String("skybox", name), zap.Error(err))
		s.backend.DestroyCubemapTexture(&s.cubemap)
		s.cubemap = Texture{}
		s.cubemapMap = TextureMap{}
		return errors.Mark(
			errors.Wrapf(err, "texture map resources for skybox %q", name),
			ErrGPUResourceAcquisition)
	}

	return nil
}

// destroyCubemap releases the sampler map first and the texture after it,
// the reverse of acquisition order.
func (s *SkyboxSystem) destroyCubemap() {
	s.backend.ReleaseTextureMapResources(&s.cubemapMap)
	s.cubemapMap = TextureMap{}
	s.backend.DestroyCubemapTexture(&s.cubemap)
	s.cubemap = Texture{}
}
