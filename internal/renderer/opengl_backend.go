package renderer

import (
	"Horizon3D/internal/logger"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// OpenGLBackend implements Backend on top of OpenGL 4.1 core.
type OpenGLBackend struct{}

func NewOpenGLBackend() *OpenGLBackend {
	return &OpenGLBackend{}
}

func (b *OpenGLBackend) CreateCubemapTexture(facePixels [6][]byte, texture *Texture) error {
	if texture.Width == 0 || texture.Height == 0 {
		return errors.Newf("cubemap %q has zero dimensions", texture.Name)
	}

	internalFormat, format, err := glFormats(texture.ChannelCount)
	if err != nil {
		return errors.Wrapf(err, "cubemap %q", texture.Name)
	}

	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, handle)

	for i := 0; i < 6; i++ {
		expected := int(texture.Width) * int(texture.Height) * int(texture.ChannelCount)
		if len(facePixels[i]) != expected {
			gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
			gl.DeleteTextures(1, &handle)
			return errors.Newf("cubemap %q face %d has %d bytes, want %d",
				texture.Name, i, len(facePixels[i]), expected)
		}
		gl.TexImage2D(
			uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+i),
			0,
			internalFormat,
			int32(texture.Width),
			int32(texture.Height),
			0,
			format,
			gl.UNSIGNED_BYTE,
			gl.Ptr(facePixels[i]))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	texture.Handle = handle
	texture.IsCubemap = true
	texture.Generation = 0

	logger.Log.Info("Cubemap texture created",
		zap.String("texture", texture.Name),
		zap.Uint32("width", texture.Width),
		zap.Uint32("height", texture.Height))
	return nil
}

func (b *OpenGLBackend) DestroyCubemapTexture(texture *Texture) {
	if texture == nil || texture.Handle == 0 {
		return
	}
	gl.DeleteTextures(1, &texture.Handle)
	logger.Log.Debug("Cubemap texture destroyed", zap.String("texture", texture.Name))
	texture.Handle = 0
	texture.Generation = -1
}

func (b *OpenGLBackend) AcquireTextureMapResources(m *TextureMap) error {
	var sampler uint32
	gl.GenSamplers(1, &sampler)
	if sampler == 0 {
		return errors.New("failed to allocate sampler object")
	}

	gl.SamplerParameteri(sampler, gl.TEXTURE_MIN_FILTER, glFilter(m.MinFilter))
	gl.SamplerParameteri(sampler, gl.TEXTURE_MAG_FILTER, glFilter(m.MagFilter))
	gl.SamplerParameteri(sampler, gl.TEXTURE_WRAP_S, glRepeat(m.RepeatU))
	gl.SamplerParameteri(sampler, gl.TEXTURE_WRAP_T, glRepeat(m.RepeatV))
	gl.SamplerParameteri(sampler, gl.TEXTURE_WRAP_R, glRepeat(m.RepeatW))

	m.Sampler = sampler
	return nil
}

func (b *OpenGLBackend) ReleaseTextureMapResources(m *TextureMap) {
	if m == nil || m.Sampler == 0 {
		return
	}
	gl.DeleteSamplers(1, &m.Sampler)
	m.Sampler = 0
}

func (b *OpenGLBackend) AcquireShaderInstanceResources(shader *Shader, maps []*TextureMap) (InstanceID, error) {
	if shader == nil || !shader.IsValid() {
		return 0, errors.New("cannot acquire instance resources on an invalid shader")
	}
	for _, m := range maps {
		if m == nil || m.Texture == nil || m.Texture.Handle == 0 {
			return 0, errors.Newf("shader %q instance references an unuploaded texture", shader.Name())
		}
	}
	return shader.addInstance(maps), nil
}

func (b *OpenGLBackend) ReleaseShaderInstanceResources(shader *Shader, id InstanceID) {
	if shader == nil {
		return
	}
	shader.removeInstance(id)
}

func (b *OpenGLBackend) DrawGeometry(data GeometryRenderData) error {
	if data.Geometry == nil || data.Geometry.VAO == 0 {
		return errors.New("draw requested with no geometry bound")
	}

	gl.BindVertexArray(data.Geometry.VAO)
	if data.Geometry.IndexCount > 0 {
		gl.DrawElements(gl.TRIANGLES, data.Geometry.IndexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, data.Geometry.VertexCount)
	}
	gl.BindVertexArray(0)
	return nil
}

func glFormats(channelCount uint8) (int32, uint32, error) {
	switch channelCount {
	case 3:
		return gl.RGB8, gl.RGB, nil
	case 4:
		return gl.RGBA8, gl.RGBA, nil
	default:
		return 0, 0, errors.Newf("unsupported channel count %d", channelCount)
	}
}

func glFilter(mode TextureFilterMode) int32 {
	if mode == FilterNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func glRepeat(mode TextureRepeat) int32 {
	switch mode {
	case RepeatWrap:
		return gl.REPEAT
	case RepeatMirrored:
		return gl.MIRRORED_REPEAT
	default:
		return gl.CLAMP_TO_EDGE
	}
}
