package renderer

import (
	"Horizon3D/internal/logger"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// VulkanBackend is the Vulkan implementation of Backend. Resource handles are
// declared but the upload paths are not wired up yet, so every acquire fails
// cleanly and callers fall back to their rollback paths.
//
// TODO: implement cubemap image upload once the Vulkan swapchain work in the
// engine package lands.
type VulkanBackend struct {
	device vk.Device

	cubemapImages map[*Texture]vk.Image
	cubemapMemory map[*Texture]vk.DeviceMemory
	samplers      map[*TextureMap]vk.Sampler
}

var errVulkanNotImplemented = errors.New("vulkan backend: not implemented")

func NewVulkanBackend() *VulkanBackend {
	logger.Log.Warn("Vulkan backend selected; cubemap support is not implemented")
	return &VulkanBackend{
		cubemapImages: make(map[*Texture]vk.Image),
		cubemapMemory: make(map[*Texture]vk.DeviceMemory),
		samplers:      make(map[*TextureMap]vk.Sampler),
	}
}

func (b *VulkanBackend) CreateCubemapTexture(facePixels [6][]byte, texture *Texture) error {
	return errors.Wrapf(errVulkanNotImplemented, "create cubemap %q", texture.Name)
}

func (b *VulkanBackend) DestroyCubemapTexture(texture *Texture) {
	if texture == nil {
		return
	}
	delete(b.cubemapImages, texture)
	delete(b.cubemapMemory, texture)
}

func (b *VulkanBackend) AcquireTextureMapResources(m *TextureMap) error {
	return errors.Wrap(errVulkanNotImplemented, "acquire texture map resources")
}

func (b *VulkanBackend) ReleaseTextureMapResources(m *TextureMap) {
	if m == nil {
		return
	}
	delete(b.samplers, m)
}

func (b *VulkanBackend) AcquireShaderInstanceResources(shader *Shader, maps []*TextureMap) (InstanceID, error) {
	return 0, errors.Wrap(errVulkanNotImplemented, "acquire shader instance resources")
}

func (b *VulkanBackend) ReleaseShaderInstanceResources(shader *Shader, id InstanceID) {
	if shader == nil {
		return
	}
	shader.removeInstance(id)
}

func (b *VulkanBackend) DrawGeometry(data GeometryRenderData) error {
	return errors.Wrap(errVulkanNotImplemented, "draw geometry")
}
