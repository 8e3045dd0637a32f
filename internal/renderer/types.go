package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TextureFilterMode selects min/mag filtering for a texture map.
type TextureFilterMode int

const (
	FilterLinear TextureFilterMode = iota
	FilterNearest
)

// TextureRepeat selects the addressing mode for one texture axis.
type TextureRepeat int

const (
	RepeatClampToEdge TextureRepeat = iota
	RepeatWrap
	RepeatMirrored
)

// Texture owns a single GPU texture object. The zero value is "no texture".
type Texture struct {
	Name         string
	Width        uint32
	Height       uint32
	ChannelCount uint8

	// Generation counts pixel uploads. -1 until the backend has uploaded
	// data, which forces dependent descriptor state to refresh on first use.
	Generation int

	// IsCubemap selects the GPU binding target.
	IsCubemap bool

	// Handle is the backend object id (OpenGL texture name). 0 when the
	// texture has not been created.
	Handle uint32
}

// TextureMap pairs a texture with its sampling parameters. The backend
// allocates sampler state for it via AcquireTextureMapResources.
type TextureMap struct {
	Texture   *Texture
	MinFilter TextureFilterMode
	MagFilter TextureFilterMode
	RepeatU   TextureRepeat
	RepeatV   TextureRepeat
	RepeatW   TextureRepeat

	// Sampler is the backend sampler object id, 0 while unacquired.
	Sampler uint32
}

// InstanceID identifies per-draw shader instance resources on a shader.
// Absence is represented by a nil *InstanceID, never by a magic value.
type InstanceID uint32

// GeometryConfig describes a mesh to be uploaded by the geometry system.
type GeometryConfig struct {
	Name        string
	VertexSize  int // bytes per vertex
	VertexCount int
	Vertices    []float32
	Indices     []uint32
}

// Geometry is a GPU-resident mesh managed by the geometry system.
type Geometry struct {
	Name        string
	VAO         uint32
	VBO         uint32
	EBO         uint32
	VertexCount int32
	IndexCount  int32
}

// GeometryRenderData is what a draw call needs: the mesh and its model matrix.
type GeometryRenderData struct {
	Geometry *Geometry
	Model    mgl32.Mat4
}

// ImageData is a decoded image as handed out by an image loader.
// Pixels are tightly packed rows, ChannelCount bytes per pixel.
type ImageData struct {
	Width        uint32
	Height       uint32
	ChannelCount uint8
	Pixels       []byte
}

// ImageLoader loads named image resources. Resource names are resolved by
// the loader against its textures root, so callers may use relative names
// like "../skyboxes/default/right".
type ImageLoader interface {
	Load(resourceName string) (*ImageData, error)
	Unload(img *ImageData)
}
