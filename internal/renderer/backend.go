package renderer

import "github.com/go-gl/mathgl/mgl32"

// Backend is the GPU service the high level systems talk to. It creates and
// destroys resources on request but never owns them; ownership stays with
// the calling system.
type Backend interface {
	// CreateCubemapTexture uploads six face images of identical dimensions
	// into a single cubemap. Texture metadata (width, height, channels)
	// must be populated by the caller before the call.
	CreateCubemapTexture(facePixels [6][]byte, texture *Texture) error

	// DestroyCubemapTexture frees the GPU object behind texture and resets
	// its handle. Destroying an empty texture is a no-op.
	DestroyCubemapTexture(texture *Texture)

	// AcquireTextureMapResources allocates sampler state matching the
	// map's filter and repeat settings.
	AcquireTextureMapResources(m *TextureMap) error

	// ReleaseTextureMapResources frees the map's sampler state. Releasing
	// an unacquired map is a no-op.
	ReleaseTextureMapResources(m *TextureMap)

	// AcquireShaderInstanceResources allocates a per-instance resource slot
	// on the shader, binding the given texture maps to it.
	AcquireShaderInstanceResources(shader *Shader, maps []*TextureMap) (InstanceID, error)

	// ReleaseShaderInstanceResources frees an instance slot. Unknown ids
	// are ignored.
	ReleaseShaderInstanceResources(shader *Shader, id InstanceID)

	// DrawGeometry issues one draw call for the given mesh and model matrix
	// using whatever shader state is currently applied.
	DrawGeometry(data GeometryRenderData) error
}

// ShaderID identifies a registered shader.
type ShaderID uint32

// ShaderSystem is the shader registry and uniform state interface consumed
// by render-time code.
type ShaderSystem interface {
	// GetIDByName looks up a shader registered under name. The second
	// return value reports whether it exists.
	GetIDByName(name string) (ShaderID, bool)

	// GetByID returns the shader for id, or nil if unknown.
	GetByID(id ShaderID) *Shader

	// UseByID makes the shader current for subsequent uniform and draw calls.
	UseByID(id ShaderID) error

	// BindGlobals prepares the shader's global (per-frame) resource scope.
	BindGlobals(shader *Shader) error

	// SetUniformMat4 sets a mat4 uniform on the current shader.
	SetUniformMat4(name string, value mgl32.Mat4) error

	// ApplyGlobal flushes global uniform state to the GPU.
	ApplyGlobal() error

	// BindInstance selects which instance resource slot subsequent
	// ApplyInstance calls affect.
	BindInstance(id InstanceID) error

	// ApplyInstance flushes instance state. When needsUpdate is false the
	// GPU-side upload is skipped and only cheap binding happens.
	ApplyInstance(needsUpdate bool) error
}

// GeometrySystem hands out GPU meshes by config and reference-counts them.
type GeometrySystem interface {
	// AcquireFromConfig uploads the described mesh (or returns an existing
	// one with the same name) and takes a reference. When autoRelease is
	// true the mesh is freed as soon as its last reference is released.
	AcquireFromConfig(config GeometryConfig, autoRelease bool) (*Geometry, error)

	// Release drops one reference to g.
	Release(g *Geometry)
}
