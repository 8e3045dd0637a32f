package renderer

import (
	"Horizon3D/internal/logger"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// geometryEntry tracks one uploaded mesh and its reference count.
type geometryEntry struct {
	geometry    *Geometry
	refCount    int
	autoRelease bool
}

// GeometryManager uploads meshes from configs and reference-counts them by
// name, so repeated acquires of the same config share one GPU mesh.
type GeometryManager struct {
	entries map[string]*geometryEntry
}

func NewGeometryManager() *GeometryManager {
	return &GeometryManager{
		entries: make(map[string]*geometryEntry),
	}
}

// AcquireFromConfig returns the mesh registered under config.Name, uploading
// it first if this is the initial acquire.
func (gm *GeometryManager) AcquireFromConfig(config GeometryConfig, autoRelease bool) (*Geometry, error) {
	if entry, exists := gm.entries[config.Name]; exists {
		entry.refCount++
		logger.Log.Debug("Geometry cache hit",
			zap.String("geometry", config.Name),
			zap.Int("refCount", entry.refCount))
		return entry.geometry, nil
	}

	if config.VertexCount == 0 || len(config.Vertices) == 0 {
		return nil, errors.Newf("geometry config %q has no vertices", config.Name)
	}

	geometry := &Geometry{
		Name:        config.Name,
		VertexCount: int32(config.VertexCount),
		IndexCount:  int32(len(config.Indices)),
	}

	gl.GenVertexArrays(1, &geometry.VAO)
	gl.BindVertexArray(geometry.VAO)

	gl.GenBuffers(1, &geometry.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, geometry.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(config.Vertices)*4, gl.Ptr(config.Vertices), gl.STATIC_DRAW)

	if len(config.Indices) > 0 {
		gl.GenBuffers(1, &geometry.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, geometry.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(config.Indices)*4, gl.Ptr(config.Indices), gl.STATIC_DRAW)
	}

	// Position-only layout; meshes with richer layouts set up their own
	// attributes after acquisition.
	stride := int32(config.VertexSize)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	gm.entries[config.Name] = &geometryEntry{
		geometry:    geometry,
		refCount:    1,
		autoRelease: autoRelease,
	}

	logger.Log.Info("Geometry uploaded",
		zap.String("geometry", config.Name),
		zap.Int("vertexCount", config.VertexCount),
		zap.Int("indexCount", len(config.Indices)))
	return geometry, nil
}

// Release drops one reference. When the count reaches zero and the mesh was
// acquired with autoRelease, its GPU buffers are freed.
func (gm *GeometryManager) Release(g *Geometry) {
	if g == nil {
		return
	}

	entry, exists := gm.entries[g.Name]
	if !exists {
		logger.Log.Warn("Attempted to release unknown geometry", zap.String("geometry", g.Name))
		return
	}

	entry.refCount--
	if entry.refCount > 0 || !entry.autoRelease {
		return
	}

	gm.destroy(entry.geometry)
	delete(gm.entries, g.Name)
	logger.Log.Info("Geometry freed", zap.String("geometry", g.Name))
}

// Clear frees every mesh regardless of reference counts (shutdown path).
func (gm *GeometryManager) Clear() {
	for name, entry := range gm.entries {
		gm.destroy(entry.geometry)
		delete(gm.entries, name)
	}
	logger.Log.Info("Geometry manager cleared")
}

func (gm *GeometryManager) destroy(g *Geometry) {
	gl.DeleteVertexArrays(1, &g.VAO)
	gl.DeleteBuffers(1, &g.VBO)
	if g.EBO != 0 {
		gl.DeleteBuffers(1, &g.EBO)
	}
	g.VAO, g.VBO, g.EBO = 0, 0, 0
}
