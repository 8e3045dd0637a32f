package renderer

import (
	"os"
	"path/filepath"
	"sort"

	"Horizon3D/internal/logger"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// SkyboxShaderName is the registry name of the builtin skybox shader.
const SkyboxShaderName = "Shader.Builtin.Skybox"

// skyboxFaceExtensions are the image extensions Available accepts when
// scanning for complete skyboxes, in loader preference order.
var skyboxFaceExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// SkyboxConfig configures the skybox system.
type SkyboxConfig struct {
	// BasePath is the directory scanned by Available, e.g. "../assets/skyboxes".
	BasePath string

	// ShaderName overrides the shader looked up at init. Empty means
	// SkyboxShaderName.
	ShaderName string
}

// SkyboxSystem owns at most one loaded cubemap skybox and renders it.
// It is not safe for concurrent use; all calls belong on the render thread.
type SkyboxSystem struct {
	images   ImageLoader
	shaders  ShaderSystem
	backend  Backend
	geometry GeometrySystem

	basePath     string
	shaderID     ShaderID
	hasShader    bool
	cubeGeometry *Geometry

	// State of the currently loaded skybox. All of it is zero while unloaded.
	name       string
	loaded     bool
	cubemap    Texture
	cubemapMap TextureMap
	instance   *InstanceID

	// Frame tracking for the instance dirty flag. frameValid is false until
	// the first render after a load so the first frame always uploads.
	lastRenderedFrame uint64
	frameValid        bool
}

// NewSkyboxSystem creates the skybox system and its shared cube geometry.
// A missing skybox shader is not fatal: the system initializes but stays
// inert, matching the rest of the engine staying usable without a skybox.
func NewSkyboxSystem(config SkyboxConfig, images ImageLoader, shaders ShaderSystem, backend Backend, geometry GeometrySystem) (*SkyboxSystem, error) {
	s := &SkyboxSystem{
		images:   images,
		shaders:  shaders,
		backend:  backend,
		geometry: geometry,
		basePath: config.BasePath,
	}
	if s.basePath == "" {
		s.basePath = "../assets/skyboxes"
	}

	shaderName := config.ShaderName
	if shaderName == "" {
		shaderName = SkyboxShaderName
	}

	if id, ok := shaders.GetIDByName(shaderName); ok {
		s.shaderID = id
		s.hasShader = true
	} else {
		logger.Log.Warn("Skybox shader not found, skybox system will not function",
			zap.String("shader", shaderName))
		return s, nil
	}

	cube, err := geometry.AcquireFromConfig(skyboxCubeConfig(), true)
	if err != nil {
		return nil, errors.Wrap(err, "skybox cube geometry")
	}
	s.cubeGeometry = cube

	logger.Log.Info("Skybox system initialized", zap.String("basePath", s.basePath))
	return s, nil
}

// Load loads the named skybox. A currently loaded skybox is fully unloaded
// first, so a failed load always leaves the system with no skybox at all
// rather than a half-replaced one.
func (s *SkyboxSystem) Load(name string) error {
	if !s.hasShader {
		return errors.Mark(errors.New("skybox shader not available"), ErrResourceNotFound)
	}

	if s.loaded {
		s.Unload()
	}

	faces, err := s.fetchFaces(name)
	if err != nil {
		logger.Log.Error("Failed to load skybox", zap.String("skybox", name), zap.Error(err))
		return err
	}

	return s.commit(name, faces)
}

// LoadGenerated builds a procedural sky cubemap on the CPU and loads it
// through the same GPU path as Load.
func (s *SkyboxSystem) LoadGenerated(name string, config ProceduralSkyConfig) error {
	if !s.hasShader {
		return errors.Mark(errors.New("skybox shader not available"), ErrResourceNotFound)
	}

	if s.loaded {
		s.Unload()
	}

	faces := generateSkyFaces(config)
	return s.commit(name, faces)
}

// commit runs the GPU acquisition stages for an already fetched face set:
// cubemap texture, sampler map, shader instance. Failure at any stage tears
// down everything acquired in this attempt.
func (s *SkyboxSystem) commit(name string, faces *faceSet) error {
	if err := s.createCubemap(name, faces); err != nil {
		logger.Log.Error("Failed to create skybox cubemap", zap.String("skybox", name), zap.Error(err))
		return err
	}

	shader := s.shaders.GetByID(s.shaderID)
	if shader == nil {
		s.destroyCubemap()
		return errors.Mark(errors.New("skybox shader disappeared from registry"), ErrResourceNotFound)
	}

	id, err := s.backend.AcquireShaderInstanceResources(shader, []*TextureMap{&s.cubemapMap})
	if err != nil {
		logger.Log.Error("Failed to acquire skybox shader instance resources",
			zap.String("skybox", name), zap.Error(err))
		s.destroyCubemap()
		return errors.Mark(
			errors.Wrapf(err, "shader instance resources for skybox %q", name),
			ErrGPUResourceAcquisition)
	}

	s.instance = &id
	s.name = name
	s.loaded = true
	s.frameValid = false

	logger.Log.Info("Skybox loaded", zap.String("skybox", name),
		zap.Uint32("width", s.cubemap.Width), zap.Uint32("height", s.cubemap.Height))
	return nil
}

// Unload releases the current skybox's resources in reverse acquisition
// order: shader instance, sampler map, cubemap texture. A no-op when nothing
// is loaded.
func (s *SkyboxSystem) Unload() {
	if !s.loaded {
		return
	}

	if s.instance != nil {
		if shader := s.shaders.GetByID(s.shaderID); shader != nil {
			s.backend.ReleaseShaderInstanceResources(shader, *s.instance)
		}
		s.instance = nil
	}

	s.destroyCubemap()

	logger.Log.Info("Skybox unloaded", zap.String("skybox", s.name))
	s.name = ""
	s.loaded = false
	s.frameValid = false
}

// IsLoaded reports whether a skybox is currently loaded.
func (s *SkyboxSystem) IsLoaded() bool {
	return s.loaded
}

// CurrentName returns the loaded skybox's name, or "" when unloaded.
func (s *SkyboxSystem) CurrentName() string {
	return s.name
}

// Render draws the skybox cube. Call it first in the world pass. The view
// matrix is passed through unchanged; the shader strips its translation so
// the sky stays at infinity. A failure anywhere only skips this frame's
// skybox draw, it never unloads the skybox.
func (s *SkyboxSystem) Render(projection, view mgl32.Mat4, frameNumber uint64) {
	if !s.loaded || s.cubeGeometry == nil {
		return
	}

	if err := s.shaders.UseByID(s.shaderID); err != nil {
		logger.Log.Error("Failed to use skybox shader", zap.Error(err))
		return
	}

	shader := s.shaders.GetByID(s.shaderID)
	if shader == nil {
		return
	}

	if err := s.shaders.BindGlobals(shader); err != nil {
		logger.Log.Error("Failed to bind skybox shader globals", zap.Error(err))
		return
	}
	if err := s.shaders.SetUniformMat4("projection", projection); err != nil {
		logger.Log.Error("Failed to set skybox projection uniform", zap.Error(err))
		return
	}
	if err := s.shaders.SetUniformMat4("view", view); err != nil {
		logger.Log.Error("Failed to set skybox view uniform", zap.Error(err))
		return
	}
	if err := s.shaders.ApplyGlobal(); err != nil {
		logger.Log.Error("Failed to apply skybox global state", zap.Error(err))
		return
	}

	if s.instance == nil {
		return
	}
	if err := s.shaders.BindInstance(*s.instance); err != nil {
		logger.Log.Error("Failed to bind skybox shader instance", zap.Error(err))
		return
	}

	// Skip the descriptor/uniform upload when this frame already did it.
	needsUpdate := !s.frameValid || s.lastRenderedFrame != frameNumber
	if err := s.shaders.ApplyInstance(needsUpdate); err != nil {
		logger.Log.Error("Failed to apply skybox shader instance", zap.Error(err))
		return
	}
	s.lastRenderedFrame = frameNumber
	s.frameValid = true

	if err := s.backend.DrawGeometry(GeometryRenderData{
		Geometry: s.cubeGeometry,
		Model:    mgl32.Ident4(),
	}); err != nil {
		logger.Log.Error("Failed to draw skybox geometry", zap.Error(err))
	}
}

// Available scans the skybox base path and returns the names of every
// directory containing all six face images, sorted.
func (s *SkyboxSystem) Available() ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "scanning skybox directory %q", s.basePath)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if skyboxComplete(filepath.Join(s.basePath, entry.Name())) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// skyboxComplete reports whether dir contains an image for every face.
func skyboxComplete(dir string) bool {
	for _, face := range skyboxFaceNames {
		found := false
		for _, ext := range skyboxFaceExtensions {
			if _, err := os.Stat(filepath.Join(dir, face+ext)); err == nil {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Shutdown unloads any current skybox and releases the shared cube geometry.
func (s *SkyboxSystem) Shutdown() {
	s.Unload()
	if s.cubeGeometry != nil {
		s.geometry.Release(s.cubeGeometry)
		s.cubeGeometry = nil
	}
	s.hasShader = false
}

// skyboxCubeConfig describes the unit cube drawn for the sky. It is viewed
// from the inside, so each face winds counter-clockwise as seen from the
// cube's center. Positions only, no indices.
func skyboxCubeConfig() GeometryConfig {
	vertices := []float32{
		// -Z
		-1, -1, -1,
		1, -1, -1,
		1, 1, -1,
		1, 1, -1,
		-1, 1, -1,
		-1, -1, -1,
		// +Z
		-1, -1, 1,
		1, 1, 1,
		1, -1, 1,
		1, 1, 1,
		-1, -1, 1,
		-1, 1, 1,
		// -X
		-1, -1, -1,
		-1, 1, -1,
		-1, 1, 1,
		-1, 1, 1,
		-1, -1, 1,
		-1, -1, -1,
		// +X
		1, -1, -1,
		1, 1, 1,
		1, 1, -1,
		1, 1, 1,
		1, -1, -1,
		1, -1, 1,
		// -Y
		-1, -1, -1,
		1, -1, 1,
		1, -1, -1,
		1, -1, 1,
		-1, -1, -1,
		-1, -1, 1,
		// +Y
		-1, 1, -1,
		1, 1, -1,
		1, 1, 1,
		1, 1, 1,
		-1, 1, 1,
		-1, 1, -1,
	}

	return GeometryConfig{
		Name:        "skybox_cube",
		VertexSize:  3 * 4,
		VertexCount: 36,
		Vertices:    vertices,
	}
}
