package renderer

import (
	"Horizon3D/internal/logger"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// GLShaderSystem is the OpenGL implementation of ShaderSystem. Shaders are
// registered once at startup and addressed by id afterwards.
type GLShaderSystem struct {
	shadersByID map[ShaderID]*Shader
	idsByName   map[string]ShaderID
	nextID      ShaderID

	current       *Shader
	boundInstance *InstanceID
}

func NewGLShaderSystem() *GLShaderSystem {
	return &GLShaderSystem{
		shadersByID: make(map[ShaderID]*Shader),
		idsByName:   make(map[string]ShaderID),
		nextID:      1,
	}
}

// Register compiles the shader and adds it to the registry under its name.
// Registering the same name twice returns the existing id.
func (ss *GLShaderSystem) Register(shader Shader) (ShaderID, error) {
	if id, exists := ss.idsByName[shader.name]; exists {
		return id, nil
	}

	if err := shader.Compile(); err != nil {
		return 0, errors.Wrapf(err, "registering shader %q", shader.name)
	}

	id := ss.nextID
	ss.nextID++

	stored := shader
	ss.shadersByID[id] = &stored
	ss.idsByName[shader.name] = id

	logger.Log.Info("Shader registered", zap.String("shader", shader.name))
	return id, nil
}

func (ss *GLShaderSystem) GetIDByName(name string) (ShaderID, bool) {
	id, ok := ss.idsByName[name]
	return id, ok
}

func (ss *GLShaderSystem) GetByID(id ShaderID) *Shader {
	return ss.shadersByID[id]
}

func (ss *GLShaderSystem) UseByID(id ShaderID) error {
	shader, ok := ss.shadersByID[id]
	if !ok {
		return errors.Newf("unknown shader id %d", id)
	}
	shader.Use()
	ss.current = shader
	ss.boundInstance = nil
	return nil
}

// BindGlobals opens the global uniform scope of the shader. In GL this is
// only a sanity check that the shader is current; uniforms are set directly.
func (ss *GLShaderSystem) BindGlobals(shader *Shader) error {
	if ss.current != shader {
		return errors.New("shader must be current before binding globals")
	}
	return nil
}

func (ss *GLShaderSystem) SetUniformMat4(name string, value mgl32.Mat4) error {
	if ss.current == nil {
		return errors.New("no shader in use")
	}
	ss.current.SetMat4(name, value)
	return nil
}

// ApplyGlobal flushes global state. GL uniforms take effect immediately,
// so there is nothing left to flush.
func (ss *GLShaderSystem) ApplyGlobal() error {
	if ss.current == nil {
		return errors.New("no shader in use")
	}
	return nil
}

func (ss *GLShaderSystem) BindInstance(id InstanceID) error {
	if ss.current == nil {
		return errors.New("no shader in use")
	}
	if _, ok := ss.current.instanceMaps(id); !ok {
		return errors.Newf("shader %q has no instance %d", ss.current.name, id)
	}
	bound := id
	ss.boundInstance = &bound
	return nil
}

// ApplyInstance binds the bound instance's texture maps to texture units.
// The sampler uniform upload is skipped when needsUpdate is false, which is
// the case when the same frame already applied this instance.
func (ss *GLShaderSystem) ApplyInstance(needsUpdate bool) error {
	if ss.current == nil || ss.boundInstance == nil {
		return errors.New("no shader instance bound")
	}

	maps, ok := ss.current.instanceMaps(*ss.boundInstance)
	if !ok {
		return errors.Newf("instance %d vanished from shader %q", *ss.boundInstance, ss.current.name)
	}

	for unit, m := range maps {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		if m.Texture.IsCubemap {
			gl.BindTexture(gl.TEXTURE_CUBE_MAP, m.Texture.Handle)
		} else {
			gl.BindTexture(gl.TEXTURE_2D, m.Texture.Handle)
		}
		gl.BindSampler(uint32(unit), m.Sampler)
	}

	if needsUpdate {
		// Sampler uniforms only need to point at their units once per change.
		ss.current.SetInt("cubeMap", 0)
	}
	return nil
}

// Shutdown destroys every registered shader program.
func (ss *GLShaderSystem) Shutdown() {
	for _, shader := range ss.shadersByID {
		shader.Destroy()
	}
	ss.shadersByID = make(map[ShaderID]*Shader)
	ss.idsByName = make(map[string]ShaderID)
	ss.current = nil
	ss.boundInstance = nil
}
