package renderer

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	name           string
	vertexSource   string
	fragmentSource string
	program        uint32
	isCompiled     bool
	uniforms       *UniformCache

	// Per-instance resource slots, managed through the backend.
	instances    map[InstanceID][]*TextureMap
	nextInstance InstanceID
}

func (shader *Shader) Name() string {
	return shader.name
}

func (shader *Shader) IsValid() bool {
	return shader.vertexSource != "" && shader.fragmentSource != ""
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

// Compile builds and links the GL program. Compiling twice is a no-op.
func (shader *Shader) Compile() error {
	if shader.isCompiled {
		return nil
	}

	vertex, err := compileShaderStage(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return errors.Wrapf(err, "vertex stage of %q", shader.name)
	}
	fragment, err := compileShaderStage(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return errors.Wrapf(err, "fragment stage of %q", shader.name)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return errors.Newf("failed to link shader %q: %v", shader.name, infoLog)
	}

	shader.program = program
	shader.uniforms = NewUniformCache(program)
	shader.isCompiled = true
	return nil
}

func (shader *Shader) Destroy() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.program = 0
		shader.isCompiled = false
	}
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	if shader.uniforms != nil {
		shader.uniforms.SetMat4(name, value)
	}
}

func (shader *Shader) SetInt(name string, value int32) {
	if shader.uniforms != nil {
		shader.uniforms.SetInt(name, value)
	}
}

// addInstance registers a new per-instance resource slot holding the given
// texture maps and returns its id. Called by the backend.
func (shader *Shader) addInstance(maps []*TextureMap) InstanceID {
	if shader.instances == nil {
		shader.instances = make(map[InstanceID][]*TextureMap)
		shader.nextInstance = 1
	}
	id := shader.nextInstance
	shader.nextInstance++
	shader.instances[id] = append([]*TextureMap(nil), maps...)
	return id
}

// removeInstance drops an instance slot. Unknown ids are ignored.
func (shader *Shader) removeInstance(id InstanceID) {
	delete(shader.instances, id)
}

// instanceMaps returns the texture maps bound to an instance slot.
func (shader *Shader) instanceMaps(id InstanceID) ([]*TextureMap, bool) {
	maps, ok := shader.instances[id]
	return maps, ok
}

func compileShaderStage(source string, stage uint32) (uint32, error) {
	handle := gl.CreateShader(stage)
	csources, free := gl.Strs(source)
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(handle)
		return 0, errors.Newf("shader compile failed: %v", infoLog)
	}
	return handle, nil
}

var skyboxVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // Cube corner position

uniform mat4 projection;
uniform mat4 view;

out vec3 texDir; // Cubemap sampling direction

void main() {
    texDir = inPosition;

    // Drop the view translation so the sky never moves with the camera
    mat4 rotationOnly = mat4(mat3(view));

    vec4 pos = projection * rotationOnly * vec4(inPosition, 1.0);

    // Force depth to the far plane so the sky sits behind everything
    gl_Position = pos.xyww;
}
` + "\x00"

var skyboxFragmentShaderSource = `#version 330 core

in vec3 texDir;

uniform samplerCube cubeMap;

out vec4 FragColor;

void main() {
    FragColor = texture(cubeMap, texDir);
}
` + "\x00"

func InitSkyboxShader() Shader {
	return Shader{
		name:           SkyboxShaderName,
		vertexSource:   skyboxVertexShaderSource,
		fragmentSource: skyboxFragmentShaderSource,
	}
}
