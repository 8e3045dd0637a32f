package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformCache memoizes uniform locations for one linked program, so the
// per-frame setters skip the gl.GetUniformLocation round trip. A location of
// -1 (uniform absent or optimized out) is cached too and makes the setters
// silently do nothing, matching GL's own tolerance for location -1.
type UniformCache struct {
	program   uint32
	locations map[string]int32
}

func NewUniformCache(program uint32) *UniformCache {
	return &UniformCache{
		program:   program,
		locations: make(map[string]int32),
	}
}

// GetLocation returns the uniform's location, querying the program only on
// the first lookup of each name.
func (uc *UniformCache) GetLocation(name string) int32 {
	if loc, ok := uc.locations[name]; ok {
		return loc
	}

	loc := gl.GetUniformLocation(uc.program, gl.Str(name+"\x00"))
	uc.locations[name] = loc
	return loc
}

func (uc *UniformCache) SetFloat(name string, value float32) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.Uniform1f(loc, value)
	}
}

func (uc *UniformCache) SetVec3(name string, x, y, z float32) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.Uniform3f(loc, x, y, z)
	}
}

// SetInt also serves sampler uniforms, which bind texture units by index.
func (uc *UniformCache) SetInt(name string, value int32) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.Uniform1i(loc, value)
	}
}

func (uc *UniformCache) SetMat4(name string, value mgl32.Mat4) {
	if loc := uc.GetLocation(name); loc != -1 {
		gl.UniformMatrix4fv(loc, 1, false, &value[0])
	}
}

// Clear drops every cached location. Call after relinking the program,
// since relinking may reassign locations.
func (uc *UniformCache) Clear() {
	uc.locations = make(map[string]int32)
}
