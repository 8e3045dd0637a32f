package renderer

import (
	"testing"
)

func TestShaderInstanceSlots(t *testing.T) {
	shader := InitSkyboxShader()

	texture := &Texture{Name: "test", Handle: 1}
	tm := &TextureMap{Texture: texture}

	first := shader.addInstance([]*TextureMap{tm})
	second := shader.addInstance([]*TextureMap{tm})

	if first == second {
		t.Error("instance ids must be unique")
	}
	if first == 0 || second == 0 {
		t.Error("instance ids start at 1; zero is reserved")
	}

	maps, ok := shader.instanceMaps(first)
	if !ok || len(maps) != 1 || maps[0] != tm {
		t.Error("instance slot should hold its texture maps")
	}

	shader.removeInstance(first)
	if _, ok := shader.instanceMaps(first); ok {
		t.Error("removed instance should be gone")
	}
	if _, ok := shader.instanceMaps(second); !ok {
		t.Error("removing one instance must not affect others")
	}

	// Unknown ids are ignored
	shader.removeInstance(999)
}

func TestSkyboxShaderSources(t *testing.T) {
	shader := InitSkyboxShader()

	if shader.Name() != SkyboxShaderName {
		t.Errorf("shader name = %q, want %q", shader.Name(), SkyboxShaderName)
	}
	if !shader.IsValid() {
		t.Error("builtin skybox shader should carry both stages")
	}
}
