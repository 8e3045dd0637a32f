package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing config should not be an error: %v", err)
	}

	defaults := DefaultConfig()
	if config != defaults {
		t.Errorf("config = %+v, want defaults %+v", config, defaults)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine_config.json")

	saved := Config{
		WindowWidth:    1920,
		WindowHeight:   1080,
		RendererAPI:    "vulkan",
		TexturesPath:   "assets/textures",
		SkyboxBasePath: "assets/skyboxes",
		StartupSkybox:  "ocean",
	}
	if err := SaveConfig(path, saved); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded != saved {
		t.Errorf("loaded %+v, want %+v", loaded, saved)
	}
}

func TestLoadConfigCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine_config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err == nil {
		t.Error("corrupt config should return an error")
	}
	if config != DefaultConfig() {
		t.Error("corrupt config should fall back to defaults")
	}
}

func TestAPIFromString(t *testing.T) {
	if apiFromString("vulkan") != VULKAN {
		t.Error(`"vulkan" should select the Vulkan backend`)
	}
	if apiFromString("opengl") != OPENGL {
		t.Error(`"opengl" should select the OpenGL backend`)
	}
	if apiFromString("") != OPENGL {
		t.Error("unknown values should fall back to OpenGL")
	}
}
