package engine

import (
	"os"
	"testing"

	"Horizon3D/internal/logger"
	"Horizon3D/internal/renderer"

	"github.com/cockroachdb/errors"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// The Vulkan path has no GL context, so system init must not touch any GL
// entry point. Compiling the skybox shader here would call into an unloaded
// function pointer and crash before the loop starts.
func TestInitSystemsVulkanSkipsShaderCompile(t *testing.T) {
	config := DefaultConfig()
	config.RendererAPI = "vulkan"
	eng := New(config)

	if err := eng.initSystems(); err != nil {
		t.Fatalf("initSystems failed: %v", err)
	}

	if _, ok := eng.shaders.GetIDByName(renderer.SkyboxShaderName); ok {
		t.Error("skybox shader should not be registered without a GL context")
	}

	if eng.skybox == nil {
		t.Fatal("skybox system should still be constructed")
	}
	if eng.skybox.IsLoaded() {
		t.Error("skybox should start unloaded")
	}
}

func TestVulkanSkyboxLoadFailsCleanly(t *testing.T) {
	config := DefaultConfig()
	config.RendererAPI = "vulkan"
	eng := New(config)

	if err := eng.initSystems(); err != nil {
		t.Fatalf("initSystems failed: %v", err)
	}

	err := eng.skybox.Load("default")
	if err == nil {
		t.Fatal("expected load to fail without a skybox shader")
	}
	if !errors.Is(err, renderer.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
	if eng.skybox.IsLoaded() {
		t.Error("failed load must leave no skybox active")
	}
}
