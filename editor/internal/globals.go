package editor

import (
	"Horizon3D/editor/platforms"
	"Horizon3D/editor/renderers"
	"Horizon3D/internal/engine"
	"Horizon3D/internal/renderer"
	"time"
)

var (
	Eng           *engine.Engine
	Platform      *platforms.GLFW
	ImguiRenderer *renderers.OpenGL3

	ShowEnvironment = true
	ShowCamera      = false
	ShowDemoWindow  = false

	ImguiInitialized = false

	// Environment panel state
	availableSkyboxes    = []string{}
	selectedSkyboxIndex  = -1
	skyboxListError      = ""
	skyboxScanRequested  = true
	proceduralName       = "generated"
	proceduralConfig     = renderer.DefaultProceduralSkyConfig()
	proceduralHorizon    = [3]float32{}
	proceduralZenith     = [3]float32{}
	proceduralSeed       = int32(0)
	proceduralFaceSize   = int32(0)
	proceduralDensity    = float32(0)
	proceduralScale      = float32(0)
	proceduralStateReady = false

	frameCount    = 0
	fps           = 0.0
	fpsUpdateTime = time.Now()

	configPath = "editor_config.json"
)
