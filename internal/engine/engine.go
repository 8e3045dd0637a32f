package engine

import (
	"runtime"

	"Horizon3D/internal/behaviour"
	"Horizon3D/internal/loader"
	"Horizon3D/internal/logger"
	"Horizon3D/internal/renderer"

	mgl "github.com/go-gl/mathgl/mgl32"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// Initialize to the center of the window
var lastX, lastY float64
var firstMouse bool = true

// API selects the rendering backend.
type API int

const (
	OPENGL API = iota
	VULKAN
)

func apiFromString(s string) API {
	if s == "vulkan" {
		return VULKAN
	}
	return OPENGL
}

// Engine owns the window, the render systems and the frame loop.
type Engine struct {
	Width  int32
	Height int32

	Camera            *renderer.Camera
	EnableCameraInput bool
	Behaviours        *behaviour.Manager

	api      API
	config   Config
	window   *glfw.Window
	backend  renderer.Backend
	shaders  *renderer.GLShaderSystem
	geometry *renderer.GeometryManager
	images   *loader.ImageLoader
	skybox   *renderer.SkyboxSystem

	frameNumber uint64

	// Skybox requests are deferred until the GL context exists, so they can
	// be issued before Run (startup config) or from callbacks.
	pendingSkybox    string
	pendingGenerated *renderer.ProceduralSkyConfig
	pendingName      string

	onRenderCallback func(deltaTime float64)
}

func New(config Config) *Engine {
	logger.Init()
	logger.Log.Info("Horizon3D initializing...")

	return &Engine{
		Width:             config.WindowWidth,
		Height:            config.WindowHeight,
		api:               apiFromString(config.RendererAPI),
		config:            config,
		EnableCameraInput: true,
		Behaviours:        behaviour.NewManager(),
	}
}

// SetSkybox requests the named skybox. Before Run it records a startup
// request; once the loop is live the load happens on the next frame.
func (e *Engine) SetSkybox(name string) {
	e.pendingSkybox = name
}

// SetGeneratedSkybox requests a procedural skybox under the given name.
func (e *Engine) SetGeneratedSkybox(name string, config renderer.ProceduralSkyConfig) {
	e.pendingGenerated = &config
	e.pendingName = name
}

// SetOnRenderCallback sets a callback invoked each frame after the scene is
// rendered, used by the editor to draw its UI.
func (e *Engine) SetOnRenderCallback(callback func(deltaTime float64)) {
	e.onRenderCallback = callback
}

// Skybox returns the skybox system. It is nil until Run has initialized the
// render systems.
func (e *Engine) Skybox() *renderer.SkyboxSystem {
	return e.skybox
}

func (e *Engine) GetWindow() *glfw.Window {
	return e.window
}

func (e *Engine) GetMousePosition() mgl.Vec2 {
	x, y := e.window.GetCursorPos()
	return mgl.Vec2{float32(x), float32(y)}
}

func (e *Engine) IsMouseButtonPressed(button glfw.MouseButton) bool {
	return e.window.GetMouseButton(button) == glfw.Press
}

// Run opens the window at the given position and blocks in the frame loop
// until the window closes.
func (e *Engine) Run(x, y int) {
	lastX, lastY = float64(e.Width/2), float64(e.Height/2)
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Log.Error("Could not initialize glfw", zap.Error(err))
		return
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 32)

	switch e.api {
	case VULKAN:
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	default:
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}

	window, err := glfw.CreateWindow(int(e.Width), int(e.Height), "Horizon3D", nil, nil)
	if err != nil {
		logger.Log.Error("Could not create glfw window", zap.Error(err))
		return
	}
	e.window = window

	if e.api == OPENGL {
		e.window.MakeContextCurrent()
		if err := gl.Init(); err != nil {
			logger.Log.Error("Could not initialize OpenGL", zap.Error(err))
			return
		}
		gl.ClearColor(0.0, 0.0, 0.0, 1.0)
		gl.Enable(gl.DEPTH_TEST)
		// LEQUAL lets the skybox pass at the far plane where its depth
		// equals the cleared value.
		gl.DepthFunc(gl.LEQUAL)
	}

	e.window.SetPos(x, y)
	SetDarkTitleBar(e.window)

	if err := e.initSystems(); err != nil {
		logger.Log.Error("Could not initialize render systems", zap.Error(err))
		return
	}

	e.Camera = renderer.NewDefaultCamera(e.Height, e.Width)
	e.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	e.window.SetCursorPosCallback(e.mouseCallback)

	e.renderLoop()
}

func (e *Engine) initSystems() error {
	switch e.api {
	case VULKAN:
		e.backend = renderer.NewVulkanBackend()
	default:
		e.backend = renderer.NewOpenGLBackend()
	}

	e.shaders = renderer.NewGLShaderSystem()
	if e.api == OPENGL {
		if _, err := e.shaders.Register(renderer.InitSkyboxShader()); err != nil {
			// The skybox system tolerates a missing shader; log and move on.
			logger.Log.Error("Skybox shader failed to compile", zap.Error(err))
		}
	} else {
		// No GL context exists, so no shader can be compiled. The skybox
		// system initializes inert and the loop runs without drawing.
		logger.Log.Warn("Vulkan rendering not implemented, skybox disabled")
	}

	e.geometry = renderer.NewGeometryManager()
	e.images = loader.NewImageLoader(e.config.TexturesPath)

	skybox, err := renderer.NewSkyboxSystem(
		renderer.SkyboxConfig{BasePath: e.config.SkyboxBasePath},
		e.images, e.shaders, e.backend, e.geometry)
	if err != nil {
		return err
	}
	e.skybox = skybox
	return nil
}

func (e *Engine) renderLoop() {
	var lastTime = glfw.GetTime()
	var lastWidth, lastHeight int32 = e.Width, e.Height

	for !e.window.ShouldClose() {
		currentTime := glfw.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		actualWidth, actualHeight := e.window.GetSize()
		if int32(actualWidth) != e.Width || int32(actualHeight) != e.Height {
			e.Width = int32(actualWidth)
			e.Height = int32(actualHeight)
		}
		if e.Width != lastWidth || e.Height != lastHeight {
			if e.api == OPENGL {
				gl.Viewport(0, 0, e.Width, e.Height)
			}
			e.Camera.SetAspectRatio(float32(e.Width) / float32(e.Height))
			lastWidth, lastHeight = e.Width, e.Height
		}

		if e.EnableCameraInput {
			e.Camera.ProcessKeyboard(e.window, float32(deltaTime))
		}

		e.Behaviours.UpdateAll(deltaTime)
		e.applyPendingSkybox()

		if e.api == OPENGL {
			gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		}

		e.skybox.Render(e.Camera.GetProjectionMatrix(), e.Camera.GetViewMatrix(), e.frameNumber)

		if e.onRenderCallback != nil {
			e.onRenderCallback(deltaTime)
		}

		if e.api == OPENGL {
			e.window.SwapBuffers()
		}
		e.frameNumber++
		glfw.PollEvents()
	}

	e.cleanup()
}

func (e *Engine) applyPendingSkybox() {
	if e.pendingGenerated != nil {
		name := e.pendingName
		if name == "" {
			name = "generated"
		}
		if err := e.skybox.LoadGenerated(name, *e.pendingGenerated); err != nil {
			logger.Log.Error("Failed to generate skybox", zap.String("name", name), zap.Error(err))
		}
		e.pendingGenerated = nil
		e.pendingName = ""
		return
	}

	if e.pendingSkybox != "" {
		if err := e.skybox.Load(e.pendingSkybox); err != nil {
			logger.Log.Error("Failed to load skybox",
				zap.String("name", e.pendingSkybox), zap.Error(err))
		}
		e.pendingSkybox = ""
	}
}

func (e *Engine) cleanup() {
	if e.skybox != nil {
		e.skybox.Shutdown()
	}
	if e.geometry != nil {
		e.geometry.Clear()
	}
	if e.shaders != nil {
		e.shaders.Shutdown()
	}
	logger.Log.Info("Engine shut down")
}

func (e *Engine) mouseCallback(w *glfw.Window, xpos, ypos float64) {
	if e.EnableCameraInput && w.GetAttrib(glfw.Focused) == glfw.True && w.GetMouseButton(glfw.MouseButtonRight) == glfw.Press {
		if firstMouse {
			lastX = xpos
			lastY = ypos
			firstMouse = false
			return
		}

		xoffset := xpos - lastX
		yoffset := lastY - ypos // Reversed since y-coordinates go from bottom to top
		lastX = xpos
		lastY = ypos

		e.Camera.ProcessMouseMovement(float32(xoffset), float32(yoffset), true)
	} else {
		firstMouse = true
	}
}
