package main

import (
	"Horizon3D/editor/internal"
	"Horizon3D/editor/platforms"
	"Horizon3D/editor/renderers"
	"Horizon3D/internal/engine"
	"fmt"
	"runtime"

	"github.com/inkyblackness/imgui-go/v4"
)

func main() {
	runtime.LockOSThread()

	fmt.Println("===========================================")
	fmt.Println("   Horizon3D Editor                        ")
	fmt.Println("===========================================")

	context := imgui.CreateContext(nil)
	defer context.Destroy()
	defer editor.SaveConfig()

	config, err := engine.LoadConfig("engine_config.json")
	if err != nil {
		fmt.Printf("WARNING: %v\n", err)
	}
	config.WindowWidth = 1280
	config.WindowHeight = 720

	editor.Eng = engine.New(config)
	if config.StartupSkybox != "" {
		editor.Eng.SetSkybox(config.StartupSkybox)
	}

	editor.Eng.SetOnRenderCallback(func(deltaTime float64) {
		if !editor.ImguiInitialized && editor.Eng.GetWindow() != nil {
			initializeImGui()
		}
		if !editor.ImguiInitialized {
			return
		}

		io := imgui.CurrentIO()
		wantsKeyboard := io.WantCaptureKeyboard()
		rightMouseDown := imgui.IsMouseDown(1)
		windowHovered := imgui.IsWindowHoveredV(imgui.HoveredFlagsAnyWindow)

		if rightMouseDown {
			// Right mouse held = camera look-around takes priority
			editor.Eng.EnableCameraInput = true
		} else {
			editor.Eng.EnableCameraInput = !wantsKeyboard && !windowHovered
		}

		renderImGuiFrame()
	})

	fmt.Println("Starting engine...")
	editor.Eng.Run(-1, -1)
}

func initializeImGui() {
	fmt.Println("Initializing ImGui on main thread...")

	window := editor.Eng.GetWindow()
	io := imgui.CurrentIO()

	var err error
	editor.Platform, err = platforms.NewGLFWFromExistingWindow(window, io)
	if err != nil {
		fmt.Printf("ERROR: Failed to create GLFW platform: %v\n", err)
		return
	}

	editor.ImguiRenderer, err = renderers.NewOpenGL3(io)
	if err != nil {
		fmt.Printf("ERROR: Failed to create OpenGL3 renderer: %v\n", err)
		return
	}

	editor.ApplyDarkTheme()
	editor.LoadConfig()

	editor.ImguiInitialized = true
	fmt.Println("ImGui initialized successfully!")
}

func renderImGuiFrame() {
	if editor.Platform == nil || editor.ImguiRenderer == nil {
		return
	}

	editor.Platform.NewFrame()
	imgui.NewFrame()

	editor.RenderEditorUI()

	imgui.Render()
	displaySize := editor.Platform.DisplaySize()
	framebufferSize := editor.Platform.FramebufferSize()
	editor.ImguiRenderer.Render(displaySize, framebufferSize, imgui.RenderedDrawData())
}
