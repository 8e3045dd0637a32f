package editor

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// RenderEditorUI draws the menu bar and all open panels for the frame.
func RenderEditorUI() {
	updateFPS()
	renderMainMenuBar()

	if ShowEnvironment {
		renderEnvironmentPanel()
	}
	if ShowCamera {
		renderCameraPanel()
	}
	if ShowDemoWindow {
		imgui.ShowDemoWindow(&ShowDemoWindow)
	}
}

func renderMainMenuBar() {
	if imgui.BeginMainMenuBar() {
		if imgui.BeginMenu("File") {
			if imgui.MenuItem("Save Config") {
				SaveConfig()
			}
			imgui.Separator()
			if imgui.MenuItem("Exit") {
				Eng.GetWindow().SetShouldClose(true)
			}
			imgui.EndMenu()
		}
		if imgui.BeginMenu("View") {
			if imgui.MenuItemV("Environment", "", ShowEnvironment, true) {
				ShowEnvironment = !ShowEnvironment
			}
			if imgui.MenuItemV("Camera", "", ShowCamera, true) {
				ShowCamera = !ShowCamera
			}
			imgui.Separator()
			if imgui.MenuItemV("ImGui Demo", "", ShowDemoWindow, true) {
				ShowDemoWindow = !ShowDemoWindow
			}
			imgui.EndMenu()
		}

		fpsText := fmt.Sprintf("FPS: %.0f", fps)
		imgui.Text(fpsText)
		imgui.EndMainMenuBar()
	}
}

func renderEnvironmentPanel() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 30}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 340, Y: 480}, imgui.ConditionFirstUseEver)

	if imgui.BeginV("Environment", &ShowEnvironment, 0) {
		skybox := Eng.Skybox()
		if skybox == nil {
			imgui.Text("Render systems not ready yet")
			imgui.End()
			return
		}

		if imgui.CollapsingHeaderV("Skybox", imgui.TreeNodeFlagsDefaultOpen) {
			if skybox.IsLoaded() {
				imgui.Text(fmt.Sprintf("Loaded: %s", skybox.CurrentName()))
			} else {
				imgui.Text("Loaded: (none)")
			}
			imgui.Separator()

			if skyboxScanRequested {
				names, err := skybox.Available()
				if err != nil {
					skyboxListError = err.Error()
					availableSkyboxes = nil
				} else {
					skyboxListError = ""
					availableSkyboxes = names
				}
				selectedSkyboxIndex = -1
				skyboxScanRequested = false
			}

			if skyboxListError != "" {
				imgui.Text("Scan failed: " + skyboxListError)
			} else if len(availableSkyboxes) == 0 {
				imgui.Text("No skyboxes found")
			}
			for i, name := range availableSkyboxes {
				if imgui.SelectableV(name, selectedSkyboxIndex == i, 0, imgui.Vec2{}) {
					selectedSkyboxIndex = i
				}
			}
			imgui.Separator()

			if imgui.Button("Load Selected") {
				if selectedSkyboxIndex >= 0 && selectedSkyboxIndex < len(availableSkyboxes) {
					Eng.SetSkybox(availableSkyboxes[selectedSkyboxIndex])
				}
			}
			imgui.SameLine()
			if imgui.Button("Unload") {
				skybox.Unload()
			}
			imgui.SameLine()
			if imgui.Button("Rescan") {
				skyboxScanRequested = true
			}
		}

		if imgui.CollapsingHeaderV("Procedural Sky", 0) {
			ensureProceduralState()

			imgui.InputTextV("Name", &proceduralName, 0, nil)
			imgui.SliderInt("Face Size", &proceduralFaceSize, 64, 1024)
			imgui.SliderInt("Seed", &proceduralSeed, 1, 9999)
			imgui.SliderFloat("Cloud Density", &proceduralDensity, 0.0, 1.0)
			imgui.SliderFloat("Cloud Scale", &proceduralScale, 0.5, 10.0)
			imgui.ColorEdit3V("Horizon", &proceduralHorizon, 0)
			imgui.ColorEdit3V("Zenith", &proceduralZenith, 0)

			if imgui.Button("Generate") {
				config := proceduralConfig
				config.FaceSize = uint32(proceduralFaceSize)
				config.Seed = int64(proceduralSeed)
				config.CloudDensity = proceduralDensity
				config.CloudScale = float64(proceduralScale)
				config.HorizonColor = mgl32.Vec3{proceduralHorizon[0], proceduralHorizon[1], proceduralHorizon[2]}
				config.ZenithColor = mgl32.Vec3{proceduralZenith[0], proceduralZenith[1], proceduralZenith[2]}

				name := proceduralName
				if name == "" {
					name = "generated"
				}
				Eng.SetGeneratedSkybox(name, config)
			}
		}
	}
	imgui.End()
}

func renderCameraPanel() {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 360, Y: 30}, imgui.ConditionFirstUseEver, imgui.Vec2{})
	imgui.SetNextWindowSizeV(imgui.Vec2{X: 300, Y: 180}, imgui.ConditionFirstUseEver)

	if imgui.BeginV("Camera", &ShowCamera, 0) {
		camera := Eng.Camera
		if camera == nil {
			imgui.Text("Camera not ready yet")
			imgui.End()
			return
		}

		imgui.Text(fmt.Sprintf("Position: %.1f, %.1f, %.1f",
			camera.Position.X(), camera.Position.Y(), camera.Position.Z()))
		imgui.Text(fmt.Sprintf("Yaw: %.1f  Pitch: %.1f", camera.Yaw, camera.Pitch))

		fov := camera.Fov
		if imgui.SliderFloat("FOV", &fov, 20.0, 110.0) {
			camera.SetFov(fov)
		}
		imgui.SliderFloat("Speed", &camera.Speed, 1.0, 200.0)
		imgui.Checkbox("Invert Mouse", &camera.InvertMouse)
	}
	imgui.End()
}

// ensureProceduralState seeds the panel widgets from the default procedural
// config the first time the panel opens.
func ensureProceduralState() {
	if proceduralStateReady {
		return
	}
	proceduralFaceSize = int32(proceduralConfig.FaceSize)
	proceduralSeed = int32(proceduralConfig.Seed)
	proceduralDensity = proceduralConfig.CloudDensity
	proceduralScale = float32(proceduralConfig.CloudScale)
	proceduralHorizon = [3]float32{
		proceduralConfig.HorizonColor.X(),
		proceduralConfig.HorizonColor.Y(),
		proceduralConfig.HorizonColor.Z(),
	}
	proceduralZenith = [3]float32{
		proceduralConfig.ZenithColor.X(),
		proceduralConfig.ZenithColor.Y(),
		proceduralConfig.ZenithColor.Z(),
	}
	proceduralStateReady = true
}

func updateFPS() {
	frameCount++
	now := time.Now()

	if now.Sub(fpsUpdateTime) >= time.Second {
		fps = float64(frameCount) / now.Sub(fpsUpdateTime).Seconds()
		frameCount = 0
		fpsUpdateTime = now
	}
}
