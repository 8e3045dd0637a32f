package editor

import (
	"encoding/json"
	"fmt"
	"os"
)

// EditorConfig is the editor state persisted between sessions.
type EditorConfig struct {
	ShowEnvironment bool `json:"show_environment"`
	ShowCamera      bool `json:"show_camera"`

	ProceduralName     string     `json:"procedural_name"`
	ProceduralFaceSize int32      `json:"procedural_face_size"`
	ProceduralSeed     int32      `json:"procedural_seed"`
	ProceduralDensity  float32    `json:"procedural_density"`
	ProceduralScale    float32    `json:"procedural_scale"`
	ProceduralHorizon  [3]float32 `json:"procedural_horizon"`
	ProceduralZenith   [3]float32 `json:"procedural_zenith"`
}

// LoadConfig loads editor configuration from file
func LoadConfig() {
	data, err := os.ReadFile(configPath)
	if err != nil {
		fmt.Println("No editor config found, using defaults")
		return
	}

	var config EditorConfig
	if err := json.Unmarshal(data, &config); err != nil {
		fmt.Printf("Error parsing editor config: %v\n", err)
		return
	}

	ShowEnvironment = config.ShowEnvironment
	ShowCamera = config.ShowCamera

	if config.ProceduralFaceSize > 0 {
		ensureProceduralState()
		proceduralName = config.ProceduralName
		proceduralFaceSize = config.ProceduralFaceSize
		proceduralSeed = config.ProceduralSeed
		proceduralDensity = config.ProceduralDensity
		proceduralScale = config.ProceduralScale
		proceduralHorizon = config.ProceduralHorizon
		proceduralZenith = config.ProceduralZenith
	}

	fmt.Println("Editor config loaded")
}

// SaveConfig saves editor configuration to file
func SaveConfig() {
	config := EditorConfig{
		ShowEnvironment: ShowEnvironment,
		ShowCamera:      ShowCamera,

		ProceduralName:     proceduralName,
		ProceduralFaceSize: proceduralFaceSize,
		ProceduralSeed:     proceduralSeed,
		ProceduralDensity:  proceduralDensity,
		ProceduralScale:    proceduralScale,
		ProceduralHorizon:  proceduralHorizon,
		ProceduralZenith:   proceduralZenith,
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		fmt.Printf("Error marshaling editor config: %v\n", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		fmt.Printf("Error saving editor config: %v\n", err)
	}
}
