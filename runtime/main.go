package main

import (
	"Horizon3D/internal/engine"
	"fmt"
	"os"
	"runtime"
)

func main() {
	runtime.LockOSThread()
	fmt.Println("Starting Horizon3D...")

	configPath := "engine_config.json"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := engine.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("WARNING: %v\n", err)
	}

	eng := engine.New(config)
	if config.StartupSkybox != "" {
		eng.SetSkybox(config.StartupSkybox)
	}

	eng.Run(-1, -1)
}
