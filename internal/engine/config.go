package engine

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
)

// Config is the engine configuration persisted as JSON.
type Config struct {
	WindowWidth    int32  `json:"window_width"`
	WindowHeight   int32  `json:"window_height"`
	RendererAPI    string `json:"renderer_api"` // "opengl" or "vulkan"
	TexturesPath   string `json:"textures_path"`
	SkyboxBasePath string `json:"skybox_base_path"`
	StartupSkybox  string `json:"startup_skybox"`
}

func DefaultConfig() Config {
	return Config{
		WindowWidth:    1024,
		WindowHeight:   768,
		RendererAPI:    "opengl",
		TexturesPath:   "../assets/textures",
		SkyboxBasePath: "../assets/skyboxes",
		StartupSkybox:  "",
	}
}

// LoadConfig reads the config file at path. A missing file is not an error;
// defaults are returned instead so a fresh checkout runs without setup.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, errors.Wrapf(err, "read config %q", path)
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "parse config %q", path)
	}
	return config, nil
}

func SaveConfig(path string, config Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write config %q", path)
	}
	return nil
}
