// Package config handles engine configuration loading and management.
package config

// Config holds all engine settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds window and display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// RenderConfig holds the offscreen pipeline resolution: the G-buffer and
// trace render target share it, independent of the window size.
type RenderConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SceneConfig holds asset paths for the scene to render.
type SceneConfig struct {
	// Model is the OBJ model loaded at startup.
	Model string `yaml:"model"`
	// Environment is the HDR environment map (Radiance .hdr), loaded in
	// the background.
	Environment string `yaml:"environment"`
	// ShaderDir optionally overrides the embedded shader sources with
	// files loaded from this directory.
	ShaderDir string `yaml:"shader_dir"`
	// Font is an optional UI font path; a missing file degrades UI text
	// rendering only.
	Font string `yaml:"font"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1000,
			Height:     1000,
			Fullscreen: false,
			VSync:      true,
		},
		Render: RenderConfig{
			Width:  1000,
			Height: 1000,
		},
		Scene: SceneConfig{
			Model: "models/cornell_box/CornellBox-Original.obj",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
