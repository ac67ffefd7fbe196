package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Graphics defaults
	if cfg.Graphics.Width != 1000 {
		t.Errorf("expected width 1000, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 1000 {
		t.Errorf("expected height 1000, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Render target matches window by default
	if cfg.Render.Width != 1000 || cfg.Render.Height != 1000 {
		t.Errorf("expected 1000x1000 render target, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}

	// Scene defaults
	if cfg.Scene.Model == "" {
		t.Error("expected a default model path")
	}
	if cfg.Scene.Environment != "" {
		t.Errorf("expected no default environment, got %s", cfg.Scene.Environment)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	data := `
graphics:
  width: 1920
  height: 1080
  vsync: false
render:
  width: 800
  height: 600
scene:
  model: scenes/bunny.obj
  environment: env/studio.hdr
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync disabled")
	}
	if cfg.Render.Width != 800 || cfg.Render.Height != 600 {
		t.Errorf("expected 800x600 render target, got %dx%d", cfg.Render.Width, cfg.Render.Height)
	}
	if cfg.Scene.Model != "scenes/bunny.obj" {
		t.Errorf("unexpected model path: %s", cfg.Scene.Model)
	}
	if cfg.Scene.Environment != "env/studio.hdr" {
		t.Errorf("unexpected environment path: %s", cfg.Scene.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	// Only override one section; the rest keeps defaults.
	if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Graphics.Width != 1000 {
		t.Errorf("expected default width preserved, got %d", cfg.Graphics.Width)
	}
}

func TestLoadFromFileMalformed(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	if err := os.WriteFile(path, []byte("graphics: [not a mapping"), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	if err := loadFromFile(Default(), path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Graphics.Width = 640
	cfg.Scene.Model = "box.obj"

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}
	if loaded.Graphics.Width != 640 {
		t.Errorf("expected width 640 after round trip, got %d", loaded.Graphics.Width)
	}
	if loaded.Scene.Model != "box.obj" {
		t.Errorf("expected model box.obj after round trip, got %s", loaded.Scene.Model)
	}
}
