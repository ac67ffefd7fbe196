// SDF Engine editor - hybrid path traced viewport inside an ImGui UI.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/vedavamadathil/sdf-engine/internal/config"
	"github.com/vedavamadathil/sdf-engine/internal/engine/camera"
	"github.com/vedavamadathil/sdf-engine/internal/engine/material"
	"github.com/vedavamadathil/sdf-engine/internal/engine/renderer"
	"github.com/vedavamadathil/sdf-engine/internal/logger"
	"github.com/vedavamadathil/sdf-engine/internal/ui"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	app, err := NewApp(cfg)
	if err != nil {
		logger.Fatal("editor startup failed", zap.Error(err))
	}
	defer app.Close()

	app.Run()
}

// App holds the editor state: the ImGui backend, the render pipeline and
// the UI panels.
type App struct {
	cfg      *config.Config
	backend  *ui.Backend
	renderer *renderer.Renderer
	camera   *camera.Camera

	viewport    *ui.Viewport
	performance *ui.Performance
	scenePanel  *ui.ScenePanel

	// Paths picked in the file dialog goroutines; renderer state is only
	// touched on the GL thread, so render() picks them up next frame.
	pendingModelPath string
	pendingEnvPath   string
}

// NewApp creates the editor window, compiles the pipeline and loads the
// configured scene.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:         cfg,
		camera:      camera.New(),
		viewport:    ui.NewViewport(),
		performance: ui.NewPerformance(),
	}
	app.scenePanel = &ui.ScenePanel{
		OnOpenModel:       app.openModelDialog,
		OnOpenEnvironment: app.openEnvironmentDialog,
	}

	var err error
	app.backend, err = ui.NewBackend("SDF Engine",
		int32(cfg.Graphics.Width), int32(cfg.Graphics.Height), cfg.Scene.Font)
	if err != nil {
		return nil, err
	}

	app.renderer, err = renderer.New(
		int32(cfg.Render.Width), int32(cfg.Render.Height),
		cfg.Scene.ShaderDir, material.NewRegistry())
	if err != nil {
		return nil, err
	}

	app.renderer.LoadModel(cfg.Scene.Model)
	if cfg.Scene.Environment != "" {
		app.renderer.StartEnvironment(cfg.Scene.Environment)
	}

	return app, nil
}

// Close releases the GPU resources.
func (app *App) Close() {
	if app.renderer != nil {
		app.renderer.Destroy()
		app.renderer = nil
	}
}

// Run starts the main loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// render draws one frame: pipeline first, then the UI compositing its
// output.
func (app *App) render() {
	// Dialog results must be applied on the GL thread.
	if app.pendingModelPath != "" {
		path := app.pendingModelPath
		app.pendingModelPath = ""
		app.renderer.LoadModel(path)
	}
	if app.pendingEnvPath != "" {
		path := app.pendingEnvPath
		app.pendingEnvPath = ""
		app.renderer.StartEnvironment(path)
	}

	app.renderMenuBar()

	app.renderer.RenderFrame(app.camera)

	app.viewport.Show(app.camera, app.renderer.TargetTexture())
	app.performance.Show()
	app.scenePanel.Show(ui.SceneInfo{
		ModelPath:        app.renderer.ModelPath(),
		Submeshes:        app.renderer.SubmeshCount(),
		Emissive:         app.renderer.EmissiveCount(),
		Materials:        app.renderer.MaterialCount(),
		EnvironmentReady: app.renderer.EnvironmentReady(),
	}, app.camera)
}

func (app *App) renderMenuBar() {
	if !imgui.BeginMainMenuBar() {
		return
	}

	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open Model...") {
			app.openModelDialog()
		}
		if imgui.MenuItemBool("Open Environment...") {
			app.openEnvironmentDialog()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") {
			os.Exit(0)
		}
		imgui.EndMenu()
	}

	imgui.EndMainMenuBar()
}

// openModelDialog shows a native file dialog for a scene model. The
// dialog blocks, so it runs off-thread and queues the result.
func (app *App) openModelDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open Model").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}

		app.pendingModelPath = filename
	}()
}

// openEnvironmentDialog picks a new environment map.
func (app *App) openEnvironmentDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Environment Maps", "hdr", "png", "jpg", "bmp").
			Filter("All Files", "*").
			Title("Open Environment Map").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Error("file dialog failed", zap.Error(err))
			}
			return
		}

		app.pendingEnvPath = filename
	}()
}
