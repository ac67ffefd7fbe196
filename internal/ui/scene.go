package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/vedavamadathil/sdf-engine/internal/engine/camera"
)

// SceneInfo is the per-frame snapshot the scene panel displays.
type SceneInfo struct {
	ModelPath        string
	Submeshes        int
	Emissive         int
	Materials        int
	EnvironmentReady bool
}

// ScenePanel shows what is loaded and offers the asset-open actions.
type ScenePanel struct {
	OnOpenModel       func()
	OnOpenEnvironment func()
}

// Show draws the panel.
func (p *ScenePanel) Show(info SceneInfo, cam *camera.Camera) {
	imgui.Begin("Scene")

	imgui.Text("Model:")
	if info.ModelPath != "" {
		imgui.TextWrapped(info.ModelPath)
	} else {
		imgui.TextDisabled("none loaded")
	}

	imgui.Separator()

	imgui.Text(fmt.Sprintf("Submeshes: %d", info.Submeshes))
	imgui.Text(fmt.Sprintf("Emissive: %d", info.Emissive))
	imgui.Text(fmt.Sprintf("Materials: %d", info.Materials))
	if info.EnvironmentReady {
		imgui.Text("Environment: loaded")
	} else {
		imgui.TextDisabled("Environment: none")
	}

	imgui.Separator()

	pos := cam.Position()
	imgui.Text("Camera:")
	imgui.Text(fmt.Sprintf("  X: %.2f", pos.X()))
	imgui.Text(fmt.Sprintf("  Y: %.2f", pos.Y()))
	imgui.Text(fmt.Sprintf("  Z: %.2f", pos.Z()))

	imgui.Separator()

	if imgui.Button("Open Model...") && p.OnOpenModel != nil {
		p.OnOpenModel()
	}
	if imgui.Button("Open Environment...") && p.OnOpenEnvironment != nil {
		p.OnOpenEnvironment()
	}

	imgui.End()
}
