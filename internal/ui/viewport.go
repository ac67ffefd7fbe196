package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vedavamadathil/sdf-engine/internal/engine/camera"
)

const (
	moveSpeed       = 0.25
	dragSensitivity = 0.1
	pitchLimit      = 89
)

// Viewport is the panel compositing the path traced render target. It
// owns the camera interaction state: drag-look angles and the
// hover/focus flags gating input.
type Viewport struct {
	yaw   float32
	pitch float32

	lastMouse imgui.Vec2
	hovered   bool
	focused   bool
}

// NewViewport returns a viewport with the camera looking down -Z.
func NewViewport() *Viewport {
	return &Viewport{}
}

// Hovered reports whether the mouse was over the image last frame.
func (v *Viewport) Hovered() bool { return v.hovered }

// Focused reports whether the panel had focus last frame.
func (v *Viewport) Focused() bool { return v.focused }

// Show draws the panel and applies camera input. The panel extent feeds
// the camera aspect ratio for the next frame, so a resize settles after
// one frame of lag.
func (v *Viewport) Show(cam *camera.Camera, textureID uint32) {
	imgui.Begin("Viewport")

	avail := imgui.ContentRegionAvail()
	if avail.Y > 0 {
		cam.SetAspect(avail.X / avail.Y)
	}

	// Flip V: the render target has OpenGL's bottom-left origin.
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		avail,
		imgui.NewVec2(0, 1),
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0, 0, 0, 1),
		imgui.NewVec4(1, 1, 1, 1),
	)

	v.hovered = imgui.IsItemHovered()
	v.focused = imgui.IsWindowFocused()

	v.handleLook(cam)
	v.handleMovement(cam)

	imgui.End()
}

func (v *Viewport) handleLook(cam *camera.Camera) {
	if !v.hovered {
		return
	}

	mouse := imgui.MousePos()
	if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
		v.yaw += (v.lastMouse.X - mouse.X) * dragSensitivity
		v.pitch += (v.lastMouse.Y - mouse.Y) * dragSensitivity

		if v.pitch > pitchLimit {
			v.pitch = pitchLimit
		}
		if v.pitch < -pitchLimit {
			v.pitch = -pitchLimit
		}

		cam.SetYawPitch(v.yaw, v.pitch)
	}
	v.lastMouse = mouse
}

func (v *Viewport) handleMovement(cam *camera.Camera) {
	if !v.focused {
		return
	}

	var diff mgl32.Vec3
	if imgui.IsKeyDown(imgui.KeyW) {
		diff[2] -= moveSpeed
	}
	if imgui.IsKeyDown(imgui.KeyS) {
		diff[2] += moveSpeed
	}
	if imgui.IsKeyDown(imgui.KeyA) {
		diff[0] -= moveSpeed
	}
	if imgui.IsKeyDown(imgui.KeyD) {
		diff[0] += moveSpeed
	}
	if imgui.IsKeyDown(imgui.KeyQ) {
		diff[1] -= moveSpeed
	}
	if imgui.IsKeyDown(imgui.KeyE) {
		diff[1] += moveSpeed
	}

	if diff != (mgl32.Vec3{}) {
		cam.Translate(diff)
	}
}
