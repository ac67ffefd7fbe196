// Package ui provides the ImGui editor surface: backend setup, the
// viewport panel compositing the path traced image, and the performance
// panel.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"

	"github.com/vedavamadathil/sdf-engine/internal/logger"
)

// Backend wraps the ImGui SDL backend for the editor.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates the editor window and GL context. fontPath may be
// empty; a missing font falls back to the ImGui default.
func NewBackend(title string, width, height int32, fontPath string) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	// Fonts must be added before the first frame.
	b.backend.SetAfterCreateContextHook(func() {
		b.loadFont(fontPath)
	})

	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

func (b *Backend) loadFont(path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		logger.Warn("editor font not found", zap.String("path", path), zap.Error(err))
		return
	}

	io := imgui.CurrentIO()
	io.Fonts().AddFontFromFileTTF(path, 16.0)
}

// Run starts the main render loop. The callback runs once per frame on
// the GL thread between NewFrame and Render.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// GetWindowSize returns the window size the backend was created with.
func (b *Backend) GetWindowSize() (int32, int32) {
	return b.width, b.height
}
