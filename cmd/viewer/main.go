// SDF Engine viewer - fullscreen path traced output without the editor
// UI, driven by a plain SDL event loop.
package main

import (
	"fmt"
	"os"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/vedavamadathil/sdf-engine/internal/config"
	"github.com/vedavamadathil/sdf-engine/internal/engine/camera"
	"github.com/vedavamadathil/sdf-engine/internal/engine/debug"
	"github.com/vedavamadathil/sdf-engine/internal/engine/material"
	"github.com/vedavamadathil/sdf-engine/internal/engine/renderer"
	"github.com/vedavamadathil/sdf-engine/internal/engine/window"
	"github.com/vedavamadathil/sdf-engine/internal/logger"
)

const (
	moveSpeed       = 0.25
	dragSensitivity = 0.1
	pitchLimit      = 89
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	win, err := window.New(window.Config{
		Title:      "SDF Engine Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		logger.Fatal("window creation failed", zap.Error(err))
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		logger.Fatal("OpenGL init failed", zap.Error(err))
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))))

	r, err := renderer.New(
		int32(cfg.Render.Width), int32(cfg.Render.Height),
		cfg.Scene.ShaderDir, material.NewRegistry())
	if err != nil {
		logger.Fatal("pipeline startup failed", zap.Error(err))
	}
	defer r.Destroy()

	r.LoadModel(cfg.Scene.Model)
	if cfg.Scene.Environment != "" {
		r.StartEnvironment(cfg.Scene.Environment)
	}

	cam := camera.New()
	winW, winH := win.GetSize()
	cam.SetAspect(float32(winW) / float32(winH))

	// Read framebuffer for presenting the render target via blit.
	blitFBO := newBlitFramebuffer(r.TargetTexture())
	defer gl.DeleteFramebuffers(1, &blitFBO)

	var (
		yaw      float32
		pitch    float32
		dragging bool

		screenshotRequested bool
	)

	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false

			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					winW, winH = win.GetSize()
					cam.SetAspect(float32(winW) / float32(winH))
				}

			case *sdl.KeyboardEvent:
				if e.State == sdl.PRESSED {
					switch e.Keysym.Sym {
					case sdl.K_ESCAPE:
						running = false
					case sdl.K_F12:
						screenshotRequested = true
					}
				}

			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = e.State == sdl.PRESSED
				}

			case *sdl.MouseMotionEvent:
				if dragging {
					yaw -= float32(e.XRel) * dragSensitivity
					pitch -= float32(e.YRel) * dragSensitivity
					if pitch > pitchLimit {
						pitch = pitchLimit
					}
					if pitch < -pitchLimit {
						pitch = -pitchLimit
					}
					cam.SetYawPitch(yaw, pitch)
				}
			}
		}

		applyMovement(cam)

		r.RenderFrame(cam)
		present(blitFBO, r, int32(winW), int32(winH))

		if screenshotRequested {
			screenshotRequested = false
			captureScreenshot(int32(winW), int32(winH))
		}

		win.SwapBuffers()
	}

	logger.Info("viewer closed normally")
}

// applyMovement translates the camera along its local axes from held
// keys, one step per frame.
func applyMovement(cam *camera.Camera) {
	keys := sdl.GetKeyboardState()

	var diff mgl32.Vec3
	if keys[sdl.SCANCODE_W] != 0 {
		diff[2] -= moveSpeed
	}
	if keys[sdl.SCANCODE_S] != 0 {
		diff[2] += moveSpeed
	}
	if keys[sdl.SCANCODE_A] != 0 {
		diff[0] -= moveSpeed
	}
	if keys[sdl.SCANCODE_D] != 0 {
		diff[0] += moveSpeed
	}
	if keys[sdl.SCANCODE_Q] != 0 {
		diff[1] -= moveSpeed
	}
	if keys[sdl.SCANCODE_E] != 0 {
		diff[1] += moveSpeed
	}

	if diff != (mgl32.Vec3{}) {
		cam.Translate(diff)
	}
}

// newBlitFramebuffer wraps the render target in a read framebuffer so it
// can be blitted to the default framebuffer each frame.
func newBlitFramebuffer(target uint32) uint32 {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, target, 0)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return fbo
}

func present(fbo uint32, r *renderer.Renderer, winW, winH int32) {
	rw, rh := r.Size()

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, winW, winH)
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fbo)
	// Both images share OpenGL's bottom-left origin, so no flip.
	gl.BlitFramebuffer(0, 0, rw, rh, 0, 0, winW, winH, gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// captureScreenshot reads back the presented frame and writes it as PNG.
func captureScreenshot(winW, winH int32) {
	pixels := make([]byte, winW*winH*4)
	gl.ReadPixels(0, 0, winW, winH, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := debug.WriteScreenshot("screenshots", pixels, int(winW), int(winH))
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
