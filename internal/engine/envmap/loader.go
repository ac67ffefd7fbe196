// Package envmap loads HDR environment maps on a background goroutine with
// a non-blocking poll/consume protocol.
package envmap

import (
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // BMP decoder registration

	"github.com/mdouchement/hdr"
	_ "github.com/mdouchement/hdr/codec/rgbe" // Radiance .hdr decoder registration

	"github.com/vedavamadathil/sdf-engine/internal/logger"
)

// Result is a decoded environment map: RGBA float pixels in scanline order.
// A failed decode yields the sentinel value: nil pixels and zero extent.
type Result struct {
	Pixels []float32
	Width  int
	Height int
}

// Failed reports whether the result is the failure sentinel.
func (r Result) Failed() bool {
	return r.Pixels == nil
}

// Handle represents one in-flight background decode. The decoded buffer
// crosses the goroutine boundary exactly once, at the first Ready poll;
// after that the handle stays pending forever, so a consumed handle can
// never surface the same payload twice. There is no cancellation.
type Handle struct {
	done chan Result
}

// Load launches a background decode of the image at path. The calling
// thread is never blocked; failures are logged by the worker and resolve
// the handle with the failure sentinel.
func Load(path string) *Handle {
	h := &Handle{done: make(chan Result, 1)}
	go func() {
		h.done <- decode(path)
	}()
	return h
}

// Poll checks for completion without blocking. The first call that
// observes the finished decode consumes it and transfers ownership of the
// pixel buffer to the caller; every other call reports pending.
func (h *Handle) Poll() (Result, bool) {
	select {
	case res := <-h.done:
		return res, true
	default:
		return Result{}, false
	}
}

func decode(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		logger.Warn("environment map not found", zap.String("path", path), zap.Error(err))
		return Result{}
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		logger.Error("environment map decode failed", zap.String("path", path), zap.Error(err))
		return Result{}
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	pixels := make([]float32, width*height*4)

	if hdrImg, ok := img.(hdr.Image); ok {
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := hdrImg.HDRAt(x, y).HDRRGBA()
				pixels[i+0] = float32(r)
				pixels[i+1] = float32(g)
				pixels[i+2] = float32(b)
				pixels[i+3] = 1
				i += 4
			}
		}
	} else {
		// Low dynamic range fallback (PNG, JPEG, BMP). Radiance is
		// [0,1] in this case but the lighting still works.
		logger.Debug("environment map is low dynamic range",
			zap.String("path", path), zap.String("format", format))
		i := 0
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, g, b, _ := img.At(x, y).RGBA()
				pixels[i+0] = float32(r) / 65535
				pixels[i+1] = float32(g) / 65535
				pixels[i+2] = float32(b) / 65535
				pixels[i+3] = 1
				i += 4
			}
		}
	}

	logger.Info("environment map decoded",
		zap.String("path", path), zap.Int("width", width), zap.Int("height", height))

	return Result{Pixels: pixels, Width: width, Height: height}
}
