package debug

import (
	"image/png"
	"os"
	"testing"
)

func TestWriteScreenshotFlipsRows(t *testing.T) {
	dir := t.TempDir()

	// 1x2 image: bottom row red, top row blue (GL order is bottom-up).
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}

	path, err := WriteScreenshot(dir, pixels, 1, 2)
	if err != nil {
		t.Fatalf("WriteScreenshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}

	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 1 || h != 2 {
		t.Fatalf("got %dx%d, want 1x2", w, h)
	}

	// Top row of the file must be the GL top row (blue).
	r, g, b, _ := img.At(0, 0).RGBA()
	if r != 0 || g != 0 || b != 0xffff {
		t.Errorf("top pixel = (%d,%d,%d), want blue", r, g, b)
	}
	r, g, b, _ = img.At(0, 1).RGBA()
	if r != 0xffff || g != 0 || b != 0 {
		t.Errorf("bottom pixel = (%d,%d,%d), want red", r, g, b)
	}
}

func TestWriteScreenshotSizeMismatch(t *testing.T) {
	if _, err := WriteScreenshot(t.TempDir(), make([]byte, 3), 2, 2); err == nil {
		t.Fatal("expected error for short pixel data")
	}
}
