package envmap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// pollUntilReady polls the handle once per tick until it reports ready.
func pollUntilReady(t *testing.T, h *Handle) Result {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if res, ok := h.Poll(); ok {
			return res
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("handle never became ready")
	return Result{}
}

func TestLoadMissingFileResolvesToSentinel(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "nope.hdr"))

	res := pollUntilReady(t, h)
	if !res.Failed() {
		t.Error("expected failure sentinel for missing file")
	}
	if res.Width != 0 || res.Height != 0 {
		t.Errorf("expected 0x0 extent in sentinel, got %dx%d", res.Width, res.Height)
	}
}

func TestLoadMalformedFileResolvesToSentinel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "garbage.hdr")
	if err := os.WriteFile(path, []byte("definitely not an hdr image"), 0644); err != nil {
		t.Fatalf("writing test file: %v", err)
	}

	res := pollUntilReady(t, Load(path))
	if !res.Failed() {
		t.Error("expected failure sentinel for malformed file")
	}
}

func TestPollAtMostOnceConsumption(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "nope.hdr"))
	pollUntilReady(t, h)

	// The result was consumed; subsequent polls must never report ready
	// again with the same payload.
	for i := 0; i < 100; i++ {
		if _, ok := h.Poll(); ok {
			t.Fatal("poll reported ready after consumption")
		}
	}
}

func TestPollNeverBlocks(t *testing.T) {
	h := Load(filepath.Join(t.TempDir(), "nope.hdr"))

	// Regardless of worker state every poll must return promptly.
	for i := 0; i < 1000; i++ {
		start := time.Now()
		h.Poll()
		if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
			t.Fatalf("poll took %v", elapsed)
		}
	}
}
