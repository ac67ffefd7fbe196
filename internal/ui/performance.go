package ui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

// historyWindow is how much frame rate history the plot keeps.
const historyWindow = 5 * time.Second

// Performance is the frame rate panel: current FPS plus a sliding plot
// over the last few seconds.
type Performance struct {
	start   time.Time
	times   []float32
	samples []float32
}

// NewPerformance returns an empty panel.
func NewPerformance() *Performance {
	return &Performance{start: time.Now()}
}

// Show draws the panel and records this frame's sample.
func (p *Performance) Show() {
	imgui.Begin("Performance")

	fps := imgui.CurrentIO().Framerate()
	imgui.Text(fmt.Sprintf("FPS: %.1f", fps))

	now := float32(time.Since(p.start).Seconds())
	p.times = append(p.times, now)
	p.samples = append(p.samples, fps)

	// Drop samples older than the window.
	cutoff := now - float32(historyWindow.Seconds())
	drop := 0
	for drop < len(p.times) && p.times[drop] < cutoff {
		drop++
	}
	p.times = p.times[drop:]
	p.samples = p.samples[drop:]

	if len(p.samples) > 1 {
		imgui.PlotLinesFloatPtrV(
			"##fps",
			&p.samples[0],
			int32(len(p.samples)),
			0,
			"frame rate",
			0, 165,
			imgui.NewVec2(0, 80),
			4,
		)
	}

	imgui.End()
}
