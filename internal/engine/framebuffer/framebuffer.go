// Package framebuffer provides the G-buffer: an offscreen framebuffer with
// world-position, normal and material-index attachments plus depth, filled
// by rasterization and sampled by the trace stage.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// GBuffer owns the framebuffer object and its four attachment textures.
type GBuffer struct {
	fbo           uint32
	position      uint32
	normal        uint32
	materialIndex uint32
	depth         uint32
	width         int32
	height        int32
}

// NewGBuffer creates a G-buffer at the given resolution. An incomplete
// framebuffer is fatal for the resource: everything allocated is released
// and an error returned.
func NewGBuffer(width, height int32) (*GBuffer, error) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	fb := &GBuffer{
		width:  width,
		height: height,
	}

	if err := fb.create(); err != nil {
		return nil, fmt.Errorf("creating G-buffer: %w", err)
	}

	return fb, nil
}

func (fb *GBuffer) create() error {
	gl.GenFramebuffers(1, &fb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)

	// World position, RGB16F
	fb.position = newAttachment(gl.RGB16F, gl.RGB, gl.FLOAT, fb.width, fb.height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.position, 0)

	// World normal, RGB16F
	fb.normal = newAttachment(gl.RGB16F, gl.RGB, gl.FLOAT, fb.width, fb.height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT1, gl.TEXTURE_2D, fb.normal, 0)

	// Material index, single unsigned integer channel
	fb.materialIndex = newAttachment(gl.R32UI, gl.RED_INTEGER, gl.UNSIGNED_INT, fb.width, fb.height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT2, gl.TEXTURE_2D, fb.materialIndex, 0)

	attachments := []uint32{
		gl.COLOR_ATTACHMENT0,
		gl.COLOR_ATTACHMENT1,
		gl.COLOR_ATTACHMENT2,
	}
	gl.DrawBuffers(int32(len(attachments)), &attachments[0])

	// Depth texture
	fb.depth = newAttachment(gl.DEPTH_COMPONENT24, gl.DEPTH_COMPONENT, gl.FLOAT, fb.width, fb.height)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, fb.depth, 0)

	// Check framebuffer completeness
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return nil
}

func newAttachment(internalFormat int32, format, xtype uint32, width, height int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, width, height, 0, format, xtype, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	return tex
}

// Bind makes the G-buffer the current render target.
func (fb *GBuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.fbo)
	gl.Viewport(0, 0, fb.width, fb.height)
}

// Unbind restores the default framebuffer.
func (fb *GBuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Clear clears color and depth attachments.
func (fb *GBuffer) Clear() {
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// PositionTexture returns the world-position attachment.
func (fb *GBuffer) PositionTexture() uint32 {
	return fb.position
}

// NormalTexture returns the normal attachment.
func (fb *GBuffer) NormalTexture() uint32 {
	return fb.normal
}

// MaterialIndexTexture returns the material-index attachment.
func (fb *GBuffer) MaterialIndexTexture() uint32 {
	return fb.materialIndex
}

// Size returns the G-buffer dimensions.
func (fb *GBuffer) Size() (width, height int32) {
	return fb.width, fb.height
}

// Destroy releases the framebuffer and its attachments.
func (fb *GBuffer) Destroy() {
	if fb.fbo != 0 {
		gl.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	for _, tex := range []*uint32{&fb.position, &fb.normal, &fb.materialIndex, &fb.depth} {
		if *tex != 0 {
			gl.DeleteTextures(1, tex)
			*tex = 0
		}
	}
}
