// Package texture owns the floating point GL textures the path tracing
// pipeline reads and writes: the render target the kernel stores into, the
// packed material table, and the environment map.
package texture

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/vedavamadathil/sdf-engine/internal/engine/envmap"
)

// Texture is an owned GL texture object. The zero value is invalid.
type Texture struct {
	id     uint32
	width  int32
	height int32
}

// ID returns the GL texture name.
func (t Texture) ID() uint32 { return t.id }

// Valid reports whether the texture holds a live GL object.
func (t Texture) Valid() bool { return t.id != 0 }

// Size returns the texture extent in texels.
func (t Texture) Size() (int32, int32) { return t.width, t.height }

// Bind binds the texture to the given texture unit.
func (t Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// BindImage binds the texture as a write-only image unit for compute
// shader stores. The texture must have been allocated as RGBA32F.
func (t Texture) BindImage(unit uint32) {
	gl.BindImageTexture(unit, t.id, 0, false, 0, gl.WRITE_ONLY, gl.RGBA32F)
}

// Destroy releases the GL texture. Safe to call on the zero value.
func (t *Texture) Destroy() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// NewRenderTarget allocates an RGBA32F texture with undefined contents for
// the compute kernel to store into. Extents below one texel are clamped.
func NewRenderTarget(width, height int32) Texture {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return newFloatTexture(width, height, nil, gl.NEAREST)
}

// NewMaterialArray uploads a packed material table as a count*4 x 1
// RGBA32F texture, one table row of four texels per material. An empty
// table yields an error rather than a zero-sized texture.
func NewMaterialArray(data []float32, count int) (Texture, error) {
	if count == 0 || len(data) != count*16 {
		return Texture{}, fmt.Errorf("material table size mismatch: %d materials, %d floats", count, len(data))
	}
	t := newFloatTexture(int32(count*4), 1, data, gl.NEAREST)
	return t, nil
}

// NewEnvironmentMap uploads a decoded environment map with bilinear
// filtering. Failed decodes must be filtered out by the caller.
func NewEnvironmentMap(res envmap.Result) Texture {
	return newFloatTexture(int32(res.Width), int32(res.Height), res.Pixels, gl.LINEAR)
}

func newFloatTexture(width, height int32, data []float32, filter int32) Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	var ptr unsafe.Pointer
	if data != nil {
		ptr = gl.Ptr(data)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA32F, width, height, 0, gl.RGBA, gl.FLOAT, ptr)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return Texture{id: id, width: width, height: height}
}
