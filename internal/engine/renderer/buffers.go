package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"

	"github.com/vedavamadathil/sdf-engine/internal/engine/mesh"
	"github.com/vedavamadathil/sdf-engine/internal/logger"
)

// MeshBuffers holds the GPU-resident copy of one submesh. The CPU-side
// submesh stays owned by the model; destroying the buffers never touches
// it. A zeroed MeshBuffers (vao 0) is the failure value and is skipped at
// draw time.
type MeshBuffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	source     *mesh.Submesh
}

// Valid reports whether the buffers hold live GL objects.
func (b MeshBuffers) Valid() bool {
	return b.vao != 0
}

// UploadSubmesh allocates a VAO, vertex buffer and index buffer for one
// submesh. Vertex layout: position, normal, uv, tightly packed. Empty
// submeshes yield the zeroed failure value.
func UploadSubmesh(sm *mesh.Submesh) MeshBuffers {
	if len(sm.Vertices) == 0 || len(sm.Indices) == 0 {
		logger.Error("submesh upload rejected",
			zap.Int("vertices", len(sm.Vertices)), zap.Int("indices", len(sm.Indices)))
		return MeshBuffers{}
	}

	var b MeshBuffers
	b.source = sm
	b.indexCount = int32(len(sm.Indices))

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	vertexSize := int(unsafe.Sizeof(mesh.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(sm.Vertices)*vertexSize, unsafe.Pointer(&sm.Vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(sm.Indices)*4, unsafe.Pointer(&sm.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	return b
}

// Draw issues the indexed draw call. The caller binds the program and per
// draw uniforms first.
func (b MeshBuffers) Draw() {
	if b.vao == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
}

// Destroy releases the GL objects. Safe on the zeroed value.
func (b *MeshBuffers) Destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
		b.vbo = 0
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
	b.indexCount = 0
	b.source = nil
}
