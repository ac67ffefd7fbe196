// Package mesh builds indexed submeshes from raw face-vertex streams,
// merging identical vertices and partitioning faces by material.
package mesh

import (
	gomath "math"

	"github.com/vedavamadathil/sdf-engine/internal/engine/material"
)

// Vertex is one deduplicated mesh vertex. The field order matches the GPU
// vertex layout: position, normal, uv, tightly packed.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// vertexKey is the dedup identity of a Vertex: the raw IEEE-754 bit
// patterns of all eight float fields. Two vertices merge iff every field
// matches bit-for-bit, so -0 and +0 do not merge and NaN payloads compare
// by bits rather than by float semantics.
type vertexKey [8]uint32

func (v Vertex) key() vertexKey {
	return vertexKey{
		gomath.Float32bits(v.Position[0]),
		gomath.Float32bits(v.Position[1]),
		gomath.Float32bits(v.Position[2]),
		gomath.Float32bits(v.Normal[0]),
		gomath.Float32bits(v.Normal[1]),
		gomath.Float32bits(v.Normal[2]),
		gomath.Float32bits(v.UV[0]),
		gomath.Float32bits(v.UV[1]),
	}
}

// Submesh is a contiguous run of faces sharing one material, with its own
// indexed vertex data. Every index is < len(Vertices). The submesh owns its
// CPU-side data until uploaded; the GPU copy has an independent lifetime.
type Submesh struct {
	Vertices []Vertex
	Indices  []uint32
	Material material.Index
}

// Model is an ordered sequence of submeshes plus the derived subset whose
// materials emit light.
type Model struct {
	Submeshes []*Submesh
	Emissive  []*Submesh
}
