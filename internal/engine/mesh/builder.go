package mesh

import (
	gomath "math"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/vedavamadathil/sdf-engine/internal/engine/material"
	"github.com/vedavamadathil/sdf-engine/internal/logger"
	"github.com/vedavamadathil/sdf-engine/pkg/formats"
)

// Load reads a model from disk and builds its submeshes, registering all of
// its materials into reg. A missing or unparsable file yields an empty model
// and a logged warning, not a failure.
func Load(path string, reg *material.Registry) *Model {
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		logger.Warn("model load failed", zap.String("path", path), zap.Error(err))
		return &Model{}
	}
	return Build(obj, reg, filepath.Dir(path))
}

// Build converts parsed OBJ data into indexed submeshes. Faces are walked in
// file order; each maximal run of consecutive faces sharing a material id
// becomes one submesh with run-scoped vertex deduplication. All MTL
// materials are registered into reg in library order; texture paths resolve
// against dir.
func Build(obj *formats.OBJ, reg *material.Registry, dir string) *Model {
	model := &Model{}
	if obj == nil || obj.FaceCount() == 0 {
		return model
	}

	// Register every parsed material up front so submesh handles are
	// positional into the shared registry.
	matIDs := make([]material.Index, len(obj.Materials))
	for i, m := range obj.Materials {
		matIDs[i] = reg.Add(material.FromOBJ(m, dir))
	}

	// Faces without a resolvable material share one placeholder, registered
	// only if something needs it.
	placeholder := material.Index(-1)
	resolveMat := func(raw int) material.Index {
		if raw >= 0 && raw < len(matIDs) {
			return matIDs[raw]
		}
		if placeholder < 0 {
			placeholder = reg.Add(material.Material{})
		}
		return placeholder
	}

	var vertices []Vertex
	var indices []uint32

	// Two run-scoped tables: raw reference triple to emitted index, and
	// resolved vertex content to emitted index. The first short-circuits
	// re-resolution, the second merges distinct triples that resolve to
	// bit-identical vertices.
	refIndex := make(map[formats.FaceVertex]uint32)
	uniqueVertices := make(map[vertexKey]uint32)

	offset := 0
	for f := 0; f < obj.FaceCount(); f++ {
		arity := obj.FaceArity[f]

		for v := 0; v < arity; v++ {
			ref := obj.Refs[offset+v]

			if id, ok := refIndex[ref]; ok {
				indices = append(indices, id)
				continue
			}

			vert := resolveVertex(obj, ref, offset, v, arity)

			id, ok := uniqueVertices[vert.key()]
			if !ok {
				id = uint32(len(vertices))
				uniqueVertices[vert.key()] = id
				vertices = append(vertices, vert)
			}

			refIndex[ref] = id
			indices = append(indices, id)
		}
		offset += arity

		// Close the run on the last face or when the next face switches
		// material.
		if f == obj.FaceCount()-1 || obj.FaceMaterials[f] != obj.FaceMaterials[f+1] {
			sm := &Submesh{
				Vertices: vertices,
				Indices:  indices,
				Material: resolveMat(obj.FaceMaterials[f]),
			}
			model.Submeshes = append(model.Submeshes, sm)
			if reg.At(sm.Material).Emissive() {
				model.Emissive = append(model.Emissive, sm)
			}

			vertices = nil
			indices = nil
			refIndex = make(map[formats.FaceVertex]uint32)
			uniqueVertices = make(map[vertexKey]uint32)
		}
	}

	return model
}

// resolveVertex materializes one face-vertex reference. v is the vertex's
// ordinal within its face of the given arity, offset the face's start in the
// flat reference stream.
func resolveVertex(obj *formats.OBJ, ref formats.FaceVertex, offset, v, arity int) Vertex {
	var vert Vertex

	vert.Position = [3]float32{
		obj.Positions[3*ref.Position+0],
		obj.Positions[3*ref.Position+1],
		obj.Positions[3*ref.Position+2],
	}

	if ref.Normal >= 0 {
		vert.Normal = [3]float32{
			obj.Normals[3*ref.Normal+0],
			obj.Normals[3*ref.Normal+1],
			obj.Normals[3*ref.Normal+2],
		}
	} else {
		vert.Normal = geometricNormal(obj, vert.Position, offset, v, arity)
	}

	if ref.TexCoord >= 0 {
		vert.UV = [2]float32{
			obj.TexCoords[2*ref.TexCoord+0],
			1 - obj.TexCoords[2*ref.TexCoord+1],
		}
	}

	return vert
}

// geometricNormal approximates the vertex normal as the normalized cross
// product of the edges to the next and previous vertex within the same
// face. This follows face winding only; it is a face-local approximation,
// not a smoothed normal.
func geometricNormal(obj *formats.OBJ, pos [3]float32, offset, v, arity int) [3]float32 {
	prev := obj.Refs[offset+(v-1+arity)%arity]
	next := obj.Refs[offset+(v+1)%arity]

	pp := [3]float32{
		obj.Positions[3*prev.Position+0],
		obj.Positions[3*prev.Position+1],
		obj.Positions[3*prev.Position+2],
	}
	np := [3]float32{
		obj.Positions[3*next.Position+0],
		obj.Positions[3*next.Position+1],
		obj.Positions[3*next.Position+2],
	}

	e1 := [3]float32{np[0] - pos[0], np[1] - pos[1], np[2] - pos[2]}
	e2 := [3]float32{pp[0] - pos[0], pp[1] - pos[1], pp[2] - pos[2]}

	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}

	mag := float32(gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if mag < 1e-12 {
		// Degenerate edge pair; keep the zero vector rather than a NaN
		return [3]float32{}
	}
	return [3]float32{n[0] / mag, n[1] / mag, n[2] / mag}
}
