package mesh

import (
	"reflect"
	"testing"

	"github.com/vedavamadathil/sdf-engine/internal/engine/material"
	"github.com/vedavamadathil/sdf-engine/pkg/formats"
)

// cubeOBJ is a unit cube as 6 quad faces with one normal per face, so no
// vertex is shared across faces once resolved.
const cubeOBJ = `
v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
vn 0 0 -1
vn 0 0 1
vn 0 -1 0
vn 1 0 0
vn 0 1 0
vn -1 0 0
f 1//1 2//1 3//1 4//1
f 5//2 6//2 7//2 8//2
f 1//3 2//3 6//3 5//3
f 2//4 3//4 7//4 6//4
f 3//5 4//5 8//5 7//5
f 4//6 1//6 5//6 8//6
`

// cubeTrisOBJ is the same cube with each quad split into two triangles,
// reusing the same face-vertex references.
const cubeTrisOBJ = `
v -1 -1 -1
v 1 -1 -1
v 1 1 -1
v -1 1 -1
v -1 -1 1
v 1 -1 1
v 1 1 1
v -1 1 1
vn 0 0 -1
vn 0 0 1
vn 0 -1 0
vn 1 0 0
vn 0 1 0
vn -1 0 0
f 1//1 2//1 3//1
f 1//1 3//1 4//1
f 5//2 6//2 7//2
f 5//2 7//2 8//2
f 1//3 2//3 6//3
f 1//3 6//3 5//3
f 2//4 3//4 7//4
f 2//4 7//4 6//4
f 3//5 4//5 8//5
f 3//5 8//5 7//5
f 4//6 1//6 5//6
f 4//6 5//6 8//6
`

func mustParse(t *testing.T, data string) *formats.OBJ {
	t.Helper()
	obj, err := formats.ParseOBJ([]byte(data), nil)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	return obj
}

func TestBuildCubeQuads(t *testing.T) {
	reg := material.NewRegistry()
	model := Build(mustParse(t, cubeOBJ), reg, "")

	if len(model.Submeshes) != 1 {
		t.Fatalf("expected 1 submesh, got %d", len(model.Submeshes))
	}
	sm := model.Submeshes[0]
	if len(sm.Vertices) != 24 {
		t.Errorf("expected 24 unique vertices, got %d", len(sm.Vertices))
	}
	if len(sm.Indices) != 24 {
		t.Errorf("expected 24 indices, got %d", len(sm.Indices))
	}
}

func TestBuildCubeTriangulated(t *testing.T) {
	reg := material.NewRegistry()
	model := Build(mustParse(t, cubeTrisOBJ), reg, "")

	if len(model.Submeshes) != 1 {
		t.Fatalf("expected 1 submesh, got %d", len(model.Submeshes))
	}
	sm := model.Submeshes[0]
	if len(sm.Vertices) != 24 {
		t.Errorf("expected 24 unique vertices, got %d", len(sm.Vertices))
	}
	if len(sm.Indices) != 36 {
		t.Errorf("expected 36 indices, got %d", len(sm.Indices))
	}
}

func TestBuildIndexValidity(t *testing.T) {
	reg := material.NewRegistry()
	model := Build(mustParse(t, cubeTrisOBJ), reg, "")

	for si, sm := range model.Submeshes {
		for _, idx := range sm.Indices {
			if int(idx) >= len(sm.Vertices) {
				t.Fatalf("submesh %d: index %d out of range (%d vertices)", si, idx, len(sm.Vertices))
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	regA := material.NewRegistry()
	regB := material.NewRegistry()

	a := Build(mustParse(t, cubeTrisOBJ), regA, "")
	b := Build(mustParse(t, cubeTrisOBJ), regB, "")

	if len(a.Submeshes) != len(b.Submeshes) {
		t.Fatalf("submesh counts differ: %d vs %d", len(a.Submeshes), len(b.Submeshes))
	}
	for i := range a.Submeshes {
		if !reflect.DeepEqual(a.Submeshes[i].Vertices, b.Submeshes[i].Vertices) {
			t.Errorf("submesh %d: vertex sequences differ", i)
		}
		if !reflect.DeepEqual(a.Submeshes[i].Indices, b.Submeshes[i].Indices) {
			t.Errorf("submesh %d: index sequences differ", i)
		}
	}
}

func TestBuildMaterialChangeSplitsSubmeshes(t *testing.T) {
	data := `
mtllib m.mtl
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
usemtl a
f 1 2 3
usemtl b
f 2 4 3
`
	resolve := func(string) ([]byte, error) {
		return []byte("newmtl a\nKd 1 0 0\nnewmtl b\nKd 0 1 0\n"), nil
	}
	obj, err := formats.ParseOBJ([]byte(data), resolve)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	reg := material.NewRegistry()
	model := Build(obj, reg, "")

	if len(model.Submeshes) != 2 {
		t.Fatalf("expected 2 submeshes, got %d", len(model.Submeshes))
	}
	for i, sm := range model.Submeshes {
		if len(sm.Indices) != 3 {
			t.Errorf("submesh %d: expected exactly one face (3 indices), got %d", i, len(sm.Indices))
		}
		if len(sm.Vertices) != 3 {
			t.Errorf("submesh %d: expected 3 vertices, got %d", i, len(sm.Vertices))
		}
	}
	if model.Submeshes[0].Material == model.Submeshes[1].Material {
		t.Error("expected distinct materials per submesh")
	}
}

func TestBuildPartitionCoverage(t *testing.T) {
	obj := mustParse(t, cubeTrisOBJ)
	reg := material.NewRegistry()
	model := Build(obj, reg, "")

	faces := 0
	for _, sm := range model.Submeshes {
		faces += len(sm.Indices) / 3
	}
	if faces != obj.FaceCount() {
		t.Errorf("expected %d faces across submeshes, got %d", obj.FaceCount(), faces)
	}
}

func TestBuildMissingTexCoordDefaultsToZero(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	reg := material.NewRegistry()
	model := Build(mustParse(t, data), reg, "")

	for _, v := range model.Submeshes[0].Vertices {
		if v.UV != [2]float32{0, 0} {
			t.Errorf("expected UV (0,0) for missing texcoord, got %v", v.UV)
		}
	}
}

func TestBuildUVFlip(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0.25 0.75
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
`
	reg := material.NewRegistry()
	model := Build(mustParse(t, data), reg, "")

	v := model.Submeshes[0].Vertices[0]
	if v.UV != [2]float32{0.25, 0.25} {
		t.Errorf("expected V-flipped UV (0.25, 0.25), got %v", v.UV)
	}
}

func TestBuildGeometricNormalSynthesis(t *testing.T) {
	// CCW triangle in the XY plane; synthesized normals must point +Z.
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`
	reg := material.NewRegistry()
	model := Build(mustParse(t, data), reg, "")

	for i, v := range model.Submeshes[0].Vertices {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d: expected synthesized normal (0,0,1), got %v", i, v.Normal)
		}
	}
}

func TestBuildMergesBitIdenticalVertices(t *testing.T) {
	// Positions 1 and 2 are bit-identical, so refs with distinct triples
	// resolve to the same vertex and must merge.
	data := `
v 0 0 0
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 3//1 4//1
f 2//1 3//1 4//1
`
	reg := material.NewRegistry()
	model := Build(mustParse(t, data), reg, "")

	sm := model.Submeshes[0]
	if len(sm.Vertices) != 3 {
		t.Errorf("expected 3 unique vertices after merge, got %d", len(sm.Vertices))
	}
	if len(sm.Indices) != 6 {
		t.Errorf("expected 6 indices, got %d", len(sm.Indices))
	}
	if sm.Indices[0] != sm.Indices[3] {
		t.Error("expected merged refs to share an index")
	}
}

func TestBuildNegativeZeroDoesNotMerge(t *testing.T) {
	// Dedup keys are bit patterns, so -0 and +0 stay distinct vertices.
	data := `
v 0 0 0
v -0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 3//1 4//1
f 2//1 3//1 4//1
`
	reg := material.NewRegistry()
	model := Build(mustParse(t, data), reg, "")

	if got := len(model.Submeshes[0].Vertices); got != 4 {
		t.Errorf("expected -0 and +0 positions to stay distinct (4 vertices), got %d", got)
	}
}

func TestBuildEmptyModel(t *testing.T) {
	reg := material.NewRegistry()

	model := Build(nil, reg, "")
	if len(model.Submeshes) != 0 {
		t.Errorf("nil input: expected no submeshes, got %d", len(model.Submeshes))
	}

	obj := mustParse(t, "v 0 0 0\n")
	model = Build(obj, reg, "")
	if len(model.Submeshes) != 0 {
		t.Errorf("zero faces: expected no submeshes, got %d", len(model.Submeshes))
	}
	if reg.Len() != 0 {
		t.Errorf("expected no materials registered, got %d", reg.Len())
	}
}

func TestBuildPlaceholderMaterialRegisteredOnce(t *testing.T) {
	data := `
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
f 1 2 3
`
	reg := material.NewRegistry()
	model := Build(mustParse(t, data), reg, "")

	if reg.Len() != 1 {
		t.Fatalf("expected single placeholder material, got %d", reg.Len())
	}
	if model.Submeshes[0].Material != 0 {
		t.Errorf("expected placeholder index 0, got %d", model.Submeshes[0].Material)
	}
}

func TestBuildEmissiveSubset(t *testing.T) {
	data := `
mtllib m.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl light
f 1 2 3
usemtl wall
f 1 2 3
`
	resolve := func(string) ([]byte, error) {
		return []byte("newmtl light\nKe 17 12 4\nnewmtl wall\nKd 0.7 0.7 0.7\n"), nil
	}
	obj, err := formats.ParseOBJ([]byte(data), resolve)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	reg := material.NewRegistry()
	model := Build(obj, reg, "")

	if len(model.Submeshes) != 2 {
		t.Fatalf("expected 2 submeshes, got %d", len(model.Submeshes))
	}
	if len(model.Emissive) != 1 {
		t.Fatalf("expected 1 emissive submesh, got %d", len(model.Emissive))
	}
	if model.Emissive[0] != model.Submeshes[0] {
		t.Error("expected the light submesh in the emissive subset")
	}
}

func TestVertexKeyBitExact(t *testing.T) {
	a := Vertex{Position: [3]float32{1, 2, 3}}
	b := Vertex{Position: [3]float32{1, 2, 3}}
	if a.key() != b.key() {
		t.Error("identical vertices must share a key")
	}

	c := Vertex{Position: [3]float32{1, 2, 3.0000001}}
	if a.key() == c.key() {
		t.Error("different vertices must not share a key")
	}
}
