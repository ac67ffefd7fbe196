// Package formats provides parsers for scene description file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Parse errors.
var (
	ErrEmptyOBJ      = errors.New("formats: empty OBJ data")
	ErrOBJIndexRange = errors.New("formats: face index out of range")
)

// FaceVertex is a raw reference triple into the OBJ attribute arrays.
// Normal and TexCoord are -1 when the face element does not carry them.
// Identity is the triple itself, not the resolved vertex.
type FaceVertex struct {
	Position int
	Normal   int
	TexCoord int
}

// OBJ holds a parsed Wavefront model: flat attribute arrays plus the flat
// face-vertex reference stream grouped by face. Faces are kept in file
// order so consecutive faces with the same material form contiguous runs.
type OBJ struct {
	Positions []float32 // x,y,z triples
	Normals   []float32 // x,y,z triples
	TexCoords []float32 // u,v pairs

	Refs          []FaceVertex // flat, grouped by face
	FaceArity     []int        // vertex count per face
	FaceMaterials []int        // index into Materials per face, -1 when none

	Materials []OBJMaterial
	MTLLibs   []string
}

// MTLResolver loads a material library referenced by an OBJ file. The name
// is the relative path as written in the mtllib directive.
type MTLResolver func(name string) ([]byte, error)

// LoadOBJ reads and parses an OBJ file from disk, resolving material
// libraries relative to the model's directory.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}

	dir := filepath.Dir(path)
	resolve := func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(dir, name))
	}

	return ParseOBJ(data, resolve)
}

// ParseOBJ parses Wavefront OBJ data. Material libraries are loaded through
// resolve; a nil resolver or a failed resolution leaves the material table
// empty for that library and faces referencing it carry material id -1.
func ParseOBJ(data []byte, resolve MTLResolver) (*OBJ, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyOBJ
	}

	obj := &OBJ{}
	matIDs := make(map[string]int)
	currentMat := -1

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			vals, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex position: %w", lineNo, err)
			}
			obj.Positions = append(obj.Positions, vals...)

		case "vn":
			vals, err := parseFloats(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex normal: %w", lineNo, err)
			}
			obj.Normals = append(obj.Normals, vals...)

		case "vt":
			vals, err := parseFloats(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("line %d: texture coordinate: %w", lineNo, err)
			}
			obj.TexCoords = append(obj.TexCoords, vals...)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with %d vertices", lineNo, len(fields)-1)
			}
			for _, elem := range fields[1:] {
				ref, err := parseFaceVertex(elem, len(obj.Positions)/3, len(obj.TexCoords)/2, len(obj.Normals)/3)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				obj.Refs = append(obj.Refs, ref)
			}
			obj.FaceArity = append(obj.FaceArity, len(fields)-1)
			obj.FaceMaterials = append(obj.FaceMaterials, currentMat)

		case "usemtl":
			if len(fields) >= 2 {
				if id, ok := matIDs[fields[1]]; ok {
					currentMat = id
				} else {
					currentMat = -1
				}
			}

		case "mtllib":
			// The directive may name multiple libraries
			for _, name := range fields[1:] {
				obj.MTLLibs = append(obj.MTLLibs, name)
				if resolve == nil {
					continue
				}
				mtlData, err := resolve(name)
				if err != nil {
					continue
				}
				mats := ParseMTL(mtlData)
				for _, m := range mats {
					matIDs[m.Name] = len(obj.Materials)
					obj.Materials = append(obj.Materials, m)
				}
			}

		default:
			// o, g, s and anything else carry no geometry
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning OBJ: %w", err)
	}

	return obj, nil
}

// FaceCount returns the number of faces in the model.
func (o *OBJ) FaceCount() int {
	return len(o.FaceArity)
}

// parseFaceVertex parses one face element of the forms p, p/t, p//n, p/t/n.
// OBJ indices are 1-based; negative indices are relative to the current end
// of the corresponding attribute array. Returned indices are 0-based, -1
// when absent.
func parseFaceVertex(elem string, nPos, nTex, nNorm int) (FaceVertex, error) {
	ref := FaceVertex{Position: -1, Normal: -1, TexCoord: -1}

	parts := strings.Split(elem, "/")
	if len(parts) > 3 {
		return ref, fmt.Errorf("face element %q: too many components", elem)
	}

	pos, err := resolveIndex(parts[0], nPos)
	if err != nil {
		return ref, fmt.Errorf("face element %q: %w", elem, err)
	}
	if pos < 0 || pos >= nPos {
		return ref, fmt.Errorf("face element %q: %w", elem, ErrOBJIndexRange)
	}
	ref.Position = pos

	if len(parts) > 1 && parts[1] != "" {
		tex, err := resolveIndex(parts[1], nTex)
		if err != nil {
			return ref, fmt.Errorf("face element %q: %w", elem, err)
		}
		if tex < 0 || tex >= nTex {
			return ref, fmt.Errorf("face element %q: %w", elem, ErrOBJIndexRange)
		}
		ref.TexCoord = tex
	}

	if len(parts) > 2 && parts[2] != "" {
		norm, err := resolveIndex(parts[2], nNorm)
		if err != nil {
			return ref, fmt.Errorf("face element %q: %w", elem, err)
		}
		if norm < 0 || norm >= nNorm {
			return ref, fmt.Errorf("face element %q: %w", elem, ErrOBJIndexRange)
		}
		ref.Normal = norm
	}

	return ref, nil
}

// resolveIndex converts a 1-based (or negative relative) OBJ index to 0-based.
func resolveIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q: %w", s, err)
	}
	if idx < 0 {
		return count + idx, nil
	}
	return idx - 1, nil
}

// parseFloats parses exactly n leading float fields.
func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}
