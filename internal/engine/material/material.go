// Package material provides the scene material arena and its GPU-compressed
// representation for the path tracer.
package material

import (
	"path/filepath"

	"github.com/vedavamadathil/sdf-engine/pkg/formats"
)

// Index is a positional handle into a Registry. Submeshes reference their
// material by Index, so registry order is load-bearing.
type Index int32

// Material holds the shading parameters for one surface.
type Material struct {
	Diffuse    [3]float32
	Specular   [3]float32
	Emission   [3]float32
	Roughness  float32
	Refraction float32

	// Optional texture paths, resolved relative to the material library.
	AlbedoTexture   string
	NormalTexture   string
	SpecularTexture string
	EmissionTexture string
}

// Emissive reports whether the material emits light.
func (m Material) Emissive() bool {
	return m.Emission[0] != 0 || m.Emission[1] != 0 || m.Emission[2] != 0
}

// Registry is an append-only arena of materials. It is filled at load time
// and treated as immutable afterwards; indices handed out by Add stay valid
// for the registry's lifetime.
type Registry struct {
	materials []Material
}

// NewRegistry creates an empty material registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends a material and returns its positional handle.
func (r *Registry) Add(m Material) Index {
	r.materials = append(r.materials, m)
	return Index(len(r.materials) - 1)
}

// At returns the material at the given index.
func (r *Registry) At(i Index) Material {
	return r.materials[i]
}

// Len returns the number of registered materials.
func (r *Registry) Len() int {
	return len(r.materials)
}

// FromOBJ converts an MTL record into an engine material. Texture paths are
// resolved relative to dir. Roughness is derived from the Phong shininess
// exponent and clamped away from the perfect-mirror and fully-diffuse ends.
func FromOBJ(m formats.OBJMaterial, dir string) Material {
	out := Material{
		Diffuse:    m.Diffuse,
		Specular:   m.Specular,
		Emission:   m.Emission,
		Roughness:  clamp(1-m.Shininess/1000, 1e-3, 0.999),
		Refraction: m.IOR,
	}

	if m.DiffuseMap != "" {
		out.AlbedoTexture = filepath.Join(dir, m.DiffuseMap)
	}
	if m.NormalMap != "" {
		out.NormalTexture = filepath.Join(dir, m.NormalMap)
	}
	if m.SpecularMap != "" {
		out.SpecularTexture = filepath.Join(dir, m.SpecularMap)
	}
	if m.EmissiveMap != "" {
		out.EmissionTexture = filepath.Join(dir, m.EmissiveMap)
	}

	return out
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
