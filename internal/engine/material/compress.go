package material

// Compressed record layout: four 4-component float groups per material.
//
//	texel 0: diffuse.rgb,  1
//	texel 1: specular.rgb, 1
//	texel 2: emission.rgb, 1
//	texel 3: roughness broadcast across all four components
const (
	// Stride is the number of RGBA texels per compressed material record.
	Stride = 4
	// Floats is the number of float components per compressed record.
	Floats = Stride * 4
)

// Compress packs the entire registry, in registry order, into a flat float
// array ready for upload as an RGBA32F texture of width Stride*Len. It must
// be re-run (and the GPU copy reallocated) whenever the registry grows.
func Compress(r *Registry) []float32 {
	out := make([]float32, 0, r.Len()*Floats)
	for _, m := range r.materials {
		out = append(out,
			m.Diffuse[0], m.Diffuse[1], m.Diffuse[2], 1,
			m.Specular[0], m.Specular[1], m.Specular[2], 1,
			m.Emission[0], m.Emission[1], m.Emission[2], 1,
			m.Roughness, m.Roughness, m.Roughness, m.Roughness,
		)
	}
	return out
}
