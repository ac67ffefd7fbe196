// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// GBufferVertexShader is the vertex shader for the G-buffer pass.
//
//go:embed gbuffer.vert
var GBufferVertexShader string

// GBufferFragmentShader is the fragment shader for the G-buffer pass.
//
//go:embed gbuffer.frag
var GBufferFragmentShader string

// TraceComputeShader is the path tracing compute kernel.
//
//go:embed trace.comp
var TraceComputeShader string
