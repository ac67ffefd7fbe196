// Package shader provides OpenGL shader compilation utilities for the
// raster and compute stages.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is an owned, linked GL program. The zero value is invalid.
type Program struct {
	id uint32
}

// NewRaster compiles vertex and fragment sources and links them into a
// program. Link failure is fatal for the caller: the pipeline cannot run
// without its programs.
func NewRaster(vertexSrc, fragmentSrc string) (Program, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return Program{}, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return Program{}, err
	}
	defer gl.DeleteShader(frag)

	return linkProgram(vert, frag)
}

// NewCompute compiles a compute source and links it into a program.
func NewCompute(src string) (Program, error) {
	comp, err := compileShader(src, gl.COMPUTE_SHADER, "compute")
	if err != nil {
		return Program{}, err
	}
	defer gl.DeleteShader(comp)

	return linkProgram(comp)
}

func linkProgram(shaders ...uint32) (Program, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return Program{}, fmt.Errorf("link: %s", string(log))
	}

	return Program{id: program}, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// ID returns the underlying GL program name.
func (p Program) ID() uint32 {
	return p.id
}

// Valid reports whether the program linked successfully.
func (p Program) Valid() bool {
	return p.id != 0
}

// Use makes this program current.
func (p Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the uniform location for the given name, -1 if inactive.
func (p Program) Uniform(name string) int32 {
	return gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
}

// Destroy deletes the program.
func (p *Program) Destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// SetMat4 uploads a matrix uniform.
func SetMat4(loc int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}

// SetVec3 uploads a vec3 uniform.
func SetVec3(loc int32, v mgl32.Vec3) {
	gl.Uniform3f(loc, v.X(), v.Y(), v.Z())
}

// SetUint uploads an unsigned integer uniform.
func SetUint(loc int32, v uint32) {
	gl.Uniform1ui(loc, v)
}

// SetInt uploads an integer uniform (also used for sampler bindings).
func SetInt(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}
