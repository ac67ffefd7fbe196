// Package renderer drives the two-stage hybrid pipeline: rasterize the
// scene into a G-buffer, then dispatch the path tracing compute kernel
// into a floating point render target for the UI to composite.
package renderer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/vedavamadathil/sdf-engine/internal/engine/camera"
	"github.com/vedavamadathil/sdf-engine/internal/engine/envmap"
	"github.com/vedavamadathil/sdf-engine/internal/engine/framebuffer"
	"github.com/vedavamadathil/sdf-engine/internal/engine/material"
	"github.com/vedavamadathil/sdf-engine/internal/engine/mesh"
	"github.com/vedavamadathil/sdf-engine/internal/engine/renderer/shaders"
	"github.com/vedavamadathil/sdf-engine/internal/engine/shader"
	"github.com/vedavamadathil/sdf-engine/internal/engine/texture"
	"github.com/vedavamadathil/sdf-engine/internal/logger"
)

// Texture units for the compute stage. Image unit 0 is the render target.
const (
	unitPosition      = 1
	unitNormal        = 2
	unitMaterials     = 3
	unitMaterialIndex = 4
	unitEnvironment   = 5
)

// Renderer owns the frame resources: the G-buffer, the compute render
// target, the compressed material table and the uploaded mesh buffers.
// All methods must run on the GL thread.
type Renderer struct {
	raster shader.Program
	trace  shader.Program

	gbuffer *framebuffer.GBuffer
	target  texture.Texture

	materials texture.Texture
	registry  *material.Registry

	buffers []MeshBuffers

	envHandle *envmap.Handle
	envMap    texture.Texture

	modelPath     string
	emissiveCount int

	width  int32
	height int32

	// Raster uniform locations.
	locModel         int32
	locView          int32
	locProjection    int32
	locMaterialIndex int32

	// Trace uniform locations.
	locCamPosition int32
	locCamAxisU    int32
	locCamAxisV    int32
	locCamAxisW    int32
}

// New compiles both pipeline programs and allocates the frame resources
// at the given render resolution. A program link failure is fatal to the
// caller; there is no degraded mode without valid programs.
func New(width, height int32, shaderDir string, reg *material.Registry) (*Renderer, error) {
	raster, err := shader.NewRaster(
		loadSource(shaderDir, "gbuffer.vert", shaders.GBufferVertexShader),
		loadSource(shaderDir, "gbuffer.frag", shaders.GBufferFragmentShader),
	)
	if err != nil {
		return nil, fmt.Errorf("linking raster program: %w", err)
	}

	trace, err := shader.NewCompute(loadSource(shaderDir, "trace.comp", shaders.TraceComputeShader))
	if err != nil {
		raster.Destroy()
		return nil, fmt.Errorf("linking trace program: %w", err)
	}

	gbuf, err := framebuffer.NewGBuffer(width, height)
	if err != nil {
		raster.Destroy()
		trace.Destroy()
		return nil, err
	}

	r := &Renderer{
		raster:   raster,
		trace:    trace,
		gbuffer:  gbuf,
		target:   texture.NewRenderTarget(width, height),
		registry: reg,
		width:    width,
		height:   height,

		locModel:         raster.Uniform("model"),
		locView:          raster.Uniform("view"),
		locProjection:    raster.Uniform("projection"),
		locMaterialIndex: raster.Uniform("material_index"),

		locCamPosition: trace.Uniform("camera.position"),
		locCamAxisU:    trace.Uniform("camera.axis_u"),
		locCamAxisV:    trace.Uniform("camera.axis_v"),
		locCamAxisW:    trace.Uniform("camera.axis_w"),
	}

	gl.Enable(gl.DEPTH_TEST)

	return r, nil
}

// LoadModel replaces the scene geometry: drops the previous GPU buffers,
// builds the model from the file at path and uploads every submesh.
// Materials the model registers are re-uploaded as a fresh table.
func (r *Renderer) LoadModel(path string) {
	for i := range r.buffers {
		r.buffers[i].Destroy()
	}
	r.buffers = r.buffers[:0]

	model := mesh.Load(path, r.registry)
	for _, sm := range model.Submeshes {
		if b := UploadSubmesh(sm); b.Valid() {
			r.buffers = append(r.buffers, b)
		}
	}

	r.modelPath = path
	r.emissiveCount = len(model.Emissive)

	logger.Info("model uploaded",
		zap.String("path", path),
		zap.Int("submeshes", len(model.Submeshes)),
		zap.Int("emissive", len(model.Emissive)))

	r.uploadMaterials()
}

// ModelPath returns the most recently loaded model path.
func (r *Renderer) ModelPath() string {
	return r.modelPath
}

// SubmeshCount returns the number of uploaded submeshes.
func (r *Renderer) SubmeshCount() int {
	return len(r.buffers)
}

// EmissiveCount returns the number of emissive submeshes in the scene.
func (r *Renderer) EmissiveCount() int {
	return r.emissiveCount
}

// MaterialCount returns the registry size.
func (r *Renderer) MaterialCount() int {
	return r.registry.Len()
}

// EnvironmentReady reports whether an environment map is GPU resident.
func (r *Renderer) EnvironmentReady() bool {
	return r.envMap.Valid()
}

func (r *Renderer) uploadMaterials() {
	r.materials.Destroy()
	if r.registry.Len() == 0 {
		return
	}

	packed := material.Compress(r.registry)
	tex, err := texture.NewMaterialArray(packed, r.registry.Len())
	if err != nil {
		logger.Error("material table upload failed", zap.Error(err))
		return
	}
	r.materials = tex
}

// StartEnvironment launches the background environment map decode. Any
// previously loaded map keeps serving frames until the new decode lands.
func (r *Renderer) StartEnvironment(path string) {
	r.envHandle = envmap.Load(path)
}

// RenderFrame runs one pipeline iteration: raster the scene into the
// G-buffer, then dispatch the trace kernel over the render target. The
// kernel's stores are made visible before returning, so TargetTexture may
// be sampled by whatever composites next.
func (r *Renderer) RenderFrame(cam *camera.Camera) {
	r.rasterPass(cam)
	r.computePass(cam)
}

func (r *Renderer) rasterPass(cam *camera.Camera) {
	r.gbuffer.Bind()
	r.gbuffer.Clear()

	r.raster.Use()
	shader.SetMat4(r.locModel, mgl32.Ident4())
	shader.SetMat4(r.locView, cam.View())
	shader.SetMat4(r.locProjection, cam.Aperture.Projection())

	for _, b := range r.buffers {
		shader.SetUint(r.locMaterialIndex, uint32(b.source.Material))
		b.Draw()
	}
	gl.BindVertexArray(0)

	r.gbuffer.Unbind()
}

func (r *Renderer) computePass(cam *camera.Camera) {
	r.trace.Use()

	bindUnit(unitPosition, r.gbuffer.PositionTexture())
	bindUnit(unitNormal, r.gbuffer.NormalTexture())
	bindUnit(unitMaterialIndex, r.gbuffer.MaterialIndexTexture())
	bindUnit(unitMaterials, r.materials.ID())

	r.pollEnvironment()
	bindUnit(unitEnvironment, r.envMap.ID())

	r.target.BindImage(0)

	shader.SetVec3(r.locCamPosition, cam.Position())
	u, v, w := cam.FrustumBasis()
	shader.SetVec3(r.locCamAxisU, u)
	shader.SetVec3(r.locCamAxisV, v)
	shader.SetVec3(r.locCamAxisW, w)

	gl.DispatchCompute(uint32(r.width), uint32(r.height), 1)
	gl.MemoryBarrier(gl.SHADER_IMAGE_ACCESS_BARRIER_BIT | gl.TEXTURE_FETCH_BARRIER_BIT)
}

// pollEnvironment consumes the background decode at most once. A failed
// decode leaves the previous map (or none) in place.
func (r *Renderer) pollEnvironment() {
	if r.envHandle == nil {
		return
	}

	res, ready := r.envHandle.Poll()
	if !ready {
		return
	}
	r.envHandle = nil

	if res.Failed() {
		return
	}

	r.envMap.Destroy()
	r.envMap = texture.NewEnvironmentMap(res)
	logger.Info("environment map uploaded",
		zap.Int("width", res.Width), zap.Int("height", res.Height))
}

// TargetTexture returns the GL name of the path traced image.
func (r *Renderer) TargetTexture() uint32 {
	return r.target.ID()
}

// Size returns the render resolution.
func (r *Renderer) Size() (width, height int32) {
	return r.width, r.height
}

// Destroy releases every GPU resource the renderer owns.
func (r *Renderer) Destroy() {
	for i := range r.buffers {
		r.buffers[i].Destroy()
	}
	r.buffers = nil

	r.materials.Destroy()
	r.envMap.Destroy()
	r.target.Destroy()

	if r.gbuffer != nil {
		r.gbuffer.Destroy()
		r.gbuffer = nil
	}

	r.raster.Destroy()
	r.trace.Destroy()
}

func bindUnit(unit uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

// loadSource reads a shader override from dir, falling back to the
// embedded source when dir is empty or the file is absent.
func loadSource(dir, name, embedded string) string {
	if dir == "" {
		return embedded
	}

	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("using embedded shader", zap.String("name", name), zap.Error(err))
		return embedded
	}

	logger.Info("shader override loaded", zap.String("path", path))
	return string(data)
}
