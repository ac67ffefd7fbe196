// Package camera provides the viewing aperture and camera transform used by
// both pipeline stages: rasterization consumes view/projection matrices,
// the trace kernel consumes the eye position and frustum basis.
package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Aperture describes the perspective viewing volume.
type Aperture struct {
	FOV    float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// DefaultAperture returns a square 45-degree aperture.
func DefaultAperture() Aperture {
	return Aperture{
		FOV:    45,
		Aspect: 1,
		Near:   0.1,
		Far:    1000,
	}
}

// Projection returns the perspective projection matrix.
func (a Aperture) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(a.FOV), a.Aspect, a.Near, a.Far)
}

// Camera combines a world-space transform with an aperture.
type Camera struct {
	Transform mgl32.Mat4
	Aperture  Aperture
}

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	return &Camera{
		Transform: mgl32.Ident4(),
		Aperture:  DefaultAperture(),
	}
}

// Position returns the camera's world-space position.
func (c *Camera) Position() mgl32.Vec3 {
	return c.Transform.Col(3).Vec3()
}

// View returns the view matrix, the inverse of the camera transform.
func (c *Camera) View() mgl32.Mat4 {
	return c.Transform.Inv()
}

// Axes returns the camera's world-space right, up and forward directions.
func (c *Camera) Axes() (right, up, forward mgl32.Vec3) {
	right = c.Transform.Col(0).Vec3().Normalize()
	up = c.Transform.Col(1).Vec3().Normalize()
	forward = c.Transform.Col(2).Vec3().Mul(-1).Normalize()
	return
}

// FrustumBasis returns the three axes spanning the view frustum for the
// trace kernel: u along the right direction scaled by tan(fov/2)*aspect,
// v along up scaled by tan(fov/2), w the unit forward direction. A pixel's
// primary ray is w + su*u + sv*v for s in [-1, 1].
func (c *Camera) FrustumBasis() (u, v, w mgl32.Vec3) {
	right, up, forward := c.Axes()
	h := float32(gomath.Tan(float64(mgl32.DegToRad(c.Aperture.FOV)) / 2))

	u = right.Mul(h * c.Aperture.Aspect)
	v = up.Mul(h)
	w = forward
	return
}

// Translate moves the camera along its local axes.
func (c *Camera) Translate(d mgl32.Vec3) {
	c.Transform = c.Transform.Mul4(mgl32.Translate3D(d.X(), d.Y(), d.Z()))
}

// SetYawPitch reorients the camera around its current position. Angles are
// in degrees; pitch should be clamped by the caller (the UI clamps ±89°).
func (c *Camera) SetYawPitch(yaw, pitch float32) {
	pos := c.Position()
	rot := mgl32.AnglesToQuat(mgl32.DegToRad(pitch), mgl32.DegToRad(yaw), 0, mgl32.XYZ).Mat4()
	c.Transform = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(rot)
}

// SetAspect updates the aperture aspect ratio, used by the UI each frame
// with the viewport panel extent (takes effect next frame).
func (c *Camera) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aperture.Aspect = aspect
	}
}
