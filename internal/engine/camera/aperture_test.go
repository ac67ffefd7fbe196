package camera

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFrustumBasisIdentity(t *testing.T) {
	c := New()
	u, v, w := c.FrustumBasis()

	// Forward is -Z for an identity transform
	if !closeVec(w, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("expected forward (0,0,-1), got %v", w)
	}

	// u and v are mutually orthogonal and orthogonal to w
	if gomath.Abs(float64(u.Dot(v))) > 1e-6 {
		t.Errorf("u and v not orthogonal: dot = %v", u.Dot(v))
	}
	if gomath.Abs(float64(u.Dot(w))) > 1e-6 {
		t.Errorf("u and w not orthogonal: dot = %v", u.Dot(w))
	}
	if gomath.Abs(float64(v.Dot(w))) > 1e-6 {
		t.Errorf("v and w not orthogonal: dot = %v", v.Dot(w))
	}

	// Half extents follow tan(fov/2) and the aspect ratio
	h := float32(gomath.Tan(float64(mgl32.DegToRad(c.Aperture.FOV)) / 2))
	if !closeFloat(v.Len(), h) {
		t.Errorf("expected |v| = %v, got %v", h, v.Len())
	}
	if !closeFloat(u.Len(), h*c.Aperture.Aspect) {
		t.Errorf("expected |u| = %v, got %v", h*c.Aperture.Aspect, u.Len())
	}
}

func TestFrustumBasisAspect(t *testing.T) {
	c := New()
	c.SetAspect(2)

	u, v, _ := c.FrustumBasis()
	if !closeFloat(u.Len(), 2*v.Len()) {
		t.Errorf("expected |u| = 2|v|, got |u|=%v |v|=%v", u.Len(), v.Len())
	}

	// Non-positive aspect is ignored
	c.SetAspect(0)
	if c.Aperture.Aspect != 2 {
		t.Errorf("expected aspect unchanged by zero, got %v", c.Aperture.Aspect)
	}
	c.SetAspect(-1)
	if c.Aperture.Aspect != 2 {
		t.Errorf("expected aspect unchanged by negative, got %v", c.Aperture.Aspect)
	}
}

func TestTranslateAndPosition(t *testing.T) {
	c := New()
	c.Translate(mgl32.Vec3{1, 2, 3})

	if !closeVec(c.Position(), mgl32.Vec3{1, 2, 3}) {
		t.Errorf("expected position (1,2,3), got %v", c.Position())
	}

	// View is the inverse transform: it maps the camera position to origin
	p := c.View().Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	if !closeVec(p.Vec3(), mgl32.Vec3{0, 0, 0}) {
		t.Errorf("expected view to map eye to origin, got %v", p.Vec3())
	}
}

func TestSetYawPitchKeepsPosition(t *testing.T) {
	c := New()
	c.Translate(mgl32.Vec3{5, 0, 0})
	c.SetYawPitch(90, 30)

	if !closeVec(c.Position(), mgl32.Vec3{5, 0, 0}) {
		t.Errorf("expected position preserved, got %v", c.Position())
	}

	// Axes stay orthonormal after reorientation
	right, up, forward := c.Axes()
	if gomath.Abs(float64(right.Dot(up))) > 1e-5 ||
		gomath.Abs(float64(right.Dot(forward))) > 1e-5 ||
		gomath.Abs(float64(up.Dot(forward))) > 1e-5 {
		t.Error("axes not orthogonal after SetYawPitch")
	}
}

func TestProjectionAspect(t *testing.T) {
	a := DefaultAperture()
	a.Aspect = 2

	proj := a.Projection()
	// The [0][0] entry is f/aspect; doubling aspect halves it.
	square := DefaultAperture().Projection()
	if !closeFloat(proj.At(0, 0)*2, square.At(0, 0)) {
		t.Errorf("expected horizontal scale halved at aspect 2: %v vs %v", proj.At(0, 0), square.At(0, 0))
	}
}

func closeFloat(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func closeVec(a, b mgl32.Vec3) bool {
	return closeFloat(a.X(), b.X()) && closeFloat(a.Y(), b.Y()) && closeFloat(a.Z(), b.Z())
}
