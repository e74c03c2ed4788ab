package vecmath

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used for parallel and degenerate checks.
const Epsilon = 1e-6

// WorldUp is +Y. Camera and billboard bases are built against it.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Polar3D converts yaw/pitch (radians) to a unit direction. (0, 0) looks down +Z.
func Polar3D(yaw, pitch float32) mgl32.Vec3 {
	return mgl32.Vec3{
		math32.Sin(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Cos(yaw) * math32.Cos(pitch),
	}
}

// RayIntersectPlane returns the point where the line orig+t*dir crosses the plane through ctr with normal norm.
// t may be negative. ok is false when dir is parallel to the plane.
func RayIntersectPlane(orig, dir, ctr, norm mgl32.Vec3) (pt mgl32.Vec3, ok bool) {
	denom := norm.Dot(dir)
	if math32.Abs(denom) < Epsilon {
		return orig, false
	}
	t := norm.Dot(ctr.Sub(orig)) / denom
	return orig.Add(dir.Mul(t)), true
}

// RayIntersectTriangle is a two-sided Möller–Trumbore test. It returns the ray parameter of the hit;
// hits at or behind the origin are rejected.
func RayIntersectTriangle(orig, dir, a, b, c mgl32.Vec3) (t float32, ok bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < Epsilon {
		return 0, false
	}
	inv := 1 / det
	s := orig.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t = e2.Dot(q) * inv
	if t <= Epsilon {
		return 0, false
	}
	return t, true
}

// View returns the world-to-camera matrix.
func View(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, target, up)
}

// Perspective builds an OpenGL-style projection. fovyDeg is the vertical field of view in degrees.
func Perspective(fovyDeg, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovyDeg), aspect, near, far)
}

// MouseRay unprojects a window-space mouse position through invViewProj and returns the
// unit direction from eye toward it. Window y grows downward.
func MouseRay(invViewProj mgl32.Mat4, eye mgl32.Vec3, mouseX, mouseY, width, height float32) mgl32.Vec3 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	ndcX := 2*mouseX/width - 1
	ndcY := 1 - 2*mouseY/height
	clip := mgl32.Vec4{ndcX, ndcY, 1, 1}
	world := invViewProj.Mul4x1(clip)
	if math32.Abs(world.W()) < Epsilon {
		return mgl32.Vec3{0, 0, -1}
	}
	pt := world.Vec3().Mul(1 / world.W())
	d := pt.Sub(eye)
	if d.Len() < Epsilon {
		return mgl32.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

// BillboardMatrix orients a +Z facing quad at pos so that it faces target, keeping it upright.
// ok is false when no stable basis exists (target at pos, or straight above/below it).
func BillboardMatrix(pos, target, scale mgl32.Vec3) (m mgl32.Mat4, ok bool) {
	toTarget := target.Sub(pos)
	if toTarget.Len() < Epsilon {
		return mgl32.Ident4(), false
	}
	z := toTarget.Normalize()
	x := WorldUp.Cross(z)
	if x.Len() < Epsilon {
		return mgl32.Ident4(), false
	}
	x = x.Normalize()
	y := z.Cross(x)
	m = mgl32.Mat4FromCols(
		x.Mul(scale.X()).Vec4(0),
		y.Mul(scale.Y()).Vec4(0),
		z.Mul(scale.Z()).Vec4(0),
		pos.Vec4(1),
	)
	return m, true
}

// RandNormal draws a standard normal sample with the Box–Muller transform.
func RandNormal(rng *rand.Rand) float32 {
	u := rng.Float32()
	for u == 0 {
		u = rng.Float32()
	}
	rho := math32.Sqrt(-2 * math32.Log(u))
	theta := 2 * math32.Pi * rng.Float32()
	return rho * math32.Cos(theta)
}

// RandDir returns a uniformly distributed unit vector.
func RandDir(rng *rand.Rand) mgl32.Vec3 {
	for {
		v := mgl32.Vec3{RandNormal(rng), RandNormal(rng), RandNormal(rng)}
		if v.Len() > Epsilon {
			return v.Normalize()
		}
	}
}

// Finite reports whether every component of v is a finite number.
func Finite(v mgl32.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
