package camera

import (
	"billboard-demo/internal/vecmath"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Movement speeds in world units (or radians) per second.
const (
	VerticalSpeed = 4
	ForwardSpeed  = 5
	BackwardSpeed = 3
	StrafeSpeed   = 4
	TurnSpeed     = 1

	DefaultSensitivity = 0.5
	DefaultFovY        = 90
	// Match raylib's BeginMode3D culling distances so unprojection agrees with what is drawn.
	DefaultNear = 0.01
	DefaultFar  = 1000

	pitchMargin = 0.001
)

// Controls is the subset of per-frame input the camera reacts to.
type Controls struct {
	ToggleMouseLook bool // pressed this frame

	TurnLeft, TurnRight, TurnUp, TurnDown bool

	Forward, Backward, Left, Right, Up, Down bool

	MouseDX, MouseDY float32
}

// Camera is a free-flying yaw/pitch camera.
type Camera struct {
	Pos   mgl32.Vec3
	Yaw   float32
	Pitch float32
	Dir   mgl32.Vec3

	MouseLook   bool
	Sensitivity float32

	FovY, Near, Far float32

	viewProj    mgl32.Mat4
	invViewProj mgl32.Mat4
}

// New returns the demo's starting camera: above and behind the origin, looking down at it.
func New() *Camera {
	c := &Camera{
		Pos:         mgl32.Vec3{0, 2, 2},
		Yaw:         -math32.Pi,
		Pitch:       -math32.Pi / 4,
		Sensitivity: DefaultSensitivity,
		FovY:        DefaultFovY,
		Near:        DefaultNear,
		Far:         DefaultFar,
	}
	c.UpdateDir()
	c.UpdateMatrices(1)
	return c
}

// UpdateDir recomputes Dir from yaw and pitch.
func (c *Camera) UpdateDir() {
	c.Dir = vecmath.Polar3D(c.Yaw, c.Pitch)
}

// Look turns the camera. It returns true when mouse look was toggled this frame so the
// window layer can lock or release the cursor.
func (c *Camera) Look(in Controls, dt float32) (toggled bool) {
	if in.ToggleMouseLook {
		c.MouseLook = !c.MouseLook
		toggled = true
	}

	if c.MouseLook {
		s := c.Sensitivity * dt
		c.Yaw -= s * in.MouseDX
		// screen y grows downward
		c.Pitch -= s * in.MouseDY
	} else {
		if in.TurnLeft {
			c.Yaw += TurnSpeed * dt
		}
		if in.TurnRight {
			c.Yaw -= TurnSpeed * dt
		}
		if in.TurnUp {
			c.Pitch += TurnSpeed * dt
		}
		if in.TurnDown {
			c.Pitch -= TurnSpeed * dt
		}
	}

	c.clampPitch()
	return toggled
}

func (c *Camera) clampPitch() {
	if c.Pitch > math32.Pi/2 {
		c.Pitch = math32.Pi/2 - pitchMargin
	}
	if c.Pitch < -math32.Pi/2 {
		c.Pitch = pitchMargin - math32.Pi/2
	}
}

// Forward is the horizontal facing direction used for walking.
func (c *Camera) Forward() mgl32.Vec3 {
	return mgl32.Vec3{math32.Sin(c.Yaw), 0, math32.Cos(c.Yaw)}
}

// Move translates the camera.
func (c *Camera) Move(in Controls, dt float32) {
	if in.Up {
		c.Pos[1] += VerticalSpeed * dt
	}
	if in.Down {
		c.Pos[1] -= VerticalSpeed * dt
	}

	fb := c.Forward()
	if in.Forward {
		c.Pos = c.Pos.Add(fb.Mul(ForwardSpeed * dt))
	}
	if in.Backward {
		c.Pos = c.Pos.Sub(fb.Mul(BackwardSpeed * dt))
	}

	lr := mgl32.Vec3{fb.Z(), 0, -fb.X()}
	if in.Left {
		c.Pos = c.Pos.Add(lr.Mul(StrafeSpeed * dt))
	}
	if in.Right {
		c.Pos = c.Pos.Sub(lr.Mul(StrafeSpeed * dt))
	}
}

// Target is the point one unit in front of the camera.
func (c *Camera) Target() mgl32.Vec3 {
	return c.Pos.Add(c.Dir)
}

// UpdateMatrices rebuilds the cached view-projection for the given viewport aspect ratio.
func (c *Camera) UpdateMatrices(aspect float32) {
	if aspect <= 0 {
		aspect = 1
	}
	view := vecmath.View(c.Pos, c.Target(), vecmath.WorldUp)
	proj := vecmath.Perspective(c.FovY, aspect, c.Near, c.Far)
	c.viewProj = proj.Mul4(view)
	c.invViewProj = c.viewProj.Inv()
}

// ViewProj returns the matrix computed by the last UpdateMatrices.
func (c *Camera) ViewProj() mgl32.Mat4 { return c.viewProj }

// MouseRay returns the unit world direction under the mouse, using the last UpdateMatrices.
func (c *Camera) MouseRay(mouseX, mouseY, width, height float32) mgl32.Vec3 {
	return vecmath.MouseRay(c.invViewProj, c.Pos, mouseX, mouseY, width, height)
}
