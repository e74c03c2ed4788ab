package camera_test

import (
	"testing"

	"billboard-demo/internal/camera"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func assertVec(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDeltaf(t, want[i], got[i], delta, "component %d: want %v, got %v", i, want, got)
	}
}

func TestNewLooksDownAtOrigin(t *testing.T) {
	c := camera.New()
	assert.Equal(t, mgl32.Vec3{0, 2, 2}, c.Pos)
	assert.InDelta(t, 1, c.Dir.Len(), tol)
	assert.Less(t, c.Dir.Y(), float32(0))
	assert.Less(t, c.Dir.Z(), float32(0))
	assert.False(t, c.MouseLook)
}

func TestLookWithKeys(t *testing.T) {
	c := camera.New()
	yaw, pitch := c.Yaw, c.Pitch

	c.Look(camera.Controls{TurnLeft: true, TurnUp: true}, 0.5)
	assert.InDelta(t, yaw+0.5, c.Yaw, tol)
	assert.InDelta(t, pitch+0.5, c.Pitch, tol)

	c.Look(camera.Controls{TurnRight: true, TurnDown: true}, 0.25)
	assert.InDelta(t, yaw+0.25, c.Yaw, tol)
	assert.InDelta(t, pitch+0.25, c.Pitch, tol)

	// mouse deltas are ignored until mouse look is on
	c.Look(camera.Controls{MouseDX: 100, MouseDY: 100}, 1)
	assert.InDelta(t, yaw+0.25, c.Yaw, tol)
}

func TestMouseLookToggle(t *testing.T) {
	c := camera.New()
	yaw, pitch := c.Yaw, c.Pitch

	assert.True(t, c.Look(camera.Controls{ToggleMouseLook: true, MouseDX: 2, MouseDY: -1}, 0.1))
	assert.True(t, c.MouseLook)
	assert.InDelta(t, yaw-0.5*0.1*2, c.Yaw, tol)
	assert.InDelta(t, pitch+0.5*0.1*1, c.Pitch, tol)

	// arrows do nothing in mouse look
	assert.False(t, c.Look(camera.Controls{TurnLeft: true}, 1))
	assert.InDelta(t, yaw-0.1, c.Yaw, tol)

	c.Look(camera.Controls{ToggleMouseLook: true}, 0)
	assert.False(t, c.MouseLook)
}

func TestPitchClamp(t *testing.T) {
	c := camera.New()
	c.Look(camera.Controls{TurnUp: true}, 10)
	assert.Less(t, c.Pitch, math32.Pi/2)
	assert.InDelta(t, math32.Pi/2-0.001, c.Pitch, tol)

	c.Look(camera.Controls{TurnDown: true}, 20)
	assert.Greater(t, c.Pitch, -math32.Pi/2)
	assert.InDelta(t, 0.001-math32.Pi/2, c.Pitch, tol)
}

func TestMove(t *testing.T) {
	c := camera.New()
	c.Yaw = 0 // forward is +Z
	c.Pos = mgl32.Vec3{}

	c.Move(camera.Controls{Forward: true}, 1)
	assertVec(t, mgl32.Vec3{0, 0, 5}, c.Pos, tol)

	c.Move(camera.Controls{Backward: true}, 1)
	assertVec(t, mgl32.Vec3{0, 0, 2}, c.Pos, tol)

	c.Move(camera.Controls{Left: true}, 0.5)
	assertVec(t, mgl32.Vec3{2, 0, 2}, c.Pos, tol)

	c.Move(camera.Controls{Right: true, Up: true}, 0.5)
	assertVec(t, mgl32.Vec3{0, 2, 2}, c.Pos, tol)

	c.Move(camera.Controls{Down: true}, 0.25)
	assertVec(t, mgl32.Vec3{0, 1, 2}, c.Pos, tol)
}

func TestMouseRayCenterMatchesDir(t *testing.T) {
	c := camera.New()
	c.UpdateMatrices(800.0 / 600.0)
	ray := c.MouseRay(400, 300, 800, 600)
	assertVec(t, c.Dir, ray, 1e-3)
}
