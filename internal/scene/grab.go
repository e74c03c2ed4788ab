package scene

import (
	"billboard-demo/internal/vecmath"

	"github.com/go-gl/mathgl/mgl32"
)

// grab is a drag in progress: the object and the camera-facing plane it slides on.
type grab struct {
	obj  *Object
	ctr  mgl32.Vec3
	norm mgl32.Vec3
}

// Pick returns the nearest object under the mouse ray and its distance, or nil.
func (s *Scene) Pick() (*Object, float32) {
	record := float32(-1)
	var closest *Object
	for _, o := range s.Objects {
		dist := o.Mesh.IntersectRay(s.Camera.Pos, s.mouseDir)
		if dist < 0 {
			continue
		}
		if record < 0 || dist < record {
			record = dist
			closest = o
		}
	}
	return closest, record
}

// BeginGrab starts dragging the object under the cursor. Only the nearest hit counts,
// so a draggable object hidden behind another cannot be grabbed.
func (s *Scene) BeginGrab() {
	s.EndGrab()

	obj, dist := s.Pick()
	if obj == nil || !obj.Draggable {
		return
	}
	s.grab = &grab{
		obj:  obj,
		ctr:  s.Camera.Pos.Add(s.mouseDir.Mul(dist)),
		norm: s.Camera.Dir,
	}
}

// UpdateGrab moves the grabbed object by how far the cursor moved across the grab plane.
func (s *Scene) UpdateGrab() {
	g := s.grab
	if g == nil {
		return
	}
	prev, ok := vecmath.RayIntersectPlane(s.Camera.Pos, s.prevMouseDir, g.ctr, g.norm)
	if !ok {
		return
	}
	curr, ok := vecmath.RayIntersectPlane(s.Camera.Pos, s.mouseDir, g.ctr, g.norm)
	if !ok {
		return
	}
	delta := curr.Sub(prev)
	if !vecmath.Finite(delta) {
		return
	}
	m := g.obj.Mesh
	m.Translation = m.Translation.Add(delta)
	m.UpdateMatrices()
}

// EndGrab releases the grabbed object, if any.
func (s *Scene) EndGrab() {
	s.grab = nil
}

// Grabbed returns the object being dragged, or nil.
func (s *Scene) Grabbed() *Object {
	if s.grab == nil {
		return nil
	}
	return s.grab.obj
}
