package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"billboard-demo/internal/camera"
	"billboard-demo/internal/mesh"
	"billboard-demo/internal/palette"
	"billboard-demo/internal/vecmath"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of point lights the lit shader accepts.
const MaxLights = 4

// ErrTooManyLights is returned when a definition lists more than MaxLights lights.
var ErrTooManyLights = fmt.Errorf("scene: more than %d lights", MaxLights)

// ErrUnknownLight is returned when a light name does not exist.
var ErrUnknownLight = errors.New("scene: unknown light")

// ErrUnknownObject is returned when an object name does not exist.
var ErrUnknownObject = errors.New("scene: unknown object")

// Object is something drawn every frame.
type Object struct {
	Name      string
	Mesh      *mesh.Mesh
	Texture   string // image path; empty means the blank texture
	Draggable bool
	Billboard bool
}

// Light is a point light.
type Light struct {
	Name  string
	Pos   mgl32.Vec3
	Color palette.Color
	Key   string // held to pin the light to the camera
}

// Scene is the whole demo state: camera, lights, objects, grab and background color.
// It performs no drawing; the render package reads it each frame.
type Scene struct {
	Camera  *camera.Camera
	Lights  []*Light
	Objects []*Object

	Background *palette.Cycle
	// ShowPreview draws the first billboard's texture in a corner tile.
	ShowPreview bool

	mouseDir     mgl32.Vec3
	prevMouseDir mgl32.Vec3
	grab         *grab
	rng          *rand.Rand
}

// New assembles a scene. Objects flagged Billboard are re-oriented every Update.
func New(cam *camera.Camera, objects []*Object, lights []*Light, period float32, rng *rand.Rand) (*Scene, error) {
	if len(lights) > MaxLights {
		return nil, ErrTooManyLights
	}
	bg, err := palette.NewCycle(period, rng)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	s := &Scene{
		Camera:     cam,
		Lights:     lights,
		Objects:    objects,
		Background: bg,
		rng:        rng,
	}
	s.mouseDir = cam.Dir
	s.prevMouseDir = cam.Dir
	return s, nil
}

// Update advances the scene by dt seconds.
func (s *Scene) Update(in Input, dt float32) Requests {
	var req Requests

	aspect := float32(1)
	if in.Height > 0 {
		aspect = in.Width / in.Height
	}
	s.Camera.UpdateMatrices(aspect)
	s.updateMouseRay(in)

	// no looking or flying while dragging
	if s.grab == nil {
		if s.Camera.Look(in.Camera, dt) {
			lock := s.Camera.MouseLook
			req.MouseLock = &lock
		}
	}
	s.Camera.UpdateDir()
	if s.grab == nil {
		s.Camera.Move(in.Camera, dt)
	}

	if in.Suspended {
		s.EndGrab()
	}
	if in.Grab.Pressed {
		s.BeginGrab()
	}
	if in.Grab.Held {
		s.UpdateGrab()
	}
	if in.Grab.Released {
		s.EndGrab()
	}

	for _, l := range s.Lights {
		if l.Key != "" && in.LightKeys[l.Key] {
			l.Pos = s.Camera.Pos
		}
	}

	req.ToggleFullscreen = in.ToggleFullscreen
	req.Quit = in.Quit
	if in.TogglePreview {
		s.ShowPreview = !s.ShowPreview
	}

	s.UpdateBillboards()
	s.Background.Update(dt)
	return req
}

func (s *Scene) updateMouseRay(in Input) {
	s.prevMouseDir = s.mouseDir
	s.mouseDir = s.Camera.MouseRay(in.MouseX, in.MouseY, in.Width, in.Height)
}

// MouseDir is the world direction under the cursor this frame.
func (s *Scene) MouseDir() mgl32.Vec3 { return s.mouseDir }

// UpdateBillboards turns every billboard toward the camera, keeping the last orientation
// when the camera is directly above, below or inside it.
func (s *Scene) UpdateBillboards() {
	for _, o := range s.Objects {
		if !o.Billboard {
			continue
		}
		m, ok := vecmath.BillboardMatrix(o.Mesh.Translation, s.Camera.Pos, o.Mesh.Scale)
		if !ok {
			continue
		}
		o.Mesh.SetModel(m)
	}
}

// Light returns the light with the given name.
func (s *Scene) Light(name string) (*Light, error) {
	for _, l := range s.Lights {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLight, name)
}

// SetLightPos moves a named light.
func (s *Scene) SetLightPos(name string, pos mgl32.Vec3) error {
	l, err := s.Light(name)
	if err != nil {
		return err
	}
	if !vecmath.Finite(pos) {
		return fmt.Errorf("scene: light position %v is not finite", pos)
	}
	l.Pos = pos
	return nil
}

// AddObject places o in front of the camera at the given distance and adds it to the scene.
func (s *Scene) AddObject(o *Object, distance float32) {
	o.Mesh.Translation = s.Camera.Pos.Add(s.Camera.Dir.Mul(distance))
	o.Mesh.UpdateMatrices()
	s.Objects = append(s.Objects, o)
	s.UpdateBillboards()
}

// Scatter moves o radius units in a random direction, so repeated spawns do not stack.
func (s *Scene) Scatter(o *Object, radius float32) {
	if s.rng == nil || radius <= 0 {
		return
	}
	o.Mesh.Translation = o.Mesh.Translation.Add(vecmath.RandDir(s.rng).Mul(radius))
	o.Mesh.UpdateMatrices()
	s.UpdateBillboards()
}

// RemoveObject drops the named object, releasing the grab if it was being dragged.
func (s *Scene) RemoveObject(name string) (*Object, error) {
	for i, o := range s.Objects {
		if o.Name != name {
			continue
		}
		if s.Grabbed() == o {
			s.EndGrab()
		}
		s.Objects = append(s.Objects[:i], s.Objects[i+1:]...)
		return o, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownObject, name)
}

// FirstBillboard returns the first billboard object, or nil.
func (s *Scene) FirstBillboard() *Object {
	for _, o := range s.Objects {
		if o.Billboard {
			return o
		}
	}
	return nil
}

// Status summarises the camera pose and what is being dragged, for the debug overlay.
func (s *Scene) Status() string {
	c := s.Camera
	text := fmt.Sprintf("pos %.2f %.2f %.2f  yaw %.2f  pitch %.2f", c.Pos.X(), c.Pos.Y(), c.Pos.Z(), c.Yaw, c.Pitch)
	if c.MouseLook {
		text += "  [look]"
	}
	if g := s.Grabbed(); g != nil {
		lo, hi := g.Mesh.WorldBounds()
		text += fmt.Sprintf("  grabbing %s  bounds %.2f %.2f %.2f .. %.2f %.2f %.2f",
			g.Name, lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z())
	}
	return text
}

// SetColorPeriod changes how long each background blend takes.
func (s *Scene) SetColorPeriod(seconds float32) error {
	if err := s.Background.SetPeriod(seconds); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}

// ResetCamera puts the camera back at its starting pose and drops any grab.
func (s *Scene) ResetCamera() {
	fresh := camera.New()
	s.Camera.Pos = fresh.Pos
	s.Camera.Yaw = fresh.Yaw
	s.Camera.Pitch = fresh.Pitch
	s.Camera.UpdateDir()
	s.EndGrab()
}
