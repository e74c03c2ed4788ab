package graphics

import (
	"billboard-demo/internal/camera"
	"billboard-demo/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PollInput samples raylib's keyboard and mouse into a scene.Input. lightKeys are the
// single-character key names (A-Z, 0-9) that pin lights. With suspended set (console open)
// only the mouse position and viewport are reported, and any drag is dropped.
func PollInput(lightKeys []string, suspended bool) scene.Input {
	mouse := rl.GetMousePosition()
	in := scene.Input{
		MouseX:    mouse.X,
		MouseY:    mouse.Y,
		Width:     float32(rl.GetScreenWidth()),
		Height:    float32(rl.GetScreenHeight()),
		Suspended: suspended,
	}
	if suspended {
		return in
	}

	delta := rl.GetMouseDelta()
	in.Camera = camera.Controls{
		ToggleMouseLook: rl.IsKeyPressed(rl.KeyF),
		TurnLeft:        rl.IsKeyDown(rl.KeyLeft),
		TurnRight:       rl.IsKeyDown(rl.KeyRight),
		TurnUp:          rl.IsKeyDown(rl.KeyUp),
		TurnDown:        rl.IsKeyDown(rl.KeyDown),
		Forward:         rl.IsKeyDown(rl.KeyW),
		Backward:        rl.IsKeyDown(rl.KeyS),
		Left:            rl.IsKeyDown(rl.KeyA),
		Right:           rl.IsKeyDown(rl.KeyD),
		Up:              rl.IsKeyDown(rl.KeySpace),
		Down:            rl.IsKeyDown(rl.KeyLeftShift),
		MouseDX:         delta.X,
		MouseDY:         delta.Y,
	}
	in.Grab = scene.Button{
		Pressed:  rl.IsMouseButtonPressed(rl.MouseButtonLeft),
		Held:     rl.IsMouseButtonDown(rl.MouseButtonLeft),
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
	}

	in.LightKeys = make(map[string]bool, len(lightKeys))
	for _, name := range lightKeys {
		if code, ok := keyCode(name); ok && rl.IsKeyDown(code) {
			in.LightKeys[name] = true
		}
	}

	in.ToggleFullscreen = rl.IsKeyPressed(rl.KeyF11)
	in.TogglePreview = rl.IsKeyPressed(rl.KeyC)
	in.Quit = rl.IsKeyPressed(rl.KeyEscape)
	return in
}

// keyCode maps "A".."Z" and "0".."9" to raylib key codes, which equal their ASCII values.
func keyCode(name string) (int32, bool) {
	if len(name) != 1 {
		return 0, false
	}
	c := name[0]
	switch {
	case c >= 'a' && c <= 'z':
		return int32(c - 'a' + 'A'), true
	case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return int32(c), true
	}
	return 0, false
}
