package scene

import "billboard-demo/internal/camera"

// Button is the per-frame state of a mouse button.
type Button struct {
	Pressed  bool // went down this frame
	Held     bool
	Released bool // went up this frame
}

// Input is one frame of user input, sampled by the window layer.
type Input struct {
	Camera camera.Controls

	Grab Button

	// Held keys that pin the named light to the camera.
	LightKeys map[string]bool

	ToggleFullscreen bool
	TogglePreview    bool
	Quit             bool

	// Suspended is set while another surface (the console) owns the keyboard.
	// Any drag in progress is dropped.
	Suspended bool

	MouseX, MouseY float32
	Width, Height  float32
}

// Requests are side effects the scene asks of the window layer after an Update.
type Requests struct {
	MouseLock        *bool // set when mouse look changed; value is the new lock state
	ToggleFullscreen bool
	Quit             bool
}
