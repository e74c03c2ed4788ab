package graphics

import (
	"errors"
	"image/color"

	"billboard-demo/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNoWindow is returned when raylib could not create the window or GL context.
var ErrNoWindow = errors.New("graphics: window could not be created")

// Options configure the window.
type Options struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
}

// Window owns the raylib window and the state the scene asks it to change (cursor lock, quit).
type Window struct {
	opts         Options
	cursorLocked bool
	quit         bool
}

// NewWindow returns a window that is opened by Run.
func NewWindow(opts Options) *Window {
	return &Window{opts: opts}
}

// Run opens the window and runs the main loop until the window is closed or Quit is called.
// Each frame it calls update with the frame time, clears to background() and calls draw.
func (w *Window) Run(update func(dt float32), draw func(), background func() color.RGBA) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w.opts.Width, w.opts.Height, w.opts.Title)
	if !rl.IsWindowReady() {
		return ErrNoWindow
	}
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull) // Escape is handled as scene input
	rl.SetTargetFPS(w.opts.TargetFPS)
	if w.opts.Fullscreen {
		rl.ToggleFullscreen()
	}

	for !w.quit && !rl.WindowShouldClose() {
		update(rl.GetFrameTime())

		rl.BeginDrawing()
		rl.ClearBackground(background())
		draw()
		rl.EndDrawing()
	}
	return nil
}

// Apply carries out what the scene requested this frame.
func (w *Window) Apply(req scene.Requests) {
	if req.MouseLock != nil {
		w.LockCursor(*req.MouseLock)
	}
	if req.ToggleFullscreen {
		rl.ToggleFullscreen()
	}
	if req.Quit {
		w.Quit()
	}
}

// LockCursor hides and captures the cursor for mouse look, or releases it.
func (w *Window) LockCursor(lock bool) {
	if lock == w.cursorLocked {
		return
	}
	if lock {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
	w.cursorLocked = lock
}

// Quit ends the loop after the current frame.
func (w *Window) Quit() {
	w.quit = true
}
