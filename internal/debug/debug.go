package debug

import (
	"fmt"
	"image/color"

	"billboard-demo/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Only refresh the text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds the on-screen overlays: FPS counter and camera/grab readout. All off by default.
type Debug struct {
	ShowFPS    bool
	ShowCamera bool

	frameCount uint32
	fpsText    string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// Draw renders the enabled overlays at the top-right. Call after the scene in the draw loop.
func (d *Debug) Draw(s *scene.Scene) {
	d.frameCount++
	refresh := d.frameCount%updateInterval == 0

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if d.ShowFPS {
		if refresh || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.fpsText, screenW, y, rl.Green)
		y += lineHeight
	}
	if d.ShowCamera {
		// not throttled: grab state changes should show immediately
		drawRight(s.Status(), screenW, y, rl.DarkGray)
	}
}

func drawRight(text string, screenW, y int32, col color.RGBA) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, col)
}
