package terminal

import (
	"errors"
	"unicode/utf8"

	"billboard-demo/internal/commands"
	"billboard-demo/internal/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	BarHeight = 40
	prompt    = "> "
	fontSize  = 20
	padding   = 8
	// Number of log lines drawn above the input bar when the console is open.
	maxLinesOnScreen = 14
	lineHeight       = fontSize + 4
	maxLineLen       = 200
)

var (
	// Reused every frame when drawing the console to avoid per-frame color allocations.
	termBarColor    = rl.NewColor(40, 40, 40, 255)
	termLineColor   = rl.NewColor(80, 80, 80, 255)
	termChatBgColor = rl.NewColor(24, 24, 24, 220)
)

// Terminal is the console bar at the bottom of the screen, shown and hidden with the grave key.
// Lines starting with "/" are run through the command registry; everything typed is logged.
type Terminal struct {
	log      *logger.Logger
	reg      *commands.Registry
	inputBuf string
	open     bool
}

// New returns a closed Terminal that logs lines and runs "/..." through reg.
func New(log *logger.Logger, reg *commands.Registry) *Terminal {
	return &Terminal{log: log, reg: reg}
}

// IsOpen returns true when the console is visible and capturing keyboard input.
func (t *Terminal) IsOpen() bool {
	return t.open
}

// Update handles the toggle key and, when open, typing, backspace and enter. It reports whether
// the console owned the keyboard this frame, so keys that closed it are not seen by the scene.
func (t *Terminal) Update() (active bool) {
	wasOpen := t.open
	if rl.IsKeyPressed(rl.KeyGrave) || (t.open && rl.IsKeyPressed(rl.KeyEscape)) {
		t.open = !t.open
		// drop the character that toggled us
		for rl.GetCharPressed() != 0 {
		}
	}
	if !t.open {
		return wasOpen
	}
	if rl.IsKeyPressed(rl.KeyV) && (rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) || rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			t.inputBuf += pasted
		}
	} else {
		for {
			c := rl.GetCharPressed()
			if c == 0 {
				break
			}
			t.inputBuf += string(rune(c))
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) && len(t.inputBuf) > 0 {
		_, size := utf8.DecodeLastRuneInString(t.inputBuf)
		t.inputBuf = t.inputBuf[:len(t.inputBuf)-size]
	}
	if (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)) && t.inputBuf != "" {
		t.Submit(t.inputBuf)
		t.inputBuf = ""
	}
	return true
}

// Submit logs line and runs it if it is a command.
func (t *Terminal) Submit(line string) {
	t.log.Log(prompt + line)
	args, isCmd, err := commands.Parse(line)
	if !isCmd {
		t.log.Log("commands start with /, try /help")
		return
	}
	if err != nil {
		t.log.Log(err.Error())
		return
	}
	if err := t.reg.Execute(args); err != nil && !errors.Is(err, commands.ErrHelp) {
		t.log.Log(err.Error())
	}
}

// Draw draws the input bar at the bottom when open, and the recent log lines above it.
// Uses GetScreenWidth/GetScreenHeight so the bar matches the 2D overlay coordinate system.
func (t *Terminal) Draw() {
	if !t.open {
		return
	}
	screenW := rl.GetScreenWidth()
	screenH := rl.GetScreenHeight()
	barY := screenH - BarHeight

	chatHeight := maxLinesOnScreen * lineHeight
	chatY := barY - chatHeight
	if chatY < 0 {
		chatHeight = barY
		chatY = 0
	}
	if chatHeight > 0 {
		rl.DrawRectangle(0, int32(chatY), int32(screenW), int32(chatHeight), termChatBgColor)
	}
	lines := t.log.Lines()
	start := max(len(lines)-maxLinesOnScreen, 0)
	for i := start; i < len(lines); i++ {
		y := chatY + (i-start)*lineHeight + padding
		line := logger.Truncate(lines[i], maxLineLen)
		rl.DrawText(line, padding, int32(y), fontSize, rl.LightGray)
	}

	rl.DrawRectangle(0, int32(barY), int32(screenW), BarHeight, termBarColor)
	rl.DrawRectangle(0, int32(barY), int32(screenW), 1, termLineColor)
	rl.DrawText(prompt+t.inputBuf+"|", padding, int32(barY+padding), fontSize, rl.White)
}
