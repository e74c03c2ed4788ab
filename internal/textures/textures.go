package textures

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DefaultMaxSize caps the longest edge of loaded images (pixels).
const DefaultMaxSize = 2048

// Names of generated textures that can stand in for an image path.
const (
	NameBlank   = "blank"
	NameUV      = "uv"
	NameChecker = "checker"
)

const (
	builtinSize = 1024
	checkerCell = 64
)

// Logger is the logging surface used for fallbacks.
type Logger interface {
	Logf(format string, args ...any)
}

// Blank returns a 1x1 opaque white image; lit and tinted, it renders as plain shading.
func Blank() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	return img
}

// UV returns a gradient where red encodes u and green encodes v, handy for checking texture mapping.
func UV(w, h int) *image.RGBA {
	if w <= 0 || h <= 0 {
		return Blank()
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(255 * x / max(w-1, 1)),
				G: uint8(255 * y / max(h-1, 1)),
				A: 255,
			})
		}
	}
	return img
}

// Checker returns a black/white checkerboard with square cells of the given size.
func Checker(w, h, cell int) *image.RGBA {
	if w <= 0 || h <= 0 || cell <= 0 {
		return Blank()
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.Black
			if (x/cell+y/cell)%2 == 0 {
				c = color.White
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// IsBlank reports whether path names the blank texture rather than a file.
func IsBlank(path string) bool {
	p := strings.TrimSpace(path)
	return p == "" || p == NameBlank
}

// IsBuiltin reports whether path names a generated texture ("", "blank", "uv" or "checker").
func IsBuiltin(path string) bool {
	_, ok := Builtin(path)
	return ok
}

// Builtin generates the texture named by path. ok is false for anything that should be
// loaded from disk.
func Builtin(path string) (img *image.RGBA, ok bool) {
	switch p := strings.ToLower(strings.TrimSpace(path)); {
	case IsBlank(p):
		return Blank(), true
	case p == NameUV:
		return UV(builtinSize, builtinSize), true
	case p == NameChecker:
		return Checker(builtinSize, builtinSize, checkerCell), true
	}
	return nil, false
}

// Load decodes an image file and downsizes it so neither edge exceeds maxSize (0 = DefaultMaxSize).
func Load(path string, maxSize int) (*image.RGBA, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("textures: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("textures: %s: empty image", path)
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if w, h, ok := fit(b.Dx(), b.Dy(), maxSize); ok {
		return transform.Resize(img, w, h, transform.Linear), nil
	}
	return toRGBA(img), nil
}

// LoadOrBlank resolves built-in names, then falls back to Load. Any load failure yields
// Blank() and a log line.
func LoadOrBlank(path string, maxSize int, log Logger) *image.RGBA {
	if img, ok := Builtin(path); ok {
		return img
	}
	img, err := Load(path, maxSize)
	if err != nil {
		if log != nil {
			log.Logf("texture %s unavailable, using blank: %v", path, err)
		}
		return Blank()
	}
	return img
}

// fit scales (w, h) down proportionally so the longest edge is limit.
func fit(w, h, limit int) (nw, nh int, ok bool) {
	if w <= limit && h <= limit {
		return w, h, false
	}
	if w >= h {
		return limit, max(1, h*limit/w), true
	}
	return max(1, w*limit/h), limit, true
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
