package palette

import (
	"errors"
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPeriod is how long (seconds) the background takes to blend from one pastel to the next.
const DefaultPeriod = 5

// Pastel ranges: any hue, low saturation, high value.
const (
	pastelSatMin = 0.1
	pastelSatMax = 0.4
	pastelValMin = 0.75
	pastelValMax = 1.0
)

// Color is an opaque RGB color with components in [0, 1].
type Color struct {
	R, G, B float32
}

// RGBA converts to an 8-bit color for the graphics layer.
func (c Color) RGBA() color.RGBA {
	r, g, b := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Lerp blends linearly from c toward o; t=0 is c, t=1 is o.
func (c Color) Lerp(o Color, t float32) Color {
	b := c.colorful().BlendRgb(o.colorful(), float64(t))
	return fromColorful(b)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func fromColorful(c colorful.Color) Color {
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}
}

// HSVToRGB converts hue in degrees [0,360) with saturation and value in [0,1].
func HSVToRGB(h int, s, v float32) Color {
	h %= 360
	if h < 0 {
		h += 360
	}
	return fromColorful(colorful.Hsv(float64(h), float64(s), float64(v)))
}

// RandomPastel picks a random hue at low saturation and high brightness.
func RandomPastel(rng *rand.Rand) Color {
	h := rng.IntN(360)
	s := pastelSatMin + rng.Float32()*(pastelSatMax-pastelSatMin)
	v := pastelValMin + rng.Float32()*(pastelValMax-pastelValMin)
	return HSVToRGB(h, s, v)
}

// ErrPeriod is returned when a cycle period is not positive.
var ErrPeriod = errors.New("palette: period must be positive")

// Cycle blends the current color from prev to next over Period seconds, then rolls next into prev
// and picks a fresh pastel.
type Cycle struct {
	period  float32
	timer   float32
	prev    Color
	next    Color
	current Color
	rng     *rand.Rand
}

// NewCycle seeds prev and next with two random pastels.
func NewCycle(period float32, rng *rand.Rand) (*Cycle, error) {
	if period <= 0 {
		return nil, ErrPeriod
	}
	c := &Cycle{period: period, rng: rng}
	c.prev = RandomPastel(rng)
	c.next = RandomPastel(rng)
	c.current = c.prev
	return c, nil
}

// Update advances the cycle by dt seconds.
func (c *Cycle) Update(dt float32) {
	if c.timer > c.period {
		c.timer -= c.period
		c.prev = c.next
		c.next = RandomPastel(c.rng)
	}
	t := c.timer / c.period
	if t > 1 {
		t = 1
	}
	c.current = c.prev.Lerp(c.next, t)
	c.timer += dt
}

// SetPeriod changes the blend period. The elapsed fraction is kept so the color does not jump.
func (c *Cycle) SetPeriod(period float32) error {
	if period <= 0 {
		return ErrPeriod
	}
	c.timer = c.timer / c.period * period
	c.period = period
	return nil
}

// Period returns the blend period in seconds.
func (c *Cycle) Period() float32 { return c.period }

// Current is the color computed by the last Update.
func (c *Cycle) Current() Color { return c.current }

// Endpoints returns the colors being blended between.
func (c *Cycle) Endpoints() (prev, next Color) { return c.prev, c.next }
