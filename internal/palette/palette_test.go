package palette_test

import (
	"math/rand/v2"
	"testing"

	"billboard-demo/internal/palette"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-3

func assertColor(t *testing.T, want, got palette.Color) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, tol, "R")
	assert.InDelta(t, want.G, got.G, tol, "G")
	assert.InDelta(t, want.B, got.B, tol, "B")
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h    int
		s, v float32
		want palette.Color
	}{
		{0, 1, 1, palette.Color{R: 1}},
		{120, 1, 1, palette.Color{G: 1}},
		{240, 1, 1, palette.Color{B: 1}},
		{60, 1, 1, palette.Color{R: 1, G: 1}},
		{300, 1, 0.5, palette.Color{R: 0.5, B: 0.5}},
		{200, 0, 0.8, palette.Color{R: 0.8, G: 0.8, B: 0.8}},
		{360, 1, 1, palette.Color{R: 1}},
		{-120, 1, 1, palette.Color{B: 1}},
	}
	for _, tt := range tests {
		assertColor(t, tt.want, palette.HSVToRGB(tt.h, tt.s, tt.v))
	}
}

func TestRandomPastelRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for range 500 {
		c := palette.RandomPastel(rng)
		_, s, v := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Hsv()
		assert.GreaterOrEqual(t, s, 0.1-tol)
		assert.LessOrEqual(t, s, 0.4+tol)
		assert.GreaterOrEqual(t, v, 0.75-tol)
		assert.LessOrEqual(t, v, 1+tol)
	}
}

func TestLerp(t *testing.T) {
	a := palette.Color{R: 0, G: 0.5, B: 1}
	b := palette.Color{R: 1, G: 0.5, B: 0}
	assertColor(t, a, a.Lerp(b, 0))
	assertColor(t, b, a.Lerp(b, 1))
	assertColor(t, palette.Color{R: 0.25, G: 0.5, B: 0.75}, a.Lerp(b, 0.25))
}

func TestRGBA(t *testing.T) {
	c := palette.Color{R: 1, G: 0, B: 0.5}.RGBA()
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.InDelta(t, 128, int(c.B), 1)
	assert.Equal(t, uint8(255), c.A)

	over := palette.Color{R: 1.5, G: -1, B: 0}.RGBA()
	assert.Equal(t, uint8(255), over.R)
	assert.Equal(t, uint8(0), over.G)
}

func TestNewCycleRejectsBadPeriod(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	_, err := palette.NewCycle(0, rng)
	assert.ErrorIs(t, err, palette.ErrPeriod)
	_, err = palette.NewCycle(-2, rng)
	assert.ErrorIs(t, err, palette.ErrPeriod)
}

func TestCycleBlendsAndRolls(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	c, err := palette.NewCycle(4, rng)
	require.NoError(t, err)
	prev, next := c.Endpoints()

	c.Update(1)
	assertColor(t, prev, c.Current())

	c.Update(1) // timer was 1
	assertColor(t, prev.Lerp(next, 0.25), c.Current())

	c.Update(1)
	c.Update(1)
	c.Update(1) // timer was 4, not yet past the period
	assertColor(t, next, c.Current())

	c.Update(1) // timer 5 > 4: roll over, blend restarts at 1/4
	newPrev, newNext := c.Endpoints()
	assertColor(t, next, newPrev)
	assertColor(t, newPrev.Lerp(newNext, 0.25), c.Current())
}

func TestSetPeriodKeepsFraction(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	c, err := palette.NewCycle(2, rng)
	require.NoError(t, err)
	prev, next := c.Endpoints()

	c.Update(1) // timer 0 -> 1, halfway
	require.NoError(t, c.SetPeriod(10))
	assert.Equal(t, float32(10), c.Period())

	c.Update(0)
	assertColor(t, prev.Lerp(next, 0.5), c.Current())

	assert.ErrorIs(t, c.SetPeriod(0), palette.ErrPeriod)
}
