package warp

import (
	"fmt"
	"image/color"
	"math"
)

// ARGB is a straight (non-premultiplied) alpha color packed as
// 0xAARRGGBB.
type ARGB uint32

// Transparent is the fully transparent color written for destination pixels
// that have no source.
const Transparent ARGB = 0

// NewARGB packs the four channels into an ARGB value.
func NewARGB(a, r, g, b uint8) ARGB {
	return ARGB(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// ARGBOf converts any color to straight-alpha ARGB.
func ARGBOf(c color.Color) ARGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewARGB(n.A, n.R, n.G, n.B)
}

// A returns the alpha channel.
func (c ARGB) A() uint8 { return uint8(c >> 24) }

// R returns the red channel.
func (c ARGB) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c ARGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c ARGB) B() uint8 { return uint8(c) }

// WithAlpha returns c with its alpha channel replaced.
func (c ARGB) WithAlpha(a uint8) ARGB {
	return c&0x00ffffff | ARGB(a)<<24
}

// NRGBA converts c to the standard library's straight-alpha color.
func (c ARGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()}
}

// RGBA implements color.Color.
func (c ARGB) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// String implements fmt.Stringer.
func (c ARGB) String() string {
	return fmt.Sprintf("#%08x", uint32(c))
}

// roundHalfUp rounds to the nearest integer, ties towards +Inf.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// channel rounds a weighted channel sum half up and caps it to [0, 255].
func channel(v float64) uint8 {
	return uint8(min(max(roundHalfUp(v), 0), 255))
}
