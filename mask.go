package warp

import (
	"image"

	"golang.org/x/image/vector"
)

// Mask represents an 8-bit coverage mask.
// Values range from 0 (outside) to 255 (fully covered).
type Mask struct {
	width  int
	height int
	data   []uint8
}

// NewMask creates a new empty mask with the given dimensions.
func NewMask(width, height int) *Mask {
	width, height = max(width, 0), max(height, 0)
	return &Mask{
		width:  width,
		height: height,
		data:   make([]uint8, width*height),
	}
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.width }

// Height returns the mask height.
func (m *Mask) Height() int { return m.height }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.data[y*m.width+x]
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return
	}
	m.data[y*m.width+x] = value
}

// newQuadMask rasterizes the anti-aliased outline of q over area, usually
// the part of q.Bounds() inside the target. The outline runs along the
// outer pixel edges of the four vertex pixels, so mask pixel (0, 0)
// corresponds to area.Min and the interior of an axis-aligned quad is fully
// covered. Parts of the outline outside area are clipped by the rasterizer.
func newQuadMask(q Quadrilateral, area image.Rectangle) *Mask {
	w, h := area.Dx(), area.Dy()
	if w <= 0 || h <= 0 {
		return NewMask(0, 0)
	}

	corner := func(p image.Point, dx, dy int) (float32, float32) {
		return float32(p.X - area.Min.X + dx), float32(p.Y - area.Min.Y + dy)
	}
	r := vector.NewRasterizer(w, h)
	r.MoveTo(corner(q.UpperLeft, 0, 0))
	r.LineTo(corner(q.UpperRight, 1, 0))
	r.LineTo(corner(q.BottomRight, 1, 1))
	r.LineTo(corner(q.BottomLeft, 0, 1))
	r.ClosePath()

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	if dst.Stride == w {
		return &Mask{width: w, height: h, data: dst.Pix}
	}

	m := NewMask(w, h)
	for y := range h {
		copy(m.data[y*w:(y+1)*w], dst.Pix[y*dst.Stride:])
	}
	return m
}
