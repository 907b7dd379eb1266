package warp

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Raster is a rectangular grid of straight-alpha ARGB pixels with its origin
// at (0, 0). Implementations need not be safe for concurrent writes.
type Raster interface {
	Width() int
	Height() int
	ARGBAt(x, y int) ARGB
	SetARGB(x, y int, c ARGB)
}

// Pixmap represents a rectangular pixel buffer.
// Pixels are stored as straight-alpha RGBA, 4 bytes per pixel, which is the
// memory layout of image.NRGBA.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

var (
	_ Raster      = (*Pixmap)(nil)
	_ image.Image = (*Pixmap)(nil)
)

// NewPixmap creates a new transparent pixmap with the given dimensions.
// Negative dimensions are treated as 0.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// FromImage creates a pixmap from an image, converting it to straight alpha.
// The image origin is moved to (0, 0).
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*b.Dx() {
		pm := NewPixmap(b.Dx(), b.Dy())
		copy(pm.data, n.Pix)
		return pm
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Pixmap{width: b.Dx(), height: b.Dy(), data: dst.Pix}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (straight-alpha RGBA).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// ARGBAt returns the color of a single pixel.
// Coordinates outside the pixmap return Transparent.
func (p *Pixmap) ARGBAt(x, y int) ARGB {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return NewARGB(p.data[i+3], p.data[i], p.data[i+1], p.data[i+2])
}

// SetARGB sets the color of a single pixel.
// Coordinates outside the pixmap are ignored.
func (p *Pixmap) SetARGB(x, y int, c ARGB) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = c.R()
	p.data[i+1] = c.G()
	p.data[i+2] = c.B()
	p.data[i+3] = c.A()
}

// Fill sets every pixel to c.
func (p *Pixmap) Fill(c ARGB) {
	r, g, b, a := c.R(), c.G(), c.B(), c.A()
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Clone returns a deep copy of the pixmap.
func (p *Pixmap) Clone() *Pixmap {
	return &Pixmap{
		width:  p.width,
		height: p.height,
		data:   append([]uint8(nil), p.data...),
	}
}

// Equal reports whether both pixmaps have the same size and pixels.
func (p *Pixmap) Equal(other *Pixmap) bool {
	if p.width != other.width || p.height != other.height {
		return false
	}
	for i, v := range p.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// ToNRGBA converts the pixmap to an image.NRGBA. The pixel data is copied.
func (p *Pixmap) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.ARGBAt(x, y).NRGBA()
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}

// copyRaster copies src into a new pixmap of the same size.
func copyRaster(src Raster) *Pixmap {
	if pm, ok := src.(*Pixmap); ok {
		return pm.Clone()
	}
	w, h := src.Width(), src.Height()
	dst := NewPixmap(w, h)
	for y := range h {
		for x := range w {
			dst.SetARGB(x, y, src.ARGBAt(x, y))
		}
	}
	return dst
}
