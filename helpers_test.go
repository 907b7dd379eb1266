package warp

import "image"

// uniformPixmap returns a w x h pixmap filled with c.
func uniformPixmap(w, h int, c ARGB) *Pixmap {
	pm := NewPixmap(w, h)
	pm.Fill(c)
	return pm
}

// gradientPixmap returns an opaque pixmap whose channels vary with x, y and
// x*y, so that every pixel is distinct for small sizes.
func gradientPixmap(w, h int) *Pixmap {
	pm := NewPixmap(w, h)
	for y := range h {
		for x := range w {
			pm.SetARGB(x, y, NewARGB(255, uint8(x*255/max(w-1, 1)), uint8(y*255/max(h-1, 1)), uint8((x*y)%256)))
		}
	}
	return pm
}

// axisAlignedQuad returns the quadrilateral with corners at pixels
// (x0, y0) and (x1, y1).
func axisAlignedQuad(x0, y0, x1, y1 int) Quadrilateral {
	return Quadrilateral{
		UpperLeft:   image.Pt(x0, y0),
		UpperRight:  image.Pt(x1, y0),
		BottomRight: image.Pt(x1, y1),
		BottomLeft:  image.Pt(x0, y1),
	}
}

// pixmapDiff returns the first differing pixel and whether one exists.
func pixmapDiff(a, b *Pixmap) (image.Point, bool) {
	for y := range min(a.Height(), b.Height()) {
		for x := range min(a.Width(), b.Width()) {
			if a.ARGBAt(x, y) != b.ARGBAt(x, y) {
				return image.Pt(x, y), true
			}
		}
	}
	return image.Point{}, false
}
