package warp

import (
	"cmp"
	"fmt"
	"image"
)

// Quadrilateral is a destination area given by four integer pixel vertices
// in clockwise order starting at the upper left. It is expected to be
// convex; self-intersection is not checked.
type Quadrilateral struct {
	UpperLeft   image.Point
	UpperRight  image.Point
	BottomRight image.Point
	BottomLeft  image.Point
}

// RectQuad returns the quadrilateral covering the pixels of r.
func RectQuad(r image.Rectangle) Quadrilateral {
	return Quadrilateral{
		UpperLeft:   r.Min,
		UpperRight:  image.Pt(r.Max.X-1, r.Min.Y),
		BottomRight: image.Pt(r.Max.X-1, r.Max.Y-1),
		BottomLeft:  image.Pt(r.Min.X, r.Max.Y-1),
	}
}

// Vertices returns the vertices in clockwise order.
func (q Quadrilateral) Vertices() [4]image.Point {
	return [4]image.Point{q.UpperLeft, q.UpperRight, q.BottomRight, q.BottomLeft}
}

// Bounds returns the smallest rectangle containing every vertex pixel.
func (q Quadrilateral) Bounds() image.Rectangle {
	r := image.Rectangle{Min: q.UpperLeft, Max: q.UpperLeft}
	for _, v := range q.Vertices() {
		r.Min.X = min(r.Min.X, v.X)
		r.Min.Y = min(r.Min.Y, v.Y)
		r.Max.X = max(r.Max.X, v.X)
		r.Max.Y = max(r.Max.Y, v.Y)
	}
	r.Max = r.Max.Add(image.Pt(1, 1))
	return r
}

// CompareLeftRight compares the length of the left side to the right side:
// -1 if shorter, 0 if equal, +1 if longer.
func (q Quadrilateral) CompareLeftRight() int {
	return cmp.Compare(distSq(q.UpperLeft, q.BottomLeft), distSq(q.UpperRight, q.BottomRight))
}

// CompareUpperBottom compares the length of the upper side to the bottom
// side: -1 if shorter, 0 if equal, +1 if longer.
func (q Quadrilateral) CompareUpperBottom() int {
	return cmp.Compare(distSq(q.UpperLeft, q.UpperRight), distSq(q.BottomLeft, q.BottomRight))
}

func (q Quadrilateral) String() string {
	return fmt.Sprintf("[%v %v %v %v]", q.UpperLeft, q.UpperRight, q.BottomRight, q.BottomLeft)
}

func distSq(a, b image.Point) int {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

// PseudoPerspective bends the projection to suggest depth. Each magnitude
// in [0, 1] raises the relative source coordinate along its axis to the
// power 1+magnitude, or its reciprocal when the side at the start of the
// axis (left, upper) is the shorter one.
type PseudoPerspective struct {
	Horizontal float64
	Vertical   float64
}

// NewPseudoPerspective validates both magnitudes.
// Returns ErrMagnitude when either is outside [0, 1].
func NewPseudoPerspective(horizontal, vertical float64) (*PseudoPerspective, error) {
	pp := PseudoPerspective{Horizontal: horizontal, Vertical: vertical}
	if err := pp.validate(); err != nil {
		return nil, err
	}
	return &pp, nil
}

func (pp PseudoPerspective) validate() error {
	if !(pp.Horizontal >= 0 && pp.Horizontal <= 1) {
		return fmt.Errorf("%w: horizontal %g", ErrMagnitude, pp.Horizontal)
	}
	if !(pp.Vertical >= 0 && pp.Vertical <= 1) {
		return fmt.Errorf("%w: vertical %g", ErrMagnitude, pp.Vertical)
	}
	return nil
}

// exponents returns the power applied to the relative source coordinates.
// A nil perspective yields 1 on both axes.
func (pp *PseudoPerspective) exponents(q Quadrilateral) (ex, ey float64) {
	if pp == nil {
		return 1, 1
	}
	ex, ey = 1+pp.Horizontal, 1+pp.Vertical
	if q.CompareLeftRight() < 0 {
		ex = 1 / ex
	}
	if q.CompareUpperBottom() < 0 {
		ey = 1 / ey
	}
	return ex, ey
}
