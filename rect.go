package warp

import (
	"fmt"
	"math"
)

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner (minimum coordinates).
// Max is the bottom-right corner (maximum coordinates).
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from its x and y bounds.
// Returns ErrInvalidRect if x1 > x2 or y1 > y2.
func NewRect(x1, x2, y1, y2 float64) (Rect, error) {
	if x1 > x2 {
		return Rect{}, fmt.Errorf("%w: x %g > %g", ErrInvalidRect, x1, x2)
	}
	if y1 > y2 {
		return Rect{}, fmt.Errorf("%w: y %g > %g", ErrInvalidRect, y1, y2)
	}
	return Rect{Min: Pt(x1, y1), Max: Pt(x2, y2)}, nil
}

// RectOf returns the smallest rectangle containing all points.
// The zero Rect is returned for an empty slice.
func RectOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r = r.Expand(p)
	}
	return r
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Expand returns the smallest rectangle containing r and p.
func (r Rect) Expand(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return r.Expand(other.Min).Expand(other.Max)
}

// Overlaps reports whether r and other share at least one point.
// Touching edges count as overlapping.
func (r Rect) Overlaps(other Rect) bool {
	if other.Max.X < r.Min.X || other.Min.X > r.Max.X {
		return false
	}
	return other.Max.Y >= r.Min.Y && other.Min.Y <= r.Max.Y
}

// Intersect returns the overlapping region of r and other.
// The boolean is false when the rectangles do not overlap.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	if !r.Overlaps(other) {
		return Rect{}, false
	}
	return Rect{
		Min: Point{X: math.Max(r.Min.X, other.Min.X), Y: math.Max(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Min(r.Max.X, other.Max.X), Y: math.Min(r.Max.Y, other.Max.Y)},
	}, true
}

// Contains returns true if the point is inside the rectangle (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
