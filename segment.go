package warp

import "math"

// Segment is a closed line segment from P0 to P1.
type Segment struct {
	P0, P1 Point
}

// onSegment reports whether relative position r along the segment lies
// within the closed interval [0, 1].
func onSegment(r float64) bool {
	return r >= 0 && r <= 1
}

// IntersectAtX returns the point of the segment at the vertical line x.
// Vertical segments never intersect (the intersection is not a single point).
func (s Segment) IntersectAtX(x float64) (Point, bool) {
	dx := s.P1.X - s.P0.X
	if dx == 0 {
		return Point{}, false
	}
	r := (x - s.P0.X) / dx
	if !onSegment(r) {
		return Point{}, false
	}
	return Point{X: x, Y: s.P0.Y + r*(s.P1.Y-s.P0.Y)}, true
}

// IntersectAtY returns the point of the segment at the horizontal line y.
// Horizontal segments never intersect.
func (s Segment) IntersectAtY(y float64) (Point, bool) {
	dy := s.P1.Y - s.P0.Y
	if dy == 0 {
		return Point{}, false
	}
	r := (y - s.P0.Y) / dy
	if !onSegment(r) {
		return Point{}, false
	}
	return Point{X: s.P0.X + r*(s.P1.X-s.P0.X), Y: y}, true
}

// Intersect returns the crossing point of two segments.
// Parallel (including collinear) segments report no intersection.
func (s Segment) Intersect(other Segment) (Point, bool) {
	pdx, pdy := s.P1.X-s.P0.X, s.P1.Y-s.P0.Y
	qdx, qdy := other.P1.X-other.P0.X, other.P1.Y-other.P0.Y
	det := pdx*qdy - pdy*qdx
	if det == 0 {
		return Point{}, false
	}
	r := (qdy*(other.P0.X-s.P0.X) + qdx*(s.P0.Y-other.P0.Y)) / det
	if !onSegment(r) {
		return Point{}, false
	}
	var q float64
	if qdy != 0 {
		q = (s.P0.Y - other.P0.Y + pdy*r) / qdy
	} else {
		q = (s.P0.X - other.P0.X + pdx*r) / qdx
	}
	if !onSegment(q) {
		return Point{}, false
	}
	return Point{X: s.P0.X + pdx*r, Y: s.P0.Y + pdy*r}, true
}

// Contains reports whether p lies exactly on the segment.
func (s Segment) Contains(p Point) bool {
	x1, y1, x2, y2 := s.P0.X, s.P0.Y, s.P1.X, s.P1.Y
	switch {
	case x1 == x2:
		return p.X == x1 && p.Y >= math.Min(y1, y2) && p.Y <= math.Max(y1, y2)
	case y1 == y2:
		return p.Y == y1 && p.X >= math.Min(x1, x2) && p.X <= math.Max(x1, x2)
	}
	if (p.X-x1)*(y2-y1) != (p.Y-y1)*(x2-x1) {
		return false
	}
	return onSegment((p.X - x1) / (x2 - x1))
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.P0.Distance(s.P1)
}
