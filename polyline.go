package warp

import "sync"

// PolyLine is an ordered sequence of vertices joined by straight edges.
// It is used as a discretization of a curve for intersection queries.
//
// The edge list and bounds are derived on first use and shared afterwards;
// a PolyLine is safe for concurrent use.
type PolyLine struct {
	vertices []Point

	once   sync.Once
	edges  []Segment
	bounds Rect
}

// NewPolyLine creates a polyline through the given vertices.
// The vertices are copied.
func NewPolyLine(vertices ...Point) *PolyLine {
	return &PolyLine{vertices: append([]Point(nil), vertices...)}
}

// Vertices returns the polyline vertices. The slice must not be modified.
func (pl *PolyLine) Vertices() []Point {
	return pl.vertices
}

// Edges returns the segments between consecutive vertices.
// The slice must not be modified.
func (pl *PolyLine) Edges() []Segment {
	pl.derive()
	return pl.edges
}

// Bounds returns the bounding box of all vertices.
func (pl *PolyLine) Bounds() Rect {
	pl.derive()
	return pl.bounds
}

func (pl *PolyLine) derive() {
	pl.once.Do(func() {
		n := len(pl.vertices)
		if n > 1 {
			pl.edges = make([]Segment, n-1)
			for i := range n - 1 {
				pl.edges[i] = Segment{P0: pl.vertices[i], P1: pl.vertices[i+1]}
			}
		}
		pl.bounds = RectOf(pl.vertices)
	})
}

// IntersectAtX returns the first point, in edge order, where the polyline
// crosses the vertical line x.
func (pl *PolyLine) IntersectAtX(x float64) (Point, bool) {
	p, _, ok := pl.intersectAtXFrom(x, 0)
	return p, ok
}

// IntersectAtY returns the first point, in edge order, where the polyline
// crosses the horizontal line y.
func (pl *PolyLine) IntersectAtY(y float64) (Point, bool) {
	p, _, ok := pl.intersectAtYFrom(y, 0)
	return p, ok
}

// Intersect returns the first point, in edge order, where the polyline
// crosses the segment s.
func (pl *PolyLine) Intersect(s Segment) (Point, bool) {
	for _, e := range pl.Edges() {
		if p, ok := e.Intersect(s); ok {
			return p, true
		}
	}
	return Point{}, false
}

// intersectAtXFrom scans edges starting at index start and returns the
// intersection together with the index of the edge that produced it.
func (pl *PolyLine) intersectAtXFrom(x float64, start int) (Point, int, bool) {
	edges := pl.Edges()
	for i := start; i < len(edges); i++ {
		if p, ok := edges[i].IntersectAtX(x); ok {
			return p, i, true
		}
	}
	return Point{}, start, false
}

// intersectAtYFrom is the horizontal-line counterpart of intersectAtXFrom.
func (pl *PolyLine) intersectAtYFrom(y float64, start int) (Point, int, bool) {
	edges := pl.Edges()
	for i := start; i < len(edges); i++ {
		if p, ok := edges[i].IntersectAtY(y); ok {
			return p, i, true
		}
	}
	return Point{}, start, false
}
