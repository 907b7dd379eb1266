package warp

import "fmt"

// Spline is a curve that approximates a sequence of control points using
// B-spline blending functions of order m.
//
// The order controls locality: at any parameter value the curve is defined
// by at most m control points. Order 2 yields the polyline through the
// control points; an order equal to the number of control points yields a
// Bezier curve.
//
// Three families are provided, differing only in their knot vectors:
//   - standard: clamped knots, the curve starts at the first control point
//     and ends at the last one
//   - uniform open: equispaced knots, the curve starts inside the convex hull
//     of the first m control points and ends inside that of the last m
//   - uniform closed: the control polygon is cyclically extended so that the
//     curve starts and ends at the same point
type Spline struct {
	points []Point
	order  int
	knots  []float64
	start  float64
	end    float64
}

// DefaultOrder returns the order used when none is specified:
// the number of control points clamped to [2, 4]. Order 4 gives cubic,
// twice continuously differentiable blending functions.
func DefaultOrder(controlPoints int) int {
	return max(min(controlPoints, 4), 2)
}

// NewStandardSpline creates a spline with clamped knots that passes through
// its first and last control points. An order of 0 selects DefaultOrder.
func NewStandardSpline(points []Point, order int) (*Spline, error) {
	m, err := resolveOrder(order, len(points))
	if err != nil {
		return nil, err
	}
	l := len(points) - 1
	return newSpline(points, m, standardKnots(m, l), 0, float64(l-m+2)), nil
}

// NewUniformOpenSpline creates a spline with equispaced knots.
// An order of 0 selects DefaultOrder.
func NewUniformOpenSpline(points []Point, order int) (*Spline, error) {
	m, err := resolveOrder(order, len(points))
	if err != nil {
		return nil, err
	}
	l := len(points) - 1
	return newSpline(points, m, equispacedKnots(m, l), float64(m-1), float64(l+1)), nil
}

// NewUniformClosedSpline creates a closed spline. The control points are
// cyclically repeated order-1 times to force continuity at the seam.
// An order of 0 selects DefaultOrder.
func NewUniformClosedSpline(points []Point, order int) (*Spline, error) {
	m, err := resolveOrder(order, len(points))
	if err != nil {
		return nil, err
	}
	closed := make([]Point, 0, len(points)+m-1)
	closed = append(closed, points...)
	closed = append(closed, points[:m-1]...)
	l := len(closed) - 1
	return newSpline(closed, m, equispacedKnots(m, l), float64(m-1), float64(l+1)), nil
}

// NewUniformOpenBezier creates a uniform open spline whose order equals the
// number of control points.
func NewUniformOpenBezier(points []Point) (*Spline, error) {
	return NewUniformOpenSpline(points, max(len(points), 2))
}

// NewUniformClosedBezier creates a uniform closed spline whose order equals
// the number of control points.
func NewUniformClosedBezier(points []Point) (*Spline, error) {
	return NewUniformClosedSpline(points, max(len(points), 2))
}

func resolveOrder(order, n int) (int, error) {
	if order == 0 {
		order = DefaultOrder(n)
	}
	if order < 2 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	if n < order {
		return 0, fmt.Errorf("%w: %d points for order %d", ErrTooFewControlPoints, n, order)
	}
	return order, nil
}

func newSpline(points []Point, order int, knots []float64, start, end float64) *Spline {
	return &Spline{
		points: append([]Point(nil), points...),
		order:  order,
		knots:  knots,
		start:  start,
		end:    end,
	}
}

// equispacedKnots returns 0, 1, ..., l+m.
func equispacedKnots(m, l int) []float64 {
	knots := make([]float64, l+m+1)
	for i := range knots {
		knots[i] = float64(i)
	}
	return knots
}

// standardKnots returns m zeros, then 1..l-m+1, then l-m+2 repeated.
func standardKnots(m, l int) []float64 {
	knots := make([]float64, l+m+1)
	for i := range knots {
		switch {
		case i < m:
			knots[i] = 0
		case i <= l:
			knots[i] = float64(i - m + 1)
		default:
			knots[i] = float64(l - m + 2)
		}
	}
	return knots
}

func (*Spline) curve() {}

// Order returns the blending-function order.
func (s *Spline) Order() int { return s.order }

// Domain returns the parameter interval that t in [0, 1] is mapped onto.
func (s *Spline) Domain() (start, end float64) { return s.start, s.end }

// Knots returns a copy of the knot vector.
func (s *Spline) Knots() []float64 { return append([]float64(nil), s.knots...) }

// ControlPoints returns a copy of the control points. For closed splines
// this includes the cyclically repeated points.
func (s *Spline) ControlPoints() []Point { return append([]Point(nil), s.points...) }

// blendScratch is the knot count up to which Sample keeps the blending
// table on the stack.
const blendScratch = 64

// Sample evaluates the spline at relative position t in [0, 1].
func (s *Spline) Sample(t float64) Point {
	tp := s.start + clampUnit(t)*(s.end-s.start)
	var scratch [blendScratch]float64
	buf := scratch[:]
	if len(s.knots) > blendScratch {
		buf = make([]float64, len(s.knots))
	}
	weights := s.blend(tp, buf)
	var x, y float64
	for k, cp := range s.points {
		w := weights[k]
		x += w * cp.X
		y += w * cp.Y
	}
	return Point{X: x, Y: y}
}

// blend evaluates the blending functions N(k, m, t) for every control point
// using the Cox-de Boor recurrence, bottom-up, in buf, which must hold at
// least len(s.knots)-1 values. Each table entry is computed with exactly the
// arithmetic of the recursive definition; a zero-length knot span
// contributes 0.
func (s *Spline) blend(t float64, buf []float64) []float64 {
	knots := s.knots
	l := len(s.points) - 1
	last := knots[len(knots)-1]

	// Order 1: indicator of [knot[k], knot[k+1]); t equal to the final knot
	// belongs to the last control point.
	n := buf[:len(knots)-1]
	for k := range n {
		n[k] = 0
		if (t == last && k == l) || (t >= knots[k] && t < knots[k+1]) {
			n[k] = 1
		}
	}

	for j := 2; j <= s.order; j++ {
		for k := 0; k <= len(knots)-1-j; k++ {
			var v float64
			if d := knots[k+j-1] - knots[k]; d != 0 {
				v = (t - knots[k]) / d * n[k]
			}
			if d := knots[k+j] - knots[k+1]; d != 0 {
				v += (knots[k+j] - t) / d * n[k+1]
			}
			n[k] = v
		}
	}
	return n[:l+1]
}

// Polyline discretizes the spline into n vertices.
func (s *Spline) Polyline(n int) (*PolyLine, error) {
	return polylineOf(s, n)
}

// Transform returns a copy of the spline with transformed control points and
// the same order, knots and domain.
func (s *Spline) Transform(m *Matrix) (Curve, error) {
	points, err := transformControlPoints(s.points, m)
	if err != nil {
		return nil, err
	}
	return &Spline{points: points, order: s.order, knots: s.knots, start: s.start, end: s.end}, nil
}
