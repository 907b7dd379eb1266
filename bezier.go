package warp

import (
	"fmt"
	"math"

	"github.com/gogpu/warp/internal/cache"
)

// Bezier control point limits.
const (
	// MinBezierControlPoints is the smallest control polygon (a line).
	MinBezierControlPoints = 2

	// MaxBezierControlPoints is the largest supported control polygon.
	MaxBezierControlPoints = 40

	// maxDirectBernstein bounds the degree below which Bernstein polynomials
	// are evaluated from memoized binomial coefficients. Degrees from this
	// value up fall back to the de Casteljau style recurrence.
	maxDirectBernstein = 30
)

// binomialKey identifies the coefficient C(n, k).
type binomialKey struct {
	k, n int
}

// binomials memoizes binomial coefficients for degrees below
// maxDirectBernstein. The key space is bounded, so the cache is unlimited.
var binomials = cache.New[binomialKey, uint64](0)

// Bezier is a Bezier curve over 2 to 40 control points. It passes through
// the first and last control points and is shaped by the inner ones.
type Bezier struct {
	points []Point
}

// NewBezier creates a Bezier curve. The control points are copied.
// Returns ErrControlPointCount for fewer than 2 or more than 40 points.
func NewBezier(points ...Point) (*Bezier, error) {
	if n := len(points); n < MinBezierControlPoints || n > MaxBezierControlPoints {
		return nil, fmt.Errorf("%w: got %d, want %d..%d",
			ErrControlPointCount, n, MinBezierControlPoints, MaxBezierControlPoints)
	}
	return &Bezier{points: append([]Point(nil), points...)}, nil
}

func (*Bezier) curve() {}

// ControlPoints returns a copy of the control points.
func (b *Bezier) ControlPoints() []Point { return append([]Point(nil), b.points...) }

// Degree returns the polynomial degree, one less than the number of
// control points.
func (b *Bezier) Degree() int { return len(b.points) - 1 }

// Sample evaluates the curve at t in [0, 1] as the Bernstein-weighted sum of
// the control points.
func (b *Bezier) Sample(t float64) Point {
	t = clampUnit(t)
	n := b.Degree()
	var x, y float64
	for k, cp := range b.points {
		w := bernstein(k, n, t)
		x += w * cp.X
		y += w * cp.Y
	}
	return Point{X: x, Y: y}
}

// Polyline discretizes the curve into n vertices.
func (b *Bezier) Polyline(n int) (*PolyLine, error) {
	return polylineOf(b, n)
}

// Transform returns a new curve with transformed control points.
func (b *Bezier) Transform(m *Matrix) (Curve, error) {
	points, err := transformControlPoints(b.points, m)
	if err != nil {
		return nil, err
	}
	return &Bezier{points: points}, nil
}

// bernstein returns B(k, n, t) = C(n, k) (1-t)^(n-k) t^k, and 0 for k
// outside [0, n].
func bernstein(k, n int, t float64) float64 {
	if k < 0 || k > n {
		return 0
	}
	if n < maxDirectBernstein {
		c := binomial(k, n)
		return float64(c) * math.Pow(1-t, float64(n-k)) * math.Pow(t, float64(k))
	}
	return (1-t)*bernstein(k, n-1, t) + t*bernstein(k-1, n-1, t)
}

// binomial returns C(n, k) for 0 <= k <= n < maxDirectBernstein.
func binomial(k, n int) uint64 {
	return binomials.GetOrCreate(binomialKey{k: k, n: n}, func() uint64 {
		k := min(k, n-k)
		c := uint64(1)
		for i := 1; i <= k; i++ {
			// Exact at every step: c is C(n-k+i, i) after the division.
			c = c * uint64(n-k+i) / uint64(i)
		}
		return c
	})
}
