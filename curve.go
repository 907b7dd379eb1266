package warp

import (
	"fmt"
	"math"
)

// Curve types for parametric separator geometry.
//
// A Curve is a closed set of variants: *Spline and *Bezier. Both are
// immutable and safe for concurrent use.

// Curve is a parametric 2D curve over t in [0, 1].
type Curve interface {
	// Sample evaluates the curve at relative position t. Values outside
	// [0, 1] are clamped and NaN is treated as 0.
	Sample(t float64) Point

	// Polyline discretizes the curve into n vertices sampled at equally
	// spaced t, including exactly 0 and 1. Returns ErrVertexCount if n < 2.
	Polyline(n int) (*PolyLine, error)

	// Transform returns a new curve whose control points are transformed by
	// m. Returns ErrNotAffine if m is not affine.
	Transform(m *Matrix) (Curve, error)

	// ControlPoints returns a copy of the curve's control points.
	ControlPoints() []Point

	curve()
}

// clampUnit clamps t to [0, 1]. NaN maps to 0.
func clampUnit(t float64) float64 {
	if math.IsNaN(t) {
		return 0
	}
	return min(max(t, 0), 1)
}

// polylineOf samples c at n equally spaced parameter values.
func polylineOf(c Curve, n int) (*PolyLine, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrVertexCount, n)
	}
	vertices := make([]Point, n)
	for i := range n {
		vertices[i] = c.Sample(float64(i) / float64(n-1))
	}
	return &PolyLine{vertices: vertices}, nil
}

// transformControlPoints applies an affine matrix to a control polygon.
func transformControlPoints(points []Point, m *Matrix) ([]Point, error) {
	if !m.IsAffine() {
		return nil, ErrNotAffine
	}
	return m.TransformPoints(points), nil
}
