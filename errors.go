package warp

import "errors"

// Construction errors. These are returned immediately by constructors and are
// never retried internally.
var (
	// ErrInvalidOrder is returned when a spline blending-function order is below 2.
	ErrInvalidOrder = errors.New("warp: spline order must be at least 2")

	// ErrTooFewControlPoints is returned when a spline has fewer control points than its order.
	ErrTooFewControlPoints = errors.New("warp: fewer control points than spline order")

	// ErrControlPointCount is returned when a Bezier curve has fewer than 2 or more than 40 control points.
	ErrControlPointCount = errors.New("warp: bezier control point count out of range")

	// ErrVertexCount is returned when a polyline discretization asks for fewer than 2 vertices.
	ErrVertexCount = errors.New("warp: polyline needs at least 2 vertices")

	// ErrNotAffine is returned when a curve is transformed by a non-affine matrix.
	ErrNotAffine = errors.New("warp: curve supports affine transforms only")

	// ErrSeparatorCount is returned when the number of separator curves does not match the band count.
	ErrSeparatorCount = errors.New("warp: separator curve count must be band count minus one")

	// ErrNoBands is returned when a banding is created without bands.
	ErrNoBands = errors.New("warp: no bands")

	// ErrInvalidBand is returned for negative source extents or non-positive constant target extents.
	ErrInvalidBand = errors.New("warp: invalid band extent")

	// ErrInvalidRect is returned when rectangle bounds are out of order.
	ErrInvalidRect = errors.New("warp: rectangle bounds out of order")

	// ErrMagnitude is returned when a pseudo-perspective magnitude is outside [0, 1].
	ErrMagnitude = errors.New("warp: perspective magnitude outside unit interval")

	// ErrInvalidDimensions is returned when a raster or target size is not positive.
	ErrInvalidDimensions = errors.New("warp: invalid dimensions")
)

// ErrSingularMatrix is returned by Matrix.Invert when the determinant is exactly zero.
// Callers must choose a fallback transform.
var ErrSingularMatrix = errors.New("warp: cannot invert a singular matrix")
