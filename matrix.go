package warp

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Matrix represents a 2D transformation in homogeneous coordinates.
// It uses a 3x3 matrix in row-major order:
//
//	| v0  v1  v2 |
//	| v3  v4  v5 |
//	| v6  v7  v8 |
//
// acting on column vectors (x, y, 1). The matrix is affine when the bottom
// row is exactly (0, 0, 1).
//
// A Matrix is immutable. Its inverse is computed on first use and memoized;
// the inverse links back to the original so neither direction is ever
// recomputed. Matrices must be handled by pointer.
type Matrix struct {
	v   [9]float64
	inv atomic.Pointer[Matrix]
}

// NewMatrix creates a matrix from 9 row-major values.
func NewMatrix(values [9]float64) *Matrix {
	return &Matrix{v: values}
}

// Identity returns the identity matrix, which is its own inverse.
func Identity() *Matrix {
	m := NewMatrix([9]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	m.inv.Store(m)
	return m
}

// Translate creates a translation matrix, pre-linked with its inverse.
func Translate(dx, dy float64) *Matrix {
	return linked(translation(dx, dy), translation(-dx, -dy))
}

// Scale creates a scaling matrix, pre-linked with its inverse.
// A zero factor yields a singular matrix without a linked inverse.
func Scale(sx, sy float64) *Matrix {
	m := scaling(sx, sy)
	if sx == 0 || sy == 0 {
		return m
	}
	return linked(m, scaling(1/sx, 1/sy))
}

// Rotate creates a rotation matrix (angle in radians), pre-linked with its inverse.
func Rotate(angle float64) *Matrix {
	return linked(rotation(angle), rotation(-angle))
}

func translation(dx, dy float64) *Matrix {
	return NewMatrix([9]float64{
		1, 0, dx,
		0, 1, dy,
		0, 0, 1,
	})
}

func scaling(sx, sy float64) *Matrix {
	return NewMatrix([9]float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	})
}

func rotation(angle float64) *Matrix {
	c, s := math.Cos(angle), math.Sin(angle)
	return NewMatrix([9]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
}

func linked(m, inv *Matrix) *Matrix {
	m.inv.Store(inv)
	inv.inv.Store(m)
	return m
}

// At returns the value at the given row and column (both 0..2).
func (m *Matrix) At(row, col int) float64 {
	return m.v[row*3+col]
}

// Values returns a copy of the 9 row-major values.
func (m *Matrix) Values() [9]float64 {
	return m.v
}

// Multiply returns m * other. Applied to a point, other acts first.
func (m *Matrix) Multiply(other *Matrix) *Matrix {
	t, o := &m.v, &other.v
	return NewMatrix([9]float64{
		t[0]*o[0] + t[1]*o[3] + t[2]*o[6],
		t[0]*o[1] + t[1]*o[4] + t[2]*o[7],
		t[0]*o[2] + t[1]*o[5] + t[2]*o[8],

		t[3]*o[0] + t[4]*o[3] + t[5]*o[6],
		t[3]*o[1] + t[4]*o[4] + t[5]*o[7],
		t[3]*o[2] + t[4]*o[5] + t[5]*o[8],

		t[6]*o[0] + t[7]*o[3] + t[8]*o[6],
		t[6]*o[1] + t[7]*o[4] + t[8]*o[7],
		t[6]*o[2] + t[7]*o[5] + t[8]*o[8],
	})
}

// Then returns other * m: the transform that applies m first, then other.
func (m *Matrix) Then(other *Matrix) *Matrix {
	return other.Multiply(m)
}

// TransformPoint applies the transformation to a point.
// The perspective divide is only performed when w != 1.
func (m *Matrix) TransformPoint(p Point) Point {
	t := &m.v
	x := t[0]*p.X + t[1]*p.Y + t[2]
	y := t[3]*p.X + t[4]*p.Y + t[5]
	w := t[6]*p.X + t[7]*p.Y + t[8]
	if w != 1 {
		x /= w
		y /= w
	}
	return Point{X: x, Y: y}
}

// TransformPoints applies the transformation to every point, returning a new slice.
func (m *Matrix) TransformPoints(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = m.TransformPoint(p)
	}
	return out
}

// IsAffine reports whether the bottom row is exactly (0, 0, 1).
func (m *Matrix) IsAffine() bool {
	return m.v[6] == 0 && m.v[7] == 0 && m.v[8] == 1
}

// Determinant returns the determinant of the matrix.
func (m *Matrix) Determinant() float64 {
	t := &m.v
	if m.IsAffine() {
		return t[0]*t[4]*t[8] - t[3]*t[1]*t[8]
	}
	return t[0]*(t[4]*t[8]-t[7]*t[5]) -
		t[3]*(t[1]*t[8]-t[7]*t[2]) +
		t[6]*(t[1]*t[5]-t[4]*t[2])
}

// Invert returns the inverse matrix.
// Returns ErrSingularMatrix if the determinant is exactly zero.
//
// The result is memoized on both matrices; concurrent callers observe the
// same inverse.
func (m *Matrix) Invert() (*Matrix, error) {
	if inv := m.inv.Load(); inv != nil {
		return inv, nil
	}
	inv, err := m.computeInverse()
	if err != nil {
		return nil, err
	}
	if !m.inv.CompareAndSwap(nil, inv) {
		return m.inv.Load(), nil
	}
	inv.inv.Store(m)
	return inv, nil
}

func (m *Matrix) computeInverse() (*Matrix, error) {
	det := m.Determinant()
	if det == 0 {
		return nil, ErrSingularMatrix
	}
	t := &m.v
	if m.IsAffine() {
		return NewMatrix([9]float64{
			t[4] * t[8] / det,
			-t[1] * t[8] / det,
			(t[1]*t[5] - t[2]*t[4]) / det,

			-t[3] * t[8] / det,
			t[0] * t[8] / det,
			-(t[0]*t[5] - t[2]*t[3]) / det,

			0,
			0,
			(t[0]*t[4] - t[1]*t[3]) / det,
		}), nil
	}
	return NewMatrix([9]float64{
		(t[4]*t[8] - t[5]*t[7]) / det,
		-(t[1]*t[8] - t[2]*t[7]) / det,
		(t[1]*t[5] - t[2]*t[4]) / det,

		-(t[3]*t[8] - t[5]*t[6]) / det,
		(t[0]*t[8] - t[2]*t[6]) / det,
		-(t[0]*t[5] - t[2]*t[3]) / det,

		(t[3]*t[7] - t[4]*t[6]) / det,
		-(t[0]*t[7] - t[1]*t[6]) / det,
		(t[0]*t[4] - t[1]*t[3]) / det,
	}), nil
}

// Approx reports whether every entry of m is within epsilon of the matching entry of other.
func (m *Matrix) Approx(other *Matrix, epsilon float64) bool {
	for i := range m.v {
		if math.Abs(m.v[i]-other.v[i]) > epsilon {
			return false
		}
	}
	return true
}

// String formats the matrix as three bracketed rows.
func (m *Matrix) String() string {
	var sb strings.Builder
	for row := range 3 {
		sb.WriteString("[ ")
		for col := range 3 {
			fmt.Fprintf(&sb, "%10.3f", m.At(row, col))
		}
		sb.WriteString(" ]\n")
	}
	return sb.String()
}
