// Package warp provides geometric image resampling for Go.
//
// # Overview
//
// warp maps pixels of a source raster into a destination raster under
// non-affine spatial transforms. Two operations are provided:
//
//   - Quadrilateral projection: a rectangular image is mapped onto an
//     arbitrary convex quadrilateral, optionally with a pseudo-perspective
//     foreshortening effect and anti-aliased edges.
//   - Banded deformation: one image axis is partitioned into contiguous
//     bands, each with its own source-to-target extent. Band boundaries are
//     either constant or follow parametric separator curves.
//
// # Quick Start
//
//	import "github.com/gogpu/warp"
//
//	src := warp.FromImage(img)
//
//	// Project onto a quadrilateral
//	p := warp.NewProjector(warp.WithRememberLast(true))
//	quad := warp.Quadrilateral{
//	    UpperLeft:   image.Pt(88, 61),
//	    UpperRight:  image.Pt(247, 15),
//	    BottomRight: image.Pt(256, 345),
//	    BottomLeft:  image.Pt(75, 293),
//	}
//	out, err := p.Project(src, image.Pt(400, 400), quad, &warp.PseudoPerspective{Horizontal: 0.5})
//
//	// Squeeze the middle third of an image horizontally
//	bands, err := warp.NewColumnBanding(
//	    warp.ConstantBand{Source: 100, Target: 150},
//	    warp.ConstantBand{Source: 200, Target: 100},
//	    warp.ConstantBand{Source: 100, Target: 150},
//	)
//	out = bands.Deform(src)
//
// # Architecture
//
// The package is organized into:
//   - Geometry: Point, Matrix, Rect, Segment, PolyLine
//   - Curves: Spline (uniform B-spline) and Bezier, both implementing Curve
//   - Projections: HorizontalProjection, VerticalProjection, ColumnBanding,
//     RowBanding, and the Deformation engine that drives them
//   - Projector: the quadrilateral projector with its single-slot caches
//   - Sampling: Raster, Pixmap and the Sampler implementations
//
// # Coordinate System
//
// Uses standard raster coordinates:
//   - Origin (0,0) at the top-left corner of the top-left pixel
//   - X increases right, Y increases down
//   - The center of pixel (i, j) is (i+0.5, j+0.5)
//
// # Concurrency
//
// Matrices, curves, polylines and bands are immutable once built and may be
// shared between goroutines. A Projector serializes calls to Project; use one
// Projector per goroutine for parallel projections.
package warp

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
