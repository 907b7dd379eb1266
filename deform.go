package warp

import "github.com/gogpu/warp/internal/parallel"

// DeformationOption configures a Deformation during creation.
type DeformationOption func(*deformationOptions)

type deformationOptions struct {
	workers int
}

// WithWorkers splits each sweep across n goroutines. Rows (or columns, for
// vertical-only deformations) are divided into n contiguous spans and each
// span runs its own projection cursor, so the output is identical to a
// sequential sweep. n <= 1 sweeps on the calling goroutine.
//
// Projections that do not implement HorizontalSweeper or VerticalSweeper
// are shared between the goroutines and must be safe for concurrent use.
func WithWorkers(n int) DeformationOption {
	return func(o *deformationOptions) {
		o.workers = n
	}
}

// Deformation remaps every destination pixel through a horizontal and/or a
// vertical coordinate projection and samples the source at the result.
// The destination has the size of the source.
//
// A Deformation is immutable and may be used from several goroutines.
type Deformation struct {
	h    HorizontalProjection
	v    VerticalProjection
	opts deformationOptions
}

// NewDeformation creates a deformation. Either projection may be nil; with
// both nil, Deform returns a copy of its input.
func NewDeformation(h HorizontalProjection, v VerticalProjection, opts ...DeformationOption) *Deformation {
	d := &Deformation{h: h, v: v}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d
}

// Mode returns the sampler the deformation sweeps with: SampleHorizontal
// for horizontal-only, SampleVertical for vertical-only and SampleBilinear
// otherwise, including the identity case.
func (d *Deformation) Mode() SampleMode {
	switch {
	case d.h != nil && d.v == nil:
		return SampleHorizontal
	case d.h == nil && d.v != nil:
		return SampleVertical
	default:
		return SampleBilinear
	}
}

// Deform produces the deformed image. The source is never modified.
func (d *Deformation) Deform(src Raster) *Pixmap {
	if d.h == nil && d.v == nil {
		Logger().Debug("warp: deform", "mode", "identity")
		return copyRaster(src)
	}

	w, h := src.Width(), src.Height()
	dst := NewPixmap(w, h)
	if w <= 0 || h <= 0 {
		return dst
	}

	var lines int
	var sweep func(lo, hi int)
	switch d.Mode() {
	case SampleHorizontal:
		lines = h
		sweep = func(lo, hi int) { d.sweepRows(src, dst, lo, hi) }
	case SampleVertical:
		lines = w
		sweep = func(lo, hi int) { d.sweepColumns(src, dst, lo, hi) }
	default:
		lines = h
		sweep = func(lo, hi int) { d.sweepBoth(src, dst, lo, hi) }
	}

	workers := max(min(d.opts.workers, lines), 1)
	Logger().Debug("warp: deform", "mode", d.Mode(), "width", w, "height", h, "workers", workers)
	if workers == 1 {
		sweep(0, lines)
		return dst
	}

	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()
	pool.ForEachSpan(lines, sweep)
	return dst
}

// sweepRows fills rows [lo, hi) using the horizontal projection only.
func (d *Deformation) sweepRows(src Raster, dst *Pixmap, lo, hi int) {
	w, h := src.Width(), src.Height()
	px := sweepX(d.h)
	s := NewHorizontalSampler(src)
	for y := lo; y < hi; y++ {
		yc := float64(y) + 0.5
		for x := range w {
			xc := float64(x) + 0.5
			dst.SetARGB(x, y, s.Sample(px.ProjectX(xc, yc, w, h), yc))
		}
	}
}

// sweepColumns fills columns [lo, hi) using the vertical projection only.
func (d *Deformation) sweepColumns(src Raster, dst *Pixmap, lo, hi int) {
	w, h := src.Width(), src.Height()
	py := sweepY(d.v)
	s := NewVerticalSampler(src)
	for x := lo; x < hi; x++ {
		xc := float64(x) + 0.5
		for y := range h {
			yc := float64(y) + 0.5
			dst.SetARGB(x, y, s.Sample(xc, py.ProjectY(xc, yc, w, h)))
		}
	}
}

// sweepBoth fills rows [lo, hi) using both projections.
func (d *Deformation) sweepBoth(src Raster, dst *Pixmap, lo, hi int) {
	w, h := src.Width(), src.Height()
	px, py := sweepX(d.h), sweepY(d.v)
	s := NewBilinearSampler(src)
	for y := lo; y < hi; y++ {
		yc := float64(y) + 0.5
		for x := range w {
			xc := float64(x) + 0.5
			dst.SetARGB(x, y, s.Sample(px.ProjectX(xc, yc, w, h), py.ProjectY(xc, yc, w, h)))
		}
	}
}
