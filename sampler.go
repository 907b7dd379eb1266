package warp

import "math"

// SampleMode selects how a Sampler reconstructs color between pixel centers.
type SampleMode uint8

const (
	// SampleBilinear interpolates between up to 4 neighboring pixels.
	SampleBilinear SampleMode = iota

	// SampleNearest returns the pixel containing the coordinate.
	SampleNearest

	// SampleHorizontal interpolates along x only; y selects an exact row.
	SampleHorizontal

	// SampleVertical interpolates along y only; x selects an exact column.
	SampleVertical
)

// String returns a string representation of the sample mode.
func (m SampleMode) String() string {
	switch m {
	case SampleBilinear:
		return "Bilinear"
	case SampleNearest:
		return "Nearest"
	case SampleHorizontal:
		return "Horizontal"
	case SampleVertical:
		return "Vertical"
	default:
		return "Unknown"
	}
}

// Sampler reconstructs a color at fractional raster coordinates.
//
// Pixel (i, j) has its center at (i+0.5, j+0.5); valid coordinates lie in
// [0.5, width-0.5] x [0.5, height-0.5]. Coordinates beyond that range read
// the nearest edge pixel. Samplers hold no mutable state and are safe for
// concurrent use as long as the raster is not written.
type Sampler interface {
	Sample(x, y float64) ARGB
}

// NewSampler returns the sampler for mode over r. Unknown modes fall back
// to bilinear.
func NewSampler(r Raster, mode SampleMode) Sampler {
	switch mode {
	case SampleNearest:
		return NewNearestSampler(r)
	case SampleHorizontal:
		return NewHorizontalSampler(r)
	case SampleVertical:
		return NewVerticalSampler(r)
	default:
		return NewBilinearSampler(r)
	}
}

// NewBilinearSampler returns a sampler that blends the 1, 2 or 4 pixel
// centers surrounding the sample point.
func NewBilinearSampler(r Raster) Sampler { return bilinearSampler{r} }

// NewNearestSampler returns a sampler without interpolation.
func NewNearestSampler(r Raster) Sampler { return nearestSampler{r} }

// NewHorizontalSampler returns a sampler that interpolates along x only.
func NewHorizontalSampler(r Raster) Sampler { return horizontalSampler{r} }

// NewVerticalSampler returns a sampler that interpolates along y only.
func NewVerticalSampler(r Raster) Sampler { return verticalSampler{r} }

// axisTap locates the pixel containing v and the neighbor on the side of
// the sub-pixel offset. w is the weight of the containing pixel; the
// neighbor gets 1-w. step is 0 when v is exactly on a pixel center.
func axisTap(v float64) (c, step int, w float64) {
	c = int(math.Floor(v))
	d := v - float64(c) - 0.5
	switch {
	case d < 0:
		step = -1
	case d > 0:
		step = 1
	}
	return c, step, 1 - math.Abs(d)
}

func clampIndex(i, n int) int {
	return min(max(i, 0), n-1)
}

// accumulator sums weighted straight-alpha channels.
type accumulator struct {
	a, r, g, b float64
}

func (acc *accumulator) add(c ARGB, w float64) {
	acc.a += w * float64(c.A())
	acc.r += w * float64(c.R())
	acc.g += w * float64(c.G())
	acc.b += w * float64(c.B())
}

func (acc *accumulator) color() ARGB {
	return NewARGB(channel(acc.a), channel(acc.r), channel(acc.g), channel(acc.b))
}

type bilinearSampler struct {
	r Raster
}

func (s bilinearSampler) Sample(x, y float64) ARGB {
	w, h := s.r.Width(), s.r.Height()
	cx, sx, wx := axisTap(x)
	cy, sy, wy := axisTap(y)

	xs, nx := taps(cx, sx, wx)
	ys, ny := taps(cy, sy, wy)

	var acc accumulator
	for _, ty := range ys[:ny] {
		py := clampIndex(ty.i, h)
		for _, tx := range xs[:nx] {
			px := clampIndex(tx.i, w)
			acc.add(s.r.ARGBAt(px, py), ty.w*tx.w)
		}
	}
	return acc.color()
}

type tap struct {
	i int
	w float64
}

// taps returns the contributing pixel indices along one axis, lowest first,
// and how many of them are in use.
func taps(c, step int, w float64) ([2]tap, int) {
	switch step {
	case -1:
		return [2]tap{{c - 1, 1 - w}, {c, w}}, 2
	case 1:
		return [2]tap{{c, w}, {c + 1, 1 - w}}, 2
	default:
		return [2]tap{{c, w}}, 1
	}
}

type nearestSampler struct {
	r Raster
}

func (s nearestSampler) Sample(x, y float64) ARGB {
	px := clampIndex(int(math.Floor(x)), s.r.Width())
	py := clampIndex(int(math.Floor(y)), s.r.Height())
	return s.r.ARGBAt(px, py)
}

type horizontalSampler struct {
	r Raster
}

func (s horizontalSampler) Sample(x, y float64) ARGB {
	w := s.r.Width()
	py := clampIndex(int(math.Floor(y)), s.r.Height())
	cx, step, cw := axisTap(x)
	center := s.r.ARGBAt(clampIndex(cx, w), py)
	if step == 0 {
		return center
	}
	return lerpARGB(s.r.ARGBAt(clampIndex(cx+step, w), py), center, cw)
}

type verticalSampler struct {
	r Raster
}

func (s verticalSampler) Sample(x, y float64) ARGB {
	h := s.r.Height()
	px := clampIndex(int(math.Floor(x)), s.r.Width())
	cy, step, cw := axisTap(y)
	center := s.r.ARGBAt(px, clampIndex(cy, h))
	if step == 0 {
		return center
	}
	return lerpARGB(s.r.ARGBAt(px, clampIndex(cy+step, h)), center, cw)
}

// lerpARGB blends from a to b; t=1 returns b.
func lerpARGB(a, b ARGB, t float64) ARGB {
	var acc accumulator
	acc.add(a, 1-t)
	acc.add(b, t)
	return acc.color()
}
