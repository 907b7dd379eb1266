package warp

import (
	"fmt"
	"image"
	"math"
	"sync"
)

// ProjectorOption configures a Projector during creation.
//
// Example:
//
//	p := warp.NewProjector(
//	    warp.WithFlipHorizontally(true),
//	    warp.WithRememberLast(true),
//	)
type ProjectorOption func(*projectorOptions)

type projectorOptions struct {
	smoothEdges        bool
	subSampling        bool
	flipHorizontally   bool
	flipVertically     bool
	rememberMask       bool
	rememberProjection bool
}

func defaultProjectorOptions() projectorOptions {
	return projectorOptions{
		smoothEdges: true,
		subSampling: true,
	}
}

// WithSmoothEdges anti-aliases the outline of the quadrilateral.
// Enabled by default.
func WithSmoothEdges(on bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.smoothEdges = on
	}
}

// WithSubSampling selects bilinear sampling of the source. When disabled the
// nearest source pixel is used. Enabled by default.
func WithSubSampling(on bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.subSampling = on
	}
}

// WithFlipHorizontally mirrors the source left to right.
func WithFlipHorizontally(on bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.flipHorizontally = on
	}
}

// WithFlipVertically mirrors the source top to bottom.
func WithFlipVertically(on bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.flipVertically = on
	}
}

// WithRememberLast keeps both the edge mask and the projection data of the
// last call for reuse by the next one.
func WithRememberLast(on bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.rememberMask = on
		o.rememberProjection = on
	}
}

// WithRememberLastEdgeSmoothing keeps the edge mask of the last call.
// It is reused when the next call has the same quad clipped to the same
// target area.
func WithRememberLastEdgeSmoothing(on bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.rememberMask = on
	}
}

// WithRememberLastProjectionData keeps the relative source coordinates of
// the last call. They are reused when the next call has the same quad,
// perspective and clipped target area.
func WithRememberLastProjectionData(on bool) ProjectorOption {
	return func(o *projectorOptions) {
		o.rememberProjection = on
	}
}

// ProjectorStats holds the counters of a Projector.
type ProjectorStats struct {
	Projections      uint64
	ProjectionHits   uint64
	ProjectionMisses uint64
	MaskHits         uint64
	MaskMisses       uint64
}

// projectionKey identifies projection data by value. area is the part of
// the quad's bounding box inside the target.
type projectionKey struct {
	area           image.Rectangle
	quad           Quadrilateral
	perspective    PseudoPerspective
	hasPerspective bool
}

type maskKey struct {
	area image.Rectangle
	quad Quadrilateral
}

// projectionState holds the relative source coordinates of every pixel in
// bounds, row-major. NaN marks a pixel outside the quad.
type projectionState struct {
	bounds image.Rectangle
	alpha  []float64
	beta   []float64
}

// Projector maps a rectangular source image onto a convex quadrilateral in
// a target image of arbitrary size.
//
// Project is serialized: a Projector may be shared between goroutines, but
// only one projection runs at a time. Use one Projector per goroutine for
// parallel projections.
type Projector struct {
	opts projectorOptions

	mu                sync.Mutex
	lastProjectionKey projectionKey
	lastProjection    *projectionState
	lastMaskKey       maskKey
	lastMask          *Mask
	stats             ProjectorStats
}

// NewProjector creates a projector.
func NewProjector(opts ...ProjectorOption) *Projector {
	p := &Projector{opts: defaultProjectorOptions()}
	for _, opt := range opts {
		opt(&p.opts)
	}
	return p
}

// Stats returns a snapshot of the projector's counters.
func (p *Projector) Stats() ProjectorStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// ProjectOnto projects src onto quad in a target of the same size as src.
func (p *Projector) ProjectOnto(src Raster, quad Quadrilateral, pp *PseudoPerspective) (*Pixmap, error) {
	return p.Project(src, image.Pt(src.Width(), src.Height()), quad, pp)
}

// Project renders src into a new target of the given size, stretched onto
// quad. Target pixels outside the quad are transparent; pixels of the quad
// outside the target are dropped. A nil pp projects without perspective.
//
// Returns ErrInvalidDimensions if size or src is empty and ErrMagnitude if
// pp is out of range.
func (p *Projector) Project(src Raster, size image.Point, quad Quadrilateral, pp *PseudoPerspective) (*Pixmap, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: target %dx%d", ErrInvalidDimensions, size.X, size.Y)
	}
	if src.Width() <= 0 || src.Height() <= 0 {
		return nil, fmt.Errorf("%w: source %dx%d", ErrInvalidDimensions, src.Width(), src.Height())
	}
	if pp != nil {
		if err := pp.validate(); err != nil {
			return nil, err
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats.Projections++

	dst := NewPixmap(size.X, size.Y)
	area := quad.Bounds().Intersect(dst.Bounds())
	if area.Empty() {
		Logger().Warn("warp: quad outside target", "quad", quad, "size", size)
		return dst, nil
	}

	state := p.projectionState(quad, pp, area)
	var mask *Mask
	if p.opts.smoothEdges {
		mask = p.edgeMask(quad, area)
	}

	var sampler Sampler
	if p.opts.subSampling {
		sampler = NewBilinearSampler(src)
	} else {
		sampler = NewNearestSampler(src)
	}
	sw, sh := float64(src.Width()-1), float64(src.Height()-1)

	i := 0
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x, i = x+1, i+1 {
			alpha, beta := state.alpha[i], state.beta[i]
			if math.IsNaN(alpha) {
				continue
			}
			if p.opts.flipHorizontally {
				alpha = 1 - alpha
			}
			if p.opts.flipVertically {
				beta = 1 - beta
			}
			c := sampler.Sample(0.5+alpha*sw, 0.5+beta*sh)
			if mask != nil {
				c = c.WithAlpha(smoothAlpha(mask.At(x-area.Min.X, y-area.Min.Y), c.A()))
			}
			dst.SetARGB(x, y, c)
		}
	}
	return dst, nil
}

// smoothAlpha combines edge coverage with the alpha of the sampled color.
func smoothAlpha(coverage, alpha uint8) uint8 {
	if alpha == 255 {
		return coverage
	}
	return channel(float64(coverage) / 255 * float64(alpha))
}

// projectionState returns the projection data for (quad, pp) over area,
// reusing the remembered slot on an exact key match. Callers hold p.mu.
func (p *Projector) projectionState(quad Quadrilateral, pp *PseudoPerspective, area image.Rectangle) *projectionState {
	key := projectionKey{area: area, quad: quad}
	if pp != nil {
		key.perspective, key.hasPerspective = *pp, true
	}

	hit := p.lastProjection != nil && p.lastProjectionKey == key
	Logger().Debug("warp: projection state", "hit", hit, "quad", quad, "area", area)
	if hit {
		p.stats.ProjectionHits++
		return p.lastProjection
	}
	p.stats.ProjectionMisses++

	state := solveProjection(quad, pp, area)
	if p.opts.rememberProjection {
		p.lastProjectionKey, p.lastProjection = key, state
	}
	return state
}

// edgeMask returns the coverage mask of quad over area, reusing the
// remembered slot on an exact key match. Callers hold p.mu.
func (p *Projector) edgeMask(quad Quadrilateral, area image.Rectangle) *Mask {
	key := maskKey{area: area, quad: quad}

	hit := p.lastMask != nil && p.lastMaskKey == key
	Logger().Debug("warp: edge mask", "hit", hit, "quad", quad, "area", area)
	if hit {
		p.stats.MaskHits++
		return p.lastMask
	}
	p.stats.MaskMisses++

	mask := newQuadMask(quad, area)
	if p.opts.rememberMask {
		p.lastMaskKey, p.lastMask = key, mask
	}
	return mask
}

// bilinearPatch holds the per-quad coefficients of the inverse bilinear
// mapping. Vertices are taken at pixel centers.
type bilinearPatch struct {
	p1x, p1y float64
	p3x      float64
	vx, vy   float64
	a0, b0   float64
	c        float64
	d0, e0   float64
	f        float64
}

func newBilinearPatch(q Quadrilateral) bilinearPatch {
	center := func(p image.Point) (float64, float64) {
		return float64(p.X) + 0.5, float64(p.Y) + 0.5
	}
	p1x, p1y := center(q.UpperLeft)
	p2x, p2y := center(q.UpperRight)
	p3x, p3y := center(q.BottomLeft)
	p4x, p4y := center(q.BottomRight)

	bp := bilinearPatch{
		p1x: p1x, p1y: p1y, p3x: p3x,
		vx: p1x - p2x + p4x - p3x,
		vy: p1y - p2y + p4y - p3y,
		a0: p2y - p1y,
		d0: p2x - p1x,
	}
	bp.b0 = (p3x - p1x) * bp.a0
	bp.c = (p1x - p3x) * bp.vy
	bp.e0 = (p3y - p1y) * bp.d0
	bp.f = (p1y - p3y) * bp.vx
	return bp
}

// invert returns the relative coordinates (alpha, beta) of the point (x, y)
// within the patch, and false if the point lies outside it.
//
// beta is the root of (c-f)β² - (e-b)β + (a-d) = 0 selected by
// (e-b + sqrt(disc)) / 2(c-f). The root is computed without cancellation,
// and the equation degenerates to a linear one for parallelograms.
func (bp *bilinearPatch) invert(x, y float64) (alpha, beta float64, ok bool) {
	a := (x - bp.p1x) * bp.a0
	b := (x-bp.p1x)*bp.vy - bp.b0
	d := (y - bp.p1y) * bp.d0
	e := (y-bp.p1y)*bp.vx - bp.e0

	eb, cf, ad := e-b, bp.c-bp.f, a-d
	switch {
	case cf == 0:
		if eb == 0 {
			return 0, 0, false
		}
		beta = ad / eb
	default:
		disc := eb*eb - 4*cf*ad
		if disc < 0 {
			return 0, 0, false
		}
		root := math.Sqrt(disc)
		if eb < 0 {
			beta = 2 * ad / (eb - root)
		} else {
			beta = (eb + root) / (2 * cf)
		}
	}
	if !(beta >= 0 && beta <= 1) {
		return 0, 0, false
	}

	alpha = (x - bp.p1x - beta*(bp.p3x-bp.p1x)) / (bp.d0 + beta*bp.vx)
	if !(alpha >= 0 && alpha <= 1) {
		return 0, 0, false
	}
	return alpha, beta, true
}

// solveProjection computes the relative source coordinates of every pixel
// in area, which callers clip to the target.
func solveProjection(quad Quadrilateral, pp *PseudoPerspective, area image.Rectangle) *projectionState {
	bb := area
	n := bb.Dx() * bb.Dy()
	state := &projectionState{
		bounds: bb,
		alpha:  make([]float64, n),
		beta:   make([]float64, n),
	}

	patch := newBilinearPatch(quad)
	ex, ey := pp.exponents(quad)
	i := 0
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		for x := bb.Min.X; x < bb.Max.X; x++ {
			alpha, beta, ok := patch.invert(float64(x)+0.5, float64(y)+0.5)
			if !ok {
				alpha, beta = math.NaN(), math.NaN()
			} else {
				alpha, beta = math.Pow(alpha, ex), math.Pow(beta, ey)
			}
			state.alpha[i], state.beta[i] = alpha, beta
			i++
		}
	}
	return state
}
