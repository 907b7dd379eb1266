package warp

import (
	"math"

	"github.com/gogpu/warp/internal/cache"
)

// bandAxis selects which coordinate the bands partition.
type bandAxis uint8

const (
	// alongX: bands partition x; each row is a scanline.
	alongX bandAxis = iota
	// alongY: bands partition y; each column is a scanline.
	alongY
)

// edgeCacheLimit bounds the number of discretized separators kept per
// banding. Each entry is one (curve, vertex count) pair, so the limit is
// only reached when one banding deforms many raster sizes.
const edgeCacheLimit = 64

type edgeKey struct {
	curve    Curve
	vertices int
}

// banding is the axis-independent core of ColumnBanding and RowBanding.
type banding struct {
	axis  bandAxis
	bands []Band
	edges *cache.Cache[edgeKey, *PolyLine]
}

func newBanding(axis bandAxis, bands []Band) (banding, error) {
	if err := validateBands(bands); err != nil {
		return banding{}, err
	}
	return banding{
		axis:  axis,
		bands: append([]Band(nil), bands...),
		edges: cache.New[edgeKey, *PolyLine](edgeCacheLimit),
	}, nil
}

// length returns the raster size along the banded axis.
func (b *banding) length(width, height int) int {
	if b.axis == alongX {
		return width
	}
	return height
}

// breadth returns the raster size along the scanline-selecting axis.
func (b *banding) breadth(width, height int) int {
	if b.axis == alongX {
		return height
	}
	return width
}

// edge returns the discretized separator for a raster of the given size.
func (b *banding) edge(c Curve, width, height int) *PolyLine {
	n := 2 + b.breadth(width, height)/2
	return b.edges.GetOrCreate(edgeKey{curve: c, vertices: n}, func() *PolyLine {
		pl, _ := c.Polyline(n) // n >= 2
		return pl
	})
}

// crossing intersects the separator c with the scanline at across, scanning
// edges from *from and then from the first edge, so that separators running
// against the sweep direction are found too. On a hit *from is moved to the
// hit edge.
func (b *banding) crossing(c Curve, across float64, width, height int, from *int) (float64, bool) {
	pl := b.edge(c, width, height)
	find := pl.intersectAtXFrom
	if b.axis == alongX {
		find = pl.intersectAtYFrom
	}
	p, i, ok := find(across, *from)
	if !ok && *from > 0 {
		p, i, ok = find(across, 0)
	}
	if !ok {
		return 0, false
	}
	*from = i
	if b.axis == alongX {
		return p.X, true
	}
	return p.Y, true
}

func (b *banding) cursor() *bandCursor {
	return &bandCursor{b: b, from: make([][2]int, len(b.bands))}
}

func (b *banding) targetExtents(across float64, width, height int) []float64 {
	c := b.cursor()
	c.across = across
	out := make([]float64, len(b.bands))
	for i := range out {
		out[i] = c.extent(i, width, height)
	}
	return out
}

// bandCursor walks the bands of one scanline. It remembers the current band
// while the along coordinate increases, and the separator edge positions
// while the scanline coordinate increases.
type bandCursor struct {
	b *banding

	valid  bool
	across float64
	last   float64

	index  int
	offset float64 // destination start of the current band
	size   float64 // destination extent of the current band
	source int     // source start of the current band

	from [][2]int // per band: leading, trailing edge index
}

func (c *bandCursor) restart(across float64, width, height int) {
	if c.valid && across < c.across {
		clear(c.from)
	}
	c.valid = true
	c.across = across
	c.last = math.Inf(-1)
	c.index = 0
	c.offset = 0
	c.source = 0
	c.size = c.extent(0, width, height)
}

// extent returns the destination extent of band i on the current scanline.
func (c *bandCursor) extent(i, width, height int) float64 {
	switch band := c.b.bands[i].(type) {
	case ConstantBand:
		return band.Target
	case CurvedBand:
		lead, trail := 0.0, float64(c.b.length(width, height))
		if band.Leading != nil {
			if v, ok := c.b.crossing(band.Leading, c.across, width, height, &c.from[i][0]); ok {
				lead = v
			}
		}
		if band.Trailing != nil {
			if v, ok := c.b.crossing(band.Trailing, c.across, width, height, &c.from[i][1]); ok {
				trail = v
			}
		}
		return max(trail-lead, 1)
	}
	return 1
}

// project maps the destination coordinate pos on scanline across to a
// source coordinate clamped to the pixel centers of the banded axis.
func (c *bandCursor) project(pos, across float64, width, height int) float64 {
	if !c.valid || across != c.across || pos < c.last {
		c.restart(across, width, height)
	}
	c.last = pos

	bands := c.b.bands
	for pos >= c.offset+c.size && c.index < len(bands)-1 {
		c.source += bands[c.index].SourceExtent()
		c.offset += c.size
		c.index++
		c.size = c.extent(c.index, width, height)
	}
	r := (pos - c.offset) / c.size
	p := float64(c.source) + r*float64(bands[c.index].SourceExtent())
	return min(max(p, 0.5), float64(c.b.length(width, height))-0.5)
}

// ColumnBanding partitions the image into vertical bands along x and
// stretches each band horizontally. It is a HorizontalProjection.
type ColumnBanding struct {
	b banding
}

var (
	_ HorizontalProjection = (*ColumnBanding)(nil)
	_ HorizontalSweeper    = (*ColumnBanding)(nil)
)

// NewColumnBanding creates a banding from left to right.
// Returns ErrNoBands without bands and ErrInvalidBand for a negative source
// extent or a non-positive constant target extent.
func NewColumnBanding(bands ...Band) (*ColumnBanding, error) {
	b, err := newBanding(alongX, bands)
	if err != nil {
		return nil, err
	}
	return &ColumnBanding{b: b}, nil
}

// NewCurvedColumnBanding creates curved bands of the given source widths,
// separated by len(sourceWidths)-1 curves running from top to bottom.
func NewCurvedColumnBanding(sourceWidths []int, separators []Curve) (*ColumnBanding, error) {
	bands, err := curvedBands(sourceWidths, separators)
	if err != nil {
		return nil, err
	}
	return NewColumnBanding(bands...)
}

// SplitColumnBanding creates two curved bands that split totalWidth source
// columns at relative distance r from the left, separated by one curve.
func SplitColumnBanding(totalWidth int, r float64, separator Curve) (*ColumnBanding, error) {
	return NewCurvedColumnBanding(splitExtent(totalWidth, r), []Curve{separator})
}

// Bands returns a copy of the bands, left to right.
func (cb *ColumnBanding) Bands() []Band { return append([]Band(nil), cb.b.bands...) }

// ProjectX implements HorizontalProjection.
func (cb *ColumnBanding) ProjectX(x, y float64, width, height int) float64 {
	return cb.b.cursor().project(x, y, width, height)
}

// SweepX implements HorizontalSweeper.
func (cb *ColumnBanding) SweepX() HorizontalProjection {
	return columnCursor{cb.b.cursor()}
}

// TargetExtents returns the destination width of every band on row y.
func (cb *ColumnBanding) TargetExtents(y float64, width, height int) []float64 {
	return cb.b.targetExtents(y, width, height)
}

// Deformation returns a deformation that applies the banding horizontally.
func (cb *ColumnBanding) Deformation(opts ...DeformationOption) *Deformation {
	return NewDeformation(cb, nil, opts...)
}

// Deform applies the banding to src.
func (cb *ColumnBanding) Deform(src Raster) *Pixmap {
	return cb.Deformation().Deform(src)
}

type columnCursor struct {
	c *bandCursor
}

func (cc columnCursor) ProjectX(x, y float64, width, height int) float64 {
	return cc.c.project(x, y, width, height)
}

// RowBanding partitions the image into horizontal bands along y and
// stretches each band vertically. It is a VerticalProjection.
type RowBanding struct {
	b banding
}

var (
	_ VerticalProjection = (*RowBanding)(nil)
	_ VerticalSweeper    = (*RowBanding)(nil)
)

// NewRowBanding creates a banding from top to bottom.
// Errors are as for NewColumnBanding.
func NewRowBanding(bands ...Band) (*RowBanding, error) {
	b, err := newBanding(alongY, bands)
	if err != nil {
		return nil, err
	}
	return &RowBanding{b: b}, nil
}

// NewCurvedRowBanding creates curved bands of the given source heights,
// separated by len(sourceHeights)-1 curves running from left to right.
func NewCurvedRowBanding(sourceHeights []int, separators []Curve) (*RowBanding, error) {
	bands, err := curvedBands(sourceHeights, separators)
	if err != nil {
		return nil, err
	}
	return NewRowBanding(bands...)
}

// SplitRowBanding creates two curved bands that split totalHeight source
// rows at relative distance r from the top, separated by one curve.
func SplitRowBanding(totalHeight int, r float64, separator Curve) (*RowBanding, error) {
	return NewCurvedRowBanding(splitExtent(totalHeight, r), []Curve{separator})
}

// Bands returns a copy of the bands, top to bottom.
func (rb *RowBanding) Bands() []Band { return append([]Band(nil), rb.b.bands...) }

// ProjectY implements VerticalProjection.
func (rb *RowBanding) ProjectY(x, y float64, width, height int) float64 {
	return rb.b.cursor().project(y, x, width, height)
}

// SweepY implements VerticalSweeper.
func (rb *RowBanding) SweepY() VerticalProjection {
	return rowCursor{rb.b.cursor()}
}

// TargetExtents returns the destination height of every band on column x.
func (rb *RowBanding) TargetExtents(x float64, width, height int) []float64 {
	return rb.b.targetExtents(x, width, height)
}

// Deformation returns a deformation that applies the banding vertically.
func (rb *RowBanding) Deformation(opts ...DeformationOption) *Deformation {
	return NewDeformation(nil, rb, opts...)
}

// Deform applies the banding to src.
func (rb *RowBanding) Deform(src Raster) *Pixmap {
	return rb.Deformation().Deform(src)
}

type rowCursor struct {
	c *bandCursor
}

func (rc rowCursor) ProjectY(x, y float64, width, height int) float64 {
	return rc.c.project(y, x, width, height)
}
