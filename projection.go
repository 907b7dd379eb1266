package warp

// HorizontalProjection maps a destination pixel center to a source x
// coordinate. width and height are the raster dimensions, which are the
// same for source and destination.
type HorizontalProjection interface {
	ProjectX(x, y float64, width, height int) float64
}

// VerticalProjection maps a destination pixel center to a source y
// coordinate.
type VerticalProjection interface {
	ProjectY(x, y float64, width, height int) float64
}

// HorizontalProjectionFunc adapts a function to HorizontalProjection.
type HorizontalProjectionFunc func(x, y float64, width, height int) float64

// ProjectX calls f(x, y, width, height).
func (f HorizontalProjectionFunc) ProjectX(x, y float64, width, height int) float64 {
	return f(x, y, width, height)
}

// VerticalProjectionFunc adapts a function to VerticalProjection.
type VerticalProjectionFunc func(x, y float64, width, height int) float64

// ProjectY calls f(x, y, width, height).
func (f VerticalProjectionFunc) ProjectY(x, y float64, width, height int) float64 {
	return f(x, y, width, height)
}

// HorizontalSweeper is implemented by horizontal projections that can run
// faster when x advances monotonically along each row.
//
// SweepX returns a cursor that must be used by one goroutine only. It
// accepts any call order but is fastest for row-major sweeps. For curved
// bands whose separators cross each scanline once, the cursor gives the
// same results as the projection itself.
type HorizontalSweeper interface {
	SweepX() HorizontalProjection
}

// VerticalSweeper is the column-major counterpart of HorizontalSweeper.
type VerticalSweeper interface {
	SweepY() VerticalProjection
}

// sweepX returns a cursor for p if it offers one, otherwise p itself.
func sweepX(p HorizontalProjection) HorizontalProjection {
	if s, ok := p.(HorizontalSweeper); ok {
		return s.SweepX()
	}
	return p
}

// sweepY returns a cursor for p if it offers one, otherwise p itself.
func sweepY(p VerticalProjection) VerticalProjection {
	if s, ok := p.(VerticalSweeper); ok {
		return s.SweepY()
	}
	return p
}
