package warp

import "fmt"

// Band is one partition of a banded deformation: a contiguous run of
// source columns (or rows) and the rule that gives its extent in the
// destination. The variants are ConstantBand and CurvedBand.
type Band interface {
	// SourceExtent returns the number of source pixels the band covers.
	SourceExtent() int

	band()
}

// ConstantBand stretches Source pixels to a fixed Target extent on every
// scanline.
type ConstantBand struct {
	Source int
	Target float64
}

// SourceExtent returns b.Source.
func (b ConstantBand) SourceExtent() int { return b.Source }

func (ConstantBand) band() {}

// CurvedBand is bounded by two separator curves. Its destination extent on
// a scanline is the distance between the points where the separators cross
// that scanline, at least 1 pixel. A nil edge, or an edge that misses the
// scanline, stands for the image bound on that side.
type CurvedBand struct {
	Source   int
	Leading  Curve
	Trailing Curve
}

// SourceExtent returns b.Source.
func (b CurvedBand) SourceExtent() int { return b.Source }

func (CurvedBand) band() {}

func validateBands(bands []Band) error {
	if len(bands) == 0 {
		return ErrNoBands
	}
	for i, b := range bands {
		switch b := b.(type) {
		case ConstantBand:
			if b.Source < 0 || !(b.Target > 0) {
				return fmt.Errorf("%w: band %d has source %d, target %g", ErrInvalidBand, i, b.Source, b.Target)
			}
		case CurvedBand:
			if b.Source < 0 {
				return fmt.Errorf("%w: band %d has source %d", ErrInvalidBand, i, b.Source)
			}
		default:
			return fmt.Errorf("%w: band %d is %T", ErrInvalidBand, i, b)
		}
	}
	return nil
}

// curvedBands builds one band per source extent, separated by the given
// curves. The first band's leading edge and the last band's trailing edge
// are the image bounds.
func curvedBands(sources []int, separators []Curve) ([]Band, error) {
	if len(separators) == 0 || len(separators) != len(sources)-1 {
		return nil, fmt.Errorf("%w: %d separators for %d bands", ErrSeparatorCount, len(separators), len(sources))
	}
	bands := make([]Band, len(sources))
	for i, src := range sources {
		var leading, trailing Curve
		if i > 0 {
			leading = separators[i-1]
		}
		if i < len(separators) {
			trailing = separators[i]
			if trailing == nil {
				return nil, fmt.Errorf("%w: separator %d is nil", ErrInvalidBand, i)
			}
		}
		bands[i] = CurvedBand{Source: src, Leading: leading, Trailing: trailing}
	}
	return bands, nil
}

// splitExtent divides total at relative distance r, rounding half up.
func splitExtent(total int, r float64) []int {
	first := int(roundHalfUp(r * float64(total)))
	return []int{first, total - first}
}
