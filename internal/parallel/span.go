package parallel

// Span is the half-open index range [Lo, Hi).
type Span struct {
	Lo, Hi int
}

// Len returns the number of indices in the span.
func (s Span) Len() int { return s.Hi - s.Lo }

// Split divides [0, n) into at most parts contiguous, non-empty spans whose
// lengths differ by at most one. Earlier spans get the extra indices.
func Split(n, parts int) []Span {
	if n <= 0 {
		return nil
	}
	parts = min(max(parts, 1), n)
	size, extra := n/parts, n%parts

	spans := make([]Span, parts)
	lo := 0
	for i := range spans {
		hi := lo + size
		if i < extra {
			hi++
		}
		spans[i] = Span{Lo: lo, Hi: hi}
		lo = hi
	}
	return spans
}
