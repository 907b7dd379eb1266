package warp

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func TestProjectorUniformIdentity(t *testing.T) {
	src := uniformPixmap(4, 4, NewARGB(255, 200, 100, 50))
	dst, err := NewProjector().Project(src, image.Pt(4, 4), axisAlignedQuad(0, 0, 3, 3), nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	if !dst.Equal(src) {
		p, _ := pixmapDiff(dst, src)
		t.Errorf("output differs from input at %v: got %v, want %v", p, dst.ARGBAt(p.X, p.Y), src.ARGBAt(p.X, p.Y))
	}
}

func TestProjectorIdentity(t *testing.T) {
	tests := []struct {
		name string
		opts []ProjectorOption
	}{
		{"defaults", nil},
		{"hard edges", []ProjectorOption{WithSmoothEdges(false)}},
		{"nearest", []ProjectorOption{WithSubSampling(false)}},
		{"remembering", []ProjectorOption{WithRememberLast(true)}},
	}
	src := gradientPixmap(7, 5)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := NewProjector(tt.opts...).ProjectOnto(src, RectQuad(src.Bounds()), nil)
			if err != nil {
				t.Fatalf("ProjectOnto() = %v", err)
			}
			if p, ok := pixmapDiff(dst, src); ok {
				t.Errorf("pixel %v = %v, want %v", p, dst.ARGBAt(p.X, p.Y), src.ARGBAt(p.X, p.Y))
			}
		})
	}
}

func TestProjectorFlips(t *testing.T) {
	src := gradientPixmap(6, 4)
	w, h := src.Width(), src.Height()
	tests := []struct {
		name   string
		opts   []ProjectorOption
		mirror func(x, y int) (int, int)
	}{
		{"horizontal", []ProjectorOption{WithFlipHorizontally(true)}, func(x, y int) (int, int) { return w - 1 - x, y }},
		{"vertical", []ProjectorOption{WithFlipVertically(true)}, func(x, y int) (int, int) { return x, h - 1 - y }},
		{"both", []ProjectorOption{WithFlipHorizontally(true), WithFlipVertically(true)}, func(x, y int) (int, int) {
			return w - 1 - x, h - 1 - y
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst, err := NewProjector(tt.opts...).ProjectOnto(src, RectQuad(src.Bounds()), nil)
			if err != nil {
				t.Fatalf("ProjectOnto() = %v", err)
			}
			for y := range h {
				for x := range w {
					mx, my := tt.mirror(x, y)
					if got, want := dst.ARGBAt(x, y), src.ARGBAt(mx, my); got != want {
						t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestProjectorRememberMatchesRecompute(t *testing.T) {
	src := gradientPixmap(32, 24)
	quad := Quadrilateral{
		UpperLeft:   image.Pt(12, 4),
		UpperRight:  image.Pt(40, 2),
		BottomRight: image.Pt(46, 38),
		BottomLeft:  image.Pt(3, 33),
	}
	pp, err := NewPseudoPerspective(0.4, 0.7)
	if err != nil {
		t.Fatalf("NewPseudoPerspective() = %v", err)
	}
	size := image.Pt(50, 40)

	remembering := NewProjector(WithRememberLast(true))
	forgetful := NewProjector()
	reference, err := forgetful.Project(src, size, quad, pp)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	for i := range 3 {
		a, err := remembering.Project(src, size, quad, pp)
		if err != nil {
			t.Fatalf("remembering Project() = %v", err)
		}
		b, err := forgetful.Project(src, size, quad, pp)
		if err != nil {
			t.Fatalf("forgetful Project() = %v", err)
		}
		if p, ok := pixmapDiff(a, reference); ok {
			t.Errorf("call %d: cached pixel %v = %v, want %v", i, p, a.ARGBAt(p.X, p.Y), reference.ARGBAt(p.X, p.Y))
		}
		if !b.Equal(reference) {
			t.Errorf("call %d: uncached output is not reproducible", i)
		}
	}

	if got, want := remembering.Stats(), (ProjectorStats{
		Projections: 3, ProjectionHits: 2, ProjectionMisses: 1, MaskHits: 2, MaskMisses: 1,
	}); got != want {
		t.Errorf("remembering Stats() = %+v, want %+v", got, want)
	}
	if got, want := forgetful.Stats(), (ProjectorStats{
		Projections: 4, ProjectionMisses: 4, MaskMisses: 4,
	}); got != want {
		t.Errorf("forgetful Stats() = %+v, want %+v", got, want)
	}
}

func TestProjectorCacheKeys(t *testing.T) {
	src := uniformPixmap(8, 8, NewARGB(255, 1, 2, 3))
	quad := axisAlignedQuad(1, 1, 6, 6)
	pp := &PseudoPerspective{Horizontal: 0.5}
	p := NewProjector(WithRememberLastProjectionData(true))

	// Hits on the second call, on an equal perspective behind a different
	// pointer and on a larger target that clips the quad the same way.
	calls := []struct {
		size image.Point
		quad Quadrilateral
		pp   *PseudoPerspective
	}{
		{image.Pt(8, 8), quad, nil},
		{image.Pt(8, 8), quad, nil},
		{image.Pt(8, 8), quad, pp},
		{image.Pt(8, 8), quad, &PseudoPerspective{Horizontal: 0.5}},
		{image.Pt(9, 9), quad, &PseudoPerspective{Horizontal: 0.5}},
		{image.Pt(9, 9), axisAlignedQuad(1, 1, 6, 7), pp},
	}
	for _, c := range calls {
		if _, err := p.Project(src, c.size, c.quad, c.pp); err != nil {
			t.Fatalf("Project() = %v", err)
		}
	}

	got := p.Stats()
	if got.ProjectionHits != 3 || got.ProjectionMisses != 3 {
		t.Errorf("projection hits/misses = %d/%d, want 3/3", got.ProjectionHits, got.ProjectionMisses)
	}
	if got.MaskHits != 0 || got.MaskMisses != 6 {
		t.Errorf("mask hits/misses = %d/%d, want 0/6 without mask caching", got.MaskHits, got.MaskMisses)
	}
}

func TestProjectorOutsideQuadIsTransparent(t *testing.T) {
	c := NewARGB(255, 9, 8, 7)
	src := uniformPixmap(4, 4, c)
	quad := axisAlignedQuad(2, 3, 5, 6)
	dst, err := NewProjector().Project(src, image.Pt(10, 10), quad, nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	inside := image.Rect(2, 3, 6, 7)
	for y := range 10 {
		for x := range 10 {
			want := Transparent
			if image.Pt(x, y).In(inside) {
				want = c
			}
			if got := dst.ARGBAt(x, y); got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestProjectorClipsToTarget(t *testing.T) {
	c := NewARGB(255, 50, 60, 70)
	src := uniformPixmap(6, 6, c)

	dst, err := NewProjector().Project(src, image.Pt(4, 4), axisAlignedQuad(-2, -2, 3, 3), nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	for y := range 4 {
		for x := range 4 {
			if got := dst.ARGBAt(x, y); got != c {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}

	dst, err = NewProjector().Project(src, image.Pt(4, 4), axisAlignedQuad(10, 10, 12, 12), nil)
	if err != nil {
		t.Fatalf("Project() outside target = %v", err)
	}
	if !dst.Equal(NewPixmap(4, 4)) {
		t.Error("quad outside the target should leave it transparent")
	}
}

func TestProjectorLargeQuadOnSmallTarget(t *testing.T) {
	c := NewARGB(255, 70, 80, 90)
	src := uniformPixmap(4, 4, c)
	quad := axisAlignedQuad(0, 0, 6000, 6000)
	area := image.Rect(0, 0, 8, 8)

	if state := solveProjection(quad, nil, area); len(state.alpha) != 64 || len(state.beta) != 64 {
		t.Fatalf("projection data holds %d/%d pixels, want 64", len(state.alpha), len(state.beta))
	}

	p := NewProjector(WithRememberLast(true))
	dst, err := p.Project(src, area.Max, quad, nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	for y := range 8 {
		for x := range 8 {
			if got := dst.ARGBAt(x, y); got != c {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, c)
			}
		}
	}
	if n := len(p.lastProjection.alpha); n != 64 {
		t.Errorf("remembered projection data holds %d pixels, want 64", n)
	}
	if w, h := p.lastMask.Width(), p.lastMask.Height(); w != 8 || h != 8 {
		t.Errorf("remembered mask = %dx%d, want 8x8", w, h)
	}
}

func TestProjectorCropMatchesLargerTarget(t *testing.T) {
	src := gradientPixmap(16, 12)
	quad := Quadrilateral{
		UpperLeft:   image.Pt(3, 2),
		UpperRight:  image.Pt(35, 5),
		BottomRight: image.Pt(30, 36),
		BottomLeft:  image.Pt(1, 30),
	}
	p := NewProjector(WithSmoothEdges(false))
	large, err := p.Project(src, image.Pt(40, 40), quad, nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	small, err := p.Project(src, image.Pt(20, 20), quad, nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	if pt, ok := pixmapDiff(small, large); ok {
		t.Errorf("pixel %v = %v on the small target, %v on the large one", pt, small.ARGBAt(pt.X, pt.Y), large.ARGBAt(pt.X, pt.Y))
	}
}

func TestProjectorParallelogram(t *testing.T) {
	c := NewARGB(255, 10, 20, 30)
	src := uniformPixmap(5, 5, c)
	quad := Quadrilateral{
		UpperLeft:   image.Pt(4, 0),
		UpperRight:  image.Pt(11, 0),
		BottomRight: image.Pt(7, 8),
		BottomLeft:  image.Pt(0, 8),
	}
	dst, err := NewProjector(WithSmoothEdges(false)).Project(src, image.Pt(12, 9), quad, nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	tests := []struct {
		p    image.Point
		want ARGB
	}{
		{image.Pt(6, 4), c},
		{image.Pt(5, 0), c},
		{image.Pt(0, 0), Transparent},
		{image.Pt(11, 8), Transparent},
	}
	for _, tt := range tests {
		if got := dst.ARGBAt(tt.p.X, tt.p.Y); got != tt.want {
			t.Errorf("pixel %v = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestProjectorPerspectiveExponent(t *testing.T) {
	// Columns differ, rows are identical, so only alpha matters.
	src := NewPixmap(11, 3)
	for y := range 3 {
		for x := range 11 {
			src.SetARGB(x, y, NewARGB(255, uint8(x*20), 0, 0))
		}
	}
	pp := &PseudoPerspective{Horizontal: 1}
	dst, err := NewProjector().ProjectOnto(src, RectQuad(src.Bounds()), pp)
	if err != nil {
		t.Fatalf("ProjectOnto() = %v", err)
	}

	// Left and right sides are equal, so the exponent is 2 and the middle
	// column samples at relative position 0.25.
	want := NewBilinearSampler(src).Sample(0.5+0.25*10, 1.5)
	if got := dst.ARGBAt(5, 1); got != want {
		t.Errorf("middle pixel = %v, want %v", got, want)
	}
	if got, want := dst.ARGBAt(0, 1), src.ARGBAt(0, 1); got != want {
		t.Errorf("left pixel = %v, want %v", got, want)
	}
	if got, want := dst.ARGBAt(10, 1), src.ARGBAt(10, 1); got != want {
		t.Errorf("right pixel = %v, want %v", got, want)
	}
}

func TestProjectorSmoothEdges(t *testing.T) {
	src := uniformPixmap(8, 8, NewARGB(255, 200, 200, 200))
	quad := Quadrilateral{
		UpperLeft:   image.Pt(6, 1),
		UpperRight:  image.Pt(24, 3),
		BottomRight: image.Pt(21, 22),
		BottomLeft:  image.Pt(2, 18),
	}

	partial := func(pm *Pixmap) int {
		n := 0
		for y := range pm.Height() {
			for x := range pm.Width() {
				if a := pm.ARGBAt(x, y).A(); a != 0 && a != 255 {
					n++
				}
			}
		}
		return n
	}

	smooth, err := NewProjector().Project(src, image.Pt(26, 24), quad, nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	if partial(smooth) == 0 {
		t.Error("smooth edges produced no partially covered pixels")
	}

	hard, err := NewProjector(WithSmoothEdges(false)).Project(src, image.Pt(26, 24), quad, nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	if n := partial(hard); n != 0 {
		t.Errorf("hard edges produced %d partially covered pixels", n)
	}
}

func TestSmoothAlpha(t *testing.T) {
	tests := []struct {
		coverage, alpha, want uint8
	}{
		{255, 255, 255},
		{128, 255, 128},
		{0, 255, 0},
		{255, 128, 128},
		{128, 128, 64},
		{0, 90, 0},
	}
	for _, tt := range tests {
		if got := smoothAlpha(tt.coverage, tt.alpha); got != tt.want {
			t.Errorf("smoothAlpha(%d, %d) = %d, want %d", tt.coverage, tt.alpha, got, tt.want)
		}
	}
}

func TestProjectorDemoQuad(t *testing.T) {
	src := gradientPixmap(64, 48)
	quad := Quadrilateral{
		UpperLeft:   image.Pt(88, 61),
		UpperRight:  image.Pt(247, 15),
		BottomRight: image.Pt(256, 345),
		BottomLeft:  image.Pt(75, 293),
	}
	pp, err := NewPseudoPerspective(0.3, 0)
	if err != nil {
		t.Fatalf("NewPseudoPerspective() = %v", err)
	}

	dst, err := NewProjector(WithRememberLast(true)).Project(src, image.Pt(320, 360), quad, pp)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}
	if got := dst.ARGBAt(165, 180).A(); got != 255 {
		t.Errorf("interior alpha = %d, want 255", got)
	}
	for _, p := range []image.Point{{0, 0}, {319, 0}, {319, 359}, {0, 359}, {80, 20}} {
		if got := dst.ARGBAt(p.X, p.Y); got != Transparent {
			t.Errorf("pixel %v = %v, want transparent", p, got)
		}
	}
}

func TestProjectorErrors(t *testing.T) {
	src := uniformPixmap(2, 2, NewARGB(255, 0, 0, 0))
	quad := axisAlignedQuad(0, 0, 1, 1)
	tests := []struct {
		name string
		src  Raster
		size image.Point
		pp   *PseudoPerspective
		want error
	}{
		{"zero width", src, image.Pt(0, 2), nil, ErrInvalidDimensions},
		{"negative height", src, image.Pt(2, -1), nil, ErrInvalidDimensions},
		{"empty source", NewPixmap(0, 3), image.Pt(2, 2), nil, ErrInvalidDimensions},
		{"magnitude", src, image.Pt(2, 2), &PseudoPerspective{Horizontal: 1.5}, ErrMagnitude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProjector()
			if _, err := p.Project(tt.src, tt.size, quad, tt.pp); !errors.Is(err, tt.want) {
				t.Errorf("Project() error = %v, want %v", err, tt.want)
			}
			if got := p.Stats().Projections; got != 0 {
				t.Errorf("rejected call counted as projection: %d", got)
			}
		})
	}
}

func TestProjectorConcurrentUse(t *testing.T) {
	src := gradientPixmap(16, 16)
	quad := Quadrilateral{
		UpperLeft:   image.Pt(3, 2),
		UpperRight:  image.Pt(20, 1),
		BottomRight: image.Pt(22, 19),
		BottomLeft:  image.Pt(1, 17),
	}
	p := NewProjector(WithRememberLast(true))
	want, err := p.Project(src, image.Pt(24, 20), quad, nil)
	if err != nil {
		t.Fatalf("Project() = %v", err)
	}

	var wg sync.WaitGroup
	results := make([]*Pixmap, 8)
	for i := range results {
		wg.Go(func() {
			results[i], _ = p.Project(src, image.Pt(24, 20), quad, nil)
		})
	}
	wg.Wait()
	for i, got := range results {
		if got == nil || !got.Equal(want) {
			t.Errorf("goroutine %d produced a different image", i)
		}
	}
	if got := p.Stats().ProjectionHits; got != uint64(len(results)) {
		t.Errorf("ProjectionHits = %d, want %d", got, len(results))
	}
}

func BenchmarkProjector(b *testing.B) {
	src := gradientPixmap(256, 256)
	quad := Quadrilateral{
		UpperLeft:   image.Pt(88, 61),
		UpperRight:  image.Pt(247, 15),
		BottomRight: image.Pt(256, 345),
		BottomLeft:  image.Pt(75, 293),
	}
	for _, remember := range []bool{false, true} {
		name := "recompute"
		if remember {
			name = "remember"
		}
		b.Run(name, func(b *testing.B) {
			p := NewProjector(WithRememberLast(remember))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = p.Project(src, image.Pt(320, 360), quad, nil)
			}
		})
	}
}
