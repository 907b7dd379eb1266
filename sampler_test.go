package warp

import "testing"

var (
	black = NewARGB(255, 0, 0, 0)
	tan   = NewARGB(255, 200, 100, 50)
)

func rowPixmap(colors ...ARGB) *Pixmap {
	pm := NewPixmap(len(colors), 1)
	for x, c := range colors {
		pm.SetARGB(x, 0, c)
	}
	return pm
}

func columnPixmap(colors ...ARGB) *Pixmap {
	pm := NewPixmap(1, len(colors))
	for y, c := range colors {
		pm.SetARGB(0, y, c)
	}
	return pm
}

func TestBilinearSampler(t *testing.T) {
	s := NewBilinearSampler(rowPixmap(black, tan))
	tests := []struct {
		name string
		x, y float64
		want ARGB
	}{
		{"left center", 0.5, 0.5, black},
		{"right center", 1.5, 0.5, tan},
		{"halfway", 1.0, 0.5, NewARGB(255, 100, 50, 25)},
		{"quarter rounds half up", 0.75, 0.5, NewARGB(255, 50, 25, 13)},
		{"left edge clamps", 0.25, 0.5, black},
		{"far right clamps", 5, 0.5, tan},
		{"y outside clamps", 0.5, 9, black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Sample(tt.x, tt.y); got != tt.want {
				t.Errorf("Sample(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBilinearSamplerFourNeighbors(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetARGB(0, 0, NewARGB(255, 0, 0, 0))
	pm.SetARGB(1, 0, NewARGB(255, 100, 0, 0))
	pm.SetARGB(0, 1, NewARGB(255, 200, 0, 0))
	pm.SetARGB(1, 1, NewARGB(255, 40, 0, 0))

	got := NewBilinearSampler(pm).Sample(1, 1)
	if got != NewARGB(255, 85, 0, 0) {
		t.Errorf("Sample(1, 1) = %v, want red 85", got)
	}
}

func TestBilinearSamplerStraightAlpha(t *testing.T) {
	s := NewBilinearSampler(rowPixmap(NewARGB(0, 0, 0, 0), NewARGB(255, 255, 255, 255)))
	got := s.Sample(1, 0.5)
	if got.A() != 128 || got.R() != 128 {
		t.Errorf("Sample = %v, want channels blended independently", got)
	}
}

func TestNearestSampler(t *testing.T) {
	s := NewNearestSampler(rowPixmap(black, tan))
	tests := []struct {
		x    float64
		want ARGB
	}{
		{0.1, black}, {0.99, black}, {1.0, tan}, {1.9, tan}, {-4, black}, {7, tan},
	}
	for _, tt := range tests {
		if got := s.Sample(tt.x, 0.2); got != tt.want {
			t.Errorf("Sample(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestAxisSamplers(t *testing.T) {
	h := NewHorizontalSampler(rowPixmap(black, tan))
	v := NewVerticalSampler(columnPixmap(black, tan))
	tests := []struct {
		pos  float64
		want ARGB
	}{
		{0.5, black},
		{1.5, tan},
		{0.75, NewARGB(255, 50, 25, 13)},
		{1.25, NewARGB(255, 150, 75, 38)},
		{0.1, black},
		{3, tan},
	}
	for _, tt := range tests {
		if got := h.Sample(tt.pos, 0.5); got != tt.want {
			t.Errorf("horizontal Sample(%v) = %v, want %v", tt.pos, got, tt.want)
		}
		if got := v.Sample(0.5, tt.pos); got != tt.want {
			t.Errorf("vertical Sample(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestAxisSamplersMatchBilinearOnSingleAxis(t *testing.T) {
	pm := NewPixmap(5, 3)
	for y := range 3 {
		for x := range 5 {
			pm.SetARGB(x, y, NewARGB(255, uint8(x*50), uint8(y*90), uint8(x*y*10)))
		}
	}
	bl := NewBilinearSampler(pm)
	h := NewHorizontalSampler(pm)
	v := NewVerticalSampler(pm)
	for i := 0; i <= 40; i++ {
		pos := 0.5 + float64(i)/10
		if pos <= 4.5 {
			if a, b := h.Sample(pos, 1.5), bl.Sample(pos, 1.5); a != b {
				t.Errorf("x=%v: horizontal %v != bilinear %v", pos, a, b)
			}
		}
		if pos <= 2.5 {
			if a, b := v.Sample(2.5, pos), bl.Sample(2.5, pos); a != b {
				t.Errorf("y=%v: vertical %v != bilinear %v", pos, a, b)
			}
		}
	}
}

func TestSampleMode(t *testing.T) {
	pm := rowPixmap(black, tan)
	tests := []struct {
		mode SampleMode
		name string
		want Sampler
	}{
		{SampleBilinear, "Bilinear", bilinearSampler{pm}},
		{SampleNearest, "Nearest", nearestSampler{pm}},
		{SampleHorizontal, "Horizontal", horizontalSampler{pm}},
		{SampleVertical, "Vertical", verticalSampler{pm}},
		{SampleMode(42), "Unknown", bilinearSampler{pm}},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := NewSampler(pm, tt.mode); got != tt.want {
			t.Errorf("NewSampler(%v) = %T", tt.mode, got)
		}
	}
}

func BenchmarkBilinearSampler(b *testing.B) {
	pm := NewPixmap(64, 64)
	pm.Fill(tan)
	s := NewBilinearSampler(pm)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Sample(10.3+float64(i%40), 20.7)
	}
}
