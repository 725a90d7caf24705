package color

import "testing"

func TestGradientEndpoints(t *testing.T) {
	g := NewGradient(Blue, Red)
	if got := g.Sample(0); got != Blue {
		t.Errorf("Sample(0) = %v, want %v", got, Blue)
	}
	if got := g.Sample(1); got != Red {
		t.Errorf("Sample(1) = %v, want %v", got, Red)
	}
}

func TestGradientMidpoint(t *testing.T) {
	g := NewGradient(Black, White)
	got := g.Sample(0.5)
	if got.R != 0.5 || got.G != 0.5 || got.B != 0.5 {
		t.Errorf("Sample(0.5) = %v, want mid grey", got)
	}
}

func TestGradientClamp(t *testing.T) {
	g := NewGradient(Blue, Red)
	if got := g.Sample(-1); got != Blue {
		t.Errorf("Sample(-1) = %v, want clamp to first stop", got)
	}
	if got := g.Sample(2); got != Red {
		t.Errorf("Sample(2) = %v, want clamp to last stop", got)
	}
}

func TestGradientExplicitStops(t *testing.T) {
	g := NewGradientStops([]Color{Black, White}, []float32{0.5, 1})
	if got := g.Sample(0.25); got != Black {
		t.Errorf("Sample before first stop = %v, want first color", got)
	}
	got := g.Sample(0.75)
	if got.R != 0.5 {
		t.Errorf("Sample(0.75) = %v, want mid grey", got)
	}
}

func TestGradientSingleColor(t *testing.T) {
	g := NewGradient(Green)
	for _, tt := range []float32{0, 0.5, 1} {
		if got := g.Sample(tt); got != Green {
			t.Errorf("Sample(%v) = %v, want %v", tt, got, Green)
		}
	}
}

func TestGradientByName(t *testing.T) {
	g, ok := GradientByName("rainbow")
	if !ok {
		t.Fatal("rainbow gradient missing")
	}
	if g.StopCount() < 2 {
		t.Errorf("rainbow has %d stops, want >= 2", g.StopCount())
	}
	if _, ok := GradientByName("nope"); ok {
		t.Error("unknown gradient name should not resolve")
	}
}
