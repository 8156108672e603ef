package game

import "testing"

func TestPoints(t *testing.T) {
	tests := []struct {
		light int
		want  int
	}{
		{0, 100},
		{10, 67},
		{30, 30},
		{50, 14},
		{100, 2},
		{-20, 100},
		{250, 2},
	}
	for _, tt := range tests {
		if got := Points(tt.light); got != tt.want {
			t.Errorf("Points(%d) = %d, want %d", tt.light, got, tt.want)
		}
	}
}

func TestPointsNonIncreasing(t *testing.T) {
	prev := Points(0)
	for l := 1; l <= MaxLight; l++ {
		p := Points(l)
		if p > prev {
			t.Fatalf("Points(%d) = %d exceeds Points(%d) = %d", l, p, l-1, prev)
		}
		if p < MinPoints || p > MaxPoints {
			t.Fatalf("Points(%d) = %d out of range", l, p)
		}
		prev = p
	}
}

func TestMaskOpacityAndBrightness(t *testing.T) {
	if got := MaskOpacity(0); got != 1 {
		t.Errorf("MaskOpacity(0) = %v, want 1", got)
	}
	if got := MaskOpacity(100); got != 0 {
		t.Errorf("MaskOpacity(100) = %v, want 0", got)
	}
	if got := MaskOpacity(25); got != 0.75 {
		t.Errorf("MaskOpacity(25) = %v, want 0.75", got)
	}
	if got := Brightness(100); got != 0.5 {
		t.Errorf("Brightness(100) = %v, want 0.5", got)
	}
	if got := Brightness(-5); got != 0 {
		t.Errorf("Brightness(-5) = %v, want 0", got)
	}
}
