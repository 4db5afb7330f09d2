package anim

import (
	"math"
	"testing"
	"time"
)

func TestCubicBezierLinear(t *testing.T) {
	ease := CubicBezier(0, 0, 1, 1)
	for _, x := range []float64{0, 0.1, 0.25, 0.5, 0.75, 1} {
		if got := ease(x); math.Abs(got-x) > 1e-6 {
			t.Errorf("expected %v, got %v", x, got)
		}
	}
}

func TestFadeInShape(t *testing.T) {
	if FadeIn(0) != 0 || FadeIn(1) != 1 {
		t.Errorf("expected fixed end points, got %v / %v", FadeIn(0), FadeIn(1))
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := FadeIn(float64(i) / 100)
		if v < prev-1e-9 {
			t.Fatalf("expected monotonic easing at %d: %v < %v", i, v, prev)
		}
		prev = v
	}
	// Fast start: ahead of linear early on.
	if v := FadeIn(0.25); v <= 0.25 {
		t.Errorf("expected fast start, got %v at 0.25", v)
	}
	// Reference values of cubic-bezier(0.5, 1, 0.89, 1).
	for _, tt := range []struct{ x, want float64 }{
		{0.1, 0.189688},
		{0.25, 0.436271},
		{0.5, 0.748735},
		{0.75, 0.938847},
	} {
		if got := FadeIn(tt.x); math.Abs(got-tt.want) > 1e-4 {
			t.Errorf("expected %v at %v, got %v", tt.want, tt.x, got)
		}
	}
	if FadeIn(-1) != 0 || FadeIn(2) != 1 {
		t.Error("expected out of range input to clamp")
	}
}

func TestProgress(t *testing.T) {
	start := time.Unix(0, 0)
	clock := NewManualClock(start)
	clock.Advance(250 * time.Millisecond)

	if got := Progress(start, clock.Now(), time.Second, nil); got != 0.25 {
		t.Errorf("expected 0.25, got %v", got)
	}
	if got := Progress(start, clock.Now(), time.Second, Linear); got != 0.25 {
		t.Errorf("expected 0.25, got %v", got)
	}
	clock.Set(start.Add(2 * time.Second))
	if got := Progress(start, clock.Now(), time.Second, FadeIn); got != 1 {
		t.Errorf("expected completion, got %v", got)
	}
	if got := Progress(start, start, 0, FadeIn); got != 1 {
		t.Errorf("expected zero duration to be complete, got %v", got)
	}
	var _ Clock = SystemClock{}
}
