package anim

import (
	"math"

	"github.com/gogpu/gg"
)

// Easing maps linear time in [0, 1] to progress in [0, 1].
type Easing func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return clamp01(t) }

// FadeIn is the default marker fade: fast start, long settle.
var FadeIn = CubicBezier(0.5, 1, 0.89, 1)

// CubicBezier returns the CSS-style timing function with control points
// (x1, y1) and (x2, y2) and fixed end points (0, 0) and (1, 1).
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = clamp01(x1)
	x2 = clamp01(x2)

	// Power basis of B(s) = 3(1-s)²s·p1 + 3(1-s)s²·p2 + s³.
	ax := 1 + 3*x1 - 3*x2
	bx := 3*x2 - 6*x1
	cx := 3 * x1
	ay := 1 + 3*y1 - 3*y2
	by := 3*y2 - 6*y1
	cy := 3 * y1

	bezierX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	bezierY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}
		s, ok := solveUnit(ax, bx, cx, -t)
		if !ok {
			s = bisect(bezierX, t)
		}
		return bezierY(s)
	}
}

// solveUnit returns a root of a·s³ + b·s² + c·s + d in [0, 1].
// x(s) is monotonic for control points in [0, 1], so there is at most one.
func solveUnit(a, b, c, d float64) (float64, bool) {
	roots := gg.SolveCubicInUnitInterval(a, b, c, d)
	if len(roots) == 0 {
		return 0, false
	}
	return clamp01(roots[0]), true
}

// bisect finds s with f(s) = t for increasing f on [0, 1].
func bisect(f func(float64) float64, t float64) float64 {
	lo, hi := 0.0, 1.0
	for range 64 {
		mid := (lo + hi) / 2
		if f(mid) < t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(math.Max(v, 0), 1)
}
