package layout

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"
)

// epsilon absorbs floating point noise in containment checks.
const epsilon = 1e-6

// Rect is an axis-aligned rectangle in physical pixels.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// RectXYWH returns the rectangle at (x, y) with size w×h.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// Contains reports whether o lies inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0-epsilon && o.Y0 >= r.Y0-epsilon &&
		o.X1 <= r.X1+epsilon && o.Y1 <= r.Y1+epsilon
}

// Center returns the midpoint.
func (r Rect) Center() (x, y float64) {
	return (r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2
}

// Shape is a filled, optionally stroked, rounded rectangle or circle.
type Shape struct {
	Rect        Rect
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	Radius      float64
	Alpha       float64
}

// TextRun is a positioned string. X, Y is the baseline origin; Bounds is
// the ink box of the measured text in canvas coordinates.
type TextRun struct {
	Text   string
	X, Y   float64
	Bounds Rect
	Size   float64
	Color  color.NRGBA
}

// Sprite is the icon slot. Pixmap is nil and Alpha 0 when the icon is
// absent or failed to rasterize.
type Sprite struct {
	Rect   Rect
	Tint   color.NRGBA
	Alpha  float64
	Pixmap *gg.Pixmap
}

// Polygon is the pointer tail under the bubble.
type Polygon struct {
	Present     bool
	Points      [3]gg.Point
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
}

// Bounds returns the bounding box of the polygon.
func (p Polygon) Bounds() Rect {
	r := Rect{X0: p.Points[0].X, Y0: p.Points[0].Y, X1: p.Points[0].X, Y1: p.Points[0].Y}
	for _, pt := range p.Points[1:] {
		r.X0 = min(r.X0, pt.X)
		r.Y0 = min(r.Y0, pt.Y)
		r.X1 = max(r.X1, pt.X)
		r.Y1 = max(r.Y1, pt.Y)
	}
	return r
}

// Geometry is the fully resolved layout of a marker.
// All coordinates are physical pixels relative to the canvas origin.
type Geometry struct {
	Canvas      Rect
	Bubble      Shape
	Shadow      Shape
	Counter     *Shape
	Label       TextRun
	CounterText TextRun
	Icon        Sprite
	IconCircle  Shape
	Pointer     Polygon
}

// Size returns the integer bitmap size needed for the canvas.
func (g Geometry) Size() (w, h int) {
	return ceilPx(g.Canvas.Width()), ceilPx(g.Canvas.Height())
}

// Validate checks that every primitive lies within the canvas and that no
// coordinate is negative.
func (g Geometry) Validate() error {
	if g.Canvas.X0 != 0 || g.Canvas.Y0 != 0 || g.Canvas.Empty() {
		return fmt.Errorf("layout: invalid canvas %+v", g.Canvas)
	}
	check := func(name string, r Rect) error {
		if r.X0 < -epsilon || r.Y0 < -epsilon {
			return fmt.Errorf("layout: %s has negative origin %+v", name, r)
		}
		if !g.Canvas.Contains(r) {
			return fmt.Errorf("layout: %s %+v outside canvas %+v", name, r, g.Canvas)
		}
		return nil
	}
	rects := []struct {
		name string
		r    Rect
	}{
		{"bubble", g.Bubble.Rect},
		{"shadow", g.Shadow.Rect},
		{"label", g.Label.Bounds},
		{"counter text", g.CounterText.Bounds},
		{"icon", g.Icon.Rect},
		{"icon circle", g.IconCircle.Rect},
	}
	if g.Counter != nil {
		rects = append(rects, struct {
			name string
			r    Rect
		}{"counter bubble", g.Counter.Rect})
	}
	if g.Pointer.Present {
		rects = append(rects, struct {
			name string
			r    Rect
		}{"pointer", g.Pointer.Bounds()})
	}
	for _, x := range rects {
		if err := check(x.name, x.r); err != nil {
			return err
		}
	}
	return nil
}
