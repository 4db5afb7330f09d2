package raster

import (
	"errors"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/gogpu/markers/layout"
)

// Paint describes how a shape is filled and outlined. A zero Fill alpha
// skips the fill and a zero StrokeWidth skips the outline. Alpha scales
// both.
type Paint struct {
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	Alpha       float64
}

// Canvas is the raster primitives collaborator: a mutable pixel buffer
// that shapes, text and images are drawn onto.
type Canvas interface {
	DrawCircle(cx, cy, r float64, p Paint) error
	DrawRoundedRect(r layout.Rect, radius float64, p Paint) error
	// DrawPath fills the polygon through pts when closed is true, then
	// strokes the polyline.
	DrawPath(pts []gg.Point, closed bool, p Paint) error
	// DrawText draws s with its baseline origin at (x, y).
	DrawText(s string, x, y, size float64, c color.NRGBA) error
	// DrawImage scales pm into dst.
	DrawImage(pm *gg.Pixmap, dst layout.Rect, alpha float64) error
	// Pixmap returns the drawn pixels. The canvas must not be used after.
	Pixmap() *gg.Pixmap
}

// CanvasFactory creates a blank w×h canvas.
type CanvasFactory func(w, h int, fonts *Fonts) Canvas

// ggCanvas draws with a gg software context.
type ggCanvas struct {
	dc    *gg.Context
	fonts *Fonts
}

// NewCanvas returns a transparent gg-backed canvas.
func NewCanvas(w, h int, fonts *Fonts) Canvas {
	return &ggCanvas{dc: gg.NewContext(w, h), fonts: fonts}
}

func (c *ggCanvas) setColor(col color.NRGBA, alpha float64) {
	c.dc.SetRGBA(
		float64(col.R)/255,
		float64(col.G)/255,
		float64(col.B)/255,
		float64(col.A)/255*alpha,
	)
}

// paint fills then strokes the current path according to p.
func (c *ggCanvas) paint(p Paint, fill bool) error {
	var errs []error
	doFill := fill && p.Fill.A > 0 && p.Alpha > 0
	doStroke := p.StrokeWidth > 0 && p.Stroke.A > 0 && p.Alpha > 0
	if doFill {
		c.setColor(p.Fill, p.Alpha)
		if doStroke {
			errs = append(errs, c.dc.FillPreserve())
		} else {
			errs = append(errs, c.dc.Fill())
		}
	}
	if doStroke {
		c.setColor(p.Stroke, p.Alpha)
		c.dc.SetLineWidth(p.StrokeWidth)
		errs = append(errs, c.dc.Stroke())
	}
	c.dc.ClearPath()
	return errors.Join(errs...)
}

func (c *ggCanvas) DrawCircle(cx, cy, r float64, p Paint) error {
	c.dc.DrawCircle(cx, cy, r)
	return c.paint(p, true)
}

func (c *ggCanvas) DrawRoundedRect(r layout.Rect, radius float64, p Paint) error {
	c.dc.DrawRoundedRectangle(r.X0, r.Y0, r.Width(), r.Height(), radius)
	return c.paint(p, true)
}

func (c *ggCanvas) DrawPath(pts []gg.Point, closed bool, p Paint) error {
	if len(pts) < 2 {
		return nil
	}
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		c.dc.LineTo(pt.X, pt.Y)
	}
	if closed {
		c.dc.ClosePath()
	}
	return c.paint(p, closed)
}

func (c *ggCanvas) DrawText(s string, x, y, size float64, col color.NRGBA) error {
	if s == "" || c.fonts == nil {
		return nil
	}
	c.dc.SetFont(c.fonts.Face(size))
	c.setColor(col, 1)
	c.dc.DrawString(s, x, y)
	return nil
}

func (c *ggCanvas) DrawImage(pm *gg.Pixmap, dst layout.Rect, alpha float64) error {
	// gg treats a zero opacity as fully opaque.
	if pm == nil || alpha <= 0 || dst.Empty() {
		return nil
	}
	c.dc.DrawImageEx(gg.ImageBufFromImage(pm.ToImage()), gg.DrawImageOptions{
		X:         dst.X0,
		Y:         dst.Y0,
		DstWidth:  dst.Width(),
		DstHeight: dst.Height(),
		Opacity:   alpha,
	})
	return nil
}

func (c *ggCanvas) Pixmap() *gg.Pixmap {
	_ = c.dc.FlushGPU()
	pm := c.dc.ResizeTarget()
	_ = c.dc.Close()
	return pm
}
