package anim

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/markers/cache"
)

// Crossfade returns n frames blending from into to. Frame 0 is from and
// frame n-1 is to, both exact copies; frames in between draw from at
// decreasing and to at increasing opacity. Bitmaps of different sizes are
// anchored at their bottom center on a canvas spanning both, so the pin
// point stays fixed. A nil bitmap stands for an empty one.
func Crossfade(from, to *gg.Pixmap, n int) []*gg.Pixmap {
	n = max(n, 1)
	frames := make([]*gg.Pixmap, n)
	if n == 1 {
		frames[0] = cloneOrEmpty(to)
		return frames
	}

	w := max(width(from), width(to), 1)
	h := max(height(from), height(to), 1)
	var fromBuf, toBuf *gg.ImageBuf
	if from != nil {
		fromBuf = gg.ImageBufFromImage(from.ToImage())
	}
	if to != nil {
		toBuf = gg.ImageBufFromImage(to.ToImage())
	}

	for i := range n {
		alpha := float64(i) / float64(n-1)
		switch i {
		case 0:
			frames[i] = anchored(from, w, h)
			continue
		case n - 1:
			frames[i] = anchored(to, w, h)
			continue
		}
		dc := gg.NewContext(w, h)
		drawAnchored(dc, fromBuf, from, w, h, 1-alpha)
		drawAnchored(dc, toBuf, to, w, h, alpha)
		frames[i] = dc.ResizeTarget()
		_ = dc.Close()
	}
	return frames
}

// anchored returns a copy of pm placed bottom center on a w×h canvas.
func anchored(pm *gg.Pixmap, w, h int) *gg.Pixmap {
	if pm != nil && pm.Width() == w && pm.Height() == h {
		return cache.Clone(pm)
	}
	out := gg.NewPixmap(w, h)
	if pm == nil {
		return out
	}
	ox, oy := (w-pm.Width())/2, h-pm.Height()
	src, dst := pm.Data(), out.Data()
	row := pm.Width() * 4
	for y := range pm.Height() {
		d := ((oy+y)*w + ox) * 4
		copy(dst[d:d+row], src[y*row:(y+1)*row])
	}
	return out
}

func drawAnchored(dc *gg.Context, buf *gg.ImageBuf, pm *gg.Pixmap, w, h int, opacity float64) {
	// gg treats a zero opacity as fully opaque.
	if buf == nil || opacity <= 0 {
		return
	}
	dc.DrawImageEx(buf, gg.DrawImageOptions{
		X:       float64((w - pm.Width()) / 2),
		Y:       float64(h - pm.Height()),
		Opacity: opacity,
	})
}

func cloneOrEmpty(pm *gg.Pixmap) *gg.Pixmap {
	if pm == nil {
		return gg.NewPixmap(1, 1)
	}
	return cache.Clone(pm)
}

func width(pm *gg.Pixmap) int {
	if pm == nil {
		return 0
	}
	return pm.Width()
}

func height(pm *gg.Pixmap) int {
	if pm == nil {
		return 0
	}
	return pm.Height()
}
