package raster

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/markers/layout"
)

// Kind names a badge marker style.
type Kind string

// Badge kinds.
const (
	// KindCount is a round cluster badge with a centered count.
	KindCount Kind = "count"
	// KindPrice is a rounded bubble with a tail.
	KindPrice Kind = "price"
	// KindRounded is a pill.
	KindRounded Kind = "rounded"
)

// ErrUnknownKind is returned by BuildMarker for unsupported kinds.
var ErrUnknownKind = errors.New("raster: unknown marker kind")

// Badge sizing relative to the physical screen height.
const (
	baseScreenHeight = 2467
	baseBadgeSize    = 167
	maxBadgeSize     = 172
	minBadgeSize     = 67

	badgeShadow = 3
)

var (
	badgeShadowColor = color.NRGBA{A: 15}
	badgeFill        = layout.ColorWhite
)

// badgeSize scales the base badge size with the screen height.
func badgeSize(screenHeight int) int {
	n := int(float64(baseBadgeSize) * float64(screenHeight) / float64(baseScreenHeight))
	if n > maxBadgeSize {
		return maxBadgeSize
	}
	return max(n, minBadgeSize)
}

// BadgeSize returns the edge length of count badges in pixels.
func (r *Rasterizer) BadgeSize() int { return r.badgeSize }

// BuildMarker returns a badge of the given kind showing text.
// Badges are cached under their kind and text.
func (r *Rasterizer) BuildMarker(kind Kind, text string) (*gg.Pixmap, error) {
	var draw func(string) *gg.Pixmap
	switch kind {
	case KindCount:
		draw = r.countBadge
	case KindPrice:
		draw = r.priceBadge
	case KindRounded:
		draw = r.roundedBadge
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	key := fmt.Sprintf("badge:%s:%d:%s", kind, r.badgeSize, text)
	return r.memoize(key, func() *gg.Pixmap { return draw(text) }), nil
}

func (r *Rasterizer) measure(s string, size float64) layout.TextBounds {
	if r.fonts == nil {
		return layout.TextBounds{}
	}
	return r.fonts.Bounds(s, size)
}

// centeredText returns the baseline origin centering b in a w×h box.
func centeredText(w, h float64, b layout.TextBounds) (x, y float64) {
	return w/2 - b.Width()/2 - float64(b.Left), h/2 + b.Height()/2 - float64(b.Bottom)
}

func shadowRing() Paint {
	return Paint{Stroke: badgeShadowColor, StrokeWidth: badgeShadow, Alpha: 1}
}

func fillOnly(c color.NRGBA) Paint {
	return Paint{Fill: c, Alpha: 1}
}

func clampRadius(r layout.Rect, radius float64) float64 {
	return math.Min(radius, math.Min(r.Width(), r.Height())/2)
}

func (r *Rasterizer) countBadge(text string) *gg.Pixmap {
	size := float64(r.badgeSize)
	textSize := size / 3
	c := r.newCanvas(r.badgeSize, r.badgeSize, r.fonts)

	radius := size / 2.2
	logDraw("count shadow", c.DrawCircle(size/2, size/2, radius, shadowRing()))
	logDraw("count bubble", c.DrawCircle(size/2, size/2, radius-badgeShadow, fillOnly(badgeFill)))

	x, y := centeredText(size, size, r.measure(text, textSize))
	logDraw("count text", c.DrawText(text, x, y, textSize, layout.ColorBlack))
	return c.Pixmap()
}

func (r *Rasterizer) priceBadge(text string) *gg.Pixmap {
	padding := r.badgeSize / 3
	tail := float64(r.badgeSize / 6)
	textSize := float64(r.badgeSize) / 3.5
	b := r.measure(text, textSize)

	width := int(b.Width()) + padding
	height := int(b.Height()) + padding
	canvasW := width + badgeShadow
	canvasH := height + badgeShadow + int(tail)
	c := r.newCanvas(canvasW, canvasH, r.fonts)

	shadow := layout.Rect{X1: float64(width + badgeShadow), Y1: float64(height + badgeShadow)}
	bubble := layout.Rect{X0: badgeShadow, Y0: badgeShadow, X1: float64(width), Y1: float64(height)}
	logDraw("price shadow", c.DrawRoundedRect(shadow, clampRadius(shadow, 20), shadowRing()))
	logDraw("price bubble", c.DrawRoundedRect(bubble, clampRadius(bubble, 20), fillOnly(badgeFill)))

	mid := float64(canvasW) / 2
	top := float64(canvasH) - tail - badgeShadow
	logDraw("price tail", c.DrawPath([]gg.Point{
		gg.Pt(mid-tail, top),
		gg.Pt(mid+tail, top),
		gg.Pt(mid, top+tail),
	}, true, fillOnly(badgeFill)))

	x, y := centeredText(float64(width), float64(height), b)
	logDraw("price text", c.DrawText(text, x, y, textSize, layout.ColorBlack))
	return c.Pixmap()
}

func (r *Rasterizer) roundedBadge(text string) *gg.Pixmap {
	padding := r.badgeSize / 3
	textSize := float64(r.badgeSize) / 3.5
	b := r.measure(text, textSize)

	minWidth := max(int(b.Width()), r.badgeSize/2)
	w := minWidth + padding + badgeShadow
	h := int(b.Height()) + padding + badgeShadow
	c := r.newCanvas(w, h, r.fonts)

	shadow := layout.Rect{X1: float64(w), Y1: float64(h)}
	shape := layout.Rect{X0: badgeShadow, Y0: badgeShadow, X1: float64(w - badgeShadow), Y1: float64(h - badgeShadow)}
	logDraw("rounded shadow", c.DrawRoundedRect(shadow, clampRadius(shadow, 40), shadowRing()))
	logDraw("rounded shape", c.DrawRoundedRect(shape, clampRadius(shape, 40), fillOnly(badgeFill)))

	x, y := centeredText(float64(w), float64(h), b)
	logDraw("rounded text", c.DrawText(text, x, y, textSize, layout.ColorBlack))
	return c.Pixmap()
}
