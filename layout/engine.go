package layout

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/gogpu/markers"
)

// TextBounds is the integer ink box of a string relative to its baseline
// origin. Top is negative for glyphs rising above the baseline.
type TextBounds struct {
	Left, Top, Right, Bottom int
}

// Width returns Right - Left.
func (b TextBounds) Width() float64 { return float64(b.Right - b.Left) }

// Height returns Bottom - Top.
func (b TextBounds) Height() float64 { return float64(b.Bottom - b.Top) }

// TextMeasurer measures the ink bounds of text at a pixel size.
type TextMeasurer interface {
	Bounds(s string, sizePx float64) TextBounds
}

// IconSource rasterizes icon markup at an exact pixel size.
// It returns nil when the markup cannot be rendered.
type IconSource interface {
	Icon(src string, w, h int, tint color.NRGBA) *gg.Pixmap
}

// Option configures an Engine.
type Option func(*Engine)

// WithDensity sets the display density used to convert dp to pixels.
// Values <= 0 are ignored.
func WithDensity(density float64) Option {
	return func(e *Engine) {
		if density > 0 {
			e.density = density
		}
	}
}

// WithIconSource sets the icon rasterizer. Without one, icons are omitted.
func WithIconSource(src IconSource) Option {
	return func(e *Engine) {
		e.icons = src
	}
}

// WithMetrics replaces the dp constants.
func WithMetrics(m Metrics) Option {
	return func(e *Engine) {
		e.dp = m
	}
}

// Engine computes marker geometry. It is immutable after construction and
// safe for concurrent use if its measurer and icon source are.
type Engine struct {
	density  float64
	dp       Metrics
	px       Metrics
	measurer TextMeasurer
	icons    IconSource
}

// NewEngine creates an engine measuring text with m.
func NewEngine(m TextMeasurer, opts ...Option) *Engine {
	e := &Engine{
		density:  1,
		dp:       DefaultMetrics(),
		measurer: m,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.px = e.dp.Scale(e.density)
	return e
}

// Density returns the configured display density.
func (e *Engine) Density() float64 { return e.density }

// Metrics returns the constants converted to pixels.
func (e *Engine) Metrics() Metrics { return e.px }

// IconSize returns the pixel size icons are rasterized at.
func (e *Engine) IconSize() int { return int(math.Round(e.px.IconSize)) }

// Compute derives the geometry of d. The same descriptor always yields the
// same geometry.
func (e *Engine) Compute(d markers.Descriptor) Geometry {
	m := e.px
	pal := ResolvePalette(d)

	text := d.Label
	counterText := d.Counter
	hasPointer := d.HasPointer
	hasCounter := d.HasCounter()
	hasIcon := d.HasIcon()
	if d.IsMini() {
		text = ""
		counterText = ""
		hasPointer = false
		hasCounter = false
		hasIcon = false
	}

	elevation := 0.0
	if d.HasElevation {
		elevation = m.Elevation
	}
	totalStroke := m.Stroke + elevation

	tb := e.measure(text, m.TextSize)
	var cb TextBounds
	if hasCounter {
		cb = e.measure(counterText, m.TextSize)
	}

	var iconPixmap *gg.Pixmap
	if hasIcon && e.icons != nil {
		sz := e.IconSize()
		iconPixmap = e.icons.Icon(d.Icon, sz, sz, pal.Icon)
	}

	markerH := tb.Height() + 2*m.PaddingVertical + 2*m.Stroke
	bubbleH := markerH - m.Stroke
	counterBubbleH := bubbleH - 2*m.CounterPadding

	counterW := 0.0
	if hasCounter {
		counterW = math.Max(cb.Width()+2*m.CounterPadding, counterBubbleH)
	}
	iconW := 0.0
	if iconPixmap != nil {
		iconW = m.IconCircle + m.IconRightPadding
	}
	pointerSize := 0.0
	if hasPointer {
		pointerSize = m.PointerHeight
	}

	markerW := tb.Width() + counterW + 2*m.PaddingHorizontal + 2*m.Stroke + iconW
	markerW = math.Max(markerW, m.MinWidth)

	switch d.Size {
	case markers.SizeMini:
		markerH = 2*m.MiniRadius + 2*m.Stroke
		markerW = m.MiniWidth + 2*m.Stroke
		bubbleH = markerH - m.Stroke
	case markers.SizeMiniDot:
		markerH = 2*m.MiniRadius + 2*m.Stroke
		markerW = 2*m.MiniRadius + 2*m.Stroke
		bubbleH = markerH - m.Stroke
	}

	canvasW := markerW + elevation
	canvasH := markerH + elevation + pointerSize
	canvas := Rect{X1: canvasW, Y1: canvasH}
	clamp := func(r Rect) Rect { return clampRect(r, canvas) }

	bubble := RectXYWH(totalStroke/2, totalStroke/2, markerW-m.Stroke, bubbleH)

	g := Geometry{Canvas: canvas}
	g.Bubble = Shape{
		Rect:        clamp(bubble),
		Fill:        pal.Marker,
		Stroke:      pal.Stroke,
		StrokeWidth: m.Stroke,
		Radius:      bubbleH / 2,
		Alpha:       1,
	}
	g.Shadow = Shape{
		Rect:   clamp(RectXYWH(bubble.X0, bubble.Y0+m.ShadowOffset, bubble.Width(), bubble.Height())),
		Fill:   ColorBlack,
		Radius: bubbleH / 2,
		Alpha:  shadowAlpha(d),
	}

	textAreaH := canvasH - pointerSize

	if hasCounter {
		cx := canvasW - totalStroke - counterW - m.CounterPadding
		cy := m.CounterPadding + totalStroke/2
		g.Counter = &Shape{
			Rect:        clamp(RectXYWH(cx, cy, counterW, counterBubbleH)),
			Fill:        pal.CounterBubble,
			Stroke:      pal.CounterStroke,
			StrokeWidth: m.Stroke,
			Radius:      counterBubbleH / 2,
			Alpha:       1,
		}
		dx := cx + counterW/2 - cb.Width()/2
		dy := textY(textAreaH, cb)
		g.CounterText = textRun(counterText, dx, dy, cb, m.TextSize, pal.CounterText, canvas)
	} else {
		g.CounterText = TextRun{Size: m.TextSize, Color: pal.CounterText}
	}

	dx := textX(canvasW, tb) + iconW/2 - counterW/2
	dy := textY(textAreaH, tb)
	g.Label = textRun(text, dx, dy, tb, m.TextSize, pal.Text, canvas)

	if iconPixmap != nil {
		middleY := bubbleH/2 + totalStroke/2
		ix := m.IconLeftPadding + totalStroke + (m.IconCircle-m.IconSize)/2
		iy := bubbleH/2 - m.IconSize/2 + totalStroke/2
		g.Icon = Sprite{
			Rect:   clamp(RectXYWH(ix, iy, m.IconSize, m.IconSize)),
			Tint:   pal.Icon,
			Alpha:  1,
			Pixmap: iconPixmap,
		}
		g.IconCircle = Shape{
			Rect:   clamp(RectXYWH(m.IconLeftPadding+totalStroke, middleY-m.IconCircle/2, m.IconCircle, m.IconCircle)),
			Fill:   pal.IconCircle,
			Radius: m.IconCircle / 2,
			Alpha:  1,
		}
	} else {
		g.Icon = Sprite{Tint: pal.Icon}
		g.IconCircle = Shape{Fill: pal.IconCircle}
	}

	if hasPointer {
		px := canvasW/2 - m.PointerWidth
		py := canvasH - pointerSize - totalStroke + elevation/2
		g.Pointer = Polygon{
			Present: true,
			Points: [3]gg.Point{
				clampPoint(gg.Pt(px, py), canvas),
				clampPoint(gg.Pt(px+2*m.PointerWidth, py), canvas),
				clampPoint(gg.Pt(px+m.PointerWidth, py+pointerSize), canvas),
			},
			Fill:        pal.Marker,
			Stroke:      pal.Stroke,
			StrokeWidth: m.Stroke,
		}
	}

	return g
}

func (e *Engine) measure(s string, size float64) TextBounds {
	if s == "" || e.measurer == nil {
		return TextBounds{}
	}
	return e.measurer.Bounds(s, size)
}

// shadowAlpha is 0 without elevation, 0.2 for mini sizes and 0.15 otherwise.
func shadowAlpha(d markers.Descriptor) float64 {
	switch {
	case !d.HasElevation:
		return 0
	case d.IsMini():
		return 0.2
	default:
		return 0.15
	}
}

// textY returns the baseline that vertically centers b in a box of height h.
func textY(h float64, b TextBounds) float64 {
	return h/2 + b.Height()/2 - float64(b.Bottom)
}

// textX returns the origin that horizontally centers b in a box of width w.
func textX(w float64, b TextBounds) float64 {
	return w/2 - b.Width()/2 - float64(b.Left)
}

func textRun(s string, x, y float64, b TextBounds, size float64, c color.NRGBA, canvas Rect) TextRun {
	ink := Rect{
		X0: x + float64(b.Left),
		Y0: y + float64(b.Top),
		X1: x + float64(b.Right),
		Y1: y + float64(b.Bottom),
	}
	return TextRun{
		Text:   s,
		X:      x,
		Y:      y,
		Bounds: clampRect(ink, canvas),
		Size:   size,
		Color:  c,
	}
}

func clampRect(r, c Rect) Rect {
	return Rect{
		X0: clampF(r.X0, c.X0, c.X1),
		Y0: clampF(r.Y0, c.Y0, c.Y1),
		X1: clampF(r.X1, c.X0, c.X1),
		Y1: clampF(r.Y1, c.Y0, c.Y1),
	}
}

func clampPoint(p gg.Point, c Rect) gg.Point {
	return gg.Pt(clampF(p.X, c.X0, c.X1), clampF(p.Y, c.Y0, c.Y1))
}

func clampF(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// ceilPx rounds a canvas extent up to whole pixels, ignoring float noise
// just above an integer.
func ceilPx(v float64) int {
	n := int(math.Ceil(v - epsilon))
	if n < 1 {
		return 1
	}
	return n
}
