package raster

import (
	"fmt"

	"github.com/gogpu/gg"
	"golang.org/x/sync/singleflight"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/cache"
	"github.com/gogpu/markers/icon"
	"github.com/gogpu/markers/layout"
)

// Option configures a Rasterizer.
type Option func(*options)

type options struct {
	density      float64
	screenHeight int
	newCanvas    CanvasFactory
}

// WithDensity sets the display density used for layout. Default 1.
func WithDensity(density float64) Option {
	return func(o *options) {
		if density > 0 {
			o.density = density
		}
	}
}

// WithScreenHeight sets the physical screen height that badge markers
// are sized from. Default 2467, giving the base badge size.
func WithScreenHeight(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.screenHeight = px
		}
	}
}

// WithCanvas replaces the gg canvas, for example with a recording one.
func WithCanvas(f CanvasFactory) Option {
	return func(o *options) {
		if f != nil {
			o.newCanvas = f
		}
	}
}

// Rasterizer draws marker geometry into pixmaps and memoizes them in a
// shared bitmap cache. Returned pixmaps are always private copies.
// Rasterizer is safe for concurrent use.
type Rasterizer struct {
	cache     *cache.BitmapCache
	fonts     *Fonts
	icons     *icon.Renderer
	engine    *layout.Engine
	newCanvas CanvasFactory
	badgeSize int
	group     singleflight.Group
}

// New creates a rasterizer. A nil cache disables memoization.
func New(c *cache.BitmapCache, fonts *Fonts, opts ...Option) *Rasterizer {
	o := options{
		density:      1,
		screenHeight: baseScreenHeight,
		newCanvas:    NewCanvas,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if c == nil {
		c = cache.New(0)
	}

	icons := icon.NewRenderer(c)
	var measurer layout.TextMeasurer
	if fonts != nil {
		measurer = fonts
	}
	return &Rasterizer{
		cache:     c,
		fonts:     fonts,
		icons:     icons,
		engine:    layout.NewEngine(measurer, layout.WithDensity(o.density), layout.WithIconSource(icons)),
		newCanvas: o.newCanvas,
		badgeSize: badgeSize(o.screenHeight),
	}
}

// Engine returns the layout engine used by Render.
func (r *Rasterizer) Engine() *layout.Engine { return r.engine }

// Cache returns the bitmap cache.
func (r *Rasterizer) Cache() *cache.BitmapCache { return r.cache }

// Key returns the cache key Render uses for d.
func (r *Rasterizer) Key(d markers.Descriptor) string {
	return fmt.Sprintf("marker:%g:%s", r.engine.Density(), d.Normalize().VisualKey())
}

// Render returns the bitmap of d, from the cache when possible.
func (r *Rasterizer) Render(d markers.Descriptor) *gg.Pixmap {
	d = d.Normalize()
	key := r.Key(d)
	return r.memoize(key, func() *gg.Pixmap {
		return r.RenderLayout(r.engine.Compute(d))
	})
}

// memoize returns a copy of the cached pixmap for key, drawing it with
// draw on a miss. Concurrent misses for one key draw once.
func (r *Rasterizer) memoize(key string, draw func() *gg.Pixmap) *gg.Pixmap {
	if pm, ok := r.cache.Get(key); ok {
		return pm
	}
	v, _, _ := r.group.Do(key, func() (any, error) {
		pm := draw()
		r.cache.Put(key, pm)
		return pm, nil
	})
	return cache.Clone(v.(*gg.Pixmap))
}

// RenderLayout draws resolved geometry without consulting the cache, back
// to front: shadow, bubble, counter bubble, icon circle, icon, pointer,
// label, counter text. Drawing errors are logged and the remaining
// primitives still drawn.
func (r *Rasterizer) RenderLayout(g layout.Geometry) *gg.Pixmap {
	w, h := g.Size()
	c := r.newCanvas(w, h, r.fonts)

	check := logDraw

	if g.Shadow.Alpha > 0 {
		check("shadow", c.DrawRoundedRect(g.Shadow.Rect, g.Shadow.Radius, shapePaint(g.Shadow)))
	}
	check("bubble", c.DrawRoundedRect(g.Bubble.Rect, g.Bubble.Radius, shapePaint(g.Bubble)))
	if g.Counter != nil {
		check("counter", c.DrawRoundedRect(g.Counter.Rect, g.Counter.Radius, shapePaint(*g.Counter)))
	}
	if g.IconCircle.Alpha > 0 {
		cx, cy := g.IconCircle.Rect.Center()
		check("icon circle", c.DrawCircle(cx, cy, g.IconCircle.Rect.Width()/2, shapePaint(g.IconCircle)))
	}
	if g.Icon.Pixmap != nil {
		check("icon", c.DrawImage(g.Icon.Pixmap, g.Icon.Rect, g.Icon.Alpha))
	}
	if g.Pointer.Present {
		p := g.Pointer
		check("pointer", c.DrawPath(p.Points[:], true, Paint{Fill: p.Fill, Alpha: 1}))
		// Outline only the slanted edges so the tail merges into the bubble.
		edges := []gg.Point{p.Points[0], p.Points[2], p.Points[1]}
		check("pointer", c.DrawPath(edges, false, Paint{Stroke: p.Stroke, StrokeWidth: p.StrokeWidth, Alpha: 1}))
	}
	check("label", c.DrawText(g.Label.Text, g.Label.X, g.Label.Y, g.Label.Size, g.Label.Color))
	check("counter text", c.DrawText(g.CounterText.Text, g.CounterText.X, g.CounterText.Y, g.CounterText.Size, g.CounterText.Color))

	return c.Pixmap()
}

// logDraw records a failed primitive; the marker is still produced.
func logDraw(what string, err error) {
	if err != nil {
		markers.Logger().Debug("marker primitive failed", "primitive", what, "error", err)
	}
}

func shapePaint(s layout.Shape) Paint {
	return Paint{Fill: s.Fill, Stroke: s.Stroke, StrokeWidth: s.StrokeWidth, Alpha: s.Alpha}
}
