package controller

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/gogpu/gg"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gogpu/markers"
	"github.com/gogpu/markers/anim"
	"github.com/gogpu/markers/internal/telemetry"
	"github.com/gogpu/markers/surface"
)

// ErrRenderFailed is returned by AddMarker when no bitmap could be produced.
var ErrRenderFailed = errors.New("markers: render failed")

// Renderer produces marker bitmaps. *raster.Rasterizer implements it.
type Renderer interface {
	Render(d markers.Descriptor) *gg.Pixmap
}

// Controller keeps the host surface in sync with the markers applied to it.
//
// Controller is not safe for concurrent use.
type Controller struct {
	host     surface.Surface
	renderer Renderer
	opts     options

	entries map[string]*entry
	owners  map[surface.Handle]string
}

// entry is the state of one marker id.
type entry struct {
	desc    markers.Descriptor
	pos     surface.LatLng
	bitmap  *gg.Pixmap
	handles []surface.Handle
	active  int
	fade    *fade
}

// fade is a running cross-fade over the entry's handles.
type fade struct {
	session *anim.Session
	frames  []*gg.Pixmap
	start   time.Time
}

// New creates a controller drawing with r onto host.
func New(host surface.Surface, r Renderer, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{
		host:     host,
		renderer: r,
		opts:     o,
		entries:  make(map[string]*entry),
		owners:   make(map[surface.Handle]string),
	}
}

// SetAnimationEnabled toggles cross-fades for later AddMarker and
// UpdateMarker calls. Running fades are not affected.
func (c *Controller) SetAnimationEnabled(enabled bool) {
	c.opts.animate = enabled
}

// AnimationEnabled reports the current toggle.
func (c *Controller) AnimationEnabled() bool {
	return c.opts.animate
}

func (c *Controller) animated(d markers.Descriptor) bool {
	return c.opts.animate && d.IsAnimated
}

// AddMarker renders d and places it at pos under id. When animation is
// enabled and d is animated the marker fades in from nothing over a pool
// of handles; otherwise a single visible handle is created.
func (c *Controller) AddMarker(id string, d markers.Descriptor, pos surface.LatLng) ([]surface.Handle, error) {
	if _, ok := c.entries[id]; ok {
		return nil, fmt.Errorf("%w: %q", markers.ErrDuplicateMarker, id)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("add marker %q: %w", id, err)
	}
	d = d.Normalize()
	bmp := c.renderer.Render(d)
	if bmp == nil {
		return nil, fmt.Errorf("add marker %q: %w", id, ErrRenderFailed)
	}

	e := &entry{desc: d, pos: pos, bitmap: bmp}
	if !c.animated(d) {
		h, err := c.host.Create(bmp, pos, true, c.opts.zBase)
		if err != nil {
			return nil, fmt.Errorf("add marker %q: %w", id, err)
		}
		e.handles = []surface.Handle{h}
	} else {
		f := c.newFade(nil, bmp)
		for k := range f.session.PoolSize() {
			frame := f.frames[f.session.Frame(k)]
			h, err := c.host.Create(frame, pos, f.session.InitiallyVisible(k), f.session.Z(k))
			if err != nil {
				c.removeHandles(e.handles)
				return nil, fmt.Errorf("add marker %q: %w", id, err)
			}
			e.handles = append(e.handles, h)
		}
		e.fade = f
		telemetry.Inc(telemetry.Get().SessionsStarted)
	}

	c.entries[id] = e
	for _, h := range e.handles {
		c.owners[h] = id
	}
	markers.Logger().Info("marker added", "id", id, "handles", len(e.handles), "animated", e.fade != nil)
	return slices.Clone(e.handles), nil
}

// UpdateMarker applies d to the marker id. It returns false when id is
// unknown or d is invalid. A descriptor rendering the same as the current
// one changes nothing on the host. An animated update supersedes any fade
// still running for id.
func (c *Controller) UpdateMarker(id string, d markers.Descriptor) bool {
	e, ok := c.entries[id]
	if !ok {
		markers.Logger().Warn("update of unknown marker", "id", id)
		return false
	}
	if err := d.Validate(); err != nil {
		markers.Logger().Warn("invalid marker update", "id", id, "err", err)
		return false
	}
	d = d.Normalize()
	if d.VisualKey() == e.desc.VisualKey() {
		e.desc = d
		return true
	}
	bmp := c.renderer.Render(d)
	if bmp == nil {
		markers.Logger().Warn("marker render failed", "id", id)
		return false
	}

	from := c.shown(e)
	c.cancel(e)
	e.desc = d
	e.bitmap = bmp

	if c.animated(d) {
		c.startFade(id, e, from, bmp)
	} else {
		c.swap(id, e, bmp)
	}
	markers.Logger().Info("marker updated", "id", id, "animated", e.fade != nil)
	return true
}

// RemoveMarker removes every handle of id and forgets it, cancelling any
// running fade. It returns false when id is unknown.
func (c *Controller) RemoveMarker(id string) bool {
	e, ok := c.entries[id]
	if !ok {
		markers.Logger().Warn("remove of unknown marker", "id", id)
		return false
	}
	c.cancel(e)
	delete(c.entries, id)
	c.removeHandles(e.handles)
	markers.Logger().Info("marker removed", "id", id)
	return true
}

// MarkerID returns the marker id owning host handle h.
func (c *Controller) MarkerID(h surface.Handle) (string, bool) {
	id, ok := c.owners[h]
	return id, ok
}

// Handles returns the host handles of id.
func (c *Controller) Handles(id string) []surface.Handle {
	if e, ok := c.entries[id]; ok {
		return slices.Clone(e.handles)
	}
	return nil
}

// Descriptor returns the descriptor last applied to id.
func (c *Controller) Descriptor(id string) (markers.Descriptor, bool) {
	if e, ok := c.entries[id]; ok {
		return e.desc, true
	}
	return markers.Descriptor{}, false
}

// Active reports whether id has a fade running.
func (c *Controller) Active(id string) bool {
	e, ok := c.entries[id]
	return ok && e.fade != nil
}

// Len returns the number of markers.
func (c *Controller) Len() int {
	return len(c.entries)
}

// Advance ticks every running fade at now and returns how many are still
// running. Host errors are logged and skip only the failing command.
func (c *Controller) Advance(now time.Time) int {
	running := 0
	for _, id := range slices.Sorted(maps.Keys(c.entries)) {
		e := c.entries[id]
		if e.fade == nil {
			continue
		}
		f := e.fade
		p := anim.Progress(f.start, now, c.opts.duration, c.opts.easing)
		// The eased curve may reach 1 before the duration elapses.
		if now.Sub(f.start) < c.opts.duration {
			p = min(p, nextBelowOne)
		}
		c.apply(id, e, f, f.session.Tick(p))
		if !f.session.Done() {
			running++
			continue
		}
		if vis := f.session.Visible(); len(vis) > 0 {
			e.active = vis[0]
		}
		e.fade = nil
		telemetry.Inc(telemetry.Get().SessionsCompleted)
	}
	return running
}

// nextBelowOne caps progress until the full duration has elapsed.
const nextBelowOne = 0.999999

// Tick advances at the controller clock's current time.
func (c *Controller) Tick() int {
	return c.Advance(c.opts.clock.Now())
}

// newFade prepares frames from one bitmap to another and a fresh session.
func (c *Controller) newFade(from, to *gg.Pixmap) *fade {
	frames := anim.Crossfade(from, to, c.opts.frames)
	return &fade{
		session: anim.NewSession(len(frames), c.opts.pool, c.opts.zBase),
		frames:  frames,
		start:   c.opts.clock.Now(),
	}
}

// startFade brings the entry's handles into the initial session layout,
// growing the pool as needed, and starts the fade.
func (c *Controller) startFade(id string, e *entry, from, to *gg.Pixmap) {
	f := c.newFade(from, to)
	s := f.session
	for len(e.handles) < s.PoolSize() {
		k := len(e.handles)
		h, err := c.host.Create(f.frames[s.Frame(k)], e.pos, false, s.Z(k))
		if err != nil {
			c.hostError(id, h, err)
			break
		}
		e.handles = append(e.handles, h)
		c.owners[h] = id
	}
	if len(e.handles) < s.PoolSize() {
		// Too few handles to run the pool; show the result directly.
		c.swap(id, e, to)
		return
	}

	// Slot 0 is shown with the starting frame before any other handle is
	// hidden.
	for k, h := range e.handles {
		if k < s.PoolSize() {
			c.call(id, h, c.host.SetIcon(h, f.frames[s.Frame(k)]))
			c.call(id, h, c.host.SetZIndex(h, s.Z(k)))
		}
		c.call(id, h, c.host.SetVisible(h, k < s.PoolSize() && s.InitiallyVisible(k)))
	}
	e.active = 0
	e.fade = f
	telemetry.Inc(telemetry.Get().SessionsStarted)
}

// swap shows bmp on the active handle and hides the others.
func (c *Controller) swap(id string, e *entry, bmp *gg.Pixmap) {
	active := e.handles[e.active]
	c.call(id, active, c.host.SetIcon(active, bmp))
	c.call(id, active, c.host.SetZIndex(active, c.opts.zBase))
	c.call(id, active, c.host.SetVisible(active, true))
	for k, h := range e.handles {
		if k != e.active {
			c.call(id, h, c.host.SetVisible(h, false))
		}
	}
}

// apply executes session commands against the entry's handles.
func (c *Controller) apply(id string, e *entry, f *fade, cmds []anim.Command) {
	for _, cmd := range cmds {
		if cmd.Slot >= len(e.handles) {
			continue
		}
		h := e.handles[cmd.Slot]
		var err error
		switch cmd.Op {
		case anim.OpSetIcon:
			err = c.host.SetIcon(h, f.frames[cmd.Frame])
		case anim.OpSetVisible:
			err = c.host.SetVisible(h, cmd.Visible)
		case anim.OpSetZIndex:
			err = c.host.SetZIndex(h, cmd.Z)
		}
		c.call(id, h, err)
	}
}

// shown returns the bitmap currently on top for e: the frame of the
// topmost visible slot of a running fade, or the settled bitmap.
func (c *Controller) shown(e *entry) *gg.Pixmap {
	if e.fade == nil {
		return e.bitmap
	}
	s := e.fade.session
	top := -1
	for _, k := range s.Visible() {
		if top < 0 || s.Z(k) > s.Z(top) {
			top = k
		}
	}
	if top < 0 {
		return e.bitmap
	}
	return e.fade.frames[s.Frame(top)]
}

// cancel drops the running fade of e, if any.
func (c *Controller) cancel(e *entry) {
	if e.fade == nil {
		return
	}
	e.fade = nil
	telemetry.Inc(telemetry.Get().SessionsCancelled)
}

func (c *Controller) removeHandles(hs []surface.Handle) {
	for _, h := range hs {
		id := c.owners[h]
		delete(c.owners, h)
		c.call(id, h, c.host.Remove(h))
	}
}

func (c *Controller) call(id string, h surface.Handle, err error) {
	if err != nil {
		c.hostError(id, h, err)
	}
}

func (c *Controller) hostError(id string, h surface.Handle, err error) {
	telemetry.Inc(telemetry.Get().HostErrors, attribute.String("marker.id", id))
	markers.Logger().Debug("host surface call failed", "id", id, "handle", h, "err", err)
}
