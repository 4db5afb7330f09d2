// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"sync"

	"github.com/gogpu/gg"
	"github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// MemoryBackend is the registry name of the in-memory surface.
const MemoryBackend = "memory"

// OpKind names a recorded surface call.
type OpKind uint8

// Recorded operations.
const (
	OpCreate OpKind = iota + 1
	OpSetIcon
	OpSetVisible
	OpSetZIndex
	OpRemove
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpSetIcon:
		return "setIcon"
	case OpSetVisible:
		return "setVisible"
	case OpSetZIndex:
		return "setZIndex"
	case OpRemove:
		return "remove"
	}
	return fmt.Sprintf("OpKind(%d)", uint8(k))
}

// Op is one successful call recorded by Memory.
type Op struct {
	Kind    OpKind
	Handle  Handle
	Visible bool
	Z       int
	// Width and Height are the bitmap size for create and setIcon.
	Width, Height int
}

// MarkerState is the current state of one marker on a Memory surface.
type MarkerState struct {
	Handle   Handle
	Position LatLng
	Visible  bool
	Z        int
	// Bitmap is a private copy.
	Bitmap *gg.Pixmap
}

// MemoryOption configures a Memory surface.
type MemoryOption func(*Memory)

// WithViewport sets the default Snapshot viewport.
func WithViewport(opts Options) MemoryOption {
	return func(m *Memory) {
		m.view = opts
	}
}

// WithFaults installs a hook consulted before every mutation of an
// existing handle. A non-nil error fails the call without effect.
func WithFaults(fn func(kind OpKind, h Handle) error) MemoryOption {
	return func(m *Memory) {
		m.fault = fn
	}
}

// hostMarker is a marker as the surface stores it. Position is kept in
// Web Mercator meters.
type hostMarker struct {
	bitmap  *gg.Pixmap
	latLng  LatLng
	pos     geom.Point
	visible bool
	z       int
	order   uint64
}

// Memory is a software host surface. It keeps every marker in memory,
// records each successful call and can composite the visible markers into
// an image. Memory is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	next    Handle
	order   uint64
	markers map[Handle]*hostMarker
	ops     []Op
	closed  bool

	view    Options
	fault   func(OpKind, Handle) error
	project func(lon, lat, h float64) (x, y, z float64)
}

// NewMemory creates an empty surface.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		markers: make(map[Handle]*hostMarker),
		project: wgs84.EPSG().Transform(4326, 3857),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func clonePixmap(pm *gg.Pixmap) *gg.Pixmap {
	if pm == nil {
		return gg.NewPixmap(1, 1)
	}
	out := gg.NewPixmap(pm.Width(), pm.Height())
	copy(out.Data(), pm.Data())
	return out
}

// mercator projects a WGS84 position to Web Mercator meters.
func (m *Memory) mercator(p LatLng) (geom.Point, error) {
	x, y, _ := m.project(p.Lng, p.Lat, 0)
	pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: x, Y: y}})
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: %v: %v", ErrInvalidPosition, p, err)
	}
	return pt, nil
}

// Create implements Surface.
func (m *Memory) Create(bitmap *gg.Pixmap, pos LatLng, visible bool, z int) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrClosed
	}
	pt, err := m.mercator(pos)
	if err != nil {
		return 0, err
	}
	m.next++
	m.order++
	h := m.next
	bm := clonePixmap(bitmap)
	m.markers[h] = &hostMarker{
		bitmap:  bm,
		latLng:  pos,
		pos:     pt,
		visible: visible,
		z:       z,
		order:   m.order,
	}
	m.ops = append(m.ops, Op{Kind: OpCreate, Handle: h, Visible: visible, Z: z, Width: bm.Width(), Height: bm.Height()})
	return h, nil
}

// lookup returns the marker for h after the closed and fault checks.
// Caller must hold m.mu.
func (m *Memory) lookup(kind OpKind, h Handle) (*hostMarker, error) {
	if m.closed {
		return nil, ErrClosed
	}
	mk, ok := m.markers[h]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownHandle, h)
	}
	if m.fault != nil {
		if err := m.fault(kind, h); err != nil {
			return nil, err
		}
	}
	return mk, nil
}

// SetIcon implements Surface.
func (m *Memory) SetIcon(h Handle, bitmap *gg.Pixmap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mk, err := m.lookup(OpSetIcon, h)
	if err != nil {
		return err
	}
	mk.bitmap = clonePixmap(bitmap)
	m.ops = append(m.ops, Op{Kind: OpSetIcon, Handle: h, Width: mk.bitmap.Width(), Height: mk.bitmap.Height()})
	return nil
}

// SetVisible implements Surface.
func (m *Memory) SetVisible(h Handle, visible bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mk, err := m.lookup(OpSetVisible, h)
	if err != nil {
		return err
	}
	mk.visible = visible
	m.ops = append(m.ops, Op{Kind: OpSetVisible, Handle: h, Visible: visible})
	return nil
}

// SetZIndex implements Surface.
func (m *Memory) SetZIndex(h Handle, z int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mk, err := m.lookup(OpSetZIndex, h)
	if err != nil {
		return err
	}
	mk.z = z
	m.ops = append(m.ops, Op{Kind: OpSetZIndex, Handle: h, Z: z})
	return nil
}

// Remove implements Surface.
func (m *Memory) Remove(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.lookup(OpRemove, h); err != nil {
		return err
	}
	delete(m.markers, h)
	m.ops = append(m.ops, Op{Kind: OpRemove, Handle: h})
	return nil
}

// Close drops every marker. Later calls fail with ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.markers = make(map[Handle]*hostMarker)
	return nil
}

// Len returns the number of live markers.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.markers)
}

// State returns the current state of h.
func (m *Memory) State(h Handle) (MarkerState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mk, ok := m.markers[h]
	if !ok {
		return MarkerState{}, false
	}
	return MarkerState{
		Handle:   h,
		Position: mk.latLng,
		Visible:  mk.visible,
		Z:        mk.z,
		Bitmap:   clonePixmap(mk.bitmap),
	}, true
}

// Ops returns a copy of the operation log.
func (m *Memory) Ops() []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Op(nil), m.ops...)
}

// OpsFor returns the logged operations on h.
func (m *Memory) OpsFor(h Handle) []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Op
	for _, op := range m.ops {
		if op.Handle == h {
			out = append(out, op)
		}
	}
	return out
}

// ResetOps clears the operation log.
func (m *Memory) ResetOps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
}
