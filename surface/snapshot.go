// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"image"
	"math"
	"slices"

	"golang.org/x/image/draw"

	"github.com/gogpu/markers"
)

// Default snapshot viewport.
const (
	defaultSnapshotSize   = 512
	defaultMetersPerPixel = 1.0
)

// Snapshot composites the visible markers into an image using the
// viewport given to WithViewport. See SnapshotView.
func (m *Memory) Snapshot() *image.RGBA {
	m.mu.Lock()
	view := m.view
	m.mu.Unlock()
	return m.SnapshotView(view)
}

// SnapshotView composites the visible markers onto a transparent image of
// the viewport. Positions are projected to Web Mercator; each bitmap is
// anchored at its bottom center. Markers are drawn by ascending z, ties in
// creation order.
func (m *Memory) SnapshotView(view Options) *image.RGBA {
	if view.Width <= 0 {
		view.Width = defaultSnapshotSize
	}
	if view.Height <= 0 {
		view.Height = defaultSnapshotSize
	}
	if view.MetersPerPixel <= 0 {
		view.MetersPerPixel = defaultMetersPerPixel
	}
	dst := image.NewRGBA(image.Rect(0, 0, view.Width, view.Height))

	type sprite struct {
		img   *image.RGBA
		x, y  float64
		z     int
		order uint64
	}

	center, err := m.mercator(view.Center)
	if err != nil {
		markers.Logger().Debug("snapshot center cannot be projected", "err", err)
		return dst
	}

	m.mu.Lock()
	var sprites []sprite
	for _, mk := range m.markers {
		if !mk.visible {
			continue
		}
		xy, ok := mk.pos.XY()
		if !ok {
			continue
		}
		sprites = append(sprites, sprite{img: mk.bitmap.ToImage(), x: xy.X, y: xy.Y, z: mk.z, order: mk.order})
	}
	m.mu.Unlock()

	c, ok := center.XY()
	if !ok {
		return dst
	}

	slices.SortFunc(sprites, func(a, b sprite) int {
		if a.z != b.z {
			return cmp.Compare(a.z, b.z)
		}
		return cmp.Compare(a.order, b.order)
	})

	for _, s := range sprites {
		px := float64(view.Width)/2 + (s.x-c.X)/view.MetersPerPixel
		py := float64(view.Height)/2 - (s.y-c.Y)/view.MetersPerPixel
		b := s.img.Bounds()
		minX := int(math.Round(px)) - b.Dx()/2
		minY := int(math.Round(py)) - b.Dy()
		r := image.Rect(minX, minY, minX+b.Dx(), minY+b.Dy())
		draw.Draw(dst, r, s.img, b.Min, draw.Over)
	}
	return dst
}
