// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
)

// Handle identifies a marker object owned by a host surface.
type Handle uint64

// String returns the handle in decimal form.
func (h Handle) String() string { return fmt.Sprintf("h%d", uint64(h)) }

// LatLng is a WGS84 position in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// Host surface errors.
var (
	// ErrUnknownHandle is returned for handles that were never created or
	// have been removed.
	ErrUnknownHandle = errors.New("surface: unknown handle")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("surface: closed")

	// ErrInvalidPosition is returned by Create for positions that cannot
	// be projected onto the map.
	ErrInvalidPosition = errors.New("surface: invalid position")
)

// Surface is the host map surface markers are placed on. It can only
// swap a marker's bitmap, toggle its visibility and reorder it; there is
// no per-marker alpha or bitmap interpolation.
//
// Implementations take their own copy of every bitmap passed in.
type Surface interface {
	// Create places a new marker and returns its handle.
	Create(bitmap *gg.Pixmap, pos LatLng, visible bool, z int) (Handle, error)

	// SetIcon replaces the bitmap of h.
	SetIcon(h Handle, bitmap *gg.Pixmap) error

	// SetVisible shows or hides h.
	SetVisible(h Handle, visible bool) error

	// SetZIndex moves h in the draw order. Higher values are drawn on top.
	SetZIndex(h Handle, z int) error

	// Remove destroys h.
	Remove(h Handle) error
}
