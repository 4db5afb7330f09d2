// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface defines the host map surface that markers are placed
// on, and ships an in-memory software implementation.
//
// A host surface can only replace a marker's bitmap, toggle its visibility
// and change its z-order. [Memory] implements that contract, records every
// call for inspection and renders the visible markers with
// [Memory.Snapshot], projecting positions to Web Mercator.
//
// Host integrations register themselves by name:
//
//	surface.Register("android", 100, newAndroidSurface, nil)
//	s, err := surface.Open("android", surface.Options{})
//
// The memory backend is always registered as "memory".
package surface
