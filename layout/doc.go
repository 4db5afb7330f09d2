// Package layout turns a marker descriptor into positioned drawing
// primitives.
//
// [Engine.Compute] is pure: it measures text through a [TextMeasurer],
// resolves the icon through an optional [IconSource] and returns a
// [Geometry] in physical pixels. All dp constants are converted once with
// the engine's density, so primitives never drift against each other.
package layout
