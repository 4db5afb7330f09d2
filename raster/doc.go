// Package raster draws marker layouts into pixmaps.
//
// A [Rasterizer] combines the layout engine, the icon renderer and a
// [Canvas] (gg-backed by default) and memoizes every bitmap in a shared
// cache.BitmapCache. Callers always receive their own copy:
//
//	fonts, err := raster.DefaultFonts()
//	if err != nil {
//	    return err
//	}
//	r := raster.New(cache.NewFromMemory(cache.DefaultMemoryFraction), fonts,
//	    raster.WithDensity(2.625))
//	pm := r.Render(markers.Descriptor{Label: "$450", HasPointer: true})
//
// BuildMarker draws the simpler count, price and rounded badges.
package raster
