// Package markers renders and animates custom map-marker bitmaps.
//
// # Overview
//
// A marker is described semantically by a [Descriptor]: label, optional
// icon and counter badge, state flags and a size variant. The pipeline is
//
//	Descriptor -> layout.Engine -> raster.Rasterizer -> cache.BitmapCache
//	                                      |
//	                controller.Controller -> anim.Session -> surface.Surface
//
// The layout engine derives every shape position from the descriptor, the
// rasterizer draws the shapes with gogpu/gg into a [gg.Pixmap] and caches
// the result, and the controller fakes a smooth cross-fade on host map
// surfaces that can only swap icons and toggle visibility, by cycling a
// small pool of duplicate marker handles through pre-rendered frames.
//
// # Quick Start
//
//	fonts, _ := raster.DefaultFonts()
//	bitmaps := cache.NewFromMemory(cache.DefaultMemoryFraction)
//	r := raster.New(bitmaps, fonts)
//
//	host := surface.NewMemory()
//	c := controller.New(host, r, controller.WithAnimation(true))
//	c.AddMarker("home", markers.Descriptor{Label: "$450", HasPointer: true, IsAnimated: true},
//	    surface.LatLng{Lat: 52.37, Lng: 4.89})
//	for c.Tick() > 0 {
//	    time.Sleep(16 * time.Millisecond)
//	}
//
// # Threading
//
// The controller is UI-thread affine: drive it from a single goroutine, or
// through [controller.Loop] which serializes requests and animation ticks.
// The bitmap cache is safe for concurrent use and always hands out copies.
//
// [gg.Pixmap]: https://pkg.go.dev/github.com/gogpu/gg#Pixmap
package markers
