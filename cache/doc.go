// Package cache provides the content-addressed bitmap cache shared by all
// marker renders.
//
// # BitmapCache
//
// BitmapCache maps a rendering key to a rasterized [gg.Pixmap]. It is
// bounded by a memory budget measured in KiB, where every entry costs its
// byte count divided by 1024 (rounded up). When an insert would exceed the
// budget, least-recently-used entries are evicted until it fits.
//
//	c := cache.New(8 * 1024) // 8 MiB budget
//	c.Put("count:12", pm)
//	copy, ok := c.Get("count:12")
//
// Put is first-writer-wins: a second Put for a key that is already present
// is ignored. Get never returns the stored pixmap itself, only a copy, so no
// caller can mutate what another caller will receive.
//
// # Thread Safety
//
// BitmapCache is safe for concurrent use and must not be copied after
// creation (it contains a mutex).
//
// [gg.Pixmap]: https://pkg.go.dev/github.com/gogpu/gg#Pixmap
package cache
