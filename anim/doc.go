// Package anim emulates a cross-fade between two marker bitmaps on a host
// surface that supports neither per-marker alpha nor bitmap interpolation.
//
// [Crossfade] pre-renders the intermediate frames. A [Session] then drives
// a small pool of duplicate handles through the fade states, returning the
// setIcon, setVisible and setZIndex commands for each tick. Sessions are
// pure and advanced by synthetic progress values, so they can be tested
// without timers:
//
//	s := anim.NewSession(anim.DefaultFrameCount, anim.DefaultPoolSize, 0)
//	for _, p := range []float64{0.1, 0.2, 0.5, 1} {
//	    for _, cmd := range s.Tick(p) {
//	        apply(cmd)
//	    }
//	}
package anim
