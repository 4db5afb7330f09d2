package controller

import (
	"time"

	"github.com/gogpu/markers/anim"
)

// DefaultDuration is the length of a fade.
const DefaultDuration = 1000 * time.Millisecond

// Option configures a Controller.
type Option func(*options)

type options struct {
	animate  bool
	frames   int
	pool     int
	zBase    int
	duration time.Duration
	easing   anim.Easing
	clock    anim.Clock
}

func defaultOptions() options {
	return options{
		frames:   anim.DefaultFrameCount,
		pool:     anim.DefaultPoolSize,
		duration: DefaultDuration,
		easing:   anim.FadeIn,
		clock:    anim.SystemClock{},
	}
}

// WithAnimation sets the initial animation toggle. See
// Controller.SetAnimationEnabled.
func WithAnimation(enabled bool) Option {
	return func(o *options) {
		o.animate = enabled
	}
}

// WithFrameCount sets the number of cross-fade frames. Values below 2 are
// ignored.
func WithFrameCount(n int) Option {
	return func(o *options) {
		if n >= 2 {
			o.frames = n
		}
	}
}

// WithPoolSize sets the number of host handles cycled by a fade.
// Values below 1 are ignored.
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.pool = n
		}
	}
}

// WithZIndex sets the base z-index of every marker.
func WithZIndex(z int) Option {
	return func(o *options) {
		o.zBase = z
	}
}

// WithDuration sets the fade duration.
func WithDuration(d time.Duration) Option {
	return func(o *options) {
		o.duration = d
	}
}

// WithEasing sets the progress curve. Nil means linear.
func WithEasing(e anim.Easing) Option {
	return func(o *options) {
		o.easing = e
	}
}

// WithClock sets the time source used to start and advance fades.
func WithClock(c anim.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}
