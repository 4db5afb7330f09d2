package controller

import (
	"context"
	"errors"
	"time"
)

// DefaultInterval is the tick interval used when NewLoop gets none.
const DefaultInterval = time.Second / 60

// ErrLoopStopped is returned by Do once Run has returned.
var ErrLoopStopped = errors.New("markers: loop stopped")

// Loop owns a Controller on a single goroutine. Requests queued with Do
// and animation ticks run one at a time on the goroutine calling Run.
type Loop struct {
	c        *Controller
	interval time.Duration
	requests chan func()
	done     chan struct{}
}

// NewLoop creates a loop ticking c every interval.
func NewLoop(c *Controller, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{
		c:        c,
		interval: interval,
		requests: make(chan func(), 64),
		done:     make(chan struct{}),
	}
}

// Run processes requests and ticks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.requests:
			fn()
		case <-ticker.C:
			l.c.Tick()
		}
	}
}

// Do runs fn with the controller on the loop goroutine and waits for it.
func (l *Loop) Do(ctx context.Context, fn func(*Controller)) error {
	finished := make(chan struct{})
	req := func() {
		defer close(finished)
		fn(l.c)
	}
	select {
	case l.requests <- req:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		// Run may have stopped before taking the request.
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}
