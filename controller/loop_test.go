package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/markers/surface"
)

func TestLoopDo(t *testing.T) {
	host := surface.NewMemory()
	c, _ := newTestController(t, host, WithAnimation(false))
	l := NewLoop(c, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	var handles []surface.Handle
	err := l.Do(ctx, func(c *Controller) {
		handles, _ = c.AddMarker("m1", animated("a"), surface.LatLng{})
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(handles) != 1 || host.Len() != 1 {
		t.Errorf("expected marker to be added on the loop, got %d handles", len(handles))
	}

	cancel()
	if err := <-errc; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if err := l.Do(context.Background(), func(*Controller) {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("expected ErrLoopStopped, got %v", err)
	}
}

func TestLoopTicks(t *testing.T) {
	host := surface.NewMemory()
	c, clock := newTestController(t, host)
	l := NewLoop(c, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = l.Run(ctx) }()

	if err := l.Do(ctx, func(c *Controller) {
		_, _ = c.AddMarker("m1", animated("a"), surface.LatLng{})
	}); err != nil {
		t.Fatal(err)
	}
	clock.Advance(2 * DefaultDuration)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		var active bool
		_ = l.Do(ctx, func(c *Controller) { active = c.Active("m1") })
		if !active {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Error("expected the loop to finish the fade")
}
