// Package telemetry holds the OpenTelemetry instruments shared by the
// markers packages. Instruments come from the global meter provider and are
// no-ops until the application installs one.
package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/gogpu/markers"

// Instruments groups the counters recorded by markers.
type Instruments struct {
	CacheHits      metric.Int64Counter
	CacheMisses    metric.Int64Counter
	CacheEvictions metric.Int64Counter

	SessionsStarted   metric.Int64Counter
	SessionsCompleted metric.Int64Counter
	SessionsCancelled metric.Int64Counter

	HostErrors metric.Int64Counter
}

var (
	once        sync.Once
	instruments *Instruments
)

// Get returns the process-wide instruments, creating them on first use.
func Get() *Instruments {
	once.Do(func() {
		instruments = create(otel.Meter(instrumentationName))
	})
	return instruments
}

func create(m metric.Meter) *Instruments {
	counter := func(name, desc string) metric.Int64Counter {
		c, err := m.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			return noop.Int64Counter{}
		}
		return c
	}
	return &Instruments{
		CacheHits:         counter("markers.cache.hits", "Bitmap cache hits"),
		CacheMisses:       counter("markers.cache.misses", "Bitmap cache misses"),
		CacheEvictions:    counter("markers.cache.evictions", "Bitmap cache LRU evictions"),
		SessionsStarted:   counter("markers.anim.sessions_started", "Animation sessions started"),
		SessionsCompleted: counter("markers.anim.sessions_completed", "Animation sessions converged"),
		SessionsCancelled: counter("markers.anim.sessions_cancelled", "Animation sessions superseded or removed"),
		HostErrors:        counter("markers.surface.errors", "Host surface operations that failed"),
	}
}

// Inc adds one to c, tagged with the given attributes.
func Inc(c metric.Int64Counter, attrs ...attribute.KeyValue) {
	c.Add(context.Background(), 1, metric.WithAttributes(attrs...))
}
