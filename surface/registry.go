// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"slices"
	"sync"
)

// Options configures a surface created through the registry.
type Options struct {
	// Width and Height are the viewport size in pixels, used by surfaces
	// that render their contents.
	Width  int
	Height int

	// Center is the viewport center.
	Center LatLng

	// MetersPerPixel is the viewport scale in Web Mercator meters.
	MetersPerPixel float64
}

// Factory creates a surface.
type Factory func(opts Options) (Surface, error)

// Backend is a registered surface implementation.
type Backend struct {
	Name string

	// Priority orders automatic selection, highest first.
	Priority int

	Factory Factory

	// Available reports whether the backend can be used here.
	Available func() bool
}

// Registry maps backend names to surface factories. Host integrations
// register themselves so that callers can pick one by name.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

var defaultRegistry = NewRegistry()

// Register adds a backend to the default registry.
func Register(name string, priority int, f Factory, available func() bool) {
	defaultRegistry.Register(name, priority, f, available)
}

// Open creates a surface from the named backend of the default registry.
func Open(name string, opts Options) (Surface, error) {
	return defaultRegistry.Open(name, opts)
}

// OpenDefault creates a surface from the best available backend of the
// default registry.
func OpenDefault(opts Options) (Surface, error) {
	return defaultRegistry.OpenDefault(opts)
}

// Backends lists the default registry's backends, highest priority first.
func Backends() []string {
	return defaultRegistry.Names()
}

// Register adds or replaces a backend. A nil available func means always
// available.
func (r *Registry) Register(name string, priority int, f Factory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[name] = Backend{Name: name, Priority: priority, Factory: f, Available: available}
}

// Unregister removes a backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.backends, name)
}

// Lookup returns a copy of the named backend.
func (r *Registry) Lookup(name string) (Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[name]
	return b, ok
}

// Names returns the available backends, highest priority first, ties by
// name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	list := make([]Backend, 0, len(r.backends))
	for _, b := range r.backends {
		list = append(list, b)
	}
	r.mu.RUnlock()

	slices.SortFunc(list, func(a, b Backend) int {
		if a.Priority != b.Priority {
			return b.Priority - a.Priority
		}
		if a.Name < b.Name {
			return -1
		}
		return 1
	})
	names := make([]string, 0, len(list))
	for _, b := range list {
		if b.Available() {
			names = append(names, b.Name)
		}
	}
	return names
}

// Open creates a surface from the named backend.
func (r *Registry) Open(name string, opts Options) (Surface, error) {
	b, ok := r.Lookup(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !b.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}
	return b.Factory(opts)
}

// OpenDefault tries the available backends in priority order and returns
// the first surface created.
func (r *Registry) OpenDefault(opts Options) (Surface, error) {
	var errs []error
	for _, name := range r.Names() {
		s, err := r.Open(name, opts)
		if err == nil {
			return s, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrNoBackend
	}
	return nil, errors.Join(errs...)
}

// ErrNoBackend is returned by OpenDefault when nothing is registered.
var ErrNoBackend = errors.New("surface: no backend available")

// BackendNotFoundError reports an unregistered backend name.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError reports a registered backend that cannot run.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

func init() {
	Register(MemoryBackend, 10, func(opts Options) (Surface, error) {
		return NewMemory(WithViewport(opts)), nil
	}, nil)
}
