// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"sort"
	"sync"
)

// ModeAuto selects a backend automatically by probing registered backends
// in priority order. An empty mode string means the same thing.
const ModeAuto = "auto"

// Registration describes a rendering backend known to a Registry.
type Registration struct {
	// Name identifies the backend in mode strings and error messages.
	Name string

	// Priority orders automatic probing; higher values are tried first.
	// Convention: 100 for GPU, 50 for reduced-fidelity plotting, 10 for
	// software rendering.
	Priority int

	// Probe reports whether the backend can initialize right now. A nil
	// Probe means construct a renderer and close it again.
	Probe func() error

	// New constructs a renderer with default-sized target.
	New func() (Renderer, error)
}

// Registry maps backend names to registrations and resolves mode strings
// to usable backends. The zero value is not usable; call NewRegistry.
//
// Resolution is stateless: nothing about a prior Resolve call is cached,
// so a backend that appears between calls is picked up and one that
// breaks stops being selected.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Registration)}
}

// Register adds or replaces a backend registration.
func (r *Registry) Register(reg Registration) {
	if reg.Name == "" || reg.New == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backends[reg.Name] = reg
}

// Unregister removes a backend by name. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.backends, name)
}

// Names returns registered backend names in probe order: priority
// descending, ties broken by name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi := r.backends[names[i]].Priority
		pj := r.backends[names[j]].Priority
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})
	return names
}

// Lookup returns the registration for name.
func (r *Registry) Lookup(name string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.backends[name]
	return reg, ok
}

// Resolve maps a mode string to the name of a usable backend.
//
// For ModeAuto (or ""), registered backends are probed in priority order
// and the first that initializes wins; any probe state is discarded, the
// caller constructs its own renderer with New. If every probe fails the
// error is an *ExhaustedError wrapping ErrNoBackendAvailable.
//
// Any other mode is returned as-is without probing when it names a
// registered backend; the backend is trusted and a broken one fails later,
// at construction or draw. An unregistered mode yields *UnknownModeError.
func (r *Registry) Resolve(mode string) (string, error) {
	if mode != "" && mode != ModeAuto {
		if _, ok := r.Lookup(mode); !ok {
			return "", &UnknownModeError{Mode: mode}
		}
		return mode, nil
	}

	var tried []string
	for _, name := range r.Names() {
		reg, ok := r.Lookup(name)
		if !ok {
			continue
		}
		tried = append(tried, name)
		if err := r.probe(reg); err != nil {
			logger().Debug("backend probe failed", "backend", name, "error", err)
			continue
		}
		logger().Debug("backend resolved", "backend", name)
		return name, nil
	}
	return "", &ExhaustedError{Tried: tried}
}

// probe checks that a backend can initialize. The default probe builds a
// renderer and immediately closes it; the result is never reused.
func (r *Registry) probe(reg Registration) error {
	if reg.Probe != nil {
		return reg.Probe()
	}
	rr, err := reg.New()
	if err != nil {
		return err
	}
	return rr.Close()
}

// New resolves mode and constructs a renderer for the resolved backend.
// Construction failures are reported as *BackendError naming the backend.
func (r *Registry) New(mode string) (Renderer, error) {
	name, err := r.Resolve(mode)
	if err != nil {
		return nil, err
	}
	reg, ok := r.Lookup(name)
	if !ok {
		return nil, &UnknownModeError{Mode: name}
	}
	rr, err := reg.New()
	if err != nil {
		return nil, &BackendError{Backend: name, Op: "init", Err: err}
	}
	return rr, nil
}

var defaultRegistry = NewRegistry()

// Register adds a backend to the default registry. Backend packages call
// this from init; importing a backend package makes it available.
func Register(reg Registration) { defaultRegistry.Register(reg) }

// Unregister removes a backend from the default registry.
func Unregister(name string) { defaultRegistry.Unregister(name) }

// Names returns the default registry's backend names in probe order.
func Names() []string { return defaultRegistry.Names() }

// Lookup returns a registration from the default registry.
func Lookup(name string) (Registration, bool) { return defaultRegistry.Lookup(name) }

// Resolve resolves a mode string against the default registry.
func Resolve(mode string) (string, error) { return defaultRegistry.Resolve(mode) }

// New resolves mode against the default registry and constructs a renderer.
func New(mode string) (Renderer, error) { return defaultRegistry.New(mode) }
