// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/knotviz/knotviz/paint"
)

// stubRenderer is a minimal Renderer for registry tests.
type stubRenderer struct {
	name   string
	closed bool
	target *Target
}

func newStubRenderer(name string) *stubRenderer {
	return &stubRenderer{name: name, target: NewTarget(8, 8)}
}

func (s *stubRenderer) Name() string { return s.name }

func (s *stubRenderer) DrawTube([]r3.Vec, []paint.RGBA, float64, bool) error { return nil }

func (s *stubRenderer) DrawPolyline([]r3.Vec, paint.RGBA, bool) error { return nil }

func (s *stubRenderer) Target() *Target { return s.target }

func (s *stubRenderer) Close() error {
	s.closed = true
	return nil
}

func stubRegistration(name string, priority int) Registration {
	return Registration{
		Name:     name,
		Priority: priority,
		New: func() (Renderer, error) {
			return newStubRenderer(name), nil
		},
	}
}

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	r.Register(stubRegistration("test", 50))

	reg, ok := r.Lookup("test")
	if !ok {
		t.Fatal("registered backend not found")
	}
	if reg.Name != "test" {
		t.Errorf("Name = %s, want test", reg.Name)
	}
	if reg.Priority != 50 {
		t.Errorf("Priority = %d, want 50", reg.Priority)
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(stubRegistration("temp", 10))

	if _, ok := r.Lookup("temp"); !ok {
		t.Fatal("backend should exist before unregister")
	}
	r.Unregister("temp")
	if _, ok := r.Lookup("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryNames tests that names come back in probe order.
func TestRegistryNames(t *testing.T) {
	r := NewRegistry()
	r.Register(stubRegistration("low", 10))
	r.Register(stubRegistration("high", 100))
	r.Register(stubRegistration("mid", 50))

	names := r.Names()
	if len(names) != 3 {
		t.Fatalf("expected 3 backends, got %d", len(names))
	}
	want := []string{"high", "mid", "low"}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %s, want %s", i, names[i], name)
		}
	}
}

// TestResolveAutoPicksHighestPriority tests automatic selection order.
func TestResolveAutoPicksHighestPriority(t *testing.T) {
	r := NewRegistry()
	r.Register(stubRegistration("low", 10))
	r.Register(stubRegistration("high", 100))

	name, err := r.Resolve(ModeAuto)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "high" {
		t.Errorf("resolved = %s, want high", name)
	}
}

// TestResolveAutoFallsBack tests that a failing probe moves on to the
// next backend.
func TestResolveAutoFallsBack(t *testing.T) {
	r := NewRegistry()
	r.Register(Registration{
		Name:     "broken",
		Priority: 100,
		Probe:    func() error { return errors.New("no device") },
		New:      func() (Renderer, error) { return nil, errors.New("no device") },
	})
	r.Register(stubRegistration("working", 50))

	name, err := r.Resolve(ModeAuto)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "working" {
		t.Errorf("resolved = %s, want working", name)
	}
}

// TestResolveAutoShortCircuits tests that probing stops at the first
// success.
func TestResolveAutoShortCircuits(t *testing.T) {
	r := NewRegistry()
	var probed []string
	probe := func(name string, err error) func() error {
		return func() error {
			probed = append(probed, name)
			return err
		}
	}
	r.Register(Registration{
		Name: "first", Priority: 100,
		Probe: probe("first", errors.New("boom")),
		New:   func() (Renderer, error) { return newStubRenderer("first"), nil },
	})
	r.Register(Registration{
		Name: "second", Priority: 50,
		Probe: probe("second", nil),
		New:   func() (Renderer, error) { return newStubRenderer("second"), nil },
	})
	r.Register(Registration{
		Name: "third", Priority: 10,
		Probe: probe("third", nil),
		New:   func() (Renderer, error) { return newStubRenderer("third"), nil },
	})

	name, err := r.Resolve(ModeAuto)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "second" {
		t.Errorf("resolved = %s, want second", name)
	}
	if len(probed) != 2 || probed[0] != "first" || probed[1] != "second" {
		t.Errorf("probed = %v, want [first second]", probed)
	}
}

// TestResolveAutoExhausted tests the error when every probe fails.
func TestResolveAutoExhausted(t *testing.T) {
	r := NewRegistry()
	fail := func() error { return errors.New("unavailable") }
	r.Register(Registration{Name: "a", Priority: 100, Probe: fail,
		New: func() (Renderer, error) { return nil, errors.New("unavailable") }})
	r.Register(Registration{Name: "b", Priority: 50, Probe: fail,
		New: func() (Renderer, error) { return nil, errors.New("unavailable") }})

	_, err := r.Resolve(ModeAuto)
	if err == nil {
		t.Fatal("expected error with all probes failing")
	}
	if !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("expected ErrNoBackendAvailable, got %v", err)
	}
	var exhausted *ExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ExhaustedError, got %T", err)
	}
	if len(exhausted.Tried) != 2 || exhausted.Tried[0] != "a" || exhausted.Tried[1] != "b" {
		t.Errorf("Tried = %v, want [a b]", exhausted.Tried)
	}
}

// TestResolveAutoDiscardsProbeRenderer tests that the default probe closes
// its renderer and New constructs a fresh one.
func TestResolveAutoDiscardsProbeRenderer(t *testing.T) {
	r := NewRegistry()
	var made []*stubRenderer
	r.Register(Registration{
		Name: "counted", Priority: 50,
		New: func() (Renderer, error) {
			s := newStubRenderer("counted")
			made = append(made, s)
			return s, nil
		},
	})

	rr, err := r.New(ModeAuto)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(made) != 2 {
		t.Fatalf("constructed %d renderers, want 2 (probe + real)", len(made))
	}
	if !made[0].closed {
		t.Error("probe renderer should have been closed")
	}
	if made[1].closed {
		t.Error("returned renderer should not be closed")
	}
	if rr != Renderer(made[1]) {
		t.Error("New should return the second construction")
	}
}

// TestResolveExplicitModeIsTrusted tests that naming a backend skips
// probing even when the backend is broken.
func TestResolveExplicitModeIsTrusted(t *testing.T) {
	r := NewRegistry()
	probeCalled := false
	r.Register(Registration{
		Name: "broken", Priority: 100,
		Probe: func() error {
			probeCalled = true
			return errors.New("no device")
		},
		New: func() (Renderer, error) { return nil, errors.New("no device") },
	})

	name, err := r.Resolve("broken")
	if err != nil {
		t.Fatalf("explicit mode should resolve without probing: %v", err)
	}
	if name != "broken" {
		t.Errorf("resolved = %s, want broken", name)
	}
	if probeCalled {
		t.Error("explicit mode must not probe")
	}

	// The failure surfaces at construction, naming the backend.
	_, err = r.New("broken")
	if err == nil {
		t.Fatal("expected construction error")
	}
	var be *BackendError
	if !errors.As(err, &be) {
		t.Fatalf("expected BackendError, got %T", err)
	}
	if be.Backend != "broken" || be.Op != "init" {
		t.Errorf("BackendError = %s/%s, want broken/init", be.Backend, be.Op)
	}
}

// TestResolveUnknownMode tests the error for a mode naming no backend.
func TestResolveUnknownMode(t *testing.T) {
	r := NewRegistry()
	r.Register(stubRegistration("real", 50))

	_, err := r.Resolve("imaginary")
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	var unknown *UnknownModeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownModeError, got %T", err)
	}
	if unknown.Mode != "imaginary" {
		t.Errorf("Mode = %s, want imaginary", unknown.Mode)
	}
	if errors.Is(err, ErrNoBackendAvailable) {
		t.Error("unknown mode must not be ErrNoBackendAvailable")
	}
}

// TestResolveEmptyModeIsAuto tests that "" behaves like ModeAuto.
func TestResolveEmptyModeIsAuto(t *testing.T) {
	r := NewRegistry()
	r.Register(stubRegistration("only", 10))

	name, err := r.Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "only" {
		t.Errorf("resolved = %s, want only", name)
	}
}

// TestResolveIsStateless tests that resolution reflects the current
// registry, not a cached pick.
func TestResolveIsStateless(t *testing.T) {
	r := NewRegistry()
	r.Register(stubRegistration("first", 100))
	r.Register(stubRegistration("second", 50))

	name, err := r.Resolve(ModeAuto)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if name != "first" {
		t.Fatalf("resolved = %s, want first", name)
	}

	r.Unregister("first")
	name, err = r.Resolve(ModeAuto)
	if err != nil {
		t.Fatalf("Resolve failed after unregister: %v", err)
	}
	if name != "second" {
		t.Errorf("resolved = %s, want second", name)
	}
}

// TestNewConstructsRenderer tests the full resolve-and-construct path.
func TestNewConstructsRenderer(t *testing.T) {
	r := NewRegistry()
	r.Register(stubRegistration("only", 10))

	rr, err := r.New("only")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer rr.Close()
	if rr.Name() != "only" {
		t.Errorf("Name = %s, want only", rr.Name())
	}
}

// TestGlobalRegistryHasMesh tests that the mesh backend registers itself.
func TestGlobalRegistryHasMesh(t *testing.T) {
	found := false
	for _, name := range Names() {
		if name == BackendMesh {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("'mesh' backend should be in the global registry")
	}

	rr, err := New(BackendMesh)
	if err != nil {
		t.Fatalf("global New failed: %v", err)
	}
	defer rr.Close()
	if rr.Name() != BackendMesh {
		t.Errorf("Name = %s, want %s", rr.Name(), BackendMesh)
	}
	if rr.Target().Width() != DefaultWidth || rr.Target().Height() != DefaultHeight {
		t.Errorf("target = %dx%d, want %dx%d",
			rr.Target().Width(), rr.Target().Height(), DefaultWidth, DefaultHeight)
	}
}

// TestExhaustedErrorMessage tests error message formatting.
func TestExhaustedErrorMessage(t *testing.T) {
	err := &ExhaustedError{Tried: []string{"gpu", "gonum", "mesh"}}
	want := "render: no backend available (tried gpu, gonum, mesh)"
	if err.Error() != want {
		t.Errorf("error message = %q, want %q", err.Error(), want)
	}
}

// TestUnknownModeErrorMessage tests error message formatting.
func TestUnknownModeErrorMessage(t *testing.T) {
	err := &UnknownModeError{Mode: "vulkan"}
	if err.Error() != `render: unknown mode "vulkan"` {
		t.Errorf("error message = %q, unexpected format", err.Error())
	}
}

// TestBackendErrorMessage tests formatting and unwrapping.
func TestBackendErrorMessage(t *testing.T) {
	cause := errors.New("device lost")
	err := &BackendError{Backend: "gpu", Op: "draw", Err: cause}
	if err.Error() != "render: backend gpu: draw: device lost" {
		t.Errorf("error message = %q, unexpected format", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("BackendError should unwrap to its cause")
	}
}
