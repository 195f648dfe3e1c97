// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoBackendAvailable is returned by Resolve when automatic selection
// probed every registered backend and none initialized. The concrete error
// is an *ExhaustedError naming the candidates tried.
var ErrNoBackendAvailable = errors.New("render: no backend available")

// ErrNotEnoughPoints is returned by draw calls given fewer than two points.
var ErrNotEnoughPoints = errors.New("render: polyline needs at least 2 points")

// ExhaustedError reports that every candidate failed during automatic
// backend resolution. It unwraps to ErrNoBackendAvailable.
type ExhaustedError struct {
	Tried []string // backend names in the order they were probed
}

func (e *ExhaustedError) Error() string {
	return "render: no backend available (tried " + strings.Join(e.Tried, ", ") + ")"
}

func (e *ExhaustedError) Unwrap() error { return ErrNoBackendAvailable }

// UnknownModeError reports a mode string that names no registered backend.
// It is distinct from ErrNoBackendAvailable: the mode was never probed, it
// simply does not exist.
type UnknownModeError struct {
	Mode string
}

func (e *UnknownModeError) Error() string {
	return fmt.Sprintf("render: unknown mode %q", e.Mode)
}

// BackendError wraps a failure inside a specific backend so callers can
// tell which backend and operation failed.
type BackendError struct {
	Backend string // backend name, e.g. "gpu"
	Op      string // failing operation, e.g. "init" or "draw"
	Err     error
}

func (e *BackendError) Error() string {
	return "render: backend " + e.Backend + ": " + e.Op + ": " + e.Err.Error()
}

func (e *BackendError) Unwrap() error { return e.Err }
