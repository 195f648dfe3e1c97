// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the rendering backend contract and the registry
// that resolves mode strings to usable backends.
//
// # Backends
//
// A backend draws 3D tube meshes and polylines into an offscreen Target.
// Three implementations ship with knotviz:
//
//   - gpu: WebGPU tube rendering (render/gpu), priority 100
//   - gonum: reduced-fidelity line plots (render/gonumplot), priority 50
//   - mesh: software z-buffered rasterizer (this package), priority 10
//
// The mesh backend registers itself when this package is imported and has
// no hardware requirements, so resolution always has a floor to land on.
// The other two register from their own packages; import them for effect:
//
//	import (
//		_ "github.com/knotviz/knotviz/render/gonumplot"
//		_ "github.com/knotviz/knotviz/render/gpu"
//	)
//
// # Resolution
//
// Resolve maps a mode string to a backend name. ModeAuto probes backends
// in descending priority order and picks the first that initializes; a
// concrete mode is trusted without probing. New goes one step further and
// constructs the renderer, wrapping construction failures in *BackendError.
//
// # Writing a Backend
//
// Implement Renderer, then register a constructor:
//
//	render.Register(render.Registration{
//		Name:     "myrenderer",
//		Priority: 40,
//		New:      func() (render.Renderer, error) { return newMyRenderer() },
//	})
//
// Renderers that support camera placement or background colors additionally
// implement CameraSetter and BackgroundSetter; callers feature-test with
// type assertions.
package render
