// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "errors"

// Package errors for the gpu backend.
var (
	// ErrNoGPU is returned when no usable adapter can be acquired.
	ErrNoGPU = errors.New("gpu: no GPU adapter available")

	// ErrNotInitialized is returned when draw operations are called before
	// the device is acquired.
	ErrNotInitialized = errors.New("gpu: device not initialized")

	// ErrShaderCompile is returned when the tube shader fails to compile.
	ErrShaderCompile = errors.New("gpu: shader compilation failed")
)
