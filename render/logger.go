// Copyright 2026 The knotviz Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled reports false so argument
// evaluation is skipped when logging is off.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var nopLogger = slog.New(nopHandler{})

var currentLogger atomic.Pointer[slog.Logger]

func init() {
	currentLogger.Store(nopLogger)
}

// SetLogger installs a logger for backend resolution and draw diagnostics.
// Passing nil restores the no-op logger. Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = nopLogger
	}
	currentLogger.Store(l)
}

// Logger returns the currently installed logger.
func Logger() *slog.Logger {
	return currentLogger.Load()
}

func logger() *slog.Logger {
	return currentLogger.Load()
}
