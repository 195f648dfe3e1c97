// Package cli implements the knotviz command-line interface.
//
// The CLI renders TOML scene files describing space curves to PNG images
// and reports which rendering backends are usable on the current machine.
// It is built using cobra and logs through the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: render a scene file to a PNG image
//   - backends: list registered rendering backends and probe each one
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// terminal logger is passed through context.Context, and is also
// installed as the library logger so backend resolution and draw
// diagnostics land in the same stream.
//
// # Example
//
//	import "github.com/knotviz/knotviz/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
