package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/knotviz/knotviz"
)

var (
	version = knotviz.Version // semantic version, ldflags may override
	commit  string            // git commit SHA
	date    string            // build timestamp
)

// SetVersion sets the version information displayed by --version.
// This is typically called by the main package during initialization with
// values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the knotviz CLI with a background context.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the knotviz CLI and returns an error if any command
// fails.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The terminal logger is attached to the context for the commands and
// installed as the library logger, so backend resolution and per-draw
// diagnostics show up in the same stream.
func ExecuteContext(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "knotviz",
		Short:        "knotviz renders 3D space curves as colored tubes",
		Long:         `knotviz renders knots and other space curves described by TOML scene files, picking the best available rendering backend at runtime.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			l := newLogger(os.Stderr, level)
			// charm loggers implement slog.Handler, so the library can
			// log straight into the terminal logger.
			knotviz.SetLogger(slog.New(l))
			cmd.SetContext(withLogger(cmd.Context(), l))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("knotviz %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newBackendsCmd())

	return root.ExecuteContext(ctx)
}
