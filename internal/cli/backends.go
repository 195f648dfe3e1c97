package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knotviz/knotviz/render"
)

// newBackendsCmd creates the backends command, which lists registered
// rendering backends in probe order and checks each one live.
func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List rendering backends and probe their availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range render.Names() {
				reg, ok := render.Lookup(name)
				if !ok {
					continue
				}
				status := "available"
				if err := probeBackend(reg); err != nil {
					status = "unavailable: " + err.Error()
				}
				fmt.Fprintf(out, "%-8s priority %3d  %s\n", name, reg.Priority, status)
			}
			return nil
		},
	}
}

// probeBackend checks a registration the way automatic resolution does:
// the probe hook when present, otherwise a construct-and-close cycle.
func probeBackend(reg render.Registration) error {
	if reg.Probe != nil {
		return reg.Probe()
	}
	r, err := reg.New()
	if err != nil {
		return err
	}
	return r.Close()
}
