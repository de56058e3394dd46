// Command randolf is the X11 tiling-assist daemon's entrypoint: it loads
// configuration, wires the core state engine described under internal/, and
// runs until asked to exit.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "randolf",
		Short:         "A keyboard-driven window tiling assistant for X11",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon()
		},
	}
	root.AddCommand(newConfigCmd())
	return root
}
