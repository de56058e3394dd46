package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kimgoetzke/randolf/internal/config"
)

// newConfigCmd mirrors the teacher's "config validate"/"config print"
// subcommands, re-expressed as cobra subcommands of their own parent.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or validate the randolf configuration file",
	}
	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path randolf reads from",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func newConfigValidateCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if path == "" {
				_, err = config.Load()
			} else {
				_, err = config.LoadFromPath(path)
			}
			if err != nil {
				return err
			}
			fmt.Println("config: ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "config file path (default: XDG config dir)")
	return cmd
}
