package main

import (
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "List every file that detect/apply would visit",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(args)
			if err != nil {
				return err
			}

			c := newController(cmd, false)
			code, err := c.Scan(opts, cmd.OutOrStdout())
			lastExitCode = code
			return err
		},
	}
	return cmd
}
