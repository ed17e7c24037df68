package main

import (
	"github.com/spf13/cobra"

	"github.com/imp-refactor/imp-refactor/internal/adapter"
)

func newApplyCmd() *cobra.Command {
	var (
		write       bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Rewrite unambiguously-suggested broken references in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(args)
			if err != nil {
				return err
			}

			c := newController(cmd, interactive)
			code, err := c.Apply(cmd.Context(), adapter.NewLocalSourceFS(), opts, write || interactive)
			lastExitCode = code
			return err
		},
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write approved rewrites to disk instead of only previewing them")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "review each file's rewrite in a terminal UI before writing (implies --write)")
	return cmd
}
