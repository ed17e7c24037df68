package main

import (
	"github.com/spf13/cobra"

	"github.com/imp-refactor/imp-refactor/internal/controller"
	m "github.com/imp-refactor/imp-refactor/internal/model"
)

func newRegistryCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Print every valid dotted path in the current registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newController(cmd, false)

			paths, err := c.Workflow.Registry(cmd.Context(), cfg.RegistryName)
			if err != nil {
				lastExitCode = controller.ExitFatal
				return err
			}
			if depth > 0 {
				paths = truncateDepth(paths, depth)
			}
			if err := c.UI.DisplayRegistry(paths); err != nil {
				lastExitCode = controller.ExitFatal
				return err
			}
			lastExitCode = controller.ExitClean
			return nil
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "only print paths up to this many segments deep (0 means unlimited)")
	return cmd
}

// truncateDepth shortens every path to at most depth segments and
// removes duplicates that result, preserving first-seen order.
func truncateDepth(paths []m.DottedPath, depth int) []m.DottedPath {
	seen := make(map[string]struct{}, len(paths))
	out := make([]m.DottedPath, 0, len(paths))
	for _, p := range paths {
		segs := p.Segments()
		if len(segs) > depth {
			segs = segs[:depth]
		}
		truncated := m.NewDottedPath(segs...)
		key := truncated.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, truncated)
	}
	return out
}
