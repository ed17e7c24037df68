package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/imp-refactor/imp-refactor/internal/controller"
	"github.com/imp-refactor/imp-refactor/internal/domain"
)

func newDetectCmd() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "detect [paths...]",
		Short: "Report every registry.* reference and whether it still resolves",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(args)
			if err != nil {
				return err
			}

			if jsonFlag {
				out, err := newWorkflow().Detect(cmd.Context(), opts)
				if err != nil {
					lastExitCode = controller.ExitFatal
					return err
				}
				result := domain.ToDetectionResult(out)
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
				if result.Diagnostics.BrokenCount > 0 {
					lastExitCode = controller.ExitBroken
				} else {
					lastExitCode = controller.ExitClean
				}
				return nil
			}

			c := newController(cmd, false)
			code, err := c.Detect(cmd.Context(), opts, reportPath)
			lastExitCode = code
			return err
		},
	}
	cmd.Flags().StringVar(&reportPath, "report", "", "persist the detection result as JSON to this path")
	return cmd
}
