package cli

import (
	"fmt"

	"github.com/opscart/dockerbench/internal/operations"
	"github.com/spf13/cobra"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "analyze [flags] RUN_DIR [RUN_DIR...]",
		Short:   "Statistically analyze one or more run directories",
		Example: "  dockerbench analyze results/docker-overlay2 results/docker-fuse",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			latex, _ := cmd.Flags().GetBool("latex")

			if err := operations.Analyze(&operations.AnalyzeOpts{
				Dirs:  args,
				Latex: latex,
				Out:   cmd.OutOrStdout(),
			}); err != nil {
				return fmt.Errorf("analyze: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().BoolP("latex", "", false, "Also emit cross-platform tables as LaTeX")

	return cmd
}
