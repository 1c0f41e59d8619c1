package cli

import (
	"fmt"

	"github.com/opscart/dockerbench/internal/operations"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [flags]",
		Short:   "Run all measurement dimensions against the local Docker daemon",
		Example: "  dockerbench run --platform docker-overlay2 --iterations 50",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			platform, _ := cmd.Flags().GetString("platform")
			iterations, _ := cmd.Flags().GetInt("iterations")
			output, _ := cmd.Flags().GetString("output")
			configFile, _ := cmd.Flags().GetString("config")

			logFile, _ := cmd.Root().Flags().GetString("log")
			debug, _ := cmd.Root().Flags().GetBool("debug")

			if err := operations.Run(&operations.RunOpts{
				Platform:   platform,
				Iterations: iterations,
				OutputDir:  output,
				ConfigFile: configFile,
				LogFile:    logFile,
				Debug:      debug,
			}); err != nil {
				return fmt.Errorf("run: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringP("platform", "p", "", "Label identifying the platform under test")
	cmd.Flags().IntP("iterations", "n", 0, "Trials per dimension (overrides config)")
	cmd.Flags().StringP("output", "o", "results", "Parent directory for run output")
	cmd.Flags().StringP("config", "c", "", "Path to YAML parameter file")

	cmd.MarkFlagRequired("platform")

	return cmd
}
