package cli

import (
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dockerbench",
		Short:        "Container runtime measurement harness.",
		Long:         "Measures container runtime overhead across startup, storage, CPU throttling and namespace dimensions, and analyzes runs statistically.",
		Version:      "0.1.0",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		runCmd(),
		analyzeCmd(),
	)

	cmd.PersistentFlags().StringP(
		"log",
		"l",
		"",
		"Destination to write logs (default is stderr)",
	)

	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")

	cmd.CompletionOptions.HiddenDefaultCmd = true

	return cmd
}
