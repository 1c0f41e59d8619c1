package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCmd(t *testing.T) {
	cmd := analyzeCmd()

	assert.Equal(t, "analyze [flags] RUN_DIR [RUN_DIR...]", cmd.Use)

	latexFlag := cmd.Flag("latex")
	assert.NotNil(t, latexFlag)
	assert.Equal(t, "false", latexFlag.DefValue)
}

func TestAnalyzeCmdRequiresDirectory(t *testing.T) {
	cmd := analyzeCmd()
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}

func TestRootCmdWiresSubcommands(t *testing.T) {
	root := RootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Contains(t, names, "run")
	assert.Contains(t, names, "analyze")

	assert.NotNil(t, root.PersistentFlags().Lookup("log"))
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
}
