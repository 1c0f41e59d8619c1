package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunCmd(t *testing.T) {
	cmd := runCmd()

	assert.Equal(t, "run [flags]", cmd.Use)

	platformFlag := cmd.Flag("platform")
	assert.NotNil(t, platformFlag)
	assert.Equal(t, "p", platformFlag.Shorthand)

	iterationsFlag := cmd.Flag("iterations")
	assert.NotNil(t, iterationsFlag)
	assert.Equal(t, "n", iterationsFlag.Shorthand)

	outputFlag := cmd.Flag("output")
	assert.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.Equal(t, "results", outputFlag.DefValue)

	configFlag := cmd.Flag("config")
	assert.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
}

func TestRunCmdRequiresPlatform(t *testing.T) {
	cmd := runCmd()
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
