package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	content := "iterations: 10\nimages:\n  - busybox\nsettle_ms: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Iterations)
	assert.Equal(t, []string{"busybox"}, cfg.Images)
	assert.Equal(t, 500*time.Millisecond, cfg.Settle())

	// Untouched fields keep their defaults.
	assert.Equal(t, 100, cfg.WriteMB)
	assert.Equal(t, 500, cfg.MetadataFiles)
	assert.Equal(t, float64(50), cfg.CPUTargetPct)
}

func TestLoadRejectsInvalid(t *testing.T) {
	scenarios := map[string]struct {
		content string
	}{
		"test zero iterations": {
			content: "iterations: 0\n",
		},
		"test negative settle": {
			content: "settle_ms: -1\n",
		},
		"test cpu target over 100": {
			content: "cpu_target_pct: 150\n",
		},
		"test not yaml": {
			content: "{{{",
		},
	}

	for scenario, data := range scenarios {
		t.Run(scenario, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bench.yaml")
			require.NoError(t, os.WriteFile(path, []byte(data.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
