package operations

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/opscart/dockerbench/internal/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeStartupData writes a plausible 01-startup-latency.csv into dir,
// with every value offset by base so two platforms can differ.
func writeStartupData(t *testing.T, dir string, base float64) {
	t.Helper()

	store, err := sample.NewStore(
		filepath.Join(dir, "01-startup-latency.csv"),
		[]string{"iteration", "image", "mode", "startup_ms", "valid"},
	)
	require.NoError(t, err)
	defer store.Close()

	for i := 1; i <= 35; i++ {
		jitter := float64(i%7) * 3
		require.NoError(t, store.Append(
			sample.New(i, sample.Valid(base+120+jitter), "alpine", "cold")))
		require.NoError(t, store.Append(
			sample.New(i, sample.Valid(base+40+jitter), "alpine", "warm")))
	}
}

func TestAnalyzeSingleRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docker-overlay2")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeStartupData(t, dir, 0)

	var out bytes.Buffer
	require.NoError(t, Analyze(&AnalyzeOpts{Dirs: []string{dir}, Out: &out}))

	text := out.String()
	assert.Contains(t, text, "startup-latency (ms)")
	assert.Contains(t, text, "docker-overlay2 / alpine/cold")
	assert.Contains(t, text, "docker-overlay2 / alpine/warm")
	assert.Contains(t, text, "Mean")
	assert.Contains(t, text, "95% CI")

	// The other six dimensions produced no files.
	assert.Contains(t, text, "[SKIP]")
	assert.Contains(t, text, "no data file")

	// One platform means nothing to compare.
	assert.NotContains(t, text, "cross-platform")
}

func TestAnalyzeTwoRuns(t *testing.T) {
	root := t.TempDir()
	fast := filepath.Join(root, "native")
	slow := filepath.Join(root, "virtualized")
	require.NoError(t, os.MkdirAll(fast, 0o755))
	require.NoError(t, os.MkdirAll(slow, 0o755))

	writeStartupData(t, fast, 0)
	writeStartupData(t, slow, 300)

	var out bytes.Buffer
	require.NoError(t, Analyze(&AnalyzeOpts{Dirs: []string{fast, slow}, Out: &out}))

	text := out.String()
	assert.Contains(t, text, "cross-platform: alpine/cold")
	assert.Contains(t, text, "cross-platform: alpine/warm")
	assert.Contains(t, text, "native vs virtualized")
	assert.Contains(t, text, "significant: YES")
	assert.Contains(t, text, "Cliff's")
	assert.NotContains(t, text, "\\begin{table}")
}

func TestAnalyzeLatex(t *testing.T) {
	root := t.TempDir()
	a := filepath.Join(root, "a")
	b := filepath.Join(root, "b")
	require.NoError(t, os.MkdirAll(a, 0o755))
	require.NoError(t, os.MkdirAll(b, 0o755))

	writeStartupData(t, a, 0)
	writeStartupData(t, b, 50)

	var out bytes.Buffer
	require.NoError(t, Analyze(&AnalyzeOpts{Dirs: []string{a, b}, Latex: true, Out: &out}))

	text := out.String()
	assert.Contains(t, text, "\\begin{table}")
	assert.Contains(t, text, "\\caption{startup-latency (ms), alpine/cold}")
	assert.Contains(t, text, "\\label{tab:startup-latency}")
}

func TestAnalyzeMissingDirectory(t *testing.T) {
	var out bytes.Buffer
	err := Analyze(&AnalyzeOpts{
		Dirs: []string{filepath.Join(t.TempDir(), "nope")},
		Out:  &out,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run directory")
}

func TestAnalyzeNoDirectories(t *testing.T) {
	require.Error(t, Analyze(&AnalyzeOpts{}))
}
