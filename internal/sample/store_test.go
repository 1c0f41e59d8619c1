package sample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreRejectsBadSchema(t *testing.T) {
	scenarios := map[string]struct {
		columns []string
	}{
		"test too few columns": {
			columns: []string{"iteration", "valid"},
		},
		"test missing iteration column": {
			columns: []string{"image", "startup_ms", "valid"},
		},
		"test missing valid column": {
			columns: []string{"iteration", "image", "startup_ms"},
		},
	}

	for scenario, data := range scenarios {
		t.Run(scenario, func(t *testing.T) {
			_, err := NewStore(filepath.Join(t.TempDir(), "d.csv"), data.columns)
			assert.Error(t, err)
		})
	}
}

func TestStoreAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01-startup-latency.csv")

	store, err := NewStore(path, []string{"iteration", "image", "mode", "startup_ms", "valid"})
	require.NoError(t, err)

	require.NoError(t, store.Append(New(1, Valid(312.5), "alpine", "cold")))
	require.NoError(t, store.Append(New(1, Valid(54.25), "alpine", "warm")))
	require.NoError(t, store.Append(New(2, Invalid("docker run failed"), "alpine", "cold")))
	require.NoError(t, store.Append(New(2, Valid(57), "alpine", "warm")))
	require.NoError(t, store.Close())

	ds, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "startup_ms", ds.ValueColumn())
	assert.Equal(t, []string{"alpine/cold", "alpine/warm"}, ds.GroupKeys())

	cold := ds.Groups["alpine/cold"]
	assert.Equal(t, 2, cold.Total)
	assert.Equal(t, 1, cold.Invalid)
	assert.Equal(t, []float64{312.5}, cold.Values)

	warm := ds.Groups["alpine/warm"]
	assert.Equal(t, 2, warm.Total)
	assert.Equal(t, 0, warm.Invalid)
	assert.Equal(t, []float64{54.25, 57}, warm.Values)
}

func TestStoreAppendRejectsLabelMismatch(t *testing.T) {
	store, err := NewStore(
		filepath.Join(t.TempDir(), "d.csv"),
		[]string{"iteration", "mode", "duration_ms", "valid"},
	)
	require.NoError(t, err)
	defer store.Close()

	assert.Error(t, store.Append(New(1, Valid(1), "volume", "extra")))
	assert.Error(t, store.Append(New(1, Valid(1))))
}

func TestStoreRowsAreWholeAfterEveryAppend(t *testing.T) {
	// An interrupted run must leave only complete rows on disk, so every
	// append is flushed through to the file.
	path := filepath.Join(t.TempDir(), "d.csv")

	store, err := NewStore(path, []string{"iteration", "copyup_ms", "valid"})
	require.NoError(t, err)
	defer store.Close()

	for i := 1; i <= 20; i++ {
		require.NoError(t, store.Append(New(i, Valid(float64(i)))))
	}

	// Read back without closing, as if the process had been interrupted.
	b, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	assert.Len(t, lines, 21) // header + 20 rows
	assert.Equal(t, "20,20.000,true", lines[20])
}

func TestLoadRejectsDuplicateIteration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.csv")
	content := "iteration,mode,duration_ms,valid\n" +
		"1,volume,10.000,true\n" +
		"1,volume,11.000,true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "appears twice")
}

func TestLoadAllowsSameIterationAcrossGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.csv")
	content := "iteration,mode,duration_ms,valid\n" +
		"1,volume,10.000,true\n" +
		"1,overlayfs,12.000,true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, ds.Groups, 2)
}

func TestMeasurementConstructors(t *testing.T) {
	v := Valid(42.5)
	assert.True(t, v.Valid)
	assert.Equal(t, 42.5, v.Value)

	inv := Invalid("image not present")
	assert.False(t, inv.Valid)
	assert.Zero(t, inv.Value)
	assert.Equal(t, "image not present", inv.Reason)
}
