package stager_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/rules_plants/docking/stager"
)

func TestCopy_stages_file(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "protein.mol2")
	require.NoError(t, os.WriteFile(src, []byte("receptor\n"), 0o600))

	dst := t.TempDir()

	require.NoError(t, stager.Local{}.Copy(src, dst))

	got, err := os.ReadFile(filepath.Join(dst, "protein.mol2")) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "receptor\n", string(got))
}

func TestCopy_same_file_is_noop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "protein.mol2")
	require.NoError(t, os.WriteFile(src, []byte("receptor\n"), 0o600))

	require.NoError(t, stager.Local{}.Copy(src, dir))

	got, err := os.ReadFile(src) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, "receptor\n", string(got))
}

func TestCopy_missing_source(t *testing.T) {
	t.Parallel()

	err := stager.Local{}.Copy("/nonexistent/protein.mol2", t.TempDir())

	var se *stager.StagingError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "/nonexistent/protein.mol2", se.Src)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopy_missing_destination(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "protein.mol2")
	require.NoError(t, os.WriteFile(src, []byte("receptor\n"), 0o600))

	err := stager.Local{}.Copy(src, "/nonexistent/dir")

	var se *stager.StagingError
	require.ErrorAs(t, err, &se)
}
