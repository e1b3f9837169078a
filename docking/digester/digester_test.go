package digester_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/rules_plants/docking/digester"
)

func TestSum_known_value(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "plants.conf")
	require.NoError(t, os.WriteFile(pa, []byte("hello"), 0o600))

	got, err := digester.Sum(pa)

	require.NoError(t, err)
	assert.Equal(
		t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		got,
	)
}

func TestSum_missing_file(t *testing.T) {
	t.Parallel()

	_, err := digester.Sum("/nonexistent/plants.conf")

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_then_Verify(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "plants.conf")
	require.NoError(t, os.WriteFile(pa, []byte("radius 8\n"), 0o600))

	digest, err := digester.Save(pa)
	require.NoError(t, err)

	stored, err := os.ReadFile(digester.Sidecar(pa)) //nolint:gosec // test file
	require.NoError(t, err)
	assert.Equal(t, digest, string(stored))

	require.NoError(t, digester.Verify(pa))
}

func TestVerify_detects_change(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "plants.conf")
	require.NoError(t, os.WriteFile(pa, []byte("radius 8\n"), 0o600))

	_, err := digester.Save(pa)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(pa, []byte("radius 9\n"), 0o600))

	require.ErrorIs(t, digester.Verify(pa), digester.ErrMismatch)
}

func TestVerify_without_sidecar(t *testing.T) {
	t.Parallel()

	pa := filepath.Join(t.TempDir(), "plants.conf")
	require.NoError(t, os.WriteFile(pa, []byte("radius 8\n"), 0o600))

	err := digester.Verify(pa)

	require.ErrorIs(t, err, os.ErrNotExist)
}
