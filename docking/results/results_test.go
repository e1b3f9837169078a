package results_test

import (
	"os"
	"path"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/rules_plants/docking/results"
)

func touch(tb testing.TB, dir string, names ...string) {
	tb.Helper()

	for _, na := range names {
		require.NoError(
			tb,
			os.WriteFile(filepath.Join(dir, na), nil, 0o600),
		)
	}
}

func TestFindByPattern_matches_entries_only(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "docked_entry_1.mol2", "docked_entry_2.mol2", "unrelated.txt")

	seq, err := results.Collector{Dir: dir}.FindByPattern(results.DefaultPattern)
	require.NoError(t, err)

	assert.ElementsMatch(
		t,
		[]string{
			filepath.Join(dir, "docked_entry_1.mol2"),
			filepath.Join(dir, "docked_entry_2.mol2"),
		},
		slices.Collect(seq),
	)
}

func TestFindByPattern_restartable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "docked_entry_1.mol2")

	seq, err := results.Collector{Dir: dir}.FindByPattern(results.DefaultPattern)
	require.NoError(t, err)

	assert.Len(t, slices.Collect(seq), 1)
	assert.Len(t, slices.Collect(seq), 1)

	touch(t, dir, "docked_entry_2.mol2")
	assert.Len(t, slices.Collect(seq), 2)
}

func TestFindByPattern_early_stop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "a_entry_1.mol2", "a_entry_2.mol2", "a_entry_3.mol2")

	seq, err := results.Collector{Dir: dir}.FindByPattern(results.DefaultPattern)
	require.NoError(t, err)

	count := 0

	for range seq {
		count++

		break
	}

	assert.Equal(t, 1, count)
}

func TestFindByPattern_empty_is_valid(t *testing.T) {
	t.Parallel()

	seq, err := results.Collector{Dir: t.TempDir()}.FindByPattern(results.DefaultPattern)

	require.NoError(t, err)
	assert.Empty(t, slices.Collect(seq))
}

func TestFindByPattern_bad_pattern(t *testing.T) {
	t.Parallel()

	_, err := results.Collector{}.FindByPattern("[")

	require.ErrorIs(t, err, path.ErrBadPattern)
}

func TestFindByPattern_dir_with_glob_characters(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "run[1]")
	require.NoError(t, os.Mkdir(dir, 0o755))
	touch(t, dir, "docked_entry_1.mol2", "docked_entry_2.mol2", "unrelated.txt")

	seq, err := results.Collector{Dir: dir}.FindByPattern(results.DefaultPattern)
	require.NoError(t, err)

	assert.ElementsMatch(
		t,
		[]string{
			filepath.Join(dir, "docked_entry_1.mol2"),
			filepath.Join(dir, "docked_entry_2.mol2"),
		},
		slices.Collect(seq),
	)
}
