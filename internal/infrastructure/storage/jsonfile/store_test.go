package jsonfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "records.json"))

	in := []record{{ID: 1, Name: "alpha"}, {ID: 2, Name: "beta"}}
	require.NoError(t, store.Save(in))

	var out []record
	require.NoError(t, store.Load(&out))
	assert.Equal(t, in, out)
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.json"))

	var out []record
	err := store.Load(&out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path)

	var out []record
	err := store.Load(&out)

	var corrupt *CorruptError
	require.ErrorAs(t, err, &corrupt)
	assert.Equal(t, path, corrupt.Path)
}

func TestStoreLoadOrEmptyDegrades(t *testing.T) {
	dir := t.TempDir()

	missing := NewStore(filepath.Join(dir, "missing.json"))
	var out []record
	require.NoError(t, missing.LoadOrEmpty(&out))
	assert.Empty(t, out)

	corruptPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(corruptPath, []byte("???"), 0o644))
	corrupt := NewStore(corruptPath)
	require.NoError(t, corrupt.LoadOrEmpty(&out))
	assert.Empty(t, out)
}

func TestStoreSaveCreatesParentDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "deeper", "records.json"))
	require.NoError(t, store.Save([]record{{ID: 1}}))

	var out []record
	require.NoError(t, store.Load(&out))
	assert.Len(t, out, 1)
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "records.json"))

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save([]record{{ID: i}}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), ".tmp-"),
			"leftover temp file %s", entry.Name())
	}
}

func TestStoreSaveWritesSiblingBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	store := NewStore(path)

	require.NoError(t, store.Save([]record{{ID: 9, Name: "gamma"}}))

	bak, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	primary, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, primary, bak)
}

func TestStoreSaveReplacesWholeFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "records.json"))

	require.NoError(t, store.Save([]record{{ID: 1}, {ID: 2}, {ID: 3}}))
	require.NoError(t, store.Save([]record{{ID: 4}}))

	var out []record
	require.NoError(t, store.Load(&out))
	assert.Equal(t, []record{{ID: 4}}, out)
}

func TestStoreLoadSurvivesStaleTempFile(t *testing.T) {
	// A crash between temp write and rename leaves a temp sibling
	// behind; the primary must stay readable and the next save must
	// still land.
	dir := t.TempDir()
	path := filepath.Join(dir, "records.json")
	store := NewStore(path)

	require.NoError(t, store.Save([]record{{ID: 1, Name: "before"}}))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".tmp-records.json-123"), []byte(`[{"id":2`), 0o644))

	var out []record
	require.NoError(t, store.Load(&out))
	assert.Equal(t, []record{{ID: 1, Name: "before"}}, out)

	require.NoError(t, store.Save([]record{{ID: 3, Name: "after"}}))
	require.NoError(t, store.Load(&out))
	assert.Equal(t, []record{{ID: 3, Name: "after"}}, out)
}

func TestStoreSaveUnencodableValue(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "records.json"))

	err := store.Save(make(chan int))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))

	// Nothing should have been written.
	_, statErr := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(statErr))
}
