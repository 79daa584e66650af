package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.txt"))
	touch(t, filepath.Join(root, "a.txt"))
	touch(t, filepath.Join(root, "notes.md"))
	touch(t, filepath.Join(root, "nested", "c.txt"))
	touch(t, filepath.Join(root, "nested", "c.txt.json"))

	files, err := FindFilesByExtension(root, ".txt")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "nested", "c.txt"),
	}, files)
}

func TestFindFilesByExtension_EmptyExtension(t *testing.T) {
	_, err := FindFilesByExtension(t.TempDir(), "")
	assert.Error(t, err)
}

func TestResolveDatasets(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "one.txt")
	touch(t, file)
	other := filepath.Join(root, "one.json")
	touch(t, other)

	got, err := ResolveDatasets(file)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, got)

	got, err = ResolveDatasets(root)
	require.NoError(t, err)
	assert.Equal(t, []string{file}, got)

	_, err = ResolveDatasets(other)
	assert.ErrorContains(t, err, "not a .txt dataset file")

	_, err = ResolveDatasets(filepath.Join(root, "missing"))
	assert.ErrorContains(t, err, "invalid path")
}
