package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "../importer/testdata/single.txt"

func TestDatasetService_Load(t *testing.T) {
	rec := &recordingObserver{}
	svc := NewDatasetService(rec)

	loaded, err := svc.Load(context.Background(), samplePath, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "single.txt", loaded.Dataset.Name)
	assert.Equal(t, 5, loaded.Dataset.Info.JobCount)
	assert.Len(t, loaded.Dataset.Projects, 1)
	assert.Empty(t, loaded.SavedTo)

	ev := rec.last()
	assert.Equal(t, "load-dataset", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 5, ev.Fields["jobs"])
}

func TestDatasetService_LoadSavesJSON(t *testing.T) {
	dir := t.TempDir()
	loaded, err := NewDatasetService().Load(context.Background(), samplePath, LoadOptions{Save: true, SaveDir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "single.txt.json"), loaded.SavedTo)
	f, err := os.Open(loaded.SavedTo)
	require.NoError(t, err)
	defer f.Close()

	back, err := importer.ReadJSON(f)
	require.NoError(t, err)
	assert.Equal(t, loaded.Sections.Names(), back.Names())
}

func TestDatasetService_LoadSequentialLayout(t *testing.T) {
	loaded, err := NewDatasetService().Load(context.Background(), samplePath, LoadOptions{Layout: domain.LayoutSequential})
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Dataset.JobCount())
}

func TestDatasetService_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o644))
	partial := filepath.Join(dir, "partial.txt")
	require.NoError(t, os.WriteFile(partial, []byte("***\ngeneral information:\nprojects: 1\n"), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "nope.txt"), importer.ErrInput},
		{"empty file", empty, importer.ErrInput},
		{"missing sections", partial, importer.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingObserver{}
			_, err := NewDatasetService(rec).Load(context.Background(), tt.path, LoadOptions{})
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, rec.last().Success)
		})
	}
}
