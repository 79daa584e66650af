package service

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/importer"
)

type LoadOptions struct {
	Layout domain.RowLayout
	// Save writes the parsed sections as JSON before the dataset is built.
	Save bool
	// SaveDir defaults to the source file's directory.
	SaveDir string
}

type LoadedDataset struct {
	Path     string
	Sections *importer.Sections
	Dataset  *domain.Dataset
	// SavedTo is the JSON path when Save was requested.
	SavedTo string
}

type datasetService struct {
	observer UseCaseObserver
}

func NewDatasetService(observers ...UseCaseObserver) DatasetService {
	return &datasetService{observer: useCaseObserverOrNoop(observers)}
}

func (s *datasetService) Load(ctx context.Context, path string, opts LoadOptions) (loaded *LoadedDataset, err error) {
	fields := map[string]any{"path": path, "layout": string(opts.Layout)}
	defer observe(ctx, s.observer, "load-dataset", fields, &err)()

	sections, err := importer.ReadFile(path)
	if err != nil {
		return nil, err
	}
	loaded = &LoadedDataset{Path: path, Sections: sections}

	// The parsed form is saved before building so a file that fails
	// validation can still be inspected.
	if opts.Save {
		dir := opts.SaveDir
		if dir == "" {
			dir = filepath.Dir(path)
		}
		loaded.SavedTo, err = importer.SaveJSON(dir, path, sections)
		if err != nil {
			return nil, fmt.Errorf("saving parsed sections: %w", err)
		}
		fields["saved_to"] = loaded.SavedTo
	}

	loaded.Dataset, err = importer.BuildDataset(filepath.Base(path), sections, importer.BuildOptions{Layout: opts.Layout})
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", path, err)
	}
	fields["projects"] = loaded.Dataset.Info.ProjectCount
	fields["jobs"] = loaded.Dataset.Info.JobCount
	return loaded, nil
}
