// Package fsutil locates dataset files on disk.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DatasetExtension is the suffix of raw dataset files.
const DatasetExtension = ".txt"

// FindFilesByExtension recursively searches rootPath for files ending with
// extension, in lexical walk order.
func FindFilesByExtension(rootPath string, extension string) ([]string, error) {
	if extension == "" {
		return nil, fmt.Errorf("extension must not be empty")
	}

	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ResolveDatasets expands path into the dataset files it names: the file
// itself, or every dataset file below a directory.
func ResolveDatasets(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	if info.IsDir() {
		return FindFilesByExtension(path, DatasetExtension)
	}
	if !strings.HasSuffix(info.Name(), DatasetExtension) {
		return nil, fmt.Errorf("%s: not a %s dataset file", path, DatasetExtension)
	}
	return []string{path}, nil
}
