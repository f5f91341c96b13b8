package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/abdul-hamid-achik/pagespec/packages/core/parser"
)

// CollectSuiteFiles expands paths into suite files. Directories are walked
// recursively for *.pagespec.yaml and *.pagespec.yml; explicit files are
// taken as given. The result is sorted and free of duplicates.
func CollectSuiteFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && (d.Name() == "node_modules" || d.Name()[0] == '.') {
					return filepath.SkipDir
				}
				return nil
			}
			if parser.IsSuiteFile(p) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
