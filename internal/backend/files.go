package backend

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// CollectFiles expands paths and glob patterns into upload blobs. Duplicate
// paths are sent once. Entries that match nothing or cannot be read are
// returned as a joined error alongside whatever did resolve.
func CollectFiles(patterns []string) ([]UploadFile, error) {
	var (
		files []UploadFile
		errs  []error
		seen  = make(map[string]struct{})
	)
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", pattern, err))
			continue
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, path := range matches {
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			if _, dup := seen[abs]; dup {
				continue
			}
			seen[abs] = struct{}{}
			f, err := FileFromPath(path)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			files = append(files, f)
		}
	}
	return files, errors.Join(errs...)
}
