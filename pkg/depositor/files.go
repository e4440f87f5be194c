package depositor

import (
	"fmt"
	"path/filepath"
)

// CollectFiles expands glob patterns into the name→path map the upload
// endpoint takes, keyed by base name. A pattern matching nothing is an
// error, as is two matches sharing a base name (the server would silently
// keep only one).
func CollectFiles(patterns []string) (map[string]string, error) {
	files := make(map[string]string, len(patterns))
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		for _, match := range matches {
			name := filepath.Base(match)
			if existing, ok := files[name]; ok && existing != match {
				return nil, fmt.Errorf("duplicate file name %q: %s and %s", name, existing, match)
			}
			files[name] = match
		}
	}
	return files, nil
}
