package executor

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/jmylchreest/swatch/internal/security"
)

// WriteFiles writes exporter output under dir and returns the written
// paths in name order. Every name is validated before anything is written.
// With dryRun set nothing touches the disk.
func WriteFiles(files map[string][]byte, dir string, dryRun bool) ([]string, error) {
	names := slices.Sorted(maps.Keys(files))
	for _, name := range names {
		if err := security.ValidateOutputName(name, dir); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		paths = append(paths, path)
		if dryRun {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - output directory
			return nil, fmt.Errorf("failed to create directory for %s: %w", name, err)
		}
		if err := os.WriteFile(path, files[name], 0o644); err != nil { // #nosec G306 - exported theme files are public
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	return paths, nil
}
