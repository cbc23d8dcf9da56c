// Package scanner discovers Maven descriptors under a project tree.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pomlint/pomlint/internal/domain"
)

var skipDirs = map[string]bool{
	"target":       true,
	"node_modules": true,
	".git":         true,
	".idea":        true,
	"vendor":       true,
	"bin":          true,
}

// FileScanner implements domain.DescriptorScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner { return &FileScanner{} }

// Discover returns descriptor paths under root. A root that is itself a
// descriptor file yields exactly that path. Without recursion only the root
// directory's own descriptor is considered. Results come back parent-first:
// shallower paths sort before deeper ones, a best-effort heuristic rather
// than a topological sort of the parent graph.
func (s *FileScanner) Discover(root string, recursive bool, excludes ...string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	if !info.IsDir() {
		return []string{root}, nil
	}

	if !recursive {
		single := filepath.Join(root, domain.DescriptorFileName)
		if _, err := os.Stat(single); err != nil {
			return nil, fmt.Errorf("no %s found in %s", domain.DescriptorFileName, root)
		}
		return []string{single}, nil
	}

	extraSkip := make(map[string]bool, len(excludes))
	for _, e := range excludes {
		extraSkip[strings.TrimSuffix(e, "/")] = true
	}

	var found []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (skipDirs[name] || extraSkip[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == domain.DescriptorFileName {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sortParentFirst(found)
	return found, nil
}

// sortParentFirst orders paths by separator depth, then lexically. Depth is
// a proxy for the parent→child relationship and can misorder irregular
// layouts; callers treat the ordering as presentation-only.
func sortParentFirst(paths []string) {
	sort.SliceStable(paths, func(i, j int) bool {
		di := strings.Count(paths[i], string(filepath.Separator))
		dj := strings.Count(paths[j], string(filepath.Separator))
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})
}
