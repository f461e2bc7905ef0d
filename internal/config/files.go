package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveSources expands the configured source globs relative to root
// and returns the matching Verilog files, deduplicated and sorted.
// Exclude patterns and the extension filter are applied here so callers
// get the final file set.
func (c *Config) ResolveSources(root string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range c.Sources {
		matches, err := expandGlob(root, pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			if !c.HasVerilogExtension(m) || c.ShouldExcludeFile(m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// expandGlob expands a single glob pattern relative to root. Patterns
// containing ** walk the tree; plain patterns use filepath.Glob.
func expandGlob(root, pattern string) ([]string, error) {
	if strings.Contains(pattern, "**") {
		return expandDoubleStarGlob(root, pattern)
	}

	matches, err := filepath.Glob(filepath.Join(root, pattern))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, m)
	}
	return files, nil
}

// expandDoubleStarGlob walks the tree under root and matches the
// portion of the pattern after ** against each file's relative path.
func expandDoubleStarGlob(root, pattern string) ([]string, error) {
	idx := strings.Index(pattern, "**")
	prefix := filepath.Join(root, strings.TrimSuffix(pattern[:idx], "/"))
	suffix := strings.TrimPrefix(pattern[idx+2:], "/")

	if info, err := os.Stat(prefix); err != nil || !info.IsDir() {
		return nil, nil
	}

	var files []string
	err := filepath.WalkDir(prefix, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(prefix, path)
		if err != nil {
			return nil
		}
		if matchSuffix(suffix, rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// matchSuffix matches the tail of a ** pattern against a relative
// path. A suffix without separators matches the base name at any
// depth; otherwise it must match the whole relative path.
func matchSuffix(suffix, rel string) bool {
	if suffix == "" {
		return true
	}
	if !strings.Contains(suffix, "/") {
		matched, _ := filepath.Match(suffix, filepath.Base(rel))
		return matched
	}
	matched, _ := filepath.Match(suffix, filepath.ToSlash(rel))
	return matched
}

func lowerExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
