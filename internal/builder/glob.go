package builder

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ExpandGlob expands a glob pattern relative to baseDir, supporting ** for
// recursive matching. Matched directories contribute every file beneath them.
// Returned paths are relative to baseDir.
func ExpandGlob(baseDir, pattern string) ([]string, error) {
	pattern = filepath.FromSlash(pattern)

	if strings.Contains(pattern, "**") {
		return expandRecursive(baseDir, pattern)
	}

	matches, err := filepath.Glob(filepath.Join(baseDir, pattern))
	if err != nil {
		return nil, err
	}

	// If no matches and no glob chars, try as direct path
	if len(matches) == 0 && !containsGlobChars(pattern) {
		fullPath := filepath.Join(baseDir, pattern)
		if _, err := os.Stat(fullPath); err == nil {
			matches = []string{fullPath}
		}
	}

	var results []string
	for _, match := range matches {
		results = append(results, walkFiles(baseDir, match)...)
	}
	return results, nil
}

// expandRecursive handles "prefix/**/suffix" patterns. The suffix is matched
// against the file name first, then against the path below prefix.
func expandRecursive(baseDir, pattern string) ([]string, error) {
	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], string(filepath.Separator))
	suffix := strings.TrimPrefix(parts[1], string(filepath.Separator))

	startDir := baseDir
	if prefix != "" {
		startDir = filepath.Join(baseDir, prefix)
	}
	if _, err := os.Stat(startDir); err != nil {
		return nil, nil
	}

	var results []string
	err := filepath.WalkDir(startDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil // Skip errors and directories
		}
		if suffix != "" {
			matched, _ := filepath.Match(suffix, d.Name())
			if !matched {
				relFromStart, _ := filepath.Rel(startDir, path)
				matched, _ = filepath.Match(suffix, relFromStart)
			}
			if !matched {
				return nil
			}
		}
		if rel, err := filepath.Rel(baseDir, path); err == nil {
			results = append(results, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// walkFiles lists root itself if it is a file, or every file beneath it.
func walkFiles(baseDir, root string) []string {
	var results []string
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(baseDir, path); err == nil {
			results = append(results, rel)
		}
		return nil
	})
	return results
}

// containsGlobChars checks if a pattern contains glob special characters
func containsGlobChars(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[")
}

// IsExcluded checks if a path matches any of the exclude patterns
func IsExcluded(path string, excludes []string) bool {
	for _, pattern := range excludes {
		if matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchPattern checks if a path matches a pattern (supports * and **)
func matchPattern(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		parts := strings.SplitN(pattern, "**", 2)
		prefix := strings.TrimSuffix(parts[0], "/")
		suffix := strings.TrimPrefix(parts[1], "/")

		if prefix != "" && path != prefix && !strings.HasPrefix(path, prefix+"/") {
			// Try matching prefix as glob on the leading segments
			segments := strings.Count(prefix, "/") + 1
			head := strings.SplitN(path, "/", segments+1)
			if len(head) <= segments {
				return false
			}
			if matched, _ := filepath.Match(prefix, strings.Join(head[:segments], "/")); !matched {
				return false
			}
		}

		if suffix == "" {
			return true
		}
		if matched, _ := filepath.Match(suffix, filepath.Base(path)); matched {
			return true
		}
		return strings.HasSuffix(path, "/"+suffix) || path == suffix
	}

	if matched, _ := filepath.Match(pattern, path); matched {
		return true
	}

	// Also try matching against just the filename
	matched, _ := filepath.Match(pattern, filepath.Base(path))
	return matched
}

// ExpandIncludes expands all include patterns and returns unique file paths
// in the order the patterns produce them
func ExpandIncludes(baseDir string, includes []string, excludes []string) ([]string, error) {
	seen := make(map[string]bool)
	var results []string

	for _, pattern := range includes {
		expanded, err := ExpandGlob(baseDir, pattern)
		if err != nil {
			return nil, err
		}

		for _, path := range expanded {
			if IsExcluded(path, excludes) || seen[path] {
				continue
			}
			seen[path] = true
			results = append(results, path)
		}
	}

	return results, nil
}
