package match

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sdejongh/rawpick/pkg/storage"
)

// shouldExclude checks if a path should be excluded based on the given patterns.
// Patterns are doublestar globs:
//   - Simple globs match the file name: *.tmp, ._*
//   - Directory patterns end with /: .thumbnails/, @eaDir/
//   - Path patterns match the slash-separated relative path: 2019/**, **/rejects/*
func shouldExclude(relativePath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalizedPath := filepath.ToSlash(relativePath)
	baseName := path.Base(normalizedPath)

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		normalizedPattern := filepath.ToSlash(pattern)

		if strings.HasSuffix(normalizedPattern, "/") {
			dir := strings.TrimSuffix(normalizedPattern, "/")
			if matchAny(normalizedPath, dir+"/**", "**/"+dir+"/**") {
				return true
			}
			continue
		}

		if !strings.Contains(normalizedPattern, "/") {
			if matchAny(baseName, normalizedPattern) {
				return true
			}
			continue
		}

		if matchAny(normalizedPath, normalizedPattern, "**/"+strings.TrimPrefix(normalizedPattern, "**/")) {
			return true
		}
	}

	return false
}

func matchAny(name string, patterns ...string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// ValidatePatterns reports the first malformed exclude pattern
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(strings.TrimSuffix(filepath.ToSlash(p), "/")) {
			return fmt.Errorf("invalid exclude pattern: %q", p)
		}
	}
	return nil
}

// Filter drops files whose relative path matches an exclude pattern.
// It returns the kept files and the number excluded.
func Filter(files []storage.FileInfo, patterns []string) ([]storage.FileInfo, int) {
	if len(patterns) == 0 {
		return files, 0
	}

	kept := make([]storage.FileInfo, 0, len(files))
	for _, f := range files {
		if shouldExclude(f.RelativePath, patterns) {
			continue
		}
		kept = append(kept, f)
	}
	return kept, len(files) - len(kept)
}
