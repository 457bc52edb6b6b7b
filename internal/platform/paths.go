package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath returns an absolute, cleaned form of path.
// If the path cannot be made absolute it is only cleaned.
func NormalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// SplitName splits the final element of path into its stem and extension.
// The extension is returned without the dot; only the last dot counts, so
// "IMG_0001.CR2.bak" yields ("IMG_0001.CR2", "bak").
func SplitName(path string) (stem, ext string) {
	name := filepath.Base(path)
	dot := filepath.Ext(name)
	return strings.TrimSuffix(name, dot), strings.TrimPrefix(dot, ".")
}

// Stem returns the file name without directory and final extension
func Stem(path string) string {
	stem, _ := SplitName(path)
	return stem
}

// NormalizeExtension trims, strips one leading dot and lower-cases ext
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	ext = strings.TrimPrefix(ext, ".")
	return strings.ToLower(ext)
}

// IsWithin reports whether child is parent or lies below it
func IsWithin(parent, child string) bool {
	parent = NormalizePath(parent)
	child = NormalizePath(child)
	if samePath(parent, child) {
		return true
	}
	prefix := parent
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if runtime.GOOS == "windows" {
		return strings.HasPrefix(strings.ToLower(child), strings.ToLower(prefix))
	}
	return strings.HasPrefix(child, prefix)
}

func samePath(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// ValidatePath checks if a path is usable as a command-line directory argument
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return &PathError{Path: path, Message: "path is empty"}
	}

	if runtime.GOOS == "windows" {
		invalidChars := []string{"<", ">", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(path, char) {
				return &PathError{Path: path, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
