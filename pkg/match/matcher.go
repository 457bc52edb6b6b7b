// Package match pairs reference photos with RAW files by base name.
package match

import (
	"github.com/sdejongh/rawpick/internal/platform"
	"github.com/sdejongh/rawpick/pkg/models"
)

// ExtensionSet is a case-insensitive set of allowed extensions
type ExtensionSet map[string]struct{}

// NewExtensionSet normalizes extensions into a set.
// Blank entries are ignored; configuration validation rejects them earlier.
func NewExtensionSet(extensions []string) ExtensionSet {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		ext = platform.NormalizeExtension(ext)
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	return set
}

// Contains reports whether ext (with or without dot, any case) is allowed
func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[platform.NormalizeExtension(ext)]
	return ok
}

// FindMatches maps each base name to the candidates sharing it whose
// extension is in allowed. Base names without a match are left out.
// Candidates are indexed once, so the cost is linear in both inputs.
func FindMatches(baseNames, candidates, allowed []string) *models.MatchMap {
	exts := NewExtensionSet(allowed)
	result := models.NewMatchMap()
	if len(baseNames) == 0 || len(exts) == 0 {
		return result
	}

	index := make(map[string][]string)
	for _, c := range candidates {
		stem, ext := platform.SplitName(c)
		if stem == "" || !exts.Contains(ext) {
			continue
		}
		key := models.FoldKey(stem)
		index[key] = append(index[key], c)
	}

	for _, name := range baseNames {
		if result.Has(name) {
			continue
		}
		for _, path := range index[models.FoldKey(name)] {
			result.Add(name, path)
		}
	}

	return result
}

// Unmatched returns the base names that have no entry in matches, in input order
func Unmatched(baseNames []string, matches *models.MatchMap) []string {
	var missing []string
	for _, name := range baseNames {
		if !matches.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
