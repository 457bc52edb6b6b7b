package match

import (
	"github.com/sdejongh/rawpick/internal/platform"
	"github.com/sdejongh/rawpick/pkg/models"
)

// ExtractBaseNames returns the distinct base names of paths.
// Names compare case-insensitively; the first-seen casing is kept and the
// result is in order of first appearance. Empty base names are dropped.
func ExtractBaseNames(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	names := make([]string, 0, len(paths))

	for _, p := range paths {
		name := platform.Stem(p)
		if name == "" {
			continue
		}
		key := models.FoldKey(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}

	return names
}
