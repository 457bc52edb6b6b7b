package models

import "strings"

// FoldKey returns the key used for case-insensitive base name comparison
func FoldKey(name string) string {
	return strings.ToLower(name)
}

// MatchMap maps base names to the RAW files found for them.
// Keys compare case-insensitively and iterate in insertion order.
type MatchMap struct {
	keys    []string
	entries map[string][]string
}

// NewMatchMap creates an empty match map
func NewMatchMap() *MatchMap {
	return &MatchMap{entries: make(map[string][]string)}
}

// Add appends a file to the entry for baseName, creating it if needed.
// The casing of the first Add for a key is the one reported by Keys.
func (m *MatchMap) Add(baseName, path string) {
	k := FoldKey(baseName)
	if _, ok := m.entries[k]; !ok {
		m.keys = append(m.keys, baseName)
	}
	m.entries[k] = append(m.entries[k], path)
}

// Get returns the files matched for baseName
func (m *MatchMap) Get(baseName string) ([]string, bool) {
	files, ok := m.entries[FoldKey(baseName)]
	return files, ok
}

// Has reports whether baseName has at least one match
func (m *MatchMap) Has(baseName string) bool {
	_, ok := m.entries[FoldKey(baseName)]
	return ok
}

// Keys returns the base names in insertion order
func (m *MatchMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of base names with matches
func (m *MatchMap) Len() int {
	return len(m.keys)
}

// FileCount returns the total number of matched files
func (m *MatchMap) FileCount() int {
	n := 0
	for _, files := range m.entries {
		n += len(files)
	}
	return n
}

// Each calls fn for every base name in order with its files
func (m *MatchMap) Each(fn func(baseName string, files []string)) {
	for _, k := range m.keys {
		fn(k, m.entries[FoldKey(k)])
	}
}
