package domain

import m "github.com/imp-refactor/imp-refactor/internal/model"

// SuggestByLeaf looks for exactly one valid path whose final segment
// matches broken's final segment. It is the fallback suggestion
// strategy used once the rename map has failed to resolve a broken
// reference: if the registry now has a unique path ending in the same
// leaf name, that's almost certainly the moved location. Zero matches
// or more than one match are both treated as unsuggestable (ambiguous),
// since guessing wrong is worse than leaving the reference broken.
func SuggestByLeaf(valid m.ValidPathSet, broken m.DottedPath) (m.DottedPath, bool) {
	leaf := broken.Leaf()
	if leaf == "" {
		return m.DottedPath{}, false
	}

	var match m.DottedPath
	count := 0
	for p := range valid {
		dp := m.ParseDottedPath(p)
		if dp.Leaf() == leaf {
			count++
			match = dp
			if count > 1 {
				return m.DottedPath{}, false
			}
		}
	}

	if count != 1 {
		return m.DottedPath{}, false
	}
	return match, true
}
