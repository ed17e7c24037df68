package domain

import m "github.com/imp-refactor/imp-refactor/internal/model"

// ApplyRenameMap rewrites path by substituting the longest matching
// rename entry's Old prefix with its New prefix. When more than one
// entry's Old is a prefix of path, the longest prefix wins; ties are
// broken by declaration order (the earlier-declared entry wins). If no
// entry matches, path is returned unchanged and ok is false.
func ApplyRenameMap(renames m.RenameMap, path m.DottedPath) (result m.DottedPath, ok bool) {
	bestLen := -1
	best := m.RenameEntry{}

	for _, entry := range renames.Entries() {
		if !path.HasPrefix(entry.Old) {
			continue
		}
		if entry.Old.Len() > bestLen {
			bestLen = entry.Old.Len()
			best = entry
			ok = true
		}
	}

	if !ok {
		return path, false
	}
	return path.WithPrefixReplaced(best.Old, best.New), true
}
