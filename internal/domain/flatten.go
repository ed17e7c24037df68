package domain

import m "github.com/imp-refactor/imp-refactor/internal/model"

// FlattenRegistry flattens an evaluated registry tree into the set of
// every valid dotted path, rooted at name (e.g. "registry"). This is a
// thin wrapper over model.RegistryTree.Flatten that prefixes every
// result with the configured root identifier, since the tree itself has
// no notion of its own name.
func FlattenRegistry(name string, tree *m.RegistryTree) m.ValidPathSet {
	out := m.NewValidPathSet()
	if tree == nil {
		return out
	}
	for p := range tree.Flatten() {
		out.Add(m.NewDottedPath(name).Join(m.ParseDottedPath(p).Segments()...))
	}
	return out
}
