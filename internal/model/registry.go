package model

import "encoding/json"

// RegistryTree is a tagged union mirroring the evaluated registry
// attribute set: either a Leaf (an opaque, non-traversable value) or an
// Inner node with named children. A node that carries a "__functor" key
// is treated as a Leaf even though it has children, matching Nix's own
// convention for making a callable attribute set behave as a terminal.
type RegistryTree struct {
	Leaf     bool
	IsFunc   bool
	Children map[string]*RegistryTree
}

// UnmarshalJSON decodes the evaluator's JSON representation of a
// registry attribute set. A JSON object becomes an Inner node unless it
// contains a "__functor" key, in which case it becomes a functor Leaf.
// Any non-object JSON value (string, number, bool, null, array) becomes
// an opaque Leaf.
func (t *RegistryTree) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		// Not a JSON object (null decodes without error into a nil map):
		// treat the whole value as an opaque leaf.
		t.Leaf = true
		return nil
	}

	if _, hasFunctor := obj["__functor"]; hasFunctor {
		t.Leaf = true
		t.IsFunc = true
		return nil
	}

	children := make(map[string]*RegistryTree, len(obj))
	for key, raw := range obj {
		child := &RegistryTree{}
		if err := json.Unmarshal(raw, child); err != nil {
			return err
		}
		children[key] = child
	}
	t.Children = children
	return nil
}

// Flatten walks the tree and returns every dotted path reachable,
// leaves and attribute sub-trees alike: if "a.b.c" is present, its
// ancestors "a" and "a.b" are also present. Only the root itself (the
// empty path) is never emitted.
func (t *RegistryTree) Flatten() ValidPathSet {
	out := NewValidPathSet()
	t.flattenInto(DottedPath{}, out)
	return out
}

func (t *RegistryTree) flattenInto(prefix DottedPath, out ValidPathSet) {
	if t == nil {
		return
	}
	if !prefix.Empty() {
		out.Add(prefix)
	}
	if t.Leaf {
		return
	}
	for name, child := range t.Children {
		child.flattenInto(prefix.Join(name), out)
	}
}
