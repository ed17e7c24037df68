// Package model holds the plain data types shared across imp-refactor:
// dotted registry paths, the registry tree, rename maps, extracted
// references, and file edit plans. Nothing in this package performs I/O.
package model

import "strings"

// DottedPath is a dot-separated attribute path such as
// "services.web.frontend". Segments are not validated: ParseDottedPath
// splits on every dot, and NewDottedPath keeps segments as given. The
// zero value is the empty (root) path.
type DottedPath struct {
	segments []string
}

// NewDottedPath builds a DottedPath from already-split segments.
func NewDottedPath(segments ...string) DottedPath {
	cp := make([]string, len(segments))
	copy(cp, segments)
	return DottedPath{segments: cp}
}

// ParseDottedPath splits a dotted string ("a.b.c") into a DottedPath.
// An empty string yields the root path.
func ParseDottedPath(s string) DottedPath {
	if s == "" {
		return DottedPath{}
	}
	return DottedPath{segments: strings.Split(s, ".")}
}

// Segments returns the path's segments. Callers must not mutate the
// returned slice.
func (p DottedPath) Segments() []string { return p.segments }

// Len returns the number of segments.
func (p DottedPath) Len() int { return len(p.segments) }

// Empty reports whether the path has no segments (the registry root).
func (p DottedPath) Empty() bool { return len(p.segments) == 0 }

// String renders the path back to dotted form.
func (p DottedPath) String() string { return strings.Join(p.segments, ".") }

// Leaf returns the final segment, or "" for the empty path.
func (p DottedPath) Leaf() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Join appends segments and returns a new DottedPath; the receiver is
// unchanged.
func (p DottedPath) Join(segments ...string) DottedPath {
	out := make([]string, 0, len(p.segments)+len(segments))
	out = append(out, p.segments...)
	out = append(out, segments...)
	return DottedPath{segments: out}
}

// HasPrefix reports whether prefix's segments are a leading run of p's
// segments (prefix == p counts as a prefix).
func (p DottedPath) HasPrefix(prefix DottedPath) bool {
	if len(prefix.segments) > len(p.segments) {
		return false
	}
	for i, s := range prefix.segments {
		if p.segments[i] != s {
			return false
		}
	}
	return true
}

// WithPrefixReplaced returns a copy of p with its leading prefix segments
// swapped for replacement's segments. The caller must have already
// verified p.HasPrefix(prefix).
func (p DottedPath) WithPrefixReplaced(prefix, replacement DottedPath) DottedPath {
	tail := p.segments[len(prefix.segments):]
	out := make([]string, 0, len(replacement.segments)+len(tail))
	out = append(out, replacement.segments...)
	out = append(out, tail...)
	return DottedPath{segments: out}
}

// Equal reports structural equality.
func (p DottedPath) Equal(other DottedPath) bool {
	if len(p.segments) != len(other.segments) {
		return false
	}
	for i, s := range p.segments {
		if s != other.segments[i] {
			return false
		}
	}
	return true
}

// ValidPathSet is the flattened set of every path reachable in a
// RegistryTree, used by the analyzer to classify references as valid or
// broken.
type ValidPathSet map[string]struct{}

// NewValidPathSet builds an empty set.
func NewValidPathSet() ValidPathSet { return make(ValidPathSet) }

// Add records a path as valid.
func (s ValidPathSet) Add(p DottedPath) { s[p.String()] = struct{}{} }

// Contains reports whether p is a member of the set.
func (s ValidPathSet) Contains(p DottedPath) bool {
	_, ok := s[p.String()]
	return ok
}
