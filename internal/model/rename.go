package model

// RenameEntry records that a former path has moved to a new path.
type RenameEntry struct {
	Old DottedPath
	New DottedPath
}

// RenameMap is an ordered list of rename entries. Order matters: when
// more than one entry's Old is a prefix of a candidate path, the
// longest matching prefix wins, and ties (equal-length prefixes) are
// broken by declaration order (the first entry declared wins).
type RenameMap struct {
	entries []RenameEntry
}

// NewRenameMap builds a RenameMap preserving declaration order.
func NewRenameMap(entries ...RenameEntry) RenameMap {
	cp := make([]RenameEntry, len(entries))
	copy(cp, entries)
	return RenameMap{entries: cp}
}

// Entries returns the entries in declaration order.
func (r RenameMap) Entries() []RenameEntry { return r.entries }

// Len reports the number of entries.
func (r RenameMap) Len() int { return len(r.entries) }
