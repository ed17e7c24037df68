package domain

import (
	"fmt"

	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// Diagnostics accumulates counts across an analysis run.
type Diagnostics struct {
	ParseErrors     int
	TotalReferences int
	ValidReferences int
	BrokenCount     int
	Suggested       int
	Unsuggestable   int
}

// Analyze classifies every reference against valid (the flattened,
// root-prefixed set of paths the registry currently contains) and, for
// each broken reference, tries to find a replacement: first via the
// rename map (an explicit, authoritative "this moved from X to Y"
// declaration), then by unique-leaf-name matching as a fallback.
func Analyze(refs []m.Reference, valid m.ValidPathSet, renames m.RenameMap) ([]m.ClassifiedReference, Diagnostics) {
	out := make([]m.ClassifiedReference, 0, len(refs))
	var diag Diagnostics

	for _, ref := range refs {
		diag.TotalReferences++
		full := ref.FullPath()

		if valid.Contains(full) {
			diag.ValidReferences++
			out = append(out, m.ClassifiedReference{Reference: ref, Verdict: m.VerdictValid})
			continue
		}

		diag.BrokenCount++
		cr := m.ClassifiedReference{Reference: ref, Verdict: m.VerdictBroken}

		if suggestion, ok := suggestPath(ref.Root, ref.Tail, valid, renames); ok {
			diag.Suggested++
			cr.Suggestion = &suggestion
		} else {
			diag.Unsuggestable++
			cr.Reason = failureReason(ref.Tail, valid)
		}

		out = append(out, cr)
	}

	return out, diag
}

// suggestPath tries the rename map first, then falls back to
// unique-leaf matching. The returned path includes the root prefix,
// ready to substitute back into source.
func suggestPath(root string, tail m.DottedPath, valid m.ValidPathSet, renames m.RenameMap) (m.DottedPath, bool) {
	if renamed, ok := ApplyRenameMap(renames, tail); ok {
		full := m.NewDottedPath(root).Join(renamed.Segments()...)
		if valid.Contains(full) {
			return full, true
		}
	}

	if leaf, ok := SuggestByLeaf(valid, m.NewDottedPath(root).Join(tail.Segments()...)); ok {
		return leaf, true
	}

	return m.DottedPath{}, false
}

func failureReason(tail m.DottedPath, valid m.ValidPathSet) string {
	if tail.Leaf() == "" {
		return fmt.Errorf("%w: empty attribute path", ErrNoSuggestion).Error()
	}

	matches := 0
	for p := range valid {
		if m.ParseDottedPath(p).Leaf() == tail.Leaf() {
			matches++
		}
	}

	if matches > 1 {
		return fmt.Errorf("%w: ambiguous, %d candidates share leaf name %q", ErrNoSuggestion, matches, tail.Leaf()).Error()
	}
	return fmt.Errorf("%w: no matching path found in registry", ErrNoSuggestion).Error()
}
