package domain

import (
	"fmt"
	"sort"

	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// BuildFilePlan collects every broken-but-suggested reference in refs
// into a FilePlan of disjoint, ascending-order byte-range edits that
// splice the reference's original text for its suggested replacement.
// References without a suggestion, and valid references, produce no
// edit. Returns ErrRewriteConflict if two edits would overlap.
func BuildFilePlan(path string, original []byte, refs []m.ClassifiedReference) (m.FilePlan, error) {
	edits := make([]m.Edit, 0, len(refs))

	for _, cr := range refs {
		if cr.Verdict != m.VerdictBroken || cr.Suggestion == nil {
			continue
		}
		edits = append(edits, m.Edit{
			Range:       cr.Reference.Range,
			Replacement: cr.Suggestion.String(),
		})
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].Range.Start < edits[j].Range.Start })

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.Start < edits[i-1].Range.End {
			return m.FilePlan{}, fmt.Errorf("%w: %s edits at [%d,%d) and [%d,%d)",
				ErrRewriteConflict, path,
				edits[i-1].Range.Start, edits[i-1].Range.End,
				edits[i].Range.Start, edits[i].Range.End)
		}
	}

	return m.FilePlan{Path: path, Original: original, Edits: edits}, nil
}
