package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/imp-refactor/imp-refactor/internal/model"
)

func classifiedAt(start, end int, replacement string) m.ClassifiedReference {
	suggestion := m.ParseDottedPath(replacement)
	return m.ClassifiedReference{
		Reference: m.Reference{Range: m.ByteRange{Start: start, End: end}},
		Verdict:   m.VerdictBroken,
		Suggestion: &suggestion,
	}
}

func TestBuildFilePlanSplicesSuggestedReplacements(t *testing.T) {
	src := []byte(`{ a = registry.old.frontend; }`)
	refs := []m.ClassifiedReference{classifiedAt(6, 27, "registry.web.frontend")}

	plan, err := BuildFilePlan("flake.nix", src, refs)
	require.NoError(t, err)
	assert.True(t, plan.Changed())
	assert.Equal(t, `{ a = registry.web.frontend; }`, string(plan.Apply()))
}

func TestBuildFilePlanSkipsValidAndUnsuggestedReferences(t *testing.T) {
	src := []byte(`{ a = registry.db; }`)
	refs := []m.ClassifiedReference{
		{Reference: m.Reference{Range: m.ByteRange{Start: 6, End: 18}}, Verdict: m.VerdictValid},
		{Reference: m.Reference{Range: m.ByteRange{Start: 0, End: 0}}, Verdict: m.VerdictBroken, Suggestion: nil},
	}

	plan, err := BuildFilePlan("flake.nix", src, refs)
	require.NoError(t, err)
	assert.False(t, plan.Changed())
}

func TestBuildFilePlanDetectsOverlappingEdits(t *testing.T) {
	src := []byte(`{ a = registry.old.frontend; }`)
	refs := []m.ClassifiedReference{
		classifiedAt(6, 27, "registry.web.frontend"),
		classifiedAt(20, 27, "registry.other.frontend"),
	}

	_, err := BuildFilePlan("flake.nix", src, refs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRewriteConflict))
}

func TestBuildFilePlanSortsEditsByPosition(t *testing.T) {
	src := []byte(`registry.b registry.a`)
	refs := []m.ClassifiedReference{
		classifiedAt(11, 21, "registry.aa"),
		classifiedAt(0, 10, "registry.bb"),
	}

	plan, err := BuildFilePlan("flake.nix", src, refs)
	require.NoError(t, err)
	assert.Equal(t, "registry.bb registry.aa", string(plan.Apply()))
}
