package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/imp-refactor/imp-refactor/internal/model"
)

func TestApplyRenameMapSubstitutesPrefix(t *testing.T) {
	renames := m.NewRenameMap(m.RenameEntry{
		Old: m.ParseDottedPath("old"),
		New: m.ParseDottedPath("web"),
	})
	result, ok := ApplyRenameMap(renames, m.ParseDottedPath("old.frontend"))
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal("web.frontend", result.String())
}

func TestApplyRenameMapPrefersLongestPrefix(t *testing.T) {
	renames := m.NewRenameMap(
		m.RenameEntry{Old: m.ParseDottedPath("old"), New: m.ParseDottedPath("shallow")},
		m.RenameEntry{Old: m.ParseDottedPath("old.frontend"), New: m.ParseDottedPath("web.ui")},
	)
	result, ok := ApplyRenameMap(renames, m.ParseDottedPath("old.frontend.assets"))
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal("web.ui.assets", result.String())
}

func TestApplyRenameMapTiesBrokenByDeclarationOrder(t *testing.T) {
	renames := m.NewRenameMap(
		m.RenameEntry{Old: m.ParseDottedPath("old"), New: m.ParseDottedPath("first")},
		m.RenameEntry{Old: m.ParseDottedPath("old"), New: m.ParseDottedPath("second")},
	)
	result, ok := ApplyRenameMap(renames, m.ParseDottedPath("old.frontend"))
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal("first.frontend", result.String())
}

func TestApplyRenameMapNoMatchReturnsUnchanged(t *testing.T) {
	renames := m.NewRenameMap(m.RenameEntry{Old: m.ParseDottedPath("other"), New: m.ParseDottedPath("new")})
	result, ok := ApplyRenameMap(renames, m.ParseDottedPath("old.frontend"))
	assert := assert.New(t)
	assert.False(ok)
	assert.Equal("old.frontend", result.String())
}

func TestApplyRenameMapZeroValueIsSafe(t *testing.T) {
	var renames m.RenameMap
	_, ok := ApplyRenameMap(renames, m.ParseDottedPath("old.frontend"))
	assert.False(t, ok)
}
