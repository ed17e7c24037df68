package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/imp-refactor/imp-refactor/internal/model"
)

func TestFlattenRegistryPrefixesEveryLeaf(t *testing.T) {
	tree := &m.RegistryTree{
		Children: map[string]*m.RegistryTree{
			"web": {Children: map[string]*m.RegistryTree{
				"frontend": {Leaf: true},
			}},
			"db": {Leaf: true},
		},
	}
	valid := FlattenRegistry("registry", tree)
	assert := assert.New(t)
	assert.True(valid.Contains(m.ParseDottedPath("registry.web.frontend")))
	assert.True(valid.Contains(m.ParseDottedPath("registry.db")))
	// Attribute sub-trees are valid paths too, not just their leaves.
	assert.True(valid.Contains(m.ParseDottedPath("registry.web")))
}

func TestFlattenRegistryNilTreeIsEmpty(t *testing.T) {
	valid := FlattenRegistry("registry", nil)
	assert.Empty(t, valid)
}

func TestFlattenRegistryEmptySubTreeStillEmitsItsPath(t *testing.T) {
	tree := &m.RegistryTree{
		Children: map[string]*m.RegistryTree{
			"alice": {Children: map[string]*m.RegistryTree{}},
		},
	}
	valid := FlattenRegistry("registry", tree)
	assert.True(t, valid.Contains(m.ParseDottedPath("registry.alice")))
}
