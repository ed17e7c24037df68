package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleSelect(t *testing.T) {
	node, errs := ParseExpr("registry.a.b")
	require.Empty(t, errs)
	sel, ok := node.(*Select)
	require.True(t, ok)
	base, ok := sel.Base.(*Ident)
	require.True(t, ok)
	assert.Equal(t, "registry", base.Name)
	assert.Len(t, sel.Path, 2)
	assert.Equal(t, "a", sel.Path[0].Name)
	assert.Equal(t, "b", sel.Path[1].Name)
	src := "registry.a.b"
	assert.Equal(t, src, src[sel.Pos():sel.End()])
}

func TestParseSelectWithDefault(t *testing.T) {
	node, errs := ParseExpr("registry.a.b or 5")
	require.Empty(t, errs)
	sel := node.(*Select)
	require.NotNil(t, sel.Default)
	_, ok := sel.Default.(*IntLit)
	assert.True(t, ok)
}

func TestParseDynamicSegmentRejected(t *testing.T) {
	node, errs := ParseExpr(`registry.${x}.b`)
	require.Empty(t, errs)
	sel := node.(*Select)
	require.Len(t, sel.Path, 2)
	assert.True(t, sel.Path[0].Dynamic)
	assert.False(t, sel.Path[1].Dynamic)
}

func TestParseQuotedSegmentIsAlwaysDynamic(t *testing.T) {
	node, errs := ParseExpr(`registry."a.b"`)
	require.Empty(t, errs)
	sel := node.(*Select)
	require.Len(t, sel.Path, 1)
	assert.True(t, sel.Path[0].Dynamic)
	_, ok := sel.Path[0].Expr.(*StringLit)
	assert.True(t, ok)
}

func TestParseStringInterpolatedSelect(t *testing.T) {
	node, errs := ParseExpr(`"${registry.a.b}"`)
	require.Empty(t, errs)
	str, ok := node.(*StringLit)
	require.True(t, ok)
	require.Len(t, str.Parts, 1)
	require.NotNil(t, str.Parts[0].Expr)
	_, ok = str.Parts[0].Expr.(*Select)
	assert.True(t, ok)
}

func TestParseAttrSet(t *testing.T) {
	node, errs := ParseExpr(`{ a = 1; b.c = registry.x.y; inherit (foo) bar baz; }`)
	require.Empty(t, errs)
	set, ok := node.(*AttrSet)
	require.True(t, ok)
	require.Len(t, set.Bindings, 3)
	assert.Equal(t, "a", set.Bindings[0].Path[0].Name)
	assert.Equal(t, []string{"b", "c"}, []string{set.Bindings[1].Path[0].Name, set.Bindings[1].Path[1].Name})
	assert.True(t, set.Bindings[2].IsInherit)
	assert.Equal(t, []string{"bar", "baz"}, set.Bindings[2].InheritIDs)
}

func TestParseLambdaPattern(t *testing.T) {
	node, errs := ParseExpr(`{ a, b ? 1, ... }: registry.a.b`)
	require.Empty(t, errs)
	lam, ok := node.(*Lambda)
	require.True(t, ok)
	assert.True(t, lam.Param.IsPattern)
	assert.True(t, lam.Param.Ellipsis)
	require.Len(t, lam.Param.Fields, 2)
	assert.Equal(t, "b", lam.Param.Fields[1].Name)
	assert.NotNil(t, lam.Param.Fields[1].Default)
}

func TestParseIdentLambda(t *testing.T) {
	node, errs := ParseExpr(`x: x.a`)
	require.Empty(t, errs)
	lam := node.(*Lambda)
	assert.Equal(t, "x", lam.Param.Ident)
}

func TestParseLetInWith(t *testing.T) {
	node, errs := ParseExpr(`let x = registry.a; in with x; registry.b`)
	require.Empty(t, errs)
	let, ok := node.(*LetIn)
	require.True(t, ok)
	require.Len(t, let.Bindings, 1)
	_, ok = let.Body.(*With)
	assert.True(t, ok)
}

func TestParseFunctionCallNotSelect(t *testing.T) {
	node, errs := ParseExpr(`foo registry.a.b`)
	require.Empty(t, errs)
	apply, ok := node.(*Apply)
	require.True(t, ok)
	fn, ok := apply.Fn.(*Ident)
	require.True(t, ok)
	assert.Equal(t, "foo", fn.Name)
	_, ok = apply.Arg.(*Select)
	assert.True(t, ok)
}

func TestParseListOfSelects(t *testing.T) {
	node, errs := ParseExpr(`[ registry.a registry.b ]`)
	require.Empty(t, errs)
	list, ok := node.(*List)
	require.True(t, ok)
	assert.Len(t, list.Elems, 2)
}

func TestParseNonRootSelectNotConfused(t *testing.T) {
	node, errs := ParseExpr(`nix.registry.x`)
	require.Empty(t, errs)
	sel := node.(*Select)
	base := sel.Base.(*Ident)
	assert.Equal(t, "nix", base.Name)
	assert.Equal(t, "registry", sel.Path[0].Name)
}
