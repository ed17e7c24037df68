package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imp-refactor/imp-refactor/internal/lang"
	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// fakeWalker is an in-memory FileWalker backed by a path->content map.
type fakeWalker struct {
	files map[string]string
}

func (f *fakeWalker) Walk(roots []string, exclude ExcludeSet, fn func(path string) error) error {
	for path := range f.files {
		if exclude.Matches(path) {
			continue
		}
		if err := fn(path); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeWalker) ReadFile(path string) ([]byte, error) {
	return []byte(f.files[path]), nil
}

// realParser wraps the actual language parser, exercised in these
// tests instead of a stub so extraction runs against real ASTs.
type realParser struct{}

func (realParser) Parse(path string, src []byte) (lang.Node, error) {
	root, errs := lang.ParseExpr(string(src))
	if len(errs) > 0 {
		return root, errs[0]
	}
	return root, nil
}

type fakeRegistryLoader struct {
	tree *m.RegistryTree
	err  error
}

func (f *fakeRegistryLoader) Load(ctx context.Context) (*m.RegistryTree, error) {
	return f.tree, f.err
}

func fixtureRegistry() *m.RegistryTree {
	return &m.RegistryTree{
		Children: map[string]*m.RegistryTree{
			"web": {
				Children: map[string]*m.RegistryTree{
					"frontend": {Leaf: true},
					"backend":  {Leaf: true},
				},
			},
			"db": {Leaf: true},
		},
	}
}

func TestWorkflowScanFindsNixFilesAndHonorsExcludes(t *testing.T) {
	walker := &fakeWalker{files: map[string]string{
		"flake.nix":       "{}",
		"result/out.nix":  "{}",
		"README.md":       "not nix",
		"modules/db.nix":  "{}",
	}}
	wf := NewWorkflow(walker, realParser{}, &fakeRegistryLoader{tree: fixtureRegistry()})

	files, err := wf.Scan(Options{Exclude: NewExcludeSet(nil, true)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"flake.nix", "modules/db.nix"}, files)
}

func TestWorkflowDetectClassifiesReferences(t *testing.T) {
	walker := &fakeWalker{files: map[string]string{
		"flake.nix": `{ a = registry.web.frontend; b = registry.old.frontend; }`,
	}}
	wf := NewWorkflow(walker, realParser{}, &fakeRegistryLoader{tree: fixtureRegistry()})

	out, err := wf.Detect(context.Background(), Options{RegistryName: "registry"})
	require.NoError(t, err)
	require.Len(t, out.Files, 1)
	require.Len(t, out.Files[0].References, 2)

	assert.Equal(t, 1, out.Diagnostics.ValidReferences)
	assert.Equal(t, 1, out.Diagnostics.BrokenCount)
	assert.Equal(t, 1, out.Diagnostics.Suggested)
	assert.NotEmpty(t, out.RunID)
}

func TestWorkflowRegistryFlattensAndSorts(t *testing.T) {
	walker := &fakeWalker{}
	wf := NewWorkflow(walker, realParser{}, &fakeRegistryLoader{tree: fixtureRegistry()})

	paths, err := wf.Registry(context.Background(), "registry")
	require.NoError(t, err)

	var strs []string
	for _, p := range paths {
		strs = append(strs, p.String())
	}
	assert.Equal(t, []string{"registry.db", "registry.web", "registry.web.backend", "registry.web.frontend"}, strs)
}

func TestWorkflowApplyBuildsPlanForBrokenReference(t *testing.T) {
	walker := &fakeWalker{files: map[string]string{
		"flake.nix": `{ b = registry.old.frontend; }`,
	}}
	wf := NewWorkflow(walker, realParser{}, &fakeRegistryLoader{tree: fixtureRegistry()})

	_, plans, err := wf.Apply(context.Background(), Options{RegistryName: "registry"})
	require.NoError(t, err)
	require.Len(t, plans, 1)

	rewritten := plans[0].Apply()
	assert.Contains(t, string(rewritten), "registry.web.frontend")
}

func TestWorkflowApplyNoOpWhenAllReferencesValid(t *testing.T) {
	walker := &fakeWalker{files: map[string]string{
		"flake.nix": `{ a = registry.web.frontend; }`,
	}}
	wf := NewWorkflow(walker, realParser{}, &fakeRegistryLoader{tree: fixtureRegistry()})

	_, plans, err := wf.Apply(context.Background(), Options{RegistryName: "registry"})
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestWorkflowDetectCollectsParseErrorsWithoutAbortingOtherFiles(t *testing.T) {
	walker := &fakeWalker{files: map[string]string{
		"broken.nix": `{ a = registry.web.frontend`,
		"flake.nix":  `{ a = registry.web.frontend; }`,
	}}
	wf := NewWorkflow(walker, realParser{}, &fakeRegistryLoader{tree: fixtureRegistry()})

	out, err := wf.Detect(context.Background(), Options{RegistryName: "registry"})
	require.NoError(t, err)
	require.Len(t, out.Files, 2)
	assert.Equal(t, 1, out.Diagnostics.ParseErrors)

	report := ToDetectionResult(out)
	var brokenReport, cleanReport m.FileReport
	for _, f := range report.Files {
		if f.Path == "broken.nix" {
			brokenReport = f
		} else {
			cleanReport = f
		}
	}
	assert.NotEmpty(t, brokenReport.ParseError)
	assert.Empty(t, cleanReport.ParseError)
	assert.Equal(t, 1, report.Diagnostics.ParseErrors)
}

func TestToDetectionResultCarriesDiagnostics(t *testing.T) {
	walker := &fakeWalker{files: map[string]string{
		"flake.nix": `{ b = registry.old.frontend; }`,
	}}
	wf := NewWorkflow(walker, realParser{}, &fakeRegistryLoader{tree: fixtureRegistry()})

	out, err := wf.Detect(context.Background(), Options{RegistryName: "registry"})
	require.NoError(t, err)

	report := ToDetectionResult(out)
	assert.Equal(t, out.RunID, report.RunID)
	assert.Equal(t, 1, report.Diagnostics.FilesScanned)
	require.Len(t, report.Files, 1)
	require.Len(t, report.Files[0].References, 1)
	assert.Equal(t, "broken", report.Files[0].References[0].Verdict)
	require.NotNil(t, report.Files[0].References[0].Suggestion)
	assert.Equal(t, "registry.web.frontend", *report.Files[0].References[0].Suggestion)
}
