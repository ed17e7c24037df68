package domain

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/imp-refactor/imp-refactor/internal/lang"
	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// FileWalker abstracts the filesystem operations Workflow needs. Its
// method set matches adapter.SourceFS structurally, so
// adapter.LocalSourceFS satisfies it without domain importing adapter.
type FileWalker interface {
	Walk(roots []string, exclude ExcludeSet, fn func(path string) error) error
	ReadFile(path string) ([]byte, error)
}

// FileParser parses one source file into an AST. Satisfied structurally
// by adapter.LangFileAdapter.
type FileParser interface {
	Parse(path string, src []byte) (lang.Node, error)
}

// RegistryLoader evaluates the registry tree. Satisfied structurally by
// adapter.EvaluatorAdapter.
type RegistryLoader interface {
	Load(ctx context.Context) (*m.RegistryTree, error)
}

// Options configures a workflow run's file selection and registry
// resolution.
type Options struct {
	Roots        []string
	Exclude      ExcludeSet
	RegistryName string
	Renames      m.RenameMap
}

// FileDetection holds one file's extracted, classified references
// alongside its original bytes, so Apply can build a FilePlan without
// re-reading or re-parsing the file. ParseErr is set when the parser
// only recovered a best-effort AST; References is still populated from
// whatever that AST yielded.
type FileDetection struct {
	Path       string
	Original   []byte
	ParseErr   error
	References []m.ClassifiedReference
}

// DetectionOutput is a run's full in-memory result. Unlike
// model.DetectionResult, it keeps each file's original bytes so Apply
// can build FilePlans from it directly.
type DetectionOutput struct {
	RunID       string
	Files       []FileDetection
	Diagnostics Diagnostics
}

// IsNixFile reports whether path looks like registry source.
func IsNixFile(path string) bool {
	return len(path) > 4 && path[len(path)-4:] == ".nix"
}

// Workflow ties the walker, parser, registry loader, analyzer, and
// rewriter into the four CLI-level operations: scan, detect, registry,
// apply.
type Workflow interface {
	Scan(opts Options) ([]string, error)
	Detect(ctx context.Context, opts Options) (DetectionOutput, error)
	Registry(ctx context.Context, registryName string) ([]m.DottedPath, error)
	Apply(ctx context.Context, opts Options) (DetectionOutput, []m.FilePlan, error)
}

type workflow struct {
	fs       FileWalker
	parser   FileParser
	registry RegistryLoader
}

// NewWorkflow builds a Workflow from its collaborators.
func NewWorkflow(fs FileWalker, parser FileParser, registry RegistryLoader) Workflow {
	return &workflow{fs: fs, parser: parser, registry: registry}
}

// Scan implements Workflow: lists every ".nix" file the walker would
// visit under opts.Roots, honoring opts.Exclude.
func (w *workflow) Scan(opts Options) ([]string, error) {
	var files []string
	err := w.fs.Walk(opts.Roots, opts.Exclude, func(path string) error {
		if IsNixFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Detect implements Workflow: walks, parses, extracts, and classifies
// every registry reference under opts.Roots. Per-file work runs
// concurrently, bounded by GOMAXPROCS, joined against a single
// registry snapshot loaded once up front.
func (w *workflow) Detect(ctx context.Context, opts Options) (DetectionOutput, error) {
	files, err := w.Scan(opts)
	if err != nil {
		return DetectionOutput{}, err
	}

	tree, err := w.registry.Load(ctx)
	if err != nil {
		return DetectionOutput{}, err
	}
	valid := FlattenRegistry(opts.RegistryName, tree)

	results := make([]FileDetection, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			src, err := w.fs.ReadFile(path)
			if err != nil {
				return err
			}
			root, parseErr := w.parser.Parse(path, src)
			if root == nil {
				results[i] = FileDetection{Path: path, Original: src, ParseErr: parseErr}
				return nil
			}

			refs := ExtractReferences(path, string(src), opts.RegistryName, root)
			classified, _ := Analyze(refs, valid, opts.Renames)
			results[i] = FileDetection{Path: path, Original: src, ParseErr: parseErr, References: classified}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DetectionOutput{}, err
	}

	var diag Diagnostics
	for _, fd := range results {
		if fd.ParseErr != nil {
			diag.ParseErrors++
		}
		for _, cr := range fd.References {
			diag.TotalReferences++
			switch cr.Verdict {
			case m.VerdictValid:
				diag.ValidReferences++
			case m.VerdictBroken:
				diag.BrokenCount++
				if cr.Suggestion != nil {
					diag.Suggested++
				} else {
					diag.Unsuggestable++
				}
			}
		}
	}

	return DetectionOutput{RunID: m.NewRunID(), Files: results, Diagnostics: diag}, nil
}

// Registry implements Workflow: loads and flattens the registry tree,
// returning every valid path sorted lexicographically.
func (w *workflow) Registry(ctx context.Context, registryName string) ([]m.DottedPath, error) {
	tree, err := w.registry.Load(ctx)
	if err != nil {
		return nil, err
	}

	valid := FlattenRegistry(registryName, tree)
	paths := make([]m.DottedPath, 0, len(valid))
	for p := range valid {
		paths = append(paths, m.ParseDottedPath(p))
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i].String() < paths[j].String() })
	return paths, nil
}

// Apply implements Workflow: runs Detect, then builds a FilePlan for
// every file with at least one suggested rewrite.
func (w *workflow) Apply(ctx context.Context, opts Options) (DetectionOutput, []m.FilePlan, error) {
	det, err := w.Detect(ctx, opts)
	if err != nil {
		return DetectionOutput{}, nil, err
	}

	var plans []m.FilePlan
	for _, fd := range det.Files {
		plan, err := BuildFilePlan(fd.Path, fd.Original, fd.References)
		if err != nil {
			return det, nil, err
		}
		if plan.Changed() {
			plans = append(plans, plan)
		}
	}
	return det, plans, nil
}

// ToDetectionResult converts a DetectionOutput into its JSON-friendly,
// byte-content-free form for --json output and report storage.
func ToDetectionResult(out DetectionOutput) m.DetectionResult {
	files := make([]m.FileReport, 0, len(out.Files))
	for _, fd := range out.Files {
		refs := make([]m.ReferenceReport, 0, len(fd.References))
		for _, cr := range fd.References {
			var suggestion *string
			if cr.Suggestion != nil {
				s := cr.Suggestion.String()
				suggestion = &s
			}
			refs = append(refs, m.ReferenceReport{
				Tail: cr.Reference.Tail.String(),
				Range: m.Span{
					Start:  cr.Reference.Range.Start,
					End:    cr.Reference.Range.End,
					Line:   cr.Reference.Line,
					Column: cr.Reference.Column,
				},
				Verdict:    cr.Verdict.String(),
				Suggestion: suggestion,
				Reason:     cr.Reason,
			})
		}
		var parseError string
		if fd.ParseErr != nil {
			parseError = fd.ParseErr.Error()
		}
		files = append(files, m.FileReport{Path: fd.Path, ParseError: parseError, References: refs})
	}

	return m.DetectionResult{
		RunID: out.RunID,
		Files: files,
		Diagnostics: m.Diagnostics{
			FilesScanned:    len(out.Files),
			ParseErrors:     out.Diagnostics.ParseErrors,
			TotalReferences: out.Diagnostics.TotalReferences,
			ValidReferences: out.Diagnostics.ValidReferences,
			BrokenCount:     out.Diagnostics.BrokenCount,
			Suggested:       out.Diagnostics.Suggested,
			Unsuggestable:   out.Diagnostics.Unsuggestable,
		},
	}
}
