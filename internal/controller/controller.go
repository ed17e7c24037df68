// Package controller wires a domain.Workflow, its presentation layer,
// and report persistence into imp-refactor's CLI-level operations.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/imp-refactor/imp-refactor/internal/adapter"
	"github.com/imp-refactor/imp-refactor/internal/domain"
	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NewUI selects the plain-text or interactive presentation layer:
// SimpleUI for piped output or when interactive review wasn't
// requested, TUI when writing to a terminal and interactive review was
// asked for.
func NewUI(cmd *cobra.Command, interactive bool) adapter.UI {
	tty := false
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		tty = IsTTY(f)
	}
	if interactive && tty {
		return adapter.NewTUI(cmd.OutOrStdout())
	}
	return adapter.NewSimpleUI(cmd, tty)
}

// Controller exposes imp-refactor's detect/apply/registry/scan
// operations, translating domain.Workflow results into presentation
// calls and process exit codes.
type Controller struct {
	Workflow domain.Workflow
	UI       adapter.UI
	Store    adapter.ReportStore
}

// New builds a Controller.
func New(wf domain.Workflow, ui adapter.UI, store adapter.ReportStore) *Controller {
	return &Controller{Workflow: wf, UI: ui, Store: store}
}

// Exit codes shared by every subcommand: 0 clean, 1 broken references
// found, 2 fatal error.
const (
	ExitClean  = 0
	ExitBroken = 1
	ExitFatal  = 2
)

// Detect runs detection, displays the result, and optionally persists
// it to reportPath.
func (c *Controller) Detect(ctx context.Context, opts domain.Options, reportPath string) (int, error) {
	out, err := c.Workflow.Detect(ctx, opts)
	if err != nil {
		return ExitFatal, err
	}

	result := domain.ToDetectionResult(out)
	if err := c.UI.DisplayDetection(result); err != nil {
		return ExitFatal, err
	}
	if reportPath != "" && c.Store != nil {
		if err := c.Store.Save(reportPath, result); err != nil {
			return ExitFatal, err
		}
	}

	if result.Diagnostics.BrokenCount > 0 {
		return ExitBroken, nil
	}
	return ExitClean, nil
}

// Registry loads and displays the flattened registry tree.
func (c *Controller) Registry(ctx context.Context, registryName string) (int, error) {
	paths, err := c.Workflow.Registry(ctx, registryName)
	if err != nil {
		return ExitFatal, err
	}
	if err := c.UI.DisplayRegistry(paths); err != nil {
		return ExitFatal, err
	}
	return ExitClean, nil
}

// Scan lists every file the walker would visit, one per line.
func (c *Controller) Scan(opts domain.Options, w io.Writer) (int, error) {
	files, err := c.Workflow.Scan(opts)
	if err != nil {
		return ExitFatal, err
	}
	for _, f := range files {
		fmt.Fprintln(w, f)
	}
	return ExitClean, nil
}

// Apply runs detection, builds rewrite plans for every broken-but-
// suggested reference, lets the UI review them, and, when write is
// true, writes every approved plan to disk atomically via fs.
func (c *Controller) Apply(ctx context.Context, fs adapter.SourceFS, opts domain.Options, write bool) (int, error) {
	out, plans, err := c.Workflow.Apply(ctx, opts)
	if err != nil {
		return ExitFatal, err
	}

	result := domain.ToDetectionResult(out)
	if err := c.UI.DisplayDetection(result); err != nil {
		return ExitFatal, err
	}
	if len(plans) == 0 {
		return ExitClean, nil
	}

	diffs := make(map[string]string, len(plans))
	for _, p := range plans {
		diffs[p.Path] = unifiedDiff(p)
	}

	approved, err := c.UI.ReviewPlans(plans, diffs)
	if err != nil {
		return ExitFatal, err
	}

	if !write {
		return ExitClean, nil
	}

	for _, p := range approved {
		if err := fs.WriteFileAtomic(p.Path, p.Apply()); err != nil {
			return ExitFatal, err
		}
	}
	if len(approved) < len(plans) {
		return ExitBroken, nil
	}
	return ExitClean, nil
}

func unifiedDiff(p m.FilePlan) string {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(p.Original)),
		B:        difflib.SplitLines(string(p.Apply())),
		FromFile: p.Path,
		ToFile:   p.Path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}
