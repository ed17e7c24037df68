package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/imp-refactor/imp-refactor/internal/domain"
	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// RegistryLoader evaluates the registry attribute set and returns its
// tree shape. Abstracted behind an interface so tests substitute a
// fixture-backed fake instead of shelling out to a real evaluator.
type RegistryLoader interface {
	Load(ctx context.Context) (*m.RegistryTree, error)
}

// EvaluatorAdapter shells out to a configurable evaluator command
// (default "nix eval --json") and decodes its stdout as the registry's
// JSON tree. When GitRef is set, the file being evaluated is first
// materialized from that git ref (`git show <ref>:<file>`) and piped
// into the evaluator's stdin, so a user can diff "what broke since
// HEAD^" without the evaluator itself needing git awareness.
type EvaluatorAdapter struct {
	Command []string // e.g. []string{"nix", "eval", "--json", ".#registry"}
	File    string   // path passed to `git show <ref>:<file>` when GitRef is set
	GitRef  string
	Runner  CommandRunner
}

// CommandRunner abstracts process execution so tests can stub it.
type CommandRunner interface {
	Run(ctx context.Context, stdin []byte, name string, args ...string) (stdout []byte, err error)
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run implements CommandRunner.
func (ExecRunner) Run(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", strings.Join(append([]string{name}, args...), " "), err, errBuf.String())
	}
	return out.Bytes(), nil
}

// NewEvaluatorAdapter builds an EvaluatorAdapter with the real
// process-executing runner.
func NewEvaluatorAdapter(command []string, file, gitRef string) *EvaluatorAdapter {
	return &EvaluatorAdapter{Command: command, File: file, GitRef: gitRef, Runner: ExecRunner{}}
}

// Load implements RegistryLoader.
func (e *EvaluatorAdapter) Load(ctx context.Context) (*m.RegistryTree, error) {
	if len(e.Command) == 0 {
		return nil, fmt.Errorf("%w: no evaluator command configured", domain.ErrEvaluatorFailed)
	}

	var stdin []byte
	if e.GitRef != "" {
		content, err := e.Runner.Run(ctx, nil, "git", "show", fmt.Sprintf("%s:%s", e.GitRef, e.File))
		if err != nil {
			return nil, fmt.Errorf("%w: git show %s:%s: %v", domain.ErrEvaluatorFailed, e.GitRef, e.File, err)
		}
		stdin = content
	}

	out, err := e.Runner.Run(ctx, stdin, e.Command[0], e.Command[1:]...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEvaluatorFailed, err)
	}

	var tree m.RegistryTree
	if err := json.Unmarshal(out, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRegistry, err)
	}
	return &tree, nil
}
