package adapter

import (
	"fmt"

	"github.com/imp-refactor/imp-refactor/internal/lang"
)

// LangFileAdapter parses registry source files into the internal/lang
// AST using the Nix-subset recursive-descent parser.
type LangFileAdapter struct{}

// NewLangFileAdapter constructs a LangFileAdapter.
func NewLangFileAdapter() *LangFileAdapter { return &LangFileAdapter{} }

// Parse parses src and returns its AST root. Parse errors are
// non-fatal: the parser recovers and always returns a best-effort tree,
// and the returned error is recorded on the file's result rather than
// aborting the run.
func (a *LangFileAdapter) Parse(path string, src []byte) (lang.Node, error) {
	root, errs := lang.ParseExpr(string(src))
	if len(errs) > 0 {
		return root, fmt.Errorf("parse %s: %w", path, joinErrs(errs))
	}
	return root, nil
}

func joinErrs(errs []error) error {
	if len(errs) == 1 {
		return errs[0]
	}
	msg := errs[0].Error()
	for _, e := range errs[1:] {
		msg += "; " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
