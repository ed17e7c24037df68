package domain

import "errors"

// Sentinel errors returned by the domain layer. Callers use errors.Is to
// distinguish fatal pipeline failures (evaluator, malformed registry)
// from per-file failures that the workflow collects and continues past.
var (
	// ErrEvaluatorFailed means no evaluator command is configured, or the
	// evaluator (or the git show feeding it) could not run or exited
	// non-zero.
	ErrEvaluatorFailed = errors.New("evaluator invocation failed")

	// ErrMalformedRegistry means the evaluator produced output that
	// could not be decoded into a registry tree.
	ErrMalformedRegistry = errors.New("malformed registry output")

	// ErrRewriteConflict means two edits computed for the same file
	// overlap, which the rewriter refuses to apply.
	ErrRewriteConflict = errors.New("overlapping rewrite edits")

	// ErrDynamicSegment means an attribute path contains a computed
	// segment (${...} or any quoted string) and cannot be classified
	// or rewritten.
	ErrDynamicSegment = errors.New("dynamic attribute segment")

	// ErrNoSuggestion means a broken reference has no unambiguous
	// suggested replacement.
	ErrNoSuggestion = errors.New("no suggestion available")
)
