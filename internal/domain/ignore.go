package domain

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar"
)

// DefaultExcludes are glob patterns skipped unless the caller passes
// --no-default-excludes. Matches the reference implementation's default
// ignore set for build/version-control directories.
var DefaultExcludes = []string{
	".git/**",
	".direnv/**",
	"result",
	"result/**",
	"result-*/**",
	"node_modules/**",
}

// ExcludeSet compiles a list of glob patterns for matching against
// paths relative to a walk root, using doublestar for "**" recursive
// glob support that path/filepath.Match lacks.
type ExcludeSet struct {
	patterns []string
}

// NewExcludeSet builds an ExcludeSet from user patterns, optionally
// merged with DefaultExcludes.
func NewExcludeSet(userPatterns []string, includeDefaults bool) ExcludeSet {
	var patterns []string
	if includeDefaults {
		patterns = append(patterns, DefaultExcludes...)
	}
	patterns = append(patterns, userPatterns...)
	return ExcludeSet{patterns: patterns}
}

// Matches reports whether relPath (slash-separated, relative to the
// walk root) matches any configured exclusion pattern.
func (e ExcludeSet) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, pat := range e.patterns {
		if ok, err := doublestar.Match(pat, relPath); err == nil && ok {
			return true
		}
		// Also match against any path prefix, so "result" excludes
		// "result/foo/bar.nix" even without an explicit "/**" suffix.
		if ok, err := doublestar.Match(pat+"/**", relPath); err == nil && ok {
			return true
		}
	}
	return false
}
