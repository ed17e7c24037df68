package domain

import (
	"strings"

	"github.com/imp-refactor/imp-refactor/internal/lang"
	m "github.com/imp-refactor/imp-refactor/internal/model"
)

// ExtractReferences walks a parsed source file's AST and returns every
// `<rootName>.a.b.c`-shaped attribute selection whose base is a bare
// identifier equal to rootName. Detection is purely syntactic: no scope
// analysis is performed, so a shadowed local variable named the same as
// rootName is still reported.
//
// A Select whose attribute path contains any dynamic (computed) segment
// is skipped entirely, since such a path cannot be classified or safely
// rewritten.
func ExtractReferences(file, src, rootName string, root lang.Node) []m.Reference {
	var refs []m.Reference

	lang.Inspect(root, func(n lang.Node) bool {
		sel, ok := n.(*lang.Select)
		if !ok {
			return true
		}

		ident, ok := sel.Base.(*lang.Ident)
		if !ok || ident.Name != rootName {
			return true
		}

		tail, err := staticTail(sel.Path)
		if err != nil {
			return true
		}

		line, col := lineCol(src, int(sel.Pos()))
		refs = append(refs, m.Reference{
			File:   file,
			Range:  m.ByteRange{Start: int(sel.Pos()), End: int(sel.End())},
			Root:   rootName,
			Tail:   tail,
			Line:   line,
			Column: col,
		})

		return true
	})

	return refs
}

func staticTail(path []lang.AttrPathSegment) (m.DottedPath, error) {
	segs := make([]string, 0, len(path))
	for _, seg := range path {
		if seg.Dynamic {
			return m.DottedPath{}, ErrDynamicSegment
		}
		segs = append(segs, seg.Name)
	}
	return m.NewDottedPath(segs...), nil
}

// lineCol converts a byte offset into 1-based line/column numbers.
func lineCol(src string, offset int) (line, col int) {
	if offset > len(src) {
		offset = len(src)
	}
	prefix := src[:offset]
	line = strings.Count(prefix, "\n") + 1
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = len(prefix) - idx
	} else {
		col = len(prefix) + 1
	}
	return line, col
}
