package lang

// Inspect traverses node and every descendant in depth-first order,
// calling fn for each. If fn returns false for a node, Inspect does not
// descend into that node's children. Mirrors go/ast.Inspect.
func Inspect(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Select:
		Inspect(n.Base, fn)
		for _, seg := range n.Path {
			if seg.Dynamic {
				Inspect(seg.Expr, fn)
			}
		}
		if n.Default != nil {
			Inspect(n.Default, fn)
		}
	case *HasAttr:
		Inspect(n.Base, fn)
		for _, seg := range n.Path {
			if seg.Dynamic {
				Inspect(seg.Expr, fn)
			}
		}
	case *Apply:
		Inspect(n.Fn, fn)
		Inspect(n.Arg, fn)
	case *BinaryOp:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *UnaryOp:
		Inspect(n.Operand, fn)
	case *If:
		Inspect(n.Cond, fn)
		Inspect(n.Then, fn)
		Inspect(n.Else, fn)
	case *Assert:
		Inspect(n.Cond, fn)
		Inspect(n.Body, fn)
	case *With:
		Inspect(n.Expr, fn)
		Inspect(n.Body, fn)
	case *LetIn:
		for _, b := range n.Bindings {
			inspectBinding(b, fn)
		}
		Inspect(n.Body, fn)
	case *AttrSet:
		for _, b := range n.Bindings {
			inspectBinding(b, fn)
		}
	case *List:
		for _, e := range n.Elems {
			Inspect(e, fn)
		}
	case *Lambda:
		for _, f := range n.Param.Fields {
			if f.Default != nil {
				Inspect(f.Default, fn)
			}
		}
		Inspect(n.Body, fn)
	case *Paren:
		Inspect(n.Inner, fn)
	case *StringLit:
		for _, part := range n.Parts {
			if part.Expr != nil {
				Inspect(part.Expr, fn)
			}
		}
	case *Ident, *IntLit, *FloatLit, *PathLit:
		// leaves
	}
}

func inspectBinding(b Binding, fn func(Node) bool) {
	for _, seg := range b.Path {
		if seg.Dynamic {
			Inspect(seg.Expr, fn)
		}
	}
	if b.Value != nil {
		Inspect(b.Value, fn)
	}
	if b.From != nil {
		Inspect(b.From, fn)
	}
}
