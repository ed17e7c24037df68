package lang

import "fmt"

type opInfo struct {
	prec  int
	right bool
}

var binOps = map[Token]opInfo{
	IMPL:   {2, true},
	OR:     {3, false},
	AND:    {4, false},
	EQEQ:   {5, false},
	NEQ:    {5, false},
	LT:     {6, false},
	LE:     {6, false},
	GT:     {6, false},
	GE:     {6, false},
	UPDATE: {7, true},
	PLUS:   {8, false},
	MINUS:  {8, false},
	STAR:   {9, false},
	SLASH:  {9, false},
	CONCAT: {10, true},
}

// Parser is a recursive-descent parser over the Nix-subset grammar.
type Parser struct {
	scanner  *Scanner
	tok      TokenInfo
	buf      []TokenInfo
	prevEnd  Pos
	errs     []error
}

// NewParser creates a Parser over src.
func NewParser(src string) *Parser {
	p := &Parser{scanner: NewScanner(src)}
	p.tok = p.scanner.Scan()
	return p
}

// ParseExpr parses src as a single expression and returns the AST root
// plus any lexical/syntax errors encountered. Parsing is best-effort:
// on a syntax error the parser skips forward and keeps going so a
// single malformed construct doesn't prevent extraction elsewhere in
// the file.
func ParseExpr(src string) (Node, []error) {
	p := NewParser(src)
	node := p.parseExpr()
	if p.tok.Tok != EOF {
		p.errorf("unexpected trailing input at offset %d", p.tok.Pos)
	}
	errs := append(p.scanner.Errors(), p.errs...)
	return node, errs
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Errorf("lang: %s", fmt.Sprintf(format, args...)))
}

func (p *Parser) next() {
	p.prevEnd = p.tok.End
	if len(p.buf) > 0 {
		p.tok = p.buf[0]
		p.buf = p.buf[1:]
		return
	}
	p.tok = p.scanner.Scan()
}

func (p *Parser) peek(n int) TokenInfo {
	for len(p.buf) < n {
		p.buf = append(p.buf, p.scanner.Scan())
	}
	return p.buf[n-1]
}

// expect consumes tok if it matches, recording an error and skipping a
// token forward otherwise so the parser always makes progress.
func (p *Parser) expect(tok Token, what string) {
	if p.tok.Tok == tok {
		p.next()
		return
	}
	p.errorf("expected %s at offset %d, found token %d", what, p.tok.Pos, p.tok.Tok)
	if p.tok.Tok != EOF {
		p.next()
	}
}

func (p *Parser) parseExpr() Node {
	switch {
	case p.tok.Tok == kwLet:
		return p.parseLetIn()
	case p.tok.Tok == kwWith:
		return p.parseWith()
	case p.tok.Tok == kwIf:
		return p.parseIf()
	case p.tok.Tok == kwAssert:
		return p.parseAssert()
	case p.tok.Tok == IDENT && p.peek(1).Tok == COLON:
		return p.parseIdentLambda()
	case p.tok.Tok == IDENT && p.peek(1).Tok == AT:
		return p.parseAliasLambda()
	case p.tok.Tok == LBRACE && p.looksLikePattern():
		return p.parsePatternLambda("")
	default:
		return p.parseOpExpr(0)
	}
}

func (p *Parser) looksLikePattern() bool {
	t1 := p.peek(1)
	switch t1.Tok {
	case RBRACE:
		return p.peek(2).Tok == COLON
	case ELLIPSIS:
		return true
	case IDENT:
		switch p.peek(2).Tok {
		case COMMA, QUESTION, RBRACE:
			return true
		default:
			return false
		}
	default:
		return false
	}
}

func (p *Parser) parseIdentLambda() Node {
	start := p.tok.Pos
	name := p.tok.Lit
	p.next() // ident
	p.next() // :
	body := p.parseExpr()
	return &Lambda{base: base{start, body.End()}, Param: LambdaParam{Ident: name}, Body: body}
}

func (p *Parser) parseAliasLambda() Node {
	start := p.tok.Pos
	alias := p.tok.Lit
	p.next() // ident
	p.next() // @
	p.expect(LBRACE, "'{'")
	fields, ellipsis := p.parsePatternFields()
	body := p.finishPatternLambda(start, alias, fields, ellipsis)
	return body
}

func (p *Parser) parsePatternLambda(aliasBefore string) Node {
	start := p.tok.Pos
	p.next() // {
	fields, ellipsis := p.parsePatternFields()
	alias := aliasBefore
	if p.tok.Tok == AT {
		p.next()
		alias = p.tok.Lit
		p.expect(IDENT, "identifier")
	}
	return p.finishPatternLambda(start, alias, fields, ellipsis)
}

func (p *Parser) finishPatternLambda(start Pos, alias string, fields []PatternField, ellipsis bool) Node {
	p.expect(COLON, "':'")
	body := p.parseExpr()
	return &Lambda{
		base: base{start, body.End()},
		Param: LambdaParam{
			IsPattern: true,
			Alias:     alias,
			Fields:    fields,
			Ellipsis:  ellipsis,
		},
		Body: body,
	}
}

func (p *Parser) parsePatternFields() (fields []PatternField, ellipsis bool) {
	for p.tok.Tok != RBRACE && p.tok.Tok != EOF {
		if p.tok.Tok == ELLIPSIS {
			ellipsis = true
			p.next()
			break
		}
		name := p.tok.Lit
		p.expect(IDENT, "identifier")
		var def Node
		if p.tok.Tok == QUESTION {
			p.next()
			def = p.parseOpExpr(0)
		}
		fields = append(fields, PatternField{Name: name, Default: def})
		if p.tok.Tok == COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(RBRACE, "'}'")
	return fields, ellipsis
}

func (p *Parser) parseLetIn() Node {
	start := p.tok.Pos
	p.next() // let
	var bindings []Binding
	for p.tok.Tok != kwIn && p.tok.Tok != EOF {
		bindings = append(bindings, p.parseBinding())
	}
	p.expect(kwIn, "'in'")
	body := p.parseExpr()
	return &LetIn{base: base{start, body.End()}, Bindings: bindings, Body: body}
}

func (p *Parser) parseWith() Node {
	start := p.tok.Pos
	p.next() // with
	expr := p.parseExpr()
	p.expect(SEMI, "';'")
	body := p.parseExpr()
	return &With{base: base{start, body.End()}, Expr: expr, Body: body}
}

func (p *Parser) parseIf() Node {
	start := p.tok.Pos
	p.next() // if
	cond := p.parseExpr()
	p.expect(kwThen, "'then'")
	thenBranch := p.parseExpr()
	p.expect(kwElse, "'else'")
	elseBranch := p.parseExpr()
	return &If{base: base{start, elseBranch.End()}, Cond: cond, Then: thenBranch, Else: elseBranch}
}

func (p *Parser) parseAssert() Node {
	start := p.tok.Pos
	p.next() // assert
	cond := p.parseExpr()
	p.expect(SEMI, "';'")
	body := p.parseExpr()
	return &Assert{base: base{start, body.End()}, Cond: cond, Body: body}
}

func (p *Parser) parseBinding() Binding {
	if p.tok.Tok == kwInherit {
		p.next()
		var from Node
		if p.tok.Tok == LPAREN {
			p.next()
			from = p.parseExpr()
			p.expect(RPAREN, "')'")
		}
		var ids []string
		for p.tok.Tok == IDENT || p.tok.Tok == kwOrKw {
			ids = append(ids, p.tok.Lit)
			p.next()
		}
		p.expect(SEMI, "';'")
		return Binding{IsInherit: true, From: from, InheritIDs: ids}
	}

	path := p.parseAttrPath()
	p.expect(EQ, "'='")
	val := p.parseExpr()
	p.expect(SEMI, "';'")
	return Binding{Path: path, Value: val}
}

func (p *Parser) parseAttrPath() []AttrPathSegment {
	segs := []AttrPathSegment{p.parseAttrPathSegment()}
	for p.tok.Tok == DOT {
		p.next()
		segs = append(segs, p.parseAttrPathSegment())
	}
	return segs
}

func (p *Parser) parseAttrPathSegment() AttrPathSegment {
	switch p.tok.Tok {
	case IDENT:
		name := p.tok.Lit
		p.next()
		return AttrPathSegment{Name: name}
	case kwOrKw:
		p.next()
		return AttrPathSegment{Name: "or"}
	case STRING_BEGIN:
		// A quoted segment is always treated as dynamic, even when its
		// text is statically known: "a.b" would otherwise collapse a
		// two-segment escape hatch into what looks like one segment
		// named "a.b", indistinguishable from a real two-segment path.
		lit := p.parseStringLit().(*StringLit)
		return AttrPathSegment{Dynamic: true, Expr: lit}
	case INTERP_BEGIN:
		p.next()
		expr := p.parseExpr()
		p.expect(INTERP_END, "'}'")
		return AttrPathSegment{Dynamic: true, Expr: expr}
	default:
		p.errorf("expected attribute name at offset %d", p.tok.Pos)
		name := p.tok.Lit
		if p.tok.Tok != EOF {
			p.next()
		}
		return AttrPathSegment{Name: name}
	}
}

func (p *Parser) parseOpExpr(minPrec int) Node {
	left := p.parseUnary()
	for {
		info, ok := binOps[p.tok.Tok]
		if !ok || info.prec < minPrec {
			break
		}
		op := p.tok.Tok
		p.next()
		nextMin := info.prec + 1
		if info.right {
			nextMin = info.prec
		}
		right := p.parseOpExpr(nextMin)
		left = &BinaryOp{base: base{left.Pos(), right.End()}, Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseUnary() Node {
	if p.tok.Tok == MINUS || p.tok.Tok == NOT {
		op := p.tok.Tok
		start := p.tok.Pos
		p.next()
		operand := p.parseUnary()
		return &UnaryOp{base: base{start, operand.End()}, Op: op, Operand: operand}
	}
	return p.parseApplyChain()
}

func (p *Parser) startsArgument() bool {
	switch p.tok.Tok {
	case IDENT, INT, FLOAT, PATH, STRING_BEGIN, LPAREN, LBRACE, LBRACKET, kwRec, kwOrKw:
		return true
	default:
		return false
	}
}

func (p *Parser) parseApplyChain() Node {
	left := p.parsePostfix()
	for p.startsArgument() {
		right := p.parsePostfix()
		left = &Apply{base: base{left.Pos(), right.End()}, Fn: left, Arg: right}
	}
	return left
}

func (p *Parser) parsePostfix() Node {
	prim := p.parsePrimary()

	if p.tok.Tok == DOT {
		start := prim.Pos()
		p.next()
		path := p.parseAttrPath()
		sel := &Select{base: base{start, p.prevEnd}, Base: prim, Path: path}
		if p.tok.Tok == kwOrKw {
			p.next()
			def := p.parsePostfix()
			sel.Default = def
			sel.EndPos = def.End()
		}
		prim = sel
	}

	if p.tok.Tok == QUESTION {
		start := prim.Pos()
		p.next()
		path := p.parseAttrPath()
		prim = &HasAttr{base: base{start, p.prevEnd}, Base: prim, Path: path}
	}

	return prim
}

func (p *Parser) parsePrimary() Node {
	switch p.tok.Tok {
	case IDENT:
		n := &Ident{base: base{p.tok.Pos, p.tok.End}, Name: p.tok.Lit}
		p.next()
		return n
	case kwOrKw:
		// "or" is a soft keyword; usable as a plain identifier elsewhere.
		n := &Ident{base: base{p.tok.Pos, p.tok.End}, Name: "or"}
		p.next()
		return n
	case INT:
		n := &IntLit{base: base{p.tok.Pos, p.tok.End}, Value: p.tok.Lit}
		p.next()
		return n
	case FLOAT:
		n := &FloatLit{base: base{p.tok.Pos, p.tok.End}, Value: p.tok.Lit}
		p.next()
		return n
	case PATH:
		n := &PathLit{base: base{p.tok.Pos, p.tok.End}, Value: p.tok.Lit}
		p.next()
		return n
	case STRING_BEGIN:
		return p.parseStringLit()
	case LPAREN:
		start := p.tok.Pos
		p.next()
		inner := p.parseExpr()
		p.expect(RPAREN, "')'")
		return &Paren{base: base{start, p.prevEnd}, Inner: inner}
	case LBRACKET:
		return p.parseList()
	case kwRec:
		p.next()
		return p.parseAttrSet(true)
	case LBRACE:
		return p.parseAttrSet(false)
	default:
		p.errorf("unexpected token %d at offset %d", p.tok.Tok, p.tok.Pos)
		n := &Ident{base: base{p.tok.Pos, p.tok.End}, Name: ""}
		if p.tok.Tok != EOF {
			p.next()
		}
		return n
	}
}

func (p *Parser) parseStringLit() Node {
	start := p.tok.Pos
	p.next() // STRING_BEGIN
	var parts []StringPart
	for {
		switch p.tok.Tok {
		case STRING_TEXT:
			parts = append(parts, StringPart{Text: p.tok.Lit})
			p.next()
		case INTERP_BEGIN:
			p.next()
			expr := p.parseExpr()
			p.expect(INTERP_END, "'}'")
			parts = append(parts, StringPart{Expr: expr})
		case STRING_END:
			p.next()
			return &StringLit{base: base{start, p.prevEnd}, Parts: parts}
		default:
			p.errorf("unterminated string at offset %d", p.tok.Pos)
			return &StringLit{base: base{start, p.tok.Pos}, Parts: parts}
		}
	}
}

func (p *Parser) parseList() Node {
	start := p.tok.Pos
	p.next() // [
	var elems []Node
	for p.tok.Tok != RBRACKET && p.tok.Tok != EOF {
		elems = append(elems, p.parsePostfix())
	}
	p.expect(RBRACKET, "']'")
	return &List{base: base{start, p.prevEnd}, Elems: elems}
}

func (p *Parser) parseAttrSet(recursive bool) Node {
	start := p.tok.Pos
	p.next() // {
	var bindings []Binding
	for p.tok.Tok != RBRACE && p.tok.Tok != EOF {
		bindings = append(bindings, p.parseBinding())
	}
	p.expect(RBRACE, "'}'")
	return &AttrSet{base: base{start, p.prevEnd}, Recursive: recursive, Bindings: bindings}
}
