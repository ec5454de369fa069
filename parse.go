package arith

import "strings"

// Expr is a parsed expression. Evaluating an Expr records the result of each
// operator in the tree, so an Expr must not be evaluated concurrently.
// Separate Exprs are independent.
type Expr struct {
	// n is the root node of the expression. It is nil after Release.
	n *node
	// src is the text the expression was parsed from.
	src string
}

// Parse parses an arithmetic expression. Whitespace is allowed only before the
// expression, unless the TrimSpace option is given. The given options are
// applied in order.
//
// Parse does not evaluate the expression, so an expression with an operator
// missing an operand, like "10/", parses successfully and fails only when it
// is evaluated.
func Parse(src string, opts ...ParseOption) (*Expr, error) {
	p := newparsectx(src, opts)
	s := span{start: 0, end: len(src) - 1}
	for s.start <= s.end && isspace(src[s.start]) {
		s.start++
	}
	if p.trim {
		for s.end >= s.start && isspace(src[s.end]) {
			s.end--
		}
	}
	if s.empty() {
		return nil, p.errat(InvalidNumber, s)
	}
	n, err := p.build(s, 1)
	if err != nil {
		return nil, err
	}
	return &Expr{n: n, src: src}, nil
}

func isspace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// build parses the expression in s. depth is the nesting level of s.
func (p *parsectx) build(s span, depth int) (*node, error) {
	if depth > p.maxdepth {
		return nil, p.errat(NestingTooDeep, s)
	}
	sp, ok := findsplit(p.src, s)
	if !ok {
		return p.term(s, depth)
	}
	var left, right *node
	var err error
	if !sp.right.empty() {
		right, err = p.build(sp.right, depth+1)
		if err != nil {
			return nil, err
		}
	}
	if !sp.left.empty() {
		left, err = p.build(sp.left, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return opnode(p.src[sp.op], sp.op, left, right), nil
}

// term parses a span containing no top-level operator, which must be a number
// or a bracketed expression.
func (p *parsectx) term(s span, depth int) (*node, error) {
	if s.empty() {
		return nil, p.errat(InvalidNumber, s)
	}
	if p.src[s.start] == '(' {
		if p.src[s.end] != ')' {
			return nil, p.errat(UnexpectedBracket, s)
		}
		return p.build(span{s.start + 1, s.end - 1}, depth+1)
	}
	v, code := parsenum(p.src[s.start : s.end+1])
	if code != CodeNone {
		return nil, p.errat(code, s)
	}
	return &node{kind: nodeNum, pos: s.start, val: v}, nil
}

// errat creates an error for the text in s.
func (p *parsectx) errat(code Code, s span) *Error {
	err := Error{Code: code, Col: s.start + 1}
	if !s.empty() {
		err.Text = p.src[s.start : s.end+1]
	}
	return &err
}

// Source returns the text from which e was parsed.
func (e *Expr) Source() string {
	return e.src
}

// String renders the expression in infix form. The rendering does not
// reproduce the source text, but it parses to an expression that evaluates to
// the same result. Operands missing from the source are omitted.
func (e *Expr) String() string {
	if e.n == nil {
		return ""
	}
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

// Release releases the tree of nodes created by Parse. Release does not
// affect the Expr value itself, which remains the caller's; after Release,
// e.Eval returns ErrReleased and e.String returns the empty string.
func (e *Expr) Release() {
	e.n.release()
	e.n = nil
}
