package arith

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree. Unary operators keep their operand
// in left. A binary operator may lack either operand when the input does, e.g.
// "10/" or "*1"; evaluating such a node fails.
type node struct {
	kind nodeKind
	// pos is the byte offset of the operator or of the first byte of the
	// number.
	pos int
	// val is the value of a number, or the result of the last successful
	// evaluation of an operator.
	val float64

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // val

	nodeNeg // evaluate left, then negate
	nodeNop // evaluate left
	nodeAdd // evaluate right, evaluate left, add right
	nodeSub // evaluate right, evaluate left, sub right
	nodeMul // evaluate right, evaluate left, mul right
	nodeDiv // evaluate right, evaluate left, div by right
)

// opnode creates the node for the operator c at offset pos with the given
// operands. An addition or subtraction with no left operand is a sign.
func opnode(c byte, pos int, left, right *node) *node {
	n := &node{pos: pos, left: left, right: right}
	switch c {
	case '+':
		n.kind = nodeAdd
	case '-':
		n.kind = nodeSub
	case '*':
		n.kind = nodeMul
	case '/':
		n.kind = nodeDiv
	}
	if left == nil {
		switch n.kind {
		case nodeAdd:
			n.kind, n.left, n.right = nodeNop, right, nil
		case nodeSub:
			n.kind, n.left, n.right = nodeNeg, right, nil
		}
	}
	return n
}

func (n *node) sym() byte {
	switch n.kind {
	case nodeAdd, nodeNop:
		return '+'
	case nodeSub, nodeNeg:
		return '-'
	case nodeMul:
		return '*'
	case nodeDiv:
		return '/'
	default:
		return '?'
	}
}

func (n *node) unary() bool {
	return n.kind == nodeNeg || n.kind == nodeNop
}

// prec is the binding strength of a binary operator: 1 for + and -, 2 for * and
// /. Others are 0.
func (n *node) prec() int {
	switch n.kind {
	case nodeAdd, nodeSub:
		return 1
	case nodeMul, nodeDiv:
		return 2
	default:
		return 0
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n in infix form. Absent operands are omitted. Brackets are
// written only where the text would otherwise parse to a different tree.
func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(strconv.FormatFloat(n.val, 'g', -1, 64))
	case nodeNeg, nodeNop:
		b.WriteByte(n.sym())
		n.left.fmtin(b, n, false)
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		n.left.fmtin(b, n, false)
		b.WriteByte(n.sym())
		n.right.fmtin(b, n, true)
	default:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		n.left.fmtin(b, n, false)
		b.WriteByte('#')
		n.right.fmtin(b, n, true)
		b.WriteByte('$')
	}
}

// fmtin writes n as an operand of parent.
func (n *node) fmtin(b *strings.Builder, parent *node, right bool) {
	if n == nil {
		return
	}
	if !n.grouped(parent, right) {
		n.fmt(b)
		return
	}
	b.WriteByte('(')
	n.fmt(b)
	b.WriteByte(')')
}

// grouped reports whether n needs brackets as an operand of parent.
func (n *node) grouped(parent *node, right bool) bool {
	switch {
	case n.kind == nodeNum:
		return false
	case n.unary():
		// A sign directly after another operator would be taken as a binary
		// operator with a missing operand.
		return parent.unary() || right || parent.prec() == 2
	case parent.unary():
		return n.prec() == 1
	case right:
		return n.prec() <= parent.prec()
	default:
		return n.prec() < parent.prec()
	}
}

// value returns the value of a number or the cached result of an operator.
func (n *node) value() float64 {
	return n.val
}

// release unlinks every node below n.
func (n *node) release() {
	if n == nil {
		return
	}
	n.left.release()
	n.right.release()
	n.left, n.right = nil, nil
}
