package arith

// Eval evaluates the expression and returns its result. Each operator in the
// tree records its result, so evaluating the same Expr again recomputes the
// same values. If evaluation fails, the error is an *Error giving the first
// operator that failed; operands are evaluated right before left.
func (e *Expr) Eval() (float64, error) {
	if e.n == nil {
		return 0, ErrReleased
	}
	if err := e.n.eval(); err != nil {
		return 0, err
	}
	return e.n.value(), nil
}

// Result returns the result recorded by the last evaluation of e. Before any
// successful evaluation, Result is the value of the expression if it is a
// single number and 0 otherwise.
func (e *Expr) Result() float64 {
	if e.n == nil {
		return 0
	}
	return e.n.value()
}

// eval computes the node's value after evaluating its operands.
func (n *node) eval() error {
	switch n.kind {
	case nodeNum:
		return nil
	case nodeNeg, nodeNop:
		if n.left == nil {
			return n.fail(TooLessOperand)
		}
		if err := n.left.eval(); err != nil {
			return err
		}
		v := n.left.value()
		if n.kind == nodeNeg {
			v = -v
		}
		n.val = v
		return nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv:
		if n.right == nil {
			return n.fail(TooLessOperand)
		}
		if err := n.right.eval(); err != nil {
			return err
		}
		if n.left == nil {
			// Only * and / can get here. A sign is nodeNeg or nodeNop.
			return n.fail(TooLessOperand)
		}
		if err := n.left.eval(); err != nil {
			return err
		}
		l, r := n.left.value(), n.right.value()
		switch n.kind {
		case nodeAdd:
			n.val = l + r
		case nodeSub:
			n.val = l - r
		case nodeMul:
			n.val = l * r
		case nodeDiv:
			if r == 0 {
				return n.fail(DivisionByZero)
			}
			n.val = l / r
		}
		return nil
	default:
		return n.fail(UnsupportedOperator)
	}
}

// fail creates an error for an operator node.
func (n *node) fail(code Code) *Error {
	return &Error{Code: code, Col: n.pos + 1, Text: string(n.sym())}
}

// EvalString is a shortcut to parse and evaluate an expression.
func EvalString(src string, opts ...ParseOption) (float64, error) {
	e, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}
