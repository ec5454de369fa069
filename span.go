package arith

// span is an inclusive range of byte offsets into the source text. An empty
// span has start == end+1.
type span struct {
	start, end int
}

func (s span) empty() bool {
	return s.start > s.end
}

// split is an operator found in a span, with the spans on either side of it.
type split struct {
	left  span
	op    int
	right span
}

// at splits s around the operator at offset op.
func (s span) at(op int) split {
	return split{
		left:  span{s.start, op - 1},
		op:    op,
		right: span{op + 1, s.end},
	}
}

// findsplit finds the operator at which to split s. Scanning runs from the
// right end of s to the left, skipping over bracketed groups. The first + or -
// found ends the scan, unless it is the sign of an exponent. Otherwise, the
// rightmost * or / is used. So, the result is the rightmost top-level operator
// of the loosest precedence present, which makes the tree left-associative.
//
// The result is false if s contains no top-level operator or if a close
// bracket in s has no matching open bracket.
func findsplit(src string, s span) (split, bool) {
	cand := -1
	for p := s.end; p >= s.start; p-- {
		switch src[p] {
		case ')':
			q, ok := matchopen(src, s.start, p)
			if !ok {
				return split{}, false
			}
			p = q
		case '+', '-':
			if p > s.start && (src[p-1] == 'e' || src[p-1] == 'E') {
				// 1e-5 is a number, not a subtraction.
				continue
			}
			return s.at(p), true
		case '*', '/':
			if cand < 0 {
				cand = p
			}
		}
	}
	if cand < 0 {
		return split{}, false
	}
	return s.at(cand), true
}

// matchopen finds the open bracket matching the close bracket at src[p],
// looking no further left than start.
func matchopen(src string, start, p int) (int, bool) {
	depth := 0
	for ; p >= start; p-- {
		switch src[p] {
		case ')':
			depth++
		case '(':
			depth--
		}
		if depth == 0 {
			return p, true
		}
	}
	return 0, false
}
