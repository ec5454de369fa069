package arith

import "strconv"

// DefaultMaxDepth is the nesting limit used when no MaxDepth option is given.
const DefaultMaxDepth = 10000

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	depthopt int
	trimopt  struct{}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// src is the full source text.
	src string
	// maxdepth is the deepest the tree builder may recurse. Each split and
	// each bracketed group is one level.
	maxdepth int
	// trim indicates that trailing whitespace is ignored.
	trim bool
}

// MaxDepth sets the deepest nesting of operators and brackets that Parse
// accepts. Deeper expressions fail with NestingTooDeep. Panics if n is not
// positive.
func MaxDepth(n int) ParseOption {
	if n <= 0 {
		panic("arith: invalid max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}

// TrimSpace tells the parser to ignore whitespace at the end of the input as
// well as at the start. Whitespace elsewhere is still invalid.
func TrimSpace() ParseOption {
	return trimopt{}
}

func (trimopt) parseOption(p parsectx) parsectx {
	p.trim = true
	return p
}

func newparsectx(src string, opts []ParseOption) parsectx {
	p := parsectx{maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	p.src = src
	return p
}
