package arith_test

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arith"
)

// f converts a literal at run time so that expected values are rounded the
// same way the evaluator rounds them.
func f(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		panic(err)
	}
	return v
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "123.45", f("123.45")},
		{"zero", "0", 0},
		{"neg", "-1.0", -1},
		{"plus", "+1.0", 1},
		{"negmul", "-1.0*43", -43},
		{"add", "123.45+12.34", f("123.45") + f("12.34")},
		{"prec", "123.45-12.34*1234", f("123.45") - float64(f("12.34")*f("1234"))},
		{"sub", "0.0-0.123", 0 - f("0.123")},
		{"negsub", "-0.1-0.123", -f("0.1") - f("0.123")},
		{"negzero", "-0.0-0.123", -f("0.0") - f("0.123")},
		{"plusadd", "+0.1+0.123", f("0.1") + f("0.123")},
		{"negdiv", "-4.6/0.123", -(f("4.6") / f("0.123"))},
		{"negdiv2", "-0.239874/0.123", -(f("0.239874") / f("0.123"))},
		{"third", "1/3", f("1") / f("3")},
		{"bracket", "(1+2)*3", 9},
		{"nested", "(((2)))", 2},
		{"exp", "1e-5+2", f("1e-5") + 2},
		{"expbig", "2.5E+3*4", 10000},
		{"leftassoc-sub", "8-2-1*3", 3},
		{"leftassoc-div", "8/4/2", 1},
		{"mixed", "2*3+4*5", 26},
		{"negneg", "-(-1)", 1},
		{"mulneg", "2*(-3)", -6},
		{"space", " \t\n\r7", 7},
		{"underflow", "1e-400", 0},
		{"overflow", "1e300*1e300", math.Inf(1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := arith.Parse(c.src)
			require.NoError(t, err, "parsing %q", c.src)
			r, err := a.Eval()
			require.NoError(t, err, "evaluating %q", c.src)
			assert.Equal(t, c.r, r)
			assert.Equal(t, r, a.Result())
		})
	}
}

func TestEvalNumbers(t *testing.T) {
	// Every literal evaluates to exactly what strconv gives.
	lits := []string{
		"0", "1", "9", "10", "123", "0.5", "0.1", "3.14159265358979", "12.340",
		"1e0", "1e1", "1E-1", "6.02214076e23", "1.602176634e-19",
		"1.7976931348623157e308", "4.9e-324", "9007199254740993",
	}
	for _, s := range lits {
		r, err := arith.EvalString(s)
		if assert.NoError(t, err, "%q", s) {
			assert.Equal(t, f(s), r, "%q", s)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code arith.Code
		col  int
	}{
		{"divzero", "11.0/0.0", arith.DivisionByZero, 5},
		{"divzeroexpr", "1/(2-2)", arith.DivisionByZero, 2},
		{"zerozero", "0/0", arith.DivisionByZero, 2},
		{"divnoright", "10.0/", arith.TooLessOperand, 5},
		{"subnoright", "10.0-", arith.TooLessOperand, 5},
		{"addnoright", "0.0+", arith.TooLessOperand, 4},
		{"subnoright0", "0.0-", arith.TooLessOperand, 4},
		{"mulnoleft", "*1.0", arith.TooLessOperand, 1},
		{"trailing", "123/1.0-", arith.TooLessOperand, 8},
		{"addadd", "1++3", arith.TooLessOperand, 2},
		{"ops", "1+3*/+-*4", arith.TooLessOperand, 8},
		{"negaddadd", "-1++3", arith.TooLessOperand, 3},
		{"mulnoleftadd", "*1+3", arith.TooLessOperand, 1},
		{"divnoleftadd", "/23.43290+3", arith.TooLessOperand, 1},
		{"sign", "-", arith.TooLessOperand, 1},
		{"plus", "+", arith.TooLessOperand, 1},
		{"negneg", "--1", arith.TooLessOperand, 1},
		// The right operand is evaluated first.
		{"rightfirst", "*1+1/0", arith.DivisionByZero, 5},
		{"noleftbeforediv", "*1/0", arith.TooLessOperand, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := arith.Parse(c.src)
			require.NoError(t, err, "parsing %q", c.src)
			r, err := a.Eval()
			require.Error(t, err, "evaluating %q gave %g", c.src, r)
			assert.Zero(t, r)
			assert.ErrorIs(t, err, c.code)
			assert.Equal(t, c.code, arith.CodeOf(err))
			var e arith.InputError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, c.col, e.Pos())
			assert.Contains(t, err.Error(), c.code.String())
		})
	}
}

func TestEvalStringErrors(t *testing.T) {
	cases := []struct {
		src  string
		code arith.Code
	}{
		{"10.0.0.0", arith.InvalidNumber},
		{"0.0.0", arith.InvalidNumber},
		{"1%2", arith.InvalidNumber},
		{"1 2", arith.InvalidNumber},
		{"1+ 2", arith.InvalidNumber},
		{"", arith.InvalidNumber},
		{"1e309", arith.NumberTooLarge},
		{"-1e309", arith.NumberTooLarge},
		{"(1+2*3", arith.UnexpectedBracket},
		{"11.0/0.0", arith.DivisionByZero},
		{"10.0/", arith.TooLessOperand},
	}
	for _, c := range cases {
		_, err := arith.EvalString(c.src)
		assert.Equal(t, c.code, arith.CodeOf(err), "%q: %v", c.src, err)
	}
}

func TestEvalIdempotent(t *testing.T) {
	a, err := arith.Parse("(1.5+2.25)*4-7/3")
	require.NoError(t, err)
	r1, err := a.Eval()
	require.NoError(t, err)
	r2, err := a.Eval()
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.Equal(t, r1, a.Result())

	b, err := arith.Parse("1/0")
	require.NoError(t, err)
	_, err1 := b.Eval()
	_, err2 := b.Eval()
	assert.Equal(t, err1, err2)
}

func TestEvalResultBeforeEval(t *testing.T) {
	a, err := arith.Parse("42")
	require.NoError(t, err)
	assert.Equal(t, 42.0, a.Result())
	b, err := arith.Parse("1+2")
	require.NoError(t, err)
	assert.Zero(t, b.Result())
}

// TestEvalPrecedence checks random flat expressions against evaluation by
// hand: products and quotients left to right, then sums and differences
// left to right.
func TestEvalPrecedence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ops := "+-*/"
	for i := 0; i < 500; i++ {
		n := 1 + rng.Intn(8)
		nums := make([]float64, n+1)
		syms := make([]byte, n)
		var b strings.Builder
		for k := range nums {
			nums[k] = float64(1+rng.Intn(999)) / 8
			if k > 0 {
				syms[k-1] = ops[rng.Intn(len(ops))]
				b.WriteByte(syms[k-1])
			}
			b.WriteString(strconv.FormatFloat(nums[k], 'f', -1, 64))
		}
		src := b.String()

		var terms []float64
		var signs []byte
		cur := nums[0]
		for k, c := range syms {
			switch c {
			case '*':
				cur *= nums[k+1]
			case '/':
				cur /= nums[k+1]
			default:
				terms = append(terms, cur)
				signs = append(signs, c)
				cur = nums[k+1]
			}
		}
		terms = append(terms, cur)
		want := terms[0]
		for k, c := range signs {
			if c == '+' {
				want += terms[k+1]
			} else {
				want -= terms[k+1]
			}
		}

		got, err := arith.EvalString(src)
		if assert.NoError(t, err, "%q", src) {
			assert.Equal(t, want, got, "%q", src)
		}
	}
}

func TestEvalRender(t *testing.T) {
	srcs := []string{
		"123.45-12.34*1234",
		"(1+2)*3",
		"-(1.25-2)/(3+(-4))",
		"1/(2/(3/(4/5)))",
		"-(-(-(0.1)))*(+(0.2))",
		"(1e-7-1)*(1e22+1)",
	}
	for _, src := range srcs {
		a, err := arith.Parse(src)
		require.NoError(t, err, "parsing %q", src)
		want, err := a.Eval()
		require.NoError(t, err, "evaluating %q", src)
		got, err := arith.EvalString(a.String())
		require.NoError(t, err, "%q renders as %q", src, a.String())
		assert.Equal(t, want, got, "%q renders as %q", src, a.String())
	}
}

func TestEvalConcurrent(t *testing.T) {
	srcs := []string{"1+2*3", "(4-1)/3", "-2*(-2)", "1e3/8"}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < 100; k++ {
				for _, src := range srcs {
					// Separate trees need no coordination.
					a, err := arith.Parse(src)
					if err != nil {
						continue
					}
					a.Eval()
				}
			}
		}()
	}
	wg.Wait()
}

func TestCodeStrings(t *testing.T) {
	names := map[arith.Code]string{
		arith.InvalidNumber:       "INVALID_NUMBER",
		arith.NumberTooLarge:      "NUMBER_TOO_LARGE",
		arith.UnexpectedBracket:   "UNEXPECTED_BRACKET",
		arith.TooLessOperand:      "TOO_LESS_OPERAND",
		arith.DivisionByZero:      "DIVISION_BY_ZERO",
		arith.UnsupportedOperator: "UNSUPPORT_OPERATOR",
		arith.NestingTooDeep:      "NESTING_TOO_DEEP",
	}
	for c, name := range names {
		assert.Equal(t, name, c.String())
		got, ok := arith.ParseCode(name)
		assert.True(t, ok, name)
		assert.Equal(t, c, got)
	}
	_, ok := arith.ParseCode("OK")
	assert.False(t, ok)
	assert.Equal(t, "Code(100)", arith.Code(100).String())
	assert.Equal(t, arith.CodeNone, arith.CodeOf(nil))
	assert.Equal(t, arith.CodeNone, arith.CodeOf(arith.ErrReleased))
	assert.Equal(t, arith.DivisionByZero, arith.CodeOf(arith.DivisionByZero))
}
