package arith

import (
	"strconv"

	"tlog.app/go/errors"
)

// Code classifies a parse or evaluation failure. Every Code is itself an
// error, so errors.Is(err, DivisionByZero) reports whether err failed for that
// reason.
type Code int8

const (
	// CodeNone is the zero Code. No error carries it.
	CodeNone Code = iota
	// InvalidNumber means text where a number was expected does not match the
	// number grammar, including empty input.
	InvalidNumber
	// NumberTooLarge means a numeric literal overflows float64.
	NumberTooLarge
	// UnexpectedBracket means an open bracket with no matching close bracket
	// where a bracketed group was expected.
	UnexpectedBracket
	// TooLessOperand means an operator is missing an operand it needs.
	TooLessOperand
	// DivisionByZero means a divisor evaluated to exactly zero.
	DivisionByZero
	// UnsupportedOperator means an operator node with an unknown symbol.
	UnsupportedOperator
	// NestingTooDeep means the expression nests deeper than the parser's
	// MaxDepth.
	NestingTooDeep
)

var codenames = [...]string{
	CodeNone:            "OK",
	InvalidNumber:       "INVALID_NUMBER",
	NumberTooLarge:      "NUMBER_TOO_LARGE",
	UnexpectedBracket:   "UNEXPECTED_BRACKET",
	TooLessOperand:      "TOO_LESS_OPERAND",
	DivisionByZero:      "DIVISION_BY_ZERO",
	UnsupportedOperator: "UNSUPPORT_OPERATOR",
	NestingTooDeep:      "NESTING_TOO_DEEP",
}

func (c Code) String() string {
	if c < 0 || int(c) >= len(codenames) {
		return "Code(" + strconv.Itoa(int(c)) + ")"
	}
	return codenames[c]
}

func (c Code) Error() string {
	return c.String()
}

// ParseCode returns the Code named by s, as produced by Code.String.
func ParseCode(s string) (Code, bool) {
	for i, name := range codenames {
		if i != 0 && name == s {
			return Code(i), true
		}
	}
	return CodeNone, false
}

// Error is an error from parsing or evaluating an expression. It implements
// InputError.
type Error struct {
	// Code is the kind of failure.
	Code Code
	// Col is the 1-based byte column of the text or operator that failed.
	Col int
	// Text is the offending text. For operator failures it is the operator.
	Text string
}

func (err *Error) Error() string {
	if err.Text == "" {
		return errpos(err.Col, err.Code.String())
	}
	return errpos(err.Col, err.Code.String()+" "+strconv.Quote(err.Text))
}

func (err *Error) Pos() int {
	return err.Col
}

func (err *Error) Unwrap() error {
	return err.Code
}

// CodeOf returns the Code of the first *Error in err's chain, or CodeNone if
// there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return CodeNone
}

// ErrReleased is returned when evaluating an expression after Release.
var ErrReleased = errors.New("arith: expression released")

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based byte column of the text that caused the error.
	Pos() int
}

var _ InputError = (*Error)(nil)
