// Package arith implements a small float64 calculator for embedding in other
// programs, e.g. to evaluate numeric configuration values.
//
// An expression is made of numbers, the binary operators + - * /, the signs
// + and -, and round brackets. * and / bind more tightly than + and -, and all
// binary operators are left-associative, so "8-2-1*3" is "(8-2)-(1*3)".
// Numbers are written like JSON numbers: "0", "12", "1.5", "2.5e-3". Leading
// zeros, a bare trailing point like "1.", and whitespace between tokens are
// invalid.
//
// Parsing and evaluation are separate steps. Parse reports malformed numbers
// and brackets, and Eval reports errors like division by zero or an operator
// missing an operand. Every failure is an *Error carrying a Code.
//
package arith
