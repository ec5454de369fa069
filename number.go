package arith

import (
	"math"
	"strconv"

	"tlog.app/go/errors"
)

// Number = Int [ Frac ] [ Exp ]
// Int    = '0' | '1'..'9' { '0'..'9' }
// Frac   = '.' digit { digit }
// Exp    = ( 'e' | 'E' ) [ '+' | '-' ] digit { digit }

func isdigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// scannum returns the length of the longest prefix of text that is a number.
// The result is 0 if no prefix of text is a number. A dangling fraction or
// exponent, as in "1." or "1e", makes the whole text invalid.
func scannum(text string) int {
	i := 0
	switch {
	case i < len(text) && text[i] == '0':
		i++
	case i < len(text) && '1' <= text[i] && text[i] <= '9':
		for i++; i < len(text) && isdigit(text[i]); i++ {
		}
	default:
		return 0
	}
	if i < len(text) && text[i] == '.' {
		i++
		if i >= len(text) || !isdigit(text[i]) {
			return 0
		}
		for i++; i < len(text) && isdigit(text[i]); i++ {
		}
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		if i >= len(text) || !isdigit(text[i]) {
			return 0
		}
		for i++; i < len(text) && isdigit(text[i]); i++ {
		}
	}
	return i
}

// parsenum converts the text of a number literal. The whole of text must be
// a number.
func parsenum(text string) (float64, Code) {
	k := scannum(text)
	if k == 0 {
		return 0, InvalidNumber
	}
	v, err := strconv.ParseFloat(text[:k], 64)
	if err != nil {
		// Underflow rounds to zero or a subnormal and is fine. Anything else
		// that isn't overflow can't pass scannum.
		if !errors.Is(err, strconv.ErrRange) {
			return 0, InvalidNumber
		}
		if math.IsInf(v, 0) {
			return 0, NumberTooLarge
		}
	}
	if k != len(text) {
		return 0, InvalidNumber
	}
	return v, CodeNone
}
