package lexer

import (
	"strings"

	"github.com/yaklabco/autosarlint/pkg/cppast"
)

// scanNumber consumes a preprocessing number: a digit (or . digit) followed
// by identifier bytes, dots, digit separators and signed exponents. The
// result is classified as an integer or floating literal afterwards, so
// suffixes and malformed forms stay inside one token.
func (lx *Lexer) scanNumber() cppast.TokenKind {
	start := lx.cur.off
	lx.cur.bump()
	for !lx.cur.eof() {
		ch := lx.cur.peek()
		switch {
		case (ch == '+' || ch == '-') && isExponentMarker(lx.src[lx.cur.off-1]):
			lx.cur.bump()
		case ch == '\'' && isIdentContinue(lx.cur.peekAt(1)):
			lx.cur.bumpN(2)
		case ch == '.' || (isIdentContinue(ch) && ch < 0x80):
			lx.cur.bump()
		default:
			return classifyNumber(string(lx.src[start:lx.cur.off]))
		}
	}
	return classifyNumber(string(lx.src[start:lx.cur.off]))
}

func isExponentMarker(b byte) bool {
	return b == 'e' || b == 'E' || b == 'p' || b == 'P'
}

func classifyNumber(text string) cppast.TokenKind {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") {
		if strings.ContainsAny(lower, ".p") {
			return cppast.TokFloatLiteral
		}
		return cppast.TokIntLiteral
	}
	if strings.HasPrefix(lower, "0b") {
		return cppast.TokIntLiteral
	}
	if strings.ContainsAny(lower, ".e") {
		return cppast.TokFloatLiteral
	}
	return cppast.TokIntLiteral
}

// IntegerSuffix splits an integer literal into its digits and its suffix
// (u, l, ll, z and combinations, in any case).
func IntegerSuffix(text string) (string, string) {
	end := len(text)
	for end > 0 {
		switch text[end-1] {
		case 'u', 'U', 'l', 'L', 'z', 'Z':
			end--
			continue
		}
		break
	}
	return text[:end], text[end:]
}

// FloatSuffix splits a decimal floating literal into its digits and its
// f/F/l/L suffix. Hex floats keep their digits intact.
func FloatSuffix(text string) (string, string) {
	if len(text) == 0 {
		return text, ""
	}
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") {
		if last := text[len(text)-1]; last == 'l' || last == 'L' || last == 'f' || last == 'F' {
			return text[:len(text)-1], text[len(text)-1:]
		}
		return text, ""
	}
	switch text[len(text)-1] {
	case 'f', 'F', 'l', 'L':
		return text[:len(text)-1], text[len(text)-1:]
	}
	return text, ""
}
