package lexer

import "github.com/yaklabco/autosarlint/pkg/cppast"

const maxRawDelimiter = 16

// scanQuoted consumes a quoted literal starting at the opening quote.
// Backslash escapes and line splices are honoured. An unescaped newline or
// end of input produces an error token that stops before the newline.
// A user-defined literal suffix is kept in the token.
func (lx *Lexer) scanQuoted(quote byte, kind cppast.TokenKind) cppast.TokenKind {
	lx.cur.bump()
	for !lx.cur.eof() {
		ch := lx.cur.peek()
		switch {
		case ch == quote:
			lx.cur.bump()
			lx.scanUDSuffix()
			return kind
		case ch == '\\':
			if n := lx.cur.lineContinuation(); n > 0 {
				lx.cur.bumpN(n)
				continue
			}
			lx.cur.bump()
			if lx.cur.peek() != '\n' {
				lx.cur.bump()
			}
		case ch == '\n':
			return cppast.TokError
		case ch == '\r' && lx.cur.peekAt(1) == '\n':
			return cppast.TokError
		default:
			lx.cur.bump()
		}
	}
	return cppast.TokError
}

// scanRawString consumes R"delim( ... )delim". The cursor sits on the
// opening quote. A delimiter that is too long or contains a forbidden
// byte, or a missing terminator, yields an error token.
func (lx *Lexer) scanRawString() cppast.TokenKind {
	lx.cur.bump() // '"'
	delimStart := lx.cur.off
	for !lx.cur.eof() && lx.cur.peek() != '(' {
		switch lx.cur.peek() {
		case ' ', ')', '\\', '\t', '\v', '\f', '\n', '"':
			return lx.abandonLine()
		}
		lx.cur.bump()
		if lx.cur.off-delimStart > maxRawDelimiter {
			return lx.abandonLine()
		}
	}
	if lx.cur.eof() {
		return cppast.TokError
	}
	terminator := ")" + string(lx.src[delimStart:lx.cur.off]) + `"`
	lx.cur.bump() // '('

	for !lx.cur.eof() {
		if lx.cur.hasPrefix(terminator) {
			lx.cur.bumpN(len(terminator))
			lx.scanUDSuffix()
			return cppast.TokStringLiteral
		}
		lx.cur.bump()
	}
	return cppast.TokError
}

// abandonLine consumes the rest of the physical line as an error token.
func (lx *Lexer) abandonLine() cppast.TokenKind {
	for !lx.cur.eof() && lx.cur.peek() != '\n' {
		if lx.cur.peek() == '\r' && lx.cur.peekAt(1) == '\n' {
			break
		}
		lx.cur.bump()
	}
	return cppast.TokError
}

func (lx *Lexer) scanUDSuffix() {
	if !isIdentStart(lx.cur.peek()) || lx.cur.eof() {
		return
	}
	for isIdentContinue(lx.cur.peek()) && !lx.cur.eof() {
		lx.cur.bump()
	}
}
