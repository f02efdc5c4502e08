package lexer

import "github.com/yaklabco/autosarlint/pkg/cppast"

// Encoding prefixes that may precede a string or character literal.
var (
	stringPrefixes = map[string]bool{
		"L": true, "u8": true, "u": true, "U": true,
		"R": true, "LR": true, "u8R": true, "uR": true, "UR": true,
	}
	charPrefixes = map[string]bool{
		"L": true, "u8": true, "u": true, "U": true,
	}
)

// scanIdentOrPrefixedLiteral scans an identifier or keyword. When the
// identifier is an encoding prefix directly followed by a quote, the whole
// literal is scanned instead. Bytes >= 0x80 are identifier bytes so that
// non-ASCII names and stray UTF-8 stay inside one token.
func (lx *Lexer) scanIdentOrPrefixedLiteral() cppast.TokenKind {
	start := lx.cur.off
	for isIdentContinue(lx.cur.peek()) && !lx.cur.eof() {
		lx.cur.bump()
	}
	word := string(lx.src[start:lx.cur.off])

	switch lx.cur.peek() {
	case '"':
		if stringPrefixes[word] {
			if word[len(word)-1] == 'R' {
				return lx.scanRawString()
			}
			return lx.scanQuoted('"', cppast.TokStringLiteral)
		}
	case '\'':
		if charPrefixes[word] {
			return lx.scanQuoted('\'', cppast.TokCharLiteral)
		}
	}

	if IsKeyword(word) {
		return cppast.TokKeyword
	}
	return cppast.TokIdentifier
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
