package lexer

import "github.com/yaklabco/autosarlint/pkg/cppast"

// Operators by length, longest first so that scanning is greedy.
var (
	operators3 = []string{"<<=", ">>=", "->*", "...", "<=>"}
	operators2 = []string{
		"::", "->", ".*", "++", "--", "<<", ">>", "<=", ">=", "==", "!=",
		"&&", "||", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "##",
	}
)

// scanOperator consumes an operator or punctuator. Any other byte becomes
// a one-byte error token.
func (lx *Lexer) scanOperator() cppast.TokenKind {
	for _, op := range operators3 {
		if lx.cur.hasPrefix(op) {
			lx.cur.bumpN(len(op))
			return cppast.TokOperator
		}
	}
	for _, op := range operators2 {
		if lx.cur.hasPrefix(op) {
			lx.cur.bumpN(len(op))
			return cppast.TokOperator
		}
	}

	switch lx.cur.bump() {
	case '(', ')', '[', ']', '{', '}', ';', ',':
		return cppast.TokPunct
	case '+', '-', '*', '/', '%', '=', '<', '>', '!', '~', '&', '|', '^', '?', ':', '.', '#':
		return cppast.TokOperator
	default:
		return cppast.TokError
	}
}
