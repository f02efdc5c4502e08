// Package lexer converts C++ source bytes into located tokens.
//
// The lexer never fails: malformed input (unterminated literals or
// comments, stray bytes) becomes cppast.TokError tokens and scanning
// resumes after them. Whitespace and line splices are dropped; comments
// are kept as tokens with their exact text.
package lexer

import "github.com/yaklabco/autosarlint/pkg/cppast"

// Lexer produces tokens one at a time. A Lexer is not safe for concurrent
// use; create one per goroutine or call Tokenize.
type Lexer struct {
	src    []byte
	cur    cursor
	bol    bool // only whitespace seen since the last newline
	inPP   bool // inside a directive split by a block comment
	ppLine int  // last physical line of the current directive
}

// New creates a lexer over src.
func New(src []byte) *Lexer {
	lx := &Lexer{src: src}
	lx.Reset()
	return lx
}

// Reset rewinds the lexer to the start of the input.
func (lx *Lexer) Reset() {
	lx.cur = newCursor(lx.src)
	lx.bol = true
	lx.inPP = false
	lx.ppLine = 0
}

// Tokenize returns every token of src in source order.
func Tokenize(src []byte) []cppast.Token {
	lx := New(src)
	tokens := make([]cppast.Token, 0, len(src)/4)
	for {
		tok, ok := lx.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next returns the next token. The second result is false at end of input.
func (lx *Lexer) Next() (cppast.Token, bool) {
	lx.skipSpace()
	if lx.cur.eof() {
		return cppast.Token{}, false
	}

	start := lx.cur.mark()
	startPos := lx.cur.position()

	// The remainder of a directive after an embedded block comment.
	if lx.inPP && lx.cur.line == lx.ppLine {
		if !lx.atComment() {
			kind := lx.scanDirective()
			lx.bol = false
			return lx.emit(kind, start, startPos), true
		}
	} else {
		lx.inPP = false
	}

	var kind cppast.TokenKind
	ch := lx.cur.peek()

	switch {
	case lx.atComment():
		kind = lx.scanComment()
	case ch == '#' && lx.bol:
		kind = lx.scanDirective()
	case isIdentStart(ch):
		kind = lx.scanIdentOrPrefixedLiteral()
	case isDigit(ch) || (ch == '.' && isDigit(lx.cur.peekAt(1))):
		kind = lx.scanNumber()
	case ch == '"':
		kind = lx.scanQuoted('"', cppast.TokStringLiteral)
	case ch == '\'':
		kind = lx.scanQuoted('\'', cppast.TokCharLiteral)
	default:
		kind = lx.scanOperator()
	}

	if kind != cppast.TokComment {
		lx.bol = false
	}
	return lx.emit(kind, start, startPos), true
}

func (lx *Lexer) emit(kind cppast.TokenKind, start mark, startPos cppast.Position) cppast.Token {
	return cppast.Token{
		Kind:        kind,
		Text:        string(lx.src[start.off:lx.cur.off]),
		StartOffset: start.off,
		EndOffset:   lx.cur.off,
		Start:       startPos,
		End:         lx.cur.position(),
	}
}

// skipSpace drops whitespace and line splices, tracking line starts.
func (lx *Lexer) skipSpace() {
	for !lx.cur.eof() {
		switch ch := lx.cur.peek(); ch {
		case '\n':
			lx.cur.bump()
			lx.bol = true
		case ' ', '\t', '\r', '\v', '\f':
			lx.cur.bump()
		case '\\':
			n := lx.cur.lineContinuation()
			if n == 0 {
				return
			}
			lx.cur.bumpN(n)
		default:
			return
		}
	}
}

func (lx *Lexer) atComment() bool {
	return lx.cur.peek() == '/' && (lx.cur.peekAt(1) == '/' || lx.cur.peekAt(1) == '*')
}

// scanComment consumes a // or /* */ comment. A // comment ends before the
// newline; a backslash splice extends it onto the next line.
func (lx *Lexer) scanComment() cppast.TokenKind {
	lx.cur.bump() // '/'
	if lx.cur.bump() == '/' {
		for !lx.cur.eof() {
			if n := lx.cur.lineContinuation(); n > 0 {
				lx.cur.bumpN(n)
				continue
			}
			if lx.cur.peek() == '\n' || (lx.cur.peek() == '\r' && lx.cur.peekAt(1) == '\n') {
				break
			}
			lx.cur.bump()
		}
		return cppast.TokComment
	}

	for !lx.cur.eof() {
		if lx.cur.peek() == '*' && lx.cur.peekAt(1) == '/' {
			lx.cur.bumpN(2)
			return cppast.TokComment
		}
		lx.cur.bump()
	}
	return cppast.TokError
}

// scanDirective consumes a preprocessor line including continuations. It
// stops before a comment so the comment becomes its own token; quoted text
// is skipped so "//" inside an include path does not end the directive.
func (lx *Lexer) scanDirective() cppast.TokenKind {
	for !lx.cur.eof() {
		if n := lx.cur.lineContinuation(); n > 0 {
			lx.cur.bumpN(n)
			continue
		}
		ch := lx.cur.peek()
		if ch == '\n' || (ch == '\r' && lx.cur.peekAt(1) == '\n') {
			break
		}
		if lx.atComment() {
			lx.inPP = true
			lx.ppLine = lx.cur.line
			break
		}
		if ch == '"' || ch == '\'' {
			lx.skipQuotedInDirective(ch)
			continue
		}
		lx.cur.bump()
	}
	lx.trimTrailingSpace()
	return cppast.TokPreprocessor
}

func (lx *Lexer) skipQuotedInDirective(quote byte) {
	lx.cur.bump()
	for !lx.cur.eof() {
		ch := lx.cur.peek()
		switch {
		case ch == quote:
			lx.cur.bump()
			return
		case ch == '\n':
			return
		case ch == '\\' && lx.cur.peekAt(1) != '\n':
			lx.cur.bumpN(2)
		default:
			lx.cur.bump()
		}
	}
}

// trimTrailingSpace moves the cursor back over blanks consumed at the end
// of a directive so the token text carries no trailing whitespace.
func (lx *Lexer) trimTrailingSpace() {
	end := lx.cur.off
	for end > 0 {
		switch lx.src[end-1] {
		case ' ', '\t', '\r':
			end--
			continue
		}
		break
	}
	if end == lx.cur.off {
		return
	}
	// Blanks never contain a newline, so the column moves back in step.
	lx.cur.col -= lx.cur.off - end
	lx.cur.off = end
}
