package lexer

import "github.com/yaklabco/autosarlint/pkg/cppast"

// cursor walks the source bytes and tracks the 1-based line and column of
// the current offset.
type cursor struct {
	src  []byte
	off  int
	line int
	col  int
}

// mark is a saved cursor position.
type mark struct {
	off  int
	line int
	col  int
}

func newCursor(src []byte) cursor {
	return cursor{src: src, line: 1, col: 1}
}

func (c *cursor) eof() bool {
	return c.off >= len(c.src)
}

// peek returns the current byte or 0 at end of input.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

// peekAt returns the byte n positions ahead or 0 past the end.
func (c *cursor) peekAt(n int) byte {
	if c.off+n >= len(c.src) || c.off+n < 0 {
		return 0
	}
	return c.src[c.off+n]
}

// bump consumes one byte and returns it.
func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	if b == '\n' {
		c.line++
		c.col = 1
	} else {
		c.col++
	}
	return b
}

// bumpN consumes n bytes.
func (c *cursor) bumpN(n int) {
	for range n {
		c.bump()
	}
}

// hasPrefix reports whether the remaining input starts with s.
func (c *cursor) hasPrefix(s string) bool {
	if c.off+len(s) > len(c.src) {
		return false
	}
	return string(c.src[c.off:c.off+len(s)]) == s
}

// lineContinuation returns the length of a line splice (\ LF or \ CR LF)
// at the cursor, or 0.
func (c *cursor) lineContinuation() int {
	if c.peek() != '\\' {
		return 0
	}
	switch {
	case c.peekAt(1) == '\n':
		return 2
	case c.peekAt(1) == '\r' && c.peekAt(2) == '\n':
		return 3
	default:
		return 0
	}
}

func (c *cursor) mark() mark {
	return mark{off: c.off, line: c.line, col: c.col}
}

func (c *cursor) position() cppast.Position {
	return cppast.Position{Line: c.line, Column: c.col}
}
