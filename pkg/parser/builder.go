package parser

import (
	"strings"

	"github.com/yaklabco/autosarlint/pkg/cppast"
)

// builder walks the code tokens (comments and directives removed) by
// position. Positions index b.code; nodes store the underlying token
// indices.
type builder struct {
	file *cppast.FileSnapshot
	toks []cppast.Token
	code []int
}

func newBuilder(file *cppast.FileSnapshot) *builder {
	code := make([]int, 0, len(file.Tokens))
	for i, tok := range file.Tokens {
		if tok.Kind == cppast.TokComment || tok.Kind == cppast.TokPreprocessor {
			continue
		}
		code = append(code, i)
	}
	return &builder{file: file, toks: file.Tokens, code: code}
}

func (b *builder) n() int { return len(b.code) }

func (b *builder) tok(p int) cppast.Token {
	if p < 0 || p >= len(b.code) {
		return cppast.Token{Kind: cppast.TokError}
	}
	return b.toks[b.code[p]]
}

// idx maps a position to its token index, clamped to the code range.
func (b *builder) idx(p int) int {
	switch {
	case len(b.code) == 0:
		return -1
	case p < 0:
		return b.code[0]
	case p >= len(b.code):
		return b.code[len(b.code)-1]
	default:
		return b.code[p]
	}
}

func (b *builder) is(p int, text string) bool {
	return b.tok(p).Is(text)
}

func (b *builder) isIdent(p int) bool {
	return b.tok(p).Kind == cppast.TokIdentifier
}

// node creates a node over positions [first, last].
func (b *builder) node(kind cppast.NodeKind, first, last int) *cppast.Node {
	if last < first {
		last = first
	}
	return cppast.NewTokenNode(kind, b.file, b.idx(first), b.idx(last))
}

// extend moves the end of n to position last.
func (b *builder) extend(n *cppast.Node, last int) {
	if idx := b.idx(last); idx >= n.FirstToken {
		n.LastToken = idx
	}
}

// advance guarantees forward progress for the parse loops.
func (b *builder) advance(pos, next int) int {
	if next <= pos {
		return pos + 1
	}
	return next
}

func isOpener(tok cppast.Token) bool {
	return tok.Kind == cppast.TokPunct && (tok.Text == "(" || tok.Text == "[" || tok.Text == "{")
}

func isCloser(tok cppast.Token) bool {
	return tok.Kind == cppast.TokPunct && (tok.Text == ")" || tok.Text == "]" || tok.Text == "}")
}

// closer returns the position of the bracket matching the opener at p, or
// the last position when the group is never closed.
func (b *builder) closer(p int) int {
	depth := 0
	for q := p; q < b.n(); q++ {
		tok := b.tok(q)
		switch {
		case isOpener(tok):
			depth++
		case isCloser(tok):
			depth--
			if depth == 0 {
				return q
			}
		}
	}
	return b.n() - 1
}

// findStmtEnd scans from p to the ';' that ends the statement, skipping
// bracketed groups. It stops without success at an unmatched '}' or at
// the end of input.
func (b *builder) findStmtEnd(p int) (int, bool) {
	q := p
	for q < b.n() {
		tok := b.tok(q)
		switch {
		case tok.Is(";"):
			return q, true
		case tok.Is("}"):
			return q, false
		case isOpener(tok):
			q = b.closer(q) + 1
		default:
			q++
		}
	}
	return b.n(), false
}

// findAtDepth returns the first position in [p, limit) holding text outside
// any bracketed group, or -1.
func (b *builder) findAtDepth(p, limit int, text string) int {
	for q := p; q < limit && q < b.n(); {
		tok := b.tok(q)
		if tok.Is(text) {
			return q
		}
		if isOpener(tok) {
			q = b.closer(q) + 1
			continue
		}
		q++
	}
	return -1
}

// skipAngles skips a template argument list starting at the '<' at p and
// returns the position after the closing '>'. In strict mode tokens that
// rarely appear inside template arguments abort the match.
func (b *builder) skipAngles(p, limit int, strict bool) (int, bool) {
	depth := 0
	for q := p; q < limit && q < b.n(); q++ {
		tok := b.tok(q)
		switch {
		case tok.Is("<"):
			depth++
		case tok.Is(">"):
			depth--
		case tok.Is(">>"):
			depth -= 2
		case tok.Is("("), tok.Is("["):
			q = b.closer(q)
			continue
		case tok.Is(";"), tok.Is("{"), tok.Is("}"), tok.Is(")"), tok.Is("]"):
			return p, false
		case strict && (tok.Is("&&") || tok.Is("||") || tok.Is("=") || tok.Kind == cppast.TokStringLiteral):
			return p, false
		}
		if depth <= 0 {
			return q + 1, true
		}
	}
	return p, false
}

// skipAttributes skips [[...]] groups and alignas(...) and reports whether
// any of them named maybe_unused.
func (b *builder) skipAttributes(p int) (int, bool) {
	maybeUnused := false
	for {
		switch {
		case b.is(p, "[") && b.is(p+1, "["):
			end := b.closer(p)
			for q := p; q <= end; q++ {
				if b.tok(q).Text == "maybe_unused" {
					maybeUnused = true
				}
			}
			p = end + 1
		case b.tok(p).IsKeyword("alignas") && b.is(p+1, "("):
			p = b.closer(p+1) + 1
		default:
			return p, maybeUnused
		}
	}
}

// textRange joins the token texts of [first, last] with single spaces.
func (b *builder) textRange(first, last int) string {
	parts := make([]string, 0, last-first+1)
	for q := first; q <= last && q < b.n(); q++ {
		parts = append(parts, b.tok(q).Text)
	}
	return strings.Join(parts, " ")
}

// opaque covers an unclassifiable run starting at p. It ends after the next
// ';' or balanced brace group, or before an unmatched '}'.
func (b *builder) opaque(p int) (*cppast.Node, int) {
	q := p
	for q < b.n() {
		tok := b.tok(q)
		if tok.Is(";") {
			return b.node(cppast.NodeOpaque, p, q), q + 1
		}
		if tok.Is("}") {
			if q == p {
				return b.node(cppast.NodeOpaque, p, p), p + 1
			}
			return b.node(cppast.NodeOpaque, p, q-1), q
		}
		if tok.Is("{") {
			end := b.closer(q)
			return b.node(cppast.NodeOpaque, p, end), end + 1
		}
		if isOpener(tok) {
			q = b.closer(q) + 1
			continue
		}
		q++
	}
	return b.node(cppast.NodeOpaque, p, b.n()-1), b.n()
}
