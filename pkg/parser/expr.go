package parser

import "github.com/yaklabco/autosarlint/pkg/cppast"

var namedCasts = map[string]cppast.CastKind{
	"static_cast":      cppast.CastStatic,
	"dynamic_cast":     cppast.CastDynamic,
	"const_cast":       cppast.CastConst,
	"reinterpret_cast": cppast.CastReinterpret,
}

// castPrefixKeywords may directly precede a C-style cast.
var castPrefixKeywords = map[string]bool{
	"return": true, "throw": true, "case": true, "else": true, "do": true,
	"co_return": true, "co_yield": true, "co_await": true,
}

// scanCasts appends a cast Expression child to parent for every named or
// C-style cast found in positions [first, last].
func (b *builder) scanCasts(parent *cppast.Node, first, last int) {
	for q := first; q <= last && q < b.n(); q++ {
		tok := b.tok(q)
		if kind, ok := namedCasts[tok.Text]; ok && tok.Kind == cppast.TokKeyword {
			r := q + 1
			if b.is(r, "<") {
				if end, ok := b.skipAngles(r, last+1, false); ok {
					r = end
				}
			}
			end := r - 1
			if b.is(r, "(") {
				end = b.closer(r)
			}
			b.addCast(parent, kind, q, end)
			continue
		}
		if tok.Is("(") {
			if end, ok := b.cStyleCast(q, first, last); ok {
				b.addCast(parent, cppast.CastCStyle, q, end)
			}
		}
	}
}

func (b *builder) addCast(parent *cppast.Node, kind cppast.CastKind, first, last int) {
	n := b.node(cppast.NodeExpression, first, last)
	n.SetAttr(cppast.AttrCastKind, kind)
	n.SetAttr(cppast.AttrKeyword, b.idx(first))
	cppast.AppendChild(parent, n)
}

// cStyleCast decides whether the '(' at q opens a C-style cast. The
// parenthesised text must be a type-id (builtin or named type, optional
// cv-qualifiers and ptr-operators) and the token after ')' must start an
// operand.
func (b *builder) cStyleCast(q, first, last int) (int, bool) {
	if q > first {
		prev := b.tok(q - 1)
		switch {
		case prev.Kind == cppast.TokIdentifier, prev.IsLiteral(),
			prev.Is(")"), prev.Is("]"), prev.Is(">"):
			return 0, false
		case prev.Kind == cppast.TokKeyword && !castPrefixKeywords[prev.Text]:
			return 0, false
		}
	}

	end := b.closer(q)
	if end >= last || end <= q+1 {
		return 0, false
	}

	builtin, named, ptr := false, false, false
	for r := q + 1; r < end; {
		tok := b.tok(r)
		switch {
		case tok.Kind == cppast.TokKeyword && builtinTypeKeywords[tok.Text] && tok.Text != "auto":
			builtin = true
			r++
		case tok.IsKeyword("const"), tok.IsKeyword("volatile"):
			r++
		case tok.Is("*"), tok.Is("&"), tok.Is("&&"):
			if !builtin && !named {
				return 0, false
			}
			ptr = true
			r++
		case (tok.Kind == cppast.TokIdentifier || tok.Is("::")) && !named && !builtin:
			after, _, _, ok := b.skipQualifiedName(r, end)
			if !ok {
				return 0, false
			}
			named = true
			r = after
		default:
			return 0, false
		}
	}

	next := b.tok(end + 1)
	switch {
	case builtin:
		return end, startsOperand(next, true)
	case named && ptr:
		return end, startsOperand(next, false)
	case named:
		return end, next.Kind == cppast.TokIdentifier || next.IsLiteral() ||
			next.IsKeyword("this") || next.IsKeyword("nullptr")
	}
	return 0, false
}

func startsOperand(tok cppast.Token, unary bool) bool {
	switch {
	case tok.Kind == cppast.TokIdentifier, tok.IsLiteral(), tok.Is("("):
		return true
	case tok.Kind == cppast.TokKeyword:
		switch tok.Text {
		case "this", "nullptr", "true", "false", "sizeof", "new",
			"static_cast", "dynamic_cast", "const_cast", "reinterpret_cast":
			return true
		}
		return false
	case unary:
		switch tok.Text {
		case "-", "+", "!", "~", "*", "&", "++", "--", "::":
			return tok.Kind == cppast.TokOperator || tok.Kind == cppast.TokPunct
		}
	}
	return false
}
