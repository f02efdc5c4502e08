package rules

import (
	"fmt"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// Category names, one per AUTOSAR chapter used by the catalog.
const (
	catLanguageIndependent = "Language Independent Issues"
	catLexical             = "Lexical Conventions"
	catBasicConcepts       = "Basic Concepts"
	catConversions         = "Standard Conversions"
	catExpressions         = "Expressions"
	catStatements          = "Statements"
	catDeclarations        = "Declarations"
	catClasses             = "Classes"
	catExceptions          = "Exception Handling"
	catPreprocessing       = "Preprocessing"
	catLibrary             = "Library"
	catSupportLibrary      = "Language Support Library"
	catDiagnostics         = "Diagnostics"
	catNumerics            = "Numerics"
)

func errCancelled(ctx *lint.RuleContext) error {
	return fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
}

// keywordToken returns the leading keyword token of a statement or cast.
func keywordToken(ctx *lint.RuleContext, n *cppast.Node) cppast.Token {
	return ctx.Token(n.AttrInt(cppast.AttrKeyword, n.FirstToken))
}

// keywordDiagnostic reports at the leading keyword of n.
func keywordDiagnostic(ctx *lint.RuleContext, ruleID string, n *cppast.Node, msg string) lint.Diagnostic {
	return lint.NewTokenDiagnostic(ruleID, ctx.File, keywordToken(ctx, n), msg).Build()
}

// nameDiagnostic reports at the declarator name of n, falling back to the
// whole node.
func nameDiagnostic(ctx *lint.RuleContext, ruleID string, n *cppast.Node, msg string) lint.Diagnostic {
	if tok, ok := lint.NameToken(n); ok {
		return lint.NewTokenDiagnostic(ruleID, ctx.File, tok, msg).Build()
	}
	return lint.NewDiagnostic(ruleID, n, msg).Build()
}

// offsetSpan converts the byte range [start, end) to a span.
func offsetSpan(file *cppast.FileSnapshot, start, end int) cppast.SourceSpan {
	sl, sc := file.LineAt(start)
	el, ec := file.LineAt(end)
	return cppast.SourceSpan{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
}

// offsetDiagnostic reports the byte range [start, end).
func offsetDiagnostic(ctx *lint.RuleContext, ruleID string, start, end int, msg string) lint.Diagnostic {
	return lint.NewDiagnosticAt(ruleID, ctx.File.Path, offsetSpan(ctx.File, start, end), msg).Build()
}

// codeNeighbours returns the code tokens around position pos of the code
// index: the previous one, and the next one.
func codeNeighbours(ctx *lint.RuleContext, code []int, pos int) (cppast.Token, cppast.Token) {
	var prev, next cppast.Token
	if pos > 0 {
		prev = ctx.Token(code[pos-1])
	}
	if pos+1 < len(code) {
		next = ctx.Token(code[pos+1])
	}
	return prev, next
}

// isMemberAccess reports whether tok qualifies the name that follows it.
func isMemberAccess(tok cppast.Token) bool {
	return tok.Is(".") || tok.Is("->") || tok.Is("::")
}

// literalBody returns the part of a char or string literal between the
// quotes and its offset within the token text. Raw strings report false.
func literalBody(text string) (string, int, bool) {
	q := strings.IndexAny(text, `"'`)
	if q < 0 {
		return "", 0, false
	}
	if q > 0 && text[q-1] == 'R' {
		return "", 0, false
	}
	end := strings.LastIndexByte(text, text[q])
	if end <= q {
		return "", 0, false
	}
	return text[q+1 : end], q + 1, true
}

// escape is one backslash sequence inside a literal body.
type escape struct {
	offset int // within the body
	seq    string
}

// escapes lists the escape sequences of a literal body. A line splice is
// not an escape.
func escapes(body string) []escape {
	var out []escape
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			continue
		}
		j := i + 1
		switch c := body[j]; {
		case c == '\n', c == '\r':
			i = j
			continue
		case c >= '0' && c <= '7':
			for j < len(body) && j < i+4 && body[j] >= '0' && body[j] <= '7' {
				j++
			}
		case c == 'x':
			j++
			for j < len(body) && isHex(body[j]) {
				j++
			}
		case c == 'u' || c == 'U':
			j++
		default:
			j++
		}
		out = append(out, escape{offset: i, seq: body[i:j]})
		i = j - 1
	}
	return out
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isOctalDigit(c byte) bool {
	return c >= '0' && c <= '7'
}

// classBody returns the member block of a class definition.
func classBody(cls *cppast.Node) *cppast.Node {
	for child := cls.FirstChild; child != nil; child = child.Next {
		if child.BlockKind() == cppast.BlockClass {
			return child
		}
	}
	return nil
}

// isMemberFunction reports whether a class member declares or defines a
// function.
func isMemberFunction(member *cppast.Node) bool {
	return member.Kind == cppast.NodeFunctionDef || member.DeclKind() == cppast.DeclFunction
}

// ownedBy reports whether n belongs to fn directly rather than to a
// nested function or local class.
func ownedBy(n, fn *cppast.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == fn {
			return true
		}
		if p.Kind == cppast.NodeFunctionDef || p.Kind == cppast.NodeClassDef {
			return false
		}
	}
	return false
}
