package lint

import (
	"bytes"
	"sort"

	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/fix"
)

// Node query helpers.

// FunctionBody returns the body block of a function definition, or nil.
func FunctionBody(fn *cppast.Node) *cppast.Node {
	if fn == nil || fn.Kind != cppast.NodeFunctionDef {
		return nil
	}
	return fn.ChildByRole(cppast.RoleBody)
}

// Parameters returns the parameter declarations of a function definition
// or function declaration.
func Parameters(fn *cppast.Node) []*cppast.Node {
	if fn == nil {
		return nil
	}
	return fn.ChildrenByRole(cppast.RoleParam)
}

// EnclosingFunction returns the function definition containing n, or nil.
func EnclosingFunction(n *cppast.Node) *cppast.Node {
	if n == nil {
		return nil
	}
	return n.Enclosing(cppast.NodeFunctionDef)
}

// IsVirtualFunction reports whether a function node carries virtual,
// override or final.
func IsVirtualFunction(fn *cppast.Node) bool {
	if fn == nil {
		return false
	}
	return fn.AttrBool(cppast.AttrVirtual) || fn.AttrBool(cppast.AttrOverride) || fn.AttrBool(cppast.AttrFinal)
}

// HasSpecifier reports whether a declaration lists spec among its
// decl-specifiers.
func HasSpecifier(n *cppast.Node, spec string) bool {
	for _, s := range n.AttrStrings(cppast.AttrSpecifiers) {
		if s == spec {
			return true
		}
	}
	return false
}

// NameToken returns the declarator name token of n and whether it exists.
func NameToken(n *cppast.Node) (cppast.Token, bool) {
	if n == nil || n.File == nil {
		return cppast.Token{}, false
	}
	idx := n.AttrInt(cppast.AttrNameToken, -1)
	if idx < 0 || idx >= len(n.File.Tokens) {
		return cppast.Token{}, false
	}
	return n.File.Tokens[idx], true
}

// Token helpers.

// IsIdentifier reports whether tok is an identifier with one of names.
func IsIdentifier(tok cppast.Token, names ...string) bool {
	if tok.Kind != cppast.TokIdentifier {
		return false
	}
	for _, name := range names {
		if tok.Text == name {
			return true
		}
	}
	return false
}

// ReplaceToken returns an edit replacing tok with text.
func ReplaceToken(tok cppast.Token, text string) fix.TextEdit {
	return fix.TextEdit{StartOffset: tok.StartOffset, EndOffset: tok.EndOffset, NewText: text}
}

// Line helpers.

// LineContent returns the content of a 1-based line without its newline.
func LineContent(file *cppast.FileSnapshot, lineNum int) []byte {
	if file == nil {
		return nil
	}
	return file.LineContent(lineNum)
}

// IsBlankLine returns true if the line contains only whitespace.
func IsBlankLine(file *cppast.FileSnapshot, lineNum int) bool {
	return len(bytes.TrimSpace(LineContent(file, lineNum))) == 0
}

// LineEndsWithContinuation reports whether a line ends in a backslash
// splice, ignoring trailing blanks.
func LineEndsWithContinuation(file *cppast.FileSnapshot, lineNum int) bool {
	content := bytes.TrimRight(LineContent(file, lineNum), " \t\r")
	return bytes.HasSuffix(content, []byte{'\\'})
}

// LineEndsInsideToken reports whether some token continues past the end
// of the line: a block comment, raw string or spliced directive.
func LineEndsInsideToken(file *cppast.FileSnapshot, lineNum int) bool {
	if file == nil {
		return false
	}
	toks := file.Tokens
	i := sort.Search(len(toks), func(i int) bool { return toks[i].End.Line > lineNum })
	return i < len(toks) && toks[i].Start.Line <= lineNum
}

// LineStartsInsideToken reports whether the start of the line lies within
// a token that began on an earlier line.
func LineStartsInsideToken(file *cppast.FileSnapshot, lineNum int) bool {
	if file == nil {
		return false
	}
	toks := file.Tokens
	i := sort.Search(len(toks), func(i int) bool { return toks[i].End.Line >= lineNum })
	return i < len(toks) && toks[i].Start.Line < lineNum
}

// LineNewline returns the newline sequence ending a line, defaulting to
// "\n" for the last line of a file without one.
func LineNewline(file *cppast.FileSnapshot, lineNum int) string {
	if file == nil || lineNum < 1 || lineNum > len(file.Lines) {
		return "\n"
	}
	info := file.Lines[lineNum-1]
	if info.EndOffset > info.NewlineStart {
		return string(file.Content[info.NewlineStart:info.EndOffset])
	}
	for i := lineNum - 2; i >= 0; i-- {
		prev := file.Lines[i]
		if prev.EndOffset > prev.NewlineStart {
			return string(file.Content[prev.NewlineStart:prev.EndOffset])
		}
	}
	return "\n"
}
