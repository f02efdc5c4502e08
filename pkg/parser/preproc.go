package parser

import (
	"strings"

	"github.com/yaklabco/autosarlint/pkg/cppast"
)

// attachDirectives adds a Preprocessor node per directive to root, merged
// into the top-level children in token order. A directive split by a block
// comment continues in a later TokPreprocessor token that lacks the '#'.
func (b *builder) attachDirectives(root *cppast.Node) {
	var directives []*cppast.Node
	var current *cppast.Node

	for i, tok := range b.toks {
		if tok.Kind != cppast.TokPreprocessor {
			if tok.Kind != cppast.TokComment {
				current = nil
			}
			continue
		}
		if !strings.HasPrefix(tok.Text, "#") && current != nil {
			current.LastToken = i
			if current.AttrString(cppast.AttrDirective) == "define" {
				body := current.AttrString(cppast.AttrMacroBody) + " " + macroBody(tok.Text)
				current.SetAttr(cppast.AttrMacroBody, strings.TrimSpace(body))
			}
			continue
		}

		n := cppast.NewTokenNode(cppast.NodePreprocessor, b.file, i, i)
		describeDirective(n, tok)
		directives = append(directives, n)
		current = n
	}

	if len(directives) == 0 {
		return
	}

	children := root.Children()
	for _, child := range children {
		cppast.RemoveChild(root, child)
	}
	i, j := 0, 0
	for i < len(children) || j < len(directives) {
		if j >= len(directives) || (i < len(children) && children[i].FirstToken < directives[j].FirstToken) {
			cppast.AppendChild(root, children[i])
			i++
			continue
		}
		cppast.AppendChild(root, directives[j])
		j++
	}
}

func describeDirective(n *cppast.Node, tok cppast.Token) {
	text := strings.TrimPrefix(tok.Text, "#")
	i := skipBlanks(text, 0)
	j := i
	for j < len(text) && isWordByte(text[j]) {
		j++
	}
	word := text[i:j]
	n.SetAttr(cppast.AttrDirective, word)
	if word != "define" && word != "undef" {
		return
	}

	k := skipBlanks(text, j)
	m := k
	for m < len(text) && isWordByte(text[m]) {
		m++
	}
	if m == k {
		return
	}
	n.SetAttr(cppast.AttrMacro, text[k:m])
	n.SetAttr(cppast.AttrMacroOffset, tok.StartOffset+1+k)
	if word != "define" {
		return
	}

	rest := text[m:]
	if strings.HasPrefix(rest, "(") {
		n.SetAttr(cppast.AttrFunctionMac, true)
		if closeIdx := strings.IndexByte(rest, ')'); closeIdx >= 0 {
			rest = rest[closeIdx+1:]
		} else {
			rest = ""
		}
	}
	n.SetAttr(cppast.AttrMacroBody, macroBody(rest))
}

// macroBody removes line splices from a replacement list and collapses
// runs of blanks.
func macroBody(text string) string {
	text = strings.ReplaceAll(text, "\\\r\n", " ")
	text = strings.ReplaceAll(text, "\\\n", " ")
	return strings.Join(strings.Fields(text), " ")
}

func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\\' || s[i] == '\r' || s[i] == '\n') {
		i++
	}
	return i
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
