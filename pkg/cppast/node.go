package cppast

// NodeKind classifies a node in the shallow syntax forest.
type NodeKind uint8

// Node kinds. The forest is intentionally shallow: detectors read shape
// from Attrs rather than from a full grammar.
const (
	NodeTranslationUnit NodeKind = iota

	NodeDeclaration
	NodeStatement
	NodeExpression
	NodeFunctionDef
	NodeClassDef
	NodePreprocessor
	NodeBlock

	// NodeOpaque covers a token run the builder could not classify.
	// Detectors skip it.
	NodeOpaque
)

var nodeKindNames = [...]string{
	NodeTranslationUnit: "TranslationUnit",
	NodeDeclaration:     "Declaration",
	NodeStatement:       "Statement",
	NodeExpression:      "Expression",
	NodeFunctionDef:     "FunctionDef",
	NodeClassDef:        "ClassDef",
	NodePreprocessor:    "Preprocessor",
	NodeBlock:           "Block",
	NodeOpaque:          "Opaque",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node is a single construct in the syntax forest.
// Nodes form a tree with parent/child/sibling links and are read-only once
// the builder returns.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Token span (indices into FileSnapshot.Tokens), inclusive.
	// Both are -1 for synthetic nodes.
	FirstToken int
	LastToken  int

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Attrs holds shape attributes keyed by the Attr* constants.
	Attrs map[string]any
}

// IsStatementLike reports whether the node occupies a statement slot in a
// block: statements, nested blocks, local declarations and opaque runs.
func (n *Node) IsStatementLike() bool {
	switch n.Kind {
	case NodeStatement, NodeBlock, NodeOpaque:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Span returns the line/column range covered by the node's tokens.
func (n *Node) Span() SourceSpan {
	if n.File == nil || n.FirstToken < 0 || n.LastToken < n.FirstToken || n.LastToken >= len(n.File.Tokens) {
		return SourceSpan{}
	}
	return SpanOf(n.File.Tokens[n.FirstToken], n.File.Tokens[n.LastToken])
}

// Tokens returns the token slice covered by the node.
func (n *Node) Tokens() []Token {
	if n.File == nil || n.FirstToken < 0 || n.LastToken < n.FirstToken || n.LastToken >= len(n.File.Tokens) {
		return nil
	}
	return n.File.Tokens[n.FirstToken : n.LastToken+1]
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	toks := n.Tokens()
	if len(toks) == 0 {
		return ""
	}
	return string(n.File.Content[toks[0].StartOffset:toks[len(toks)-1].EndOffset])
}

// Enclosing returns the nearest ancestor of the given kind, or nil.
func (n *Node) Enclosing(kind NodeKind) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}
