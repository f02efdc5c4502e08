package lint

import "github.com/yaklabco/autosarlint/pkg/cppast"

// NodeCache provides pre-computed collections of forest nodes by kind plus
// the code-token index.
//
// The engine builds one cache per file before any detector starts and
// shares it read-only across the detectors running concurrently, so the
// forest is walked once instead of once per detector.
//
// # Do Not Mutate Returned Slices
//
// Returned slices are shared by every detector of the file. Copy before
// sorting or filtering in place.
type NodeCache struct {
	statements   []*cppast.Node
	declarations []*cppast.Node
	functions    []*cppast.Node
	classes      []*cppast.Node
	blocks       []*cppast.Node
	expressions  []*cppast.Node
	directives   []*cppast.Node

	// code holds the indices of non-comment tokens; codePos maps a token
	// index to its position in code, or -1 for comments.
	code    []int
	codePos []int
}

// NewNodeCache walks file once and indexes it.
func NewNodeCache(file *cppast.FileSnapshot) *NodeCache {
	nc := &NodeCache{}
	if file == nil {
		return nc
	}

	nc.code = file.CodeTokens()
	nc.codePos = make([]int, len(file.Tokens))
	for i := range nc.codePos {
		nc.codePos[i] = -1
	}
	for pos, idx := range nc.code {
		nc.codePos[idx] = pos
	}

	cppast.Inspect(file.Root, func(node *cppast.Node) bool {
		switch node.Kind {
		case cppast.NodeStatement:
			nc.statements = append(nc.statements, node)
		case cppast.NodeDeclaration:
			nc.declarations = append(nc.declarations, node)
		case cppast.NodeFunctionDef:
			nc.functions = append(nc.functions, node)
		case cppast.NodeClassDef:
			nc.classes = append(nc.classes, node)
		case cppast.NodeBlock:
			nc.blocks = append(nc.blocks, node)
		case cppast.NodeExpression:
			nc.expressions = append(nc.expressions, node)
		case cppast.NodePreprocessor:
			nc.directives = append(nc.directives, node)
		case cppast.NodeTranslationUnit, cppast.NodeOpaque:
		}
		return true
	})

	return nc
}

// Statements returns every statement node in source order.
func (nc *NodeCache) Statements() []*cppast.Node {
	return nc.statements
}

// StatementsOf returns statements of one kind. The result is a fresh slice.
func (nc *NodeCache) StatementsOf(kind cppast.StmtKind) []*cppast.Node {
	var out []*cppast.Node
	for _, n := range nc.statements {
		if n.StmtKind() == kind {
			out = append(out, n)
		}
	}
	return out
}

// Declarations returns every declaration node.
func (nc *NodeCache) Declarations() []*cppast.Node {
	return nc.declarations
}

// Functions returns every function definition.
func (nc *NodeCache) Functions() []*cppast.Node {
	return nc.functions
}

// Classes returns every class, struct or union definition.
func (nc *NodeCache) Classes() []*cppast.Node {
	return nc.classes
}

// Blocks returns every brace block.
func (nc *NodeCache) Blocks() []*cppast.Node {
	return nc.blocks
}

// Expressions returns every expression node (casts).
func (nc *NodeCache) Expressions() []*cppast.Node {
	return nc.expressions
}

// Directives returns every preprocessor node.
func (nc *NodeCache) Directives() []*cppast.Node {
	return nc.directives
}

// CodeTokens returns the indices of non-comment tokens.
func (nc *NodeCache) CodeTokens() []int {
	return nc.code
}

// NextCode returns the index of the first code token after idx, or -1.
func (nc *NodeCache) NextCode(idx int) int {
	return nc.codeAt(idx, 1)
}

// PrevCode returns the index of the last code token before idx, or -1.
func (nc *NodeCache) PrevCode(idx int) int {
	return nc.codeAt(idx, -1)
}

func (nc *NodeCache) codeAt(idx, delta int) int {
	if idx < 0 || idx >= len(nc.codePos) {
		return -1
	}
	pos := nc.codePos[idx]
	if pos < 0 {
		// idx is a comment: step through tokens until a code token.
		for i := idx + delta; i >= 0 && i < len(nc.codePos); i += delta {
			if nc.codePos[i] >= 0 {
				return i
			}
		}
		return -1
	}
	pos += delta
	if pos < 0 || pos >= len(nc.code) {
		return -1
	}
	return nc.code[pos]
}
