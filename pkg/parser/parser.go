// Package parser builds the shallow syntax forest for C++ sources.
//
// The builder recognises structural landmarks (braces, keyword-led
// statements, declarations with a leading type, class/enum/namespace heads,
// casts) without a grammar or symbol table. Any run of tokens it cannot
// classify becomes a cppast.NodeOpaque node and parsing resumes at the next
// ';' or closing brace.
package parser

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lexer"
)

// ErrInvalidTokens is returned when the token stream does not lie within
// the content bounds. It indicates a lexer bug rather than bad input.
var ErrInvalidTokens = errors.New("token stream out of bounds")

// Parser lexes and builds a FileSnapshot. It holds no state and is safe for
// concurrent use.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse converts raw C++ bytes into a FileSnapshot with tokens and forest.
// Malformed source never fails; only cancellation does.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*cppast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := cppast.NewFileSnapshot(path, copyContent(content))
	snapshot.Tokens = lexer.Tokenize(snapshot.Content)
	if !cppast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidTokens)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot.Root = Build(snapshot)
	return snapshot, nil
}

// Build constructs the forest for a snapshot whose Tokens are populated.
func Build(file *cppast.FileSnapshot) *cppast.Node {
	b := newBuilder(file)
	root := cppast.NewTokenNode(cppast.NodeTranslationUnit, file, 0, len(file.Tokens)-1)
	if len(file.Tokens) == 0 {
		root.FirstToken, root.LastToken = -1, -1
	}

	for pos := 0; pos < b.n(); {
		nodes, next := b.parseDeclarationUnit(pos, ctxFile)
		for _, node := range nodes {
			cppast.AppendChild(root, node)
		}
		pos = b.advance(pos, next)
	}

	b.attachDirectives(root)
	return root
}

func copyContent(content []byte) []byte {
	out := make([]byte, len(content))
	copy(out, content)
	return out
}
