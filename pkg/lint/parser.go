package lint

import (
	"context"

	"github.com/yaklabco/autosarlint/pkg/cppast"
)

// Parser scans C++ content into a FileSnapshot.
//
// The lint package defines this interface in the consumer package;
// pkg/parser provides the concrete lexer and forest builder.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - safe for concurrent use by multiple goroutines,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw C++ bytes into a fully-populated FileSnapshot.
	//
	// Malformed source must not fail: lexical anomalies become Error tokens
	// and unclassifiable token runs become opaque nodes. An error is returned
	// only for cancellation or an internal fault.
	//
	// The returned FileSnapshot must satisfy:
	//   - snapshot.Path == path
	//   - bytes.Equal(snapshot.Content, content)
	//   - cppast.ValidateTokens(snapshot.Tokens, len(snapshot.Content))
	//   - snapshot.Root != nil && snapshot.Root.Kind == cppast.NodeTranslationUnit
	Parse(ctx context.Context, path string, content []byte) (*cppast.FileSnapshot, error)
}
