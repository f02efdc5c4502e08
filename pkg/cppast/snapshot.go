// Package cppast provides the token stream and shallow syntax forest for a
// single C++ file:
//   - FileSnapshot: content, line index, tokens and forest root
//   - Token: located lexical unit, comments retained verbatim
//   - Node: shallow syntactic construct referencing a token range
package cppast

// FileSnapshot is an immutable view of one scanned C++ file.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	// It is used for display only.
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Tokens is the token stream in source order.
	Tokens []Token

	// Root is the forest root (a NodeTranslationUnit).
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a FileSnapshot with its line index built.
// Tokens and Root are filled in by the parser.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Token returns the token at index idx, or a zero Token when out of range.
func (f *FileSnapshot) Token(idx int) Token {
	if idx < 0 || idx >= len(f.Tokens) {
		return Token{}
	}
	return f.Tokens[idx]
}

// CodeTokens returns the indices of all non-comment tokens in order.
func (f *FileSnapshot) CodeTokens() []int {
	out := make([]int, 0, len(f.Tokens))
	for i, tok := range f.Tokens {
		if tok.Kind != TokComment {
			out = append(out, i)
		}
	}
	return out
}
