package cppast

import "fmt"

// Position represents a 1-based line and column in a file.
// Columns count bytes, not runes.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Before reports whether p sorts strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// SourceSpan is a line/column range. End is never before start.
type SourceSpan struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (s SourceSpan) Start() Position {
	return Position{Line: s.StartLine, Column: s.StartColumn}
}

// End returns the end position.
func (s SourceSpan) End() Position {
	return Position{Line: s.EndLine, Column: s.EndColumn}
}

// IsValid returns true if both ends are valid and end is not before start.
func (s SourceSpan) IsValid() bool {
	return s.Start().IsValid() && s.End().IsValid() && !s.End().Before(s.Start())
}

// IsSingleLine returns true if start and end are on the same line.
func (s SourceSpan) IsSingleLine() bool {
	return s.StartLine == s.EndLine
}

// Union returns the smallest span covering both s and other.
func (s SourceSpan) Union(other SourceSpan) SourceSpan {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}
	out := s
	if other.Start().Before(s.Start()) {
		out.StartLine, out.StartColumn = other.StartLine, other.StartColumn
	}
	if s.End().Before(other.End()) {
		out.EndLine, out.EndColumn = other.EndLine, other.EndColumn
	}
	return out
}

func (s SourceSpan) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

// SpanOf returns the span from the start of first to the end of last.
func SpanOf(first, last Token) SourceSpan {
	return SourceSpan{
		StartLine:   first.Start.Line,
		StartColumn: first.Start.Column,
		EndLine:     last.End.Line,
		EndColumn:   last.End.Column,
	}
}
