// Package fix holds the text edits produced by auto-fixing rules and the
// logic that validates, merges and applies them to a source file.
package fix

// TextEdit replaces the byte range [StartOffset, EndOffset) with NewText.
// An empty range inserts; an empty NewText deletes.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// EditBuilder accumulates the edits one rule proposes for a file.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates an empty EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{Edits: make([]TextEdit, 0)}
}

// ReplaceRange replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{StartOffset: start, EndOffset: end, NewText: newText})
}

// Insert inserts text at offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete removes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Len returns the number of accumulated edits.
func (b *EditBuilder) Len() int {
	return len(b.Edits)
}
