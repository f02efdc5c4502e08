package fix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff is a unified diff between the original and fixed source of a file.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Original is the source before fixes.
	Original []byte

	// Modified is the source after fixes.
	Modified []byte

	// Hunks contains the changed regions with context.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk is one changed region of a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based first line of the hunk in the original.
	OriginalStart int

	// OriginalCount is the number of original lines in the hunk.
	OriginalCount int

	// ModifiedStart is the 1-based first line of the hunk in the modified source.
	ModifiedStart int

	// ModifiedCount is the number of modified lines in the hunk.
	ModifiedCount int

	Lines []DiffLine
}

// DiffLine is a single line of a hunk.
type DiffLine struct {
	Kind DiffLineKind

	// Content is the line without its diff prefix or newline.
	Content string
}

// DiffLineKind tells context, added and removed lines apart.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line only present in the modified source.
	DiffLineAdd

	// DiffLineRemove is a line only present in the original.
	DiffLineRemove
)

// contextLines is the number of unchanged lines kept around each change.
const contextLines = 3

// GenerateDiff computes the unified diff of original and modified.
// It returns nil when the two are line-for-line identical.
func GenerateDiff(path string, original, modified []byte) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)
	if slices.Equal(origLines, modLines) {
		return nil
	}

	matcher := difflib.NewMatcher(origLines, modLines)
	diff := &Diff{Path: path, Original: original, Modified: modified}
	for _, group := range matcher.GetGroupedOpCodes(contextLines) {
		hunk := buildHunk(group, origLines, modLines)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			}
		}
		diff.Hunks = append(diff.Hunks, hunk)
	}
	if len(diff.Hunks) == 0 {
		return nil
	}
	return diff
}

// buildHunk turns one group of matcher opcodes into a hunk.
func buildHunk(group []difflib.OpCode, orig, mod []string) DiffHunk {
	first, last := group[0], group[len(group)-1]
	hunk := DiffHunk{
		OriginalStart: first.I1 + 1,
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: first.J1 + 1,
		ModifiedCount: last.J2 - first.J1,
	}
	for _, op := range group {
		switch op.Tag {
		case 'e':
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineContext, Content: line})
			}
			continue
		case 'r', 'd':
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineRemove, Content: line})
			}
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			for _, line := range mod[op.J1:op.J2] {
				hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineAdd, Content: line})
			}
		}
	}
	return hunk
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the diff in unified format without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			sb.WriteByte(line.Kind.prefix())
			sb.WriteString(line.Content)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// FullString renders the diff including the git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges reports whether the diff contains at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// splitLines splits content into lines; a final newline does not start
// an extra empty line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
