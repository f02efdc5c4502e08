package lint

import (
	"slices"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/directive"
	"github.com/yaklabco/autosarlint/pkg/fix"
)

// SuppressionEdits returns insertions that silence diags with directive
// comments. By default each affected line gets a trailing
// "// autosar-disable-line ID" comment; with nextLine a standalone
// "// autosar-disable-next-line ID" line is inserted above it instead.
//
// Lines that cannot take a comment safely are left alone: lines spliced
// with a backslash and lines that begin or end inside a multi-line token.
// Diagnostics without a catalog ID (parse-recovery) are never suppressed.
func SuppressionEdits(file *cppast.FileSnapshot, diags []Diagnostic, nextLine bool) []fix.TextEdit {
	if file == nil {
		return nil
	}

	byLine := make(map[int][]string)
	for _, d := range diags {
		if !directive.IsRuleID(d.RuleID) || d.StartLine < 1 || d.StartLine > len(file.Lines) {
			continue
		}
		if !slices.Contains(byLine[d.StartLine], d.RuleID) {
			byLine[d.StartLine] = append(byLine[d.StartLine], d.RuleID)
		}
	}

	lines := make([]int, 0, len(byLine))
	for line := range byLine {
		lines = append(lines, line)
	}
	slices.Sort(lines)

	var edits []fix.TextEdit
	for _, line := range lines {
		ids := byLine[line]
		slices.Sort(ids)

		if nextLine {
			if edit, ok := nextLineEdit(file, line, ids); ok {
				edits = append(edits, edit)
			}
			continue
		}
		if edit, ok := trailingEdit(file, line, ids); ok {
			edits = append(edits, edit)
		}
	}
	return edits
}

func trailingEdit(file *cppast.FileSnapshot, line int, ids []string) (fix.TextEdit, bool) {
	if LineEndsWithContinuation(file, line) || LineEndsInsideToken(file, line) {
		return fix.TextEdit{}, false
	}

	var sb strings.Builder
	sb.WriteString(" //")
	for _, id := range ids {
		sb.WriteString(" " + directive.KeywordDisableLine + " " + id)
	}

	offset := file.Lines[line-1].NewlineStart
	return fix.TextEdit{StartOffset: offset, EndOffset: offset, NewText: sb.String()}, true
}

func nextLineEdit(file *cppast.FileSnapshot, line int, ids []string) (fix.TextEdit, bool) {
	if LineStartsInsideToken(file, line) || (line > 1 && LineEndsWithContinuation(file, line-1)) {
		return fix.TextEdit{}, false
	}

	var sb strings.Builder
	sb.WriteString(file.LineIndent(line))
	sb.WriteString("//")
	for _, id := range ids {
		sb.WriteString(" " + directive.KeywordDisableNextLine + " " + id)
	}
	sb.WriteString(LineNewline(file, line))

	offset := file.Lines[line-1].StartOffset
	return fix.TextEdit{StartOffset: offset, EndOffset: offset, NewText: sb.String()}, true
}
