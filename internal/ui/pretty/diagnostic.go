package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/analysis"
	"github.com/yaklabco/autosarlint/pkg/config"
)

// FormatDiagnostic formats one diagnostic entry for terminal output:
//
//	path:line:col  severity  message  (rule)  [category]
//
// followed by the source line with a caret when showContext is set and the
// entry carries its line, and the suggestion if any.
func (s *Styles) FormatDiagnostic(entry *analysis.DiagnosticEntry, showContext bool, ruleFormat config.RuleFormat) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(entry.FilePath), entry.StartLine, entry.StartColumn)
	severity := s.FormatSeverity(config.Severity(entry.Severity))
	rule := s.RuleID.Render("(" + config.FormatRuleID(ruleFormat, entry.RuleID, entry.RuleName) + ")")

	message := s.Message.Render(entry.Message)
	if entry.Suppressed {
		message = s.Suppressed.Render(entry.Message) + s.Dim.Render(" [suppressed]")
	}

	fmt.Fprintf(&builder, "  %s  %s  %s  %s", location, severity, message, rule)
	if entry.Category != "" {
		builder.WriteString("  " + s.Category.Render("["+entry.Category+"]"))
	}
	builder.WriteString("\n")

	if showContext && entry.SourceLine != "" {
		builder.WriteString(s.FormatSourceContext(entry.SourceLine, entry.StartColumn))
	}

	if entry.Suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Suggestion:") + " " + s.Suggestion.Render(entry.Suggestion) + "\n")
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// tabWidth matches lipgloss's default tab conversion.
const tabWidth = 4

// FormatSourceContext formats the source line with a caret under column.
// Tabs are expanded before rendering so both lines share one layout.
func (s *Styles) FormatSourceContext(line string, column int) string {
	const indent = "        "

	expanded, caretAt := expandTabs(line, column-1)

	var builder strings.Builder
	builder.WriteString(indent + s.SourceLine.Render(expanded) + "\n")

	if column > 0 {
		builder.WriteString(indent + strings.Repeat(" ", caretAt) + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// expandTabs replaces tabs with spaces up to the next tab stop and maps
// byte offset at to its display column in the result.
func expandTabs(line string, at int) (string, int) {
	var out strings.Builder
	display := at
	for i := 0; i < len(line); i++ {
		if i == at {
			display = out.Len()
		}
		if line[i] == '\t' {
			out.WriteString(strings.Repeat(" ", tabWidth-out.Len()%tabWidth))
			continue
		}
		out.WriteByte(line[i])
	}
	if at >= len(line) {
		display = out.Len() + at - len(line)
	}
	return out.String(), max(display, 0)
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch issueCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 issue)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
