package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/autosarlint/pkg/analysis"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run totals as a single line.
// Example: "12 issues (8 errors, 4 warnings) in 3 files, 6 fixable, 2 suppressed".
func (s *Styles) FormatSummaryOneLine(totals analysis.Totals) string {
	var parts []string

	if totals.Issues == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", totals.Files, plural(totals.Files, wordFile, wordFiles))))
	} else {
		var severityParts []string
		if totals.Errors > 0 {
			severityParts = append(severityParts, s.Error.Render(fmt.Sprintf("%d %s", totals.Errors, plural(totals.Errors, "error", "errors"))))
		}
		if totals.Warnings > 0 {
			severityParts = append(severityParts, s.Warning.Render(fmt.Sprintf("%d %s", totals.Warnings, plural(totals.Warnings, "warning", "warnings"))))
		}
		if totals.Infos > 0 {
			severityParts = append(severityParts, s.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
		}

		main := fmt.Sprintf("%d %s", totals.Issues, plural(totals.Issues, "issue", "issues"))
		if len(severityParts) > 0 {
			main += " (" + strings.Join(severityParts, ", ") + ")"
		}
		parts = append(parts, fmt.Sprintf("%s in %d %s",
			main, totals.FilesWithIssues, plural(totals.FilesWithIssues, wordFile, wordFiles)))

		if totals.Fixable > 0 {
			parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", totals.Fixable)))
		}
	}

	if totals.Suppressed > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d suppressed", totals.Suppressed)))
	}
	if totals.Fixed > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			totals.Fixed, totals.FilesModified, plural(totals.FilesModified, wordFile, wordFiles))))
	}
	if totals.SuppressionsInserted > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d %s inserted",
			totals.SuppressionsInserted, plural(totals.SuppressionsInserted, "suppression", "suppressions"))))
	}
	if totals.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s could not be analysed",
			totals.FilesErrored, plural(totals.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run totals as a summary block.
func (s *Styles) FormatSummary(totals analysis.Totals) string {
	var builder strings.Builder

	row := func(label, value string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", value)
	}

	builder.WriteString("\n" + s.SummaryTitle.Render("Summary") + "\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth) + "\n")

	row("Files checked", s.SummaryValue.Render(strconv.Itoa(totals.Files)))
	if totals.FilesWithIssues > 0 {
		row("Files with issues", s.Failure.Render(strconv.Itoa(totals.FilesWithIssues)))
	}
	if totals.FilesErrored > 0 {
		row("Files with errors", s.Failure.Render(strconv.Itoa(totals.FilesErrored)))
	}
	if totals.FilesModified > 0 {
		row("Files modified", s.Success.Render(strconv.Itoa(totals.FilesModified)))
	}
	if totals.CodeLines > 0 {
		row("Lines of code", s.SummaryValue.Render(strconv.Itoa(totals.CodeLines)))
	}

	builder.WriteString("\n")
	row("Total issues", s.SummaryValue.Render(strconv.Itoa(totals.Issues)))
	if totals.Errors > 0 {
		row("  Errors", s.Error.Render(strconv.Itoa(totals.Errors)))
	}
	if totals.Warnings > 0 {
		row("  Warnings", s.Warning.Render(strconv.Itoa(totals.Warnings)))
	}
	if totals.Infos > 0 {
		row("  Info", s.Info.Render(strconv.Itoa(totals.Infos)))
	}
	if totals.Suppressed > 0 {
		row("Suppressed", s.Dim.Render(strconv.Itoa(totals.Suppressed)))
	}

	builder.WriteString("\n")
	switch {
	case totals.Errors > 0:
		builder.WriteString(s.Failure.Render("Lint failed with errors"))
	case totals.Warnings > 0:
		builder.WriteString(s.Warning.Render("Lint completed with warnings"))
	default:
		builder.WriteString(s.Success.Render("Lint passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}
