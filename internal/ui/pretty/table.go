package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/autosarlint/pkg/analysis"
	"github.com/yaklabco/autosarlint/pkg/config"
)

// Table formatting constants.
const (
	fixableSymbol      = "+"
	tablePadding       = 2
	fixableColumnWidth = 3
	minFileWidth       = 20
	minLocWidth        = 8
	minMessageWidth    = 35
	minRuleWidth       = 8
	heavySeparator     = "="
	lightSeparator     = "-"
)

// TableRow is one diagnostic in a table.
type TableRow struct {
	File     string
	Location string
	Message  string
	Rule     string
	Severity config.Severity
	Fixable  bool
}

// NewTableRow converts a diagnostic entry into a row, labelling the rule
// according to ruleFormat.
func NewTableRow(entry *analysis.DiagnosticEntry, ruleFormat config.RuleFormat) TableRow {
	return TableRow{
		File:     entry.FilePath,
		Location: fmt.Sprintf("%d:%d", entry.StartLine, entry.StartColumn),
		Message:  entry.Message,
		Rule:     config.FormatRuleID(ruleFormat, entry.RuleID, entry.RuleName),
		Severity: config.Severity(entry.Severity),
		Fixable:  entry.Fixable,
	}
}

// TableFormatter formats diagnostics as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// columns describes the table layout. A zero file width drops the FILE
// column, which the per-file tables do since the file is in the header.
type columns struct {
	file    int
	loc     int
	message int
	rule    int
}

func (c columns) total() int {
	n := c.loc + c.message + c.rule + 3*tablePadding + fixableColumnWidth
	if c.file > 0 {
		n += c.file + tablePadding
	}
	return n
}

// GroupRows splits rows into runs of the same file, keeping their order.
func GroupRows(rows []TableRow) [][]TableRow {
	var groups [][]TableRow
	for i, row := range rows {
		if i == 0 || row.File != rows[i-1].File {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], row)
	}
	return groups
}

// FormatTable formats rows as one table with a FILE column, a light
// separator between files, and a legend.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}
	cols := t.measure(rows, true)

	var builder strings.Builder
	builder.WriteString(t.header(cols) + "\n")
	builder.WriteString(t.separator(cols, heavySeparator) + "\n")
	for i, group := range GroupRows(rows) {
		if i > 0 {
			builder.WriteString(t.separator(cols, lightSeparator) + "\n")
		}
		for _, row := range group {
			builder.WriteString(t.row(row, cols) + "\n")
		}
	}
	builder.WriteString(t.separator(cols, heavySeparator) + "\n")
	builder.WriteString(t.legend() + "\n")
	return builder.String()
}

// FormatFileTable formats the rows of a single file without a FILE column,
// followed by a per-file count line.
func (t *TableFormatter) FormatFileTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}
	cols := t.measure(rows, false)

	var builder strings.Builder
	builder.WriteString(t.header(cols) + "\n")
	builder.WriteString(t.separator(cols, heavySeparator) + "\n")
	for _, row := range rows {
		builder.WriteString(t.row(row, cols) + "\n")
	}
	builder.WriteString(t.separator(cols, heavySeparator) + "\n")
	builder.WriteString(t.fileSummary(rows) + "\n")
	return builder.String()
}

// measure sizes the columns to their content, then shrinks the message and
// file columns to fit the terminal.
func (t *TableFormatter) measure(rows []TableRow, withFile bool) columns {
	cols := columns{loc: minLocWidth, message: minMessageWidth, rule: minRuleWidth}
	if withFile {
		cols.file = minFileWidth
	}
	for _, row := range rows {
		if withFile {
			cols.file = max(cols.file, len(row.File))
		}
		cols.loc = max(cols.loc, len(row.Location))
		cols.message = max(cols.message, len(row.Message))
		cols.rule = max(cols.rule, len(row.Rule))
	}

	if excess := cols.total() - t.termWidth; excess > 0 {
		cols.message = max(minMessageWidth, cols.message-excess)
	}
	if excess := cols.total() - t.termWidth; excess > 0 && withFile {
		cols.file = max(minFileWidth, cols.file-excess)
	}
	return cols
}

func (t *TableFormatter) header(cols columns) string {
	var header string
	if cols.file > 0 {
		header = fmt.Sprintf(" %-*s ", cols.file, "FILE")
	}
	header += fmt.Sprintf(" %-*s  %-*s  %-*s   ", cols.loc, "LOC", cols.message, "MESSAGE", cols.rule, "RULE")
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) separator(cols columns, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, cols.total()))
}

func (t *TableFormatter) row(row TableRow, cols columns) string {
	fixable := " "
	if row.Fixable {
		fixable = t.styles.TableFixable.Render(fixableSymbol)
	}

	var content string
	if cols.file > 0 {
		content = fmt.Sprintf(" %-*s ", cols.file, truncateFilePath(row.File, cols.file))
	}
	content += fmt.Sprintf(" %-*s  %-*s  %-*s  %s",
		cols.loc, truncateString(row.Location, cols.loc),
		cols.message, truncateString(row.Message, cols.message),
		cols.rule, truncateString(row.Rule, cols.rule),
		fixable,
	)
	return t.rowStyle(row.Severity).Render(content)
}

func (t *TableFormatter) rowStyle(severity config.Severity) lipgloss.Style {
	switch severity {
	case config.SeverityError:
		return t.styles.TableErrorRow
	case config.SeverityWarning:
		return t.styles.TableWarnRow
	case config.SeverityInfo:
		return t.styles.TableInfoRow
	default:
		return lipgloss.NewStyle()
	}
}

func (t *TableFormatter) fileSummary(rows []TableRow) string {
	var errors, warnings, infos, fixable int
	for _, row := range rows {
		switch row.Severity {
		case config.SeverityError:
			errors++
		case config.SeverityWarning:
			warnings++
		case config.SeverityInfo:
			infos++
		}
		if row.Fixable {
			fixable++
		}
	}
	return t.countLine(errors, warnings, infos, fixable)
}

func (t *TableFormatter) countLine(errors, warnings, infos, fixable int, extra ...string) string {
	var parts []string
	parts = append(parts, extra...)
	if errors > 0 {
		parts = append(parts, t.styles.Error.Render(fmt.Sprintf("%d errors", errors)))
	}
	if warnings > 0 {
		parts = append(parts, t.styles.Warning.Render(fmt.Sprintf("%d warnings", warnings)))
	}
	if infos > 0 {
		parts = append(parts, t.styles.Info.Render(fmt.Sprintf("%d info", infos)))
	}
	if fixable > 0 {
		parts = append(parts, t.styles.TableFixable.Render(fmt.Sprintf("%d fixable", fixable)))
	}
	return " " + strings.Join(parts, " | ")
}

func (t *TableFormatter) legend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = fixable", fixableSymbol))
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s = error  %s = warning  %s = info  %s = fixable",
		t.styles.TableErrorRow.Render(" error "),
		t.styles.TableWarnRow.Render(" warning "),
		t.styles.TableInfoRow.Render(" info "),
		t.styles.TableFixable.Render(fixableSymbol)))
}

// FormatTableSummary formats the run totals as a single table footer line.
func (t *TableFormatter) FormatTableSummary(totals analysis.Totals) string {
	extra := []string{fmt.Sprintf("%d files checked", totals.Files)}
	line := t.countLine(totals.Errors, totals.Warnings, totals.Infos, totals.Fixable, extra...)
	if totals.Suppressed > 0 {
		line += " | " + t.styles.Dim.Render(fmt.Sprintf("%d suppressed", totals.Suppressed))
	}
	return line
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}

// truncateFilePath keeps the end of a path, where the file name is.
func truncateFilePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= 3 {
		return path[len(path)-maxLen:]
	}
	return "..." + path[len(path)-maxLen+3:]
}
