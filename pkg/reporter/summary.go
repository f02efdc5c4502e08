package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/autosarlint/internal/ui/pretty"
	"github.com/yaklabco/autosarlint/pkg/analysis"
	"github.com/yaklabco/autosarlint/pkg/config"
)

// Summary table layout. All tables share one width.
const (
	tableWidth         = 96
	ruleColWidth       = 30
	categoryColWidth   = 36
	fileColWidth       = 48
	numColWidth        = 7
	warnColWidth       = 9
	fixableColWidth    = 8
	suppressedColWidth = 11
	maxRuleNameLength  = 28
	maxCategoryLength  = 34
	maxFilePathLength  = 46
)

// padRight pads s to width. Pad before styling; ANSI codes have no width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads s to width. Pad before styling; ANSI codes have no width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats a report as aggregated tables: by rule, by
// category and by file.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprint(r.out, r.styles.FormatSummaryOneLine(report.Totals))
		return nil
	}

	tables := []func(){
		func() { r.renderRuleTable(report.ByRule) },
		func() { r.renderCategoryTable(report.ByCategory) },
		func() { r.renderFileTable(report.ByFile) },
	}
	switch r.opts.SummaryOrder {
	case config.SummaryOrderFiles:
		tables[0], tables[2] = tables[2], tables[0]
	case config.SummaryOrderCategories:
		tables[0], tables[1] = tables[1], tables[0]
	}
	for _, table := range tables {
		table()
	}

	r.renderTotals(report.Totals)
	return nil
}

func (r *SummaryRenderer) title(name string) {
	fmt.Fprintln(r.out, r.styles.Bold.Render(name))
	r.rule()
}

func (r *SummaryRenderer) rule() {
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))
}

func (r *SummaryRenderer) header(first string, width int, columns ...string) {
	cells := []string{r.styles.TableHeader.Render(padRight(first, width))}
	widths := []int{numColWidth, numColWidth, warnColWidth, suppressedColWidth, fixableColWidth}
	for i, col := range columns {
		cells = append(cells, r.styles.TableHeader.Render(padLeft(col, widths[i])))
	}
	fmt.Fprintln(r.out, strings.Join(cells, " "))
	r.rule()
}

// label pads and colours the first cell of a row by its worst severity.
func (r *SummaryRenderer) label(text string, width int, counts analysis.SeverityCounts) string {
	padded := padRight(text, width)
	switch {
	case counts.Errors > 0:
		return r.styles.TableErrorRow.Render(padded)
	case counts.Warnings > 0:
		return r.styles.TableWarnRow.Render(padded)
	default:
		return padded
	}
}

func counts(c analysis.SeverityCounts, suppressed int) []string {
	return []string{
		padLeft(strconv.Itoa(c.Issues), numColWidth),
		padLeft(strconv.Itoa(c.Errors), numColWidth),
		padLeft(strconv.Itoa(c.Warnings), warnColWidth),
		padLeft(strconv.Itoa(suppressed), suppressedColWidth),
	}
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit] + "…"
	}
	return s
}

func (r *SummaryRenderer) renderRuleTable(rules []analysis.RuleAnalysis) {
	if len(rules) == 0 {
		return
	}

	r.title("Rules Summary")
	r.header("Rule", ruleColWidth, "Count", "Errors", "Warnings", "Suppressed", "Fixable")
	for _, rule := range rules {
		name := truncate(config.FormatRuleID(r.opts.RuleFormat, rule.RuleID, rule.RuleName), maxRuleNameLength)

		fixable := padLeft("", fixableColWidth)
		if rule.Fixable {
			fixable = r.styles.Success.Render(padLeft("✓", fixableColWidth))
		}

		cells := append([]string{r.label(name, ruleColWidth, rule.SeverityCounts)}, counts(rule.SeverityCounts, rule.Suppressed)...)
		fmt.Fprintln(r.out, strings.Join(append(cells, fixable), " "))
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderCategoryTable(categories []analysis.CategoryAnalysis) {
	if len(categories) == 0 {
		return
	}

	r.title("Categories Summary")
	r.header("Category", categoryColWidth, "Count", "Errors", "Warnings", "Rules")
	for _, category := range categories {
		name := category.Category
		if name == "" {
			name = "(uncategorised)"
		}
		cells := []string{
			r.label(truncate(name, maxCategoryLength), categoryColWidth, category.SeverityCounts),
			padLeft(strconv.Itoa(category.Issues), numColWidth),
			padLeft(strconv.Itoa(category.Errors), numColWidth),
			padLeft(strconv.Itoa(category.Warnings), warnColWidth),
			padLeft(strconv.Itoa(len(category.Rules)), suppressedColWidth),
		}
		fmt.Fprintln(r.out, strings.Join(cells, " "))
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	r.title("Files Summary")
	r.header("File", fileColWidth, "Count", "Errors", "Warnings", "Suppressed")
	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}
		cells := append([]string{r.label(path, fileColWidth, file.SeverityCounts)}, counts(file.SeverityCounts, file.Suppressed)...)
		fmt.Fprintln(r.out, strings.Join(cells, " "))
	}
	fmt.Fprintln(r.out)
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	issues := fmt.Sprintf("%d %s", totals.Issues, pluralWord(totals.Issues, "issue", "issues"))

	var severityParts []string
	if totals.Errors > 0 {
		severityParts = append(severityParts, r.styles.Error.Render(fmt.Sprintf("%d errors", totals.Errors)))
	}
	if totals.Warnings > 0 {
		severityParts = append(severityParts, r.styles.Warning.Render(fmt.Sprintf("%d warnings", totals.Warnings)))
	}
	if totals.Infos > 0 {
		severityParts = append(severityParts, r.styles.Info.Render(fmt.Sprintf("%d info", totals.Infos)))
	}
	if len(severityParts) > 0 {
		issues += " (" + strings.Join(severityParts, ", ") + ")"
	}

	line := fmt.Sprintf("%s in %d %s", issues, totals.FilesWithIssues,
		pluralWord(totals.FilesWithIssues, "file", "files"))
	if totals.Suppressed > 0 {
		line += ", " + r.styles.Dim.Render(fmt.Sprintf("%d suppressed", totals.Suppressed))
	}
	if totals.CodeLines > 0 {
		line += ", " + r.styles.Dim.Render(fmt.Sprintf("%d lines of code", totals.CodeLines))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+line)
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
