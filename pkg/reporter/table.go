package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/autosarlint/internal/ui/pretty"
	"github.com/yaklabco/autosarlint/pkg/analysis"
)

// TableRenderer formats a report as a styled table with color-coded rows.
type TableRenderer struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
}

// NewTableRenderer creates a new table renderer sized to the terminal.
func NewTableRenderer(opts Options) *TableRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	return &TableRenderer{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(opts.Writer)),
	}
}

// Render implements Renderer.
func (r *TableRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if report.Totals.Files == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw, r.styles.Success.Render("No files to check."))
		}
		return nil
	}

	rows := make([]pretty.TableRow, 0, len(report.Diagnostics))
	for i := range report.Diagnostics {
		if report.Diagnostics[i].Suppressed {
			continue
		}
		rows = append(rows, pretty.NewTableRow(&report.Diagnostics[i], r.opts.RuleFormat))
	}

	if len(rows) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, r.styles.Success.Render("All files passed!"))
			fmt.Fprintln(bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", report.Totals.Files)))
		}
		return nil
	}

	if r.opts.PerFile {
		for _, group := range pretty.GroupRows(rows) {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, r.styles.Bold.Render(group[0].File))
			fmt.Fprint(bw, r.formatter.FormatFileTable(group))
		}
		if r.opts.ShowSummary {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, r.styles.TableSeparator.Render(strings.Repeat("═", 80)))
			fmt.Fprintln(bw, r.styles.Bold.Render("Overall Summary"))
		}
	} else {
		fmt.Fprint(bw, r.formatter.FormatTable(rows))
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(bw, r.formatter.FormatTableSummary(report.Totals))
		if report.Totals.Fixable > 0 {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, r.styles.Dim.Render("Run with --fix to auto-repair fixable issues"))
		}
	}
	return nil
}
