package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/autosarlint/internal/ui/pretty"
	"github.com/yaklabco/autosarlint/pkg/analysis"
)

// TextRenderer formats a report as styled terminal output.
type TextRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextRenderer creates a new text renderer.
func NewTextRenderer(opts Options) *TextRenderer {
	return &TextRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Render implements Renderer.
func (r *TextRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
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

	for _, fileErr := range report.Errors {
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(fileErr.Path),
			r.styles.Error.Render("error: "+fileErr.Message))
	}

	if r.opts.GroupByFile {
		r.renderGrouped(bw, report.Diagnostics)
	} else {
		for i := range report.Diagnostics {
			fmt.Fprint(bw, r.styles.FormatDiagnostic(&report.Diagnostics[i], r.opts.ShowContext, r.opts.RuleFormat))
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(bw, r.styles.FormatSummaryOneLine(report.Totals))
	}
	return nil
}

// renderGrouped writes a header per file followed by its diagnostics.
// Entries arrive ordered by file.
func (r *TextRenderer) renderGrouped(bw *bufio.Writer, entries []analysis.DiagnosticEntry) {
	for start := 0; start < len(entries); {
		end := start
		issues := 0
		for end < len(entries) && entries[end].FilePath == entries[start].FilePath {
			if !entries[end].Suppressed {
				issues++
			}
			end++
		}

		fmt.Fprintln(bw, r.styles.FormatFileHeader(entries[start].FilePath, issues))
		for i := start; i < end; i++ {
			fmt.Fprint(bw, r.styles.FormatDiagnostic(&entries[i], r.opts.ShowContext, r.opts.RuleFormat))
		}
		fmt.Fprintln(bw)
		start = end
	}
}
