package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/autosarlint/internal/ui/pretty"
	"github.com/yaklabco/autosarlint/pkg/fix"
	"github.com/yaklabco/autosarlint/pkg/runner"
)

// DiffReporter prints the fixes of a --fix or --dry-run run as git-style
// unified diffs. It reads the diffs straight from the runner result.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	if result == nil {
		return 0, nil
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(bw, "%s: %s\n",
				r.styles.FilePath.Render(r.displayPath(file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		files++
		additions += file.Result.Diff.Additions
		deletions += file.Result.Diff.Deletions
		r.writeDiff(bw, file.Result.Diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(bw, files, additions, deletions)
	}
	return files, nil
}

func (r *DiffReporter) writeDiff(bw *bufio.Writer, diff *fix.Diff) {
	path := filepath.ToSlash(r.displayPath(diff.Path))

	fmt.Fprintln(bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", path, path)))
	fmt.Fprintln(bw, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(bw, r.styles.DiffAdd.Render("+++ b/"+path))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(bw, r.styles.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)))
		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.DiffLineAdd:
				fmt.Fprintln(bw, r.styles.DiffAdd.Render("+"+line.Content))
			case fix.DiffLineRemove:
				fmt.Fprintln(bw, r.styles.DiffRemove.Render("-"+line.Content))
			default:
				fmt.Fprintln(bw, r.styles.DiffContext.Render(" "+line.Content))
			}
		}
	}
	fmt.Fprintln(bw)
}

// displayPath makes path relative to the working directory when it lies
// beneath it.
func (r *DiffReporter) displayPath(path string) string {
	if r.opts.WorkingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (r *DiffReporter) writeSummary(bw *bufio.Writer, files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, pluralWord(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)",
			additions, pluralWord(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)",
			deletions, pluralWord(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(bw, strings.Join(parts, ", "))
}
