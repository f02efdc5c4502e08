package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/autosarlint/pkg/analysis"
	"github.com/yaklabco/autosarlint/pkg/config"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	Format Format

	// Color is "auto" (default), "always" or "never".
	Color string

	// ShowContext prints the offending source line under each diagnostic.
	ShowContext bool

	// ShowSummary prints aggregate statistics after the results.
	ShowSummary bool

	// GroupByFile groups text output under per-file headers.
	GroupByFile bool

	// Compact minifies JSON and SARIF output.
	Compact bool

	// PerFile prints one table per file (table format only).
	PerFile bool

	// IncludeSuppressed lists suppressed diagnostics too, marked as such.
	// SARIF emits them with an inSource suppression.
	IncludeSuppressed bool

	RuleFormat   config.RuleFormat
	SummaryOrder config.SummaryOrder

	// SortBy orders the summary tables.
	SortBy analysis.SortField

	// WorkingDir makes paths relative. Empty keeps them as-is.
	WorkingDir string

	// ToolVersion is reported by the JSON and SARIF formats.
	ToolVersion string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatID,
		SummaryOrder: config.SummaryOrderRules,
		SortBy:       analysis.SortByCount,
		ToolVersion:  "dev",
	}
}

// analysisOptions derives the Analyze options a renderer needs.
func (o Options) analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.IncludeSuppressed = o.IncludeSuppressed
	opts.IncludeSource = o.ShowContext && o.Format == FormatText
	opts.RuleFormat = o.RuleFormat
	opts.WorkingDir = o.WorkingDir
	if o.SortBy.IsValid() {
		opts.SortBy = o.SortBy
	}
	return opts
}
