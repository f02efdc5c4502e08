package analysis

import "github.com/yaklabco/autosarlint/pkg/config"

// SortField specifies how grouped views are ordered.
type SortField string

const (
	// SortByCount orders by issue count.
	SortByCount SortField = "count"
	// SortByAlpha orders by rule ID, file path or category name.
	SortByAlpha SortField = "alpha"
	// SortBySeverity puts groups with more errors, then warnings, first.
	SortBySeverity SortField = "severity"
)

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortBySeverity:
		return true
	default:
		return false
	}
}

// Options configures Analyze.
type Options struct {
	IncludeDiagnostics bool
	IncludeByFile      bool
	IncludeByRule      bool
	IncludeByCategory  bool

	// IncludeSuppressed adds suppressed diagnostics to Diagnostics, marked
	// as such. Totals count them separately either way.
	IncludeSuppressed bool

	// IncludeSource fills DiagnosticEntry.SourceLine for renderers that
	// show the offending line.
	IncludeSource bool

	SortBy SortField

	// SortDesc reverses SortByCount (highest first).
	SortDesc bool

	RuleFormat config.RuleFormat

	// WorkingDir makes report paths relative. Empty keeps them as-is.
	WorkingDir string
}

// DefaultOptions returns every view, sorted by descending count.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		IncludeByFile:      true,
		IncludeByRule:      true,
		IncludeByCategory:  true,
		SortBy:             SortByCount,
		SortDesc:           true,
		RuleFormat:         config.RuleFormatID,
	}
}
