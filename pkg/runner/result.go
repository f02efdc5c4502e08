package runner

import (
	"time"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// FileOutcome is the result of processing one file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Result is nil when Error is set.
	Result *lint.PipelineResult

	// Error records why the file could not be analysed (unreadable,
	// undecodable, unwritable). It never aborts the batch.
	Error error

	// Cached is true when Result was served from the result cache.
	Cached bool
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesSkipped counts files left alone because they changed on disk
	// while being fixed.
	FilesSkipped int

	FilesErrored    int
	FilesWithIssues int
	FilesModified   int

	DiagnosticsTotal      int
	DiagnosticsFixable    int
	DiagnosticsSuppressed int
	DiagnosticsFixed      int
	DiagnosticsBySeverity map[config.Severity]int

	// SuppressionsInserted counts directive comments added in suppress mode.
	SuppressionsInserted int

	// DetectorFailures counts rules that failed or panicked on some file.
	DetectorFailures int

	// CacheHits counts files served from the result cache.
	CacheHits int

	// Code holds line statistics when Options.CountCode is set.
	Code CodeStats

	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, ordered by path.
	Files []FileOutcome

	Stats Stats

	// Errors contains failures not tied to a single file.
	Errors []error
}

// HasFailures reports whether any error-severity diagnostic was found.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any diagnostic was found.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasErrors reports whether any file could not be analysed.
func (r *Result) HasErrors() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || len(r.Errors) > 0)
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[config.Severity]int)}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	pr := outcome.Result
	if pr == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Cached {
		r.Stats.CacheHits++
	}
	if pr.Skipped {
		r.Stats.FilesSkipped++
	}
	if pr.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += pr.TotalEditsApplied
	r.Stats.SuppressionsInserted += pr.SuppressionsInserted

	if pr.FileResult == nil {
		return
	}
	r.Stats.DiagnosticsTotal += len(pr.Diagnostics)
	r.Stats.DiagnosticsFixable += pr.FixableCount()
	r.Stats.DiagnosticsSuppressed += pr.SuppressedCount()
	r.Stats.DetectorFailures += len(pr.RuleErrors)
	if len(pr.Diagnostics) > 0 {
		r.Stats.FilesWithIssues++
	}
	for _, diag := range pr.Diagnostics {
		severity := diag.Severity
		if severity == "" {
			severity = config.SeverityWarning
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
