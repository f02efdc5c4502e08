package analysis

import "time"

// Report holds the pre-computed views of one run. Analyze builds it once
// and every renderer reads from it.
type Report struct {
	// RunID identifies the run; SARIF uses it as the automation GUID.
	RunID string `json:"runId"`

	Diagnostics []DiagnosticEntry  `json:"diagnostics,omitempty"`
	ByFile      []FileAnalysis     `json:"byFile,omitempty"`
	ByRule      []RuleAnalysis     `json:"byRule,omitempty"`
	ByCategory  []CategoryAnalysis `json:"byCategory,omitempty"`

	// Errors lists files that could not be analysed.
	Errors []FileError `json:"errors,omitempty"`

	Totals Totals `json:"summary"`

	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// DiagnosticEntry is one diagnostic in the flat list.
type DiagnosticEntry struct {
	FilePath    string     `json:"filePath"`
	RuleID      string     `json:"ruleId"`
	RuleName    string     `json:"ruleName"`
	Category    string     `json:"category"`
	Severity    string     `json:"severity"`
	Message     string     `json:"message"`
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	Suggestion  string     `json:"suggestion,omitempty"`
	Fixable     bool       `json:"fixable"`
	Fixes       []FixEntry `json:"fixes,omitempty"`

	// SourceLine is the text of StartLine, set when the scanned source was
	// still available (not for cached results).
	SourceLine string `json:"-"`

	// Suppressed marks a diagnostic silenced by a directive comment.
	Suppressed bool `json:"suppressed,omitempty"`
}

// FixEntry is one text edit of a fix.
type FixEntry struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// FileError records a file that could not be analysed.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Totals are the aggregate counts of a run. Suppressed diagnostics are
// only counted in Suppressed.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Infos           int `json:"infos"`
	Fixable         int `json:"fixable"`
	Suppressed      int `json:"suppressed"`
	CodeLines       int `json:"codeLines,omitempty"`

	FilesModified        int `json:"filesModified,omitempty"`
	Fixed                int `json:"fixed,omitempty"`
	SuppressionsInserted int `json:"suppressionsInserted,omitempty"`
}

// HasIssues reports whether any unsuppressed diagnostic was found.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors reports whether any error-severity diagnostic was found.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// SeverityCounts are the issue counts shared by every grouped view.
type SeverityCounts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

// FileAnalysis aggregates the diagnostics of one file.
type FileAnalysis struct {
	Path string `json:"path"`
	SeverityCounts
	Suppressed int      `json:"suppressed,omitempty"`
	Rules      []string `json:"rules,omitempty"`
}

// RuleAnalysis aggregates the diagnostics of one rule.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	RuleName string `json:"ruleName"`
	Category string `json:"category"`
	SeverityCounts
	Suppressed int      `json:"suppressed,omitempty"`
	Fixable    bool     `json:"fixable"`
	Files      []string `json:"files,omitempty"`
}

// CategoryAnalysis aggregates the diagnostics of one AUTOSAR chapter.
type CategoryAnalysis struct {
	Category string `json:"category"`
	SeverityCounts
	Rules []string `json:"rules,omitempty"`
}
