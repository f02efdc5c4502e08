// Package lint provides the rule engine, diagnostics, and registry for autosarlint.
package lint

import (
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/fix"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleID is the catalog identifier of the rule (e.g., "A5-2-1").
	// It is also the suppression key.
	RuleID string

	// RuleName is the kebab-case name of the rule (e.g., "no-dynamic-cast").
	RuleName string

	// Category is the AUTOSAR chapter the rule belongs to.
	Category string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine is the 1-based line number where the issue starts.
	StartLine int

	// StartColumn is the 1-based column number where the issue starts.
	StartColumn int

	// EndLine is the 1-based line number where the issue ends.
	EndLine int

	// EndColumn is the 1-based column just past the issue.
	EndColumn int

	// Suggestion is an optional human-readable fix suggestion.
	Suggestion string

	// FixEdits contains the text edits to fix this issue (may be empty).
	FixEdits []fix.TextEdit
}

// HasFix returns true if this diagnostic has associated fix edits.
func (d *Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

// Span returns the diagnostic position as a SourceSpan.
func (d *Diagnostic) Span() cppast.SourceSpan {
	return cppast.SourceSpan{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// RuleDescriptor is the immutable identity record of a catalog rule.
type RuleDescriptor struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Summary         string          `json:"summary"`
	DefaultSeverity config.Severity `json:"severity"`
	DefaultEnabled  bool            `json:"enabled"`
	Fixable         bool            `json:"fixable"`
}

// Describe returns the descriptor of rule.
func Describe(rule Rule) RuleDescriptor {
	return RuleDescriptor{
		ID:              rule.ID(),
		Name:            rule.Name(),
		Category:        rule.Category(),
		Summary:         rule.Description(),
		DefaultSeverity: rule.DefaultSeverity(),
		DefaultEnabled:  rule.DefaultEnabled(),
		Fixable:         rule.CanFix(),
	}
}

// Rule defines the interface that all detectors must implement.
type Rule interface {
	// ID returns the unique catalog identifier (e.g., "A5-2-1").
	ID() string

	// Name returns the kebab-case name of the rule.
	Name() string

	// Description returns the one-line summary of what the rule checks.
	Description() string

	// Category returns the AUTOSAR chapter name.
	Category() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// CanFix returns whether this rule can auto-fix issues.
	CanFix() bool

	// Apply executes the rule against the given context and returns diagnostics.
	//
	// Rules must:
	//   - Read the token stream and forest only; never mutate them.
	//   - Use Builder to propose fix edits (if CanFix() is true).
	//   - Return error only for internal failures, not violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
