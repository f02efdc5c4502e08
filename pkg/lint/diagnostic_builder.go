package lint

import (
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/fix"
)

// DiagnosticBuilder helps construct Diagnostic values.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts building a diagnostic spanning node.
func NewDiagnostic(ruleID string, node *cppast.Node, message string) *DiagnosticBuilder {
	var filePath string
	var span cppast.SourceSpan

	if node != nil {
		span = node.Span()
		if node.File != nil {
			filePath = node.File.Path
		}
	}

	return NewDiagnosticAt(ruleID, filePath, span, message)
}

// NewTokenDiagnostic starts building a diagnostic spanning one token.
func NewTokenDiagnostic(ruleID string, file *cppast.FileSnapshot, tok cppast.Token, message string) *DiagnosticBuilder {
	var filePath string
	if file != nil {
		filePath = file.Path
	}
	return NewDiagnosticAt(ruleID, filePath, tok.Span(), message)
}

// NewDiagnosticAt starts building a diagnostic at a specific span.
func NewDiagnosticAt(ruleID, filePath string, span cppast.SourceSpan, message string) *DiagnosticBuilder {
	return &DiagnosticBuilder{
		diag: Diagnostic{
			RuleID:      ruleID,
			Message:     message,
			FilePath:    filePath,
			StartLine:   span.StartLine,
			StartColumn: span.StartColumn,
			EndLine:     span.EndLine,
			EndColumn:   span.EndColumn,
		},
	}
}

// WithSeverity sets the severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets a human-readable fix suggestion.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// WithFix adds fix edits from an EditBuilder.
func (b *DiagnosticBuilder) WithFix(builder *fix.EditBuilder) *DiagnosticBuilder {
	if builder != nil {
		b.diag.FixEdits = append(b.diag.FixEdits, builder.Edits...)
	}
	return b
}

// WithEdit adds a single fix edit.
func (b *DiagnosticBuilder) WithEdit(edit fix.TextEdit) *DiagnosticBuilder {
	b.diag.FixEdits = append(b.diag.FixEdits, edit)
	return b
}

// Build returns the constructed Diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
