package analysis_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/analysis"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/fix"
	"github.com/yaklabco/autosarlint/pkg/lint"
	"github.com/yaklabco/autosarlint/pkg/runner"
)

func diag(path, id, category string, sev config.Severity, line int) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID: id, RuleName: id + "-name", Category: category, Severity: sev,
		Message: id + " message", FilePath: path,
		StartLine: line, StartColumn: 1, EndLine: line, EndColumn: 5,
	}
}

func outcome(path string, diags, suppressed []lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			Path:       path,
			FileResult: &lint.FileResult{Diagnostics: diags, Suppressed: suppressed},
		},
	}
}

func sampleResult() *runner.Result {
	nullFix := diag("/w/src/a.cpp", "A4-10-1", "Standard Conversions", config.SeverityError, 3)
	nullFix.FixEdits = []fix.TextEdit{{StartOffset: 10, EndOffset: 14, NewText: "nullptr"}}

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("/w/src/a.cpp", []lint.Diagnostic{
			nullFix,
			diag("/w/src/a.cpp", "A6-6-1", "Statements", config.SeverityError, 5),
			diag("/w/src/a.cpp", "A7-1-6", "Declarations", config.SeverityInfo, 7),
		}, []lint.Diagnostic{
			diag("/w/src/a.cpp", "A6-6-1", "Statements", config.SeverityError, 9),
		}),
		outcome("/w/src/b.cpp", []lint.Diagnostic{
			diag("/w/src/b.cpp", "A6-6-1", "Statements", config.SeverityError, 2),
			diag("/w/src/b.cpp", "M6-4-1", "Statements", config.SeverityWarning, 4),
		}, nil),
		outcome("/w/src/c.cpp", nil, nil),
		{Path: "/w/src/d.cpp", Error: errors.New("permission denied")},
	}}
	result.Stats.Code.Code = 120
	return result
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	assert.Equal(t, analysis.Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesErrored:    1,
		Issues:          5,
		Errors:          3,
		Warnings:        1,
		Infos:           1,
		Fixable:         1,
		Suppressed:      1,
		CodeLines:       120,
	}, report.Totals)
	assert.True(t, report.Totals.HasIssues())
	assert.True(t, report.Totals.HasErrors())
	assert.Equal(t, analysis.ReportVersion, report.Version)
	_, err := uuid.Parse(report.RunID)
	require.NoError(t, err)
	assert.Equal(t, []analysis.FileError{{Path: "/w/src/d.cpp", Message: "permission denied"}}, report.Errors)
}

func TestAnalyze_RunIDsDiffer(t *testing.T) {
	t.Parallel()

	a := analysis.Analyze(nil, analysis.DefaultOptions())
	b := analysis.Analyze(nil, analysis.DefaultOptions())
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.Zero(t, a.Totals)
}

func TestAnalyze_ByRule(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/w"
	report := analysis.Analyze(sampleResult(), opts)

	require.Len(t, report.ByRule, 4)
	first := report.ByRule[0]
	assert.Equal(t, "A6-6-1", first.RuleID)
	assert.Equal(t, "Statements", first.Category)
	assert.Equal(t, 2, first.Issues)
	assert.Equal(t, 1, first.Suppressed)
	assert.Equal(t, []string{"src/a.cpp", "src/b.cpp"}, first.Files)

	var ids []string
	for _, ra := range report.ByRule[1:] {
		ids = append(ids, ra.RuleID)
	}
	assert.Equal(t, []string{"A4-10-1", "A7-1-6", "M6-4-1"}, ids)
	assert.True(t, report.ByRule[1].Fixable)
}

func TestAnalyze_ByFile(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/w"
	report := analysis.Analyze(sampleResult(), opts)

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, "src/a.cpp", report.ByFile[0].Path)
	assert.Equal(t, 3, report.ByFile[0].Issues)
	assert.Equal(t, 1, report.ByFile[0].Suppressed)
	assert.Equal(t, []string{"A4-10-1", "A6-6-1", "A7-1-6"}, report.ByFile[0].Rules)
	assert.Equal(t, "src/b.cpp", report.ByFile[1].Path)
}

func TestAnalyze_ByCategory(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	require.Len(t, report.ByCategory, 3)
	statements := report.ByCategory[0]
	assert.Equal(t, "Statements", statements.Category)
	assert.Equal(t, 3, statements.Issues)
	assert.Equal(t, 2, statements.Errors)
	assert.Equal(t, 1, statements.Warnings)
	assert.Equal(t, []string{"A6-6-1", "M6-4-1"}, statements.Rules)
	assert.Equal(t, "Declarations", report.ByCategory[1].Category)
	assert.Equal(t, "Standard Conversions", report.ByCategory[2].Category)
}

func TestAnalyze_Sorting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sortBy analysis.SortField
		desc   bool
		want   []string
	}{
		{name: "alpha", sortBy: analysis.SortByAlpha, want: []string{"A4-10-1", "A6-6-1", "A7-1-6", "M6-4-1"}},
		{name: "count ascending", sortBy: analysis.SortByCount, want: []string{"A4-10-1", "A7-1-6", "M6-4-1", "A6-6-1"}},
		{name: "count descending", sortBy: analysis.SortByCount, desc: true, want: []string{"A6-6-1", "A4-10-1", "A7-1-6", "M6-4-1"}},
		{name: "severity", sortBy: analysis.SortBySeverity, want: []string{"A6-6-1", "A4-10-1", "M6-4-1", "A7-1-6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := analysis.DefaultOptions()
			opts.SortBy = tt.sortBy
			opts.SortDesc = tt.desc
			report := analysis.Analyze(sampleResult(), opts)

			var got []string
			for _, ra := range report.ByRule {
				got = append(got, ra.RuleID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyze_Diagnostics(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/w"
	report := analysis.Analyze(sampleResult(), opts)
	require.Len(t, report.Diagnostics, 5)

	first := report.Diagnostics[0]
	assert.Equal(t, "src/a.cpp", first.FilePath)
	assert.Equal(t, "A4-10-1", first.RuleID)
	assert.Equal(t, "Standard Conversions", first.Category)
	assert.Equal(t, "error", first.Severity)
	assert.True(t, first.Fixable)
	assert.Equal(t, []analysis.FixEntry{{StartOffset: 10, EndOffset: 14, NewText: "nullptr"}}, first.Fixes)
	for _, entry := range report.Diagnostics {
		assert.False(t, entry.Suppressed)
	}

	opts.IncludeSuppressed = true
	report = analysis.Analyze(sampleResult(), opts)
	require.Len(t, report.Diagnostics, 6)
	assert.True(t, report.Diagnostics[3].Suppressed)
	assert.Equal(t, 9, report.Diagnostics[3].StartLine)
	assert.Equal(t, 5, report.Totals.Issues)

	opts.IncludeDiagnostics = false
	report = analysis.Analyze(sampleResult(), opts)
	assert.Empty(t, report.Diagnostics)
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, analysis.SortByCount.IsValid())
	assert.True(t, analysis.SortByAlpha.IsValid())
	assert.True(t, analysis.SortBySeverity.IsValid())
	assert.False(t, analysis.SortField("random").IsValid())
}
