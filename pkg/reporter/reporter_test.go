package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/fix"
	"github.com/yaklabco/autosarlint/pkg/lint"
	"github.com/yaklabco/autosarlint/pkg/reporter"
	"github.com/yaklabco/autosarlint/pkg/runner"
)

func diag(path, id, name, category string, sev config.Severity, line int, message string) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID: id, RuleName: name, Category: category, Severity: sev, Message: message,
		FilePath: path, StartLine: line, StartColumn: 5, EndLine: line, EndColumn: 9,
	}
}

// testResult holds two files with findings, one clean file and one that
// could not be read.
func testResult() *runner.Result {
	nullDiag := diag("/w/a.cpp", "A4-10-1", "use-nullptr", "Standard Conversions", config.SeverityError, 3,
		"Use nullptr instead of NULL")
	nullDiag.Suggestion = "Replace NULL with nullptr"
	nullDiag.FixEdits = []fix.TextEdit{{StartOffset: 20, EndOffset: 24, NewText: "nullptr"}}

	return &runner.Result{Files: []runner.FileOutcome{
		{Path: "/w/a.cpp", Result: &lint.PipelineResult{Path: "/w/a.cpp", FileResult: &lint.FileResult{
			Diagnostics: []lint.Diagnostic{
				nullDiag,
				diag("/w/a.cpp", "A6-6-1", "no-goto", "Statements", config.SeverityError, 7,
					"The goto statement shall not be used"),
			},
			Suppressed: []lint.Diagnostic{
				diag("/w/a.cpp", "A6-6-1", "no-goto", "Statements", config.SeverityError, 9,
					"The goto statement shall not be used"),
			},
		}}},
		{Path: "/w/b.cpp", Result: &lint.PipelineResult{Path: "/w/b.cpp", FileResult: &lint.FileResult{
			Diagnostics: []lint.Diagnostic{
				diag("/w/b.cpp", "M6-4-1", "switch-min-clauses", "Statements", config.SeverityWarning, 2,
					"switch needs at least two case clauses"),
			},
		}}},
		{Path: "/w/c.cpp", Result: &lint.PipelineResult{Path: "/w/c.cpp", FileResult: &lint.FileResult{}}},
		{Path: "/w/d.cpp", Error: errors.New("permission denied")},
	}}
}

func render(t *testing.T, opts reporter.Options, result *runner.Result) (string, int) {
	t.Helper()

	var buf bytes.Buffer
	opts.Writer = &buf
	if opts.Color == "" {
		opts.Color = "never"
	}
	rep, err := reporter.New(opts)
	require.NoError(t, err)
	count, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	return buf.String(), count
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "table", want: reporter.FormatTable},
		{input: "json", want: reporter.FormatJSON},
		{input: "sarif", want: reporter.FormatSARIF},
		{input: "diff", want: reporter.FormatDiff},
		{input: "summary", want: reporter.FormatSummary},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{"", reporter.FormatText, reporter.FormatTable, reporter.FormatJSON,
		reporter.FormatSARIF, reporter.FormatDiff, reporter.FormatSummary} {
		rep, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, rep)
	}

	_, err := reporter.New(reporter.Options{Writer: &bytes.Buffer{}, Format: "xml"})
	require.Error(t, err)
}

func TestReporters_ReturnIssueCount(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{reporter.FormatText, reporter.FormatTable, reporter.FormatJSON,
		reporter.FormatSARIF, reporter.FormatSummary} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()
			_, count := render(t, reporter.Options{Format: format, IncludeSuppressed: true}, testResult())
			assert.Equal(t, 3, count, "suppressed diagnostics are not issues")
		})
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{
		Format: reporter.FormatText, GroupByFile: true, ShowSummary: true, WorkingDir: "/w",
	}, testResult())

	assert.Contains(t, out, "d.cpp: error: permission denied")
	assert.Contains(t, out, "a.cpp (2 issues)")
	assert.Contains(t, out, "a.cpp:3:5  error  Use nullptr instead of NULL  (A4-10-1)  [Standard Conversions]")
	assert.Contains(t, out, "Suggestion: Replace NULL with nullptr")
	assert.Contains(t, out, "b.cpp (1 issue)")
	assert.NotContains(t, out, "[suppressed]")
	assert.Contains(t, out, "3 issues (2 errors, 1 warning) in 2 files, 1 fixable, 1 suppressed, 1 file could not be analysed")
}

func TestTextReporter_IncludeSuppressedAndRuleFormat(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{
		Format: reporter.FormatText, IncludeSuppressed: true, RuleFormat: config.RuleFormatName, WorkingDir: "/w",
	}, testResult())

	assert.Contains(t, out, "a.cpp:9:5")
	assert.Contains(t, out, "[suppressed]")
	assert.Contains(t, out, "(no-goto)")
	assert.NotContains(t, out, "(A6-6-1)")
}

func TestTextReporter_NoFiles(t *testing.T) {
	t.Parallel()

	out, count := render(t, reporter.Options{Format: reporter.FormatText, ShowSummary: true}, nil)
	assert.Equal(t, 0, count)
	assert.Equal(t, "No files to check.\n", out)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: reporter.FormatTable, ShowSummary: true, WorkingDir: "/w"}, testResult())
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "Use nullptr instead of NULL")
	assert.NotContains(t, out, "9:5", "suppressed rows are left out")
	assert.Contains(t, out, "4 files checked | 2 errors | 1 warnings | 1 fixable | 1 suppressed")
	assert.Contains(t, out, "Run with --fix")

	perFile, _ := render(t, reporter.Options{Format: reporter.FormatTable, PerFile: true, ShowSummary: true, WorkingDir: "/w"}, testResult())
	assert.Contains(t, perFile, "Overall Summary")
	assert.NotContains(t, perFile, "FILE")
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: reporter.FormatJSON, WorkingDir: "/w", ToolVersion: "1.2.3"}, testResult())

	var doc reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "1.2.3", doc.ToolVersion)
	assert.NotEmpty(t, doc.RunID)
	require.Len(t, doc.Files, 3)
	assert.Equal(t, "a.cpp", doc.Files[0].Path)
	require.Len(t, doc.Files[0].Diagnostics, 2)
	assert.Equal(t, "use-nullptr", doc.Files[0].Diagnostics[0].RuleName)
	assert.True(t, doc.Files[0].Diagnostics[0].Fixable)
	assert.Equal(t, "d.cpp", doc.Files[2].Path)
	assert.Equal(t, "permission denied", doc.Files[2].Error)
	assert.Empty(t, doc.Files[2].Diagnostics)
	assert.Equal(t, 3, doc.Summary.Issues)
	assert.Equal(t, 1, doc.Summary.Suppressed)
	assert.Len(t, doc.Categories, 2)
}

func TestJSONReporter_Compact(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: reporter.FormatJSON, Compact: true}, testResult())
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestSARIFReporter(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{
		Format: reporter.FormatSARIF, IncludeSuppressed: true, WorkingDir: "/w", ToolVersion: "1.2.3",
	}, testResult())

	log, err := sarif.FromString(out)
	require.NoError(t, err)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]

	assert.Equal(t, "autosarlint", run.Tool.Driver.Name)
	require.NotNil(t, run.Tool.Driver.Version)
	assert.Equal(t, "1.2.3", *run.Tool.Driver.Version)
	require.NotNil(t, run.AutomationDetails)
	require.NotNil(t, run.AutomationDetails.GUID)
	assert.NotEmpty(t, *run.AutomationDetails.GUID)
	require.Len(t, run.Invocations, 1)
	assert.False(t, *run.Invocations[0].ExecutionSuccessful, "one file could not be read")

	var ruleIDs []string
	for _, rule := range run.Tool.Driver.Rules {
		ruleIDs = append(ruleIDs, rule.ID)
	}
	assert.ElementsMatch(t, []string{"A4-10-1", "A6-6-1", "M6-4-1"}, ruleIDs)

	require.Len(t, run.Results, 4)
	first := run.Results[0]
	assert.Equal(t, "A4-10-1", *first.RuleID)
	assert.Equal(t, "error", *first.Level)
	assert.Equal(t, "a.cpp", *first.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, 3, *first.Locations[0].PhysicalLocation.Region.StartLine)
	require.Len(t, first.Fixes, 1)
	replacement := first.Fixes[0].ArtifactChanges[0].Replacements[0]
	assert.Equal(t, 20, *replacement.DeletedRegion.ByteOffset)
	assert.Equal(t, 4, *replacement.DeletedRegion.ByteLength)
	assert.Equal(t, "nullptr", *replacement.InsertedContent.Text)

	var suppressed int
	for _, result := range run.Results {
		if len(result.Suppressions) > 0 {
			suppressed++
			assert.Equal(t, "inSource", result.Suppressions[0].Kind)
		}
	}
	assert.Equal(t, 1, suppressed)
	assert.Equal(t, "warning", *run.Results[3].Level)
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	out, _ := render(t, reporter.Options{Format: reporter.FormatSummary, WorkingDir: "/w"}, testResult())
	assert.Contains(t, out, "Rules Summary")
	assert.Contains(t, out, "Categories Summary")
	assert.Contains(t, out, "Files Summary")
	assert.Less(t, strings.Index(out, "Rules Summary"), strings.Index(out, "Categories Summary"))
	assert.Contains(t, out, "Total: 3 issues (2 errors, 1 warnings) in 2 files, 1 suppressed")

	filesFirst, _ := render(t, reporter.Options{
		Format: reporter.FormatSummary, SummaryOrder: config.SummaryOrderFiles,
	}, testResult())
	assert.Less(t, strings.Index(filesFirst, "Files Summary"), strings.Index(filesFirst, "Rules Summary"))

	categoriesFirst, _ := render(t, reporter.Options{
		Format: reporter.FormatSummary, SummaryOrder: config.SummaryOrderCategories,
	}, testResult())
	assert.Less(t, strings.Index(categoriesFirst, "Categories Summary"), strings.Index(categoriesFirst, "Rules Summary"))
}

func TestSummaryReporter_NoIssues(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/w/c.cpp", Result: &lint.PipelineResult{FileResult: &lint.FileResult{}}},
	}}
	out, count := render(t, reporter.Options{Format: reporter.FormatSummary}, result)
	assert.Equal(t, 0, count)
	assert.Equal(t, "No issues found (1 file checked)\n", out)
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	original := []byte("int* p = NULL;\nint main() { return 0; }\n")
	modified := []byte("int* p = nullptr;\nint main() { return 0; }\n")
	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/w/a.cpp", Result: &lint.PipelineResult{
			FileResult: &lint.FileResult{},
			Diff:       fix.GenerateDiff("/w/a.cpp", original, modified),
		}},
		{Path: "/w/b.cpp", Result: &lint.PipelineResult{FileResult: &lint.FileResult{}}},
	}}

	out, files := render(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true, WorkingDir: "/w"}, result)
	assert.Equal(t, 1, files)
	assert.Contains(t, out, "diff --git a/a.cpp b/a.cpp\n--- a/a.cpp\n+++ b/a.cpp\n@@ -1,2 +1,2 @@\n")
	assert.Contains(t, out, "-int* p = NULL;\n+int* p = nullptr;\n int main() { return 0; }\n")
	assert.Contains(t, out, "1 file changed, 1 insertion(+), 1 deletion(-)")
}

func TestDiffReporter_NoDiffs(t *testing.T) {
	t.Parallel()

	out, files := render(t, reporter.Options{Format: reporter.FormatDiff, ShowSummary: true}, testResult())
	assert.Equal(t, 0, files)
	assert.Equal(t, "/w/d.cpp: error: permission denied\n", out)
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := reporter.DefaultOptions()
	assert.Equal(t, reporter.FormatText, opts.Format)
	assert.Equal(t, "auto", opts.Color)
	assert.True(t, opts.ShowContext)
	assert.True(t, opts.ShowSummary)
	assert.Equal(t, config.RuleFormatID, opts.RuleFormat)
}
