package lint_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/internal/logging"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// testContext carries a discarding logger so detector warnings stay quiet.
func testContext() context.Context {
	return logging.WithLogger(context.Background(), logging.Discard())
}

type position struct {
	line   int
	ruleID string
}

func positions(diags []lint.Diagnostic) []position {
	out := make([]position, 0, len(diags))
	for _, d := range diags {
		out = append(out, position{line: d.StartLine, ruleID: d.RuleID})
	}
	return out
}

func TestEngine_LintFile_OrdersAndStampsDiagnostics(t *testing.T) {
	t.Parallel()

	engine := newEngine(lineRule("A2-0-2", 3, 1), lineRule("A1-0-1", 3))
	result, err := engine.LintFile(testContext(), "src/a.cpp", []byte("int a;\nint b;\nint c;\n"), config.NewConfig())
	require.NoError(t, err)

	assert.Equal(t, []position{{1, "A2-0-2"}, {3, "A1-0-1"}, {3, "A2-0-2"}}, positions(result.Diagnostics))
	for _, d := range result.Diagnostics {
		assert.Equal(t, "src/a.cpp", d.FilePath)
		assert.Equal(t, "rule-"+d.RuleID, d.RuleName)
		assert.Equal(t, "Testing", d.Category)
		assert.Equal(t, config.SeverityWarning, d.Severity)
	}
	assert.Empty(t, result.RuleErrors)
	assert.Equal(t, 3, result.IssueCount())
}

func TestEngine_LintFile_SeverityFromConfig(t *testing.T) {
	t.Parallel()

	severity := "error"
	cfg := config.NewConfig()
	cfg.Rules["rule-A1-0-1"] = config.RuleConfig{Severity: &severity}

	result, err := newEngine(lineRule("A1-0-1", 1)).LintFile(testContext(), "a.cpp", []byte("int a;\n"), cfg)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, config.SeverityError, result.Diagnostics[0].Severity)
}

func TestEngine_LintFile_DetectorPanicIsContained(t *testing.T) {
	t.Parallel()

	panicking := newRule("A9-9-9", "panics", func(*lint.RuleContext) ([]lint.Diagnostic, error) {
		panic("boom")
	})
	engine := newEngine(panicking, lineRule("A1-0-1", 1))

	result, err := engine.LintFile(testContext(), "a.cpp", []byte("int a;\n"), config.NewConfig())
	require.NoError(t, err)

	assert.Equal(t, []position{{1, "A1-0-1"}}, positions(result.Diagnostics))
	var panicErr *lint.DetectorPanicError
	require.ErrorAs(t, result.RuleErrors["A9-9-9"], &panicErr)
	assert.Equal(t, "A9-9-9", panicErr.RuleID)
	assert.Equal(t, "boom", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
}

func TestEngine_LintFile_DetectorErrorIsRecorded(t *testing.T) {
	t.Parallel()

	failing := newRule("A9-9-8", "fails", func(*lint.RuleContext) ([]lint.Diagnostic, error) {
		return nil, assert.AnError
	})
	result, err := newEngine(failing).LintFile(testContext(), "a.cpp", []byte("int a;\n"), config.NewConfig())
	require.NoError(t, err)
	require.ErrorIs(t, result.RuleErrors["A9-9-8"], assert.AnError)
	assert.Empty(t, result.Diagnostics)
}

func TestEngine_LintFile_Suppression(t *testing.T) {
	t.Parallel()

	src := "int a; // autosar-disable-line A1-0-1\n" +
		"int b;\n" +
		"// autosar-disable-next-line all\n" +
		"int c;\n"
	engine := newEngine(lineRule("A1-0-1", 1, 2, 4), lineRule("A2-0-2", 1))

	result, err := engine.LintFile(testContext(), "a.cpp", []byte(src), config.NewConfig())
	require.NoError(t, err)

	assert.Equal(t, []position{{1, "A2-0-2"}, {2, "A1-0-1"}}, positions(result.Diagnostics))
	assert.Equal(t, []position{{1, "A1-0-1"}, {4, "A1-0-1"}}, positions(result.Suppressed))
	assert.Equal(t, 2, result.SuppressedCount())
	assert.Len(t, result.Directives, 2)
}

func TestEngine_LintFile_ParseRecovery(t *testing.T) {
	t.Parallel()

	disabled := false
	tests := []struct {
		name       string
		src        string
		recovery   *bool
		wantKept   int
		wantSuppr  int
		wantColumn int
	}{
		{name: "reported by default", src: "int a = 1 @ 2;\n", wantKept: 1, wantColumn: 11},
		{name: "disabled by config", src: "int a = 1 @ 2;\n", recovery: &disabled},
		{name: "suppressed by all", src: "int a = 1 @ 2; // autosar-disable-line all\n", wantSuppr: 1},
		{name: "not suppressed by a rule id", src: "int a = 1 @ 2; // autosar-disable-line A1-0-1\n", wantKept: 1, wantColumn: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			cfg.ParseRecovery = tt.recovery

			result, err := newEngine().LintFile(testContext(), "a.cpp", []byte(tt.src), cfg)
			require.NoError(t, err)
			require.Len(t, result.Diagnostics, tt.wantKept)
			assert.Len(t, result.Suppressed, tt.wantSuppr)
			if tt.wantKept > 0 {
				d := result.Diagnostics[0]
				assert.Equal(t, lint.ParseRecoveryRuleID, d.RuleID)
				assert.Equal(t, lint.ParseRecoveryCategory, d.Category)
				assert.Equal(t, config.SeverityInfo, d.Severity)
				assert.Equal(t, tt.wantColumn, d.StartColumn)
				assert.Contains(t, d.Message, "@")
			}
		})
	}
}

func TestEngine_LintFile_DeterministicAcrossJobCounts(t *testing.T) {
	t.Parallel()

	var rules []lint.Rule
	for i := range 12 {
		rules = append(rules, lineRule(fmt.Sprintf("A%d-1-%d", i/4+1, i), 3, 1, 2))
	}
	src := []byte("int a;\nint b;\nint c;\n")

	var baseline []lint.Diagnostic
	for _, jobs := range []int{1, 2, 16} {
		cfg := config.NewConfig()
		cfg.DetectorJobs = jobs
		result, err := newEngine(rules...).LintFile(testContext(), "a.cpp", src, cfg)
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 36)
		if baseline == nil {
			baseline = result.Diagnostics
			continue
		}
		assert.Equal(t, baseline, result.Diagnostics, "jobs=%d", jobs)
	}
}

func TestEngine_LintFile_FixEditsAppliedOnlyInFixMode(t *testing.T) {
	t.Parallel()

	src := []byte("int* p = NULL;\n")
	engine := newEngine(nullRule())

	t.Run("report only", func(t *testing.T) {
		t.Parallel()
		result, err := engine.LintFile(testContext(), "a.cpp", src, config.NewConfig())
		require.NoError(t, err)
		require.Len(t, result.Diagnostics, 1)
		assert.True(t, result.Diagnostics[0].HasFix(), "diagnostics advertise their fix")
		assert.Equal(t, 1, result.FixableCount())
		assert.False(t, result.HasFixes(), "nothing is applied without fix mode")
	})

	t.Run("fix mode", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.Fix = true
		result, err := engine.LintFile(testContext(), "a.cpp", src, cfg)
		require.NoError(t, err)
		require.Len(t, result.Edits, 1)
		assert.Equal(t, 9, result.Edits[0].StartOffset)
		assert.Equal(t, 13, result.Edits[0].EndOffset)
		assert.Equal(t, "nullptr", result.Edits[0].NewText)
		assert.Equal(t, 1, result.FixableCount())
	})
}

func TestEngine_LintFile_SuppressedDiagnosticsContributeNoEdits(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Fix = true
	src := []byte("int* p = NULL; // autosar-disable-line A4-10-1\n")

	result, err := newEngine(nullRule()).LintFile(testContext(), "a.cpp", src, cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
	assert.Len(t, result.Suppressed, 1)
	assert.Empty(t, result.Edits)
}

func TestEngine_LintFile_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	_, err := newEngine(lineRule("A1-0-1", 1)).LintFile(ctx, "a.cpp", []byte("int a;\n"), config.NewConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareDiagnostics(t *testing.T) {
	t.Parallel()

	diags := []lint.Diagnostic{
		{FilePath: "b.cpp", StartLine: 1, StartColumn: 1, RuleID: "A1-0-1"},
		{FilePath: "a.cpp", StartLine: 2, StartColumn: 1, RuleID: "A1-0-1"},
		{FilePath: "a.cpp", StartLine: 1, StartColumn: 5, RuleID: "A1-0-1"},
		{FilePath: "a.cpp", StartLine: 1, StartColumn: 5, RuleID: "A0-0-1"},
		{FilePath: "a.cpp", StartLine: 1, StartColumn: 1, RuleID: "A9-0-1", Message: "b"},
		{FilePath: "a.cpp", StartLine: 1, StartColumn: 1, RuleID: "A9-0-1", Message: "a"},
	}
	lint.SortDiagnostics(diags)

	got := make([]string, 0, len(diags))
	for _, d := range diags {
		got = append(got, d.FilePath+":"+d.RuleID+":"+d.Message)
	}
	assert.Equal(t, []string{
		"a.cpp:A9-0-1:a",
		"a.cpp:A9-0-1:b",
		"a.cpp:A0-0-1:",
		"a.cpp:A1-0-1:",
		"a.cpp:A1-0-1:",
		"b.cpp:A1-0-1:",
	}, got)
}
