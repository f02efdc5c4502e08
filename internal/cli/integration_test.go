package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/internal/cli"
	"github.com/yaklabco/autosarlint/internal/configloader"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/fsutil"
)

// nullSource reports one A4-10-1 (nullptr-only) error on line 5.
const nullSource = "\n\n\n\nint* p = NULL;\n"

// suppressedSource has one diagnostic, silenced in place.
const suppressedSource = "int arr[10]; // suppress-line: A18-1-1\n"

// testEnv is an isolated directory holding one source file and a config
// file passed with --config, so the user's own config never applies.
type testEnv struct {
	dir    string
	source string
	config string
}

func newTestEnv(t *testing.T, source, cfg string) testEnv {
	t.Helper()

	dir := t.TempDir()
	env := testEnv{
		dir:    dir,
		source: filepath.Join(dir, "test.cpp"),
		config: filepath.Join(dir, ".autosarlint.yml"),
	}
	require.NoError(t, os.WriteFile(env.source, []byte(source), 0o644))
	if cfg == "" {
		cfg = "charset: UTF-8\n"
	}
	require.NoError(t, os.WriteFile(env.config, []byte(cfg), 0o644))
	return env
}

// run executes the CLI with the env's config and returns its combined
// output and error.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	full := append([]string{args[0], "--config", e.config, "--color", "never"}, args[1:]...)
	cmd.SetArgs(full)

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func (e testEnv) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.source)
	require.NoError(t, err)
	return string(data)
}

func TestIntegration_ReportsDiagnostic(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")
	output, err := env.run(t, "lint", env.source)

	require.ErrorIs(t, err, cli.ErrLintIssuesFound)
	assert.Equal(t, cli.ExitLintErrors, cli.ExitCodeFromError(err))
	assert.Contains(t, output, "test.cpp:5:10")
	assert.Contains(t, output, "NULL used as a null pointer constant")
	assert.Contains(t, output, "(A4-10-1)")
	assert.Contains(t, output, "[Standard Conversions]")
	assert.Contains(t, output, "int* p = NULL;", "source context is shown by default")
}

func TestIntegration_RuleFormatFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ruleFormat     string
		wantContains   []string
		wantNotContain []string
	}{
		{
			ruleFormat:     "id",
			wantContains:   []string{"(A4-10-1)"},
			wantNotContain: []string{"nullptr-only"},
		},
		{
			ruleFormat:     "name",
			wantContains:   []string{"(nullptr-only)"},
			wantNotContain: []string{"A4-10-1"},
		},
		{
			ruleFormat:   "combined",
			wantContains: []string{"(A4-10-1/nullptr-only)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.ruleFormat, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nullSource, "")
			output, err := env.run(t, "lint", "--rule-format", tt.ruleFormat, "--no-context", env.source)
			require.ErrorIs(t, err, cli.ErrLintIssuesFound)

			for _, want := range tt.wantContains {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.wantNotContain {
				assert.NotContains(t, output, notWant)
			}
		})
	}
}

func TestIntegration_RuleSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config string
		args   []string
	}{
		{
			name:   "config by rule name",
			config: "rules:\n  nullptr-only:\n    enabled: false\n",
		},
		{
			name:   "config by rule ID",
			config: "rules:\n  A4-10-1:\n    enabled: false\n",
		},
		{
			name:   "config by category",
			config: "rules:\n  Standard Conversions:\n    enabled: false\n",
		},
		{
			name: "disable flag by ID",
			args: []string{"--disable", "A4-10-1"},
		},
		{
			name: "disable flag by legacy alias",
			args: []string{"--disable", "modernize-use-nullptr"},
		},
		{
			name: "disable flag by category",
			args: []string{"--disable", "standard-conversions"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nullSource, tt.config)
			args := append([]string{"lint"}, tt.args...)
			output, err := env.run(t, append(args, env.source)...)

			require.NoError(t, err, output)
			assert.NotContains(t, output, "A4-10-1")
			assert.Contains(t, output, "No issues found")
		})
	}
}

func TestIntegration_DuplicateRuleKeysLoad(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, `rules:
  A4-10-1:
    severity: warning
  nullptr-only:
    severity: warning
`)
	output, err := env.run(t, "lint", env.source)

	require.NoError(t, err, "a warning does not fail the run")
	assert.Contains(t, output, "(A4-10-1)")
	assert.Contains(t, output, "1 warning")
}

func TestIntegration_StrictWarnings(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "rules:\n  A4-10-1:\n    severity: warning\n")

	_, err := env.run(t, "lint", env.source)
	require.NoError(t, err)

	_, err = env.run(t, "lint", "--strict", env.source)
	require.ErrorIs(t, err, cli.ErrLintWarningsFound)
	assert.Equal(t, cli.ExitLintWarnings, cli.ExitCodeFromError(err))
}

func TestIntegration_InvalidConfig(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "rules:\n  A4-10-1:\n    severity: fatal\n")
	_, err := env.run(t, "lint", env.source)

	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCodeFromError(err))
}

func TestIntegration_InvalidUsage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")

	tests := [][]string{
		{"lint", "--no-such-flag", env.source},
		{"lint", "--summary-order", "sideways", env.source},
		{"lint", "--sort-by", "random", env.source},
		{"rules", "--format", "xml"},
	}
	for _, args := range tests {
		_, err := env.run(t, args...)
		require.Error(t, err, args)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err), args)
	}
}

func TestIntegration_JSONOutput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")
	output, err := env.run(t, "lint", "--format", "json", env.source)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	var report struct {
		ToolVersion string `json:"toolVersion"`
		Files       []struct {
			Diagnostics []struct {
				RuleID   string `json:"ruleId"`
				RuleName string `json:"ruleName"`
				Fixable  bool   `json:"fixable"`
			} `json:"diagnostics"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &report), output)

	assert.Equal(t, "1.2.3", report.ToolVersion)
	require.Len(t, report.Files, 1)
	require.Len(t, report.Files[0].Diagnostics, 1)
	assert.Equal(t, "A4-10-1", report.Files[0].Diagnostics[0].RuleID)
	assert.Equal(t, "nullptr-only", report.Files[0].Diagnostics[0].RuleName)
	assert.True(t, report.Files[0].Diagnostics[0].Fixable)
}

func TestIntegration_SARIFOutput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")
	output, err := env.run(t, "lint", "--format", "sarif", env.source)
	require.ErrorIs(t, err, cli.ErrLintIssuesFound)

	assert.Contains(t, output, `"version": "2.1.0"`)
	assert.Contains(t, output, `"ruleId": "A4-10-1"`)
}

func TestIntegration_SummaryFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		order string
		first string
		then  string
	}{
		{order: "rules", first: "Rules Summary", then: "Files Summary"},
		{order: "files", first: "Files Summary", then: "Rules Summary"},
		{order: "categories", first: "Categories Summary", then: "Rules Summary"},
	}

	for _, tt := range tests {
		t.Run(tt.order, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nullSource, "")
			output, err := env.run(t, "lint", "--format", "summary", "--summary-order", tt.order, env.source)
			require.ErrorIs(t, err, cli.ErrLintIssuesFound)

			firstIdx := strings.Index(output, tt.first)
			thenIdx := strings.Index(output, tt.then)
			require.Greater(t, firstIdx, -1, output)
			require.Greater(t, thenIdx, -1, output)
			assert.Less(t, firstIdx, thenIdx)
			assert.Contains(t, output, "Total:")
		})
	}
}

func TestIntegration_NoIssues(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, suppressedSource, "")

	output, err := env.run(t, "lint", env.source)
	require.NoError(t, err)
	assert.Contains(t, output, "No issues found")
	assert.Contains(t, output, "1 suppressed")

	output, err = env.run(t, "lint", "--include-suppressed", env.source)
	require.NoError(t, err, "suppressed diagnostics never fail the run")
	assert.Contains(t, output, "A18-1-1")
	assert.Contains(t, output, "[suppressed]")
}

func TestIntegration_FixWithBackup(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")
	_, err := env.run(t, "lint", "--fix", env.source)
	require.NoError(t, err)

	backup, err := os.ReadFile(env.source + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, nullSource, string(backup))
}

func TestIntegration_Fix(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")
	_, err := env.run(t, "lint", "--fix", "--no-backups", env.source)

	require.NoError(t, err, "no diagnostic survives the fix")
	assert.Equal(t, "\n\n\n\nint* p = nullptr;\n", env.read(t))
	_, statErr := os.Stat(env.source + fsutil.BackupSuffix)
	assert.True(t, os.IsNotExist(statErr), "no backup with --no-backups")
}

func TestIntegration_FixDryRunDiff(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")
	output, err := env.run(t, "lint", "--format", "diff", env.source)

	require.NoError(t, err, output)
	assert.Contains(t, output, "-int* p = NULL;")
	assert.Contains(t, output, "+int* p = nullptr;")
	assert.Equal(t, nullSource, env.read(t), "diff format never writes")
}

func TestIntegration_Suppress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "trailing comment",
			want: "\n\n\n\nint* p = NULL; // autosar-disable-line A4-10-1\n",
		},
		{
			name: "next line",
			args: []string{"--next-line"},
			want: "\n\n\n\n// autosar-disable-next-line A4-10-1\nint* p = NULL;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nullSource, "")
			args := append([]string{"suppress", "--no-backups"}, tt.args...)
			output, err := env.run(t, append(args, env.source)...)

			require.NoError(t, err, output)
			assert.Equal(t, tt.want, env.read(t))

			_, err = env.run(t, "lint", env.source)
			assert.NoError(t, err, "suppressed file lints clean")
		})
	}
}

func TestIntegration_SuppressDryRun(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")
	output, err := env.run(t, "suppress", "--dry-run", "--format", "diff", env.source)

	require.NoError(t, err, output)
	assert.Contains(t, output, "+int* p = NULL; // autosar-disable-line A4-10-1")
	assert.Equal(t, nullSource, env.read(t))
}

func TestIntegration_RulesCommand(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")

	output, err := env.run(t, "rules", "--format", "json")
	require.NoError(t, err)
	var all []map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &all), output)
	assert.Len(t, all, 39)

	output, err = env.run(t, "rules", "--format", "json", "--category", "Statements")
	require.NoError(t, err)
	var statements []struct {
		ID       string `json:"id"`
		Category string `json:"category"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &statements))
	ids := make([]string, 0, len(statements))
	for _, s := range statements {
		assert.Equal(t, "Statements", s.Category)
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"A6-5-3", "A6-6-1", "M6-3-1", "M6-4-1", "M6-4-2"}, ids)

	output, err = env.run(t, "rules", "--rule-format", "combined")
	require.NoError(t, err)
	assert.Contains(t, output, "Standard Conversions")
	assert.Contains(t, output, "A4-10-1/nullptr-only")
	assert.Contains(t, output, "39 rules")

	_, err = env.run(t, "rules", "--category", "Nonsense")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_Init(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		args          []string
		file          string
		setsExtension bool
	}{
		{name: "minimal yaml", file: "out.yml"},
		{name: "full json", args: []string{"--full", "--format", "json"}, file: "out.json", setsExtension: true},
		{name: "toml", args: []string{"--format", "toml"}, file: "out.toml", setsExtension: true},
		{name: "strict pack", args: []string{"--pack", "strict"}, file: "pack.yml", setsExtension: true},
		{name: "relaxed pack toml", args: []string{"--pack", "relaxed", "--format", "toml"}, file: "pack.toml", setsExtension: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, nullSource, "")
			path := filepath.Join(env.dir, tt.file)
			args := append([]string{"init", "--output", path}, tt.args...)
			_, err := env.run(t, args...)
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			raw, err := config.Parse(path, data)
			require.NoError(t, err, string(data))
			assert.Equal(t, tt.setsExtension, len(raw.Extensions) > 0, "extensions written to the file")

			loaded, err := configloader.Load(t.Context(), configloader.LoadOptions{
				WorkingDir:          env.dir,
				ExplicitPath:        path,
				IgnoreSystemConfig:  true,
				IgnoreUserConfig:    true,
				IgnoreProjectConfig: true,
				IgnoreEnv:           true,
			})
			require.NoError(t, err, string(data))
			assert.Equal(t, []string{path}, loaded.LoadedFrom)
			assert.NotEmpty(t, loaded.Config.Extensions, "defaults fill what the file leaves out")

			_, err = env.run(t, args...)
			require.Error(t, err, "existing file needs --force")

			_, err = env.run(t, append(args, "--force")...)
			require.NoError(t, err)
		})
	}
}

func TestIntegration_InitUnknownPack(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nullSource, "")
	_, err := env.run(t, "init", "--output", filepath.Join(env.dir, "x.yml"), "--pack", "lenient")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCodeFromError(err))
}

func TestIntegration_CacheCommands(t *testing.T) {
	t.Parallel()

	cacheDir := filepath.Join(t.TempDir(), "cache")
	env := newTestEnv(t, nullSource, "cache:\n  enabled: true\n  dir: "+cacheDir+"\n")

	for range 2 {
		_, err := env.run(t, "lint", env.source)
		require.ErrorIs(t, err, cli.ErrLintIssuesFound, "cached results keep their diagnostics")
	}
	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	output, err := env.run(t, "cache", "dir")
	require.NoError(t, err)
	assert.Equal(t, cacheDir, strings.TrimSpace(output))

	_, err = env.run(t, "cache", "clear")
	require.NoError(t, err)
	entries, err = os.ReadDir(cacheDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
