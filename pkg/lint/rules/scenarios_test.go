package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
	"github.com/yaklabco/autosarlint/pkg/parser"
)

// lintCatalog runs the full built-in catalog over src with cfg.
func lintCatalog(t *testing.T, cfg *config.Config, src string) *lint.FileResult {
	t.Helper()

	registry := lint.NewRegistry()
	RegisterAll(registry)
	result, err := lint.NewEngine(parser.New(), registry).LintFile(testContext(), "scenario.cpp", []byte(src), cfg)
	require.NoError(t, err)
	require.Empty(t, result.RuleErrors)
	return result
}

func TestCatalogScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		want       []hit
		suppressed int
	}{
		{
			name: "NULL initializer",
			src:  "\n\n\n\nint* p = NULL;\n",
			want: []hit{{5, "A4-10-1"}},
		},
		{
			name:       "disable-next-line",
			src:        "\n\n\n// autosar-disable-next-line A4-10-1\nint* p = NULL;\n",
			want:       []hit{},
			suppressed: 1,
		},
		{
			name: "goto and unreachable code",
			src: "#include <iostream>\n" +
				"void f() {\n" +
				"goto error;\n" +
				"std::cout << \"x\";\n" +
				"error:\n" +
				"return;\n" +
				"}\n",
			want: []hit{{3, "A6-6-1"}, {4, "M0-1-1"}},
		},
		{
			name:       "suppress-line",
			src:        "int arr[10]; // suppress-line: A18-1-1\nint arr[10];\n",
			want:       []hit{{2, "A18-1-1"}},
			suppressed: 1,
		},
		{
			name: "leading block comment suppress-line",
			src: "void f() {\n" +
				"  /* suppress-line: A18-1-1 */ int arr[10]; arr[0] = 1;\n" +
				"  int b[2]; b[0] = 1;\n" +
				"}\n",
			want:       []hit{{3, "A18-1-1"}},
			suppressed: 1,
		},
		{
			name:       "clang-tidy NOLINT",
			src:        "int* p = NULL; // NOLINT(A4-10-1)\nint* q = NULL;\n",
			want:       []hit{{2, "A4-10-1"}},
			suppressed: 1,
		},
		{
			name:       "NOLINTNEXTLINE and suppress-next-line",
			src:        "// NOLINTNEXTLINE(A4-10-1)\nint* p = NULL;\n// suppress-next-line: A18-1-1\nint arr[10];\nint* q = NULL;\n",
			want:       []hit{{5, "A4-10-1"}},
			suppressed: 2,
		},
		{
			name: "unused local before used local",
			src:  "void f() {\n  int unused = 0;\n  int used = 1;\n  g(used);\n}\n",
			want: []hit{{2, "M0-1-3"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := lintCatalog(t, config.NewConfig(), tt.src)
			assert.Equal(t, tt.want, hits(result.Diagnostics))
			assert.Equal(t, tt.suppressed, result.SuppressedCount())
		})
	}
}

const mixedSource = `#define LIMIT 10
typedef unsigned int uint;
enum Color { Red, Green };
int* gp = NULL;
struct Shape {
  virtual double area();
};
int f(int a, int b) {
  int unused = 0x1f;
  if (a)
    return (int)b;
  for (int i = 0; i < LIMIT; ++i) {
    int a = i;
    g(a);
  }
  return a;
  g();
}
`

func TestCatalog_Deterministic(t *testing.T) {
	t.Parallel()

	first := lintCatalog(t, config.NewConfig(), mixedSource)
	second := lintCatalog(t, config.NewConfig(), mixedSource)
	require.NotEmpty(t, first.Diagnostics)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
}

// Each rule reports the same diagnostics alone as it does inside the full
// catalog.
func TestCatalog_RulesAreIndependent(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	off := false
	cfg.ParseRecovery = &off
	full := lintCatalog(t, cfg, mixedSource)

	registry := lint.NewRegistry()
	RegisterAll(registry)
	for _, rule := range registry.Rules() {
		if !rule.DefaultEnabled() {
			continue
		}
		t.Run(rule.ID(), func(t *testing.T) {
			t.Parallel()

			var fromFull []lint.Diagnostic
			for _, d := range full.Diagnostics {
				if d.RuleID == rule.ID() {
					fromFull = append(fromFull, d)
				}
			}
			alone := lintRule(t, rule, mixedSource)
			assert.Equal(t, hits(fromFull), hits(alone))
		})
	}
}

func TestCatalog_MixedSource(t *testing.T) {
	t.Parallel()

	result := lintCatalog(t, config.NewConfig(), mixedSource)
	got := hits(result.Diagnostics)

	for _, want := range []hit{
		{1, "A16-2-1"},
		{2, "A7-1-6"},
		{3, "A7-2-3"},
		{4, "A4-10-1"},
		{5, "A11-0-1"},
		{9, "M0-1-3"},
		{9, "A2-13-5"},
		{11, "M6-4-1"},
		{11, "A5-2-2"},
		{13, "A2-10-1"},
		{17, "M0-1-1"},
	} {
		assert.Contains(t, got, want)
	}
}
