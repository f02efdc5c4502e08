package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

func TestTypedefRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewTypedefRule() }, []ruleCase{
		{name: "typedef", src: "typedef unsigned int uint;\n", lines: []int{1}},
		{name: "using alias", src: "using uint = unsigned int;\n"},
		{name: "typedef struct", src: "typedef struct {\n  int x;\n} Point;\n", lines: []int{3}},
	})
}

func TestScopedEnumRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewScopedEnumRule() }, []ruleCase{
		{name: "plain enum", src: "enum Color { Red, Green };\n", lines: []int{1}},
		{name: "enum class", src: "enum class Color { Red, Green };\n"},
		{name: "enum struct", src: "enum struct Color : int { Red };\n"},
	})

	diags := lintRule(t, NewScopedEnumRule(), "enum Color { Red };\n")
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "'Color'")
}

func TestCArrayRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewCArrayRule() }, []ruleCase{
		{name: "file scope", src: "int arr[10];\n", lines: []int{1}},
		{name: "local", src: "void f() {\n  char buf[16];\n  g(buf);\n}\n", lines: []int{2}},
		{name: "std array", src: "std::array<int, 10> arr;\n"},
	})
}

func TestPointerDepthRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewPointerDepthRule() }, []ruleCase{
		{name: "three levels", src: "int** ok;\nint*** bad;\n", lines: []int{2}},
		{name: "parameter", src: "void f(char*** argv) {\n  g(argv);\n}\n", lines: []int{1}},
	})
}

func TestPointerDepthRule_Option(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Rules["A5-0-3"] = config.RuleConfig{Options: map[string]any{"max_depth": 1}}
	result := lintWith(t, cfg, "int* ok;\nint** bad;\n", NewPointerDepthRule())
	assert.Equal(t, []int{2}, lines(result.Diagnostics))
}

func TestShadowingRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewShadowingRule() }, []ruleCase{
		{
			name:  "inner block hides local",
			src:   "void f() {\n  int x = 0;\n  {\n    int x = 1;\n    g(x);\n  }\n  g(x);\n}\n",
			lines: []int{4},
		},
		{
			name:  "local hides parameter",
			src:   "void f(int n) {\n  if (n) {\n    int n = 2;\n    g(n);\n  }\n}\n",
			lines: []int{3},
		},
		{
			name:  "local hides file-scope variable",
			src:   "int count = 0;\nvoid f() {\n  int count = 1;\n  g(count);\n}\n",
			lines: []int{3},
		},
		{
			name:  "for init hides local",
			src:   "void f() {\n  int i = 0;\n  for (int i = 0; i < 3; ++i) {\n  }\n  g(i);\n}\n",
			lines: []int{3},
		},
		{
			name: "sibling scopes",
			src:  "void f() {\n  {\n    int x = 0;\n    g(x);\n  }\n  {\n    int x = 1;\n    g(x);\n  }\n}\n",
		},
		{
			name: "different functions",
			src:  "void f(int a) {\n  g(a);\n}\nvoid h() {\n  int a = 0;\n  g(a);\n}\n",
		},
	})

	diags := lintRule(t, NewShadowingRule(), "void f(int n) {\n  {\n    int n = 2;\n  }\n}\n")
	require.Len(t, diags, 1)
	assert.Equal(t, "'n' hides the parameter declared on line 1", diags[0].Message)
}
