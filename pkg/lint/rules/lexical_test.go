package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/lint"
)

func TestTrigraphRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewTrigraphRule() }, []ruleCase{
		{name: "in string", src: "const char* s = \"what??!\";\n", lines: []int{1}},
		{name: "in code", src: "int a;\nint b ??( 3 ??);\n", lines: []int{2, 2}},
		{name: "in comment", src: "// what??!\nint a;\n"},
		{name: "single question marks", src: "int a = b ? c : d;\n"},
	})
}

func TestCommentContinuationRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewCommentContinuationRule() }, []ruleCase{
		{name: "trailing backslash", src: "int a; // note \\\nint b;\n", lines: []int{1}},
		{name: "plain comment", src: "int a; // note\n"},
		{name: "block comment", src: "/* note \\ */\nint a;\n"},
	})
}

func TestNestedCommentRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewNestedCommentRule() }, []ruleCase{
		{name: "nested open", src: "int a;\n/* outer /* inner */\n", lines: []int{2}},
		{name: "single block", src: "/* outer */\n"},
		{name: "line comment", src: "// /* not a block\n"},
	})
}

func TestEscapeSequenceRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewEscapeSequenceRule() }, []ruleCase{
		{name: "undefined escape", src: "const char* s = \"a\\qb\";\n", lines: []int{1}},
		{name: "defined escapes", src: "const char* s = \"\\n\\t\\x1F\\\\\\\"\";\nchar c = '\\0';\n"},
		{name: "char literal", src: "char c = '\\e';\n", lines: []int{1}},
		{name: "raw string", src: "const char* s = R\"(\\q)\";\n"},
	})
}

func TestKeywordRules(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewVolatileRule() }, []ruleCase{
		{name: "volatile", src: "volatile int x;\nint y;\n", lines: []int{1}},
		{name: "in comment", src: "// volatile\n"},
	})
	runCases(t, func() lint.Rule { return NewWcharRule() }, []ruleCase{
		{name: "wchar_t", src: "int a;\nwchar_t c;\n", lines: []int{2}},
	})
	runCases(t, func() lint.Rule { return NewErrnoRule() }, []ruleCase{
		{name: "errno read", src: "int e = errno;\n", lines: []int{1}},
		{name: "member named errno", src: "void f() {\n  s.errno = 1;\n}\n"},
	})
}

func TestHexUppercaseRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewHexUppercaseRule() }, []ruleCase{
		{name: "lowercase digits", src: "int a = 0xff;\nint b = 0xFF;\n", lines: []int{1}},
		{name: "decimal", src: "int a = 255;\n"},
	})
}

func TestHexUppercaseRule_Fix(t *testing.T) {
	t.Parallel()

	got := fixRule(t, NewHexUppercaseRule(), "unsigned a = 0xabu;\n")
	assert.Equal(t, "unsigned a = 0xABu;\n", got)
}

func TestOctalRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewOctalRule() }, []ruleCase{
		{name: "octal constant", src: "int a = 017;\nint b = 0;\n", lines: []int{1}},
		{name: "hex is not octal", src: "int a = 0x10;\n"},
		{name: "octal escape", src: "char c = '\\0';\nchar d = '\\012';\n", lines: []int{2}},
	})
}

func TestLiteralSuffixRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewLiteralSuffixRule() }, []ruleCase{
		{name: "lowercase suffixes", src: "auto a = 10u;\nauto b = 10U;\nauto c = 1.0f;\n", lines: []int{1, 3}},
		{name: "no suffix", src: "auto a = 10;\nauto b = 1.5;\n"},
	})
}

func TestLiteralSuffixRule_Fix(t *testing.T) {
	t.Parallel()

	got := fixRule(t, NewLiteralSuffixRule(), "auto a = 10ul;\nauto b = 2.5f;\n")
	assert.Equal(t, "auto a = 10UL;\nauto b = 2.5F;\n", got)
}

func TestLongDoubleRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewLongDoubleRule() }, []ruleCase{
		{name: "long double", src: "long double x;\ndouble y;\n", lines: []int{1}},
		{name: "double long", src: "int a;\ndouble long x;\n", lines: []int{2}},
		{name: "long long", src: "long long x;\n"},
	})
}

func TestFixedWidthIntegerRule(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewFixedWidthIntegerRule() }, []ruleCase{
		{name: "main is exempt", src: "int main() {\n  unsigned long n = 0;\n  return 0;\n}\n", lines: []int{2}},
		{name: "short", src: "short s;\n", lines: []int{1}},
		{name: "fixed width", src: "std::int32_t x;\n"},
	})
}

func TestFixedWidthIntegerRule_DisabledByDefault(t *testing.T) {
	t.Parallel()

	rule := NewFixedWidthIntegerRule()
	assert.False(t, rule.DefaultEnabled())

	registry := lint.NewRegistry()
	RegisterAll(registry)
	got, ok := registry.Get("fixed-width-integers")
	require.True(t, ok)
	assert.False(t, got.DefaultEnabled())
}
