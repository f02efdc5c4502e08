package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/autosarlint/pkg/lint"
)

func TestCastRules(t *testing.T) {
	t.Parallel()

	src := "void f(Base* b, const int* c, long v) {\n" +
		"  Derived* d = dynamic_cast<Derived*>(b);\n" +
		"  int* m = const_cast<int*>(c);\n" +
		"  char* p = reinterpret_cast<char*>(b);\n" +
		"  int n = (int)v;\n" +
		"  int s = static_cast<int>(v);\n" +
		"}\n"

	tests := []struct {
		name string
		rule lint.Rule
		want []hit
	}{
		{name: "dynamic", rule: NewDynamicCastRule(), want: []hit{{2, "A5-2-1"}}},
		{name: "const", rule: NewConstCastRule(), want: []hit{{3, "A5-2-3"}}},
		{name: "reinterpret", rule: NewReinterpretCastRule(), want: []hit{{4, "A5-2-4"}}},
		{name: "c-style", rule: NewCStyleCastRule(), want: []hit{{5, "A5-2-2"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, hits(lintRule(t, tt.rule, src)))
		})
	}
}

func TestCStyleCastRule_NotACast(t *testing.T) {
	t.Parallel()

	runCases(t, func() lint.Rule { return NewCStyleCastRule() }, []ruleCase{
		{name: "call", src: "void f() {\n  g(x);\n}\n"},
		{name: "grouping", src: "int a = (b + c) * d;\n"},
		{name: "return cast", src: "int f(long v) {\n  return (int)v;\n}\n", lines: []int{2}},
	})
}
