package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

func TestNodeCache_Indexes(t *testing.T) {
	t.Parallel()

	snap := mustParse(`#include <cstdint>
struct P { int x; };
void f(int a) {
    if (a) { return; }
    for (int i = 0; i < a; ++i) { }
}
`)
	nc := lint.NewNodeCache(snap)

	assert.Len(t, nc.Functions(), 1)
	assert.Len(t, nc.Classes(), 1)
	assert.Len(t, nc.Directives(), 1)
	assert.Len(t, nc.StatementsOf(cppast.StmtIf), 1)
	assert.Len(t, nc.StatementsOf(cppast.StmtFor), 1)
	assert.Len(t, nc.StatementsOf(cppast.StmtReturn), 1)
	assert.Empty(t, nc.StatementsOf(cppast.StmtGoto))
	assert.NotEmpty(t, nc.Declarations())
	assert.NotEmpty(t, nc.Blocks())
}

func TestNodeCache_CodeNavigation(t *testing.T) {
	t.Parallel()

	snap := mustParse("a /* c */ b // d\n")
	require.Len(t, snap.Tokens, 4)
	nc := lint.NewNodeCache(snap)

	tests := []struct {
		name string
		got  int
		want int
	}{
		{name: "next from code", got: nc.NextCode(0), want: 2},
		{name: "next from comment", got: nc.NextCode(1), want: 2},
		{name: "prev from code", got: nc.PrevCode(2), want: 0},
		{name: "prev from comment", got: nc.PrevCode(3), want: 2},
		{name: "next past end", got: nc.NextCode(2), want: -1},
		{name: "prev before start", got: nc.PrevCode(0), want: -1},
		{name: "out of range", got: nc.NextCode(-1), want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.got)
		})
	}
	assert.Equal(t, []int{0, 2}, nc.CodeTokens())
}

func TestNodeCache_NilFile(t *testing.T) {
	t.Parallel()

	nc := lint.NewNodeCache(nil)
	assert.Empty(t, nc.Statements())
	assert.Equal(t, -1, nc.NextCode(0))
}
