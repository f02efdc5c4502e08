package suppress_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/autosarlint/pkg/directive"
	"github.com/yaklabco/autosarlint/pkg/suppress"
)

func lineReq(target int, ruleID string) directive.Request {
	return directive.Request{Scope: directive.ThisLine, Line: target, TargetLine: target, RuleID: ruleID}
}

func nextReq(line int, ruleID string) directive.Request {
	return directive.Request{Scope: directive.NextLine, Line: line, TargetLine: line + 1, RuleID: ruleID}
}

func blockReq(scope directive.Scope, line int, ruleID string) directive.Request {
	return directive.Request{Scope: scope, Line: line, TargetLine: line, RuleID: ruleID}
}

func TestIndex_Suppresses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		reqs   []directive.Request
		line   int
		ruleID string
		want   bool
	}{
		{name: "no requests", line: 1, ruleID: "A5-2-1", want: false},
		{name: "same line same rule", reqs: []directive.Request{lineReq(3, "A5-2-1")}, line: 3, ruleID: "A5-2-1", want: true},
		{name: "same line other rule", reqs: []directive.Request{lineReq(3, "A5-2-1")}, line: 3, ruleID: "A5-2-2", want: false},
		{name: "other line", reqs: []directive.Request{lineReq(3, "A5-2-1")}, line: 4, ruleID: "A5-2-1", want: false},
		{name: "all filter", reqs: []directive.Request{lineReq(3, directive.All)}, line: 3, ruleID: "M0-1-3", want: true},
		{name: "next line hits N+1", reqs: []directive.Request{nextReq(4, "A4-10-1")}, line: 5, ruleID: "A4-10-1", want: true},
		{name: "next line misses N", reqs: []directive.Request{nextReq(4, "A4-10-1")}, line: 4, ruleID: "A4-10-1", want: false},
		{name: "next line misses N+2", reqs: []directive.Request{nextReq(4, "A4-10-1")}, line: 6, ruleID: "A4-10-1", want: false},
		{
			name:   "union of filters on one line",
			reqs:   []directive.Request{lineReq(2, "A5-0-3"), lineReq(2, "A18-1-1")},
			line:   2,
			ruleID: "A18-1-1",
			want:   true,
		},
		{
			name:   "region excludes opening line",
			reqs:   []directive.Request{blockReq(directive.BlockStart, 2, "A7-1-6"), blockReq(directive.BlockEnd, 6, "A7-1-6")},
			line:   2,
			ruleID: "A7-1-6",
			want:   false,
		},
		{
			name:   "region covers inner line",
			reqs:   []directive.Request{blockReq(directive.BlockStart, 2, "A7-1-6"), blockReq(directive.BlockEnd, 6, "A7-1-6")},
			line:   4,
			ruleID: "A7-1-6",
			want:   true,
		},
		{
			name:   "region includes closing line",
			reqs:   []directive.Request{blockReq(directive.BlockStart, 2, "A7-1-6"), blockReq(directive.BlockEnd, 6, "A7-1-6")},
			line:   6,
			ruleID: "A7-1-6",
			want:   true,
		},
		{
			name:   "region ends after closing line",
			reqs:   []directive.Request{blockReq(directive.BlockStart, 2, "A7-1-6"), blockReq(directive.BlockEnd, 6, "A7-1-6")},
			line:   7,
			ruleID: "A7-1-6",
			want:   false,
		},
		{
			name:   "unclosed region runs to end of file",
			reqs:   []directive.Request{blockReq(directive.BlockStart, 2, directive.All)},
			line:   100000,
			ruleID: "A2-13-5",
			want:   true,
		},
		{
			name: "enable all closes every region",
			reqs: []directive.Request{
				blockReq(directive.BlockStart, 1, "A5-2-1"),
				blockReq(directive.BlockStart, 2, "A5-2-2"),
				blockReq(directive.BlockEnd, 3, directive.All),
			},
			line:   5,
			ruleID: "A5-2-2",
			want:   false,
		},
		{
			name:   "enable without disable is a no-op",
			reqs:   []directive.Request{blockReq(directive.BlockEnd, 3, "A5-2-1")},
			line:   3,
			ruleID: "A5-2-1",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			idx := suppress.NewIndex(tt.reqs)
			assert.Equal(t, tt.want, idx.Suppresses(tt.line, tt.ruleID))
		})
	}
}

func TestIndex_Nil(t *testing.T) {
	t.Parallel()

	var idx *suppress.Index
	assert.False(t, idx.Suppresses(1, "A5-2-1"))
	assert.Equal(t, 0, idx.Len())
}

func TestPartition(t *testing.T) {
	t.Parallel()

	type diag struct {
		line int
		rule string
	}
	items := []diag{{1, "A5-2-1"}, {2, "A5-2-1"}, {2, "A18-1-1"}, {3, "M0-1-3"}}
	idx := suppress.NewIndex([]directive.Request{lineReq(2, "A18-1-1"), nextReq(2, directive.All)})

	kept, dropped := suppress.Partition(items, idx, func(d diag) (int, string) { return d.line, d.rule })
	assert.Equal(t, []diag{{1, "A5-2-1"}, {2, "A5-2-1"}}, kept)
	assert.Equal(t, []diag{{2, "A18-1-1"}, {3, "M0-1-3"}}, dropped)
	assert.Equal(t, 2, idx.Len())
}
