package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/autosarlint/pkg/fix"
)

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: "int* p = NULL;",
			want:    "int* p = NULL;",
		},
		{
			name:    "replace token",
			content: "int* p = NULL;",
			edits:   []fix.TextEdit{{StartOffset: 9, EndOffset: 13, NewText: "nullptr"}},
			want:    "int* p = nullptr;",
		},
		{
			name:    "insert suffix",
			content: "unsigned x = 10;",
			edits:   []fix.TextEdit{{StartOffset: 15, EndOffset: 15, NewText: "U"}},
			want:    "unsigned x = 10U;",
		},
		{
			name:    "delete range",
			content: "x = 1;;",
			edits:   []fix.TextEdit{{StartOffset: 6, EndOffset: 7}},
			want:    "x = 1;",
		},
		{
			name:    "several edits",
			content: "long a = 1l; long b = 2l;",
			edits: []fix.TextEdit{
				{StartOffset: 10, EndOffset: 11, NewText: "L"},
				{StartOffset: 23, EndOffset: 24, NewText: "L"},
			},
			want: "long a = 1L; long b = 2L;",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 2, NewText: "XX"},
				{StartOffset: 2, EndOffset: 4, NewText: "YY"},
				{StartOffset: 4, EndOffset: 6, NewText: "ZZ"},
			},
			want: "XXYYZZ",
		},
		{
			name:    "insert at start and end",
			content: "f();",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 0, NewText: "(void)"},
				{StartOffset: 4, EndOffset: 4, NewText: "\n"},
			},
			want: "(void)f();\n",
		},
		{
			name:    "multibyte content",
			content: "auto s = \"héllo\";",
			edits:   []fix.TextEdit{{StartOffset: 0, EndOffset: 4, NewText: "const char*"}},
			want:    "const char* s = \"héllo\";",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := fix.ApplyEdits([]byte(tt.content), tt.edits)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestApplyEdits_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	content := []byte("int* p = NULL;")
	_ = fix.ApplyEdits(content, []fix.TextEdit{{StartOffset: 9, EndOffset: 13, NewText: "nullptr"}})
	assert.Equal(t, "int* p = NULL;", string(content))
}

func TestEditBuilder(t *testing.T) {
	t.Parallel()

	b := fix.NewEditBuilder()
	b.ReplaceRange(9, 13, "nullptr")
	b.Insert(0, "// fixed\n")
	b.Delete(14, 15)

	assert.Equal(t, 3, b.Len())
	assert.Equal(t, []fix.TextEdit{
		{StartOffset: 9, EndOffset: 13, NewText: "nullptr"},
		{StartOffset: 0, EndOffset: 0, NewText: "// fixed\n"},
		{StartOffset: 14, EndOffset: 15},
	}, b.Edits)
}
