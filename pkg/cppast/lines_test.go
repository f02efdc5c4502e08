package cppast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/autosarlint/pkg/cppast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []cppast.LineInfo
	}{
		{
			name:     "empty content",
			content:  "",
			expected: []cppast.LineInfo{},
		},
		{
			name:    "single line no newline",
			content: "int x;",
			expected: []cppast.LineInfo{
				{StartOffset: 0, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "single line with LF",
			content: "int x;\n",
			expected: []cppast.LineInfo{
				{StartOffset: 0, NewlineStart: 6, EndOffset: 7},
			},
		},
		{
			name:    "CRLF lines",
			content: "a;\r\nb;\r\n",
			expected: []cppast.LineInfo{
				{StartOffset: 0, NewlineStart: 2, EndOffset: 4},
				{StartOffset: 4, NewlineStart: 6, EndOffset: 8},
			},
		},
		{
			name:    "trailing line without newline",
			content: "a;\nb;",
			expected: []cppast.LineInfo{
				{StartOffset: 0, NewlineStart: 2, EndOffset: 3},
				{StartOffset: 3, NewlineStart: 5, EndOffset: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, cppast.BuildLines([]byte(tt.content)))
		})
	}
}

func TestLineAt(t *testing.T) {
	t.Parallel()

	file := cppast.NewFileSnapshot("a.cpp", []byte("int a;\n  int b;\n"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{offset: 0, wantLine: 1, wantCol: 1},
		{offset: 4, wantLine: 1, wantCol: 5},
		{offset: 6, wantLine: 1, wantCol: 7},
		{offset: 7, wantLine: 2, wantCol: 1},
		{offset: 9, wantLine: 2, wantCol: 3},
		{offset: 16, wantLine: 3, wantCol: 1},
		{offset: -1, wantLine: 0, wantCol: 0},
		{offset: 99, wantLine: 0, wantCol: 0},
	}

	for _, tt := range tests {
		line, col := file.LineAt(tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
}

func TestLineContentAndIndent(t *testing.T) {
	t.Parallel()

	file := cppast.NewFileSnapshot("a.cpp", []byte("void f() {\n\t  return;\r\n}"))

	assert.Equal(t, "void f() {", string(file.LineContent(1)))
	assert.Equal(t, "\t  return;", string(file.LineContent(2)))
	assert.Equal(t, "}", string(file.LineContent(3)))
	assert.Nil(t, file.LineContent(4))
	assert.Equal(t, "\t  ", file.LineIndent(2))
	assert.Empty(t, file.LineIndent(1))

	offset, ok := file.Offset(2, 4)
	assert.True(t, ok)
	assert.Equal(t, 14, offset)

	_, ok = file.Offset(9, 1)
	assert.False(t, ok)
}

func TestSourceSpan(t *testing.T) {
	t.Parallel()

	a := cppast.SourceSpan{StartLine: 2, StartColumn: 5, EndLine: 2, EndColumn: 9}
	b := cppast.SourceSpan{StartLine: 1, StartColumn: 3, EndLine: 2, EndColumn: 6}

	assert.True(t, a.IsValid())
	assert.True(t, a.IsSingleLine())
	assert.False(t, b.IsSingleLine())
	assert.Equal(t, cppast.SourceSpan{StartLine: 1, StartColumn: 3, EndLine: 2, EndColumn: 9}, a.Union(b))
	assert.False(t, cppast.SourceSpan{StartLine: 3, StartColumn: 1, EndLine: 2, EndColumn: 1}.IsValid())
	assert.Equal(t, "2:5-2:9", a.String())
}
