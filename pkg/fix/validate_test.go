package fix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/fix"
)

func edit(start, end int, text string) fix.TextEdit {
	return fix.TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		edits   []fix.TextEdit
		wantErr string
	}{
		{name: "empty", edits: nil},
		{name: "within bounds", edits: []fix.TextEdit{edit(0, 4, "x"), edit(10, 10, "y")}},
		{name: "whole content", edits: []fix.TextEdit{edit(0, 10, "")}},
		{name: "negative start", edits: []fix.TextEdit{edit(-1, 2, "")}, wantErr: "start offset is negative"},
		{name: "inverted range", edits: []fix.TextEdit{edit(5, 3, "")}, wantErr: "end offset is before start offset"},
		{name: "past end", edits: []fix.TextEdit{edit(8, 11, "")}, wantErr: "end offset 11 exceeds content length 10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := fix.ValidateEdits(tt.edits, 10)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			var verr *fix.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	edits := []fix.TextEdit{edit(10, 12, "c"), edit(0, 5, "b"), edit(0, 2, "a"), edit(0, 2, "a2")}
	fix.SortEdits(edits)
	assert.Equal(t, []fix.TextEdit{edit(0, 2, "a"), edit(0, 2, "a2"), edit(0, 5, "b"), edit(10, 12, "c")}, edits)
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	require.NoError(t, fix.DetectConflicts([]fix.TextEdit{edit(0, 2, ""), edit(2, 4, ""), edit(4, 4, "x")}))

	err := fix.DetectConflicts([]fix.TextEdit{edit(0, 5, "a"), edit(3, 6, "b")})
	var cerr *fix.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, edit(0, 5, "a"), cerr.Edit1)
	assert.Equal(t, edit(3, 6, "b"), cerr.Edit2)
	assert.Equal(t, "overlapping edits: [0:5] and [3:6]", err.Error())
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	t.Run("sorts a copy", func(t *testing.T) {
		t.Parallel()
		in := []fix.TextEdit{edit(6, 7, "b"), edit(0, 1, "a")}
		got, err := fix.PrepareEdits(in, 10)
		require.NoError(t, err)
		assert.Equal(t, []fix.TextEdit{edit(0, 1, "a"), edit(6, 7, "b")}, got)
		assert.Equal(t, edit(6, 7, "b"), in[0])
	})

	t.Run("rejects overlap", func(t *testing.T) {
		t.Parallel()
		_, err := fix.PrepareEdits([]fix.TextEdit{edit(0, 4, "a"), edit(2, 6, "b")}, 10)
		var cerr *fix.ConflictError
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("rejects invalid range", func(t *testing.T) {
		t.Parallel()
		_, err := fix.PrepareEdits([]fix.TextEdit{edit(0, 40, "a")}, 10)
		var verr *fix.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestMergeAndFilterConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		edits        []fix.TextEdit
		wantAccepted []fix.TextEdit
		wantSkipped  []fix.TextEdit
		wantMerged   int
	}{
		{
			name: "empty",
		},
		{
			name:         "disjoint",
			edits:        []fix.TextEdit{edit(0, 2, "a"), edit(4, 6, "b")},
			wantAccepted: []fix.TextEdit{edit(0, 2, "a"), edit(4, 6, "b")},
		},
		{
			name:         "overlapping deletions merge",
			edits:        []fix.TextEdit{edit(0, 4, ""), edit(2, 8, ""), edit(7, 9, "")},
			wantAccepted: []fix.TextEdit{edit(0, 9, "")},
			wantMerged:   2,
		},
		{
			name:         "later replacement skipped",
			edits:        []fix.TextEdit{edit(0, 4, "nullptr"), edit(2, 6, "x")},
			wantAccepted: []fix.TextEdit{edit(0, 4, "nullptr")},
			wantSkipped:  []fix.TextEdit{edit(2, 6, "x")},
		},
		{
			name:         "deletion overlapping replacement skipped",
			edits:        []fix.TextEdit{edit(0, 4, ""), edit(1, 3, "U"), edit(5, 6, "L")},
			wantAccepted: []fix.TextEdit{edit(0, 4, ""), edit(5, 6, "L")},
			wantSkipped:  []fix.TextEdit{edit(1, 3, "U")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			accepted, skipped, merged := fix.MergeAndFilterConflicts(tt.edits)
			if len(tt.wantAccepted) == 0 {
				assert.Empty(t, accepted)
			} else {
				assert.Equal(t, tt.wantAccepted, accepted)
			}
			assert.Equal(t, tt.wantSkipped, skipped)
			assert.Equal(t, tt.wantMerged, merged)
		})
	}
}

func TestPrepareEditsFiltered(t *testing.T) {
	t.Parallel()

	content := "int* p = NULL;"
	edits := []fix.TextEdit{
		edit(9, 13, "nullptr"),
		edit(0, 3, "long"),
		edit(10, 12, "X"),
	}
	accepted, skipped, merged, err := fix.PrepareEditsFiltered(edits, len(content))
	require.NoError(t, err)
	assert.Equal(t, 0, merged)
	assert.Equal(t, []fix.TextEdit{edit(10, 12, "X")}, skipped)
	assert.Equal(t, "long* p = nullptr;", string(fix.ApplyEdits([]byte(content), accepted)))

	_, _, _, err = fix.PrepareEditsFiltered([]fix.TextEdit{edit(0, 99, "")}, len(content))
	require.Error(t, err)
}
