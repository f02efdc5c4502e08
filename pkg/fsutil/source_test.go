package fsutil_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/fsutil"
)

func writeSource(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unit.cpp")
	require.NoError(t, os.WriteFile(path, data, 0o640))
	return path
}

func TestReadSource_Charsets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		charset string
		raw     []byte
		want    string
	}{
		{name: "default is utf-8", raw: []byte("int x; // ü\n"), want: "int x; // ü\n"},
		{name: "explicit utf-8", charset: "UTF-8", raw: []byte("// é\n"), want: "// é\n"},
		{name: "latin-1 comment", charset: "ISO-8859-1", raw: []byte{'/', '/', ' ', 0xE9, '\n'}, want: "// é\n"},
		{name: "windows-1252 euro", charset: "windows-1252", raw: []byte{'"', 0x80, '"'}, want: "\"€\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeSource(t, tt.raw)
			content, snap, err := fsutil.ReadSource(t.Context(), path, fsutil.WithCharset(tt.charset))
			require.NoError(t, err)

			assert.Equal(t, tt.want, string(content))
			assert.Equal(t, path, snap.Path)
			assert.Equal(t, tt.charset, snap.Charset)
			assert.Equal(t, int64(len(tt.raw)), snap.Size, "size covers the undecoded bytes")
			assert.Equal(t, sha256.Sum256(tt.raw), snap.Hash, "hash covers the undecoded bytes")
			assert.Equal(t, os.FileMode(0o640), snap.Mode.Perm())
		})
	}
}

func TestReadSource_Errors(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(t.Context())
	cancel()

	tests := []struct {
		name     string
		path     func(t *testing.T) string
		ctx      context.Context
		opts     []fsutil.ReadOption
		wantErr  error
		wantSnap bool
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "gone.cpp") },
			wantErr: fsutil.ErrNotFound,
		},
		{
			name:    "directory",
			path:    func(t *testing.T) string { return t.TempDir() },
			wantErr: fsutil.ErrIsDirectory,
		},
		{
			name:     "unknown charset keeps the snapshot",
			path:     func(t *testing.T) string { return writeSource(t, []byte("int a;\n")) },
			opts:     []fsutil.ReadOption{fsutil.WithCharset("no-such-charset")},
			wantErr:  fsutil.ErrUnknownCharset,
			wantSnap: true,
		},
		{
			name:    "cancelled context",
			path:    func(t *testing.T) string { return writeSource(t, []byte("int a;\n")) },
			ctx:     cancelled,
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := tt.ctx
			if ctx == nil {
				ctx = t.Context()
			}
			content, snap, err := fsutil.ReadSource(ctx, tt.path(t), tt.opts...)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, content)
			assert.Equal(t, tt.wantSnap, snap != nil)
		})
	}

	_, _, err := fsutil.ReadSource(t.Context(), writeSource(t, []byte("x")), fsutil.WithCharset("no-such-charset"))
	assert.ErrorIs(t, err, fsutil.ErrCharset)
}

func TestSnapshot_Changed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		edit       func(t *testing.T, path string)
		verifyHash bool
		want       bool
	}{
		{name: "untouched", edit: func(*testing.T, string) {}, verifyHash: true},
		{
			name: "appended",
			edit: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("int* p = NULL;\nint q;\n"), 0o644))
			},
			want: true,
		},
		{
			name: "deleted",
			edit: func(t *testing.T, path string) { require.NoError(t, os.Remove(path)) },
			want: true,
		},
		{
			name:       "same size and mtime caught only by hash",
			edit:       sameStatEdit,
			verifyHash: true,
			want:       true,
		},
		{
			name: "same size and mtime missed without hash",
			edit: sameStatEdit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeSource(t, []byte("int* p = NULL;\n"))
			_, snap, err := fsutil.ReadSource(t.Context(), path)
			require.NoError(t, err)

			tt.edit(t, path)
			got, err := snap.Changed(t.Context(), tt.verifyHash)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// sameStatEdit rewrites the file with same-length content and restores its
// modification time.
func sameStatEdit(t *testing.T, path string) {
	t.Helper()
	stat, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("int* p = 0000;\n"), 0o644))
	require.NoError(t, os.Chtimes(path, time.Time{}, stat.ModTime()))
}

func TestSnapshot_ChangedNil(t *testing.T) {
	t.Parallel()

	var snap *fsutil.Snapshot
	_, err := snap.Changed(t.Context(), true)
	assert.ErrorIs(t, err, fsutil.ErrNilSnapshot)
}

func TestLookupCharset(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"ISO-8859-1", "latin1", "windows-1252", "Shift_JIS"} {
		_, err := fsutil.LookupCharset(name)
		assert.NoError(t, err, name)
	}
	_, err := fsutil.LookupCharset("no-such-charset")
	assert.ErrorIs(t, err, fsutil.ErrUnknownCharset)

	assert.True(t, fsutil.IsUTF8Charset(" utf8 "))
	assert.True(t, fsutil.IsUTF8Charset(""))
	assert.False(t, fsutil.IsUTF8Charset("ISO-8859-1"))
}
