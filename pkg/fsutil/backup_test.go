package fsutil_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/autosarlint/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode fsutil.BackupMode
		want string
	}{
		{fsutil.BackupModeSidecar, "src/a.cpp.autosarlint.bak"},
		{fsutil.BackupModeNone, ""},
		{"unknown", "src/a.cpp.autosarlint.bak"},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fsutil.BackupPath("src/a.cpp", tt.mode))
		})
	}

	assert.Equal(t, fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar}, fsutil.DefaultBackupConfig())
}

func TestBackup(t *testing.T) {
	t.Parallel()

	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
	const original = "int* p = NULL;\n"

	tests := []struct {
		name       string
		cfg        fsutil.BackupConfig
		prepare    func(t *testing.T, path string)
		wantCreate bool
		wantBackup string
		wantErr    error
	}{
		{name: "disabled", cfg: fsutil.DefaultBackupConfig()},
		{name: "mode none", cfg: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone}},
		{name: "sidecar copy", cfg: enabled, wantCreate: true, wantBackup: original},
		{
			name: "older backup is kept",
			cfg:  enabled,
			prepare: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path+fsutil.BackupSuffix, []byte("first run\n"), 0o644))
			},
			wantBackup: "first run\n",
		},
		{
			name: "source edited since it was read",
			cfg:  enabled,
			prepare: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("int* q = NULL;\n"), 0o644))
			},
			wantErr: fsutil.ErrChangedOnDisk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeSource(t, []byte(original))
			_, snap, err := fsutil.ReadSource(t.Context(), path)
			require.NoError(t, err)
			if tt.prepare != nil {
				tt.prepare(t, path)
			}

			dest, err := fsutil.Backup(t.Context(), snap, tt.cfg)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.NoFileExists(t, path+fsutil.BackupSuffix)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreate, dest != "")

			if tt.wantBackup == "" {
				assert.NoFileExists(t, path+fsutil.BackupSuffix)
				return
			}
			got, err := os.ReadFile(path + fsutil.BackupSuffix)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBackup, string(got))
			if tt.wantCreate {
				stat, err := os.Stat(dest)
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0o640), stat.Mode().Perm(), "backup keeps the source mode")
			}
		})
	}

	_, err := fsutil.Backup(t.Context(), nil, enabled)
	assert.ErrorIs(t, err, fsutil.ErrNilSnapshot)
}
