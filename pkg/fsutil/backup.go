package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups of fixed sources go.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup next to the source, with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a source path to name its sidecar backup.
const BackupSuffix = ".autosarlint.bak"

// BackupConfig controls whether fix mode backs a source up before
// rewriting it.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig has backups off, in sidecar mode once enabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath names the backup of path, or "" when mode keeps none.
// Unknown modes fall back to a sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// Backup copies the source described by snap to its backup path and
// returns that path. It returns "" without writing when backups are off or
// a backup already exists: the oldest backup holds the pre-fix source and
// later runs never replace it. The copy is refused with ErrChangedOnDisk
// unless the file still hashes to the snapshot.
func Backup(ctx context.Context, snap *Snapshot, cfg BackupConfig) (string, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return "", nil
	}
	if snap == nil {
		return "", ErrNilSnapshot
	}

	dest := BackupPath(snap.Path, cfg.Mode)
	if _, err := os.Lstat(dest); err == nil {
		return "", nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat backup %s: %w", dest, err)
	}

	raw, err := os.ReadFile(snap.Path)
	if err != nil {
		return "", classify(snap.Path, err)
	}
	if sha256.Sum256(raw) != snap.Hash {
		return "", fmt.Errorf("%w: %s", ErrChangedOnDisk, snap.Path)
	}

	if err := WriteAtomic(ctx, dest, raw, snap.Mode); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return dest, nil
}
