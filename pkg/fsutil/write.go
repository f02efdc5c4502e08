package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is used when WriteAtomic is given no mode.
const DefaultFileMode os.FileMode = 0o644

// WriteSource replaces the file a snapshot was taken of with content,
// encoded back into the snapshot's charset and keeping its mode.
func WriteSource(ctx context.Context, snap *Snapshot, content []byte) error {
	if snap == nil {
		return ErrNilSnapshot
	}
	out, err := encode(content, snap.Charset)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCharset, snap.Path, err)
	}
	return WriteAtomic(ctx, snap.Path, out, snap.Mode)
}

// WriteAtomic writes content to a hidden temp file next to path, syncs it
// and renames it over path, so readers see either the old file or the new
// one. The temp file is removed on any failure.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) (err error) {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), mode.Perm()); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
