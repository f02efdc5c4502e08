// Package fsutil reads and writes C++ sources for autosarlint: charset
// conversion on the way in and out, atomic replacement, change detection
// between read and write, and sidecar backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var (
	// ErrNilSnapshot is returned when an operation needs a snapshot and gets nil.
	ErrNilSnapshot = errors.New("nil snapshot")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrCharset wraps failures converting between a source charset and UTF-8.
	ErrCharset = errors.New("charset conversion failed")

	// ErrChangedOnDisk is returned when the file no longer matches its snapshot.
	ErrChangedOnDisk = errors.New("file changed on disk")
)

// Snapshot records a source file as it was when read. Hash and Size cover
// the bytes on disk, before charset decoding.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [32]byte

	// Charset is the IANA name the file was decoded from; empty means UTF-8.
	Charset string
}

// ReadOption configures ReadSource.
type ReadOption func(*readOptions)

type readOptions struct {
	charset string
}

// WithCharset decodes the file from the named IANA charset.
func WithCharset(name string) ReadOption {
	return func(o *readOptions) { o.charset = name }
}

// ReadSource reads path and returns its content as UTF-8 together with a
// snapshot of the undecoded file. A decode failure still returns the
// snapshot so callers can key caches or report on it.
func ReadSource(ctx context.Context, path string, opts ...ReadOption) ([]byte, *Snapshot, error) {
	var ro readOptions
	for _, opt := range opts {
		opt(&ro)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	snap := &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    int64(len(raw)),
		Hash:    sha256.Sum256(raw),
		Charset: ro.charset,
	}

	content, err := decode(raw, ro.charset)
	if err != nil {
		return nil, snap, fmt.Errorf("%w: %s: %w", ErrCharset, path, err)
	}
	return content, snap, nil
}

// Changed reports whether the file differs from the snapshot. Modification
// time and size are always compared; verifyHash also re-reads and hashes
// the content, which catches same-size edits within the mtime granularity.
// A deleted file counts as changed.
func (s *Snapshot) Changed(ctx context.Context, verifyHash bool) (bool, error) {
	if s == nil {
		return false, ErrNilSnapshot
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check %s: %w", s.Path, err)
	}

	stat, err := os.Stat(s.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", s.Path, err)
	}

	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return true, nil
	}
	if !verifyHash {
		return false, nil
	}

	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return sha256.Sum256(raw) != s.Hash, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}
