package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/fix"
	"github.com/yaklabco/autosarlint/pkg/fsutil"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// cacheSchema changes whenever the entry layout or any rule's behaviour
// changes, invalidating older entries.
const cacheSchema uint16 = 2

// Cache stores the diagnostics of analysed files on disk, keyed by path,
// content hash and rule set fingerprint. It is safe for concurrent use;
// entries are written atomically.
type Cache struct {
	dir string
}

// CacheEntry is the persisted result of one file.
type CacheEntry struct {
	Schema      uint16
	Diagnostics []cachedDiagnostic
	Suppressed  []cachedDiagnostic
}

type cachedDiagnostic struct {
	RuleID      string
	RuleName    string
	Category    string
	Message     string
	Severity    string
	Suggestion  string
	StartLine   uint32
	StartColumn uint32
	EndLine     uint32
	EndColumn   uint32
	Edits       []cachedEdit
}

type cachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
}

// DefaultCacheDir returns $XDG_CACHE_HOME/autosarlint or its platform
// equivalent.
func DefaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locate user cache directory: %w", err)
	}
	return filepath.Join(base, "autosarlint"), nil
}

// OpenCache opens (creating if needed) a cache rooted at dir. An empty dir
// selects DefaultCacheDir.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultCacheDir(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string {
	return c.dir
}

// Key derives the entry key of a file.
func (c *Cache) Key(path string, contentHash [32]byte, fingerprint string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d\x00%s\x00", cacheSchema, path)
	h.Write(contentHash[:])
	h.Write([]byte(fingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, key[:2], key+".mp")
}

// Get loads the entry for key. A missing entry or one written by another
// schema is a miss, not an error.
func (c *Cache) Get(key string) (*CacheEntry, bool, error) {
	data, err := os.ReadFile(c.pathFor(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}
	var entry CacheEntry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cache entry: %w", err)
	}
	if entry.Schema != cacheSchema {
		return nil, false, nil
	}
	return &entry, true, nil
}

// Put stores entry under key.
func (c *Cache) Put(ctx context.Context, key string, entry *CacheEntry) error {
	entry.Schema = cacheSchema
	data, err := msgpack.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	path := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache shard: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("read cache directory: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}
	return nil
}

// NewCacheEntry captures the diagnostics of fr.
func NewCacheEntry(fr *lint.FileResult) (*CacheEntry, error) {
	diags, err := encodeDiagnostics(fr.Diagnostics)
	if err != nil {
		return nil, err
	}
	suppressed, err := encodeDiagnostics(fr.Suppressed)
	if err != nil {
		return nil, err
	}
	return &CacheEntry{Schema: cacheSchema, Diagnostics: diags, Suppressed: suppressed}, nil
}

// FileResult rebuilds the lint result of the file at path. The snapshot
// is not cached, so the result carries none.
func (e *CacheEntry) FileResult(path string) *lint.FileResult {
	return &lint.FileResult{
		Diagnostics: decodeDiagnostics(e.Diagnostics, path),
		Suppressed:  decodeDiagnostics(e.Suppressed, path),
	}
}

func encodeDiagnostics(diags []lint.Diagnostic) ([]cachedDiagnostic, error) {
	if len(diags) == 0 {
		return nil, nil
	}
	out := make([]cachedDiagnostic, 0, len(diags))
	for _, d := range diags {
		cd := cachedDiagnostic{
			RuleID:     d.RuleID,
			RuleName:   d.RuleName,
			Category:   d.Category,
			Message:    d.Message,
			Severity:   string(d.Severity),
			Suggestion: d.Suggestion,
		}
		var err error
		if cd.StartLine, err = safecast.Conv[uint32](d.StartLine); err != nil {
			return nil, fmt.Errorf("cache %s start line: %w", d.RuleID, err)
		}
		if cd.StartColumn, err = safecast.Conv[uint32](d.StartColumn); err != nil {
			return nil, fmt.Errorf("cache %s start column: %w", d.RuleID, err)
		}
		if cd.EndLine, err = safecast.Conv[uint32](d.EndLine); err != nil {
			return nil, fmt.Errorf("cache %s end line: %w", d.RuleID, err)
		}
		if cd.EndColumn, err = safecast.Conv[uint32](d.EndColumn); err != nil {
			return nil, fmt.Errorf("cache %s end column: %w", d.RuleID, err)
		}
		for _, edit := range d.FixEdits {
			ce := cachedEdit{NewText: edit.NewText}
			if ce.Start, err = safecast.Conv[uint32](edit.StartOffset); err != nil {
				return nil, fmt.Errorf("cache %s edit start: %w", d.RuleID, err)
			}
			if ce.End, err = safecast.Conv[uint32](edit.EndOffset); err != nil {
				return nil, fmt.Errorf("cache %s edit end: %w", d.RuleID, err)
			}
			cd.Edits = append(cd.Edits, ce)
		}
		out = append(out, cd)
	}
	return out, nil
}

func decodeDiagnostics(cached []cachedDiagnostic, path string) []lint.Diagnostic {
	if len(cached) == 0 {
		return nil
	}
	out := make([]lint.Diagnostic, 0, len(cached))
	for _, cd := range cached {
		var edits []fix.TextEdit
		for _, ce := range cd.Edits {
			edits = append(edits, fix.TextEdit{StartOffset: int(ce.Start), EndOffset: int(ce.End), NewText: ce.NewText})
		}
		out = append(out, lint.Diagnostic{
			RuleID:      cd.RuleID,
			RuleName:    cd.RuleName,
			Category:    cd.Category,
			Message:     cd.Message,
			Severity:    config.Severity(cd.Severity),
			Suggestion:  cd.Suggestion,
			FilePath:    path,
			StartLine:   int(cd.StartLine),
			StartColumn: int(cd.StartColumn),
			EndLine:     int(cd.EndLine),
			EndColumn:   int(cd.EndColumn),
			FixEdits:    edits,
		})
	}
	return out
}
