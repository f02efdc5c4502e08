package lint

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/fix"
	"github.com/yaklabco/autosarlint/pkg/fsutil"
)

// DefaultMaxFixPasses is the maximum number of fix passes to prevent infinite loops.
// If more passes are needed, some rules are likely creating issues for each other.
const DefaultMaxFixPasses = 10

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates a scanning error.
	ErrParseFailure = errors.New("parse failure")

	// ErrDecodeFailure indicates the file could not be converted from or to
	// the configured charset.
	ErrDecodeFailure = errors.New("charset conversion failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineResult contains the result of processing a single file through the safety pipeline.
type PipelineResult struct {
	// FileResult contains lint diagnostics and edits from the FINAL pass.
	// After fixing or inserting suppressions it reflects the new content.
	*FileResult

	// Path is the file path that was processed.
	Path string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.Snapshot

	// Modified is true if the file content was changed.
	Modified bool

	// ModifiedContent is the new content after applying edits (nil if not modified).
	ModifiedContent []byte

	// Diff is the unified diff for dry-run mode (nil if not in dry-run).
	Diff *fix.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// FixPasses is the number of fix passes performed.
	FixPasses int

	// TotalEditsApplied is the total number of fix edits applied across all passes.
	TotalEditsApplied int

	// SuppressionsInserted is the number of directive comments added in
	// suppress mode.
	SuppressionsInserted int
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		if pr.BackupCreated {
			return "fixed (backup created)"
		}
		return "fixed"
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.FileResult != nil && pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Fix enables auto-fix mode.
	Fix bool

	// Suppress inserts directive comments for every remaining diagnostic.
	Suppress bool

	// NextLine makes Suppress insert autosar-disable-next-line comments on
	// their own line instead of trailing autosar-disable-line comments.
	NextLine bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// Charset is the IANA name of the source encoding. Empty means UTF-8.
	Charset string

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// ReParseAfterFix re-scans the modified content to validate fixes.
	ReParseAfterFix bool

	// MaxFixPasses limits the number of fix iterations to prevent infinite loops.
	// When conflicting edits are skipped, a subsequent pass may be able to fix them.
	// Set to 0 to use DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Writes reports whether the options can change file content.
func (o PipelineOptions) Writes() bool {
	return o.Fix || o.Suppress
}

// Pipeline orchestrates the safe processing of a single file.
type Pipeline struct {
	// Engine is the lint engine used for parsing and rule execution.
	Engine *Engine
}

// NewPipeline creates a new safety pipeline with the given engine.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile runs the full safety pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file, decoding it from the configured charset.
//  2. Lint, applying fixes in passes until stable when fix mode is on.
//  3. Insert suppression comments for what remains when suppress mode is on.
//  4. Generate diff (if dry-run mode).
//  5. Check for concurrent modifications.
//  6. Create backup (if enabled).
//  7. Re-encode and write the modified content atomically.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadSource(ctx, path, fsutil.WithCharset(opts.Charset))
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.process(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || opts.DryRun || result.Skipped {
		return result, nil
	}

	modified, err := info.Changed(ctx, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		dest, err := fsutil.Backup(ctx, info, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = dest != ""
	}

	if err := fsutil.WriteSource(ctx, info, result.ModifiedContent); err != nil {
		if errors.Is(err, fsutil.ErrCharset) {
			return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent processes in-memory, already decoded content without
// file I/O. It fixes and inserts suppressions just like ProcessFile.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	return p.process(ctx, path, content, cfg, opts)
}

func (p *Pipeline) process(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	content := original
	var fileResult *FileResult

	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		var lintErr error
		fileResult, lintErr = p.Engine.LintFile(ctx, path, content, cfg)
		if lintErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, lintErr)
		}

		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}

		content = fix.ApplyEdits(content, fileResult.Edits)
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	if opts.Suppress && fileResult.HasIssues() {
		edits := SuppressionEdits(fileResult.Snapshot, fileResult.Diagnostics, opts.NextLine)
		accepted, _, _, err := fix.PrepareEditsFiltered(edits, len(content))
		if err != nil {
			return nil, fmt.Errorf("prepare suppressions: %w", err)
		}
		if len(accepted) > 0 {
			content = fix.ApplyEdits(content, accepted)
			result.SuppressionsInserted = len(accepted)
			result.Modified = true

			fileResult, err = p.Engine.LintFile(ctx, path, content, cfg)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
			}
		}
	}

	result.FileResult = fileResult
	if !result.Modified {
		return result, nil
	}
	result.ModifiedContent = content

	if opts.ReParseAfterFix {
		if _, err := p.Engine.Parser.Parse(ctx, path, content); err != nil {
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}

	return result, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	if errors.Is(err, fsutil.ErrCharset) {
		return fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrDecodeFailure) ||
		errors.Is(err, ErrWriteFailure)
}

// BackupConfigFromConfig creates an fsutil.BackupConfig from config.Config.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.Enabled && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		Suppress:            cfg.Suppress,
		NextLine:            cfg.NextLine,
		DryRun:              cfg.DryRun,
		Charset:             cfg.Charset,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}
