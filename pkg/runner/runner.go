package runner

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/autosarlint/internal/logging"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/fsutil"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// Runner lints many files through one lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a Runner around pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers the files selected by opts and processes them on a pool of
// at most opts.Jobs workers. Per-file failures are recorded on the
// outcome; the returned error is reserved for discovery failures and
// cancellation. Outcomes are ordered by path whatever the completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))
	if len(files) == 0 {
		return result, nil
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	pipelineOpts := lint.PipelineOptionsFromConfig(cfg)

	job := fileJob{runner: r, cfg: cfg, opts: pipelineOpts}
	if opts.Cache != nil && !pipelineOpts.Writes() && !pipelineOpts.DryRun {
		job.cache = opts.Cache
		job.fingerprint = lint.Fingerprint(lint.ResolveRules(r.Pipeline.Engine.Registry, cfg), cfg) +
			"|" + cfg.Charset
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	outcomes := make([]FileOutcome, len(files))
	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			outcomes[i] = job.process(ctx, path)
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome.Path != "" {
			result.accumulate(outcome)
		}
	}

	if opts.CountCode {
		stats, err := CountCode(files)
		if err != nil {
			result.Errors = append(result.Errors, err)
		}
		result.Stats.Code = stats
	}
	result.Stats.Duration = time.Since(start)

	logger.Debug("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldSuppressed, result.Stats.DiagnosticsSuppressed,
		logging.FieldCacheHits, result.Stats.CacheHits,
		logging.FieldDuration, result.Stats.Duration)

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

// fileJob holds what every worker shares.
type fileJob struct {
	runner      *Runner
	cfg         *config.Config
	opts        lint.PipelineOptions
	cache       *Cache
	fingerprint string
}

func (j fileJob) process(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}
	if ctx.Err() != nil {
		outcome.Error = ctx.Err()
		return outcome
	}
	if j.cache != nil {
		if pr, cached, ok := j.processCached(ctx, path); ok {
			outcome.Result = pr
			outcome.Cached = cached
			return outcome
		}
	}

	pr, err := j.runner.Pipeline.ProcessFile(ctx, path, j.cfg, j.opts)
	if err != nil {
		logging.FromContext(ctx).Debug("file failed", logging.FieldPath, path, logging.FieldError, err)
		outcome.Error = err
		return outcome
	}
	outcome.Result = pr
	return outcome
}

// processCached serves path from the cache or lints it and stores the
// result. ok is false when the file must go through the plain pipeline,
// which then reports the read or decode error.
func (j fileJob) processCached(ctx context.Context, path string) (*lint.PipelineResult, bool, bool) {
	logger := logging.FromContext(ctx)

	content, info, err := fsutil.ReadSource(ctx, path, fsutil.WithCharset(j.opts.Charset))
	if err != nil {
		return nil, false, false
	}
	key := j.cache.Key(path, info.Hash, j.fingerprint)

	entry, hit, err := j.cache.Get(key)
	if err != nil {
		logger.Debug("cache read failed", logging.FieldPath, path, logging.FieldError, err)
	}
	if hit {
		return &lint.PipelineResult{
			Path:         path,
			OriginalInfo: info,
			FileResult:   entry.FileResult(path),
		}, true, true
	}

	pr, err := j.runner.Pipeline.ProcessContent(ctx, path, content, j.cfg, j.opts)
	if err != nil {
		return nil, false, false
	}
	pr.OriginalInfo = info

	if len(pr.RuleErrors) == 0 {
		if entry, err := NewCacheEntry(pr.FileResult); err == nil {
			err = j.cache.Put(ctx, key, entry)
			if err != nil {
				logger.Debug("cache write failed", logging.FieldPath, path, logging.FieldError, err)
			}
		}
	}
	return pr, false, true
}
