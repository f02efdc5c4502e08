// Package runner lints batches of C++ files: it discovers sources under the
// requested paths, runs the lint pipeline over them on a bounded worker
// pool and aggregates the per-file outcomes in path order.
package runner

import "github.com/yaklabco/autosarlint/pkg/config"

// Options controls multi-file linting behavior.
type Options struct {
	// Paths are the files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions lists the source extensions (with leading dot) picked up
	// while walking directories. Empty means config.DefaultExtensions.
	Extensions []string

	// IncludeGlobs restrict discovery to matching relative paths.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and directories. Patterns use
	// doublestar syntax ("third_party/**", "**/*_generated.h").
	ExcludeGlobs []string

	// SniffHeaders makes discovery read extension-less files and keep
	// those that look like C++ (standard library style headers).
	SniffHeaders bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs bounds the files processed concurrently. Zero or negative means
	// runtime.NumCPU().
	Jobs int

	// CountCode collects code-line statistics for the discovered files.
	CountCode bool

	// Cache, when set, serves unchanged files from earlier runs. It is
	// bypassed whenever the run can change files.
	Cache *Cache

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// OptionsFromConfig fills the discovery options that live in cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths, Config: cfg}
	if cfg == nil {
		return opts
	}
	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs
	return opts
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
