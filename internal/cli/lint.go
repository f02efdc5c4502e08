package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/autosarlint/internal/configloader"
	"github.com/yaklabco/autosarlint/internal/logging"
	"github.com/yaklabco/autosarlint/pkg/analysis"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
	_ "github.com/yaklabco/autosarlint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/autosarlint/pkg/parser"
	"github.com/yaklabco/autosarlint/pkg/reporter"
	"github.com/yaklabco/autosarlint/pkg/runner"
)

// runFlags holds the flags shared by lint and suppress.
type runFlags struct {
	format          string
	ruleFormat      string
	ignore          []string
	extensions      []string
	enable          []string
	disable         []string
	charset         string
	noContext       bool
	compact         bool
	sniffHeaders    bool
	followSymlinks  bool
	noParseRecovery bool

	// lint only
	fixRules          []string
	strict            bool
	perFile           bool
	quiet             bool
	includeSuppressed bool
	summaryOrder      string
	sortBy            string
	cache             bool
	noCache           bool
	cacheDir          string
	cpuprofile        string
	memprofile        string
	trace             string
}

func newLintCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check C++ sources against the AUTOSAR rules",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, info, &cfg, flags)
		},
	}

	addRunFlags(cmd, &cfg, flags)
	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Check C++ sources against the AUTOSAR C++14 rule catalog.

By default, checks every C++ source and header under the current directory.
Specify paths to check specific files or directories.

Examples:
  autosarlint lint                      # Check current directory
  autosarlint lint src/                 # Check src directory
  autosarlint lint main.cpp             # Check single file
  autosarlint lint --fix                # Check and fix issues in place
  autosarlint lint --fix --dry-run      # Show fixes without applying
  autosarlint lint --format diff        # Print fixes as a unified diff
  autosarlint lint --format sarif       # Output SARIF for code scanning
  autosarlint lint --disable Statements # Skip a whole rule category
  autosarlint lint --strict             # Treat warnings as errors`

func runLint(cmd *cobra.Command, args []string, info BuildInfo, cfg *config.Config, flags *runFlags) error {
	stop, err := startProfiling(flags)
	if err != nil {
		return err
	}
	defer stop()

	return runAnalysis(cmd, args, info, cfg, flags)
}

// runAnalysis loads configuration, runs the pipeline over args and
// reports the result. It returns a sentinel error when the outcome calls
// for a non-zero exit code.
func runAnalysis(cmd *cobra.Command, args []string, info BuildInfo, cfg *config.Config, flags *runFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	applyRunFlags(cmd, cfg, flags)

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	finalCfg, err := loadConfig(ctx, cmd, workDir, cfg)
	if err != nil {
		return err
	}
	if flags.noCache {
		finalCfg.Cache.Enabled = false
	}
	if finalCfg.Format == config.FormatDiff {
		// The diff renderer shows proposed edits, so it always runs a dry run.
		finalCfg.DryRun = true
		if !finalCfg.Suppress {
			finalCfg.Fix = true
		}
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return &UsageError{Err: err}
	}
	summaryOrder := config.SummaryOrder(flags.summaryOrder)
	if flags.summaryOrder != "" && !summaryOrder.IsValid() {
		return &UsageError{Err: fmt.Errorf("invalid summary order %q (valid: rules, files, categories)", flags.summaryOrder)}
	}
	sortBy := analysis.SortField(flags.sortBy)
	if flags.sortBy != "" && !sortBy.IsValid() {
		return &UsageError{Err: fmt.Errorf("invalid sort field %q (valid: count, alpha, severity)", flags.sortBy)}
	}

	logger.Debug("configuration loaded",
		logging.FieldFix, finalCfg.Fix,
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldSuppress, finalCfg.Suppress,
		logging.FieldJobs, finalCfg.Jobs,
		logging.FieldCharset, finalCfg.Charset,
	)

	engine := lint.NewEngine(parser.New(), lint.DefaultRegistry)
	lintRunner := runner.New(lint.NewPipeline(engine))

	runOpts := runner.OptionsFromConfig(finalCfg, args)
	runOpts.WorkingDir = workDir
	runOpts.SniffHeaders = flags.sniffHeaders
	runOpts.FollowSymlinks = flags.followSymlinks
	runOpts.CountCode = format == reporter.FormatSummary || format == reporter.FormatJSON
	runOpts.Cache = openCache(logger, finalCfg)

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldCache, runOpts.Cache != nil,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	logger.Info("run complete",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldCacheHits, result.Stats.CacheHits,
		logging.FieldDuration, result.Stats.Duration,
	)

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:            cmd.OutOrStdout(),
		ErrorWriter:       cmd.ErrOrStderr(),
		Format:            format,
		Color:             colorMode,
		ShowContext:       !flags.noContext,
		ShowSummary:       !flags.quiet,
		GroupByFile:       true,
		Compact:           flags.compact,
		PerFile:           flags.perFile,
		IncludeSuppressed: finalCfg.IncludeSuppressed,
		RuleFormat:        finalCfg.RuleFormat,
		SummaryOrder:      summaryOrder,
		SortBy:            sortBy,
		WorkingDir:        workDir,
		ToolVersion:       info.Version,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	return resultError(ExitCodeFromResult(result, flags.strict))
}

// loadConfig merges the configuration layers under the CLI values in cli.
func loadConfig(ctx context.Context, cmd *cobra.Command, workDir string, cli *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// openCache opens the result cache when the configuration enables it. A
// cache that cannot be opened only costs speed, so it is logged and skipped.
func openCache(logger *log.Logger, cfg *config.Config) *runner.Cache {
	if !cfg.Cache.Enabled {
		return nil
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		dir, err = runner.DefaultCacheDir()
		if err != nil {
			logger.Warn("result cache disabled", logging.FieldError, err)
			return nil
		}
	}

	cache, err := runner.OpenCache(dir)
	if err != nil {
		logger.Warn("result cache disabled", logging.FieldPath, dir, logging.FieldError, err)
		return nil
	}
	return cache
}

// applyRunFlags copies flag values into the CLI config layer. Values that
// also come from config files or the environment are only set when the
// flag was given, so defaults never shadow them.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) {
	changed := cmd.Flags().Changed

	if changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	if changed("no-parse-recovery") {
		enabled := !flags.noParseRecovery
		cfg.ParseRecovery = &enabled
	}
	if changed("cache-dir") {
		cfg.Cache.Dir = flags.cacheDir
	}
	cfg.Cache.Enabled = flags.cache
	cfg.Charset = flags.charset
	cfg.Ignore = flags.ignore
	cfg.Extensions = flags.extensions
	cfg.EnableRules = flags.enable
	cfg.DisableRules = flags.disable
	cfg.FixRules = flags.fixRules
	cfg.IncludeSuppressed = flags.includeSuppressed
}

// addRunFlags registers the flags shared by lint and suppress.
func addRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) {
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show changes without writing files")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, sarif, diff, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "id",
		"rule identifier format in output: id, name, or combined")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of files analysed in parallel (0 = auto)")
	cmd.Flags().IntVar(&cfg.DetectorJobs, "detector-jobs", 0, "number of rules run in parallel per file (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", nil,
		"file extensions to analyse (default .cpp,.cc,.cxx,.c++,.c,.h,.hh,.hpp,.hxx,.ipp,.inl)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs, names or categories to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs, names or categories to disable")
	cmd.Flags().StringVar(&flags.charset, "charset", "", "source encoding, as an IANA name (default UTF-8)")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing files")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.sniffHeaders, "sniff-headers", false,
		"also analyse extension-less files that look like C++ headers")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")
	cmd.Flags().BoolVar(&flags.noParseRecovery, "no-parse-recovery", false,
		"do not report tokens the parser had to skip")
}

// addLintFlags registers the flags only lint accepts.
func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit auto-fix to specific rules")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.perFile, "per-file", false, "output separate report for each file (table format)")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "omit the summary after the results")
	cmd.Flags().BoolVar(&flags.includeSuppressed, "include-suppressed", false,
		"also report diagnostics silenced by directive comments")
	cmd.Flags().StringVar(&flags.summaryOrder, "summary-order", "rules",
		"order of tables in summary output: rules, files, categories")
	cmd.Flags().StringVar(&flags.sortBy, "sort-by", "count",
		"order of rows in summary tables: count, alpha, severity")
	cmd.Flags().BoolVar(&flags.cache, "cache", false, "reuse results for unchanged files")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "ignore the result cache even if configured")
	cmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "result cache directory")

	// Profiling flags.
	cmd.Flags().StringVar(&flags.cpuprofile, "cpuprofile", "", "write CPU profile to file")
	cmd.Flags().StringVar(&flags.memprofile, "memprofile", "", "write memory profile to file")
	cmd.Flags().StringVar(&flags.trace, "trace", "", "write execution trace to file")
}
