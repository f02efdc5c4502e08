package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/autosarlint/internal/logging"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/runner"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the result cache",
		Long: `The result cache stores diagnostics for files that have not changed since
the last run. Entries are keyed by file content and the rule configuration,
so stale entries are never served; clearing only reclaims disk space.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every cached result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := cacheDir(cmd)
			if err != nil {
				return err
			}
			cache, err := runner.OpenCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			if err := cache.Clear(); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			logging.NewInteractive().Info("cache cleared", logging.FieldPath, dir)
			return nil
		},
	})

	return cmd
}

// cacheDir resolves the cache directory the lint command would use.
func cacheDir(cmd *cobra.Command) (string, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	cfg, err := loadConfig(logging.WithLogger(ctx, logging.Default()), cmd, workDir, &config.Config{})
	if err != nil {
		return "", err
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}

	dir, err := runner.DefaultCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache directory: %w", err)
	}
	return dir, nil
}
