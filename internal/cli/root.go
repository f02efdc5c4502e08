// Package cli provides the Cobra command structure for autosarlint.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/autosarlint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root autosarlint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var verbose bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "autosarlint",
		Short: "A static checker for AUTOSAR C++14 coding guidelines",
		Long: `autosarlint checks C++ sources against a catalog of AUTOSAR C++14 rules.

It tokenizes and shallowly parses each translation unit without a compiler,
runs every enabled rule over it and reports diagnostics with source context.
Many findings can be fixed in place, and the rest can be silenced with
"// autosar-disable-line <rule ID>" comments or disable/enable regions.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			switch {
			case debug:
				logging.SetLevel("debug")
			case verbose:
				logging.SetLevel("info")
			default:
				logging.SetLevel("warn")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log run progress and statistics")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	lintCmd := newLintCommand(info)
	suppressCmd := newSuppressCommand(info)
	annotate(rootCmd, annotationEnvironment)
	annotate(lintCmd, annotationEnvironment, annotationExitCodes)
	annotate(suppressCmd, annotationExitCodes)

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(suppressCmd)
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
