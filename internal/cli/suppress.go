package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/autosarlint/pkg/config"
)

func newSuppressCommand(info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "suppress [paths...]",
		Short: "Silence remaining diagnostics with directive comments",
		Long: `Insert suppression comments for every diagnostic the enabled rules report.

Each offending line gets a trailing "// autosar-disable-line <rule ID>"
comment. With --next-line a "// autosar-disable-next-line <rule ID>" line is
inserted above it instead, indented like it. Lines continued with a
backslash or inside a multi-line comment or string are left alone.
Backups are written unless --no-backups is given.

Examples:
  autosarlint suppress src/                     # Suppress everything under src
  autosarlint suppress --disable Statements .   # Keep statement rules visible
  autosarlint suppress --next-line src/         # Comment above each line
  autosarlint suppress --dry-run --format diff  # Preview the inserted comments`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Suppress = true
			return runAnalysis(cmd, args, info, &cfg, flags)
		},
	}

	addRunFlags(cmd, &cfg, flags)
	cmd.Flags().BoolVar(&cfg.NextLine, "next-line", false,
		"insert autosar-disable-next-line comments above offending lines")

	return cmd
}
