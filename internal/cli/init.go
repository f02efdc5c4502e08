package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/yaklabco/autosarlint/internal/logging"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
	pack   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new autosarlint configuration file",
		Long: `Create a new .autosarlint.yml configuration file in the current directory
with sensible defaults. The file can be customized to enable/disable rules,
change severities, and configure other options.

Examples:
  autosarlint init                      Create minimal .autosarlint.yml
  autosarlint init --full               Create full config with all rules documented
  autosarlint init --pack strict        Start from the strict rule pack
  autosarlint init --format toml        Create .autosarlint.toml instead
  autosarlint init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all rules documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml, json or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"Output file path (default: .autosarlint.yml, .autosarlint.json or .autosarlint.toml)")
	cmd.Flags().StringVar(&flags.pack, "pack", "",
		"Start from a rule pack: "+strings.Join(rules.PackNames(), ", "))

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	var ext string
	switch flags.format {
	case "yaml":
		ext = ".yml"
	case "json", "toml":
		ext = "." + flags.format
	default:
		return &UsageError{Err: fmt.Errorf("invalid format %q: must be yaml, json or toml", flags.format)}
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".autosarlint" + ext
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	var content []byte
	if flags.pack != "" {
		pack := rules.PackByName(flags.pack)
		if pack == nil {
			return &UsageError{Err: fmt.Errorf("unknown pack %q (known: %s)",
				flags.pack, strings.Join(rules.PackNames(), ", "))}
		}
		content, err = renderPack(pack, flags.format)
	} else {
		content, err = config.GenerateTemplate(config.TemplateOptions{
			Full:   flags.full,
			Format: flags.format,
		})
	}
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	switch {
	case flags.pack != "":
		logger.Info("rules configured from pack", logging.FieldName, flags.pack)
	case flags.full:
		logger.Info("full template includes all rules with documentation")
	}
	logger.Info("run 'autosarlint rules' to see all available rules")

	return nil
}

// renderPack writes a configuration holding the rule settings of pack.
func renderPack(pack *rules.Pack, format string) ([]byte, error) {
	cfg := config.NewConfig()
	cfg.Rules = pack.Rules

	header := config.DefaultTemplateHeader() + "\n# Pack " + pack.Name + ": " + pack.Description

	switch format {
	case "json":
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal JSON: %w", err)
		}
		return append(out, '\n'), nil
	case "toml":
		var buf bytes.Buffer
		buf.WriteString(header + "\n\n")
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("encode TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return cfg.ToYAMLWithHeader(header)
	}
}
