package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/autosarlint/internal/configloader"
	"github.com/yaklabco/autosarlint/internal/ui/pretty"
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
	category   string
	fixable    bool
}

const (
	formatJSON    = "json"
	severityWidth = len("warning")
)

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Long: `List the rule catalog grouped by category, with each rule's ID, name,
default severity, whether it is on by default and whether it can fix what
it reports.

Examples:
  autosarlint rules                          # Every rule
  autosarlint rules --category Statements    # One category
  autosarlint rules --fixable --format json  # Fixable rules as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			descs, err := selectRules(lint.DefaultRegistry, flags)
			if err != nil {
				return err
			}

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), descs)
			case "", "text":
				colorMode, err := cmd.Flags().GetString("color")
				if err != nil {
					colorMode = "auto"
				}
				out := cmd.OutOrStdout()
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
				return outputRulesText(out, styles, descs, config.RuleFormat(flags.ruleFormat))
			default:
				return &UsageError{Err: fmt.Errorf("invalid format %q: must be text or json", flags.format)}
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "id",
		"rule identifier format in output: id, name, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")
	cmd.Flags().StringVar(&flags.category, "category", "", "only list rules in this category")
	cmd.Flags().BoolVar(&flags.fixable, "fixable", false, "only list rules that can fix what they report")

	return cmd
}

// selectRules returns the descriptors matching flags, ordered by category
// then ID.
func selectRules(registry *lint.Registry, flags *rulesFlags) ([]lint.RuleDescriptor, error) {
	var inCategory []string
	if flags.category != "" {
		inCategory = configloader.CategoryRules(registry, flags.category)
		if inCategory == nil {
			return nil, &UsageError{Err: fmt.Errorf("unknown category %q (known: %s)",
				flags.category, strings.Join(configloader.Categories(registry), ", "))}
		}
	}

	var descs []lint.RuleDescriptor
	for _, d := range registry.Descriptors() {
		if inCategory != nil && !slices.Contains(inCategory, d.ID) {
			continue
		}
		if flags.fixable && !d.Fixable {
			continue
		}
		descs = append(descs, d)
	}

	slices.SortStableFunc(descs, func(a, b lint.RuleDescriptor) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return descs, nil
}

// outputRulesText prints one block per category.
func outputRulesText(w io.Writer, styles *pretty.Styles, descs []lint.RuleDescriptor, ruleFormat config.RuleFormat) error {
	if len(descs) == 0 {
		_, err := fmt.Fprintln(w, "No rules match.")
		return err
	}

	width := 0
	for _, d := range descs {
		width = max(width, len(config.FormatRuleID(ruleFormat, d.ID, d.Name)))
	}

	var sb strings.Builder
	for i, d := range descs {
		if i == 0 || d.Category != descs[i-1].Category {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(styles.Bold.Render(d.Category) + "\n")
		}

		ident := config.FormatRuleID(ruleFormat, d.ID, d.Name)
		flagsCol := " "
		if d.Fixable {
			flagsCol = styles.TableFixable.Render("+")
		}
		if !d.DefaultEnabled {
			flagsCol += styles.Dim.Render(" off")
		}

		severity := styles.FormatSeverity(d.DefaultSeverity) +
			strings.Repeat(" ", max(0, severityWidth-len(d.DefaultSeverity)))
		fmt.Fprintf(&sb, "  %s  %s %s  %s\n",
			styles.RuleID.Render(fmt.Sprintf("%-*s", width, ident)),
			severity,
			d.Summary,
			flagsCol,
		)
	}
	fmt.Fprintf(&sb, "\n%d rules (+ = fixable, off = disabled by default)\n", len(descs))

	_, err := io.WriteString(w, sb.String())
	return err
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(w io.Writer, descs []lint.RuleDescriptor) error {
	if descs == nil {
		descs = []lint.RuleDescriptor{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(descs); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
