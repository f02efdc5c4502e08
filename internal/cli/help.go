package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/autosarlint/internal/configloader"
	"github.com/yaklabco/autosarlint/internal/ui/pretty"
)

// Annotation keys select the extra sections a command's help shows.
const (
	annotationEnvironment = "autosarlint/environment"
	annotationExitCodes   = "autosarlint/exit-codes"
)

// exitCodeHelp documents the codes ExitCodeFromError produces.
var exitCodeHelp = []struct {
	code int
	text string
}{
	{ExitSuccess, "no error diagnostics (and no warnings with --strict)"},
	{ExitLintErrors, "error diagnostics remain"},
	{ExitLintWarnings, "warnings remain and --strict is set"},
	{ExitInvalidUsage, "invalid flags or arguments"},
	{ExitConfigError, "invalid configuration file, environment or rule key"},
	{ExitInternalError, "unexpected internal failure"},
	{ExitIOError, "some files could not be read, decoded or written"},
}

// HelpFormatter renders Cobra help with the same palette as lint output.
type HelpFormatter struct {
	styles   *pretty.Styles
	heading  lipgloss.Style
	command  lipgloss.Style
	flagName lipgloss.Style
}

// NewHelpFormatter creates a new help formatter with the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	colorEnabled := pretty.IsColorEnabled(colorMode, writer)
	styles := pretty.NewStyles(colorEnabled)

	h := &HelpFormatter{
		styles:   styles,
		heading:  styles.Bold,
		command:  styles.Bold,
		flagName: styles.RuleID,
	}
	if colorEnabled {
		h.heading = styles.Warning
		h.command = styles.FilePath.Foreground(lipgloss.Color("14"))
		h.flagName = styles.Info.UnsetBold()
	}
	return h
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.command.Render,
		"styleHeading":            h.heading.Render,
		"styleSubcommand":         h.styles.Success.UnsetBold().Render,
		"styleDim":                h.styles.Dim.Render,
		"styleFlagsUsage":         h.styleFlagsUsage,
		"extraSections":           h.extraSections,
		"join":                    strings.Join,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

const usageTemplate = `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ styleHeading "Aliases:" }}
  {{ styleDim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleDim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}{{ extraSections . }}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ styleCommand .CommandPath }}{{if .Version}} {{ styleDim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// extraSections renders the environment and exit-code sections requested
// through annotations.
func (h *HelpFormatter) extraSections(cmd *cobra.Command) string {
	var blocks []string

	if _, ok := cmd.Annotations[annotationEnvironment]; ok {
		vars := configloader.ListEnvVars()
		names := make([]string, 0, len(vars))
		width := 0
		for name := range vars {
			names = append(names, name)
			width = max(width, len(name))
		}
		slices.Sort(names)

		lines := []string{h.heading.Render("Environment:")}
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("  %s   %s", h.flagName.Render(rpad(name, width)), vars[name]))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	if _, ok := cmd.Annotations[annotationExitCodes]; ok {
		lines := []string{h.heading.Render("Exit Codes:")}
		for _, e := range exitCodeHelp {
			lines = append(lines, fmt.Sprintf("  %s   %s", h.flagName.Render(fmt.Sprintf("%3d", e.code)), e.text))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	if len(blocks) == 0 {
		return ""
	}
	return "\n\n" + strings.Join(blocks, "\n\n")
}

// styleFlagsUsage colors the flag names in pflag's usage listing, keeping
// its column layout.
func (h *HelpFormatter) styleFlagsUsage(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles "  -f, --flag type   description".
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	flagPart, desc, ok := strings.Cut(trimmed, "   ")
	if !ok {
		return line
	}
	gap := len(desc)
	desc = strings.TrimLeft(desc, " ")
	gap -= len(desc)

	var sb strings.Builder
	for i, token := range strings.Fields(flagPart) {
		if i > 0 {
			sb.WriteString(" ")
		}
		if name, comma := strings.CutSuffix(token, ","); strings.HasPrefix(token, "-") {
			sb.WriteString(h.flagName.Render(name))
			if comma {
				sb.WriteString(",")
			}
			continue
		}
		sb.WriteString(h.styles.Dim.Render(token))
	}

	return indent + sb.String() + strings.Repeat(" ", gap+3) + desc
}

// ApplyToCommand installs the styled help on cmd; subcommands inherit it.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(helpTemplate)
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// annotate marks cmd to show the given extra help sections.
func annotate(cmd *cobra.Command, keys ...string) {
	if cmd.Annotations == nil {
		cmd.Annotations = make(map[string]string)
	}
	for _, key := range keys {
		cmd.Annotations[key] = ""
	}
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
