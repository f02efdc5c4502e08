package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all rules with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml", "json" or "toml".
	Format string

	// IncludeRules is a list of rule IDs to include.
	// If empty, all rules are included.
	IncludeRules []string
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	ID          string
	Name        string
	Category    string
	Description string
	Enabled     bool
	Severity    Severity
	CanFix      bool
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "json":
		return templateToJSON(opts)
	case "toml":
		return templateToTOML(opts), nil
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	return []byte(DefaultTemplateHeader() + `

# Severity applied to rules without their own: error, warning or info.
# Leave unset to keep each rule's default.
# severity_default: warning

# File extensions to analyse.
# extensions: [".cpp", ".cc", ".cxx", ".h", ".hpp"]

# Source encoding (IANA name). Defaults to UTF-8.
# charset: ISO-8859-1

# Report unrecognised tokens as parse-recovery diagnostics.
# parse_recovery: true

# File patterns to ignore (doublestar globs)
# ignore:
#   - "third_party/**"
#   - "build/**"

# Rule-specific configuration, keyed by ID or name
# rules:
#   A3-9-1:
#     enabled: true
#   A5-0-3:
#     severity: error
#     options:
#       max_depth: 2
#   no-typedef:
#     enabled: false
`)
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every rule with its default settings.

# Severity applied to rules without their own: error, warning or info.
# severity_default: warning

extensions: [".cpp", ".cc", ".cxx", ".c++", ".c", ".h", ".hh", ".hpp", ".hxx", ".ipp", ".inl"]

# Source encoding (IANA name). Empty means UTF-8.
charset: ""

parse_recovery: true

# Detectors run concurrently per file (0 = auto)
detector_jobs: 0

backups:
  enabled: true
  mode: sidecar

cache:
  enabled: false

ignore:
  - "build/**"
  - "third_party/**"

rules:
`)

	for _, rule := range selectRules(opts) {
		fmt.Fprintf(&buf, "\n  # %s: %s (%s)\n", rule.ID, rule.Name, rule.Category)
		if rule.Description != "" {
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		}
		if rule.CanFix {
			buf.WriteString("  # Auto-fix: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.ID)
		fmt.Fprintf(&buf, "    enabled: %t\n", rule.Enabled)
		fmt.Fprintf(&buf, "    severity: %s\n", rule.Severity)
	}

	return buf.Bytes()
}

func selectRules(opts TemplateOptions) []RuleInfo {
	rules := getRuleInfos()

	if len(opts.IncludeRules) > 0 {
		includeSet := make(map[string]bool, len(opts.IncludeRules))
		for _, id := range opts.IncludeRules {
			includeSet[id] = true
		}
		filtered := make([]RuleInfo, 0, len(rules))
		for _, r := range rules {
			if includeSet[r.ID] {
				filtered = append(filtered, r)
			}
		}
		rules = filtered
	}

	sort.Slice(rules, func(i, j int) bool {
		return rules[i].ID < rules[j].ID
	})
	return rules
}

// getRuleInfos returns information about all registered rules.
func getRuleInfos() []RuleInfo {
	if DefaultRuleInfoProvider != nil {
		return DefaultRuleInfoProvider()
	}

	// Fallback when no catalog is linked in.
	return []RuleInfo{
		{ID: "A5-2-2", Name: "no-c-style-cast", Category: "Expressions", Enabled: true, Severity: SeverityError},
		{ID: "A6-6-1", Name: "no-goto", Category: "Statements", Enabled: true, Severity: SeverityError},
		{ID: "A18-1-1", Name: "no-c-array", Category: "Language Support Library", Enabled: true, Severity: SeverityWarning},
	}
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

func templateRuleMap(opts TemplateOptions) map[string]RuleConfig {
	if !opts.Full {
		return map[string]RuleConfig{}
	}
	out := make(map[string]RuleConfig)
	for _, r := range selectRules(opts) {
		enabled := r.Enabled
		severity := string(r.Severity)
		out[r.ID] = RuleConfig{Enabled: &enabled, Severity: &severity}
	}
	return out
}

// templateToJSON renders the template as JSON. Comments are dropped.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := NewConfig()
	cfg.Ignore = []string{"build/**", "third_party/**"}
	cfg.Rules = templateRuleMap(opts)

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// templateToTOML renders the template as TOML.
func templateToTOML(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\n")
	buf.WriteString(`extensions = [".cpp", ".cc", ".cxx", ".c++", ".c", ".h", ".hh", ".hpp", ".hxx", ".ipp", ".inl"]` + "\n")
	buf.WriteString(`ignore = ["build/**", "third_party/**"]` + "\n")
	buf.WriteString("parse_recovery = true\n\n[backups]\nenabled = true\nmode = \"sidecar\"\n")

	for id, rc := range sortedRules(templateRuleMap(opts)) {
		fmt.Fprintf(&buf, "\n[rules.%q]\nenabled = %t\nseverity = %q\n", id, *rc.Enabled, *rc.Severity)
	}
	return buf.Bytes()
}

// sortedRules yields rule configs in ID order.
func sortedRules(rules map[string]RuleConfig) func(yield func(string, RuleConfig) bool) {
	return func(yield func(string, RuleConfig) bool) {
		ids := make([]string, 0, len(rules))
		for id := range rules {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			if !yield(id, rules[id]) {
				return
			}
		}
	}
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# autosarlint configuration
# Rule keys accept either the AUTOSAR ID (A5-2-1) or the rule name (no-dynamic-cast).`
}
