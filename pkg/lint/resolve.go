package lint

import (
	"fmt"
	"slices"

	"github.com/yaklabco/autosarlint/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// AutoFix indicates whether auto-fix is enabled for this rule.
	AutoFix bool

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules, sorted by ID.
//
// Precedence, lowest first: rule defaults, severity_default, the rules
// section (keyed by ID or name), then the CLI enable/disable lists.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}

	if cfg == nil {
		rr.AutoFix = false
		return rr
	}

	if sev := config.Severity(cfg.SeverityDefault); sev.IsValid() {
		rr.Severity = sev
	}

	if ruleCfg, ok := lookupRuleConfig(cfg.Rules, rule); ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			if sev := config.Severity(*ruleCfg.Severity); sev.IsValid() {
				rr.Severity = sev
			}
		}
		if ruleCfg.AutoFix != nil {
			rr.AutoFix = *ruleCfg.AutoFix && rule.CanFix()
		}
	}

	if matchesRule(cfg.EnableRules, rule) {
		rr.Enabled = true
	}
	if matchesRule(cfg.DisableRules, rule) {
		rr.Enabled = false
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && matchesRule(cfg.FixRules, rule)
	}

	if !cfg.Fix {
		rr.AutoFix = false
	}

	return rr
}

// lookupRuleConfig finds the rule's entry by ID, falling back to its name.
func lookupRuleConfig(rules map[string]config.RuleConfig, rule Rule) (config.RuleConfig, bool) {
	if rc, ok := rules[rule.ID()]; ok {
		return rc, true
	}
	rc, ok := rules[rule.Name()]
	return rc, ok
}

func matchesRule(keys []string, rule Rule) bool {
	return slices.Contains(keys, rule.ID()) || slices.Contains(keys, rule.Name())
}

// Fingerprint returns a stable description of the resolved rule set, used to
// key cached results. Two configurations with the same fingerprint produce
// the same diagnostics for the same content.
func Fingerprint(resolved []ResolvedRule, cfg *config.Config) string {
	var buf []byte
	for _, rr := range resolved {
		buf = append(buf, rr.Rule.ID()...)
		buf = append(buf, ':')
		buf = append(buf, rr.Severity...)
		if rr.Config != nil && len(rr.Config.Options) > 0 {
			buf = appendOptions(buf, rr.Config.Options)
		}
		buf = append(buf, ';')
	}
	if cfg.ParseRecoveryEnabled() {
		buf = append(buf, ParseRecoveryRuleID...)
	}
	return string(buf)
}

func appendOptions(buf []byte, opts map[string]any) []byte {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		buf = fmt.Appendf(buf, "{%s=%v}", k, opts[k])
	}
	return buf
}
