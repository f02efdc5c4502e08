package rules

import (
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// Pack describes a named group of rule defaults for a particular use case.
// Packs are configuration fragments that can be used as starting points
// for .autosarlint.yml files.
type Pack struct {
	// Name is the short identifier for the pack (e.g., "required", "strict").
	Name string

	// Description explains the purpose and characteristics of the pack.
	Description string

	// Rules contains rule configurations keyed by rule ID.
	Rules map[string]config.RuleConfig
}

// catalog returns the descriptors of the built-in rules.
func catalog() []lint.RuleDescriptor {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	return registry.Descriptors()
}

// RequiredPack enables every rule that is on by default at its default
// severity.
func RequiredPack() Pack {
	rules := make(map[string]config.RuleConfig)
	for _, d := range catalog() {
		if d.DefaultEnabled {
			rules[d.ID] = enabled(d.DefaultSeverity)
		}
	}
	return Pack{
		Name:        "required",
		Description: "Every default rule at its catalog severity",
		Rules:       rules,
	}
}

// StrictPack enables every rule, including the ones off by default, as an
// error.
func StrictPack() Pack {
	rules := make(map[string]config.RuleConfig)
	for _, d := range catalog() {
		rules[d.ID] = enabled(config.SeverityError)
	}
	return Pack{
		Name:        "strict",
		Description: "Strict pack: every rule as an error, fixed-width integers included",
		Rules:       rules,
	}
}

// RelaxedPack keeps the rules that catch likely defects and lexical traps
// and disables the stylistic ones. Suitable for legacy codebases.
func RelaxedPack() Pack {
	rules := make(map[string]config.RuleConfig)
	for _, d := range catalog() {
		rules[d.ID] = disabled()
	}
	for id, sev := range map[string]config.Severity{
		"A2-5-1":  config.SeverityWarning, // no-trigraphs
		"A2-7-1":  config.SeverityWarning, // no-comment-line-continuation
		"M2-7-1":  config.SeverityWarning, // no-nested-comment-open
		"A2-13-1": config.SeverityError,   // valid-escape-sequences
		"A4-10-1": config.SeverityWarning, // nullptr-only
		"A6-6-1":  config.SeverityWarning, // no-goto
		"A5-2-2":  config.SeverityWarning, // no-c-style-cast
		"A5-2-4":  config.SeverityWarning, // no-reinterpret-cast
		"M0-1-1":  config.SeverityWarning, // no-unreachable-code
		"A17-0-1": config.SeverityError,   // no-reserved-identifiers
	} {
		rules[id] = enabled(sev)
	}
	return Pack{
		Name:        "relaxed",
		Description: "Relaxed pack: defect-prone constructs only, minimal noise",
		Rules:       rules,
	}
}

// Packs returns all built-in rule packs.
func Packs() []Pack {
	return []Pack{
		RequiredPack(),
		StrictPack(),
		RelaxedPack(),
	}
}

// PackByName returns a pack by name, or nil if not found.
func PackByName(name string) *Pack {
	for _, p := range Packs() {
		if p.Name == name {
			return &p
		}
	}
	return nil
}

// PackNames returns the names of all available packs.
func PackNames() []string {
	packs := Packs()
	names := make([]string, len(packs))
	for i, p := range packs {
		names[i] = p.Name
	}
	return names
}

// enabled creates a RuleConfig with the rule enabled and the given severity.
func enabled(sev config.Severity) config.RuleConfig {
	on := true
	s := string(sev)
	return config.RuleConfig{
		Enabled:  &on,
		Severity: &s,
	}
}

func disabled() config.RuleConfig {
	off := false
	return config.RuleConfig{Enabled: &off}
}
