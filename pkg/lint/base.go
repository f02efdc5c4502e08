package lint

import "github.com/yaklabco/autosarlint/pkg/config"

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override Apply.
//
// Fields are unexported to avoid name collisions with interface methods.
type BaseRule struct {
	id       string
	name     string
	desc     string
	category string
	severity config.Severity
	disabled bool
	fixable  bool
}

// NewBaseRule creates an enabled BaseRule.
func NewBaseRule(id, name, desc, category string, severity config.Severity, fixable bool) BaseRule {
	return BaseRule{
		id:       id,
		name:     name,
		desc:     desc,
		category: category,
		severity: severity,
		fixable:  fixable,
	}
}

// Disabled returns a copy of r that is off unless configured on.
func (r BaseRule) Disabled() BaseRule {
	r.disabled = true
	return r
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the kebab-case name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns the rule summary.
func (r *BaseRule) Description() string {
	return r.desc
}

// Category returns the AUTOSAR chapter name.
func (r *BaseRule) Category() string {
	return r.category
}

// DefaultEnabled returns whether the rule is enabled by default.
func (r *BaseRule) DefaultEnabled() bool {
	return !r.disabled
}

// DefaultSeverity returns the default severity for this rule.
func (r *BaseRule) DefaultSeverity() config.Severity {
	if r.severity == "" {
		return config.SeverityWarning
	}
	return r.severity
}

// CanFix returns whether this rule can auto-fix issues.
func (r *BaseRule) CanFix() bool {
	return r.fixable
}

// Apply must be overridden by concrete rule implementations.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}
