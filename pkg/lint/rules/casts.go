package rules

import (
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// CastRule flags one kind of cast expression.
type CastRule struct {
	lint.BaseRule
	kind    cppast.CastKind
	message string
}

// NewDynamicCastRule creates the no-dynamic-cast rule.
func NewDynamicCastRule() *CastRule {
	return &CastRule{
		BaseRule: lint.NewBaseRule("A5-2-1", "no-dynamic-cast",
			"dynamic_cast should not be used", catExpressions, config.SeverityWarning, false),
		kind:    cppast.CastDynamic,
		message: "dynamic_cast should not be used",
	}
}

// NewCStyleCastRule creates the no-c-style-cast rule.
func NewCStyleCastRule() *CastRule {
	return &CastRule{
		BaseRule: lint.NewBaseRule("A5-2-2", "no-c-style-cast",
			"Traditional C-style casts shall not be used", catExpressions, config.SeverityError, false),
		kind:    cppast.CastCStyle,
		message: "C-style cast shall not be used",
	}
}

// NewConstCastRule creates the no-const-cast rule.
func NewConstCastRule() *CastRule {
	return &CastRule{
		BaseRule: lint.NewBaseRule("A5-2-3", "no-const-cast",
			"A cast shall not remove any const or volatile qualification from the type of a pointer or reference",
			catExpressions, config.SeverityError, false),
		kind:    cppast.CastConst,
		message: "const_cast shall not be used",
	}
}

// NewReinterpretCastRule creates the no-reinterpret-cast rule.
func NewReinterpretCastRule() *CastRule {
	return &CastRule{
		BaseRule: lint.NewBaseRule("A5-2-4", "no-reinterpret-cast",
			"reinterpret_cast shall not be used", catExpressions, config.SeverityError, false),
		kind:    cppast.CastReinterpret,
		message: "reinterpret_cast shall not be used",
	}
}

// Apply reports each cast expression of the rule's kind.
func (r *CastRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, expr := range ctx.Nodes().Expressions() {
		if expr.CastKind() != r.kind {
			continue
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), expr, r.message).Build())
	}
	return diags, nil
}
