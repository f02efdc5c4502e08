package rules

import (
	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// ThrowRule flags throw expressions whose operand cannot be a class type
// derived from std::exception.
type ThrowRule struct {
	lint.BaseRule
}

// NewThrowRule creates the throw-std-exception rule.
func NewThrowRule() *ThrowRule {
	return &ThrowRule{
		BaseRule: lint.NewBaseRule("A15-1-1", "throw-std-exception",
			"Only instances of types derived from std::exception should be thrown",
			catExceptions, config.SeverityError, false),
	}
}

// Apply reports throws of literals and of pointers created by new.
func (r *ThrowRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, st := range ctx.Nodes().StatementsOf(cppast.StmtThrow) {
		if !st.AttrBool(cppast.AttrThrowsValue) {
			continue
		}
		operand := ctx.Token(st.AttrInt(cppast.AttrOperandFirst, -1))
		var msg string
		switch {
		case operand.IsLiteral(), operand.IsKeyword("nullptr"), operand.IsKeyword("true"), operand.IsKeyword("false"):
			msg = "thrown literal is not derived from std::exception"
		case operand.IsKeyword("new"):
			msg = "thrown pointer; throw the exception object by value"
		default:
			continue
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), st, msg).Build())
	}
	return diags, nil
}
