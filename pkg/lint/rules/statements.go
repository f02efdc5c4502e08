package rules

import (
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// GotoRule flags goto statements.
type GotoRule struct {
	lint.BaseRule
}

// NewGotoRule creates the no-goto rule.
func NewGotoRule() *GotoRule {
	return &GotoRule{
		BaseRule: lint.NewBaseRule("A6-6-1", "no-goto",
			"The goto statement shall not be used", catStatements, config.SeverityError, false),
	}
}

// Apply reports every goto statement.
func (r *GotoRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, st := range ctx.Nodes().StatementsOf(cppast.StmtGoto) {
		msg := "goto statement shall not be used"
		if label := st.AttrString(cppast.AttrLabel); label != "" {
			msg = fmt.Sprintf("goto %s: goto statement shall not be used", label)
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), st, msg).Build())
	}
	return diags, nil
}

// DoWhileRule flags do statements.
type DoWhileRule struct {
	lint.BaseRule
}

// NewDoWhileRule creates the no-do-while rule.
func NewDoWhileRule() *DoWhileRule {
	return &DoWhileRule{
		BaseRule: lint.NewBaseRule("A6-5-3", "no-do-while",
			"Do statements should not be used", catStatements, config.SeverityInfo, false),
	}
}

// Apply reports the do keyword of every do statement.
func (r *DoWhileRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, st := range ctx.Nodes().StatementsOf(cppast.StmtDo) {
		diags = append(diags, keywordDiagnostic(ctx, r.ID(), st, "do statement should not be used"))
	}
	return diags, nil
}

// LoopBodyRule flags iteration and switch statements whose body is not a
// compound statement.
type LoopBodyRule struct {
	lint.BaseRule
}

// NewLoopBodyRule creates the loop-body-compound rule.
func NewLoopBodyRule() *LoopBodyRule {
	return &LoopBodyRule{
		BaseRule: lint.NewBaseRule("M6-3-1", "loop-body-compound",
			"The statement forming the body of a switch, while, do ... while or for statement shall be a compound statement",
			catStatements, config.SeverityWarning, false),
	}
}

// Apply checks the body role of for, while, do and switch statements.
func (r *LoopBodyRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, st := range ctx.Nodes().Statements() {
		switch st.StmtKind() {
		case cppast.StmtFor, cppast.StmtWhile, cppast.StmtDo, cppast.StmtSwitch:
		default:
			continue
		}
		body := st.ChildByRole(cppast.RoleBody)
		if body == nil || st.AttrBool(cppast.AttrCompound) {
			continue
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), body,
			fmt.Sprintf("body of '%s' statement is not a compound statement", keywordToken(ctx, st).Text)).
			Build())
	}
	return diags, nil
}

// IfBodyRule flags if and else branches that are not compound statements.
type IfBodyRule struct {
	lint.BaseRule
}

// NewIfBodyRule creates the if-body-compound rule.
func NewIfBodyRule() *IfBodyRule {
	return &IfBodyRule{
		BaseRule: lint.NewBaseRule("M6-4-1", "if-body-compound",
			"An if ( condition ) construct shall be followed by a compound statement. The else keyword shall be followed by either a compound statement, or another if statement",
			catStatements, config.SeverityWarning, false),
	}
}

// Apply checks both branches of every if statement.
func (r *IfBodyRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, st := range ctx.Nodes().StatementsOf(cppast.StmtIf) {
		if then := st.ChildByRole(cppast.RoleThen); then != nil && !st.AttrBool(cppast.AttrCompound) {
			diags = append(diags, lint.NewDiagnostic(r.ID(), then,
				"if branch is not a compound statement").Build())
		}
		els := st.ChildByRole(cppast.RoleElse)
		if els == nil || st.AttrBool(cppast.AttrElseCompnd) || st.AttrBool(cppast.AttrElseIf) {
			continue
		}
		diags = append(diags, lint.NewDiagnostic(r.ID(), els,
			"else branch is neither a compound statement nor an if statement").Build())
	}
	return diags, nil
}

// FinalElseRule flags if ... else if chains without a terminating else.
type FinalElseRule struct {
	lint.BaseRule
}

// NewFinalElseRule creates the final-else rule.
func NewFinalElseRule() *FinalElseRule {
	return &FinalElseRule{
		BaseRule: lint.NewBaseRule("M6-4-2", "final-else",
			"All if ... else if constructs shall be terminated with an else clause",
			catStatements, config.SeverityWarning, false),
	}
}

// Apply walks each chain from its head and reports the last if.
func (r *FinalElseRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, st := range ctx.Nodes().StatementsOf(cppast.StmtIf) {
		if !st.AttrBool(cppast.AttrElseIf) || isElseBranch(st) {
			continue
		}
		last := st
		for last.AttrBool(cppast.AttrElseIf) {
			last = last.ChildByRole(cppast.RoleElse)
		}
		if last.AttrBool(cppast.AttrHasElse) {
			continue
		}
		diags = append(diags, keywordDiagnostic(ctx, r.ID(), last,
			"if ... else if chain is not terminated with an else clause"))
	}
	return diags, nil
}

func isElseBranch(st *cppast.Node) bool {
	return st.AttrString(cppast.AttrRole) == cppast.RoleElse && st.Parent.StmtKind() == cppast.StmtIf
}
