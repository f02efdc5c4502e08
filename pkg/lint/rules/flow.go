package rules

import (
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

// UnreachableCodeRule flags statements that follow an unconditional jump
// in the same block.
type UnreachableCodeRule struct {
	lint.BaseRule
}

// NewUnreachableCodeRule creates the no-unreachable-code rule.
func NewUnreachableCodeRule() *UnreachableCodeRule {
	return &UnreachableCodeRule{
		BaseRule: lint.NewBaseRule("M0-1-1", "no-unreachable-code",
			"A project shall not contain unreachable code", catLanguageIndependent, config.SeverityWarning, false),
	}
}

// Apply checks every statement block of every function. A label named by
// a goto of the same function and a case label make the code after them
// reachable again.
func (r *UnreachableCodeRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	targets := make(map[*cppast.Node]map[string]bool)
	for _, st := range ctx.Nodes().StatementsOf(cppast.StmtGoto) {
		fn := lint.EnclosingFunction(st)
		if fn == nil {
			continue
		}
		if targets[fn] == nil {
			targets[fn] = make(map[string]bool)
		}
		targets[fn][st.AttrString(cppast.AttrLabel)] = true
	}

	var diags []lint.Diagnostic
	for _, blk := range ctx.Nodes().Blocks() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		switch blk.BlockKind() {
		case cppast.BlockBody, cppast.BlockCompound, cppast.BlockCatch:
		default:
			continue
		}
		labels := targets[lint.EnclosingFunction(blk)]
		diags = append(diags, r.checkBlock(blk, labels)...)
	}
	return diags, nil
}

func (r *UnreachableCodeRule) checkBlock(blk *cppast.Node, labels map[string]bool) []lint.Diagnostic {
	var diags []lint.Diagnostic
	var after string
	for child := blk.FirstChild; child != nil; child = child.Next {
		if !child.IsStatementLike() {
			continue
		}
		switch child.StmtKind() {
		case cppast.StmtEmpty:
			continue
		case cppast.StmtCase:
			after = ""
			continue
		case cppast.StmtLabel:
			if labels[child.AttrString(cppast.AttrLabel)] {
				after = ""
			}
			continue
		}
		if after != "" {
			diags = append(diags, lint.NewDiagnostic(r.ID(), child,
				fmt.Sprintf("statement is unreachable after %s", after)).Build())
			continue
		}
		switch kind := child.StmtKind(); kind {
		case cppast.StmtReturn, cppast.StmtThrow, cppast.StmtGoto, cppast.StmtBreak, cppast.StmtContinue:
			after = string(kind)
		}
	}
	return diags
}

// usage records which declarations inside one function are referenced.
// Each reference binds to the innermost declaration of its name visible at
// that point, so a use of a shadowing local never counts for the outer one.
type usage struct {
	bound map[int]bool
}

// declBinding is a local or parameter name and the token range (nameIdx, end]
// in which it is visible.
type declBinding struct {
	nameIdx int
	end     int
}

// newUsage binds the references to plain names in fn. Declarator names,
// member names, qualified names and labels are not references.
func newUsage(ctx *lint.RuleContext, fn *cppast.Node) usage {
	skip := make(map[int]bool)
	decls := make(map[string][]declBinding)
	cppast.Inspect(fn, func(n *cppast.Node) bool {
		switch {
		case n.Kind == cppast.NodeDeclaration:
			idx := n.AttrInt(cppast.AttrNameToken, -1)
			if idx < 0 {
				break
			}
			skip[idx] = true
			if n.DeclKind() == cppast.DeclVariable {
				if tok, ok := lint.NameToken(n); ok {
					decls[tok.Text] = append(decls[tok.Text], declBinding{nameIdx: idx, end: scopeEnd(n, fn)})
				}
			}
		case n.StmtKind() == cppast.StmtLabel:
			skip[n.FirstToken] = true
		case n.StmtKind() == cppast.StmtGoto:
			skip[ctx.Nodes().NextCode(n.FirstToken)] = true
		}
		return true
	})

	u := usage{bound: make(map[int]bool)}
	nodes := ctx.Nodes()
	for idx := fn.FirstToken; idx <= fn.LastToken && idx < len(ctx.File.Tokens); idx++ {
		tok := ctx.Token(idx)
		if tok.Kind != cppast.TokIdentifier || skip[idx] {
			continue
		}
		if prev := nodes.PrevCode(idx); prev >= 0 && isMemberAccess(ctx.Token(prev)) {
			continue
		}
		if target, ok := innermost(decls[tok.Text], idx); ok {
			u.bound[target] = true
		}
	}
	return u
}

// innermost returns the name token of the latest declaration in scope at
// token idx. Scopes nest, so the latest visible declaration is the
// innermost one.
func innermost(candidates []declBinding, idx int) (int, bool) {
	best := -1
	for _, c := range candidates {
		if c.nameIdx < idx && idx <= c.end && c.nameIdx > best {
			best = c.nameIdx
		}
	}
	return best, best >= 0
}

// used reports whether the declaration named by token nameIdx is referenced.
func (u usage) used(nameIdx int) bool {
	return u.bound[nameIdx]
}

// UnusedVariableRule flags local variables that are never referenced.
type UnusedVariableRule struct {
	lint.BaseRule
}

// NewUnusedVariableRule creates the no-unused-variable rule.
func NewUnusedVariableRule() *UnusedVariableRule {
	return &UnusedVariableRule{
		BaseRule: lint.NewBaseRule("M0-1-3", "no-unused-variable",
			"A project shall not contain unused variables", catLanguageIndependent, config.SeverityInfo, false),
	}
}

// Apply reports locals with no reference between their declarator and the
// end of their scope. Catch parameters, [[maybe_unused]] locals and
// structured bindings, which have no single name token, are exempt.
func (r *UnusedVariableRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, fn := range ctx.Nodes().Functions() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		if lint.FunctionBody(fn) == nil {
			continue
		}
		var u *usage
		cppast.Inspect(fn, func(n *cppast.Node) bool {
			if n.Kind == cppast.NodeFunctionDef && n != fn {
				return false
			}
			if n.Kind == cppast.NodeClassDef {
				return false
			}
			if !isLocalVariable(n) {
				return true
			}
			tok, ok := lint.NameToken(n)
			if !ok {
				return true
			}
			if u == nil {
				built := newUsage(ctx, fn)
				u = &built
			}
			if !u.used(n.AttrInt(cppast.AttrNameToken, -1)) {
				diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
					fmt.Sprintf("local variable '%s' is never used", tok.Text)).Build())
			}
			return true
		})
	}
	return diags, nil
}

func isLocalVariable(n *cppast.Node) bool {
	return n.Kind == cppast.NodeDeclaration &&
		n.DeclKind() == cppast.DeclVariable &&
		!n.AttrBool(cppast.AttrParameter) &&
		!n.AttrBool(cppast.AttrMaybeUnused)
}

// scopeEnd returns the last token index where a local declared by decl is
// visible.
func scopeEnd(decl, fn *cppast.Node) int {
	p := decl.Parent
	if p == nil {
		return fn.LastToken
	}
	if p.StmtKind() == cppast.StmtDecl && p.Parent != nil {
		return p.Parent.LastToken
	}
	return p.LastToken
}

// UnusedParameterRule flags named parameters of function definitions that
// are never referenced.
type UnusedParameterRule struct {
	lint.BaseRule
}

// NewUnusedParameterRule creates the no-unused-parameter rule.
func NewUnusedParameterRule() *UnusedParameterRule {
	return &UnusedParameterRule{
		BaseRule: lint.NewBaseRule("A0-1-4", "no-unused-parameter",
			"There shall be no unused named parameters in non-virtual functions",
			catLanguageIndependent, config.SeverityInfo, false),
	}
}

// Apply checks non-virtual function definitions. Unnamed and
// [[maybe_unused]] parameters are exempt.
func (r *UnusedParameterRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, fn := range ctx.Nodes().Functions() {
		if ctx.Cancelled() {
			return diags, errCancelled(ctx)
		}
		if lint.FunctionBody(fn) == nil || lint.IsVirtualFunction(fn) {
			continue
		}
		params := lint.Parameters(fn)
		if len(params) == 0 {
			continue
		}
		u := newUsage(ctx, fn)
		for _, p := range params {
			if p.AttrBool(cppast.AttrMaybeUnused) {
				continue
			}
			tok, ok := lint.NameToken(p)
			if !ok {
				continue
			}
			if !u.used(p.AttrInt(cppast.AttrNameToken, -1)) {
				diags = append(diags, lint.NewTokenDiagnostic(r.ID(), ctx.File, tok,
					fmt.Sprintf("parameter '%s' is never used", tok.Text)).Build())
			}
		}
	}
	return diags, nil
}
