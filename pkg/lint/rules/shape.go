package rules

import (
	"fmt"

	"github.com/yaklabco/autosarlint/pkg/config"
	"github.com/yaklabco/autosarlint/pkg/cppast"
	"github.com/yaklabco/autosarlint/pkg/lint"
)

const defaultMaxPointerDepth = 2

// PointerDepthRule limits the number of pointer indirections in a
// declarator.
type PointerDepthRule struct {
	lint.BaseRule
}

// NewPointerDepthRule creates the pointer-depth rule.
func NewPointerDepthRule() *PointerDepthRule {
	return &PointerDepthRule{
		BaseRule: lint.NewBaseRule("A5-0-3", "pointer-depth",
			"The declaration of objects shall contain no more than two levels of pointer indirection",
			catExpressions, config.SeverityWarning, false),
	}
}

// Apply reports declarations and function return types deeper than the
// max_depth option.
func (r *PointerDepthRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	limit := ctx.OptionInt("max_depth", defaultMaxPointerDepth)
	nodes := ctx.Nodes()

	var diags []lint.Diagnostic
	check := func(n *cppast.Node) {
		depth := n.AttrInt(cppast.AttrPointerDepth, 0)
		if depth <= limit {
			return
		}
		name := n.AttrString(cppast.AttrName)
		diags = append(diags, nameDiagnostic(ctx, r.ID(), n,
			fmt.Sprintf("'%s' has %d levels of pointer indirection; at most %d allowed", name, depth, limit)))
	}
	for _, decl := range nodes.Declarations() {
		check(decl)
	}
	for _, fn := range nodes.Functions() {
		check(fn)
	}
	return diags, nil
}

// ShadowingRule flags local names that hide a name of an enclosing scope.
type ShadowingRule struct {
	lint.BaseRule
}

// NewShadowingRule creates the no-shadowing rule.
func NewShadowingRule() *ShadowingRule {
	return &ShadowingRule{
		BaseRule: lint.NewBaseRule("A2-10-1", "no-shadowing",
			"An identifier declared in an inner scope shall not hide an identifier declared in an outer scope",
			catLexical, config.SeverityWarning, false),
	}
}

// binding is one declared name visible in a scope.
type binding struct {
	what string
	line int
}

type scope map[string]binding

// shadowWalker tracks the scopes of one function body.
type shadowWalker struct {
	ctx     *lint.RuleContext
	ruleID  string
	globals scope
	diags   []lint.Diagnostic
}

// Apply walks every function body with a scope stack seeded by the
// parameters.
func (r *ShadowingRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	nodes := ctx.Nodes()
	w := &shadowWalker{ctx: ctx, ruleID: r.ID(), globals: scope{}}
	for _, decl := range nodes.Declarations() {
		if decl.DeclKind() == cppast.DeclVariable && isFileScope(decl) {
			w.bind(w.globals, decl, "file-scope variable")
		}
	}

	for _, fn := range nodes.Functions() {
		if ctx.Cancelled() {
			return w.diags, errCancelled(ctx)
		}
		body := lint.FunctionBody(fn)
		if body == nil {
			continue
		}
		params := scope{}
		for _, p := range lint.Parameters(fn) {
			w.bind(params, p, "parameter")
		}
		w.walk(body, []scope{params, {}})
	}
	return w.diags, nil
}

// isFileScope reports whether decl sits at namespace scope.
func isFileScope(decl *cppast.Node) bool {
	p := decl.Parent
	if p == nil {
		return false
	}
	switch {
	case p.Kind == cppast.NodeTranslationUnit:
		return true
	case p.Kind == cppast.NodeBlock:
		kind := p.BlockKind()
		return kind == cppast.BlockNamespace || kind == cppast.BlockLinkage
	}
	return false
}

func push(stack []scope) []scope {
	return append(stack[:len(stack):len(stack)], scope{})
}

// walk visits the children of n; the last scope of stack is n's own.
func (w *shadowWalker) walk(n *cppast.Node, stack []scope) {
	for child := n.FirstChild; child != nil; child = child.Next {
		switch child.Kind {
		case cppast.NodeBlock:
			inner := push(stack)
			if child.BlockKind() == cppast.BlockCatch {
				if param := child.ChildByRole(cppast.RoleParam); param != nil {
					w.declare(inner, param, "catch parameter")
				}
			}
			w.walk(child, inner)
		case cppast.NodeDeclaration:
			if child.DeclKind() == cppast.DeclVariable && !child.AttrBool(cppast.AttrParameter) {
				w.declare(stack, child, "local variable")
			}
		case cppast.NodeStatement:
			if child.StmtKind() == cppast.StmtDecl {
				w.walk(child, stack)
				continue
			}
			w.walk(child, push(stack))
		}
	}
}

// declare checks decl against the enclosing scopes and binds it in the
// innermost one.
func (w *shadowWalker) declare(stack []scope, decl *cppast.Node, what string) {
	name := decl.AttrString(cppast.AttrName)
	if name == "" {
		return
	}
	if hidden, ok := w.lookup(stack[:len(stack)-1], name); ok {
		w.diags = append(w.diags, nameDiagnostic(w.ctx, w.ruleID, decl,
			fmt.Sprintf("'%s' hides the %s declared on line %d", name, hidden.what, hidden.line)))
	}
	w.bind(stack[len(stack)-1], decl, what)
}

func (w *shadowWalker) lookup(stack []scope, name string) (binding, bool) {
	for i := len(stack) - 1; i >= 0; i-- {
		if b, ok := stack[i][name]; ok {
			return b, true
		}
	}
	b, ok := w.globals[name]
	return b, ok
}

func (w *shadowWalker) bind(s scope, decl *cppast.Node, what string) {
	name := decl.AttrString(cppast.AttrName)
	if name == "" {
		return
	}
	line := decl.Span().StartLine
	if tok, ok := lint.NameToken(decl); ok {
		line = tok.Start.Line
	}
	s[name] = binding{what: what, line: line}
}
